package gnucash

import (
	"errors"
	"time"
)

// Transaction is a dated set of splits that balance to zero in the
// transaction's currency.
//
// New transactions follow the GnuCash edit bracket: NewTransaction returns
// a detached transaction, BeginEdit opens it for population, and only
// CommitEdit makes it part of the book as an atomic unit. RollbackEdit
// discards an uncommitted transaction. Committed transactions are never
// reopened; Destroy removes them, cascading to all splits.
type Transaction struct {
	ID          GUID         `xml:"id"`
	Currency    CommodityRef `xml:"currency"`
	DatePosted  Date         `xml:"date-posted>date"`
	DateEntered Date         `xml:"date-entered>date"`
	Description string       `xml:"description"`
	Splits      []*Split     `xml:"splits>split"`

	book      *Book
	editing   bool
	committed bool
	destroyed bool
}

// NewTransaction creates a detached transaction for this book. It does not
// appear in the book until CommitEdit.
func (b *Book) NewTransaction() *Transaction {
	return &Transaction{
		ID:   NewGUID(),
		book: b,
	}
}

// BeginEdit opens the transaction for population.
func (t *Transaction) BeginEdit() {
	t.editing = true
}

// SetDescription sets the transaction description.
func (t *Transaction) SetDescription(s string) { t.Description = s }

// SetCurrency sets the transaction currency.
func (t *Transaction) SetCurrency(c CommodityRef) { t.Currency = c }

// SetDatePosted sets the posted date. The entered date is stamped at
// commit time.
func (t *Transaction) SetDatePosted(at time.Time) {
	t.DatePosted = NewDate(at)
}

// NewSplit stages a new split parented to this transaction and posted to
// the given account. The split reaches the account's split list only when
// the transaction commits.
func (t *Transaction) NewSplit(account *Account) *Split {
	s := &Split{
		ID:              NewGUID(),
		ReconciledState: ReconciledStateNew,
		AccountID:       account.ID,
		account:         account,
		transaction:     t,
	}
	t.Splits = append(t.Splits, s)
	return s
}

// CommitEdit closes the edit bracket and attaches the transaction to the
// book and to each split's account as a single unit.
func (t *Transaction) CommitEdit() error {
	if !t.editing {
		return errors.New("gnucash: transaction is not being edited")
	}
	if t.committed {
		return errors.New("gnucash: transaction already committed")
	}

	if t.DateEntered.Empty() {
		t.DateEntered = NewDate(time.Now())
	}

	for _, s := range t.Splits {
		s.account.addSplit(s)
	}
	t.book.Transactions = append(t.book.Transactions, t)

	t.editing = false
	t.committed = true
	return nil
}

// RollbackEdit discards an uncommitted transaction. It is a no-op after
// CommitEdit, so it is safe in a defer guarding the edit bracket.
func (t *Transaction) RollbackEdit() {
	if t.committed {
		return
	}
	t.editing = false
	t.Splits = nil
}

// Destroyed reports whether Destroy has been called.
func (t *Transaction) Destroyed() bool { return t.destroyed }

// Destroy removes a committed transaction from the book, cascading to all
// of its splits. The account tree is left untouched.
func (t *Transaction) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true

	for _, s := range t.Splits {
		if s.account != nil {
			s.account.removeSplit(s)
		}
		s.transaction = nil
	}

	if t.book != nil {
		t.book.removeTransaction(t)
	}
}
