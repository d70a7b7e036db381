package gnucash

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Book is the root of an account hierarchy and its transaction set. One
// book corresponds to one open file.
type Book struct {
	ID           GUID           `xml:"id"`
	Commodities  []*Commodity   `xml:"commodity"`
	Prices       Prices         `xml:"pricedb>price"`
	Accounts     []*Account     `xml:"account"`
	Transactions []*Transaction `xml:"transaction"`

	root *Account
}

// NewBook creates an empty in-memory book with a fresh root account.
func NewBook() *Book {
	b := &Book{ID: NewGUID()}
	root := &Account{
		ID:   NewGUID(),
		Name: "Root Account",
		Type: AccountTypeRoot,
	}
	b.Accounts = append(b.Accounts, root)
	b.root = root
	return b
}

// RootAccount returns the book's root account.
func (b *Book) RootAccount() *Account { return b.root }

// NewAccount creates an account registered with the book but not yet
// attached to the tree; attach it with AppendChild.
func (b *Book) NewAccount(name string, typ AccountType) *Account {
	a := &Account{
		ID:   NewGUID(),
		Name: name,
		Type: typ,
	}
	b.Accounts = append(b.Accounts, a)
	return a
}

// LookupByFullName resolves a dot-separated full account name against the
// tree. It walks from the root so results stay correct under mutation.
func (b *Book) LookupByFullName(fullName string) *Account {
	if fullName == "" || b.root == nil {
		return nil
	}

	current := b.root
segments:
	for _, segment := range strings.Split(fullName, FullNameSeparator) {
		for _, child := range current.Children() {
			if child.Name == segment {
				current = child
				continue segments
			}
		}
		return nil
	}
	return current
}

// AddCommodity registers a commodity in the book's commodity table.
func (b *Book) AddCommodity(c *Commodity) {
	b.Commodities = append(b.Commodities, c)
}

// LookupCurrency returns the currency commodity with the given ISO code.
func (b *Book) LookupCurrency(id string) (*Commodity, error) {
	for _, c := range b.Commodities {
		if c.IsCurrency() && c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoSuchCurrency, id)
}

// DefaultCurrency returns the book's default transaction currency: the
// root account's commodity when it is a currency, otherwise the first
// currency in the commodity table.
func (b *Book) DefaultCurrency() (*Commodity, error) {
	if b.root != nil && b.root.Commodity.IsCurrency() {
		if c, err := b.LookupCurrency(b.root.Commodity.ID); err == nil {
			return c, nil
		}
	}
	for _, c := range b.Commodities {
		if c.IsCurrency() {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: book has no currency commodity", ErrNoSuchCurrency)
}

// FractionFor returns the smallest-unit fraction for a commodity, falling
// back to cents when the commodity is not in the table.
func (b *Book) FractionFor(ref CommodityRef) int64 {
	for _, c := range b.Commodities {
		if c.CommodityRef.Equal(ref) && c.Fraction > 0 {
			return c.Fraction
		}
	}
	return 100
}

// ConvertBalance converts an amount between commodities using the nearest
// price at or before the given date, checking the inverse quote when no
// direct one exists. The result is rounded to the target commodity's
// fraction. Same-commodity conversions return the amount unchanged.
func (b *Book) ConvertBalance(amount decimal.Decimal, from, to CommodityRef, at time.Time) (decimal.Decimal, error) {
	if from.Equal(to) {
		return amount, nil
	}

	places := decimalPlaces(b.FractionFor(to))
	date := NewDate(at)

	if p, ok := b.Prices.Nearest(from, to, date); ok {
		return amount.Mul(p.Value.Decimal()).Round(places), nil
	}
	if p, ok := b.Prices.Nearest(to, from, date); ok && !p.Value.IsZero() {
		return amount.DivRound(p.Value.Decimal(), places), nil
	}

	return decimal.Zero, fmt.Errorf("%w: %s to %s at %s", ErrNoPrice, from, to, at.Format("2006-01-02"))
}

func decimalPlaces(fraction int64) int32 {
	var places int32
	for fraction > 1 {
		fraction /= 10
		places++
	}
	return places
}

func (b *Book) removeTransaction(t *Transaction) {
	for i, tx := range b.Transactions {
		if tx == t {
			b.Transactions = append(b.Transactions[:i], b.Transactions[i+1:]...)
			return
		}
	}
}

// link wires the object graph after decoding: parent/child account links,
// the root account, and split/account/transaction references.
func (b *Book) link() error {
	if b.ID == "" {
		return fmt.Errorf("gnucash: book has no id")
	}

	byGUID := make(map[GUID]*Account, len(b.Accounts))
	for _, a := range b.Accounts {
		a.parent = nil
		a.children = nil
		a.splits = nil
		byGUID[a.ID] = a
	}

	for _, a := range b.Accounts {
		if a.ParentID == "" {
			if a.Type == AccountTypeRoot && b.root == nil {
				b.root = a
			}
			continue
		}
		parent, ok := byGUID[a.ParentID]
		if !ok {
			return fmt.Errorf("gnucash: account %q references unknown parent %s", a.Name, a.ParentID)
		}
		a.parent = parent
		parent.children = append(parent.children, a)
	}

	if b.root == nil {
		return fmt.Errorf("gnucash: book has no root account")
	}

	for _, t := range b.Transactions {
		t.book = b
		t.committed = true
		for _, s := range t.Splits {
			account, ok := byGUID[s.AccountID]
			if !ok {
				return fmt.Errorf("gnucash: split %s references unknown account %s", s.ID, s.AccountID)
			}
			s.account = account
			s.transaction = t
			account.addSplit(s)
		}
	}

	return nil
}
