package gnucash

// Split is one leg of a transaction. Quantity is the amount in the
// account's commodity, Value the amount in the transaction's currency.
type Split struct {
	ID              GUID            `xml:"id"`
	Memo            string          `xml:"memo"`
	ReconciledState ReconciledState `xml:"reconciled-state"`
	Value           Numeric         `xml:"value"`
	Quantity        Numeric         `xml:"quantity"`
	AccountID       GUID            `xml:"account"`

	account     *Account
	transaction *Transaction
}

// Account returns the account the split is posted to.
func (s *Split) Account() *Account { return s.account }

// Transaction returns the owning transaction, nil for detached splits.
func (s *Split) Transaction() *Transaction { return s.transaction }

// SetAmount sets the split amount in the account's commodity.
func (s *Split) SetAmount(n Numeric) { s.Quantity = n }

// SetValue sets the split value in the transaction's currency.
func (s *Split) SetValue(n Numeric) { s.Value = n }
