package cli

import (
	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/rollover/gnucash"
)

type DumpCmd struct {
	File string `arg:"" type:"existingfile" help:"GnuCash file to dump."`
}

// bookDump is a cycle-free projection of the object graph; the linked
// model itself holds parent/child pointers repr would chase forever.
type bookDump struct {
	ID           gnucash.GUID
	Commodities  []*gnucash.Commodity
	Prices       int
	Accounts     []accountDump
	Transactions []transactionDump
}

type accountDump struct {
	FullName    string
	Type        gnucash.AccountType
	Commodity   string
	Placeholder bool
	Balance     string
}

type transactionDump struct {
	Date        string
	Description string
	Currency    string
	Splits      []splitDump
}

type splitDump struct {
	Account string
	Amount  string
	Value   string
}

func (cmd *DumpCmd) Run(ctx *kong.Context) error {
	session, err := gnucash.OpenSession(cmd.File, gnucash.OpenReadOnly)
	if err != nil {
		return err
	}
	defer session.End()

	book := session.Book()
	dump := bookDump{
		ID:          book.ID,
		Commodities: book.Commodities,
		Prices:      len(book.Prices),
	}

	for _, account := range book.RootAccount().Descendants() {
		dump.Accounts = append(dump.Accounts, accountDump{
			FullName:    account.FullName(),
			Type:        account.Type,
			Commodity:   account.Commodity.String(),
			Placeholder: account.IsPlaceholder(),
			Balance:     account.Balance().String(),
		})
	}

	for _, tx := range book.Transactions {
		td := transactionDump{
			Date:        tx.DatePosted.String(),
			Description: tx.Description,
			Currency:    tx.Currency.ID,
		}
		for _, split := range tx.Splits {
			td.Splits = append(td.Splits, splitDump{
				Account: split.Account().FullName(),
				Amount:  split.Quantity.Decimal().String(),
				Value:   split.Value.Decimal().String(),
			})
		}
		dump.Transactions = append(dump.Transactions, td)
	}

	repr.Println(dump)

	return nil
}
