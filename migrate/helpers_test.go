package migrate_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/rollover/gnucash"
)

// newPreviousBook builds the closed fiscal year used across these tests:
//
//	Asset (placeholder)
//	  Checking   1000.00 USD
//	  Savings       0.00 USD
//	Liability (placeholder)
//	  CreditCard -200.00 USD
//	Income
//	Expense
//
// plus a EUR commodity with a 1.10 EUR/USD quote dated 2024-12-31.
func newPreviousBook(t *testing.T) *gnucash.Book {
	t.Helper()

	book := gnucash.NewBook()
	book.AddCommodity(&gnucash.Commodity{CommodityRef: gnucash.CurrencyRef("USD"), Fraction: 100})
	book.AddCommodity(&gnucash.Commodity{CommodityRef: gnucash.CurrencyRef("EUR"), Fraction: 100})
	book.Prices = append(book.Prices, &gnucash.Price{
		ID:        gnucash.NewGUID(),
		Commodity: gnucash.CurrencyRef("EUR"),
		Currency:  gnucash.CurrencyRef("USD"),
		Time:      gnucash.NewDate(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)),
		Value:     gnucash.Numeric{Num: 110, Denom: 100},
	})

	root := book.RootAccount()
	asset := addAccount(t, book, root, "Asset", gnucash.AccountTypeAsset)
	asset.SetPlaceholder(true)
	checking := addAccount(t, book, asset, "Checking", gnucash.AccountTypeBank)
	addAccount(t, book, asset, "Savings", gnucash.AccountTypeBank)

	liability := addAccount(t, book, root, "Liability", gnucash.AccountTypeLiability)
	liability.SetPlaceholder(true)
	creditCard := addAccount(t, book, liability, "CreditCard", gnucash.AccountTypeCredit)

	income := addAccount(t, book, root, "Income", gnucash.AccountTypeIncome)
	expense := addAccount(t, book, root, "Expense", gnucash.AccountTypeExpense)

	post(t, book, checking, income, "1000.00")
	post(t, book, expense, creditCard, "200.00")

	return book
}

func addAccount(t *testing.T, book *gnucash.Book, parent *gnucash.Account, name string, typ gnucash.AccountType) *gnucash.Account {
	t.Helper()

	account := book.NewAccount(name, typ)
	account.Commodity = gnucash.CurrencyRef("USD")
	parent.AppendChild(account)
	return account
}

func post(t *testing.T, book *gnucash.Book, debit, credit *gnucash.Account, amount string) {
	t.Helper()

	value := decimal.RequireFromString(amount)

	tx := book.NewTransaction()
	tx.BeginEdit()
	tx.SetDescription("prior year posting")
	tx.SetDatePosted(time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC))
	tx.SetCurrency(gnucash.CurrencyRef("USD"))

	d := tx.NewSplit(debit)
	d.SetAmount(gnucash.NumericFromDecimal(value, 100))
	d.SetValue(gnucash.NumericFromDecimal(value, 100))

	c := tx.NewSplit(credit)
	c.SetAmount(gnucash.NumericFromDecimal(value.Neg(), 100))
	c.SetValue(gnucash.NumericFromDecimal(value.Neg(), 100))

	assert.NoError(t, tx.CommitEdit())
}

// writeBook persists a book to a temp file the way GnuCash would store it.
func writeBook(t *testing.T, book *gnucash.Book, name string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	assert.NoError(t, err)
	assert.NoError(t, gnucash.Write(f, book))
	assert.NoError(t, f.Close())
	return path
}

func balanceOf(t *testing.T, book *gnucash.Book, fullName string) decimal.Decimal {
	t.Helper()

	account := book.LookupByFullName(fullName)
	assert.NotZero(t, account)
	return account.Balance()
}
