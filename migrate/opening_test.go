package migrate_test

import (
	"context"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/rollover/gnucash"
	"github.com/robinvdvleuten/rollover/migrate"
)

// newYearBook builds the destination side of a migration: the previous book
// with all transactions purged and the equity accounts scaffolded.
func newYearBook(t *testing.T) (*gnucash.Book, *gnucash.Account) {
	t.Helper()

	book := newPreviousBook(t)
	migrate.PurgeTransactions(book)

	equity, err := migrate.EnsureEquityAccounts(book, "Equity", "Opening balance")
	assert.NoError(t, err)
	return book, equity
}

func TestCreateOpeningTransactions(t *testing.T) {
	book, equity := newYearBook(t)
	balances := migrate.ExtractBalances(newPreviousBook(t), migrate.DefaultAccountTypes)

	created, err := migrate.CreateOpeningTransactions(context.Background(), book, balances, equity, migrate.Options{})
	assert.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, 2, len(book.Transactions))

	// Closing balances carry over, zero balances are skipped.
	assert.True(t, balanceOf(t, book, "Asset.Checking").Equal(decimal.RequireFromString("1000")))
	assert.True(t, balanceOf(t, book, "Liability.CreditCard").Equal(decimal.RequireFromString("-200")))
	assert.Equal(t, 0, len(book.LookupByFullName("Asset.Savings").Splits()))

	// The equity account absorbs the negated sum.
	assert.True(t, equity.Balance().Equal(decimal.RequireFromString("-800")))

	opening := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, tx := range book.Transactions {
		assert.Equal(t, "Opening balance", tx.Description)
		assert.True(t, tx.DatePosted.Time().Equal(opening))
		assert.Equal(t, "USD", tx.Currency.ID)
		assert.Equal(t, 2, len(tx.Splits))

		// Each transaction balances to zero in its currency.
		sum := decimal.Zero
		for _, split := range tx.Splits {
			sum = sum.Add(split.Value.Decimal())
		}
		assert.True(t, sum.IsZero())
	}
}

func TestCreateOpeningTransactionsConvertsCurrency(t *testing.T) {
	book, equity := newYearBook(t)

	balances := map[string]migrate.Balance{
		"Asset.EUR Checking": {
			Amount:    decimal.RequireFromString("100"),
			Commodity: gnucash.CurrencyRef("EUR"),
		},
	}

	created, err := migrate.CreateOpeningTransactions(context.Background(), book, balances, equity, migrate.Options{})
	assert.NoError(t, err)
	assert.Equal(t, 1, created)

	// The quote is 1.10 EUR/USD, so 100 EUR books as 110 USD of value.
	tx := book.Transactions[0]
	target := tx.Splits[0]
	assert.Equal(t, "10000/100", target.Quantity.String())
	assert.Equal(t, "11000/100", target.Value.String())

	counter := tx.Splits[1]
	assert.True(t, counter.Account() == equity)
	assert.Equal(t, "-11000/100", counter.Value.String())
	assert.True(t, equity.Balance().Equal(decimal.RequireFromString("-110")))

	// The recreated account keeps its own commodity.
	account := book.LookupByFullName("Asset.EUR Checking")
	assert.NotZero(t, account)
	assert.True(t, account.Commodity.Equal(gnucash.CurrencyRef("EUR")))
	assert.True(t, account.Balance().Equal(decimal.RequireFromString("100")))
}

func TestCreateOpeningTransactionsRecreatesAccountChain(t *testing.T) {
	book, equity := newYearBook(t)

	balances := map[string]migrate.Balance{
		"Asset.Brokerage.Settlement": {
			Amount:    decimal.RequireFromString("42.00"),
			Commodity: gnucash.CurrencyRef("USD"),
		},
	}

	created, err := migrate.CreateOpeningTransactions(context.Background(), book, balances, equity, migrate.Options{})
	assert.NoError(t, err)
	assert.Equal(t, 1, created)

	// The intermediate is a placeholder without a commodity of its own,
	// the leaf stays postable.
	brokerage := book.LookupByFullName("Asset.Brokerage")
	assert.NotZero(t, brokerage)
	assert.True(t, brokerage.IsPlaceholder())
	assert.Equal(t, gnucash.AccountTypeAsset, brokerage.Type)
	assert.True(t, brokerage.Commodity.IsZero())

	settlement := book.LookupByFullName("Asset.Brokerage.Settlement")
	assert.NotZero(t, settlement)
	assert.False(t, settlement.IsPlaceholder())
	assert.True(t, settlement.Commodity.Equal(gnucash.CurrencyRef("USD")))
	assert.True(t, settlement.Balance().Equal(decimal.RequireFromString("42")))
}

func TestCreateOpeningTransactionsMissingPrice(t *testing.T) {
	book, equity := newYearBook(t)

	balances := map[string]migrate.Balance{
		"Asset.GBP Checking": {
			Amount:    decimal.RequireFromString("50"),
			Commodity: gnucash.CurrencyRef("GBP"),
		},
	}

	created, err := migrate.CreateOpeningTransactions(context.Background(), book, balances, equity, migrate.Options{})
	assert.IsError(t, err, gnucash.ErrNoPrice)
	assert.Equal(t, 0, created)

	// Nothing half-built reaches the book.
	assert.Equal(t, 0, len(book.Transactions))
	assert.Equal(t, 0, len(equity.Splits()))
}

func TestCreateOpeningTransactionsHonorsContext(t *testing.T) {
	book, equity := newYearBook(t)
	balances := migrate.ExtractBalances(newPreviousBook(t), migrate.DefaultAccountTypes)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	created, err := migrate.CreateOpeningTransactions(ctx, book, balances, equity, migrate.Options{})
	assert.IsError(t, err, context.Canceled)
	assert.Equal(t, 0, created)
}
