package migrate

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/rollover/gnucash"
)

// CreateOpeningTransactions synthesizes one two-split transaction per
// nonzero balance: the target account is debited or credited with its
// closing balance, the equity account receives the negated value. When the
// target account's commodity differs from the equity account's currency,
// the equity-side value is converted via the nearest price at or before
// the opening date. Target accounts missing from the new book are
// recreated with their full ancestor chain. Returns the number of
// transactions created.
func CreateOpeningTransactions(ctx context.Context, book *gnucash.Book, balances map[string]Balance, equity *gnucash.Account, opts Options) (int, error) {
	opts = opts.withDefaults()

	names := maps.Keys(balances)
	slices.Sort(names)

	created := 0
	for _, name := range names {
		select {
		case <-ctx.Done():
			return created, ctx.Err()
		default:
		}

		balance := balances[name]
		if balance.Amount.IsZero() {
			continue
		}

		account := book.LookupByFullName(name)
		if account == nil {
			opts.Logger.Debug("recreating missing account", "account", name)
			account = ensureAccountPath(book, name, balance.Commodity)
		}

		value := balance.Amount
		if !balance.Commodity.Equal(equity.Commodity) {
			converted, err := book.ConvertBalance(balance.Amount, balance.Commodity, equity.Commodity, opts.OpeningDate)
			if err != nil {
				return created, fmt.Errorf("opening balance for %s: %w", name, err)
			}
			value = converted
		}

		opts.Logger.Info("creating opening balance", "account", name, "amount", balance.Amount.String())
		if err := createOpeningTransaction(book, account, equity, balance, value, opts); err != nil {
			return created, fmt.Errorf("opening balance for %s: %w", name, err)
		}
		created++
	}

	return created, nil
}

// createOpeningTransaction runs one edit bracket. The deferred rollback is
// a no-op once the commit succeeds, so any failure path discards the
// half-built transaction instead of leaking it into the book.
func createOpeningTransaction(book *gnucash.Book, account, equity *gnucash.Account, balance Balance, value decimal.Decimal, opts Options) error {
	tx := book.NewTransaction()
	tx.BeginEdit()
	defer tx.RollbackEdit()

	tx.SetDescription(opts.Description)
	tx.SetDatePosted(opts.OpeningDate)
	tx.SetCurrency(equity.Commodity)

	amountFraction := book.FractionFor(balance.Commodity)
	valueFraction := book.FractionFor(equity.Commodity)

	target := tx.NewSplit(account)
	target.SetAmount(gnucash.NumericFromDecimal(balance.Amount, amountFraction))
	target.SetValue(gnucash.NumericFromDecimal(value, valueFraction))

	counter := tx.NewSplit(equity)
	counter.SetAmount(gnucash.NumericFromDecimal(value.Neg(), valueFraction))
	counter.SetValue(gnucash.NumericFromDecimal(value.Neg(), valueFraction))

	return tx.CommitEdit()
}

// ensureAccountPath resolves fullName segment by segment, creating any
// missing accounts along the way so the original hierarchy is preserved.
// Intermediate accounts become placeholders; the leaf stays postable and
// carries the balance's commodity. Created accounts inherit their parent's
// type, defaulting to ASSET directly under the root.
func ensureAccountPath(book *gnucash.Book, fullName string, commodity gnucash.CommodityRef) *gnucash.Account {
	segments := strings.Split(fullName, gnucash.FullNameSeparator)
	current := book.RootAccount()

	for i, segment := range segments {
		var next *gnucash.Account
		for _, child := range current.Children() {
			if child.Name == segment {
				next = child
				break
			}
		}

		if next == nil {
			typ := current.Type
			if typ == gnucash.AccountTypeRoot {
				typ = gnucash.AccountTypeAsset
			}
			next = book.NewAccount(segment, typ)
			if i == len(segments)-1 {
				next.Commodity = commodity
			} else {
				next.SetPlaceholder(true)
			}
			current.AppendChild(next)
		}
		current = next
	}

	return current
}
