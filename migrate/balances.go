package migrate

import (
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/rollover/gnucash"
)

// Balance is a closing balance in the account's own commodity.
type Balance struct {
	Amount    decimal.Decimal
	Commodity gnucash.CommodityRef
}

// ExtractBalances returns the closing balance per full account name for
// every postable (non-placeholder) descendant of a top-level account whose
// type is in the filter set. Zero balances are included; filtering to
// nonzero happens at transaction-creation time.
func ExtractBalances(book *gnucash.Book, types []gnucash.AccountType) map[string]Balance {
	include := make(map[gnucash.AccountType]bool, len(types))
	for _, t := range types {
		include[t] = true
	}

	balances := make(map[string]Balance)
	for _, top := range book.RootAccount().Children() {
		if !include[top.Type] {
			continue
		}
		for _, account := range top.Descendants() {
			if account.IsPlaceholder() {
				continue
			}
			balances[account.FullName()] = Balance{
				Amount:    account.Balance(),
				Commodity: account.Commodity,
			}
		}
	}
	return balances
}
