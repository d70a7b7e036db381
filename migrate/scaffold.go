package migrate

import (
	"github.com/robinvdvleuten/rollover/gnucash"
)

// EnsureEquityAccounts makes sure the new book carries a top-level
// placeholder equity account and, nested under it, the postable account
// that receives the opening counter-splits. Both are looked up by full
// name first, so re-running against an already scaffolded book creates
// nothing. The opening account carries the book's default transaction
// currency. Returns the opening account.
func EnsureEquityAccounts(book *gnucash.Book, equityName, openingName string) (*gnucash.Account, error) {
	currency, err := book.DefaultCurrency()
	if err != nil {
		return nil, err
	}

	placeholder := book.LookupByFullName(equityName)
	if placeholder == nil {
		placeholder = book.NewAccount(equityName, gnucash.AccountTypeEquity)
		placeholder.SetPlaceholder(true)
		book.RootAccount().AppendChild(placeholder)
	}

	fullName := equityName + gnucash.FullNameSeparator + openingName
	opening := book.LookupByFullName(fullName)
	if opening == nil {
		opening = book.NewAccount(openingName, gnucash.AccountTypeEquity)
		opening.Commodity = currency.CommodityRef
		placeholder.AppendChild(opening)
	}

	return opening, nil
}
