package gnucash

import "time"

// Price is one entry in the book's price database: the value of one unit
// of Commodity expressed in Currency at a point in time.
type Price struct {
	ID        GUID         `xml:"id"`
	Commodity CommodityRef `xml:"commodity"`
	Currency  CommodityRef `xml:"currency"`
	Time      Date         `xml:"time>date"`
	Source    string       `xml:"source"`
	Type      string       `xml:"type"`
	Value     Numeric      `xml:"value"`
}

// Prices is the book's price database.
type Prices []*Price

// Nearest returns the latest price for commodity quoted in currency at or
// before the given date. The cutoff is a calendar day, so a quote stamped
// later on the same day still counts.
func (ps Prices) Nearest(commodity, currency CommodityRef, at Date) (*Price, bool) {
	var best *Price
	for _, p := range ps {
		if !p.Commodity.Equal(commodity) || !p.Currency.Equal(currency) {
			continue
		}
		if p.Time.Empty() || dayAfter(p.Time.Time(), at.Time()) {
			continue
		}
		if best == nil || p.Time.Time().After(best.Time.Time()) {
			best = p
		}
	}
	return best, best != nil
}

// dayAfter reports whether a falls on a later calendar day than b.
func dayAfter(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay > by
	}
	if am != bm {
		return am > bm
	}
	return ad > bd
}
