package gnucash

import (
	"strings"

	"github.com/shopspring/decimal"
)

// placeholderSlot marks an account as organizational only (non-postable).
const placeholderSlot = "placeholder"

// FullNameSeparator joins account names into hierarchical full names.
const FullNameSeparator = "."

// Account is a node in the book's account tree.
type Account struct {
	ID          GUID         `xml:"id"`
	Name        string       `xml:"name"`
	Type        AccountType  `xml:"type"`
	Description string       `xml:"description"`
	Commodity   CommodityRef `xml:"commodity"`
	SCU         int64        `xml:"commodity-scu"`
	ParentID    GUID         `xml:"parent"`
	Slots       Slots        `xml:"slots>slot"`

	parent   *Account
	children []*Account
	splits   []*Split
}

// Parent returns the parent account, nil for root accounts.
func (a *Account) Parent() *Account { return a.parent }

// Children returns the direct child accounts.
func (a *Account) Children() []*Account { return a.children }

// Splits returns the splits posted to this account.
func (a *Account) Splits() []*Split { return a.splits }

// FullName returns the dot-separated hierarchical name, excluding the root
// account. It is computed on demand so it stays correct under reparenting.
func (a *Account) FullName() string {
	var parts []string
	for acc := a; acc != nil && acc.Type != AccountTypeRoot; acc = acc.parent {
		parts = append(parts, acc.Name)
	}

	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteString(parts[i])
		if i != 0 {
			b.WriteString(FullNameSeparator)
		}
	}
	return b.String()
}

// Descendants returns all accounts below this one, depth first.
func (a *Account) Descendants() []*Account {
	var all []*Account
	for _, c := range a.children {
		all = append(all, c)
		all = append(all, c.Descendants()...)
	}
	return all
}

// IsPlaceholder reports whether the account carries the placeholder flag.
func (a *Account) IsPlaceholder() bool {
	slot, ok := a.Slots.Get(placeholderSlot)
	return ok && slot.Value.Data == "true"
}

// SetPlaceholder sets or clears the placeholder flag.
func (a *Account) SetPlaceholder(placeholder bool) {
	if placeholder {
		a.Slots.SetString(placeholderSlot, "true")
		return
	}
	a.Slots.Remove(placeholderSlot)
}

// AppendChild attaches child to this account, detaching it from any
// previous parent.
func (a *Account) AppendChild(child *Account) {
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = a
	child.ParentID = a.ID
	a.children = append(a.children, child)
}

func (a *Account) removeChild(child *Account) {
	for i, c := range a.children {
		if c == child {
			a.children = append(a.children[:i], a.children[i+1:]...)
			return
		}
	}
}

// Balance returns the signed sum of the account's split amounts, expressed
// in the account's own commodity.
func (a *Account) Balance() decimal.Decimal {
	sum := decimal.Zero
	for _, s := range a.splits {
		sum = sum.Add(s.Quantity.Decimal())
	}
	return sum
}

func (a *Account) addSplit(s *Split) {
	a.splits = append(a.splits, s)
}

func (a *Account) removeSplit(s *Split) {
	for i, split := range a.splits {
		if split == s {
			a.splits = append(a.splits[:i], a.splits[i+1:]...)
			return
		}
	}
}
