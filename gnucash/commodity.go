package gnucash

import "fmt"

// Currency namespaces. Older files use "ISO4217", the Python bindings and
// newer files use "CURRENCY"; both denote currencies.
const (
	SpaceCurrency = "CURRENCY"
	SpaceISO4217  = "ISO4217"
)

// CommodityRef references a commodity by namespace and mnemonic.
type CommodityRef struct {
	Space string `xml:"space"`
	ID    string `xml:"id"`
}

// IsCurrency reports whether the reference denotes a currency.
func (r CommodityRef) IsCurrency() bool {
	return r.Space == SpaceCurrency || r.Space == SpaceISO4217
}

// Equal reports whether two references denote the same commodity. The two
// currency namespaces are treated as interchangeable.
func (r CommodityRef) Equal(o CommodityRef) bool {
	if r.IsCurrency() && o.IsCurrency() {
		return r.ID == o.ID
	}
	return r.Space == o.Space && r.ID == o.ID
}

// IsZero reports whether the reference is unset.
func (r CommodityRef) IsZero() bool { return r.Space == "" && r.ID == "" }

func (r CommodityRef) String() string {
	return fmt.Sprintf("%s.%s", r.Space, r.ID)
}

// Commodity is an entry in the book's commodity table.
type Commodity struct {
	CommodityRef
	Name     string `xml:"name"`
	Fraction int64  `xml:"fraction"`
}

// CurrencyRef returns a reference to a currency by ISO code.
func CurrencyRef(id string) CommodityRef {
	return CommodityRef{Space: SpaceCurrency, ID: id}
}
