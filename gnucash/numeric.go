package gnucash

import (
	nxml "encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Numeric is a GnuCash rational amount, serialized as "num/denom". Amounts
// are exact; arithmetic beyond negation goes through decimal.Decimal to
// avoid floating point drift.
type Numeric struct {
	Num   int64
	Denom int64
}

// ParseNumeric parses the "num/denom" wire form.
func ParseNumeric(s string) (Numeric, error) {
	num, denom, ok := strings.Cut(s, "/")
	if !ok {
		return Numeric{}, fmt.Errorf("gnucash: invalid numeric %q", s)
	}

	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return Numeric{}, fmt.Errorf("gnucash: invalid numeric %q: %w", s, err)
	}
	d, err := strconv.ParseInt(denom, 10, 64)
	if err != nil {
		return Numeric{}, fmt.Errorf("gnucash: invalid numeric %q: %w", s, err)
	}
	if d <= 0 {
		return Numeric{}, fmt.Errorf("gnucash: invalid numeric %q: denominator must be positive", s)
	}

	return Numeric{Num: n, Denom: d}, nil
}

// NumericFromDecimal converts a decimal to a rational over the given
// denominator, rounding half away from zero.
func NumericFromDecimal(d decimal.Decimal, denom int64) Numeric {
	if denom <= 0 {
		denom = 100
	}
	num := d.Mul(decimal.NewFromInt(denom)).Round(0).IntPart()
	return Numeric{Num: num, Denom: denom}
}

// Decimal returns the exact decimal value of the rational.
func (n Numeric) Decimal() decimal.Decimal {
	if n.Denom == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(n.Num).Div(decimal.NewFromInt(n.Denom))
}

// Neg returns the negated amount.
func (n Numeric) Neg() Numeric {
	return Numeric{Num: -n.Num, Denom: n.Denom}
}

// IsZero reports whether the amount is exactly zero.
func (n Numeric) IsZero() bool { return n.Num == 0 }

// String returns the "num/denom" wire form.
func (n Numeric) String() string {
	denom := n.Denom
	if denom == 0 {
		denom = 1
	}
	return fmt.Sprintf("%d/%d", n.Num, denom)
}

// UnmarshalXML decodes a "num/denom" element.
func (n *Numeric) UnmarshalXML(d *nxml.Decoder, start nxml.StartElement) error {
	var content string
	if err := d.DecodeElement(&content, &start); err != nil {
		return err
	}

	parsed, err := ParseNumeric(content)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
