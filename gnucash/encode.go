package gnucash

import (
	"bufio"
	nxml "encoding/xml"
	"fmt"
	"io"
)

// Write serializes the book as uncompressed GnuCash XML. Namespace prefixes
// are emitted literally; the matching declarations sit on the <gnc-v2>
// root, which is how GnuCash itself writes its files.
func Write(w io.Writer, b *Book) error {
	x := &xmlWriter{w: bufio.NewWriter(w)}

	x.raw(nxml.Header)
	x.raw(`<gnc-v2
     xmlns:gnc="http://www.gnucash.org/XML/gnc"
     xmlns:act="http://www.gnucash.org/XML/act"
     xmlns:book="http://www.gnucash.org/XML/book"
     xmlns:cd="http://www.gnucash.org/XML/cd"
     xmlns:cmdty="http://www.gnucash.org/XML/cmdty"
     xmlns:price="http://www.gnucash.org/XML/price"
     xmlns:slot="http://www.gnucash.org/XML/slot"
     xmlns:split="http://www.gnucash.org/XML/split"
     xmlns:trn="http://www.gnucash.org/XML/trn"
     xmlns:ts="http://www.gnucash.org/XML/ts">` + "\n")

	x.element("gnc:count-data", `cd:type="book"`, "1")

	x.open(`gnc:book version="2.0.0"`)
	x.element("book:id", `type="guid"`, string(b.ID))
	x.element("gnc:count-data", `cd:type="commodity"`, fmt.Sprint(len(b.Commodities)))
	x.element("gnc:count-data", `cd:type="account"`, fmt.Sprint(len(b.Accounts)))
	x.element("gnc:count-data", `cd:type="transaction"`, fmt.Sprint(len(b.Transactions)))
	if len(b.Prices) > 0 {
		x.element("gnc:count-data", `cd:type="price"`, fmt.Sprint(len(b.Prices)))
	}

	for _, c := range b.Commodities {
		x.writeCommodity(c)
	}
	if len(b.Prices) > 0 {
		x.open(`gnc:pricedb version="1"`)
		for _, p := range b.Prices {
			x.writePrice(p)
		}
		x.close("gnc:pricedb")
	}
	for _, a := range accountsInTreeOrder(b) {
		x.writeAccount(b, a)
	}
	for _, t := range b.Transactions {
		x.writeTransaction(t)
	}

	x.close("gnc:book")
	x.close("gnc-v2")

	if x.err != nil {
		return fmt.Errorf("gnucash: encode: %w", x.err)
	}
	return x.w.Flush()
}

// accountsInTreeOrder yields the root first and parents before children,
// which is what GnuCash expects on load. Accounts outside the main tree
// (such as a template root) follow in their original order.
func accountsInTreeOrder(b *Book) []*Account {
	ordered := make([]*Account, 0, len(b.Accounts))
	seen := make(map[*Account]bool, len(b.Accounts))

	var walk func(a *Account)
	walk = func(a *Account) {
		ordered = append(ordered, a)
		seen[a] = true
		for _, c := range a.Children() {
			walk(c)
		}
	}
	if b.root != nil {
		walk(b.root)
	}
	for _, a := range b.Accounts {
		if !seen[a] {
			ordered = append(ordered, a)
		}
	}
	return ordered
}

type xmlWriter struct {
	w   *bufio.Writer
	err error
}

func (x *xmlWriter) raw(s string) {
	if x.err != nil {
		return
	}
	_, x.err = x.w.WriteString(s)
}

func (x *xmlWriter) open(tag string) {
	x.raw("<" + tag + ">\n")
}

func (x *xmlWriter) close(name string) {
	x.raw("</" + name + ">\n")
}

// element writes a single-line element; attrs may be empty.
func (x *xmlWriter) element(name, attrs, text string) {
	if x.err != nil {
		return
	}
	x.raw("<" + name)
	if attrs != "" {
		x.raw(" " + attrs)
	}
	x.raw(">")
	x.err = nxml.EscapeText(x.w, []byte(text))
	x.raw("</" + name + ">\n")
}

func (x *xmlWriter) writeRef(name string, ref CommodityRef) {
	x.open(name)
	x.element("cmdty:space", "", ref.Space)
	x.element("cmdty:id", "", ref.ID)
	x.close(name)
}

func (x *xmlWriter) writeCommodity(c *Commodity) {
	x.open(`gnc:commodity version="2.0.0"`)
	x.element("cmdty:space", "", c.Space)
	x.element("cmdty:id", "", c.ID)
	if c.Name != "" {
		x.element("cmdty:name", "", c.Name)
	}
	if c.Fraction > 0 {
		x.element("cmdty:fraction", "", fmt.Sprint(c.Fraction))
	}
	x.close("gnc:commodity")
}

func (x *xmlWriter) writePrice(p *Price) {
	x.open("price")
	x.element("price:id", `type="guid"`, string(p.ID))
	x.writeRef("price:commodity", p.Commodity)
	x.writeRef("price:currency", p.Currency)
	x.open("price:time")
	x.element("ts:date", "", p.Time.String())
	x.close("price:time")
	if p.Source != "" {
		x.element("price:source", "", p.Source)
	}
	if p.Type != "" {
		x.element("price:type", "", p.Type)
	}
	x.element("price:value", "", p.Value.String())
	x.close("price")
}

func (x *xmlWriter) writeSlots(name string, slots Slots) {
	if len(slots) == 0 {
		return
	}
	x.open(name)
	for _, s := range slots {
		x.open("slot")
		x.element("slot:key", "", s.Key)
		typ := s.Value.Type
		if typ == "" {
			typ = "string"
		}
		x.element("slot:value", fmt.Sprintf("type=%q", typ), s.Value.Data)
		x.close("slot")
	}
	x.close(name)
}

func (x *xmlWriter) writeAccount(b *Book, a *Account) {
	x.open(`gnc:account version="2.0.0"`)
	x.element("act:name", "", a.Name)
	x.element("act:id", `type="guid"`, string(a.ID))
	x.element("act:type", "", string(a.Type))
	if !a.Commodity.IsZero() {
		x.writeRef("act:commodity", a.Commodity)
		scu := a.SCU
		if scu <= 0 {
			scu = b.FractionFor(a.Commodity)
		}
		x.element("act:commodity-scu", "", fmt.Sprint(scu))
	}
	if a.Description != "" {
		x.element("act:description", "", a.Description)
	}
	x.writeSlots("act:slots", a.Slots)
	if a.ParentID != "" {
		x.element("act:parent", `type="guid"`, string(a.ParentID))
	}
	x.close("gnc:account")
}

func (x *xmlWriter) writeTransaction(t *Transaction) {
	x.open(`gnc:transaction version="2.0.0"`)
	x.element("trn:id", `type="guid"`, string(t.ID))
	if !t.Currency.IsZero() {
		x.writeRef("trn:currency", t.Currency)
	}
	if !t.DatePosted.Empty() {
		x.open("trn:date-posted")
		x.element("ts:date", "", t.DatePosted.String())
		x.close("trn:date-posted")
	}
	if !t.DateEntered.Empty() {
		x.open("trn:date-entered")
		x.element("ts:date", "", t.DateEntered.String())
		x.close("trn:date-entered")
	}
	x.element("trn:description", "", t.Description)
	x.open("trn:splits")
	for _, s := range t.Splits {
		x.open("trn:split")
		x.element("split:id", `type="guid"`, string(s.ID))
		if s.Memo != "" {
			x.element("split:memo", "", s.Memo)
		}
		x.element("split:reconciled-state", "", s.ReconciledState.String())
		x.element("split:value", "", s.Value.String())
		x.element("split:quantity", "", s.Quantity.String())
		x.element("split:account", `type="guid"`, string(s.AccountID))
		x.close("trn:split")
	}
	x.close("trn:splits")
	x.close("gnc:transaction")
}
