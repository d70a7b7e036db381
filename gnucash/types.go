package gnucash

import (
	"crypto/rand"
	"encoding/hex"
	nxml "encoding/xml"
	"fmt"
	"time"
)

// GUID identifies a book, account, transaction, split or price. GnuCash
// GUIDs are bare 32-character lowercase hex strings, not RFC 4122 UUIDs.
type GUID string

// NewGUID returns a fresh random GUID.
func NewGUID() GUID {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(fmt.Sprintf("gnucash: rand: %v", err))
	}
	return GUID(hex.EncodeToString(b[:]))
}

// AccountType is the GnuCash account type.
type AccountType string

const (
	AccountTypeRoot       AccountType = "ROOT"
	AccountTypeAsset      AccountType = "ASSET"
	AccountTypeBank       AccountType = "BANK"
	AccountTypeCash       AccountType = "CASH"
	AccountTypeCredit     AccountType = "CREDIT"
	AccountTypeEquity     AccountType = "EQUITY"
	AccountTypeExpense    AccountType = "EXPENSE"
	AccountTypeIncome     AccountType = "INCOME"
	AccountTypeLiability  AccountType = "LIABILITY"
	AccountTypeMutual     AccountType = "MUTUAL"
	AccountTypePayable    AccountType = "PAYABLE"
	AccountTypeReceivable AccountType = "RECEIVABLE"
	AccountTypeStock      AccountType = "STOCK"
	AccountTypeTrading    AccountType = "TRADING"
)

// ReconciledState is the per-split reconciliation marker.
type ReconciledState rune

const (
	ReconciledStateNew        ReconciledState = 'n'
	ReconciledStateCleared    ReconciledState = 'c'
	ReconciledStateReconciled ReconciledState = 'y'
	ReconciledStateFrozen     ReconciledState = 'f'
	ReconciledStateVoid       ReconciledState = 'v'
)

// UnmarshalXML decodes the single-character state element.
func (r *ReconciledState) UnmarshalXML(d *nxml.Decoder, start nxml.StartElement) error {
	var content string
	if err := d.DecodeElement(&content, &start); err != nil {
		return err
	}
	if content == "" {
		*r = ReconciledStateNew
		return nil
	}
	*r = ReconciledState(content[0])
	return nil
}

func (r ReconciledState) String() string {
	if r == 0 {
		return string(ReconciledStateNew)
	}
	return string(r)
}

// tsFormat is the timestamp layout GnuCash uses inside <ts:date> elements.
const tsFormat = "2006-01-02 15:04:05 -0700"

// Date wraps a GnuCash timestamp. The zero value is the empty date.
type Date struct {
	t   time.Time
	set bool
}

// NewDate returns a Date for the given time.
func NewDate(t time.Time) Date {
	return Date{t: t, set: true}
}

// Time returns the wrapped time; zero if the date is empty.
func (d Date) Time() time.Time { return d.t }

// Empty reports whether the date was never set.
func (d Date) Empty() bool { return !d.set }

func (d Date) String() string {
	if !d.set {
		return ""
	}
	return d.t.Format(tsFormat)
}

// UnmarshalXML accepts both the full timestamp layout and the bare
// calendar-date layout found in older files.
func (d *Date) UnmarshalXML(dec *nxml.Decoder, start nxml.StartElement) error {
	var content string
	if err := dec.DecodeElement(&content, &start); err != nil {
		return err
	}
	if content == "" {
		return nil
	}

	var err error
	for _, layout := range []string{tsFormat, "2006-01-02"} {
		var t time.Time
		if t, err = time.Parse(layout, content); err == nil {
			d.t = t
			d.set = true
			return nil
		}
	}
	return fmt.Errorf("gnucash: invalid date %q: %w", content, err)
}
