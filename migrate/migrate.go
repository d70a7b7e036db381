// Package migrate rolls a GnuCash book over into a new fiscal year. It
// copies the previous year's file, strips every transaction from the copy,
// and synthesizes one opening-balance transaction per nonzero asset or
// liability balance, counter-posted to an equity account.
//
// The engine operates on *gnucash.Book object graphs; files and sessions
// only appear at the edges of Run. Every step can therefore be exercised
// against books built in memory.
package migrate

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/robinvdvleuten/rollover/gnucash"
	"github.com/robinvdvleuten/rollover/telemetry"
)

// DefaultAccountTypes selects which top-level account subtrees contribute
// opening balances.
var DefaultAccountTypes = []gnucash.AccountType{
	gnucash.AccountTypeAsset,
	gnucash.AccountTypeLiability,
}

// Options configures a migration run. Zero fields fall back to the
// defaults GnuCash users expect.
type Options struct {
	// PreviousFile is the closed fiscal year, opened read-only.
	PreviousFile string

	// NewFile is the destination; it is created by copying PreviousFile
	// and must not be open elsewhere.
	NewFile string

	// EquityName is the top-level placeholder equity account.
	EquityName string

	// EquityOpeningName is the postable equity account nested under
	// EquityName that counter-posts every opening balance.
	EquityOpeningName string

	// Description is the text on each synthesized transaction.
	Description string

	// OpeningDate is the posted date of the opening transactions and the
	// reference date for currency conversion.
	OpeningDate time.Time

	// AccountTypes filters which top-level subtrees are carried over.
	AccountTypes []gnucash.AccountType

	// Logger receives one line per pipeline step, so a failed run shows
	// the last completed step.
	Logger *log.Logger
}

func (o Options) withDefaults() Options {
	if o.EquityName == "" {
		o.EquityName = "Equity"
	}
	if o.EquityOpeningName == "" {
		o.EquityOpeningName = "Opening balance"
	}
	if o.Description == "" {
		o.Description = "Opening balance"
	}
	if len(o.AccountTypes) == 0 {
		o.AccountTypes = DefaultAccountTypes
	}
	if o.OpeningDate.IsZero() {
		o.OpeningDate = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Result summarizes a completed run.
type Result struct {
	// BalancesExtracted counts the accounts considered, zero balances
	// included.
	BalancesExtracted int

	// TransactionsPurged counts the inherited transactions destroyed in
	// the new file.
	TransactionsPurged int

	// TransactionsCreated counts the synthesized opening transactions.
	TransactionsCreated int
}

// Run executes the migration pipeline: copy, purge, extract, scaffold,
// synthesize, save. It fails fast on the first error; both sessions are
// released on every path, but no partial-state rollback is attempted on
// the destination file.
func Run(ctx context.Context, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	logger := opts.Logger
	collector := telemetry.FromContext(ctx)
	result := &Result{}

	logger.Info("copying previous year's file", "from", opts.PreviousFile, "to", opts.NewFile)
	stop := collector.Start("copy file")
	if err := CopyFile(opts.PreviousFile, opts.NewFile); err != nil {
		return nil, err
	}
	stop()

	newSession, err := gnucash.OpenSession(opts.NewFile, gnucash.OpenNormal)
	if err != nil {
		return nil, err
	}
	defer newSession.End()

	logger.Info("deleting transactions from new year's file")
	stop = collector.Start("purge transactions")
	result.TransactionsPurged = PurgeTransactions(newSession.Book())
	stop()

	logger.Info("reading balances from previous year's file", "file", opts.PreviousFile)
	prevSession, err := gnucash.OpenSession(opts.PreviousFile, gnucash.OpenReadOnly)
	if err != nil {
		return nil, err
	}
	defer prevSession.End()

	stop = collector.Start("extract balances")
	balances := ExtractBalances(prevSession.Book(), opts.AccountTypes)
	stop()
	result.BalancesExtracted = len(balances)

	logger.Info("preparing opening balances counter account",
		"account", opts.EquityName+gnucash.FullNameSeparator+opts.EquityOpeningName)
	stop = collector.Start("equity scaffolding")
	equity, err := EnsureEquityAccounts(newSession.Book(), opts.EquityName, opts.EquityOpeningName)
	if err != nil {
		return nil, err
	}
	stop()

	stop = collector.Start("opening transactions")
	created, err := CreateOpeningTransactions(ctx, newSession.Book(), balances, equity, opts)
	if err != nil {
		return nil, err
	}
	stop()
	result.TransactionsCreated = created

	logger.Info("saving new year's file", "file", opts.NewFile)
	stop = collector.Start("save")
	if err := newSession.Save(); err != nil {
		return nil, err
	}
	stop()

	if err := newSession.End(); err != nil {
		return nil, err
	}
	if err := prevSession.End(); err != nil {
		return nil, err
	}

	logger.Info("done",
		"balances", result.BalancesExtracted,
		"purged", result.TransactionsPurged,
		"created", result.TransactionsCreated)
	return result, nil
}
