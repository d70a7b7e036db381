package cli

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
	Verbose   bool `help:"Enable debug logging." short:"v"`
}

type Commands struct {
	Globals

	Rollover RolloverCmd `cmd:"" help:"Roll a book over into a new fiscal year with opening balance transactions."`
	Balances BalancesCmd `cmd:"" help:"Report the closing balances a rollover would carry over."`
	Dump     DumpCmd     `cmd:"" help:"Dump the decoded object graph of a GnuCash file."`
}
