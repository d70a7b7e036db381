package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/robinvdvleuten/rollover/migrate"
	"github.com/robinvdvleuten/rollover/telemetry"
)

// openingDateLayout is the ISO-8601 calendar-date form accepted by
// --opening-date.
const openingDateLayout = "2006-01-02"

type RolloverCmd struct {
	PreviousFile string `arg:"" type:"existingfile" help:"GnuCash file of the previous year."`
	NewFile      string `arg:"" help:"GnuCash file to create for the new year."`

	EquityName        string `help:"Name of the top-level placeholder equity account." default:"Equity"`
	EquityOpeningName string `help:"Name of the equity opening account." default:"Opening balance"`
	Description       string `help:"Description for the opening transactions." default:"Opening balance"`
	OpeningDate       string `help:"Date for the opening transactions (YYYY-MM-DD)." default:"2025-01-01"`
	Force             bool   `help:"Overwrite the new file without asking."`
}

func (cmd *RolloverCmd) Run(ctx *kong.Context, globals *Globals) error {
	openingDate, err := time.Parse(openingDateLayout, cmd.OpeningDate)
	if err != nil {
		return fmt.Errorf("invalid opening date %q: expected YYYY-MM-DD", cmd.OpeningDate)
	}

	if _, err := os.Stat(cmd.NewFile); err == nil && !cmd.Force {
		overwrite, err := promptYesNo(fmt.Sprintf("%s already exists. Overwrite it?", cmd.NewFile))
		if err != nil {
			return err
		}
		if !overwrite {
			printInfof(ctx.Stdout, "aborted, %s left untouched", cmd.NewFile)
			return NewCommandError(1)
		}
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "rollover",
	})
	if globals.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	runCtx := context.Background()
	var collector *telemetry.Collector
	if globals.Telemetry {
		collector = telemetry.NewCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)
		defer func() {
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr)
		}()
	}

	result, err := migrate.Run(runCtx, migrate.Options{
		PreviousFile:      cmd.PreviousFile,
		NewFile:           cmd.NewFile,
		EquityName:        cmd.EquityName,
		EquityOpeningName: cmd.EquityOpeningName,
		Description:       cmd.Description,
		OpeningDate:       openingDate,
		Logger:            logger,
	})
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return NewCommandError(1)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf(
		"%s ready: %d opening transactions created, %d inherited transactions removed",
		cmd.NewFile, result.TransactionsCreated, result.TransactionsPurged,
	))

	return nil
}
