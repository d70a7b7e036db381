package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-runewidth"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"github.com/robinvdvleuten/rollover/gnucash"
	"github.com/robinvdvleuten/rollover/migrate"
)

type BalancesCmd struct {
	File string `arg:"" type:"existingfile" help:"GnuCash file to report closing balances for."`

	Format string   `help:"Output format." enum:"text,yaml" default:"text"`
	Type   []string `help:"Top-level account types to include." default:"ASSET,LIABILITY"`
}

// balanceRow is the YAML shape of one reported balance.
type balanceRow struct {
	Account   string `yaml:"account"`
	Amount    string `yaml:"amount"`
	Commodity string `yaml:"commodity"`
}

func (cmd *BalancesCmd) Run(ctx *kong.Context) error {
	session, err := gnucash.OpenSession(cmd.File, gnucash.OpenReadOnly)
	if err != nil {
		return err
	}
	defer session.End()

	types := make([]gnucash.AccountType, 0, len(cmd.Type))
	for _, t := range cmd.Type {
		types = append(types, gnucash.AccountType(strings.ToUpper(t)))
	}

	balances := migrate.ExtractBalances(session.Book(), types)
	names := maps.Keys(balances)
	slices.Sort(names)

	if cmd.Format == "yaml" {
		rows := make([]balanceRow, 0, len(names))
		for _, name := range names {
			balance := balances[name]
			rows = append(rows, balanceRow{
				Account:   name,
				Amount:    balance.Amount.String(),
				Commodity: balance.Commodity.ID,
			})
		}

		out, err := yaml.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to marshal balances: %w", err)
		}
		_, _ = ctx.Stdout.Write(out)
		return nil
	}

	width := 0
	for _, name := range names {
		if w := runewidth.StringWidth(name); w > width {
			width = w
		}
	}

	for _, name := range names {
		balance := balances[name]
		padding := strings.Repeat(" ", width-runewidth.StringWidth(name))
		_, _ = fmt.Fprintf(ctx.Stdout, "%s%s  %s %s\n",
			accountStyle.Render(name),
			padding,
			amountStyle.Render(fmt.Sprintf("%14s", balance.Amount.String())),
			balance.Commodity.ID,
		)
	}

	return nil
}
