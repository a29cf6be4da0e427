// Command erpctl keeps flat-file records (invoice PDFs, attendance sheets and
// the delivery log) and runs quick invoice calculations from the terminal.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/atcommodities/erp/internal/calculator"
	"github.com/atcommodities/erp/internal/ledger"
	"github.com/atcommodities/erp/pkg/logging"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("erpctl failed", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "erpctl",
		Usage: "A.T Commodities record keeping",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "records",
				Usage:   "directory for invoices, attendance sheets and the delivery log",
				Value:   "records",
				EnvVars: []string{"RECORDS_DIR"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			logging.Setup(c.String("log-level"), "text")
			return nil
		},
		Action: withLedger(ledger.Menu),
		Commands: []*cli.Command{
			{
				Name:   "menu",
				Usage:  "run the interactive menu",
				Action: withLedger(ledger.Menu),
			},
			{
				Name:   "invoice",
				Usage:  "generate a coal invoice PDF",
				Action: withLedger(ledger.InvoiceFlow),
			},
			{
				Name:   "attendance",
				Usage:  "mark today's attendance",
				Action: withLedger(ledger.AttendanceFlow),
			},
			{
				Name:   "delivery",
				Usage:  "log a delivery",
				Action: withLedger(ledger.DeliveryFlow),
			},
			{
				Name:      "words",
				Usage:     "print an amount in words",
				ArgsUsage: "<amount>",
				Action:    wordsAction,
			},
			{
				Name:  "totals",
				Usage: "compute invoice totals",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "item",
						Usage:    "description:quantity:unit price (repeatable)",
						Required: true,
					},
					&cli.Float64Flag{Name: "tax", Usage: "tax percent"},
					&cli.Float64Flag{Name: "discount", Usage: "discount percent"},
				},
				Action: totalsAction,
			},
		},
	}
}

// withLedger runs an interactive flow on the terminal against the records dir.
func withLedger(flow func(*ledger.Prompter, *ledger.Ledger) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		l, err := ledger.New(c.String("records"))
		if err != nil {
			return err
		}
		return flow(ledger.NewPrompter(os.Stdin, c.App.Writer), l)
	}
}

func wordsAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: erpctl words <amount>", 2)
	}
	amount, err := strconv.ParseFloat(c.Args().First(), 64)
	if err != nil {
		return fmt.Errorf("amount %q: %w", c.Args().First(), err)
	}
	words, err := calculator.TotalToWords(amount)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, words)
	return nil
}

func totalsAction(c *cli.Context) error {
	var items []calculator.LineItem
	for _, raw := range c.StringSlice("item") {
		item, err := ledger.ParseItem(raw)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	totals, err := calculator.ComputeTotals(items, c.Float64("tax"), c.Float64("discount"))
	if err != nil {
		return err
	}
	ledger.PrintTotals(c.App.Writer, totals)
	return nil
}
