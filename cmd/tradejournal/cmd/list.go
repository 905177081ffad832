package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/internal/ui"
	"github.com/rustyeddy/tradejournal/journal"
)

func newListCmd(c *cli) *cobra.Command {
	var (
		q     journal.Query
		day   string
		today bool
		org   bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journaled trades",
		Long: `List trades in journal order as a table, or as Org-mode entries.

Examples:
  tradejournal list
  tradejournal list --today --org
  tradejournal list --day 2024-01-15
  tradejournal list --from 2024-01-01 --to 2024-01-31 --symbol xauusd`,
		Args: cobra.NoArgs,
	}
	fl := cmd.Flags()
	fl.StringVar(&q.From, "from", "", "first date to include (YYYY-MM-DD)")
	fl.StringVar(&q.To, "to", "", "last date to include (YYYY-MM-DD)")
	fl.StringVar(&q.Symbol, "symbol", "", "only this symbol")
	fl.StringVar(&q.Result, "result", "", "only Win, Loss or Breakeven")
	fl.StringVar(&day, "day", "", "only this day (YYYY-MM-DD)")
	fl.BoolVar(&today, "today", false, "only today's trades")
	fl.BoolVar(&org, "org", false, "print Org-mode entries instead of a table")
	cmd.MarkFlagsMutuallyExclusive("day", "today")

	cmd.RunE = c.run(func(cmd *cobra.Command, args []string, s *session) error {
		sel := q
		switch {
		case today:
			t := journal.Today(c.now().In(time.Local))
			sel.From, sel.To = t.From, t.To
		case day != "":
			d, err := journal.Day(day)
			if err != nil {
				return fmt.Errorf("date: %w", err)
			}
			sel.From, sel.To = d.From, d.To
		}

		recs := s.app.List(sel)
		out := cmd.OutOrStdout()
		if len(recs) == 0 {
			fmt.Fprintln(out, "No trades yet")
			return nil
		}
		if org {
			fmt.Fprintln(out, journal.FormatTradesOrg(recs))
			return nil
		}
		fmt.Fprintln(out, ui.TradesTable(recs))
		return nil
	})
	return cmd
}

func newEquityCmd(c *cli) *cobra.Command {
	var asCSV bool
	cmd := &cobra.Command{
		Use:   "equity",
		Short: "Show the cumulative equity curve",
		Long: `Show the running total of P/L with trades ordered by date.
Trades on the same date keep their journal order.`,
		Args: cobra.NoArgs,
	}
	cmd.Flags().BoolVar(&asCSV, "csv", false, "print date,equity CSV")

	cmd.RunE = c.run(func(cmd *cobra.Command, args []string, s *session) error {
		curve := s.app.Equity()
		out := cmd.OutOrStdout()
		if asCSV {
			fmt.Fprint(out, curve.ToCSV())
			return nil
		}
		if len(curve) == 0 {
			fmt.Fprintln(out, "No trades yet")
			return nil
		}
		fmt.Fprintln(out, ui.EquityTable(curve))
		fmt.Fprintf(out, "Final equity: %.2f\n", curve.Final())
		return nil
	})
	return cmd
}
