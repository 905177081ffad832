package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/internal/ui"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/pkg/id"
)

// tradeFlags are the trade form as command line flags.
type tradeFlags struct {
	date, symbol, side, timeframe, setup string
	size, entry, stop, takeProfit, exit  float64
	fees                                 float64
	notes, screenshot, emotion, strategy string
	interactive                          bool
}

func (f *tradeFlags) register(cmd *cobra.Command, base journal.Record) {
	fl := cmd.Flags()
	fl.StringVar(&f.date, "date", base.Date, "trade date (YYYY-MM-DD)")
	fl.StringVarP(&f.symbol, "symbol", "s", base.Symbol, "instrument symbol")
	fl.StringVar(&f.side, "side", base.Side, "LONG or SHORT")
	fl.StringVar(&f.timeframe, "timeframe", base.Timeframe, "chart timeframe")
	fl.StringVar(&f.setup, "setup", base.Setup, "setup name")
	fl.Float64Var(&f.size, "size", base.Size, "position size")
	fl.Float64Var(&f.entry, "entry", base.Entry, "entry price")
	fl.Float64Var(&f.stop, "stop", base.StopLevel, "stop level")
	fl.Float64Var(&f.takeProfit, "tp", base.TakeProfit, "take profit level")
	fl.Float64Var(&f.exit, "exit", base.ActualExit, "actual exit price")
	fl.Float64Var(&f.fees, "fees", base.Fees, "fees paid")
	fl.StringVar(&f.notes, "notes", base.Notes, "free-form notes")
	fl.StringVar(&f.screenshot, "screenshot", base.Screenshot, "screenshot URL")
	fl.StringVar(&f.emotion, "emotion", base.Emotion, "emotional state")
	fl.StringVar(&f.strategy, "strategy", base.Strategy, "strategy name")
	fl.BoolVarP(&f.interactive, "interactive", "i", false, "fill in the form with prompts")
}

// apply lays the flags over r. With onlyChanged set, flags the user did
// not pass leave r alone.
func (f *tradeFlags) apply(cmd *cobra.Command, r journal.Record, onlyChanged bool) journal.Record {
	set := func(name string) bool {
		return !onlyChanged || cmd.Flags().Changed(name)
	}
	if set("date") {
		r.Date = f.date
	}
	if set("symbol") {
		r.Symbol = strings.ToUpper(f.symbol)
	}
	if set("side") {
		r.Side = strings.ToUpper(f.side)
	}
	if set("timeframe") {
		r.Timeframe = f.timeframe
	}
	if set("setup") {
		r.Setup = f.setup
	}
	if set("size") {
		r.Size = f.size
	}
	if set("entry") {
		r.Entry = f.entry
	}
	if set("stop") {
		r.StopLevel = f.stop
	}
	if set("tp") {
		r.TakeProfit = f.takeProfit
	}
	if set("exit") {
		r.ActualExit = f.exit
	}
	if set("fees") {
		r.Fees = f.fees
	}
	if set("notes") {
		r.Notes = f.notes
	}
	if set("screenshot") {
		r.Screenshot = f.screenshot
	}
	if set("emotion") {
		r.Emotion = f.emotion
	}
	if set("strategy") {
		r.Strategy = f.strategy
	}
	return r
}

// warnIfNotID flags an argument that cannot be a generated trade id.
// Imported ids may be anything, so it only warns.
func warnIfNotID(cmd *cobra.Command, tradeID string) {
	if !id.Valid(tradeID) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %q is not a generated trade id; check for typos\n", tradeID)
	}
}

func printSaved(cmd *cobra.Command, verb string, r journal.Record) {
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s trade %s: %s %s %s pnl %.2f R %.2f (%s)\n",
		verb, r.ID, r.Date, r.Symbol, r.Side, r.Pnl, r.RMultiple, r.Result)
}

func newAddCmd(c *cli) *cobra.Command {
	var f tradeFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a new trade",
		Long: `Log a new trade. Unset flags take the blank-form defaults
(today, XAUUSD, LONG, M15, Pivot+EMA+MACD, size 1).

P/L, R-multiple and result are derived on save.

Examples:
  tradejournal add --entry 2350 --stop 2345 --exit 2360 --fees 1.5
  tradejournal add -i`,
		Args: cobra.NoArgs,
	}
	f.register(cmd, journal.NewRecord(c.now()))
	cmd.RunE = c.run(func(cmd *cobra.Command, args []string, s *session) error {
		form := f.apply(cmd, s.app.NewTrade(), false)
		if f.interactive {
			var err error
			if form, err = ui.PromptTrade(form); err != nil {
				return err
			}
		}
		rec, err := s.app.Save(cmd.Context(), "", form)
		if err != nil {
			return fmt.Errorf("save trade: %w", err)
		}
		printSaved(cmd, "Saved", rec)
		return nil
	})
	return cmd
}

func newEditCmd(c *cli) *cobra.Command {
	var f tradeFlags
	cmd := &cobra.Command{
		Use:   "edit <trade-id>",
		Short: "Edit a logged trade",
		Long: `Edit a logged trade. Only the flags given are changed; P/L,
R-multiple and result are derived again on save.

Examples:
  tradejournal edit 01HQ3Z8K9M2N4P6R8T0V2X4Y6Z --exit 2361.5
  tradejournal edit 01HQ3Z8K9M2N4P6R8T0V2X4Y6Z -i`,
		Args: cobra.ExactArgs(1),
	}
	f.register(cmd, journal.Record{})
	cmd.RunE = c.run(func(cmd *cobra.Command, args []string, s *session) error {
		warnIfNotID(cmd, args[0])
		form, err := s.app.EditTrade(args[0])
		if err != nil {
			return err
		}
		form = f.apply(cmd, form, true)
		if f.interactive {
			if form, err = ui.PromptTrade(form); err != nil {
				return err
			}
		}
		rec, err := s.app.Save(cmd.Context(), args[0], form)
		if err != nil {
			return fmt.Errorf("save trade: %w", err)
		}
		printSaved(cmd, "Updated", rec)
		return nil
	})
	return cmd
}

func newShowCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <trade-id>",
		Short: "Show a trade as an Org-mode entry",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, args []string, s *session) error {
		warnIfNotID(cmd, args[0])
		rec, ok := s.app.Store().Get(args[0])
		if !ok {
			return fmt.Errorf("show %s: %w", args[0], journal.ErrNotFound)
		}
		fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(rec))
		return nil
	})
	return cmd
}

func newDeleteCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <trade-id>",
		Short: "Delete a trade after confirmation",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, args []string, s *session) error {
		warnIfNotID(cmd, args[0])
		removed, err := s.app.Delete(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("delete trade: %w", err)
		}
		if removed {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted trade %s\n", args[0])
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted")
		}
		return nil
	})
	return cmd
}

func newClearCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Erase every saved trade after confirmation",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.run(func(cmd *cobra.Command, args []string, s *session) error {
		n := s.app.Store().Len()
		cleared, err := s.app.Clear(cmd.Context())
		if err != nil {
			return fmt.Errorf("clear journal: %w", err)
		}
		if cleared {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared %d trades\n", n)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing cleared")
		}
		return nil
	})
	return cmd
}
