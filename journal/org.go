package journal

import (
	"fmt"
	"strings"
)

// FormatTradeOrg renders a Record as an Org-mode block suitable for pasting into a journal.
// Structured facts go in a PROPERTIES drawer; notes land under Review.
func FormatTradeOrg(t Record) string {
	heading := fmt.Sprintf("** Trade: %s %s %s (%s)", t.Date, t.Symbol, t.Side, shortID(t.ID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":DATE: %s\n", t.Date))
	b.WriteString(fmt.Sprintf(":SYMBOL: %s\n", t.Symbol))
	b.WriteString(fmt.Sprintf(":SIDE: %s\n", t.Side))
	b.WriteString(fmt.Sprintf(":TIMEFRAME: %s\n", t.Timeframe))
	b.WriteString(fmt.Sprintf(":SETUP: %s\n", t.Setup))
	b.WriteString(fmt.Sprintf(":SIZE: %s\n", formatNumber(t.Size)))
	b.WriteString(fmt.Sprintf(":ENTRY: %s\n", formatNumber(t.Entry)))
	b.WriteString(fmt.Sprintf(":STOP_LEVEL: %s\n", formatNumber(t.StopLevel)))
	b.WriteString(fmt.Sprintf(":TAKE_PROFIT: %s\n", formatNumber(t.TakeProfit)))
	b.WriteString(fmt.Sprintf(":ACTUAL_EXIT: %s\n", formatNumber(t.ActualExit)))
	b.WriteString(fmt.Sprintf(":FEES: %.2f\n", t.Fees))
	b.WriteString(fmt.Sprintf(":PNL: %.2f\n", t.Pnl))
	b.WriteString(fmt.Sprintf(":R_MULTIPLE: %.2f\n", t.RMultiple))
	b.WriteString(fmt.Sprintf(":RESULT: %s\n", t.Result))
	if t.Strategy != "" {
		b.WriteString(fmt.Sprintf(":STRATEGY: %s\n", t.Strategy))
	}
	if t.Emotion != "" {
		b.WriteString(fmt.Sprintf(":EMOTION: %s\n", t.Emotion))
	}
	if t.Screenshot != "" {
		b.WriteString(fmt.Sprintf(":SCREENSHOT: [[%s][link]]\n", t.Screenshot))
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n- ")
	b.WriteString(t.Notes)
	b.WriteString("\n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []Record) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
