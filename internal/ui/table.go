// Package ui renders the journal for a terminal and asks the questions
// the CLI needs answered.
package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rustyeddy/tradejournal/journal"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	winStyle  = cellStyle.Foreground(lipgloss.Color("#10B981"))
	lossStyle = cellStyle.Foreground(lipgloss.Color("#EF4444"))
	flatStyle = cellStyle.Foreground(lipgloss.Color("#6B7280"))

	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// TradeHeaders are the columns of TradesTable.
var TradeHeaders = []string{
	"ID", "Date", "Symbol", "Side", "TF", "Setup",
	"Size", "Entry", "Stop", "TP", "Exit", "Fees", "PnL", "R", "Result",
}

const (
	pnlCol = 12
	rCol   = 13
)

// TradeRows flattens recs into table cells, in TradeHeaders order.
func TradeRows(recs []journal.Record) [][]string {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			r.ID, r.Date, r.Symbol, r.Side, r.Timeframe, r.Setup,
			number(r.Size), number(r.Entry), number(r.StopLevel), number(r.TakeProfit),
			number(r.ActualExit), money(r.Fees), money(r.Pnl), money(r.RMultiple), r.Result,
		})
	}
	return rows
}

// TradesTable renders recs with pnl, R and result colored by outcome.
func TradesTable(recs []journal.Record) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(TradeHeaders...).
		Rows(TradeRows(recs)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(recs) {
				return cellStyle
			}
			if res, ok := cellOutcome(recs[row], col); ok {
				return outcomeStyle(res)
			}
			return cellStyle
		})
	return t.Render()
}

// cellOutcome picks the outcome a trade cell is colored by: the R column
// by the sign of R, pnl and result by the sign of pnl.
func cellOutcome(r journal.Record, col int) (journal.Result, bool) {
	switch col {
	case rCol:
		return journal.Classify(r.RMultiple), true
	case pnlCol, len(TradeHeaders) - 1:
		return journal.Classify(r.Pnl), true
	}
	return "", false
}

// EquityTable renders the curve one point per row.
func EquityTable(curve journal.EquityCurve) string {
	rows := make([][]string, 0, len(curve))
	for _, p := range curve {
		rows = append(rows, []string{p.Date, money(p.Equity)})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("Date", "Equity").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 1 && row >= 0 && row < len(curve) {
				return outcomeStyle(journal.Classify(curve[row].Equity))
			}
			return cellStyle
		})
	return t.Render()
}

func outcomeStyle(res journal.Result) lipgloss.Style {
	switch res {
	case journal.Win:
		return winStyle
	case journal.Loss:
		return lossStyle
	default:
		return flatStyle
	}
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
