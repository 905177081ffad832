package journal

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// EquityPoint is the cumulative pnl after the trade dated Date.
type EquityPoint struct {
	Date   string  `json:"date"`
	Equity float64 `json:"equity"`
}

// EquityCurve is a date-ordered running total of realized pnl.
type EquityCurve []EquityPoint

// Equity projects recs onto an equity curve. A copy of recs is stably
// sorted by date (ISO dates sort lexically), so trades sharing a date
// keep their journal order. One point is emitted per trade.
func Equity(recs []Record) EquityCurve {
	sorted := make([]Record, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	curve := make(EquityCurve, 0, len(sorted))
	cumulative := decimal.Zero
	for _, r := range sorted {
		cumulative = cumulative.Add(num(r.Pnl))
		curve = append(curve, EquityPoint{Date: r.Date, Equity: cumulative.InexactFloat64()})
	}
	return curve
}

// Final returns the last cumulative value, 0 for an empty curve.
func (e EquityCurve) Final() float64 {
	if len(e) == 0 {
		return 0
	}
	return e[len(e)-1].Equity
}

// ToCSV exports the curve with a date,equity header.
func (e EquityCurve) ToCSV() string {
	var buf bytes.Buffer
	buf.WriteString("date,equity\n")
	for _, p := range e {
		buf.WriteString(p.Date)
		buf.WriteString(",")
		buf.WriteString(strconv.FormatFloat(p.Equity, 'f', 2, 64))
		buf.WriteString("\n")
	}
	return buf.String()
}
