package journal

import (
	"math"

	"github.com/shopspring/decimal"
)

// Derive returns a copy of r with Pnl, RMultiple and Result recomputed
// from Entry, ActualExit, StopLevel, Size and Fees:
//
//	pnl       = (actualExit - entry) * size - fees
//	rMultiple = (actualExit - entry) / |entry - stopLevel|, or 0 with no stop distance
//
// Both are rounded to 2 places. Non-finite inputs count as 0 and are
// stored as 0.
func Derive(r Record) Record {
	r.Size = finite(r.Size)
	r.Entry = finite(r.Entry)
	r.StopLevel = finite(r.StopLevel)
	r.TakeProfit = finite(r.TakeProfit)
	r.ActualExit = finite(r.ActualExit)
	r.Fees = finite(r.Fees)

	entry := num(r.Entry)
	exit := num(r.ActualExit)
	stop := num(r.StopLevel)
	size := num(r.Size)
	fees := num(r.Fees)

	move := exit.Sub(entry)
	pnl := move.Mul(size).Sub(fees).Round(2)

	rMultiple := decimal.Zero
	if risk := entry.Sub(stop).Abs(); risk.IsPositive() {
		rMultiple = move.DivRound(risk, 16).Round(2)
	}

	r.Pnl = pnl.InexactFloat64()
	r.RMultiple = rMultiple.InexactFloat64()
	r.Result = Classify(r.Pnl)
	return r
}

// Classify maps a pnl to Win, Loss or Breakeven.
func Classify(pnl float64) Result {
	switch {
	case pnl > 0:
		return Win
	case pnl < 0:
		return Loss
	default:
		return Breakeven
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func num(v float64) decimal.Decimal {
	return decimal.NewFromFloat(finite(v))
}
