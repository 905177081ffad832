// Package journal holds the trade journal: the trade record, its derived
// metrics, the CSV codec, the persisted store and the equity curve.
package journal

import (
	"time"
)

// DateLayout is the ISO 8601 calendar date used for Record.Date.
const DateLayout = "2006-01-02"

// Result classifies a trade by the sign of its pnl.
type Result = string

const (
	Win       Result = "Win"
	Loss      Result = "Loss"
	Breakeven Result = "Breakeven"
)

// Record is one journaled trade. The json names are the persisted blob
// shape and the CSV column names.
//
// Pnl, RMultiple and Result are derived by Derive and are never edited
// directly.
type Record struct {
	ID         string  `json:"id"`
	Date       string  `json:"date" validate:"required"`
	Symbol     string  `json:"symbol" validate:"required"`
	Side       string  `json:"side"`
	Timeframe  string  `json:"timeframe"`
	Setup      string  `json:"setup"`
	Size       float64 `json:"size"`
	Entry      float64 `json:"entry"`
	StopLevel  float64 `json:"stopLevel"`
	TakeProfit float64 `json:"takeProfit"`
	ActualExit float64 `json:"actualExit"`
	Fees       float64 `json:"fees"`
	Pnl        float64 `json:"pnl"`
	RMultiple  float64 `json:"rMultiple"`
	Notes      string  `json:"notes"`
	Screenshot string  `json:"screenshot"`
	Emotion    string  `json:"emotion"`
	Strategy   string  `json:"strategy"`
	Result     Result  `json:"result"`
}

// Fields is the canonical column order used for CSV export.
var Fields = []string{
	"id", "date", "symbol", "side", "timeframe", "setup",
	"size", "entry", "stopLevel", "takeProfit", "actualExit", "fees",
	"pnl", "rMultiple",
	"notes", "screenshot", "emotion", "strategy", "result",
}

// NumericFields are coerced to float64 on import.
var NumericFields = []string{
	"size", "entry", "stopLevel", "takeProfit", "actualExit", "fees", "pnl", "rMultiple",
}

// Defaults used by NewRecord.
const (
	DefaultSymbol    = "XAUUSD"
	DefaultSide      = "LONG"
	DefaultTimeframe = "M15"
	DefaultSetup     = "Pivot+EMA+MACD"
	DefaultSize      = 1
)

// NewRecord returns the blank form for a new, unsaved trade dated now.
func NewRecord(now time.Time) Record {
	return Record{
		Date:      now.Format(DateLayout),
		Symbol:    DefaultSymbol,
		Side:      DefaultSide,
		Timeframe: DefaultTimeframe,
		Setup:     DefaultSetup,
		Size:      DefaultSize,
	}
}

// String returns the value of a string column by its CSV name.
func (r *Record) String(field string) (string, bool) {
	switch field {
	case "id":
		return r.ID, true
	case "date":
		return r.Date, true
	case "symbol":
		return r.Symbol, true
	case "side":
		return r.Side, true
	case "timeframe":
		return r.Timeframe, true
	case "setup":
		return r.Setup, true
	case "notes":
		return r.Notes, true
	case "screenshot":
		return r.Screenshot, true
	case "emotion":
		return r.Emotion, true
	case "strategy":
		return r.Strategy, true
	case "result":
		return r.Result, true
	}
	return "", false
}

// SetString assigns a string column by its CSV name. Unknown names are
// ignored and reported false.
func (r *Record) SetString(field, v string) bool {
	switch field {
	case "id":
		r.ID = v
	case "date":
		r.Date = v
	case "symbol":
		r.Symbol = v
	case "side":
		r.Side = v
	case "timeframe":
		r.Timeframe = v
	case "setup":
		r.Setup = v
	case "notes":
		r.Notes = v
	case "screenshot":
		r.Screenshot = v
	case "emotion":
		r.Emotion = v
	case "strategy":
		r.Strategy = v
	case "result":
		r.Result = v
	default:
		return false
	}
	return true
}

// Number returns the value of a numeric column by its CSV name.
func (r *Record) Number(field string) (float64, bool) {
	switch field {
	case "size":
		return r.Size, true
	case "entry":
		return r.Entry, true
	case "stopLevel":
		return r.StopLevel, true
	case "takeProfit":
		return r.TakeProfit, true
	case "actualExit":
		return r.ActualExit, true
	case "fees":
		return r.Fees, true
	case "pnl":
		return r.Pnl, true
	case "rMultiple":
		return r.RMultiple, true
	}
	return 0, false
}

// SetNumber assigns a numeric column by its CSV name.
func (r *Record) SetNumber(field string, v float64) bool {
	switch field {
	case "size":
		r.Size = v
	case "entry":
		r.Entry = v
	case "stopLevel":
		r.StopLevel = v
	case "takeProfit":
		r.TakeProfit = v
	case "actualExit":
		r.ActualExit = v
	case "fees":
		r.Fees = v
	case "pnl":
		r.Pnl = v
	case "rMultiple":
		r.RMultiple = v
	default:
		return false
	}
	return true
}
