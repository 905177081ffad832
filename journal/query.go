package journal

import (
	"fmt"
	"strings"
	"time"
)

// Query narrows a journal listing. Zero fields match everything.
type Query struct {
	From   string // inclusive, YYYY-MM-DD
	To     string // inclusive, YYYY-MM-DD
	Symbol string // case-insensitive
	Result Result
}

// Day returns a query matching the single calendar day.
func Day(day string) (Query, error) {
	if _, err := time.Parse(DateLayout, day); err != nil {
		return Query{}, fmt.Errorf("day %q: %w", day, err)
	}
	return Query{From: day, To: day}, nil
}

// Today returns the query for the calendar day of now in its location.
func Today(now time.Time) Query {
	d := now.Format(DateLayout)
	return Query{From: d, To: d}
}

// Match reports whether r passes every set criterion. Dates compare
// lexically, which orders ISO dates correctly.
func (q Query) Match(r Record) bool {
	if q.From != "" && r.Date < q.From {
		return false
	}
	if q.To != "" && r.Date > q.To {
		return false
	}
	if q.Symbol != "" && !strings.EqualFold(q.Symbol, r.Symbol) {
		return false
	}
	if q.Result != "" && q.Result != r.Result {
		return false
	}
	return true
}

// Select returns the records matching q, in their original order.
func Select(recs []Record, q Query) []Record {
	var out []Record
	for _, r := range recs {
		if q.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
