package journal

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CSVContentType is the MIME type of an exported journal.
const CSVContentType = "text/csv;charset=utf-8"

// ExportFileName names an export made at now.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("trading_journal_%d.csv", now.UnixMilli())
}

// EncodeCSV writes recs with the Fields header. Every value is quoted and
// lines are joined with "\n" without a trailing newline.
//
// encoding/csv only quotes when it has to, and the export format quotes
// every field, so the writer is done by hand.
func EncodeCSV(w io.Writer, recs []Record) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Join(Fields, ","))
	for i := range recs {
		bw.WriteByte('\n')
		for j, f := range Fields {
			if j > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(quote(field(&recs[i], f)))
		}
	}
	return bw.Flush()
}

// ToCSV is EncodeCSV into a string.
func ToCSV(recs []Record) string {
	var b strings.Builder
	_ = EncodeCSV(&b, recs)
	return b.String()
}

func field(r *Record, name string) string {
	if v, ok := r.Number(name); ok {
		return formatNumber(v)
	}
	v, _ := r.String(name)
	return v
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatNumber(v float64) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RawRow is one decoded CSV line. It is not yet a valid Record: string
// columns are only present if the header named them and the line reached
// them, while every numeric field is present, coerced with a 0 fallback.
type RawRow struct {
	Strings map[string]string
	Numbers map[string]float64
}

// Record overlays the row on base.
func (row RawRow) Record(base Record) Record {
	for k, v := range row.Strings {
		base.SetString(k, v)
	}
	for k, v := range row.Numbers {
		base.SetNumber(k, v)
	}
	return base
}

var lineBreak = regexp.MustCompile(`\r?\n`)

// DecodeCSV reads a journal export. The first non-empty line is the
// header and maps column positions to field names, so reordered or
// partial headers work. Fields are split with a quote-aware scanner.
//
// Lines are split before quotes are considered, so a quoted value holding
// a newline is not supported.
func DecodeCSV(r io.Reader) ([]RawRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return FromCSV(string(data))
}

// FromCSV decodes CSV text. It fails only when there is no header line.
func FromCSV(text string) ([]RawRow, error) {
	var lines []string
	for _, l := range lineBreak.Split(text, -1) {
		if l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCSV
	}

	header := strings.Split(strings.TrimPrefix(lines[0], "\ufeff"), ",")
	for i, h := range header {
		header[i] = strings.ReplaceAll(h, `"`, "")
	}

	rows := make([]RawRow, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cols := splitLine(line)
		row := RawRow{
			Strings: make(map[string]string, len(header)),
			Numbers: make(map[string]float64, len(NumericFields)),
		}
		for i, h := range header {
			if i < len(cols) {
				row.Strings[h] = cols[i]
			}
		}
		for _, f := range NumericFields {
			row.Numbers[f] = parseNumber(row.Strings[f])
			delete(row.Strings, f)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// splitLine splits one CSV line on commas outside quotes. Inside quotes
// "" is a literal quote; any other quote toggles quoted mode.
func splitLine(line string) []string {
	var (
		cols []string
		cur  strings.Builder
		inQ  bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQ && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQ = !inQ
			}
		case c == ',' && !inQ:
			cols = append(cols, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(cols, cur.String())
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
