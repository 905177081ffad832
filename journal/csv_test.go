package journal

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []Record {
	return []Record{
		Derive(Record{
			ID:         "T1",
			Date:       "2024-01-02",
			Symbol:     "XAUUSD",
			Side:       "LONG",
			Timeframe:  "M15",
			Setup:      "Pivot+EMA+MACD",
			Size:       2,
			Entry:      2030.5,
			StopLevel:  2025,
			TakeProfit: 2045,
			ActualExit: 2041.25,
			Fees:       3.4,
			Notes:      `He said "hi", ok`,
			Screenshot: "https://example.com/shot.png?a=1,b=2",
			Emotion:    "calm",
			Strategy:   "breakout",
		}),
		Derive(Record{
			ID:         "T2",
			Date:       "2024-01-03",
			Symbol:     "EURUSD",
			Side:       "SHORT",
			Size:       10000,
			Entry:      1.0950,
			StopLevel:  1.0970,
			ActualExit: 1.0965,
			Notes:      "",
		}),
	}
}

func TestCSVHeader(t *testing.T) {
	t.Parallel()

	out := ToCSV(nil)
	assert.Equal(t, "id,date,symbol,side,timeframe,setup,size,entry,stopLevel,takeProfit,actualExit,fees,pnl,rMultiple,notes,screenshot,emotion,strategy,result", out)
	assert.Len(t, Fields, 19)
}

func TestEncodeCSVRow(t *testing.T) {
	t.Parallel()

	rec := Record{
		ID:     "T1",
		Date:   "2024-01-02",
		Symbol: "XAUUSD",
		Size:   1.5,
		Entry:  -0.0,
		Pnl:    -12.5,
		Notes:  `a "quoted", note`,
		Result: Loss,
	}
	out := ToCSV([]Record{rec})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)

	want := `"T1","2024-01-02","XAUUSD","","","","1.5","0","0","0","0","0","-12.5","0","a ""quoted"", note","","","","Loss"`
	assert.Equal(t, want, lines[1])
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestEncodeCSVWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, sampleRecords()))
	assert.Equal(t, ToCSV(sampleRecords()), buf.String())
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestCSVRoundTrip(t *testing.T) {
	t.Parallel()

	recs := sampleRecords()
	rows, err := FromCSV(ToCSV(recs))
	require.NoError(t, err)
	require.Len(t, rows, len(recs))

	for i, row := range rows {
		got := row.Record(Record{})
		assert.Equal(t, recs[i], got)
	}
}

func TestDecodeEmbeddedQuotesAndCommas(t *testing.T) {
	t.Parallel()

	text := "id,symbol,notes\n" + `"A1","XAUUSD","He said ""hi"", ok"`
	rows, err := FromCSV(text)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, `He said "hi", ok`, rows[0].Strings["notes"])
	assert.Equal(t, "XAUUSD", rows[0].Strings["symbol"])
}

func TestDecodeHeaderIsPositional(t *testing.T) {
	t.Parallel()

	text := "\"symbol\",\"pnl\",\"date\"\r\nEURUSD,12.5,2024-05-01\r\n\r\nGBPUSD,oops,2024-05-02\r\n"
	rows, err := FromCSV(text)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "EURUSD", rows[0].Strings["symbol"])
	assert.Equal(t, "2024-05-01", rows[0].Strings["date"])
	assert.Equal(t, 12.5, rows[0].Numbers["pnl"])
	assert.Equal(t, 0.0, rows[1].Numbers["pnl"], "non-numeric falls back to 0")

	_, hasID := rows[0].Strings["id"]
	assert.False(t, hasID)
	_, hasResult := rows[0].Strings["result"]
	assert.False(t, hasResult)
}

func TestDecodeNumericFieldsAlwaysPresent(t *testing.T) {
	t.Parallel()

	rows, err := FromCSV("symbol\nXAUUSD")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	for _, f := range NumericFields {
		v, ok := rows[0].Numbers[f]
		assert.True(t, ok, f)
		assert.Equal(t, 0.0, v, f)
	}
	for _, f := range NumericFields {
		_, ok := rows[0].Strings[f]
		assert.False(t, ok, f)
	}
}

func TestDecodeShortLine(t *testing.T) {
	t.Parallel()

	rows, err := FromCSV("id,symbol,notes,emotion\nA1,XAUUSD")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A1", rows[0].Strings["id"])
	_, ok := rows[0].Strings["notes"]
	assert.False(t, ok)
}

func TestDecodeNumbers(t *testing.T) {
	t.Parallel()

	rows, err := FromCSV("size,entry,stopLevel,takeProfit,actualExit,fees\n\" 3 \",1e2,-4.5,NaN,Inf,")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	n := rows[0].Numbers
	assert.Equal(t, 3.0, n["size"])
	assert.Equal(t, 100.0, n["entry"])
	assert.Equal(t, -4.5, n["stopLevel"])
	assert.Equal(t, 0.0, n["takeProfit"])
	assert.Equal(t, 0.0, n["actualExit"])
	assert.Equal(t, 0.0, n["fees"])
}

func TestDecodeHeaderOnly(t *testing.T) {
	t.Parallel()

	rows, err := FromCSV(ToCSV(nil))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDecodeEmpty(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "\n", "\r\n\r\n"} {
		_, err := FromCSV(text)
		assert.ErrorIs(t, err, ErrEmptyCSV)
	}
}

func TestDecodeStripsBOM(t *testing.T) {
	t.Parallel()

	rows, err := FromCSV("\ufeffid,symbol\nA1,XAUUSD")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A1", rows[0].Strings["id"])
}

func TestDecodeNewlineInsideQuotesIsSplit(t *testing.T) {
	t.Parallel()

	// Lines are split before quote handling, so the quoted newline
	// produces two rows.
	rows, err := FromCSV("symbol,notes\nXAUUSD,\"line one\nline two\"")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "line one", rows[0].Strings["notes"])
}

func TestDecodeCSVReaderError(t *testing.T) {
	t.Parallel()

	_, err := DecodeCSV(iotest.ErrReader(errors.New("boom")))
	assert.Error(t, err)
}

func TestDecodeCSVReader(t *testing.T) {
	t.Parallel()

	rows, err := DecodeCSV(strings.NewReader(ToCSV(sampleRecords())))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestExportFileName(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1700000000123)
	assert.Equal(t, "trading_journal_1700000000123.csv", ExportFileName(now))
}
