package journal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTradeOrg(t *testing.T) {
	t.Parallel()

	trade := Derive(Record{
		ID:         "01HQ3Z8K9M2N4P6R8T0V2X4Y6Z",
		Date:       "2024-03-15",
		Symbol:     "XAUUSD",
		Side:       "LONG",
		Timeframe:  "M15",
		Setup:      "Pivot+EMA+MACD",
		Size:       1,
		Entry:      2150.5,
		StopLevel:  2145.5,
		TakeProfit: 2165,
		ActualExit: 2160.5,
		Fees:       2,
		Notes:      "held through the pullback",
		Screenshot: "https://example.com/x.png",
		Emotion:    "patient",
		Strategy:   "trend",
	})

	result := FormatTradeOrg(trade)

	assert.Contains(t, result, "** Trade: 2024-03-15 XAUUSD LONG (01HQ3Z8K)")
	assert.Contains(t, result, ":PROPERTIES:")
	assert.Contains(t, result, ":ID: 01HQ3Z8K9M2N4P6R8T0V2X4Y6Z")
	assert.Contains(t, result, ":SYMBOL: XAUUSD")
	assert.Contains(t, result, ":ENTRY: 2150.5")
	assert.Contains(t, result, ":STOP_LEVEL: 2145.5")
	assert.Contains(t, result, ":ACTUAL_EXIT: 2160.5")
	assert.Contains(t, result, ":FEES: 2.00")
	assert.Contains(t, result, ":PNL: 8.00")
	assert.Contains(t, result, ":R_MULTIPLE: 2.00")
	assert.Contains(t, result, ":RESULT: Win")
	assert.Contains(t, result, ":STRATEGY: trend")
	assert.Contains(t, result, ":EMOTION: patient")
	assert.Contains(t, result, ":SCREENSHOT: [[https://example.com/x.png][link]]")
	assert.Contains(t, result, ":END:")

	assert.Contains(t, result, "*** Thesis")
	assert.Contains(t, result, "*** Execution")
	assert.Contains(t, result, "*** Review\n- held through the pullback\n")
}

func TestFormatTradeOrgOmitsEmptyOptionalProperties(t *testing.T) {
	t.Parallel()

	result := FormatTradeOrg(Record{ID: "short", Date: "2024-01-01", Symbol: "EURUSD", Pnl: -500, Result: Loss})

	assert.Contains(t, result, "(short)")
	assert.Contains(t, result, ":PNL: -500.00")
	assert.NotContains(t, result, ":SCREENSHOT:")
	assert.NotContains(t, result, ":EMOTION:")
	assert.NotContains(t, result, ":STRATEGY:")
}

func TestFormatTradesOrg(t *testing.T) {
	t.Parallel()

	trades := []Record{
		{ID: "trade-001", Date: "2024-01-10", Symbol: "EURUSD", Pnl: 200},
		{ID: "trade-002", Date: "2024-01-11", Symbol: "GBPUSD", Pnl: -100},
	}

	result := FormatTradesOrg(trades)

	assert.Contains(t, result, "EURUSD")
	assert.Contains(t, result, "GBPUSD")
	assert.Contains(t, result, "trade-001")
	assert.Contains(t, result, "trade-002")

	parts := strings.Split(result, "\n\n\n")
	assert.Len(t, parts, 2, "Expected two trades separated by blank lines")
}

func TestFormatTradesOrgEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, FormatTradesOrg(nil))
}

func TestShortID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"long ID gets truncated", "trade-12345678-abcdef-more-chars", "trade-12"},
		{"exactly 8 characters", "12345678", "12345678"},
		{"less than 8 characters", "short", "short"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shortID(tt.input))
		})
	}
}

func TestFormatTradeOrgStructure(t *testing.T) {
	t.Parallel()

	lines := strings.Split(FormatTradeOrg(Record{ID: "structure-test", Date: "2024-01-01", Symbol: "AUDUSD"}), "\n")
	require.Greater(t, len(lines), 10)
	assert.True(t, strings.HasPrefix(lines[0], "** Trade:"))

	propertiesStart, propertiesEnd, reviewIdx := -1, -1, -1
	for i, line := range lines {
		switch {
		case line == ":PROPERTIES:":
			propertiesStart = i
		case line == ":END:" && propertiesEnd < 0:
			propertiesEnd = i
		case strings.HasPrefix(line, "*** Review"):
			reviewIdx = i
		}
	}

	assert.Equal(t, 1, propertiesStart)
	assert.Greater(t, propertiesEnd, propertiesStart)
	assert.Greater(t, reviewIdx, propertiesEnd)
}
