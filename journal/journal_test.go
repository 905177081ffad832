package journal

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordDefaults(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 22, 30, 0, 0, time.UTC)
	r := NewRecord(now)

	assert.Equal(t, "2024-03-15", r.Date)
	assert.Equal(t, "XAUUSD", r.Symbol)
	assert.Equal(t, "LONG", r.Side)
	assert.Equal(t, "M15", r.Timeframe)
	assert.Equal(t, "Pivot+EMA+MACD", r.Setup)
	assert.Equal(t, 1.0, r.Size)
	assert.Empty(t, r.ID)
	assert.Empty(t, r.Result)
	assert.Zero(t, r.Entry)
	assert.Zero(t, r.Pnl)
	assert.NoError(t, Validate(r))
}

func TestRecordFieldAccessors(t *testing.T) {
	t.Parallel()

	var r Record
	for _, f := range Fields {
		if _, ok := r.Number(f); ok {
			assert.True(t, r.SetNumber(f, 7), f)
			v, _ := r.Number(f)
			assert.Equal(t, 7.0, v, f)
			continue
		}
		assert.True(t, r.SetString(f, f+"-value"), f)
		v, ok := r.String(f)
		assert.True(t, ok, f)
		assert.Equal(t, f+"-value", v, f)
	}

	assert.False(t, r.SetString("bogus", "x"))
	assert.False(t, r.SetNumber("bogus", 1))
	_, ok := r.String("size")
	assert.False(t, ok)
}

func TestNumericFieldsAreNumbers(t *testing.T) {
	t.Parallel()

	var r Record
	for _, f := range NumericFields {
		_, ok := r.Number(f)
		assert.True(t, ok, f)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rec    Record
		fields []string
	}{
		{"valid", Record{Date: "2024-01-01", Symbol: "XAUUSD"}, nil},
		{"missing symbol", Record{Date: "2024-01-01"}, []string{"Symbol"}},
		{"missing date", Record{Symbol: "XAUUSD"}, []string{"Date"}},
		{"missing both", Record{}, []string{"Date", "Symbol"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.rec)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.fields, ve.Fields)
		})
	}

	assert.Equal(t, "Date & Symbol required", (&ValidationError{Fields: []string{"Date", "Symbol"}}).Error())
}
