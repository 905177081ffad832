package metrics

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradejournal/blob"
	"github.com/rustyeddy/tradejournal/journal"
)

func trade(symbol string, entry, exit float64) journal.Record {
	return journal.Record{
		Date: "2024-03-01", Symbol: symbol, Side: "LONG",
		Size: 1, Entry: entry, StopLevel: entry - 10, ActualExit: exit,
	}
}

func TestAttachFollowsStore(t *testing.T) {
	ctx := context.Background()
	store := journal.Open(ctx, blob.NewMemory())
	_, err := store.Create(ctx, trade("XAUUSD", 100, 110))
	require.NoError(t, err)

	m := New()
	m.now = func() time.Time { return time.Unix(1700000000, 0) }
	detach := m.Attach(store)
	defer detach()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Trades))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.NetPnl))

	rec, err := store.Create(ctx, trade("EURUSD", 100, 95))
	require.NoError(t, err)
	_, err = store.Delete(ctx, rec.ID)
	require.NoError(t, err)
	_, err = store.Create(ctx, trade("XAUUSD", 100, 120))
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Operations.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("deleted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Trades))
	assert.Equal(t, 30.0, testutil.ToFloat64(m.NetPnl))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(m.LastMutation))

	require.NoError(t, store.Clear(ctx))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Trades))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("cleared")))
}

func TestDetachStopsCounting(t *testing.T) {
	ctx := context.Background()
	store := journal.Open(ctx, blob.NewMemory())

	m := New()
	m.Attach(store)()

	_, err := store.Create(ctx, trade("XAUUSD", 100, 110))
	require.NoError(t, err)
	assert.Equal(t, 0, testutil.CollectAndCount(m.Operations))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Trades))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Operations.WithLabelValues("imported").Add(3)
	m.Trades.Set(7)

	path := filepath.Join(t.TempDir(), "tradejournal.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `tradejournal_operations_total{op="imported"} 3`)
	assert.Contains(t, out, "tradejournal_trades 7")

	expected := `
# HELP tradejournal_trades Trades currently in the journal
# TYPE tradejournal_trades gauge
tradejournal_trades 7
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "tradejournal_trades"))
}

func TestWriteTextfileBadPath(t *testing.T) {
	m := New()
	err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
	assert.ErrorContains(t, err, "write metrics textfile")
}
