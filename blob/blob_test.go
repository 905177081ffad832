package blob

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradejournal/config"
)

// exerciseStore runs the contract every backend must meet.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "trades")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "trades", []byte(`[{"id":"a"}]`)))
	got, err := s.Get(ctx, "trades")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(got))

	require.NoError(t, s.Set(ctx, "trades", []byte(`[]`)))
	got, err = s.Get(ctx, "trades")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, s.Set(ctx, "other", []byte(`x`)))

	require.NoError(t, s.Delete(ctx, "trades"))
	_, err = s.Get(ctx, "trades")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx, "trades"), "deleting a missing key is fine")

	got, err = s.Get(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))
}

func TestOpenBackends(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  config.StorageConfig
		want interface{}
	}{
		{"file", config.StorageConfig{Backend: config.BackendFile, Path: filepath.Join(dir, "files")}, &FileStore{}},
		{"empty means file", config.StorageConfig{Path: filepath.Join(dir, "files2")}, &FileStore{}},
		{"sqlite", config.StorageConfig{Backend: config.BackendSQLite, DBPath: filepath.Join(dir, "j.sqlite")}, &SQLiteStore{}},
		{"memory", config.StorageConfig{Backend: config.BackendMemory}, &MemoryStore{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.cfg)
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			assert.IsType(t, tt.want, s)
			exerciseStore(t, s)
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), config.StorageConfig{Backend: "floppy"})
	assert.ErrorContains(t, err, "unknown storage backend")
}
