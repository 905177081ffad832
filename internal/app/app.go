// Package app carries out the journal's user-facing actions: saving a
// trade, confirmed deletes and clears, CSV export and import, and the
// equity curve.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/internal/ui"
	"github.com/rustyeddy/tradejournal/journal"
)

// Confirmation prompts for the destructive actions.
const (
	ConfirmDelete = "Delete this trade?"
	ConfirmClear  = "This will erase ALL saved trades. Proceed?"
)

type App struct {
	store   *journal.Store
	confirm ui.Confirmer
	log     *zap.Logger
	now     func() time.Time
}

type Option func(*App)

func WithConfirmer(c ui.Confirmer) Option {
	return func(a *App) { a.confirm = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(a *App) { a.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// New wraps store. Without WithConfirmer every destructive action is
// confirmed on the terminal.
func New(store *journal.Store, opts ...Option) *App {
	a := &App{
		store:   store,
		confirm: ui.SurveyConfirmer{},
		log:     zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *App) Store() *journal.Store { return a.store }

// NewTrade returns the blank form.
func (a *App) NewTrade() journal.Record {
	return journal.NewRecord(a.now())
}

// EditTrade returns the stored record to prefill the form.
func (a *App) EditTrade(tradeID string) (journal.Record, error) {
	r, ok := a.store.Get(tradeID)
	if !ok {
		return journal.Record{}, fmt.Errorf("edit %s: %w", tradeID, journal.ErrNotFound)
	}
	return r, nil
}

// Save stores the form. With an empty editingID the form is a new trade
// and always gets a fresh id; otherwise it replaces the trade being edited.
func (a *App) Save(ctx context.Context, editingID string, form journal.Record) (journal.Record, error) {
	if editingID == "" {
		form.ID = ""
		return a.store.Create(ctx, form)
	}
	return a.store.Update(ctx, editingID, form)
}

// Delete removes a trade once the user confirms. Declining, or naming a
// trade that is not in the journal, changes nothing and reports false.
func (a *App) Delete(ctx context.Context, tradeID string) (bool, error) {
	if _, ok := a.store.Get(tradeID); !ok {
		return false, nil
	}
	ok, err := a.confirm.Confirm(ConfirmDelete)
	if err != nil {
		return false, fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		a.log.Debug("delete declined", zap.String("id", tradeID))
		return false, nil
	}
	return a.store.Delete(ctx, tradeID)
}

// Clear empties the journal and its persisted blob once the user confirms.
func (a *App) Clear(ctx context.Context) (bool, error) {
	ok, err := a.confirm.Confirm(ConfirmClear)
	if err != nil {
		return false, fmt.Errorf("confirm clear: %w", err)
	}
	if !ok {
		a.log.Debug("clear declined")
		return false, nil
	}
	if err := a.store.Clear(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// WriteCSV encodes the whole journal to w.
func (a *App) WriteCSV(w io.Writer) error {
	return journal.EncodeCSV(w, a.store.List())
}

// ExportCSV writes the journal to a timestamped file in dir and returns
// its path.
func (a *App) ExportCSV(dir string) (string, error) {
	path := filepath.Join(dir, journal.ExportFileName(a.now()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export csv: %w", err)
	}
	if err := a.WriteCSV(f); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("export csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("export csv: %w", err)
	}
	a.log.Info("journal exported", zap.String("path", path), zap.Int("trades", a.store.Len()))
	return path, nil
}

// ImportCSV decodes r and appends its rows. Any failure abandons the whole
// import and is reported as journal.ErrImport.
func (a *App) ImportCSV(ctx context.Context, r io.Reader) ([]journal.Record, error) {
	rows, err := journal.DecodeCSV(r)
	if err != nil {
		a.log.Warn("csv import rejected", zap.Error(err))
		return nil, importError(err)
	}
	added, err := a.store.ImportBatch(ctx, rows)
	if err != nil {
		return nil, importError(err)
	}
	return added, nil
}

// ImportFile is ImportCSV on the named file.
func (a *App) ImportFile(ctx context.Context, path string) ([]journal.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, importError(err)
	}
	defer f.Close()
	return a.ImportCSV(ctx, f)
}

func importError(err error) error {
	if errors.Is(err, journal.ErrImport) {
		return err
	}
	return fmt.Errorf("%w: %w", journal.ErrImport, err)
}

// List returns the trades matching q in journal order.
func (a *App) List(q journal.Query) []journal.Record {
	return journal.Select(a.store.List(), q)
}

// Equity projects the whole journal onto its equity curve.
func (a *App) Equity() journal.EquityCurve {
	return journal.Equity(a.store.List())
}
