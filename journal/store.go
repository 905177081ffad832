package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/blob"
	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/pkg/id"
)

// EventKind names the mutation that produced an Event.
type EventKind string

const (
	Created  EventKind = "created"
	Updated  EventKind = "updated"
	Deleted  EventKind = "deleted"
	Cleared  EventKind = "cleared"
	Imported EventKind = "imported"
)

// Event is sent to subscribers after a mutation has been persisted.
type Event struct {
	Kind EventKind
	IDs  []string
	Len  int // collection size after the mutation
}

// Store is the journal: an ordered collection of records persisted as a
// single JSON blob. Every mutation rewrites the whole blob before it
// becomes visible; if the write fails the collection is left unchanged.
type Store struct {
	mu      sync.RWMutex
	trades  []Record
	index   map[string]int
	blob    blob.Store
	key     string
	log     *zap.Logger
	now     func() time.Time
	newID   func(time.Time) string
	subsMu  sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithKey overrides the blob key, config.DefaultKey by default.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(gen func(time.Time) string) Option {
	return func(s *Store) { s.newID = gen }
}

// Open loads the journal from b. A missing, unreadable or corrupt blob
// starts an empty journal; the problem is logged, not returned.
func Open(ctx context.Context, b blob.Store, opts ...Option) *Store {
	s := &Store{
		blob:  b,
		key:   config.DefaultKey,
		log:   zap.NewNop(),
		now:   time.Now,
		newID: id.At,
		subs:  map[int]func(Event){},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.trades = s.load(ctx)
	s.index = indexOf(s.trades)
	return s
}

func (s *Store) load(ctx context.Context) []Record {
	data, err := s.blob.Get(ctx, s.key)
	if errors.Is(err, blob.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.log.Warn("journal blob unreadable, starting empty", zap.String("key", s.key), zap.Error(err))
		return nil
	}
	var trades []Record
	if err := json.Unmarshal(data, &trades); err != nil {
		s.log.Warn("journal blob corrupt, starting empty", zap.String("key", s.key), zap.Error(err))
		return nil
	}
	s.log.Debug("journal loaded", zap.String("key", s.key), zap.Int("trades", len(trades)))
	return trades
}

func indexOf(trades []Record) map[string]int {
	idx := make(map[string]int, len(trades))
	for i, t := range trades {
		idx[t.ID] = i
	}
	return idx
}

// List returns a copy of the journal in insertion order.
func (s *Store) List() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.trades))
	copy(out, s.trades)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.trades)
}

// Get returns the record with the given id.
func (s *Store) Get(tradeID string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[tradeID]
	if !ok {
		return Record{}, false
	}
	return s.trades[i], true
}

// Create validates r, derives its metrics, assigns an id if it has none
// and appends it.
func (s *Store) Create(ctx context.Context, r Record) (Record, error) {
	if err := Validate(r); err != nil {
		return Record{}, err
	}
	r = Derive(r)

	s.mu.Lock()
	if r.ID == "" {
		r.ID = s.freshID(s.inIndex)
	} else if _, dup := s.index[r.ID]; dup {
		s.mu.Unlock()
		return Record{}, fmt.Errorf("create %s: %w", r.ID, ErrDuplicateID)
	}
	next := append(s.cloneLocked(), r)
	err := s.commitLocked(ctx, next)
	n := len(s.trades)
	s.mu.Unlock()
	if err != nil {
		return Record{}, err
	}

	s.log.Info("trade created", zap.String("id", r.ID), zap.String("symbol", r.Symbol), zap.Float64("pnl", r.Pnl))
	s.notify(Event{Kind: Created, IDs: []string{r.ID}, Len: n})
	return r, nil
}

// Update replaces the record with the given id, keeping its position.
// The stored id always wins over r.ID.
func (s *Store) Update(ctx context.Context, tradeID string, r Record) (Record, error) {
	if err := Validate(r); err != nil {
		return Record{}, err
	}
	r = Derive(r)
	r.ID = tradeID

	s.mu.Lock()
	i, ok := s.index[tradeID]
	if !ok {
		s.mu.Unlock()
		return Record{}, fmt.Errorf("update %s: %w", tradeID, ErrNotFound)
	}
	next := s.cloneLocked()
	next[i] = r
	err := s.commitLocked(ctx, next)
	n := len(s.trades)
	s.mu.Unlock()
	if err != nil {
		return Record{}, err
	}

	s.log.Info("trade updated", zap.String("id", r.ID), zap.Float64("pnl", r.Pnl))
	s.notify(Event{Kind: Updated, IDs: []string{r.ID}, Len: n})
	return r, nil
}

// Delete removes the record with the given id. Deleting an unknown id is
// a no-op reported as false.
func (s *Store) Delete(ctx context.Context, tradeID string) (bool, error) {
	s.mu.Lock()
	i, ok := s.index[tradeID]
	if !ok {
		s.mu.Unlock()
		return false, nil
	}
	next := make([]Record, 0, len(s.trades)-1)
	next = append(next, s.trades[:i]...)
	next = append(next, s.trades[i+1:]...)
	err := s.commitLocked(ctx, next)
	n := len(s.trades)
	s.mu.Unlock()
	if err != nil {
		return false, err
	}

	s.log.Info("trade deleted", zap.String("id", tradeID))
	s.notify(Event{Kind: Deleted, IDs: []string{tradeID}, Len: n})
	return true, nil
}

// Clear empties the journal and removes its blob.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	if err := s.blob.Delete(ctx, s.key); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("clear journal: %w", err)
	}
	removed := len(s.trades)
	s.trades = nil
	s.index = map[string]int{}
	s.mu.Unlock()

	s.log.Info("journal cleared", zap.Int("removed", removed))
	s.notify(Event{Kind: Cleared})
	return nil
}

// ImportBatch appends decoded CSV rows. Each row is laid over NewRecord
// defaults; a row without an id, or whose id is already taken, gets a
// fresh one. Metrics are not recomputed: imported pnl, rMultiple and
// result are kept as written. The batch is persisted once.
func (s *Store) ImportBatch(ctx context.Context, rows []RawRow) ([]Record, error) {
	s.mu.Lock()
	now := s.now()
	taken := make(map[string]bool, len(s.trades)+len(rows))
	for k := range s.index {
		taken[k] = true
	}

	added := make([]Record, 0, len(rows))
	for _, row := range rows {
		r := row.Record(NewRecord(now))
		if r.ID == "" || taken[r.ID] {
			if r.ID != "" {
				s.log.Warn("imported id already in journal, reassigning", zap.String("id", r.ID))
			}
			r.ID = s.freshID(func(v string) bool { return taken[v] })
		}
		taken[r.ID] = true
		added = append(added, r)
	}

	next := append(s.cloneLocked(), added...)
	err := s.commitLocked(ctx, next)
	n := len(s.trades)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(added))
	for i, r := range added {
		ids[i] = r.ID
	}
	s.log.Info("trades imported", zap.Int("count", len(added)))
	s.notify(Event{Kind: Imported, IDs: ids, Len: n})
	return added, nil
}

// Subscribe registers fn to receive an Event after every successful
// mutation. fn runs synchronously on the mutating goroutine, outside the
// store lock, so it may read the store. Call cancel to unsubscribe.
func (s *Store) Subscribe(fn func(Event)) (cancel func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	n := s.nextSub
	s.nextSub++
	s.subs[n] = fn
	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, n)
	}
}

func (s *Store) notify(ev Event) {
	s.subsMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.subs[i]; ok {
			fns = append(fns, fn)
		}
	}
	s.subsMu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

func (s *Store) freshID(taken func(string) bool) string {
	for {
		if v := s.newID(s.now()); !taken(v) {
			return v
		}
	}
}

func (s *Store) inIndex(v string) bool {
	_, ok := s.index[v]
	return ok
}

func (s *Store) cloneLocked() []Record {
	out := make([]Record, len(s.trades), len(s.trades)+1)
	copy(out, s.trades)
	return out
}

// commitLocked persists next and, on success, makes it the collection.
func (s *Store) commitLocked(ctx context.Context, next []Record) error {
	if next == nil {
		next = []Record{}
	}
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode journal: %w", err)
	}
	if err := s.blob.Set(ctx, s.key, data); err != nil {
		s.log.Error("persist journal failed", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("persist journal: %w", err)
	}
	s.trades = next
	s.index = indexOf(next)
	return nil
}
