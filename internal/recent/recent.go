// Package recent tracks the characters a user inserted most recently.
package recent

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/f3rmion/symbols/internal/charset"
	"github.com/f3rmion/symbols/internal/notify"
	"github.com/f3rmion/symbols/internal/storage"
)

const (
	// DefaultLimit is the number of entries kept in the recent list.
	DefaultLimit = 50

	// DefaultFallbackMax is how many entries WithFallback returns when the
	// caller does not ask for a specific number.
	DefaultFallbackMax = 24

	keySuffix = "|special-symbols|recently-used-characters"
)

// Key returns the storage key holding the recent list for host.
func Key(host string) string {
	return host + keySuffix
}

// StorageParseError describes a persisted value that could not be decoded.
// It is logged, never returned: the tracker falls back to an empty list.
type StorageParseError struct {
	Key  string
	Data string
	Err  error
}

func (e *StorageParseError) Error() string {
	return fmt.Sprintf("cannot parse recent characters at %q, got %q: %v", e.Key, e.Data, e.Err)
}

func (e *StorageParseError) Unwrap() error {
	return e.Err
}

// Resolver resolves a character set by name.
type Resolver interface {
	Resolve(ctx context.Context, name string) ([]charset.Entry, error)
}

// Tracker keeps an ordered, de-duplicated list of recently used entries in
// host storage, most recent first.
type Tracker struct {
	store    storage.Storage
	key      string
	limit    int
	logger   zerolog.Logger
	notifier *notify.Notifier

	mu sync.Mutex // serializes read-modify-write of the persisted list
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLimit caps the list at n entries. Values below one are ignored.
func WithLimit(n int) Option {
	return func(t *Tracker) {
		if n > 0 {
			t.limit = n
		}
	}
}

// WithLogger sets the logger used for storage diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// WithNotifier shares a notifier with other components.
func WithNotifier(n *notify.Notifier) Option {
	return func(t *Tracker) {
		if n != nil {
			t.notifier = n
		}
	}
}

// New creates a tracker persisting under key in store. A nil store gives a
// tracker that never remembers anything.
func New(store storage.Storage, key string, opts ...Option) *Tracker {
	t := &Tracker{
		store:    store,
		key:      key,
		limit:    DefaultLimit,
		logger:   zerolog.Nop(),
		notifier: notify.New(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Limit returns the maximum list length.
func (t *Tracker) Limit() int {
	return t.limit
}

// Recent returns the persisted list, most recent first. Missing or
// unreadable state yields an empty list.
func (t *Tracker) Recent() []charset.Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.read()
}

func (t *Tracker) read() []charset.Entry {
	if t.store == nil {
		return []charset.Entry{}
	}
	data, ok, err := t.store.Get(t.key)
	if err != nil {
		t.logger.Warn().Err(err).Str("key", t.key).Msg("reading recent characters failed")
		return []charset.Entry{}
	}
	if !ok || data == "" {
		return []charset.Entry{}
	}

	var entries []charset.Entry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		t.logger.Error().Err(&StorageParseError{Key: t.key, Data: data, Err: err}).Msg("discarding recent characters")
		return []charset.Entry{}
	}
	if entries == nil {
		entries = []charset.Entry{}
	}
	if len(entries) > t.limit {
		entries = entries[:t.limit]
	}
	return entries
}

// MarkUsed moves entry to the front of the list, persists the result and
// notifies subscribers. Persistence failures are logged.
func (t *Tracker) MarkUsed(entry charset.Entry) {
	t.mu.Lock()
	entries := t.read()

	next := make([]charset.Entry, 0, len(entries)+1)
	next = append(next, entry)
	for _, e := range entries {
		if e.ID != entry.ID {
			next = append(next, e)
		}
	}
	if len(next) > t.limit {
		next = next[:t.limit]
	}
	t.write(next)
	t.mu.Unlock()

	t.logger.Debug().Str("id", entry.ID).Msg("marked character as recently used")
	t.notifier.Notify()
}

func (t *Tracker) write(entries []charset.Entry) {
	if t.store == nil {
		return
	}
	data, err := json.Marshal(entries)
	if err != nil {
		t.logger.Error().Err(err).Msg("encoding recent characters failed")
		return
	}
	if err := t.store.Set(t.key, string(data)); err != nil {
		t.logger.Warn().Err(err).Str("key", t.key).Msg("persisting recent characters failed")
	}
}

// Clear removes the persisted list and notifies subscribers.
func (t *Tracker) Clear() {
	t.mu.Lock()
	if t.store != nil {
		if err := t.store.Remove(t.key); err != nil {
			t.logger.Warn().Err(err).Str("key", t.key).Msg("removing recent characters failed")
		}
	}
	t.mu.Unlock()
	t.notifier.Notify()
}

// Subscribe registers fn to run after every change to the list.
func (t *Tracker) Subscribe(fn func()) (unsubscribe func()) {
	return t.notifier.Subscribe(fn)
}

// WithFallback returns the recent list padded with entries from the
// fallbackSet, skipping ids already present, up to max entries. The fallback
// set is only resolved when padding is needed. A max below one uses
// DefaultFallbackMax.
func (t *Tracker) WithFallback(ctx context.Context, resolver Resolver, fallbackSet string, max int) ([]charset.Entry, error) {
	if max <= 0 {
		max = DefaultFallbackMax
	}
	entries := t.Recent()
	if len(entries) >= max || fallbackSet == "" || resolver == nil {
		if len(entries) > max {
			entries = entries[:max]
		}
		return entries, nil
	}

	fallback, err := resolver.Resolve(ctx, fallbackSet)
	if err != nil {
		return entries, fmt.Errorf("resolving fallback set: %w", err)
	}

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		seen[e.ID] = struct{}{}
	}
	for _, e := range fallback {
		if len(entries) >= max {
			break
		}
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		entries = append(entries, e)
	}
	return entries, nil
}
