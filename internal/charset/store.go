package charset

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Store maps character set names to their entries, loading source-backed
// sets on first use. A single Store is created at startup and passed to
// whatever needs it.
type Store struct {
	fetcher Fetcher
	logger  zerolog.Logger

	mu       sync.Mutex
	resolved map[string][]Entry // inline registrations and successful loads
	sources  map[string]string  // name -> locator
	gens     map[string]uint64  // bumped on every registration of a name
	flights  singleflight.Group
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// SetInfo describes a registered set.
type SetInfo struct {
	Name    string
	Source  string // empty for inline sets
	Loaded  bool
	Entries int
}

// NewStore creates an empty store that loads sources with fetcher.
func NewStore(fetcher Fetcher, opts ...StoreOption) *Store {
	s := &Store{
		fetcher:  fetcher,
		logger:   zerolog.Nop(),
		resolved: make(map[string][]Entry),
		sources:  make(map[string]string),
		gens:     make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterInline makes entries available under name immediately. The last
// registration for a name wins. Malformed entries reject the registration.
func (s *Store) RegisterInline(name string, entries []Entry) error {
	if err := validateAll(entries); err != nil {
		return fmt.Errorf("registering %q: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.gens[name]++
	delete(s.sources, name)
	s.resolved[name] = entries
	return nil
}

// RegisterSource registers a locator that is fetched the first time name is
// resolved. It replaces any earlier registration for name.
func (s *Store) RegisterSource(name, locator string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gens[name]++
	delete(s.resolved, name)
	s.sources[name] = locator
}

// Resolve returns the entries registered under name. Concurrent calls for a
// source that is still loading share one fetch and observe the same result.
// A failed load is not cached. ctx only bounds this caller's wait: the load
// itself always runs to completion.
func (s *Store) Resolve(ctx context.Context, name string) ([]Entry, error) {
	s.mu.Lock()
	if entries, ok := s.resolved[name]; ok {
		s.mu.Unlock()
		return entries, nil
	}
	locator, ok := s.sources[name]
	gen := s.gens[name]
	s.mu.Unlock()

	if !ok {
		return nil, &UnknownSetError{Name: name}
	}

	loadCtx := context.WithoutCancel(ctx)
	key := fmt.Sprintf("%s\x00%d", name, gen)
	ch := s.flights.DoChan(key, func() (any, error) {
		return s.loadOnce(loadCtx, name, locator, gen)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]Entry), nil
	}
}

// loadOnce serves a load finished by an earlier flight from the cache, so a
// caller that missed the cache just before that flight ended does not fetch
// again.
func (s *Store) loadOnce(ctx context.Context, name, locator string, gen uint64) ([]Entry, error) {
	s.mu.Lock()
	entries, ok := s.resolved[name]
	current := s.gens[name] == gen
	s.mu.Unlock()
	if ok && current {
		return entries, nil
	}
	return s.load(ctx, name, locator, gen)
}

func (s *Store) load(ctx context.Context, name, locator string, gen uint64) ([]Entry, error) {
	s.logger.Debug().Str("set", name).Str("source", locator).Msg("fetching character set")
	if s.fetcher == nil {
		return nil, &FetchError{Name: name, Locator: locator, Err: errors.New("no fetcher configured")}
	}

	data, err := s.fetcher.Fetch(ctx, locator)
	if err != nil {
		s.logger.Warn().Err(err).Str("set", name).Str("source", locator).Msg("character set fetch failed")
		return nil, &FetchError{Name: name, Locator: locator, Err: err}
	}

	entries, err := DecodeEntries(data)
	if err != nil {
		s.logger.Warn().Err(err).Str("set", name).Str("source", locator).Msg("character set rejected")
		return nil, &FetchError{Name: name, Locator: locator, Err: err}
	}

	s.mu.Lock()
	// A re-registration while loading makes this result stale.
	if s.gens[name] == gen {
		s.resolved[name] = entries
	}
	s.mu.Unlock()

	s.logger.Debug().Str("set", name).Int("entries", len(entries)).Msg("character set loaded")
	return entries, nil
}

// Registered reports whether name has an inline or source registration.
func (s *Store) Registered(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resolved[name]; ok {
		return true
	}
	_, ok := s.sources[name]
	return ok
}

// Names returns all registered set names in sorted order.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.resolved)+len(s.sources))
	for name := range s.resolved {
		names = append(names, name)
	}
	for name := range s.sources {
		if _, ok := s.resolved[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Describe returns registration details for every set, sorted by name.
func (s *Store) Describe() []SetInfo {
	names := s.Names()

	s.mu.Lock()
	defer s.mu.Unlock()
	infos := make([]SetInfo, 0, len(names))
	for _, name := range names {
		entries, loaded := s.resolved[name]
		infos = append(infos, SetInfo{
			Name:    name,
			Source:  s.sources[name],
			Loaded:  loaded,
			Entries: len(entries),
		})
	}
	return infos
}
