package cache

import (
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// Entry holds the cached state for one key. Value is nil when the key is
// known but holds no value (an authoritative absence, e.g. "no plan
// featured"). Generation increases on every write so readers can detect
// that they have been superseded. Provisional marks a locally computed
// optimistic value that has not been confirmed by the server; provisional
// values never outlive the process.
type Entry struct {
	Value       any
	Generation  uint64
	Provisional bool
	Stale       bool
}

// Subscriber is invoked with the affected key after every store write or
// invalidation. Callbacks run outside the store lock.
type Subscriber func(Key)

// Store is the process-wide mapping from cache keys to their last known
// state. It is the only shared mutable resource of the synchronization
// layer: consumers read it and subscribe to it, but only the sync engine
// writes to it. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
	// keys maps each rendered form back to the structured key it was
	// written under, so pattern invalidation can notify subscribers with
	// the original kind/params instead of a reparsed string.
	keys map[string]Key
	gen  uint64
	subs []Subscriber
}

// NewStore creates an empty store. The store has an explicit lifecycle: it
// is created at application start and discarded at shutdown, never shared
// across logins.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]Entry),
		keys:    make(map[string]Key),
	}
}

// Get returns the entry for key. The second return is false when the key
// has never been written (unknown, as opposed to known-absent).
func (s *Store) Get(key Key) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key.String()]
	return e, ok
}

// SetAuthoritative installs a server-confirmed value for key, clearing any
// provisional or stale marker.
func (s *Store) SetAuthoritative(key Key, value any) {
	s.set(key, value, false)
}

// SetProvisional installs a locally computed optimistic value for key. It
// is replaced the moment a real response arrives, success or failure.
func (s *Store) SetProvisional(key Key, value any) {
	s.set(key, value, true)
}

func (s *Store) set(key Key, value any, provisional bool) {
	s.mu.Lock()
	s.gen++
	s.entries[key.String()] = Entry{
		Value:       value,
		Generation:  s.gen,
		Provisional: provisional,
	}
	s.keys[key.String()] = key
	s.mu.Unlock()
	s.notify(key)
}

// Restore puts a previously observed entry back for key, bumping the
// generation so subscribers see the change. Used for mutation rollback.
// When the snapshot did not exist (the key was unknown before the
// mutation), the key is removed again.
func (s *Store) Restore(key Key, snapshot Entry, existed bool) {
	s.mu.Lock()
	if existed {
		s.gen++
		snapshot.Generation = s.gen
		s.entries[key.String()] = snapshot
		s.keys[key.String()] = key
	} else {
		delete(s.entries, key.String())
		delete(s.keys, key.String())
	}
	s.mu.Unlock()
	s.notify(key)
}

// Invalidate marks key stale without discarding its value. A stale entry
// still serves reads, but the next engine read for the key goes to the
// server. Unknown keys are a no-op.
func (s *Store) Invalidate(key Key) {
	s.mu.Lock()
	e, ok := s.entries[key.String()]
	if ok {
		e.Stale = true
		s.entries[key.String()] = e
	}
	s.mu.Unlock()
	if ok {
		s.notify(key)
	}
}

// InvalidatePattern marks every key whose rendered form matches the
// doublestar pattern as stale. Used for family-wide invalidation, e.g.
// every today-checklist key across timezones after a template change.
func (s *Store) InvalidatePattern(pattern string) {
	s.mu.Lock()
	var hit []Key
	for rendered, e := range s.entries {
		if ok, _ := doublestar.Match(pattern, rendered); ok {
			e.Stale = true
			s.entries[rendered] = e
			hit = append(hit, s.keys[rendered])
		}
	}
	s.mu.Unlock()
	for _, key := range hit {
		s.notify(key)
	}
}

// Subscribe registers a callback invoked after every write or invalidation.
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Len returns the number of known keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) notify(key Key) {
	s.mu.RLock()
	subs := make([]Subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(key)
	}
}
