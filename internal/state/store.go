// Package state holds the per-view synchronization state: a cached list of
// backend-owned entities kept consistent with the remote source of truth.
//
// The lifecycle is always the same: the list is replaced wholesale on fetch,
// then patched in place by id using the canonical object returned by each
// successful mutating call. Failed calls never touch the list. There is no
// merge or diff logic beyond identity match on the id.
package state

import "sync"

// Entity is anything the backend addresses by id.
type Entity interface {
	EntityID() string
}

// Phase is a view's loading state.
type Phase int

const (
	// Loading means no fetch has completed yet.
	Loading Phase = iota
	// Ready means the last fetch succeeded and the list is current.
	Ready
	// Errored means a fetch failed; Err holds the message verbatim.
	Errored
)

func (p Phase) String() string {
	switch p {
	case Ready:
		return "ready"
	case Errored:
		return "errored"
	default:
		return "loading"
	}
}

// Store caches one entity list for one view.
type Store[T Entity] struct {
	mu    sync.RWMutex
	phase Phase
	err   string
	items []T
}

// NewStore returns a store in the Loading phase with an empty list.
func NewStore[T Entity]() *Store[T] {
	return &Store[T]{}
}

// Phase returns the current phase.
func (s *Store[T]) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Err returns the captured fetch error message, empty unless Errored.
func (s *Store[T]) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Replace swaps in a freshly fetched list and moves to Ready.
func (s *Store[T]) Replace(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]T, len(items))
	copy(s.items, items)
	s.phase = Ready
	s.err = ""
}

// Fail records a fetch failure. The message is kept verbatim and the
// previous list is discarded; the view renders the error instead.
func (s *Store[T]) Fail(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = Errored
	s.err = message
	s.items = nil
}

// Items returns a copy of the cached list.
func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of cached entries.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get returns the entry with the given id.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.EntityID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Upsert patches the entry with a matching id, replacing it entirely with
// the server's canonical object; an unknown id is appended. No other
// entries change.
func (s *Store[T]) Upsert(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := item.EntityID()
	for i, it := range s.items {
		if it.EntityID() == id {
			s.items[i] = item
			return
		}
	}
	s.items = append(s.items, item)
}

// Prepend inserts an entry at the front, newest first. Used by the
// notification feed for push-delivered entries.
func (s *Store[T]) Prepend(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]T{item}, s.items...)
}

// Remove deletes the entry with the given id and reports whether it was
// present. All other entries keep their identity and field values.
func (s *Store[T]) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.items {
		if it.EntityID() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}
