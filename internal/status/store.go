package status

import "sync"

// Store is the single shared mutable resource of the engine: a map from
// repository name to its latest SyncStatus, guarded by a generation check so
// that writes from superseded probing passes are silently discarded.
//
// It is safe for one writer (the active refresher) and any number of readers
// (the UI poll loop). It supports pub/sub so interested readers can wake on
// change instead of polling.
type Store struct {
	mu          sync.RWMutex
	statuses    map[string]SyncStatus
	generation  uint64
	total       int
	probed      map[string]struct{}
	complete    bool
	subscribers map[chan struct{}]struct{}
}

// NewStore creates an empty store at generation zero.
func NewStore() *Store {
	return &Store{
		statuses:    make(map[string]SyncStatus),
		probed:      make(map[string]struct{}),
		subscribers: make(map[chan struct{}]struct{}),
	}
}

// Seed pre-populates statuses without affecting progress accounting. Used to
// show last-known results from a persisted snapshot before the first pass.
// Only keys not yet present are filled in.
func (s *Store) Seed(statuses map[string]SyncStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, st := range statuses {
		if _, exists := s.statuses[name]; !exists {
			s.statuses[name] = st
		}
	}
}

// MarkAllLoading starts a new generation: every listed repository is reset to
// Loading and the progress counter restarts at zero. Ownership of write
// access transfers to the given generation; writes tagged with any older
// generation are rejected from this point on.
func (s *Store) MarkAllLoading(generation uint64, names []string) {
	s.mu.Lock()
	s.generation = generation
	s.total = len(names)
	s.probed = make(map[string]struct{}, len(names))
	s.complete = false
	for _, name := range names {
		s.statuses[name] = StatusLoading
	}
	s.mu.Unlock()
	s.notify()
}

// MarkLoading resets a single repository to Loading under the given
// generation, un-counting it from the pass progress. Used by single-item
// re-probes. Returns false for stale generations.
func (s *Store) MarkLoading(name string, generation uint64) bool {
	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		return false
	}
	s.statuses[name] = StatusLoading
	delete(s.probed, name)
	s.complete = false
	s.mu.Unlock()
	s.notify()
	return true
}

// Set records a probe result. The write is discarded when generation does not
// match the active one; a superseded pass can therefore never clobber newer
// state, no matter how late its in-flight probes land.
func (s *Store) Set(name string, st SyncStatus, generation uint64) bool {
	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		return false
	}
	s.statuses[name] = st
	s.probed[name] = struct{}{}
	if s.total > 0 && len(s.probed) == s.total {
		// A single-item re-probe that filled the last gap restores the
		// complete flag without an explicit MarkComplete.
		s.complete = true
	}
	s.mu.Unlock()
	s.notify()
	return true
}

// MarkComplete flags the generation's pass as finished. Stale notifications
// are ignored.
func (s *Store) MarkComplete(generation uint64) bool {
	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		return false
	}
	s.complete = true
	s.mu.Unlock()
	s.notify()
	return true
}

// Get returns the last-written status for a repository, or Unknown.
func (s *Store) Get(name string) SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.statuses[name]; ok {
		return st
	}
	return StatusUnknown
}

// Generation returns the currently active generation.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Progress returns the pass progress for the active generation.
func (s *Store) Progress() Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Progress{
		Done:     len(s.probed),
		Total:    s.total,
		Complete: s.complete,
	}
}

// Snapshot returns a copy of all known statuses.
func (s *Store) Snapshot() map[string]SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]SyncStatus, len(s.statuses))
	for name, st := range s.statuses {
		result[name] = st
	}
	return result
}

// Subscribe returns a channel that receives a signal after every store
// mutation. The channel has capacity one; signals coalesce.
func (s *Store) Subscribe() chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{}, 1)
	s.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (s *Store) Unsubscribe(ch chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscribers, ch)
	close(ch)
}

func (s *Store) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.subscribers {
		select {
		case ch <- struct{}{}:
		default:
			// Non-blocking send so slow readers never stall the writer
		}
	}
}
