package memoryfs

import "sync"

// sharedState is the mutable bookkeeping shared by a MemoryFS and every
// sub-filesystem obtained from it via At: the tombstone set owned by the
// tree's true root. Keeping it on the root means a delete performed
// through any sub-filesystem view is observable from every other view.
type sharedState struct {
	mu         sync.Mutex
	tombstones map[string]struct{}
}

func newSharedState() *sharedState {
	return &sharedState{tombstones: make(map[string]struct{})}
}

func (s *sharedState) tombstone(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tombstones[path] = struct{}{}
}

func (s *sharedState) clearTombstone(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tombstones, path)
}

func (s *sharedState) isTombstoned(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tombstones[path]
	return ok
}
