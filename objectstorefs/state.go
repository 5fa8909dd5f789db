package objectstorefs

import (
	"strings"
	"sync"
)

// sharedState is the bookkeeping an ObjectStoreFS shares with every
// sub-filesystem obtained from it via At, keyed by object-store key
// string rather than vfs.Path so that two sub-filesystems addressing the
// same underlying location (different local prefixes, same real key)
// observe the same simulated directories and in-flight writes. This
// mirrors memoryfs's sharedState (a root-owned tombstone set) but adds
// the pending-write buffer an object store needs since it has no native
// directory concept and no atomic small-write path.
type sharedState struct {
	mu sync.Mutex

	// dirs holds keys explicitly created via CreateDirectory. Object
	// stores have no directory object, so listing and existence checks
	// must consult this alongside real key prefixes.
	dirs map[string]struct{}

	// pending holds the buffered bytes of a file that has been written
	// but not yet flushed to the real object store.
	pending map[string][]byte

	// deleted tombstones a key explicitly removed, so FileStat can
	// report StatusDeleted instead of StatusNotFound.
	deleted map[string]struct{}

	bucketOnce sync.Once
	bucketErr  error
}

func newSharedState() *sharedState {
	return &sharedState{
		dirs:    make(map[string]struct{}),
		pending: make(map[string][]byte),
		deleted: make(map[string]struct{}),
	}
}

func (s *sharedState) addDir(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirs[key] = struct{}{}
	delete(s.deleted, key)
}

func (s *sharedState) hasDir(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.dirs[key]
	return ok
}

// dirsUnder returns explicit directory keys strictly under prefix.
func (s *sharedState) dirsUnder(prefix string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for k := range s.dirs {
		if isUnder(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}

func (s *sharedState) setPending(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.pending[key] = buf
	delete(s.deleted, key)
}

func (s *sharedState) getPending(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.pending[key]
	return data, ok
}

func (s *sharedState) removePending(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, key)
}

// pendingUnder returns pending keys strictly under prefix.
func (s *sharedState) pendingUnder(prefix string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for k := range s.pending {
		if isUnder(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}

func (s *sharedState) tombstone(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted[key] = struct{}{}
}

func (s *sharedState) clearTombstone(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.deleted, key)
}

func (s *sharedState) isTombstoned(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.deleted[key]
	return ok
}

// removeUnder drops every dir, pending write, and tombstone at or below
// prefix, used when a directory subtree is deleted recursively.
func (s *sharedState) removeUnder(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.dirs {
		if k == prefix || isUnder(k, prefix) {
			delete(s.dirs, k)
		}
	}
	for k := range s.pending {
		if k == prefix || isUnder(k, prefix) {
			delete(s.pending, k)
		}
	}
	for k := range s.deleted {
		if k == prefix || isUnder(k, prefix) {
			delete(s.deleted, k)
		}
	}
}

// isUnder reports whether key lies strictly beneath the directory prefix
// (which may or may not carry a trailing slash).
func isUnder(key, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return key != ""
	}
	return strings.HasPrefix(key, prefix+"/")
}
