package vfstest

// Config adapts the conformance suite to a backend's documented
// behavior.
type Config struct {
	// VirtualDirectories indicates the backend has no real directory
	// object (ObjectStoreBackend): DirExists reports true based on key
	// prefixes/simulated state rather than a stat-able node.
	VirtualDirectories bool

	// ImplicitParentDirs indicates CreateFile succeeds even when
	// intermediate directories were never explicitly created.
	ImplicitParentDirs bool

	// OpenWriteImplicitCreate indicates OpenFileWrite creates an absent
	// file rather than returning ok=false (memoryfs sets this true,
	// realfs and objectstorefs leave it false).
	OpenWriteImplicitCreate bool

	// NoTombstones indicates the backend never synthesizes a Deleted
	// status for a removed path; FileStat reports NotFound instead
	// (RealBackend: a deleted path simply stops existing on disk).
	NoTombstones bool

	// SkipTests lists "Group/SubTest" names the suite should skip for
	// documented backend-specific exceptions.
	SkipTests []string
}

// MemoryConfig returns the configuration for MemoryBackend.
func MemoryConfig() Config {
	return Config{ImplicitParentDirs: true, OpenWriteImplicitCreate: true}
}

// RealConfig returns the configuration for RealBackend. Like
// MemoryBackend, CreateFile creates missing intermediate directories;
// unlike MemoryBackend, OpenFileWrite on a missing path returns
// ok=false rather than creating it.
func RealConfig() Config {
	return Config{ImplicitParentDirs: true, NoTombstones: true}
}

// ObjectStoreConfig returns the configuration for ObjectStoreBackend.
func ObjectStoreConfig() Config {
	return Config{VirtualDirectories: true, ImplicitParentDirs: true}
}

func (c Config) skip(name string) bool {
	for _, s := range c.SkipTests {
		if s == name {
			return true
		}
	}
	return false
}
