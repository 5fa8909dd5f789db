package memoryfs

import (
	"strings"
	"sync"

	"github.com/jmgilman/vfs"
)

// dirNode is a directory in the tree. children holds either *dirNode or
// *fileNode values, keyed by segment name. mu guards structural mutation
// of children; concurrent reads of an unchanging map are safe.
type dirNode struct {
	name     string
	readOnly bool
	parent   *dirNode
	children map[string]interface{}
	mu       sync.RWMutex
}

func newDirNode(name string, parent *dirNode, readOnly bool) *dirNode {
	return &dirNode{name: name, parent: parent, readOnly: readOnly, children: make(map[string]interface{})}
}

// fileNode is a file in the tree. stream is a vfs.Stream rather than a
// concrete *vfs.MemoryStream so Integrate can install a copy-on-write
// wrapper over a foreign source without changing the node's shape.
type fileNode struct {
	name   string
	parent *dirNode
	stream vfs.Stream
}

// fullPath walks d's parent chain to the shared tombstone root and
// assembles the absolute path, independent of which node is the
// "effective root" of any particular MemoryFS view (a sub-FS obtained via
// At still tombstones/looks-up against this single global path space).
func (d *dirNode) fullPath() string {
	var segs []string
	for n := d; n != nil && n.parent != nil; n = n.parent {
		segs = append([]string{n.name}, segs...)
	}
	if len(segs) == 0 {
		return "/"
	}
	return "/" + strings.Join(segs, "/")
}

func childFullPath(d *dirNode, name string) string {
	base := d.fullPath()
	if base == "/" {
		return "/" + name
	}
	return base + "/" + name
}

type rewindable interface {
	Rewind()
}

func rewind(s vfs.Stream) {
	if r, ok := s.(rewindable); ok {
		r.Rewind()
	}
}
