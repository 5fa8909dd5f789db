package objectstorefs

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jmgilman/vfs"
	"github.com/jmgilman/vfs/mimetype"
	"github.com/jmgilman/vfs/objectstorefs/internal/objerrs"
	"github.com/jmgilman/vfs/vfserrors"
)

// deleteConcurrency bounds how many RemoveObject calls a recursive
// DeleteDirectory issues at once.
const deleteConcurrency = 8

// ObjectStoreFS implements vfs.FileSystem over an S3-compatible object
// store. It simulates directories and buffers writes in a sharedState
// map keyed by object-store key rather than vfs.Path, so every
// sub-filesystem obtained via At observes the same simulated state for
// the same underlying location.
type ObjectStoreFS struct {
	client   Client
	bucket   string
	prefix   string // key prefix this FS's root maps to, no leading/trailing slash
	readOnly bool
	shared   *sharedState
}

var _ vfs.FileSystem = (*ObjectStoreFS)(nil)

func (o *ObjectStoreFS) ReadOnly() bool { return o.readOnly }

// key returns the object-store key p maps to under this FS's prefix.
func (o *ObjectStoreFS) key(p vfs.Path) string {
	rel := strings.TrimPrefix(p.String(), "/")
	switch {
	case o.prefix == "":
		return rel
	case rel == "":
		return o.prefix
	default:
		return o.prefix + "/" + rel
	}
}

// dirKey returns the prefix under which p's children would be keyed.
func (o *ObjectStoreFS) dirKey(p vfs.Path) string {
	k := o.key(p)
	if k == "" {
		return ""
	}
	return k + "/"
}

func (o *ObjectStoreFS) ensureBucket(ctx context.Context) error {
	o.shared.bucketOnce.Do(func() {
		exists, err := o.client.BucketExists(ctx, o.bucket)
		if err != nil {
			o.shared.bucketErr = err
			return
		}
		if exists {
			return
		}
		o.shared.bucketErr = o.client.MakeBucket(ctx, o.bucket)
	})
	return o.shared.bucketErr
}

// loadExisting returns key's current bytes, preferring an unflushed
// pending write over the real object store, and reports whether key
// exists at all.
func (o *ObjectStoreFS) loadExisting(ctx context.Context, key string) ([]byte, bool, error) {
	if data, ok := o.shared.getPending(key); ok {
		return data, true, nil
	}
	_, err := o.client.StatObject(ctx, o.bucket, key)
	if err != nil {
		if objerrs.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	rc, _, err := o.client.GetObject(ctx, o.bucket, key)
	if err != nil {
		return nil, false, err
	}
	data, err := readAllClose(rc)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func readAllClose(rc io.ReadCloser) ([]byte, error) {
	defer rc.Close()
	return io.ReadAll(rc)
}

func (o *ObjectStoreFS) FileExists(ctx context.Context, p vfs.Path) (bool, error) {
	k := o.key(p)
	if _, ok := o.shared.getPending(k); ok {
		return true, nil
	}
	_, err := o.client.StatObject(ctx, o.bucket, k)
	if err != nil {
		if objerrs.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (o *ObjectStoreFS) DirExists(ctx context.Context, p vfs.Path) (bool, error) {
	if p.IsRoot() {
		return true, nil
	}
	dk := o.dirKey(p)
	if o.shared.hasDir(strings.TrimSuffix(dk, "/")) {
		return true, nil
	}
	if len(o.shared.pendingUnder(strings.TrimSuffix(dk, "/"))) > 0 {
		return true, nil
	}
	objs, err := o.client.ListObjects(ctx, o.bucket, dk, false)
	if err != nil {
		return false, err
	}
	return len(objs) > 0, nil
}

func (o *ObjectStoreFS) FileStat(ctx context.Context, p vfs.Path) (vfs.FileStatus, error) {
	exists, err := o.FileExists(ctx, p)
	if err != nil {
		return vfs.StatusNotFound, err
	}
	if exists {
		return vfs.StatusExists, nil
	}
	if o.shared.isTombstoned(o.key(p)) {
		return vfs.StatusDeleted, nil
	}
	return vfs.StatusNotFound, nil
}

func (o *ObjectStoreFS) CreateFile(ctx context.Context, p vfs.Path) (vfs.FileEntry, error) {
	if o.readOnly {
		return vfs.FileEntry{}, vfserrors.New(vfserrors.CodeReadOnly, "filesystem is read-only")
	}
	if err := o.ensureBucket(ctx); err != nil {
		return vfs.FileEntry{}, err
	}
	k := o.key(p)
	o.shared.setPending(k, nil)
	stream := o.writeThroughStream(p, k, nil)
	return vfs.NewFileRWEntry(p, o, stream), nil
}

func (o *ObjectStoreFS) CreateDirectory(ctx context.Context, p vfs.Path) (vfs.FileEntry, error) {
	if o.readOnly {
		return vfs.FileEntry{}, vfserrors.New(vfserrors.CodeReadOnly, "filesystem is read-only")
	}
	if err := o.ensureBucket(ctx); err != nil {
		return vfs.FileEntry{}, err
	}
	o.shared.addDir(strings.TrimSuffix(o.dirKey(p), "/"))
	return vfs.NewDirectoryEntry(p, o), nil
}

// writeThroughStream buffers writes in memory (initial seeds any bytes
// already present, for an OpenFileWrite/ReadWrite over an existing
// object) and uploads the full buffer to the object store on Flush:
// the stored object keeps its old contents until Flush succeeds, while
// every write also records the buffer as key's pending data, which
// reads through this filesystem see at once. The uploaded object's
// content type is inferred from p's extension.
func (o *ObjectStoreFS) writeThroughStream(p vfs.Path, key string, initial []byte) vfs.Stream {
	mem := vfs.NewMemoryStream(initial)
	fs := vfs.NewFunctionalStream(true, true, true)

	fs.ReadFunc = func(ctx context.Context, buf []byte) (int, error) {
		return mem.Read(ctx, buf)
	}
	fs.WriteFunc = func(ctx context.Context, buf []byte) (int, error) {
		n, err := mem.Write(ctx, buf)
		if err == nil {
			o.shared.setPending(key, mem.Bytes())
		}
		return n, err
	}
	fs.LengthFunc = mem.Length
	fs.SetLengthFunc = func(ctx context.Context, n int64) error {
		if err := mem.SetLength(ctx, n); err != nil {
			return err
		}
		o.shared.setPending(key, mem.Bytes())
		return nil
	}
	fs.FlushFunc = func(ctx context.Context) error {
		if err := o.ensureBucket(ctx); err != nil {
			return err
		}
		data := mem.Bytes()
		if err := o.client.PutObject(ctx, o.bucket, key, bytes.NewReader(data), int64(len(data)), mimetype.ForPath(p)); err != nil {
			return err
		}
		o.shared.removePending(key)
		return nil
	}
	fs.CloseFunc = mem.Close
	return fs
}

// OpenFileRead returns a forward-only stream over the object's response
// body, advertising the content length the store reported. A pending
// (created-but-unflushed) file reads from its in-memory buffer instead;
// callers wanting random access over the body use vfs.IntoMemory.
func (o *ObjectStoreFS) OpenFileRead(ctx context.Context, p vfs.Path) (vfs.FileEntry, bool, error) {
	k := o.key(p)
	if data, ok := o.shared.getPending(k); ok {
		mem := vfs.NewMemoryStream(data)
		return vfs.NewFileROEntry(p, o, vfs.ReadOnly(mem)), true, nil
	}
	rc, size, err := o.client.GetObject(ctx, o.bucket, k)
	if err != nil {
		if objerrs.IsNotFound(err) {
			return vfs.FileEntry{}, false, nil
		}
		return vfs.FileEntry{}, false, err
	}
	body := vfs.NewFunctionalStream(true, false, true)
	body.ReadFunc = func(ctx context.Context, buf []byte) (int, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return rc.Read(buf)
	}
	body.LengthFunc = func() int64 { return size }
	body.CloseFunc = rc.Close
	return vfs.NewFileROEntry(p, o, body), true, nil
}

// OpenFileWrite opens p for writing, failing with ok=false if p does not
// already exist. This backend diverges from memoryfs's implicit-create
// policy, matching realfs: writing a new key requires CreateFile first.
func (o *ObjectStoreFS) OpenFileWrite(ctx context.Context, p vfs.Path) (vfs.FileEntry, bool, error) {
	if o.readOnly {
		return vfs.FileEntry{}, false, vfserrors.New(vfserrors.CodeReadOnly, "filesystem is read-only")
	}
	k := o.key(p)
	data, existed, err := o.loadExisting(ctx, k)
	if err != nil || !existed {
		return vfs.FileEntry{}, false, err
	}
	o.shared.setPending(k, data)
	stream := o.writeThroughStream(p, k, data)
	return vfs.NewFileWOEntry(p, o, vfs.WriteOnly(stream)), true, nil
}

func (o *ObjectStoreFS) OpenFileReadWrite(ctx context.Context, p vfs.Path) (vfs.FileEntry, bool, error) {
	if o.readOnly {
		return vfs.FileEntry{}, false, vfserrors.New(vfserrors.CodeReadOnly, "filesystem is read-only")
	}
	k := o.key(p)
	data, existed, err := o.loadExisting(ctx, k)
	if err != nil {
		return vfs.FileEntry{}, false, err
	}
	if !existed {
		entry, err := o.CreateFile(ctx, p)
		if err != nil {
			return vfs.FileEntry{}, false, err
		}
		return entry, true, nil
	}
	o.shared.setPending(k, data)
	stream := o.writeThroughStream(p, k, data)
	return vfs.NewFileRWEntry(p, o, stream), true, nil
}

func (o *ObjectStoreFS) DeleteFile(ctx context.Context, p vfs.Path) (bool, error) {
	if o.readOnly {
		return false, vfserrors.New(vfserrors.CodeReadOnly, "filesystem is read-only")
	}
	k := o.key(p)
	_, hadPending := o.shared.getPending(k)
	o.shared.removePending(k)

	var hadReal bool
	_, err := o.client.StatObject(ctx, o.bucket, k)
	switch {
	case err == nil:
		hadReal = true
		if rmErr := o.client.RemoveObject(ctx, o.bucket, k); rmErr != nil {
			return false, rmErr
		}
	case !objerrs.IsNotFound(err):
		return false, err
	}

	o.shared.tombstone(k)
	return hadPending || hadReal, nil
}

func (o *ObjectStoreFS) DeleteDirectory(ctx context.Context, p vfs.Path, recursive bool) (bool, error) {
	if o.readOnly {
		return false, vfserrors.New(vfserrors.CodeReadOnly, "filesystem is read-only")
	}
	dk := o.dirKey(p)
	objs, err := o.client.ListObjects(ctx, o.bucket, dk, true)
	if err != nil {
		return false, err
	}
	trimmed := strings.TrimSuffix(dk, "/")
	simulatedDirs := o.shared.dirsUnder(trimmed)
	simulatedPending := o.shared.pendingUnder(trimmed)

	nonEmpty := len(objs) > 0 || len(simulatedDirs) > 0 || len(simulatedPending) > 0
	if nonEmpty && !recursive {
		return false, nil
	}
	if !nonEmpty && !o.shared.hasDir(trimmed) {
		return false, nil
	}

	if len(objs) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(deleteConcurrency)
		for _, obj := range objs {
			key := obj.Key
			g.Go(func() error {
				return o.client.RemoveObject(gctx, o.bucket, key)
			})
		}
		if err := g.Wait(); err != nil {
			return false, err
		}
	}

	o.shared.removeUnder(trimmed)
	o.shared.tombstone(trimmed)
	return true, nil
}

func (o *ObjectStoreFS) Integrate(ctx context.Context, dest vfs.Path, source vfs.Stream) (vfs.FileEntry, error) {
	if o.readOnly {
		return vfs.FileEntry{}, vfserrors.New(vfserrors.CodeReadOnly, "filesystem is read-only")
	}
	if err := o.ensureBucket(ctx); err != nil {
		return vfs.FileEntry{}, err
	}

	buf := vfs.NewMemoryStream(nil)
	if _, err := source.CopyTo(ctx, buf); err != nil {
		return vfs.FileEntry{}, err
	}
	data := buf.Bytes()

	k := o.key(dest)
	o.shared.setPending(k, data)
	stream := o.writeThroughStream(dest, k, data)
	return vfs.NewFileRWEntry(dest, o, stream), nil
}

// objNode is a synthetic directory-tree node built from real object keys
// plus simulated directories and pending writes, the same shape Entries
// needs regardless of which layer a child actually lives in.
type objNode struct {
	children map[string]*objNode
	isFile   bool
}

func newObjNode() *objNode { return &objNode{children: make(map[string]*objNode)} }

func (n *objNode) ensureDir(segs []string) *objNode {
	cur := n
	for _, s := range segs {
		child, ok := cur.children[s]
		if !ok {
			child = newObjNode()
			cur.children[s] = child
		}
		child.isFile = false
		cur = child
	}
	return cur
}

func (n *objNode) ensureFile(segs []string) {
	if len(segs) == 0 {
		return
	}
	parent := n.ensureDir(segs[:len(segs)-1])
	leaf, ok := parent.children[segs[len(segs)-1]]
	if !ok {
		leaf = newObjNode()
		parent.children[segs[len(segs)-1]] = leaf
	}
	leaf.isFile = true
}

func relSegments(key, prefix string) []string {
	rel := strings.TrimPrefix(key, prefix)
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" {
		return nil
	}
	return strings.Split(rel, "/")
}

func (o *ObjectStoreFS) Entries(ctx context.Context, p vfs.Path, mode vfs.ListMode) ([]vfs.FileEntry, error) {
	dk := o.dirKey(p)
	objs, err := o.client.ListObjects(ctx, o.bucket, dk, true)
	if err != nil {
		return nil, err
	}

	root := newObjNode()
	for _, obj := range objs {
		root.ensureFile(relSegments(obj.Key, dk))
	}
	for _, key := range o.shared.pendingUnder(strings.TrimSuffix(dk, "/")) {
		root.ensureFile(relSegments(key, dk))
	}
	for _, key := range o.shared.dirsUnder(strings.TrimSuffix(dk, "/")) {
		root.ensureDir(relSegments(key, dk))
	}

	re, err := vfs.CompileGlob(mode.Filter)
	if err != nil {
		return nil, vfserrors.Wrapf(err, vfserrors.CodePathInvalid, "invalid filter %q", mode.Filter)
	}

	var out []vfs.FileEntry
	var walk func(node *objNode, base vfs.Path)
	walk = func(node *objNode, base vfs.Path) {
		names := make([]string, 0, len(node.children))
		for name := range node.children {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			child := node.children[name]
			childPath, err := base.Append(name)
			if err != nil {
				continue
			}
			if re.MatchString(name) {
				if child.isFile {
					out = append(out, vfs.NewFileRefEntry(childPath, o))
				} else {
					out = append(out, vfs.NewDirectoryEntry(childPath, o))
				}
			}
			if mode.Recursive && !child.isFile {
				walk(child, childPath)
			}
		}
	}
	walk(root, p)
	return out, nil
}

func (o *ObjectStoreFS) At(ctx context.Context, p vfs.Path, writable bool) (vfs.FileSystem, error) {
	if writable && o.readOnly {
		return nil, vfserrors.New(vfserrors.CodeReadOnly, "cannot upgrade a read-only filesystem to writable")
	}
	if !p.IsRoot() {
		ok, err := o.DirExists(ctx, p)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, vfserrors.Newf(vfserrors.CodeNotFound, "directory not found: %q", p)
		}
	}
	return &ObjectStoreFS{
		client:   o.client,
		bucket:   o.bucket,
		prefix:   o.key(p),
		readOnly: !writable,
		shared:   o.shared,
	}, nil
}
