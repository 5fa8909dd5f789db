package objectstorefs_test

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/jmgilman/vfs/objectstorefs"
	"github.com/jmgilman/vfs/objectstorefs/internal/objerrs"
)

// fakeClient is an in-memory objectstorefs.Client, standing in for a
// real object-store server so the unit tests run without a network;
// the containerized-MinIO coverage lives in integration_test.go.
type fakeClient struct {
	mu      sync.Mutex
	buckets map[string]bool
	objects map[string]map[string][]byte // bucket -> key -> bytes
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		buckets: make(map[string]bool),
		objects: make(map[string]map[string][]byte),
	}
}

func (f *fakeClient) PutObject(_ context.Context, bucket, key string, r io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.objects[bucket] == nil {
		f.objects[bucket] = make(map[string][]byte)
	}
	f.objects[bucket][key] = data
	return nil
}

func (f *fakeClient) GetObject(_ context.Context, bucket, key string) (io.ReadCloser, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[bucket][key]
	if !ok {
		return nil, 0, objerrs.ErrNotFound
	}
	return io.NopCloser(strings.NewReader(string(data))), int64(len(data)), nil
}

func (f *fakeClient) StatObject(_ context.Context, bucket, key string) (objectstorefs.ObjectInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[bucket][key]
	if !ok {
		return objectstorefs.ObjectInfo{}, objerrs.ErrNotFound
	}
	return objectstorefs.ObjectInfo{Key: key, Size: int64(len(data))}, nil
}

func (f *fakeClient) RemoveObject(_ context.Context, bucket, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.objects[bucket] == nil {
		return objerrs.ErrNotFound
	}
	if _, ok := f.objects[bucket][key]; !ok {
		return objerrs.ErrNotFound
	}
	delete(f.objects[bucket], key)
	return nil
}

func (f *fakeClient) ListObjects(_ context.Context, bucket, prefix string, _ bool) ([]objectstorefs.ObjectInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []objectstorefs.ObjectInfo
	for key, data := range f.objects[bucket] {
		if strings.HasPrefix(key, prefix) {
			out = append(out, objectstorefs.ObjectInfo{Key: key, Size: int64(len(data))})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (f *fakeClient) BucketExists(_ context.Context, bucket string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buckets[bucket], nil
}

func (f *fakeClient) MakeBucket(_ context.Context, bucket string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buckets[bucket] = true
	return nil
}
