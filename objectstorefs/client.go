package objectstorefs

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"

	"github.com/jmgilman/vfs/objectstorefs/internal/objerrs"
)

// ObjectInfo describes a stored object's key and size, the minimal shape
// ObjectStoreFS needs from a listing or stat call.
type ObjectInfo struct {
	Key  string
	Size int64
}

// Client is the object-store surface ObjectStoreFS depends on: put, get,
// stat, remove, list, and the bucket lifecycle calls. minioClient is the
// production adapter over *minio.Client; tests substitute a fake.
type Client interface {
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, int64, error)
	StatObject(ctx context.Context, bucket, key string) (ObjectInfo, error)
	RemoveObject(ctx context.Context, bucket, key string) error
	ListObjects(ctx context.Context, bucket, prefix string, recursive bool) ([]ObjectInfo, error)
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string) error
}

// minioClient adapts a *minio.Client to Client, translating every
// error through objerrs at the boundary.
type minioClient struct {
	inner *minio.Client
}

func newMinioClient(c *minio.Client) *minioClient { return &minioClient{inner: c} }

func (m *minioClient) PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error {
	_, err := m.inner.PutObject(ctx, bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	return objerrs.Translate(err)
}

func (m *minioClient) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, int64, error) {
	info, err := m.inner.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, 0, objerrs.Translate(err)
	}
	obj, err := m.inner.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, objerrs.Translate(err)
	}
	return obj, info.Size, nil
}

func (m *minioClient) StatObject(ctx context.Context, bucket, key string) (ObjectInfo, error) {
	info, err := m.inner.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return ObjectInfo{}, objerrs.Translate(err)
	}
	return ObjectInfo{Key: key, Size: info.Size}, nil
}

func (m *minioClient) RemoveObject(ctx context.Context, bucket, key string) error {
	return objerrs.Translate(m.inner.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}))
}

func (m *minioClient) ListObjects(ctx context.Context, bucket, prefix string, recursive bool) ([]ObjectInfo, error) {
	var out []ObjectInfo
	for obj := range m.inner.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: recursive}) {
		if obj.Err != nil {
			return nil, objerrs.Translate(obj.Err)
		}
		out = append(out, ObjectInfo{Key: obj.Key, Size: obj.Size})
	}
	return out, nil
}

func (m *minioClient) BucketExists(ctx context.Context, bucket string) (bool, error) {
	ok, err := m.inner.BucketExists(ctx, bucket)
	if err != nil {
		return false, objerrs.Translate(err)
	}
	return ok, nil
}

func (m *minioClient) MakeBucket(ctx context.Context, bucket string) error {
	return objerrs.Translate(m.inner.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
}
