package objectstorefs

import (
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config configures an ObjectStoreFS: either Client or
// Endpoint+AccessKey+SecretKey must be supplied.
type Config struct {
	// Endpoint is the object-store server address (e.g. "localhost:9000").
	Endpoint string
	// Bucket is the target bucket name. Required.
	Bucket string
	// AccessKey/SecretKey authenticate against Endpoint.
	AccessKey string
	SecretKey string
	// UseSSL selects HTTPS when dialing Endpoint.
	UseSSL bool
	// Prefix namespaces every key under this backend beneath a common
	// root.
	Prefix string
	// ReadOnly suppresses all mutating operations.
	ReadOnly bool
	// Client, if set, is used instead of dialing Endpoint.
	Client *minio.Client
}

func (c Config) validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("bucket is required")
	}
	if c.Client != nil {
		return nil
	}
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required when client is not provided")
	}
	if c.AccessKey == "" {
		return fmt.Errorf("access key is required when client is not provided")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key is required when client is not provided")
	}
	return nil
}

// New constructs an ObjectStoreFS from cfg, dialing a minio.Client unless
// cfg.Client is already set.
func New(cfg Config) (*ObjectStoreFS, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var client Client
	if cfg.Client != nil {
		client = newMinioClient(cfg.Client)
	} else {
		mc, err := minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("create object store client: %w", err)
		}
		client = newMinioClient(mc)
	}

	return newWithClient(client, cfg.Bucket, normalizePrefix(cfg.Prefix), cfg.ReadOnly), nil
}

// NewWithClient constructs an ObjectStoreFS directly from a Client,
// bypassing dialing, for callers (tests, or a host wanting to share a
// single *minio.Client across backends) that already hold a configured
// Client.
func NewWithClient(client Client, bucket, prefix string, readOnly bool) *ObjectStoreFS {
	return newWithClient(client, bucket, normalizePrefix(prefix), readOnly)
}

func newWithClient(client Client, bucket, prefix string, readOnly bool) *ObjectStoreFS {
	return &ObjectStoreFS{
		client:   client,
		bucket:   bucket,
		prefix:   prefix,
		readOnly: readOnly,
		shared:   newSharedState(),
	}
}

func normalizePrefix(prefix string) string {
	return strings.Trim(strings.ReplaceAll(prefix, `\`, "/"), "/")
}
