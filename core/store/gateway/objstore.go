package gateway

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore is the data-plane interface the gateway needs from the object
// storage service. Narrow on purpose, so tests can stub it.
type ObjectStore interface {
	// BucketExists checks if a resource bucket exists.
	BucketExists(ctx context.Context, bucket string) (bool, error)
	// CopyObject performs a server-side copy and returns the ETag of the
	// written object.
	CopyObject(ctx context.Context, srcBucket, srcKey, destBucket, destKey string) (string, error)
	// RemoveObject deletes one object from a resource bucket.
	RemoveObject(ctx context.Context, bucket, key string) error
}

// NewObjectStore creates a MinIO-backed ObjectStore from the configuration.
func NewObjectStore(cfg Config) (ObjectStore, error) {
	// Minio expects endpoint without scheme
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Custom transport with strict timeouts so a dead endpoint fails fast
	// instead of hanging a worker.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	mc, err := minio.New(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &minioStore{mc: mc}, nil
}

type minioStore struct {
	mc *minio.Client
}

func (s *minioStore) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return s.mc.BucketExists(ctx, bucket)
}

func (s *minioStore) CopyObject(ctx context.Context, srcBucket, srcKey, destBucket, destKey string) (string, error) {
	info, err := s.mc.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: destBucket, Object: destKey},
		minio.CopySrcOptions{Bucket: srcBucket, Object: srcKey},
	)
	if err != nil {
		return "", err
	}
	return strings.Trim(info.ETag, `"`), nil
}

func (s *minioStore) RemoveObject(ctx context.Context, bucket, key string) error {
	return s.mc.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{})
}
