package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Client is the subset of the S3 API used to exchange hand-off files.
type Client interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	// ListObjects streams the objects under opts.Prefix; a listing failure
	// arrives as an ObjectInfo with Err set.
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

const defaultTimeout = 30 * time.Second

// NewClient connects to the S3-compatible service holding the hand-off bucket.
// The connection is lazy: no request is made until the first operation.
func NewClient(cfg Config) (Client, error) {
	host, secure, err := endpointHost(cfg.Endpoint, cfg.UseSSL)
	if err != nil {
		return nil, err
	}

	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	mc, err := minio.New(host, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    secure,
		Region:    cfg.Region,
		Transport: newTransport(timeout),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client for %s: %w", host, err)
	}

	return &minioClient{Client: mc}, nil
}

// endpointHost strips the scheme from endpoint. An https scheme forces TLS,
// an http scheme disables it; a bare host keeps useSSL.
func endpointHost(endpoint string, useSSL bool) (string, bool, error) {
	host := strings.TrimSpace(endpoint)
	switch {
	case strings.HasPrefix(host, "https://"):
		host, useSSL = strings.TrimPrefix(host, "https://"), true
	case strings.HasPrefix(host, "http://"):
		host, useSSL = strings.TrimPrefix(host, "http://"), false
	}
	host = strings.TrimSuffix(host, "/")
	if host == "" {
		return "", false, errors.New("storage endpoint is empty")
	}
	return host, useSSL, nil
}

// newTransport bounds every connection phase by timeout. Request deadlines
// come from the operation context.
func newTransport(timeout time.Duration) *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ExpectContinueTimeout: time.Second,
		ResponseHeaderTimeout: timeout,
	}
}

// minioClient narrows GetObject to an io.ReadCloser.
type minioClient struct {
	*minio.Client
}

func (c *minioClient) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	return c.Client.GetObject(ctx, bucketName, objectName, opts)
}
