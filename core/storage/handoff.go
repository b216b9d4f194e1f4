package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
)

// HandoffPrefix is the object prefix for exchange files.
const HandoffPrefix = "handoff"

// CSVContentType is the content type of uploaded exchange files.
const CSVContentType = "text/csv; charset=utf-8"

// HandoffKey returns the object name of the exchange file of an application
// and locale, e.g. handoff/shop/fr-CA.csv. An empty locale names the file
// holding every locale.
func HandoffKey(appID, locale string) string {
	if locale == "" {
		locale = "all"
	}
	return path.Join(HandoffPrefix, appID, locale+".csv")
}

// EnsureBucket creates the bucket when it does not exist yet.
func EnsureBucket(ctx context.Context, client Client, bucket, region string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	return nil
}

// PutBytes uploads data as one object.
func PutBytes(ctx context.Context, client Client, bucket, key string, data []byte, contentType string) error {
	_, err := client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// GetBytes downloads one object.
func GetBytes(ctx context.Context, client Client, bucket, key string) ([]byte, error) {
	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// ListHandoffs lists the exchange file names of an application.
func ListHandoffs(ctx context.Context, client Client, bucket, appID string) ([]string, error) {
	prefix := path.Join(HandoffPrefix, appID) + "/"
	var keys []string
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		if strings.HasSuffix(obj.Key, ".csv") {
			keys = append(keys, obj.Key)
		}
	}
	return keys, nil
}

// Remove deletes one object.
func Remove(ctx context.Context, client Client, bucket, key string) error {
	if err := client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}
