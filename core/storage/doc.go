// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for common operations
// like checking bucket existence, uploading files, and listing objects. This abstraction
// supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Hand-off Files
//
// Exchange files for translators are published under
// handoff/<app>/<lang>[-<territory>].csv. HandoffKey builds those names and
// the PutBytes, GetBytes, ListHandoffs and Remove helpers move them.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.EnsureBucket(ctx, client, config.Bucket, config.Region)
//	err = storage.PutBytes(ctx, client, config.Bucket, storage.HandoffKey("shop", "fr"), data, storage.CSVContentType)
package storage
