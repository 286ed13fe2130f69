// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so discovery manifests
// can be published to AWS S3 or a self-hosted MinIO instance, and so publication
// can be unit tested with the mock in core/storage/mocks.
//
// # Operations
//
//   - BucketExists / MakeBucket: make sure the manifest bucket is there.
//   - PutObject: upload an encoded manifest.
//   - GetObject: read a previously published manifest.
//   - ListObjects: list published manifests under a prefix.
//   - RemoveObjects: prune old manifests in one batch.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "tables")
package storage
