// Package s3 provides an S3 implementation of the blobstore.Store interface.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "corebench/")
//	name, err := corebench.Archive(ctx, store, report, compress.KindZSTD)
//
// # Features
//
//   - Multipart uploads through the SDK upload manager
//   - Optional CRC32C integrity validation
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
