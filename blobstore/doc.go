// Package blobstore abstracts where agglomeration snapshots live.
//
// The BlobStore interface is deliberately small: open, create, put, delete,
// list. Backends included: in-memory (tests), local filesystem with
// atomic renames, S3 (blobstore/s3) and MinIO (blobstore/minio).
//
// Implement BlobStore to support a custom backend; return ErrNotFound from
// Open for missing blobs so callers can use errors.Is.
package blobstore
