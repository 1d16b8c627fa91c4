/*
Package storage provides access to an S3-compatible object store.

It is used to keep whole documents (such as the user mapping) under fixed object keys.
*/
package storage

import (
	"context"
	"errors"
)

// ErrObjectNotFound is returned by Get when no object exists under the key.
var ErrObjectNotFound = errors.New("object not found")

// ServiceConfig holds the configuration required to connect to the storage service.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// ObjectStore defines the public interface for the object storage service.
type ObjectStore interface {
	// Get downloads the full content of the object stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put uploads data under key, replacing any existing object.
	Put(ctx context.Context, key string, contentType string, data []byte) error
}

// NewObjectStore is the factory function for ObjectStore.
// Currently, only S3 compatible implementations are supported.
func NewObjectStore(ctx context.Context, cfg ServiceConfig) (ObjectStore, error) {
	return newS3Client(ctx, cfg)
}
