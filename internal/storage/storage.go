package storage

import (
	"context"
	"io"
	"time"
)

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// PutInput describes a single object upload.
type PutInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
}

// Service stores user assets in remote object storage.
type Service interface {
	Put(ctx context.Context, in PutInput) (string, error)
	DeleteObject(ctx context.Context, bucket, key string) error
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
	DeletePrefix(ctx context.Context, bucket, prefix string) error
	GetObjectURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
}
