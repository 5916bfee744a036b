package domain

import "time"

// Asset is metadata for a file uploaded to object storage.
type Asset struct {
	ID          int64
	UserID      int64
	Name        string
	Key         string
	ContentType string
	Size        int64
	SHA256      string
	CreatedAt   time.Time
}
