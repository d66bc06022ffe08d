package ports

import "context"

// BlobStore is the external binary object store. The core never streams
// bytes through it; clients upload directly against a pre-signed URL and
// read through the public URL convention.
type BlobStore interface {
	// IssueUploadURL returns a pre-signed write URL for the given object
	// key and content type
	IssueUploadURL(ctx context.Context, key, contentType string) (string, error)

	// PublicURL returns the public read URL for an object key
	PublicURL(key string) string
}
