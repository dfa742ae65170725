// Package storage abstracts the object store holding user-uploaded binary
// content (currently avatars).
package storage

import "context"

// ObjectStore is the blob-storage port. Keys are opaque to callers; the
// avatar service decides the naming scheme.
type ObjectStore interface {
	// Put uploads data under key, overwriting any existing object.
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// PresignedGetURL returns a short-lived download URL for key.
	PresignedGetURL(ctx context.Context, key string) (string, error)
}
