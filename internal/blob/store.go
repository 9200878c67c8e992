// Package blob provides access to the object store holding uploaded
// registrant files (payment screenshots, profile images, attachments).
//
// The store is referenced only by key from the relational data model. Callers
// decide per operation whether a failed deletion blocks the surrounding
// database write or is merely logged; the package itself never retries.
package blob

import (
	"context"
	"errors"
)

// ErrKeyRequired indicates that an empty object key was passed.
var ErrKeyRequired = errors.New("blob key is required")

// BatchResult reports the outcome of a batch deletion.
type BatchResult struct {
	// Deleted is the number of objects confirmed deleted.
	Deleted int
	// Failed holds keys the store refused to delete, with reasons.
	Failed map[string]string
}

// Store is the object storage surface used by the core.
type Store interface {
	// Delete removes a single object.
	Delete(ctx context.Context, key string) error

	// DeleteBatch removes many objects, chunking requests to the store's
	// per-request object limit. Partial failures are reported in the result,
	// not returned as an error.
	DeleteBatch(ctx context.Context, keys []string) (BatchResult, error)
}
