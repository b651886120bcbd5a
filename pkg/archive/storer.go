// Package archive stores chat responses addressed by their content hash.
package archive

import (
	"context"
	"time"

	"github.com/papercomputeco/chatmodel/pkg/llm"
)

// Entry is an archived response.
type Entry struct {
	// Hash is ChatResponse.Hash at the time the response was stored.
	Hash string `json:"hash"`

	// CreatedAt is when the hash was first stored.
	CreatedAt time.Time `json:"created_at"`

	// Response is decoded from the stored snapshot. Later changes to the
	// original response's advisor context are not reflected.
	Response *llm.ChatResponse `json:"response"`
}

// Storer persists chat responses keyed by content hash. Identical responses
// hash identically, so storing one twice is a no-op.
type Storer interface {
	// Put snapshots resp and stores it under resp.Hash(). It reports whether
	// the hash was new to the store.
	Put(ctx context.Context, resp *llm.ChatResponse) (hash string, isNew bool, err error)

	// Get retrieves an entry by hash. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, hash string) (*Entry, error)

	// Has checks if an entry exists by hash.
	Has(ctx context.Context, hash string) (bool, error)

	// List returns all entries, oldest first.
	List(ctx context.Context) ([]*Entry, error)

	// Close releases any resources.
	Close() error
}

// ErrNotFound is returned when no entry has the requested hash.
type ErrNotFound struct {
	Hash string
}

func (e ErrNotFound) Error() string {
	if e.Hash == "" {
		return "response not found"
	}

	return "response not found: " + e.Hash
}
