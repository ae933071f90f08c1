// Package storage keeps computed layouts so that clients of the HTTP API can
// fetch them again by ID.
//
// Three backends implement [Store]:
//   - [MemoryStore]: in-process, for tests and single-instance servers
//   - [FileStore]: one JSON file per layout, the default for `boxflow serve`
//   - [MongoStore]: a MongoDB collection with a TTL index, for deployments
//     with several server instances
//
// # Usage
//
//	rec := storage.NewRecord(snapshot, doc.Hash(), storage.DefaultTTL)
//	if err := store.Put(ctx, rec); err != nil {
//	    return err
//	}
//
//	rec, err := store.Get(ctx, id)
//	if errors.Is(err, errors.ErrCodeLayoutNotFound) {
//	    // unknown or expired
//	}
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/boxflow/pkg/document"
	"github.com/matzehuels/boxflow/pkg/errors"
)

// DefaultTTL is how long a stored layout is kept.
const DefaultTTL = 24 * time.Hour

// Record is a stored layout.
type Record struct {
	ID           string             `json:"id"`
	DocumentHash string             `json:"document_hash"`
	Snapshot     *document.Snapshot `json:"snapshot"`
	CreatedAt    time.Time          `json:"created_at"`
	// ExpiresAt is zero for records that never expire.
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// NewRecord wraps snap in a record with a fresh UUID. The snapshot's ID is
// set to the record ID. A ttl of zero means the record never expires.
func NewRecord(snap *document.Snapshot, docHash string, ttl time.Duration) *Record {
	now := time.Now().UTC().Truncate(time.Millisecond)
	r := &Record{
		ID:           uuid.NewString(),
		DocumentHash: docHash,
		Snapshot:     snap,
		CreatedAt:    now,
	}
	if ttl > 0 {
		r.ExpiresAt = now.Add(ttl)
	}
	if snap != nil {
		snap.ID = r.ID
	}
	return r
}

// IsExpired reports whether the record has expired.
func (r *Record) IsExpired() bool {
	return !r.ExpiresAt.IsZero() && time.Now().After(r.ExpiresAt)
}

// Store is the interface for layout storage backends. Implementations are
// safe for concurrent use.
type Store interface {
	// Get returns the record with id. Missing and expired records yield an
	// error with code errors.ErrCodeLayoutNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// Put stores rec, replacing any record with the same ID.
	Put(ctx context.Context, rec *Record) error

	// Delete removes the record with id. Deleting a missing record yields
	// errors.ErrCodeLayoutNotFound.
	Delete(ctx context.Context, id string) error

	// List returns the live records ordered by creation time.
	List(ctx context.Context) ([]*Record, error)

	// Cleanup removes expired records.
	Cleanup(ctx context.Context) error

	// Close releases the backend's resources.
	Close() error
}

// ValidateID checks that id is a UUID as issued by [NewRecord].
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid layout id %q", id)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeLayoutNotFound, "layout %s not found", id)
}
