package pipeline

import "context"

// Store is the append-only datastore sink for normalized records. No
// uniqueness is enforced: appending the same records twice duplicates them.
type Store interface {
	AppendViewingActivity(ctx context.Context, records []ViewingActivityRecord) error
	AppendBillingHistory(ctx context.Context, records []BillingHistoryRecord) error

	// Close flushes and releases the underlying database. The database file
	// must be complete on disk before the refiner encrypts it.
	Close() error
}

// Encryptor symmetrically encrypts a file and returns the encrypted copy's
// path. Key management is outside the pipeline's scope.
type Encryptor interface {
	EncryptFile(keyString, path string) (string, error)
}

// Pinner uploads artifacts to a content-addressed store and returns their
// content identifiers.
type Pinner interface {
	PinFile(ctx context.Context, path string) (string, error)
	PinJSON(ctx context.Context, v any) (string, error)
}
