package currency

import "context"

// Storage is an append-only audit log of archive payloads.
type Storage interface {
	Append(ctx context.Context, entry AuditEntry) (AuditEntryWithID, error)
	GetStorageProviderName() string
	Migrate() error
	Drop() error
	Close() error
}
