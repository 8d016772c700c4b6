package repositories

import (
	"context"

	"github.com/finledger/posting_engine/internal/core/domain"
)

// JournalEntryWriter defines write operations for journal entries.
type JournalEntryWriter interface {
	// CreateEntry persists the header and its lines in one database
	// transaction, assigning the next entry number for the entry's
	// (tenant, legal entity) pair. A reused source-event id fails with
	// an error matching apperrors.ErrDuplicate and writes nothing.
	CreateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// CreateReversalEntry persists a correcting entry and flips the
	// original entry's status to REVERSED in the same transaction.
	CreateReversalEntry(ctx context.Context, reversing domain.JournalEntry, lines []domain.JournalLine, originalEntryID string) error
}

// JournalEntryReader defines read operations for journal entries.
type JournalEntryReader interface {
	// FindEntryByID retrieves an entry header without lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryBySourceEventID retrieves the entry posted for a given
	// source event, used to answer duplicate posts idempotently.
	FindEntryBySourceEventID(ctx context.Context, tenantID, sourceEventID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves an entry's lines in sort order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntriesByTenant retrieves a token-paginated list of entries.
	ListEntriesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalEntryRepositoryFacade combines all journal-entry repository interfaces.
type JournalEntryRepositoryFacade interface {
	JournalEntryWriter
	JournalEntryReader
}
