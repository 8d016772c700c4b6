package services

import (
	"context"

	"github.com/finledger/posting_engine/internal/core/domain"
	"github.com/finledger/posting_engine/internal/dto"
)

// PostingSvcFacade is the public entry point of the posting pipeline.
type PostingSvcFacade interface {
	// Post turns a business event into a balanced journal entry: fiscal
	// period guard, rule lookup and expansion (falling back to the
	// caller's lines), atomic persistence, audit write. Fatal errors
	// (locked period, storage failure) propagate; rule problems degrade
	// to the fallback lines.
	Post(ctx context.Context, tenantID, actorID string, req dto.PostRequest) (*domain.JournalEntry, error)

	// ReverseEntry creates a correcting entry that mirrors a posted
	// entry; the original is marked REVERSED, never edited.
	ReverseEntry(ctx context.Context, tenantID, entryID, actorID string) (*domain.JournalEntry, error)
}
