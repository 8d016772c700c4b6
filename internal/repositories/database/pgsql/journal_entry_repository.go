package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/finledger/posting_engine/internal/apperrors"
	"github.com/finledger/posting_engine/internal/core/domain"
	portsrepo "github.com/finledger/posting_engine/internal/core/ports/repositories"
	"github.com/finledger/posting_engine/internal/models"
	"github.com/finledger/posting_engine/internal/utils/mapping"
	"github.com/finledger/posting_engine/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalEntryRepository struct {
	BaseRepository
}

// newPgxJournalEntryRepository creates a new repository for journal entry data.
func newPgxJournalEntryRepository(pool *pgxpool.Pool) portsrepo.JournalEntryRepositoryFacade {
	return &PgxJournalEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalEntryRepositoryFacade = (*PgxJournalEntryRepository)(nil)

const journalEntryColumns = `
	entry_id, tenant_id, legal_entity_id, entry_number, entry_date, description, reference,
	model_code, source_event_id, currency_code, status, rule_id, total_debit, total_credit,
	original_entry_id, reversing_entry_id,
	created_at, created_by, last_updated_at, last_updated_by
`

// CreateEntry persists the header and its lines in one database
// transaction. The per-(tenant, legal entity) entry number comes from a
// conditional upsert on entry_sequences: the row lock taken by the
// UPDATE serialises concurrent postings for the same pair, so numbers
// are gapless under contention. A reused source_event_id trips the
// unique index and surfaces as apperrors.ErrDuplicate with nothing
// written.
func (r *PgxJournalEntryRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	seqQuery := `
		INSERT INTO entry_sequences (tenant_id, legal_entity_id, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (tenant_id, legal_entity_id)
		DO UPDATE SET last_number = entry_sequences.last_number + 1
		RETURNING last_number;
	`
	var entryNumber int64
	if err := tx.QueryRow(ctx, seqQuery, entry.TenantID, entry.LegalEntityID).Scan(&entryNumber); err != nil {
		return apperrors.NewAppError(500, "failed to assign entry number for tenant "+entry.TenantID, err)
	}

	modelEntry := mapping.ToModelJournalEntry(entry)
	modelEntry.EntryNumber = entryNumber

	entryQuery := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err = tx.Exec(ctx, entryQuery,
		modelEntry.EntryID,
		modelEntry.TenantID,
		modelEntry.LegalEntityID,
		modelEntry.EntryNumber,
		modelEntry.EntryDate,
		modelEntry.Description,
		modelEntry.Reference,
		modelEntry.ModelCode,
		modelEntry.SourceEventID,
		modelEntry.CurrencyCode,
		modelEntry.Status,
		modelEntry.RuleID,
		modelEntry.TotalDebit,
		modelEntry.TotalCredit,
		modelEntry.OriginalEntryID,
		modelEntry.ReversingEntryID,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: source event %s already posted", apperrors.ErrDuplicate, modelEntry.SourceEventID)
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+modelEntry.EntryID, err)
	}

	if err := insertLines(ctx, tx, lines); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for entry "+modelEntry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// CreateReversalEntry persists a correcting entry and flips the
// original entry's status to REVERSED in the same transaction. The
// status predicate on the UPDATE makes concurrent reversals of the same
// entry lose cleanly: the second one sees zero rows affected.
func (r *PgxJournalEntryRepository) CreateReversalEntry(ctx context.Context, reversing domain.JournalEntry, lines []domain.JournalLine, originalEntryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	flipQuery := `
		UPDATE journal_entries
		SET status = 'REVERSED',
		    reversing_entry_id = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE entry_id = $1 AND status = 'POSTED';
	`
	cmdTag, err := tx.Exec(ctx, flipQuery,
		originalEntryID,
		reversing.EntryID,
		reversing.LastUpdatedAt,
		reversing.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entry "+originalEntryID+" reversed", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is not in POSTED status", apperrors.ErrDuplicate, originalEntryID)
	}

	seqQuery := `
		INSERT INTO entry_sequences (tenant_id, legal_entity_id, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (tenant_id, legal_entity_id)
		DO UPDATE SET last_number = entry_sequences.last_number + 1
		RETURNING last_number;
	`
	var entryNumber int64
	if err := tx.QueryRow(ctx, seqQuery, reversing.TenantID, reversing.LegalEntityID).Scan(&entryNumber); err != nil {
		return apperrors.NewAppError(500, "failed to assign entry number for reversal of "+originalEntryID, err)
	}

	modelEntry := mapping.ToModelJournalEntry(reversing)
	modelEntry.EntryNumber = entryNumber

	entryQuery := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err = tx.Exec(ctx, entryQuery,
		modelEntry.EntryID,
		modelEntry.TenantID,
		modelEntry.LegalEntityID,
		modelEntry.EntryNumber,
		modelEntry.EntryDate,
		modelEntry.Description,
		modelEntry.Reference,
		modelEntry.ModelCode,
		modelEntry.SourceEventID,
		modelEntry.CurrencyCode,
		modelEntry.Status,
		modelEntry.RuleID,
		modelEntry.TotalDebit,
		modelEntry.TotalCredit,
		modelEntry.OriginalEntryID,
		modelEntry.ReversingEntryID,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: entry %s already has a reversal", apperrors.ErrDuplicate, originalEntryID)
		}
		return apperrors.NewAppError(500, "failed to insert reversing entry "+modelEntry.EntryID, err)
	}

	if err := insertLines(ctx, tx, lines); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for reversing entry "+modelEntry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

func insertLines(ctx context.Context, tx pgx.Tx, lines []domain.JournalLine) error {
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, debit, credit, description, is_tax_line, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, line := range lines {
		modelLine := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.EntryID,
			modelLine.AccountID,
			modelLine.Debit,
			modelLine.Credit,
			modelLine.Description,
			modelLine.IsTaxLine,
			modelLine.SortOrder,
		)
	}
	br := tx.SendBatch(ctx, batch)
	return br.Close()
}

// FindEntryByID retrieves an entry header without lines.
func (r *PgxJournalEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE entry_id = $1;
	`
	return r.queryOneEntry(ctx, query, entryID)
}

// FindEntryBySourceEventID retrieves the entry posted for a given source event.
func (r *PgxJournalEntryRepository) FindEntryBySourceEventID(ctx context.Context, tenantID, sourceEventID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE tenant_id = $1 AND source_event_id = $2;
	`
	return r.queryOneEntry(ctx, query, tenantID, sourceEventID)
}

func (r *PgxJournalEntryRepository) queryOneEntry(ctx context.Context, query string, args ...interface{}) (*domain.JournalEntry, error) {
	var m models.JournalEntry
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&m.EntryID,
		&m.TenantID,
		&m.LegalEntityID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Description,
		&m.Reference,
		&m.ModelCode,
		&m.SourceEventID,
		&m.CurrencyCode,
		&m.Status,
		&m.RuleID,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.OriginalEntryID,
		&m.ReversingEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry: %w", err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindLinesByEntryID retrieves an entry's lines in sort order.
func (r *PgxJournalEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, debit, credit, description, is_tax_line, sort_order
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY sort_order;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	modelLines := []models.JournalLine{}
	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountID,
			&m.Debit,
			&m.Credit,
			&m.Description,
			&m.IsTaxLine,
			&m.SortOrder,
		); err != nil {
			return nil, fmt.Errorf("failed to scan line row for entry %s: %w", entryID, err)
		}
		modelLines = append(modelLines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for entry %s: %w", entryID, err)
	}

	return mapping.ToDomainJournalLineSlice(modelLines), nil
}

// ListEntriesByTenant retrieves a token-paginated list of entries,
// newest first. The cursor is (entry_date, created_at); tuple
// comparison keeps the pagination stable across inserts.
func (r *PgxJournalEntryRepository) ListEntriesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE tenant_id = $1
	`
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	args := []interface{}{tenantID}
	query := baseQuery

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (entry_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
	}

	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries for tenant "+tenantID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		var m models.JournalEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.TenantID,
			&m.LegalEntityID,
			&m.EntryNumber,
			&m.EntryDate,
			&m.Description,
			&m.Reference,
			&m.ModelCode,
			&m.SourceEventID,
			&m.CurrencyCode,
			&m.Status,
			&m.RuleID,
			&m.TotalDebit,
			&m.TotalCredit,
			&m.OriginalEntryID,
			&m.ReversingEntryID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row for tenant "+tenantID, err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows for tenant "+tenantID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextTokenVal, nil
}
