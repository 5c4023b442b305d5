package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/school_ledger/internal/models"
	"github.com/SscSPs/school_ledger/internal/utils/mapping"
	"github.com/SscSPs/school_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(db DBTX) portsrepo.JournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{db: db}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepository
var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

const journalEntryColumns = `journal_entry_id, entry_no, transaction_id, description, entry_date,
	reference, total_debit, total_credit, is_balanced, status, reversal_of_id,
	reversed_by_entry_id, reversed_by, reversed_at,
	created_at, created_by, last_updated_at, last_updated_by`

const journalLineColumns = `journal_line_id, journal_entry_id, account_id, debit, credit, description, line_order`

func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.JournalEntryID,
		&m.EntryNo,
		&m.TransactionID,
		&m.Description,
		&m.Date,
		&m.Reference,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.IsBalanced,
		&m.Status,
		&m.ReversalOfID,
		&m.ReversedByEntryID,
		&m.ReversedBy,
		&m.ReversedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveJournalEntry inserts the header and queues every line in one batch.
func (r *PgxJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	journalQuery := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.db.Exec(ctx, journalQuery,
		m.JournalEntryID,
		m.EntryNo,
		m.TransactionID,
		m.Description,
		m.Date,
		m.Reference,
		m.TotalDebit,
		m.TotalCredit,
		m.IsBalanced,
		m.Status,
		m.ReversalOfID,
		m.ReversedByEntryID,
		m.ReversedBy,
		m.ReversedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "journal entry "+m.EntryNo)
	}

	batch := &pgx.Batch{}
	lineQuery := `INSERT INTO journal_lines (` + journalLineColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7);`
	for _, line := range entry.Lines {
		ml := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			ml.JournalLineID,
			ml.JournalEntryID,
			ml.AccountID,
			ml.Debit,
			ml.Credit,
			ml.Description,
			ml.LineOrder,
		)
	}
	// Close the batch results to surface the error of any queued insert.
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return mapError(err, "lines of journal entry "+m.EntryNo)
	}
	return nil
}

func (r *PgxJournalRepository) findOne(ctx context.Context, what, where string, arg any) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE ` + where
	m, err := scanJournalEntry(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, mapError(err, what)
	}
	lines, err := r.linesFor(ctx, []string{m.JournalEntryID})
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainJournalEntry(m, lines[m.JournalEntryID])
	return &entry, nil
}

// FindJournalEntryByID retrieves an entry with its lines in line order.
func (r *PgxJournalRepository) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	return r.findOne(ctx, "journal entry "+journalEntryID, "journal_entry_id = $1", journalEntryID)
}

// FindJournalEntryByTransactionID returns the original (non-reversal) entry of a transaction.
func (r *PgxJournalRepository) FindJournalEntryByTransactionID(ctx context.Context, transactionID string) (*domain.JournalEntry, error) {
	return r.findOne(ctx, "journal entry for transaction "+transactionID,
		"transaction_id = $1 AND reversal_of_id IS NULL", transactionID)
}

// LockJournalEntryForUpdate reads the entry under a row lock.
func (r *PgxJournalRepository) LockJournalEntryForUpdate(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	return r.findOne(ctx, "journal entry "+journalEntryID, "journal_entry_id = $1 FOR UPDATE", journalEntryID)
}

func (r *PgxJournalRepository) MarkJournalEntryReversed(ctx context.Context, journalEntryID string, reversingEntryID string, reversedBy string, reversedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2, reversed_by_entry_id = $3, reversed_by = $4, reversed_at = $5,
		    last_updated_at = $5, last_updated_by = $4
		WHERE journal_entry_id = $1;
	`
	tag, err := r.db.Exec(ctx, query, journalEntryID, string(domain.JournalReversed), reversingEntryID, reversedBy, reversedAt)
	if err != nil {
		return mapError(err, "journal entry "+journalEntryID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry " + journalEntryID + " not found")
	}
	return nil
}

// ListJournalEntries returns one page of entries, newest first, with their lines.
func (r *PgxJournalRepository) ListJournalEntries(ctx context.Context, filter portsrepo.JournalEntryFilter) ([]domain.JournalEntry, *string, error) {
	var (
		cursorDate, cursorCreated *time.Time
		cursorID                  *string
	)
	if filter.NextToken != nil && *filter.NextToken != "" {
		c, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursorDate, cursorCreated, cursorID = &c.Date, &c.CreatedAt, &c.ID
	}
	var statusFilter *string
	if filter.Status != nil {
		s := string(*filter.Status)
		statusFilter = &s
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	query := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2 OR reversal_of_id IS NULL)
		  AND ($3::timestamptz IS NULL OR (entry_date, created_at, journal_entry_id) < ($3, $4, $5::uuid))
		ORDER BY entry_date DESC, created_at DESC, journal_entry_id DESC
		LIMIT $6;
	`
	rows, err := r.db.Query(ctx, query, statusFilter, filter.IncludeReversals, cursorDate, cursorCreated, cursorID, limit+1)
	if err != nil {
		return nil, nil, mapError(err, "list journal entries")
	}
	var ms []models.JournalEntry
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			rows.Close()
			return nil, nil, mapError(err, "scan journal entry")
		}
		ms = append(ms, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, mapError(err, "iterate journal entries")
	}

	var nextToken *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.Date, CreatedAt: last.CreatedAt, ID: last.JournalEntryID})
		nextToken = &token
	}

	ids := make([]string, len(ms))
	for i, m := range ms {
		ids[i] = m.JournalEntryID
	}
	lines, err := r.linesFor(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		entries[i] = mapping.ToDomainJournalEntry(m, lines[m.JournalEntryID])
	}
	return entries, nextToken, nil
}

// linesFor loads the lines of the given entries grouped by entry, each in line order.
func (r *PgxJournalRepository) linesFor(ctx context.Context, journalEntryIDs []string) (map[string][]models.JournalLine, error) {
	out := make(map[string][]models.JournalLine, len(journalEntryIDs))
	if len(journalEntryIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+journalLineColumns+`
		FROM journal_lines
		WHERE journal_entry_id = ANY($1::uuid[])
		ORDER BY journal_entry_id, line_order`, journalEntryIDs)
	if err != nil {
		return nil, mapError(err, "journal lines")
	}
	defer rows.Close()

	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(&l.JournalLineID, &l.JournalEntryID, &l.AccountID, &l.Debit, &l.Credit, &l.Description, &l.LineOrder); err != nil {
			return nil, mapError(err, "scan journal line")
		}
		out[l.JournalEntryID] = append(out[l.JournalEntryID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate journal lines")
	}
	return out, nil
}
