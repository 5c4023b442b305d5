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
	"github.com/shopspring/decimal"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(db DBTX) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{db: db}}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, transaction_no, type, category_id, amount, description,
	transaction_date, due_date, status, approved_by, approved_at, tags, attachments, notes,
	journal_entry_id, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.TransactionNo,
		&m.Type,
		&m.CategoryID,
		&m.Amount,
		&m.Description,
		&m.Date,
		&m.DueDate,
		&m.Status,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.Tags,
		&m.Attachments,
		&m.Notes,
		&m.JournalEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveTransaction inserts a new transaction row.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.db.Exec(ctx, query,
		m.TransactionID,
		m.TransactionNo,
		m.Type,
		m.CategoryID,
		m.Amount,
		m.Description,
		m.Date,
		m.DueDate,
		m.Status,
		m.ApprovedBy,
		m.ApprovedAt,
		m.Tags,
		m.Attachments,
		m.Notes,
		m.JournalEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapError(err, "transaction "+m.TransactionNo)
}

// UpdateTransaction overwrites every mutable column of an existing transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions SET
			type = $2, category_id = $3, amount = $4, description = $5, transaction_date = $6,
			due_date = $7, status = $8, approved_by = $9, approved_at = $10, tags = $11,
			attachments = $12, notes = $13, journal_entry_id = $14,
			last_updated_at = $15, last_updated_by = $16
		WHERE transaction_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		m.TransactionID,
		m.Type,
		m.CategoryID,
		m.Amount,
		m.Description,
		m.Date,
		m.DueDate,
		m.Status,
		m.ApprovedBy,
		m.ApprovedAt,
		m.Tags,
		m.Attachments,
		m.Notes,
		m.JournalEntryID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "transaction "+m.TransactionNo)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + m.TransactionID + " not found")
	}
	return nil
}

// DeleteTransaction removes a transaction that was never posted.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	var posted bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE transaction_id = $1)`, transactionID).Scan(&posted)
	if err != nil {
		return mapError(err, "transaction "+transactionID)
	}
	if posted {
		return fmt.Errorf("%w: transaction %s has journal entries", apperrors.ErrConflict, transactionID)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1`, transactionID)
	if err != nil {
		return mapError(err, "transaction "+transactionID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + transactionID + " not found")
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return r.findOne(ctx, transactionID, "")
}

// LockTransactionForUpdate reads the transaction under a row lock.
func (r *PgxTransactionRepository) LockTransactionForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return r.findOne(ctx, transactionID, " FOR UPDATE")
}

func (r *PgxTransactionRepository) findOne(ctx context.Context, transactionID, suffix string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1` + suffix
	m, err := scanTransaction(r.db.QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, mapError(err, "transaction "+transactionID)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactions returns one page of transactions, newest first, plus the token for the
// next page when more rows exist.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, *string, error) {
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

	var typeFilter, statusFilter *string
	if filter.Type != nil {
		s := string(*filter.Type)
		typeFilter = &s
	}
	if filter.Status != nil {
		s := string(*filter.Status)
		statusFilter = &s
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE ($1::text IS NULL OR type = $1)
		  AND ($2::text IS NULL OR status = $2)
		  AND ($3::text IS NULL OR category_id::text = $3)
		  AND ($4::date IS NULL OR (transaction_date AT TIME ZONE 'UTC')::date >= $4::date)
		  AND ($5::date IS NULL OR (transaction_date AT TIME ZONE 'UTC')::date <= $5::date)
		  AND ($6::timestamptz IS NULL OR (transaction_date, created_at, transaction_id) < ($6, $7, $8::uuid))
		ORDER BY transaction_date DESC, created_at DESC, transaction_id DESC
		LIMIT $9;
	`
	rows, err := r.db.Query(ctx, query,
		typeFilter, statusFilter, filter.CategoryID, filter.From, filter.To,
		cursorDate, cursorCreated, cursorID, limit+1,
	)
	if err != nil {
		return nil, nil, mapError(err, "list transactions")
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0, limit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, mapError(err, "scan transaction")
		}
		txns = append(txns, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, mapError(err, "iterate transactions")
	}

	if len(txns) <= limit {
		return txns, nil, nil
	}
	txns = txns[:limit]
	last := txns[len(txns)-1]
	token := pagination.EncodeToken(pagination.Cursor{Date: last.Date, CreatedAt: last.CreatedAt, ID: last.TransactionID})
	return txns, &token, nil
}

// SumPostedByCategory totals POSTED transactions of a category dated within [from, to].
func (r *PgxTransactionRepository) SumPostedByCategory(ctx context.Context, categoryID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE category_id = $1
		  AND status = 'POSTED'
		  AND (transaction_date AT TIME ZONE 'UTC')::date BETWEEN $2::date AND $3::date;
	`
	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, query, categoryID, from, to).Scan(&total); err != nil {
		return decimal.Zero, mapError(err, "sum of category "+categoryID)
	}
	return total, nil
}
