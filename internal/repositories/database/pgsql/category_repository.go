package pgsql

import (
	"context"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/school_ledger/internal/models"
	"github.com/SscSPs/school_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(db DBTX) portsrepo.CategoryRepository {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{db: db}}
}

var _ portsrepo.CategoryRepository = (*PgxCategoryRepository)(nil)

const categoryColumns = `category_id, name, type, account_id, description, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCategory(row pgx.Row) (models.FinancialCategory, error) {
	var m models.FinancialCategory
	err := row.Scan(
		&m.CategoryID,
		&m.Name,
		&m.Type,
		&m.AccountID,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.FinancialCategory) error {
	m := mapping.ToModelCategory(category)
	query := `
		INSERT INTO financial_categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		m.CategoryID,
		m.Name,
		m.Type,
		m.AccountID,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapError(err, "category "+m.Name)
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.FinancialCategory, error) {
	m, err := scanCategory(r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM financial_categories WHERE category_id = $1`, categoryID))
	if err != nil {
		return nil, mapError(err, "category "+categoryID)
	}
	cat := mapping.ToDomainCategory(m)
	return &cat, nil
}

func (r *PgxCategoryRepository) FindCategoryByName(ctx context.Context, name string) (*domain.FinancialCategory, error) {
	m, err := scanCategory(r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM financial_categories WHERE name = $1`, name))
	if err != nil {
		return nil, mapError(err, "category "+name)
	}
	cat := mapping.ToDomainCategory(m)
	return &cat, nil
}

// ListCategories returns categories ordered by name, optionally of one type only.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, categoryType *domain.TransactionType) ([]domain.FinancialCategory, error) {
	var typeFilter *string
	if categoryType != nil {
		t := string(*categoryType)
		typeFilter = &t
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+categoryColumns+` FROM financial_categories
		WHERE ($1::text IS NULL OR type = $1)
		ORDER BY name`, typeFilter)
	if err != nil {
		return nil, mapError(err, "list categories")
	}
	defer rows.Close()

	out := make([]domain.FinancialCategory, 0)
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, mapError(err, "scan category")
		}
		out = append(out, mapping.ToDomainCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate categories")
	}
	return out, nil
}
