package pgsql

import (
	"context"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/school_ledger/internal/models"
	"github.com/SscSPs/school_ledger/internal/utils/mapping"
)

type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(db DBTX) portsrepo.BudgetRepository {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{db: db}}
}

var _ portsrepo.BudgetRepository = (*PgxBudgetRepository)(nil)

func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := `
		INSERT INTO budgets (budget_id, name, budget_type, start_date, end_date, status,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		m.BudgetID,
		m.Name,
		m.Type,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapError(err, "budget "+m.Name)
}

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `
		SELECT budget_id, name, budget_type, start_date, end_date, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM budgets
		WHERE budget_id = $1;
	`
	var m models.Budget
	err := r.db.QueryRow(ctx, query, budgetID).Scan(
		&m.BudgetID,
		&m.Name,
		&m.Type,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapError(err, "budget "+budgetID)
	}
	budget := mapping.ToDomainBudget(m)
	return &budget, nil
}

// SaveBudgetItem inserts an item; (budget_id, category_id) is unique.
func (r *PgxBudgetRepository) SaveBudgetItem(ctx context.Context, item domain.BudgetItem) error {
	m := mapping.ToModelBudgetItem(item)
	query := `
		INSERT INTO budget_items (budget_item_id, budget_id, category_id, budget_amount,
			actual_amount, variance, percentage, last_calculated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query,
		m.BudgetItemID,
		m.BudgetID,
		m.CategoryID,
		m.BudgetAmount,
		m.ActualAmount,
		m.Variance,
		m.Percentage,
		m.LastCalculatedAt,
	)
	return mapError(err, "budget item for category "+m.CategoryID)
}

func (r *PgxBudgetRepository) ListBudgetItems(ctx context.Context, budgetID string) ([]domain.BudgetItem, error) {
	query := `
		SELECT budget_item_id, budget_id, category_id, budget_amount, actual_amount,
		       variance, percentage, last_calculated_at
		FROM budget_items
		WHERE budget_id = $1
		ORDER BY budget_item_id;
	`
	rows, err := r.db.Query(ctx, query, budgetID)
	if err != nil {
		return nil, mapError(err, "budget items of "+budgetID)
	}
	defer rows.Close()

	items := make([]domain.BudgetItem, 0)
	for rows.Next() {
		var m models.BudgetItem
		if err := rows.Scan(
			&m.BudgetItemID,
			&m.BudgetID,
			&m.CategoryID,
			&m.BudgetAmount,
			&m.ActualAmount,
			&m.Variance,
			&m.Percentage,
			&m.LastCalculatedAt,
		); err != nil {
			return nil, mapError(err, "scan budget item")
		}
		items = append(items, mapping.ToDomainBudgetItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate budget items")
	}
	return items, nil
}

// UpdateBudgetItemActuals stores the computed actual, variance and percentage of an item.
func (r *PgxBudgetRepository) UpdateBudgetItemActuals(ctx context.Context, item domain.BudgetItem) error {
	query := `
		UPDATE budget_items
		SET actual_amount = $2, variance = $3, percentage = $4, last_calculated_at = $5
		WHERE budget_item_id = $1;
	`
	tag, err := r.db.Exec(ctx, query, item.BudgetItemID, item.ActualAmount, item.Variance, item.Percentage, item.LastCalculatedAt)
	if err != nil {
		return mapError(err, "budget item "+item.BudgetItemID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("budget item " + item.BudgetItemID + " not found")
	}
	return nil
}
