package mapping

import (
	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/models"
)

func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:    d.BudgetID,
		Name:        d.Name,
		Type:        d.Type,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:    m.BudgetID,
		Name:        m.Name,
		Type:        m.Type,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Status:      domain.BudgetStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelBudgetItem(d domain.BudgetItem) models.BudgetItem {
	return models.BudgetItem{
		BudgetItemID:     d.BudgetItemID,
		BudgetID:         d.BudgetID,
		CategoryID:       d.CategoryID,
		BudgetAmount:     d.BudgetAmount,
		ActualAmount:     d.ActualAmount,
		Variance:         d.Variance,
		Percentage:       d.Percentage,
		LastCalculatedAt: d.LastCalculatedAt,
	}
}

func ToDomainBudgetItem(m models.BudgetItem) domain.BudgetItem {
	return domain.BudgetItem{
		BudgetItemID:     m.BudgetItemID,
		BudgetID:         m.BudgetID,
		CategoryID:       m.CategoryID,
		BudgetAmount:     m.BudgetAmount,
		ActualAmount:     m.ActualAmount,
		Variance:         m.Variance,
		Percentage:       m.Percentage,
		LastCalculatedAt: m.LastCalculatedAt,
	}
}
