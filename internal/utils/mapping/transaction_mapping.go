package mapping

import (
	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// Nil tag and attachment slices are stored as empty arrays.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	attachments := d.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return models.Transaction{
		TransactionID:  d.TransactionID,
		TransactionNo:  d.TransactionNo,
		Type:           string(d.Type),
		CategoryID:     d.CategoryID,
		Amount:         d.Amount,
		Description:    d.Description,
		Date:           d.Date,
		DueDate:        d.DueDate,
		Status:         string(d.Status),
		ApprovedBy:     d.ApprovedBy,
		ApprovedAt:     d.ApprovedAt,
		Tags:           tags,
		Attachments:    attachments,
		Notes:          nullable(d.Notes),
		JournalEntryID: d.JournalEntryID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:  m.TransactionID,
		TransactionNo:  m.TransactionNo,
		Type:           domain.TransactionType(m.Type),
		CategoryID:     m.CategoryID,
		Amount:         m.Amount,
		Description:    m.Description,
		Date:           m.Date,
		DueDate:        m.DueDate,
		Status:         domain.TransactionStatus(m.Status),
		ApprovedBy:     m.ApprovedBy,
		ApprovedAt:     m.ApprovedAt,
		Tags:           m.Tags,
		Attachments:    m.Attachments,
		Notes:          deref(m.Notes),
		JournalEntryID: m.JournalEntryID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
