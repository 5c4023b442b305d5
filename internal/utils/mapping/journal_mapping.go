package mapping

import (
	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry. Lines are
// mapped separately.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalEntryID:    d.JournalEntryID,
		EntryNo:           d.EntryNo,
		TransactionID:     d.TransactionID,
		Description:       d.Description,
		Date:              d.Date,
		Reference:         nullable(d.Reference),
		TotalDebit:        d.TotalDebit,
		TotalCredit:       d.TotalCredit,
		IsBalanced:        d.IsBalanced,
		Status:            string(d.Status),
		ReversalOfID:      d.ReversalOfID,
		ReversedByEntryID: d.ReversedByEntryID,
		ReversedBy:        d.ReversedBy,
		ReversedAt:        d.ReversedAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry and its lines to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalLine) domain.JournalEntry {
	return domain.JournalEntry{
		JournalEntryID:    m.JournalEntryID,
		EntryNo:           m.EntryNo,
		TransactionID:     m.TransactionID,
		Description:       m.Description,
		Date:              m.Date,
		Reference:         deref(m.Reference),
		TotalDebit:        m.TotalDebit,
		TotalCredit:       m.TotalCredit,
		IsBalanced:        m.IsBalanced,
		Status:            domain.JournalStatus(m.Status),
		ReversalOfID:      m.ReversalOfID,
		ReversedByEntryID: m.ReversedByEntryID,
		ReversedBy:        m.ReversedBy,
		ReversedAt:        m.ReversedAt,
		Lines:             ToDomainJournalLineSlice(lines),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		JournalLineID:  d.JournalLineID,
		JournalEntryID: d.JournalEntryID,
		AccountID:      d.AccountID,
		Debit:          d.Debit,
		Credit:         d.Credit,
		Description:    nullable(d.Description),
		LineOrder:      d.LineOrder,
	}
}

func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		JournalLineID:  m.JournalLineID,
		JournalEntryID: m.JournalEntryID,
		AccountID:      m.AccountID,
		Debit:          m.Debit,
		Credit:         m.Credit,
		Description:    deref(m.Description),
		LineOrder:      m.LineOrder,
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
