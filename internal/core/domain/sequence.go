package domain

import "fmt"

// DocumentKind identifies a numbered document family.
type DocumentKind string

const (
	DocTransaction    DocumentKind = "TRX"
	DocJournalEntry   DocumentKind = "JE"
	DocJournalReverse DocumentKind = "JER"
)

// IsValid reports whether k is a known document kind.
func (k DocumentKind) IsValid() bool {
	switch k {
	case DocTransaction, DocJournalEntry, DocJournalReverse:
		return true
	}
	return false
}

// Prefix returns the year-scoped number prefix, e.g. "TRX-2026-".
func (k DocumentKind) Prefix(year int) string {
	return fmt.Sprintf("%s-%d-", k, year)
}

// FormatNumber renders a document number, e.g. "JE-2026-0001". Sequences above
// 9999 widen rather than wrap.
func (k DocumentKind) FormatNumber(year, seq int) string {
	return fmt.Sprintf("%s%04d", k.Prefix(year), seq)
}
