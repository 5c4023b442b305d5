package accounting

import (
	"errors"
	"fmt"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrUnbalanced      = errors.New("journal lines do not balance")
	ErrMinLines        = errors.New("journal must have at least two lines")
	ErrNegativeAmount  = errors.New("journal line amounts must not be negative")
	ErrDoubleSidedLine = errors.New("journal line cannot carry both a debit and a credit")
	ErrEmptyLine       = errors.New("journal line must carry a debit or a credit")
)

var hundred = decimal.NewFromInt(100)

// BuildLines turns posting requests into ordered journal lines for an entry.
// Line order starts at 1 and follows the order of the postings.
func BuildLines(journalEntryID string, postings []domain.PostingLine, newID func() string) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(postings))
	for i, p := range postings {
		line := domain.JournalLine{
			JournalLineID:  newID(),
			JournalEntryID: journalEntryID,
			AccountID:      p.AccountID,
			Debit:          decimal.Zero,
			Credit:         decimal.Zero,
			Description:    p.Description,
			LineOrder:      i + 1,
		}
		if p.Side == domain.Debit {
			line.Debit = p.Amount
		} else {
			line.Credit = p.Amount
		}
		lines[i] = line
	}
	return lines
}

// ValidateBalanced checks every line is single-sided and non-negative and that the
// debit and credit sums are equal. It returns the two totals.
func ValidateBalanced(lines []domain.JournalLine) (decimal.Decimal, decimal.Decimal, error) {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	if len(lines) < 2 {
		return totalDebit, totalCredit, ErrMinLines
	}

	for _, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return totalDebit, totalCredit, fmt.Errorf("%w: line %d", ErrNegativeAmount, line.LineOrder)
		}
		if !line.Debit.IsZero() && !line.Credit.IsZero() {
			return totalDebit, totalCredit, fmt.Errorf("%w: line %d", ErrDoubleSidedLine, line.LineOrder)
		}
		if line.Debit.IsZero() && line.Credit.IsZero() {
			return totalDebit, totalCredit, fmt.Errorf("%w: line %d", ErrEmptyLine, line.LineOrder)
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}

	if !totalDebit.Equal(totalCredit) {
		return totalDebit, totalCredit, fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			ErrUnbalanced, totalDebit.String(), totalCredit.String())
	}
	return totalDebit, totalCredit, nil
}

// BalanceDeltas returns the balance change each account receives when lines are posted:
// the debited account moves up by the amount, the credited account moves down.
func BalanceDeltas(lines []domain.JournalLine) map[string]decimal.Decimal {
	deltas := make(map[string]decimal.Decimal)
	for _, line := range lines {
		deltas[line.AccountID] = deltas[line.AccountID].Add(line.Debit.Sub(line.Credit))
	}
	return deltas
}

// MirrorLines swaps debit and credit on every line, keeping account and order.
func MirrorLines(journalEntryID string, original []domain.JournalLine, newID func() string) []domain.JournalLine {
	mirrored := make([]domain.JournalLine, len(original))
	for i, line := range original {
		mirrored[i] = domain.JournalLine{
			JournalLineID:  newID(),
			JournalEntryID: journalEntryID,
			AccountID:      line.AccountID,
			Debit:          line.Credit,
			Credit:         line.Debit,
			Description:    line.Description,
			LineOrder:      line.LineOrder,
		}
	}
	return mirrored
}

// Variance computes actual - budgeted and actual / budgeted * 100 rounded to two places.
// The percentage is zero when nothing was budgeted.
func Variance(actual, budgeted decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	variance := actual.Sub(budgeted)
	if budgeted.IsZero() {
		return variance, decimal.Zero
	}
	return variance, actual.Div(budgeted).Mul(hundred).Round(2)
}
