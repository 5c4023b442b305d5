package accounting_test

import (
	"fmt"
	"testing"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("line-%d", n)
	}
}

func TestBuildLines_OrdersAndSides(t *testing.T) {
	amount := decimal.NewFromInt(1000000)
	lines := accounting.BuildLines("je-1", []domain.PostingLine{
		{AccountID: "cash", Side: domain.Debit, Amount: amount},
		{AccountID: "donation", Side: domain.Credit, Amount: amount},
	}, sequentialIDs())

	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].LineOrder)
	assert.True(t, lines[0].Debit.Equal(amount))
	assert.True(t, lines[0].Credit.IsZero())
	assert.Equal(t, 2, lines[1].LineOrder)
	assert.True(t, lines[1].Credit.Equal(amount))
	assert.True(t, lines[1].Debit.IsZero())
	assert.Equal(t, "je-1", lines[1].JournalEntryID)
}

func TestValidateBalanced(t *testing.T) {
	d := decimal.NewFromInt
	tests := []struct {
		name    string
		lines   []domain.JournalLine
		wantErr error
	}{
		{
			name: "two equal legs",
			lines: []domain.JournalLine{
				{AccountID: "a", Debit: d(100), Credit: d(0), LineOrder: 1},
				{AccountID: "b", Debit: d(0), Credit: d(100), LineOrder: 2},
			},
		},
		{
			name: "split credit across three lines",
			lines: []domain.JournalLine{
				{AccountID: "a", Debit: d(100), Credit: d(0), LineOrder: 1},
				{AccountID: "b", Debit: d(0), Credit: d(60), LineOrder: 2},
				{AccountID: "c", Debit: d(0), Credit: d(40), LineOrder: 3},
			},
		},
		{
			name:    "single line",
			lines:   []domain.JournalLine{{AccountID: "a", Debit: d(100), Credit: d(0)}},
			wantErr: accounting.ErrMinLines,
		},
		{
			name: "unbalanced",
			lines: []domain.JournalLine{
				{AccountID: "a", Debit: d(100), Credit: d(0), LineOrder: 1},
				{AccountID: "b", Debit: d(0), Credit: d(90), LineOrder: 2},
			},
			wantErr: accounting.ErrUnbalanced,
		},
		{
			name: "both sides on one line",
			lines: []domain.JournalLine{
				{AccountID: "a", Debit: d(100), Credit: d(100), LineOrder: 1},
				{AccountID: "b", Debit: d(0), Credit: d(0), LineOrder: 2},
			},
			wantErr: accounting.ErrDoubleSidedLine,
		},
		{
			name: "negative amount",
			lines: []domain.JournalLine{
				{AccountID: "a", Debit: d(-100), Credit: d(0), LineOrder: 1},
				{AccountID: "b", Debit: d(0), Credit: d(-100), LineOrder: 2},
			},
			wantErr: accounting.ErrNegativeAmount,
		},
		{
			name: "empty line",
			lines: []domain.JournalLine{
				{AccountID: "a", Debit: d(100), Credit: d(0), LineOrder: 1},
				{AccountID: "b", Debit: d(0), Credit: d(100), LineOrder: 2},
				{AccountID: "c", Debit: d(0), Credit: d(0), LineOrder: 3},
			},
			wantErr: accounting.ErrEmptyLine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debit, credit, err := accounting.ValidateBalanced(tt.lines)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, debit.Equal(credit))
		})
	}
}

func TestBalanceDeltas_NetToZero(t *testing.T) {
	amount := decimal.NewFromInt(500000)
	lines := accounting.BuildLines("je-1", []domain.PostingLine{
		{AccountID: "utilities", Side: domain.Debit, Amount: amount},
		{AccountID: "cash", Side: domain.Credit, Amount: amount},
	}, sequentialIDs())

	deltas := accounting.BalanceDeltas(lines)

	assert.True(t, deltas["utilities"].Equal(amount))
	assert.True(t, deltas["cash"].Equal(amount.Neg()))
	sum := decimal.Zero
	for _, delta := range deltas {
		sum = sum.Add(delta)
	}
	assert.True(t, sum.IsZero())
}

func TestMirrorLines_UndoesOriginal(t *testing.T) {
	amount := decimal.NewFromInt(250)
	original := accounting.BuildLines("je-1", []domain.PostingLine{
		{AccountID: "cash", Side: domain.Debit, Amount: amount},
		{AccountID: "income", Side: domain.Credit, Amount: amount},
	}, sequentialIDs())

	mirrored := accounting.MirrorLines("jer-1", original, sequentialIDs())

	require.Len(t, mirrored, 2)
	for i := range original {
		assert.True(t, mirrored[i].Debit.Equal(original[i].Credit))
		assert.True(t, mirrored[i].Credit.Equal(original[i].Debit))
		assert.Equal(t, original[i].AccountID, mirrored[i].AccountID)
		assert.Equal(t, "jer-1", mirrored[i].JournalEntryID)
	}

	forward := accounting.BalanceDeltas(original)
	backward := accounting.BalanceDeltas(mirrored)
	for accountID, delta := range forward {
		assert.True(t, delta.Add(backward[accountID]).IsZero(), "account %s should net to zero", accountID)
	}
}

func TestVariance(t *testing.T) {
	variance, pct := accounting.Variance(decimal.NewFromInt(500000), decimal.NewFromInt(1000000))
	assert.True(t, variance.Equal(decimal.NewFromInt(-500000)))
	assert.True(t, pct.Equal(decimal.NewFromInt(50)))

	variance, pct = accounting.Variance(decimal.NewFromInt(1), decimal.NewFromInt(3))
	assert.True(t, variance.Equal(decimal.NewFromInt(-2)))
	assert.Equal(t, "33.33", pct.StringFixed(2))

	variance, pct = accounting.Variance(decimal.NewFromInt(700), decimal.Zero)
	assert.True(t, variance.Equal(decimal.NewFromInt(700)))
	assert.True(t, pct.IsZero())
}
