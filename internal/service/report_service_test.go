package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendwise/spendwise/internal/report"
)

func newReportFixture(t *testing.T) (*ReportService, string) {
	t.Helper()
	store := newTestStore(t)
	expenses := NewExpenseService(store)
	budgets := NewBudgetService(store)
	user := createTestUser(t, store, "alice")
	ctx := context.Background()

	for _, e := range []struct {
		amount   string
		category string
	}{
		{"75", "Food"},
		{"25", "Transport"},
	} {
		_, err := expenses.AddExpense(ctx, AddExpenseParams{
			Amount: dec(e.amount), Category: e.category, Date: march(10), UserID: user.ID,
		})
		require.NoError(t, err)
	}

	_, err := budgets.SetBudget(ctx, SetBudgetParams{
		UserID: user.ID, Category: "Food", Amount: dec("100"),
		Month: 3, Year: 2026, AlertThreshold: 0.8,
	})
	require.NoError(t, err)

	return NewReportService(expenses, budgets), user.ID
}

func TestMonthlySummaryText(t *testing.T) {
	svc, userID := newReportFixture(t)

	out, err := svc.MonthlySummary(context.Background(), 3, 2026, userID, report.FormatText)
	require.NoError(t, err)

	assert.Contains(t, out, "Monthly Expense Summary - March 2026")
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "$75.00")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "$100.00")
	assert.Contains(t, out, "100.0%")
}

func TestMonthlySummaryCSV(t *testing.T) {
	svc, userID := newReportFixture(t)

	out, err := svc.MonthlySummary(context.Background(), 3, 2026, userID, report.FormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4, "header + Food + Transport + TOTAL")
	assert.Equal(t, "Category,Amount,% of Total", lines[0])
	assert.Equal(t, "Food,$75.00,75.0%", lines[1])
	assert.Equal(t, "TOTAL,$100.00,100.0%", lines[3])
}

func TestCategoryComparison(t *testing.T) {
	svc, userID := newReportFixture(t)

	out, err := svc.CategoryComparison(context.Background(), 3, 2026, userID, report.FormatText)
	require.NoError(t, err)

	assert.Contains(t, out, "Budget vs. Actual - March 2026")
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "$100.00")
	assert.Contains(t, out, "$75.00")
	assert.Contains(t, out, "$25.00")
	assert.Contains(t, out, "Warning (75.0%)")
	assert.NotContains(t, out, "Transport", "unbudgeted categories have no row")
}

func TestAnnualSummary(t *testing.T) {
	svc, userID := newReportFixture(t)

	out, err := svc.AnnualSummary(context.Background(), 2026, userID, report.FormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 14, "header + 12 months + TOTAL")
	assert.Equal(t, "January 2026,$0.00,0.0%", lines[1])
	assert.Equal(t, "March 2026,$100.00,100.0%", lines[3])
	assert.Equal(t, "TOTAL,$100.00,100.0%", lines[13])
}

func TestMonthlySummaryEmptyMonth(t *testing.T) {
	svc, userID := newReportFixture(t)

	out, err := svc.MonthlySummary(context.Background(), 7, 2026, userID, report.FormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2, "header + TOTAL only")
	assert.Equal(t, "TOTAL,$0.00,100.0%", lines[1])
}

func TestExportToFile(t *testing.T) {
	svc, userID := newReportFixture(t)

	content, err := svc.MonthlySummary(context.Background(), 3, 2026, userID, report.FormatCSV)
	require.NoError(t, err)

	target := filepath.Join(t.TempDir(), "report.csv")
	path, err := svc.ExportToFile(content, target)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}
