package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/spendwise/spendwise/internal/report"
)

// ReportService generates summary reports over expenses and budgets.
type ReportService struct {
	expenses *ExpenseService
	budgets  *BudgetService
}

// NewReportService creates a new ReportService over the given services.
func NewReportService(expenses *ExpenseService, budgets *BudgetService) *ReportService {
	return &ReportService{expenses: expenses, budgets: budgets}
}

// MonthlySummary reports the user's per-category spending for one month,
// with each category's share of the total and a TOTAL row.
func (s *ReportService) MonthlySummary(ctx context.Context, month, year int, userID string, format report.Format) (string, error) {
	totals, err := s.expenses.TotalsByCategory(ctx, month, year, userID)
	if err != nil {
		return "", err
	}

	var grandTotal decimal.Decimal
	for _, t := range totals {
		grandTotal = grandTotal.Add(t.Total)
	}

	rows := make([][]string, 0, len(totals)+1)
	for _, t := range totals {
		rows = append(rows, []string{
			t.Category,
			report.Currency(t.Total),
			report.Percentage(shareOf(t.Total, grandTotal)),
		})
	}
	rows = append(rows, []string{"TOTAL", report.Currency(grandTotal), "100.0%"})

	title := fmt.Sprintf("Monthly Expense Summary - %s", report.MonthYear(month, year))
	return report.Render(format, title, []string{"Category", "Amount", "% of Total"}, rows)
}

// CategoryComparison reports budget vs. actual spending per budgeted
// category for one month.
func (s *ReportService) CategoryComparison(ctx context.Context, month, year int, userID string, format report.Format) (string, error) {
	statuses, err := s.budgets.Status(ctx, month, year, userID)
	if err != nil {
		return "", err
	}

	rows := make([][]string, 0, len(statuses))
	for _, status := range statuses {
		rows = append(rows, []string{
			status.Category,
			report.Currency(status.Budget),
			report.Currency(status.Spent),
			report.Currency(status.Remaining),
			report.Percentage(status.PercentageUsed),
			report.BudgetHealth(status.Spent, status.Budget),
		})
	}

	title := fmt.Sprintf("Budget vs. Actual - %s", report.MonthYear(month, year))
	headers := []string{"Category", "Budget", "Actual", "Remaining", "% Used", "Status"}
	return report.Render(format, title, headers, rows)
}

// AnnualSummary reports the user's per-month spending for one year with a
// TOTAL row.
func (s *ReportService) AnnualSummary(ctx context.Context, year int, userID string, format report.Format) (string, error) {
	totals, err := s.expenses.TotalsByMonth(ctx, year, userID)
	if err != nil {
		return "", err
	}

	var grandTotal decimal.Decimal
	for _, t := range totals {
		grandTotal = grandTotal.Add(t.Total)
	}

	rows := make([][]string, 0, len(totals)+1)
	for _, t := range totals {
		rows = append(rows, []string{
			report.MonthYear(t.Month, year),
			report.Currency(t.Total),
			report.Percentage(shareOf(t.Total, grandTotal)),
		})
	}
	rows = append(rows, []string{"TOTAL", report.Currency(grandTotal), "100.0%"})

	title := fmt.Sprintf("Annual Expense Summary - %d", year)
	return report.Render(format, title, []string{"Month", "Amount", "% of Total"}, rows)
}

// ExportToFile writes report content to a file and returns its absolute
// path.
func (s *ReportService) ExportToFile(content, filename string) (string, error) {
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	abs, err := filepath.Abs(filename)
	if err != nil {
		return filename, nil
	}
	return abs, nil
}

// shareOf returns part/total as a fraction, 0 when total is zero.
func shareOf(part, total decimal.Decimal) float64 {
	if !total.IsPositive() {
		return 0
	}
	return part.Div(total).InexactFloat64()
}
