// Package report renders tabular report data as aligned text or CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
)

// Format selects the report output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
)

// ParseFormat converts a CLI-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text or csv)", s)
	}
}

// Render encodes one table of report data in the requested format.
func Render(format Format, title string, headers []string, rows [][]string) (string, error) {
	switch format {
	case FormatCSV:
		return CSV(headers, rows)
	default:
		return Table(title, headers, rows), nil
	}
}

// Table renders headers and rows as an aligned text table with a title and
// separator rule.
func Table(title string, headers []string, rows [][]string) string {
	var b strings.Builder
	if title != "" {
		b.WriteString(title + "\n")
		b.WriteString(strings.Repeat("=", len(title)) + "\n")
	}

	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()

	return b.String()
}

// CSV renders headers and rows as RFC 4180 CSV.
func CSV(headers []string, rows [][]string) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write(headers); err != nil {
		return "", fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}

	return b.String(), nil
}

// Currency formats an amount as dollars with two decimal places.
func Currency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// Percentage formats a fraction as a percentage with one decimal place.
func Percentage(value float64) string {
	return fmt.Sprintf("%.1f%%", value*100)
}

// MonthYear formats a (month, year) pair like "March 2026".
func MonthYear(month, year int) string {
	return fmt.Sprintf("%s %d", time.Month(month), year)
}

// BudgetHealth renders a coarse health label for spending against a budget.
func BudgetHealth(spent, budget decimal.Decimal) string {
	ratio := 0.0
	if budget.IsPositive() {
		ratio = spent.Div(budget).InexactFloat64()
	}

	switch {
	case ratio >= 1.0:
		return fmt.Sprintf("EXCEEDED! (%s)", Percentage(ratio))
	case ratio >= 0.9:
		return fmt.Sprintf("Critical (%s)", Percentage(ratio))
	case ratio >= 0.75:
		return fmt.Sprintf("Warning (%s)", Percentage(ratio))
	default:
		return fmt.Sprintf("Good (%s)", Percentage(ratio))
	}
}
