package report

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"TEXT", FormatText, false},
		{"csv", FormatCSV, false},
		{"CSV", FormatCSV, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTable(t *testing.T) {
	out := Table("Expenses", []string{"Category", "Amount"}, [][]string{
		{"Food", "$25.00"},
		{"Transport", "$10.00"},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("Expected 5 lines (title, rule, header, 2 rows), got %d:\n%s", len(lines), out)
	}
	if lines[0] != "Expenses" {
		t.Errorf("Title line = %q", lines[0])
	}
	if lines[1] != strings.Repeat("=", len("Expenses")) {
		t.Errorf("Rule line = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "Category") {
		t.Errorf("Header line = %q", lines[2])
	}
	for _, row := range lines[3:] {
		if !strings.Contains(row, "$") {
			t.Errorf("Row missing amount: %q", row)
		}
	}
}

func TestTableWithoutTitle(t *testing.T) {
	out := Table("", []string{"A"}, [][]string{{"1"}})
	if strings.Contains(out, "=") {
		t.Errorf("Untitled table should have no rule:\n%s", out)
	}
}

func TestCSV(t *testing.T) {
	out, err := CSV([]string{"Category", "Amount"}, [][]string{
		{"Food", "25.00"},
		{"quoted, comma", "10.00"},
	})
	if err != nil {
		t.Fatalf("CSV failed: %v", err)
	}

	want := "Category,Amount\nFood,25.00\n\"quoted, comma\",10.00\n"
	if out != want {
		t.Errorf("CSV output:\n%q\nwant:\n%q", out, want)
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"25", "$25.00"},
		{"25.5", "$25.50"},
		{"-3.333", "$-3.33"},
		{"0", "$0.00"},
	}
	for _, tt := range tests {
		if got := Currency(decimal.RequireFromString(tt.amount)); got != tt.want {
			t.Errorf("Currency(%s) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestPercentage(t *testing.T) {
	if got := Percentage(0.8); got != "80.0%" {
		t.Errorf("Percentage(0.8) = %q, want 80.0%%", got)
	}
	if got := Percentage(1.256); got != "125.6%" {
		t.Errorf("Percentage(1.256) = %q, want 125.6%%", got)
	}
}

func TestMonthYear(t *testing.T) {
	if got := MonthYear(3, 2026); got != "March 2026" {
		t.Errorf("MonthYear(3, 2026) = %q, want March 2026", got)
	}
	if got := MonthYear(12, 2025); got != "December 2025" {
		t.Errorf("MonthYear(12, 2025) = %q, want December 2025", got)
	}
}

func TestBudgetHealth(t *testing.T) {
	d := decimal.RequireFromString
	tests := []struct {
		spent  string
		budget string
		want   string
	}{
		{"120", "100", "EXCEEDED! (120.0%)"},
		{"100", "100", "EXCEEDED! (100.0%)"},
		{"95", "100", "Critical (95.0%)"},
		{"80", "100", "Warning (80.0%)"},
		{"75", "100", "Warning (75.0%)"},
		{"50", "100", "Good (50.0%)"},
		{"50", "0", "Good (0.0%)"},
	}
	for _, tt := range tests {
		if got := BudgetHealth(d(tt.spent), d(tt.budget)); got != tt.want {
			t.Errorf("BudgetHealth(%s, %s) = %q, want %q", tt.spent, tt.budget, got, tt.want)
		}
	}
}
