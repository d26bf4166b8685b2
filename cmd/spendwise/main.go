// Command spendwise is a command-line expense tracker with category
// budgets, threshold alerts, expense sharing, and settlement tracking.
//
// Usage:
//
//	spendwise <group> <command> [flags]
//
// Command groups: user, expense, budget, report, alert, share.
// Run a group without a command to list its commands.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendwise/spendwise/internal/calculator"
	"github.com/spendwise/spendwise/internal/config"
	"github.com/spendwise/spendwise/internal/notify"
	"github.com/spendwise/spendwise/internal/report"
	"github.com/spendwise/spendwise/internal/service"
	"github.com/spendwise/spendwise/internal/storage"
	"github.com/spendwise/spendwise/internal/storage/sqlite"
	"github.com/spendwise/spendwise/pkg/logging"
)

const dateLayout = "2006-01-02"

type app struct {
	users    *service.UserService
	expenses *service.ExpenseService
	budgets  *service.BudgetService
	alerts   *service.AlertService
	sharing  *service.SharingService
	reports  *service.ReportService
}

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer store.Close()

	var mailer notify.Mailer
	if cfg.EmailEnabled() {
		mailer = notify.NewSMTPMailer(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			From:     cfg.SMTPEmail,
			Password: cfg.SMTPPassword,
		})
	}

	expenses := service.NewExpenseService(store)
	budgets := service.NewBudgetService(store)
	a := &app{
		users:    service.NewUserService(store),
		expenses: expenses,
		budgets:  budgets,
		alerts:   service.NewAlertService(store, budgets, mailer),
		sharing:  service.NewSharingService(store),
		reports:  service.NewReportService(expenses, budgets),
	}

	if err := a.run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: spendwise <group> <command> [flags]

groups:
  user     add, list
  expense  add, list, delete
  budget   set, list, status, delete
  report   monthly, category, annual
  alert    list, check, read, read-all, delete
  share    add, list, balances, settle`)
}

func (a *app) run(ctx context.Context, group string, args []string) error {
	sub := ""
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch group {
	case "user":
		return a.runUser(ctx, sub, args)
	case "expense":
		return a.runExpense(ctx, sub, args)
	case "budget":
		return a.runBudget(ctx, sub, args)
	case "report":
		return a.runReport(ctx, sub, args)
	case "alert":
		return a.runAlert(ctx, sub, args)
	case "share":
		return a.runShare(ctx, sub, args)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command group %q", group)
	}
}

func (a *app) runUser(ctx context.Context, sub string, args []string) error {
	switch sub {
	case "add":
		fs := flag.NewFlagSet("user add", flag.ExitOnError)
		username := fs.String("username", "", "unique username (required)")
		email := fs.String("email", "", "email address (required)")
		fs.Parse(args)

		user, err := a.users.CreateUser(ctx, *username, *email)
		if err != nil {
			return err
		}
		fmt.Printf("Created user %s (%s)\n", user.Username, user.ID)
		return nil

	case "list":
		users, err := a.users.ListUsers(ctx)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(users))
		for _, user := range users {
			rows = append(rows, []string{user.ID, user.Username, user.Email})
		}
		fmt.Print(report.Table("Users", []string{"ID", "Username", "Email"}, rows))
		return nil

	default:
		return fmt.Errorf("unknown user command %q (want add or list)", sub)
	}
}

func (a *app) runExpense(ctx context.Context, sub string, args []string) error {
	switch sub {
	case "add":
		fs := flag.NewFlagSet("expense add", flag.ExitOnError)
		user := fs.String("user", "", "acting user id (required)")
		amount := fs.String("amount", "", "expense amount (required)")
		category := fs.String("category", "", "category name (required)")
		description := fs.String("description", "", "optional description")
		date := fs.String("date", "", "date (YYYY-MM-DD, default today)")
		fs.Parse(args)

		amt, err := parseAmount(*amount)
		if err != nil {
			return err
		}
		day, err := parseDate(*date)
		if err != nil {
			return err
		}

		expense, err := a.expenses.AddExpense(ctx, service.AddExpenseParams{
			Amount:      amt,
			Category:    *category,
			Description: *description,
			Date:        day,
			UserID:      *user,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added expense %s: %s for %s\n", expense.ID, report.Currency(expense.Amount), expense.Category)
		return nil

	case "list":
		fs := flag.NewFlagSet("expense list", flag.ExitOnError)
		user := fs.String("user", "", "acting user id (required)")
		from := fs.String("from", "", "start date (YYYY-MM-DD)")
		to := fs.String("to", "", "end date, exclusive (YYYY-MM-DD)")
		category := fs.String("category", "", "filter by category")
		fs.Parse(args)

		fromDay, err := parseDate(*from)
		if err != nil {
			return err
		}
		toDay, err := parseDate(*to)
		if err != nil {
			return err
		}

		expenses, err := a.expenses.Expenses(ctx, storage.ExpenseFilter{
			UserID:   *user,
			Category: *category,
			From:     fromDay,
			To:       toDay,
		})
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(expenses))
		for _, expense := range expenses {
			kind := ""
			if expense.IsGroupExpense {
				kind = "shared"
			}
			rows = append(rows, []string{
				expense.ID,
				expense.Date.Format(dateLayout),
				expense.Category,
				report.Currency(expense.Amount),
				expense.Description,
				kind,
			})
		}
		fmt.Print(report.Table("Expenses", []string{"ID", "Date", "Category", "Amount", "Description", ""}, rows))
		return nil

	case "delete":
		fs := flag.NewFlagSet("expense delete", flag.ExitOnError)
		user := fs.String("user", "", "acting user id (required)")
		id := fs.String("id", "", "expense id (required)")
		fs.Parse(args)

		ok, err := a.expenses.DeleteExpense(ctx, *id, *user)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("expense not found or not yours")
		}
		fmt.Println("Expense deleted.")
		return nil

	default:
		return fmt.Errorf("unknown expense command %q (want add, list, or delete)", sub)
	}
}

func (a *app) runBudget(ctx context.Context, sub string, args []string) error {
	switch sub {
	case "set":
		fs := flag.NewFlagSet("budget set", flag.ExitOnError)
		user := fs.String("user", "", "acting user id (required)")
		category := fs.String("category", "", "category name (required)")
		amount := fs.String("amount", "", "budget amount (required)")
		month := fs.Int("month", 0, "month 1-12 (default current)")
		year := fs.Int("year", 0, "year (default current)")
		threshold := fs.Float64("threshold", 0.8, "alert threshold fraction in [0,1]")
		fs.Parse(args)

		amt, err := parseAmount(*amount)
		if err != nil {
			return err
		}
		m, y := defaultPeriod(*month, *year)

		budget, err := a.budgets.SetBudget(ctx, service.SetBudgetParams{
			UserID:         *user,
			Category:       *category,
			Amount:         amt,
			Month:          m,
			Year:           y,
			AlertThreshold: *threshold,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Budget for %s set to %s for %s (alert at %s)\n",
			budget.Category, report.Currency(budget.Amount),
			report.MonthYear(budget.Month, budget.Year),
			report.Percentage(budget.AlertThreshold))
		return nil

	case "list":
		fs := flag.NewFlagSet("budget list", flag.ExitOnError)
		user := fs.String("user", "", "acting user id (required)")
		month := fs.Int("month", 0, "filter by month")
		year := fs.Int("year", 0, "filter by year")
		category := fs.String("category", "", "filter by category")
		fs.Parse(args)

		budgets, err := a.budgets.Budgets(ctx, storage.BudgetFilter{
			UserID:   *user,
			Month:    *month,
			Year:     *year,
			Category: *category,
		})
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(budgets))
		for _, budget := range budgets {
			rows = append(rows, []string{
				budget.ID,
				budget.Category,
				report.Currency(budget.Amount),
				report.MonthYear(budget.Month, budget.Year),
				report.Percentage(budget.AlertThreshold),
			})
		}
		fmt.Print(report.Table("Budgets", []string{"ID", "Category", "Amount", "Period", "Alert At"}, rows))
		return nil

	case "status":
		fs := flag.NewFlagSet("budget status", flag.ExitOnError)
		user := fs.String("user", "", "acting user id (required)")
		month := fs.Int("month", 0, "month 1-12 (default current)")
		year := fs.Int("year", 0, "year (default current)")
		fs.Parse(args)

		m, y := defaultPeriod(*month, *year)
		out, err := a.reports.CategoryComparison(ctx, m, y, *user, report.FormatText)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil

	case "delete":
		fs := flag.NewFlagSet("budget delete", flag.ExitOnError)
		user := fs.String("user", "", "acting user id (required)")
		id := fs.String("id", "", "budget id (required)")
		fs.Parse(args)

		ok, err := a.budgets.DeleteBudget(ctx, *id, *user)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("budget not found or not yours")
		}
		fmt.Println("Budget deleted.")
		return nil

	default:
		return fmt.Errorf("unknown budget command %q (want set, list, status, or delete)", sub)
	}
}

func (a *app) runReport(ctx context.Context, sub string, args []string) error {
	fs := flag.NewFlagSet("report "+sub, flag.ExitOnError)
	user := fs.String("user", "", "acting user id (required)")
	month := fs.Int("month", 0, "month 1-12 (default current)")
	year := fs.Int("year", 0, "year (default current)")
	format := fs.String("format", "text", "output format: text or csv")
	export := fs.String("export", "", "write the report to this file")
	fs.Parse(args)

	f, err := report.ParseFormat(*format)
	if err != nil {
		return err
	}
	m, y := defaultPeriod(*month, *year)

	var content string
	switch sub {
	case "monthly":
		content, err = a.reports.MonthlySummary(ctx, m, y, *user, f)
	case "category":
		content, err = a.reports.CategoryComparison(ctx, m, y, *user, f)
	case "annual":
		content, err = a.reports.AnnualSummary(ctx, y, *user, f)
	default:
		return fmt.Errorf("unknown report command %q (want monthly, category, or annual)", sub)
	}
	if err != nil {
		return err
	}

	if *export != "" {
		path, err := a.reports.ExportToFile(content, *export)
		if err != nil {
			return err
		}
		fmt.Printf("Report saved to %s\n", path)
		return nil
	}
	fmt.Print(content)
	return nil
}

func (a *app) runAlert(ctx context.Context, sub string, args []string) error {
	switch sub {
	case "list":
		fs := flag.NewFlagSet("alert list", flag.ExitOnError)
		user := fs.String("user", "", "acting user id (required)")
		all := fs.Bool("all", false, "include read alerts")
		fs.Parse(args)

		alerts, err := a.alerts.Alerts(ctx, *user, *all)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(alerts))
		for _, alert := range alerts {
			read := "unread"
			if alert.IsRead {
				read = "read"
			}
			rows = append(rows, []string{
				alert.ID,
				alert.CreatedAt.Format(dateLayout),
				read,
				alert.Message,
			})
		}
		fmt.Print(report.Table("Alerts", []string{"ID", "Date", "State", "Message"}, rows))
		return nil

	case "check":
		fs := flag.NewFlagSet("alert check", flag.ExitOnError)
		user := fs.String("user", "", "acting user id (required)")
		email := fs.String("email", "", "send triggered alerts to this address")
		send := fs.Bool("send-email", false, "email the triggered alerts")
		fs.Parse(args)

		now := time.Now().UTC()
		if *send || *email != "" {
			msg, err := a.alerts.CheckAndNotify(ctx, *user, *email, now)
			if err != nil {
				return err
			}
			fmt.Println(msg)
			return nil
		}

		summaries, err := a.alerts.CheckAndCreateAlerts(ctx, *user, now)
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			fmt.Println("No budget alerts.")
			return nil
		}
		for _, summary := range summaries {
			fmt.Println(summary.Message)
		}
		return nil

	case "read":
		fs := flag.NewFlagSet("alert read", flag.ExitOnError)
		user := fs.String("user", "", "acting user id (required)")
		id := fs.String("id", "", "alert id (required)")
		fs.Parse(args)

		ok, err := a.alerts.MarkRead(ctx, *id, *user)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("alert not found or not yours")
		}
		fmt.Println("Alert marked as read.")
		return nil

	case "read-all":
		fs := flag.NewFlagSet("alert read-all", flag.ExitOnError)
		user := fs.String("user", "", "acting user id (required)")
		fs.Parse(args)

		count, err := a.alerts.MarkAllRead(ctx, *user)
		if err != nil {
			return err
		}
		fmt.Printf("Marked %d alert(s) as read.\n", count)
		return nil

	case "delete":
		fs := flag.NewFlagSet("alert delete", flag.ExitOnError)
		user := fs.String("user", "", "acting user id (required)")
		id := fs.String("id", "", "alert id (required)")
		fs.Parse(args)

		ok, err := a.alerts.DeleteAlert(ctx, *id, *user)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("alert not found or not yours")
		}
		fmt.Println("Alert deleted.")
		return nil

	default:
		return fmt.Errorf("unknown alert command %q (want list, check, read, read-all, or delete)", sub)
	}
}

func (a *app) runShare(ctx context.Context, sub string, args []string) error {
	switch sub {
	case "add":
		fs := flag.NewFlagSet("share add", flag.ExitOnError)
		payer := fs.String("payer", "", "paying user id (required)")
		amount := fs.String("amount", "", "total amount (required)")
		category := fs.String("category", "", "category name (required)")
		participants := fs.String("participants", "", "comma-separated participant user ids")
		description := fs.String("description", "", "optional description")
		date := fs.String("date", "", "date (YYYY-MM-DD, default today)")
		split := fs.String("split", "equal", "split type")
		fs.Parse(args)

		amt, err := parseAmount(*amount)
		if err != nil {
			return err
		}
		day, err := parseDate(*date)
		if err != nil {
			return err
		}
		splitType, err := calculator.ParseSplitType(*split)
		if err != nil {
			return err
		}

		detail, err := a.sharing.AddSharedExpense(ctx, service.AddSharedExpenseParams{
			Amount:         amt,
			Category:       *category,
			Description:    *description,
			Date:           day,
			PayerID:        *payer,
			ParticipantIDs: splitList(*participants),
			SplitType:      splitType,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added shared expense %s: %s split %d ways (%s each)\n",
			detail.ID, report.Currency(detail.Amount), len(detail.Participants),
			report.Currency(detail.IndividualAmount))
		return nil

	case "list":
		fs := flag.NewFlagSet("share list", flag.ExitOnError)
		user := fs.String("user", "", "acting user id (required)")
		fs.Parse(args)

		details, err := a.sharing.SharedExpensesForUser(ctx, *user)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(details))
		for _, detail := range details {
			names := make([]string, 0, len(detail.Participants))
			for _, p := range detail.Participants {
				names = append(names, p.Username)
			}
			rows = append(rows, []string{
				detail.ID,
				detail.Date.Format(dateLayout),
				detail.Category,
				report.Currency(detail.Amount),
				report.Currency(detail.IndividualAmount),
				detail.Payer.Username,
				strings.Join(names, ", "),
			})
		}
		fmt.Print(report.Table("Shared Expenses",
			[]string{"ID", "Date", "Category", "Total", "Each", "Paid By", "Participants"}, rows))
		return nil

	case "balances":
		fs := flag.NewFlagSet("share balances", flag.ExitOnError)
		user := fs.String("user", "", "acting user id (required)")
		fs.Parse(args)

		rows, err := a.sharing.Balances(ctx, *user)
		if err != nil {
			return err
		}
		if len(rows) <= 1 {
			fmt.Println("No balance information.")
			return nil
		}

		table := make([][]string, 0, len(rows))
		for _, row := range rows {
			table = append(table, []string{
				row.Username,
				report.Currency(row.OwesMe),
				report.Currency(row.IOwe),
				report.Currency(row.NetBalance),
			})
		}
		fmt.Print(report.Table("Balances", []string{"User", "Owes Me", "I Owe", "Net"}, table))
		return nil

	case "settle":
		fs := flag.NewFlagSet("share settle", flag.ExitOnError)
		from := fs.String("from", "", "paying user id (required)")
		to := fs.String("to", "", "receiving user id (required)")
		amount := fs.String("amount", "", "payment amount (required)")
		date := fs.String("date", "", "date (YYYY-MM-DD, default today)")
		note := fs.String("note", "", "optional note")
		fs.Parse(args)

		amt, err := parseAmount(*amount)
		if err != nil {
			return err
		}
		day, err := parseDate(*date)
		if err != nil {
			return err
		}

		settlement, err := a.sharing.SettleBalance(ctx, *from, *to, amt, day, *note)
		if err != nil {
			return err
		}
		fmt.Printf("Recorded settlement %s: %s from %s to %s\n",
			settlement.ID, report.Currency(settlement.Amount),
			settlement.FromUserID, settlement.ToUserID)
		return nil

	default:
		return fmt.Errorf("unknown share command %q (want add, list, balances, or settle)", sub)
	}
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount is required")
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return amount, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	day, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return day, nil
}

func defaultPeriod(month, year int) (int, int) {
	now := time.Now().UTC()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	return month, year
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
