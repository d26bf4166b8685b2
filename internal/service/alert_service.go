package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendwise/spendwise/internal/models"
	"github.com/spendwise/spendwise/internal/notify"
	"github.com/spendwise/spendwise/internal/storage"
)

// AlertService evaluates budgets against the current period, persists
// threshold alerts, and manages their read state.
type AlertService struct {
	store   storage.Store
	budgets *BudgetService
	mailer  notify.Mailer
}

// NewAlertService creates a new AlertService. The mailer may be nil when
// email notification is not configured; CheckAndNotify then fails with a
// clear error while everything else keeps working.
func NewAlertService(store storage.Store, budgets *BudgetService, mailer notify.Mailer) *AlertService {
	return &AlertService{store: store, budgets: budgets, mailer: mailer}
}

// AlertSummary describes one alert triggered by an evaluation pass.
type AlertSummary struct {
	Category       string
	Message        string
	PercentageUsed float64
	Spent          decimal.Decimal
	Budget         decimal.Decimal
}

// CheckAndCreateAlerts evaluates the user's budgets for the month containing
// now and persists one alert per newly triggered budget.
//
// Alert creation is idempotent per budget: a budget that already has an
// unread alert is skipped, so re-running the check does not pile up
// duplicates. Marking the alert read re-arms the budget for the next pass.
// The triggered batch commits atomically.
func (s *AlertService) CheckAndCreateAlerts(ctx context.Context, userID string, now time.Time) ([]AlertSummary, error) {
	month, year := int(now.Month()), now.Year()

	statuses, err := s.budgets.Status(ctx, month, year, userID)
	if err != nil {
		return nil, err
	}

	var alerts []*models.Alert
	var summaries []AlertSummary
	for _, status := range statuses {
		if !status.Alert {
			continue
		}

		exists, err := s.store.HasUnreadBudgetAlert(ctx, status.BudgetID)
		if err != nil {
			return nil, err
		}
		if exists {
			slog.Debug("unread alert already open for budget, skipping",
				"budget_id", status.BudgetID, "category", status.Category)
			continue
		}

		message := alertMessage(status)
		alerts = append(alerts, &models.Alert{
			Message:  message,
			UserID:   userID,
			BudgetID: status.BudgetID,
		})
		summaries = append(summaries, AlertSummary{
			Category:       status.Category,
			Message:        message,
			PercentageUsed: status.PercentageUsed,
			Spent:          status.Spent,
			Budget:         status.Budget,
		})
	}

	if err := s.store.CreateAlerts(ctx, alerts); err != nil {
		return nil, err
	}

	if len(summaries) > 0 {
		slog.Info("budget alerts created", "user_id", userID, "count", len(summaries))
	}
	return summaries, nil
}

// CheckAndNotify runs CheckAndCreateAlerts and emails the triggered alerts.
// When email is empty the user's profile address is used. Returns a
// human-readable outcome message.
func (s *AlertService) CheckAndNotify(ctx context.Context, userID, email string, now time.Time) (string, error) {
	summaries, err := s.CheckAndCreateAlerts(ctx, userID, now)
	if err != nil {
		return "", err
	}
	if len(summaries) == 0 {
		return "No budget alerts to send.", nil
	}

	if email == "" {
		user, err := s.store.GetUser(ctx, userID)
		if err != nil {
			return "", err
		}
		if user != nil {
			email = user.Email
		}
	}
	if email == "" {
		return "", fmt.Errorf("no email address provided or found in user profile")
	}
	if s.mailer == nil {
		return "", fmt.Errorf("email notifications are not configured")
	}

	budgetAlerts := make([]notify.BudgetAlert, len(summaries))
	for i, summary := range summaries {
		budgetAlerts[i] = notify.BudgetAlert{
			Category:       summary.Category,
			Message:        summary.Message,
			PercentageUsed: summary.PercentageUsed,
			Spent:          summary.Spent,
			Budget:         summary.Budget,
		}
	}
	if err := s.mailer.SendBudgetAlerts(email, budgetAlerts); err != nil {
		return "", err
	}

	return fmt.Sprintf("Sent %d budget alert(s) to %s.", len(summaries), email), nil
}

// Alerts returns the user's alerts, newest first.
func (s *AlertService) Alerts(ctx context.Context, userID string, includeRead bool) ([]*models.Alert, error) {
	return s.store.ListAlerts(ctx, userID, includeRead)
}

// MarkRead marks one alert owned by userID as read. A false result means
// not found or not owned.
func (s *AlertService) MarkRead(ctx context.Context, alertID, userID string) (bool, error) {
	return s.store.MarkAlertRead(ctx, alertID, userID)
}

// MarkAllRead marks every unread alert owned by userID as read and returns
// how many transitioned.
func (s *AlertService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return s.store.MarkAllAlertsRead(ctx, userID)
}

// DeleteAlert removes an alert owned by userID.
func (s *AlertService) DeleteAlert(ctx context.Context, alertID, userID string) (bool, error) {
	return s.store.DeleteAlert(ctx, alertID, userID)
}

// alertMessage renders the persisted alert text for one over-threshold
// budget status.
func alertMessage(status BudgetStatus) string {
	percentage := status.PercentageUsed * 100
	if status.PercentageUsed >= 1.0 {
		return fmt.Sprintf("ALERT: Budget for %s exceeded! ($%s / $%s, %.1f%%)",
			status.Category, status.Spent.StringFixed(2), status.Budget.StringFixed(2), percentage)
	}
	return fmt.Sprintf("WARNING: Only %.1f%% of budget for %s remaining ($%s / $%s)",
		100-percentage, status.Category, status.Remaining.StringFixed(2), status.Budget.StringFixed(2))
}
