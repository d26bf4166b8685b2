package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendwise/spendwise/internal/calculator"
	"github.com/spendwise/spendwise/internal/models"
	"github.com/spendwise/spendwise/internal/storage"
)

// SharingService manages group expenses, pairwise balances, and settlements.
type SharingService struct {
	store storage.Store
}

// NewSharingService creates a new SharingService with the given storage
// backend.
func NewSharingService(store storage.Store) *SharingService {
	return &SharingService{store: store}
}

// ParticipantShare identifies one participant of a shared expense.
type ParticipantShare struct {
	UserID   string
	Username string
	IsPayer  bool
}

// SharedExpenseDetail is a group expense enriched with participant identity
// and the derived per-participant share.
type SharedExpenseDetail struct {
	ID               string
	Amount           decimal.Decimal
	Description      string
	Date             time.Time
	Category         string
	Payer            ParticipantShare
	Participants     []ParticipantShare
	IndividualAmount decimal.Decimal
	UserIsPayer      bool
}

// BalanceRow is one line of a user's balance summary. The first row of every
// summary is the synthetic TOTAL aggregate, identified by Username "TOTAL"
// and an empty UserID.
type BalanceRow struct {
	UserID     string
	Username   string
	OwesMe     decimal.Decimal
	IOwe       decimal.Decimal
	NetBalance decimal.Decimal
}

// AddSharedExpenseParams describes one group expense to record.
type AddSharedExpenseParams struct {
	Amount         decimal.Decimal
	Category       string
	Description    string
	Date           time.Time // zero means today
	PayerID        string
	ParticipantIDs []string
	SplitType      calculator.SplitType
}

// AddSharedExpense records a group expense paid by PayerID and split among
// the participants. The payer is always included in the participant set.
func (s *SharingService) AddSharedExpense(ctx context.Context, p AddSharedExpenseParams) (*SharedExpenseDetail, error) {
	if !p.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive, got %s", p.Amount)
	}
	if p.Category == "" {
		return nil, fmt.Errorf("category must not be empty")
	}
	if p.PayerID == "" {
		return nil, fmt.Errorf("payer id must not be empty")
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}

	participantIDs := p.ParticipantIDs
	if !containsID(participantIDs, p.PayerID) {
		participantIDs = append(append([]string{}, participantIDs...), p.PayerID)
	}

	for _, id := range participantIDs {
		user, err := s.store.GetUser(ctx, id)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, fmt.Errorf("participant not found: %s", id)
		}
	}

	shares, err := calculator.Shares(p.Amount, participantIDs, p.SplitType)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		Amount:         p.Amount,
		Description:    p.Description,
		Date:           p.Date,
		Category:       p.Category,
		UserID:         p.PayerID,
		IsGroupExpense: true,
		TotalAmount:    p.Amount,
		ParticipantIDs: participantIDs,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}

	slog.Info("shared expense recorded",
		"expense_id", expense.ID,
		"payer_id", p.PayerID,
		"participants", len(participantIDs),
		"amount", p.Amount,
	)

	return s.enrichExpense(ctx, expense, p.PayerID, shares[p.PayerID])
}

// SharedExpensesForUser returns every group expense the user participates
// in, enriched with participant identity. An unknown user yields an empty
// result, not an error.
func (s *SharingService) SharedExpensesForUser(ctx context.Context, userID string) ([]SharedExpenseDetail, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	expenses, err := s.store.ListSharedExpenses(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := make([]SharedExpenseDetail, 0, len(expenses))
	for _, expense := range expenses {
		shares, err := calculator.Shares(expense.Amount, expense.ParticipantIDs, calculator.SplitEqual)
		if err != nil {
			// A group expense with no participants is malformed; skip it
			// rather than fail the whole listing.
			slog.Warn("skipping malformed group expense", "expense_id", expense.ID, "error", err)
			continue
		}

		detail, err := s.enrichExpense(ctx, expense, userID, shares[userID])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}

	return details, nil
}

// Balances computes the user's balance summary against every counterparty
// from shared expense and settlement history. The TOTAL row comes first; a
// result of length <= 1 means there is no balance information.
func (s *SharingService) Balances(ctx context.Context, userID string) ([]BalanceRow, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var shared []calculator.SharedExpense
	var transfers []calculator.Transfer
	if user != nil {
		expenses, err := s.store.ListSharedExpenses(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, expense := range expenses {
			shared = append(shared, calculator.SharedExpense{
				ID:             expense.ID,
				Amount:         expense.Amount,
				PayerID:        expense.UserID,
				ParticipantIDs: expense.ParticipantIDs,
			})
		}

		settlements, err := s.store.ListSettlementsForUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, settlement := range settlements {
			transfers = append(transfers, calculator.Transfer{
				FromUserID: settlement.FromUserID,
				ToUserID:   settlement.ToUserID,
				Amount:     settlement.Amount,
			})
		}
	}

	balances := calculator.ComputeBalances(userID, shared, transfers)

	rows := make([]BalanceRow, 0, len(balances))
	names := map[string]string{}
	for _, balance := range balances {
		row := BalanceRow{
			UserID:     balance.UserID,
			OwesMe:     balance.OwesMe,
			IOwe:       balance.IOwe,
			NetBalance: balance.NetBalance,
		}
		if balance.IsTotal() {
			row.Username = "TOTAL"
		} else {
			name, err := s.username(ctx, names, balance.UserID)
			if err != nil {
				return nil, err
			}
			row.Username = name
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// SettleBalance records a payment from one user to another, reducing what
// the payer owes the recipient on the next balance computation.
func (s *SharingService) SettleBalance(ctx context.Context, fromUserID, toUserID string, amount decimal.Decimal, date time.Time, note string) (*models.Settlement, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive, got %s", amount)
	}
	if fromUserID == toUserID {
		return nil, fmt.Errorf("cannot settle a balance with yourself")
	}
	for _, id := range []string{fromUserID, toUserID} {
		user, err := s.store.GetUser(ctx, id)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, fmt.Errorf("user not found: %s", id)
		}
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}
	if note == "" {
		note = "Balance settlement payment"
	}

	settlement := &models.Settlement{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Amount:     amount,
		Date:       date,
		Note:       note,
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, err
	}

	slog.Info("settlement recorded",
		"settlement_id", settlement.ID,
		"from", fromUserID,
		"to", toUserID,
		"amount", amount,
	)
	return settlement, nil
}

// enrichExpense resolves usernames and payer flags for one group expense,
// viewed from viewerID's perspective.
func (s *SharingService) enrichExpense(ctx context.Context, expense *models.Expense, viewerID string, individualAmount decimal.Decimal) (*SharedExpenseDetail, error) {
	names := map[string]string{}

	participants := make([]ParticipantShare, 0, len(expense.ParticipantIDs))
	for _, id := range expense.ParticipantIDs {
		name, err := s.username(ctx, names, id)
		if err != nil {
			return nil, err
		}
		participants = append(participants, ParticipantShare{
			UserID:   id,
			Username: name,
			IsPayer:  id == expense.UserID,
		})
	}

	payerName, err := s.username(ctx, names, expense.UserID)
	if err != nil {
		return nil, err
	}

	return &SharedExpenseDetail{
		ID:               expense.ID,
		Amount:           expense.Amount,
		Description:      expense.Description,
		Date:             expense.Date,
		Category:         expense.Category,
		Payer:            ParticipantShare{UserID: expense.UserID, Username: payerName, IsPayer: true},
		Participants:     participants,
		IndividualAmount: individualAmount,
		UserIsPayer:      expense.UserID == viewerID,
	}, nil
}

// username resolves a user ID to a username through a per-call cache.
// Unknown IDs resolve to the raw ID so a deleted user does not break
// listings.
func (s *SharingService) username(ctx context.Context, cache map[string]string, userID string) (string, error) {
	if name, ok := cache[userID]; ok {
		return name, nil
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	name := userID
	if user != nil {
		name = user.Username
	}
	cache[userID] = name
	return name, nil
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
