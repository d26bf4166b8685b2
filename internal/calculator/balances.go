package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// SharedExpense represents a group expense with the minimal information
// needed for balance calculations.
type SharedExpense struct {
	ID             string
	Amount         decimal.Decimal
	PayerID        string
	ParticipantIDs []string // always includes the payer
}

// Transfer represents a settlement payment with the minimal information
// needed for balance calculations.
type Transfer struct {
	FromUserID string // who paid (debtor settling up)
	ToUserID   string // who received (creditor being paid)
	Amount     decimal.Decimal
}

// Balance holds the amounts owed in each direction between the viewing user
// and one counterparty. The synthetic TOTAL row aggregating all
// counterparties carries an empty UserID.
type Balance struct {
	UserID     string
	OwesMe     decimal.Decimal // counterparty owes viewer
	IOwe       decimal.Decimal // viewer owes counterparty
	NetBalance decimal.Decimal // OwesMe - IOwe
}

// IsTotal reports whether this is the synthetic aggregate row.
func (b Balance) IsTotal() bool { return b.UserID == "" }

// ComputeBalances derives the viewing user's ledger against every
// counterparty from shared expense and settlement history.
//
// Algorithm:
//   - For each shared expense the viewer participates in: if the viewer is
//     the payer, every other participant owes the viewer their share; if a
//     counterparty is the payer, the viewer owes that counterparty the
//     viewer's share. Shares between two third parties are not the viewer's
//     business and are never recorded.
//   - For each transfer the viewer is a party to: a payment From -> To
//     reduces what From owes To. The sign is the reverse of expense payer
//     attribution, which is what makes a settlement clear debt rather than
//     create a new claim in the payer's favor.
//
// The result has the TOTAL row first, then one row per counterparty sorted
// by user ID. No data yields a list containing only the zero TOTAL row.
func ComputeBalances(viewerID string, expenses []SharedExpense, transfers []Transfer) []Balance {
	acc := make(map[string]*Balance)
	entry := func(userID string) *Balance {
		b, ok := acc[userID]
		if !ok {
			b = &Balance{UserID: userID}
			acc[userID] = b
		}
		return b
	}

	for _, exp := range expenses {
		if !contains(exp.ParticipantIDs, viewerID) || len(exp.ParticipantIDs) < 2 {
			continue
		}

		shares, err := Shares(exp.Amount, exp.ParticipantIDs, SplitEqual)
		if err != nil {
			continue
		}

		for _, participantID := range exp.ParticipantIDs {
			if participantID == viewerID {
				continue
			}

			switch {
			case exp.PayerID == viewerID:
				// Viewer paid; the counterparty owes their own share.
				b := entry(participantID)
				b.OwesMe = b.OwesMe.Add(shares[participantID])
				b.NetBalance = b.NetBalance.Add(shares[participantID])
			case exp.PayerID == participantID:
				// The counterparty paid; the viewer owes the viewer's share.
				b := entry(participantID)
				b.IOwe = b.IOwe.Add(shares[viewerID])
				b.NetBalance = b.NetBalance.Sub(shares[viewerID])
			}
		}
	}

	for _, tr := range transfers {
		if tr.FromUserID == tr.ToUserID {
			continue
		}
		switch viewerID {
		case tr.FromUserID:
			b := entry(tr.ToUserID)
			b.IOwe = b.IOwe.Sub(tr.Amount)
			b.NetBalance = b.NetBalance.Add(tr.Amount)
		case tr.ToUserID:
			b := entry(tr.FromUserID)
			b.OwesMe = b.OwesMe.Sub(tr.Amount)
			b.NetBalance = b.NetBalance.Sub(tr.Amount)
		}
	}

	rows := make([]Balance, 0, len(acc)+1)
	for _, b := range acc {
		rows = append(rows, *b)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].UserID < rows[j].UserID })

	total := Balance{}
	for _, row := range rows {
		total.OwesMe = total.OwesMe.Add(row.OwesMe)
		total.IOwe = total.IOwe.Add(row.IOwe)
	}
	total.NetBalance = total.OwesMe.Sub(total.IOwe)

	return append([]Balance{total}, rows...)
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
