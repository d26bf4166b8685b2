package calculator

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func findBalance(t *testing.T, rows []Balance, userID string) Balance {
	t.Helper()
	for _, row := range rows {
		if row.UserID == userID {
			return row
		}
	}
	t.Fatalf("no balance row for %q in %v", userID, rows)
	return Balance{}
}

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name      string
		viewerID  string
		expenses  []SharedExpense
		transfers []Transfer
		validate  func(t *testing.T, rows []Balance)
	}{
		{
			name:     "payer perspective: 90 split three ways",
			viewerID: "alice",
			expenses: []SharedExpense{
				{ID: "e1", Amount: dec("90"), PayerID: "alice", ParticipantIDs: []string{"alice", "bob", "carol"}},
			},
			validate: func(t *testing.T, rows []Balance) {
				if len(rows) != 3 {
					t.Fatalf("got %d rows, want TOTAL + 2 counterparties", len(rows))
				}
				for _, id := range []string{"bob", "carol"} {
					row := findBalance(t, rows, id)
					if !row.OwesMe.Equal(dec("30")) {
						t.Errorf("%s owes_me = %s, want 30", id, row.OwesMe)
					}
					if !row.IOwe.IsZero() {
						t.Errorf("%s i_owe = %s, want 0", id, row.IOwe)
					}
					if !row.NetBalance.Equal(row.OwesMe) {
						t.Errorf("%s net = %s, want equal to owes_me when viewer paid everything", id, row.NetBalance)
					}
				}
				total := rows[0]
				if !total.IsTotal() {
					t.Fatal("first row must be the TOTAL row")
				}
				if !total.OwesMe.Equal(dec("60")) || !total.IOwe.IsZero() || !total.NetBalance.Equal(dec("60")) {
					t.Errorf("TOTAL = %+v, want owes_me 60, i_owe 0, net 60", total)
				}
			},
		},
		{
			name:     "counterparty paid: viewer owes their share",
			viewerID: "bob",
			expenses: []SharedExpense{
				{ID: "e1", Amount: dec("90"), PayerID: "alice", ParticipantIDs: []string{"alice", "bob", "carol"}},
			},
			validate: func(t *testing.T, rows []Balance) {
				alice := findBalance(t, rows, "alice")
				if !alice.IOwe.Equal(dec("30")) {
					t.Errorf("i_owe alice = %s, want 30", alice.IOwe)
				}
				if !alice.NetBalance.Equal(dec("-30")) {
					t.Errorf("net vs alice = %s, want -30", alice.NetBalance)
				}
				// Carol's share of Alice's expense is between Carol and
				// Alice; Bob's ledger records nothing against Carol.
				carol := findBalance(t, rows, "carol")
				if !carol.OwesMe.IsZero() || !carol.IOwe.IsZero() {
					t.Errorf("third-party shares leaked into viewer ledger: %+v", carol)
				}
			},
		},
		{
			name:     "mutual expenses net out",
			viewerID: "alice",
			expenses: []SharedExpense{
				{ID: "e1", Amount: dec("40"), PayerID: "alice", ParticipantIDs: []string{"alice", "bob"}},
				{ID: "e2", Amount: dec("10"), PayerID: "bob", ParticipantIDs: []string{"alice", "bob"}},
			},
			validate: func(t *testing.T, rows []Balance) {
				bob := findBalance(t, rows, "bob")
				if !bob.OwesMe.Equal(dec("20")) {
					t.Errorf("owes_me = %s, want 20", bob.OwesMe)
				}
				if !bob.IOwe.Equal(dec("5")) {
					t.Errorf("i_owe = %s, want 5", bob.IOwe)
				}
				if !bob.NetBalance.Equal(dec("15")) {
					t.Errorf("net = %s, want 15", bob.NetBalance)
				}
			},
		},
		{
			name:     "settlement reduces the debtor's obligation",
			viewerID: "bob",
			expenses: []SharedExpense{
				{ID: "e1", Amount: dec("90"), PayerID: "alice", ParticipantIDs: []string{"alice", "bob", "carol"}},
			},
			transfers: []Transfer{
				{FromUserID: "bob", ToUserID: "alice", Amount: dec("30")},
			},
			validate: func(t *testing.T, rows []Balance) {
				alice := findBalance(t, rows, "alice")
				if !alice.IOwe.IsZero() {
					t.Errorf("i_owe after paying off the debt = %s, want 0", alice.IOwe)
				}
				if !alice.NetBalance.IsZero() {
					t.Errorf("net after paying off the debt = %s, want 0", alice.NetBalance)
				}
			},
		},
		{
			name:     "settlement from the creditor's perspective",
			viewerID: "alice",
			expenses: []SharedExpense{
				{ID: "e1", Amount: dec("90"), PayerID: "alice", ParticipantIDs: []string{"alice", "bob", "carol"}},
			},
			transfers: []Transfer{
				{FromUserID: "bob", ToUserID: "alice", Amount: dec("30")},
			},
			validate: func(t *testing.T, rows []Balance) {
				bob := findBalance(t, rows, "bob")
				if !bob.OwesMe.IsZero() {
					t.Errorf("owes_me after being paid back = %s, want 0", bob.OwesMe)
				}
				carol := findBalance(t, rows, "carol")
				if !carol.OwesMe.Equal(dec("30")) {
					t.Errorf("carol still owes %s, want 30", carol.OwesMe)
				}
			},
		},
		{
			name:     "viewer as sole participant contributes nothing",
			viewerID: "alice",
			expenses: []SharedExpense{
				{ID: "e1", Amount: dec("50"), PayerID: "alice", ParticipantIDs: []string{"alice"}},
			},
			validate: func(t *testing.T, rows []Balance) {
				if len(rows) != 1 {
					t.Fatalf("got %d rows, want only the TOTAL row", len(rows))
				}
				if !rows[0].NetBalance.IsZero() {
					t.Errorf("TOTAL net = %s, want 0", rows[0].NetBalance)
				}
			},
		},
		{
			name:     "no data yields a single zero TOTAL row",
			viewerID: "alice",
			validate: func(t *testing.T, rows []Balance) {
				if len(rows) != 1 || !rows[0].IsTotal() {
					t.Fatalf("got %v, want exactly the TOTAL row", rows)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := ComputeBalances(tt.viewerID, tt.expenses, tt.transfers)
			if len(rows) == 0 || !rows[0].IsTotal() {
				t.Fatal("result must start with the TOTAL row")
			}
			tt.validate(t, rows)
		})
	}
}

// The TOTAL row must always equal the sum over counterparty rows, and the
// result must not depend on the order expenses are supplied in.
func TestComputeBalancesInvariants(t *testing.T) {
	expenses := []SharedExpense{
		{ID: "e1", Amount: dec("90"), PayerID: "alice", ParticipantIDs: []string{"alice", "bob", "carol"}},
		{ID: "e2", Amount: dec("24"), PayerID: "bob", ParticipantIDs: []string{"alice", "bob"}},
		{ID: "e3", Amount: dec("100"), PayerID: "carol", ParticipantIDs: []string{"alice", "bob", "carol", "dave"}},
		{ID: "e4", Amount: dec("7.50"), PayerID: "alice", ParticipantIDs: []string{"alice", "dave"}},
	}
	transfers := []Transfer{
		{FromUserID: "alice", ToUserID: "bob", Amount: dec("12")},
		{FromUserID: "dave", ToUserID: "alice", Amount: dec("3.75")},
	}

	baseline := ComputeBalances("alice", expenses, transfers)

	total := baseline[0]
	var sumOwesMe, sumIOwe, sumNet decimal.Decimal
	for _, row := range baseline[1:] {
		sumOwesMe = sumOwesMe.Add(row.OwesMe)
		sumIOwe = sumIOwe.Add(row.IOwe)
		sumNet = sumNet.Add(row.NetBalance)
	}
	if !total.OwesMe.Equal(sumOwesMe) || !total.IOwe.Equal(sumIOwe) {
		t.Errorf("TOTAL %+v does not match column sums (%s, %s)", total, sumOwesMe, sumIOwe)
	}
	if !total.NetBalance.Equal(total.OwesMe.Sub(total.IOwe)) {
		t.Errorf("TOTAL net %s != owes_me - i_owe", total.NetBalance)
	}
	if !total.NetBalance.Equal(sumNet) {
		t.Errorf("TOTAL net %s != sum of row nets %s", total.NetBalance, sumNet)
	}

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		shuffled := make([]SharedExpense, len(expenses))
		copy(shuffled, expenses)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		rows := ComputeBalances("alice", shuffled, transfers)
		if len(rows) != len(baseline) {
			t.Fatalf("row count changed under reordering: %d vs %d", len(rows), len(baseline))
		}
		for i := range rows {
			if rows[i].UserID != baseline[i].UserID || !rows[i].NetBalance.Equal(baseline[i].NetBalance) ||
				!rows[i].OwesMe.Equal(baseline[i].OwesMe) || !rows[i].IOwe.Equal(baseline[i].IOwe) {
				t.Fatalf("balance changed under input reordering: %+v vs %+v", rows[i], baseline[i])
			}
		}
	}
}
