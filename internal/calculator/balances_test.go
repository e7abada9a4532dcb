package calculator

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func equalEntry(currency, payer string, amount float64, participants ...string) Entry {
	shares, err := EqualShares(amount, participants)
	if err != nil {
		panic(err)
	}
	return Entry{Currency: currency, PayerID: payer, Amount: amount, Shares: shares}
}

func TestSimplifyDebts(t *testing.T) {
	members := []string{"A", "B", "C"}

	tests := []struct {
		name        string
		entries     []Entry
		settlements []Transfer
		want        []Transfer
	}{
		{
			name:    "one payer, three-way split",
			entries: []Entry{equalEntry("IDR", "A", 300, "A", "B", "C")},
			want: []Transfer{
				{From: "B", To: "A", Amount: 100, Currency: "IDR"},
				{From: "C", To: "A", Amount: 100, Currency: "IDR"},
			},
		},
		{
			name: "second expense nets against the first",
			entries: []Entry{
				equalEntry("IDR", "A", 300, "A", "B", "C"),
				equalEntry("IDR", "B", 60, "A", "B", "C"),
			},
			// A: +180, B: -60, C: -120
			want: []Transfer{
				{From: "C", To: "A", Amount: 120, Currency: "IDR"},
				{From: "B", To: "A", Amount: 60, Currency: "IDR"},
			},
		},
		{
			name: "everyone even",
			entries: []Entry{
				equalEntry("IDR", "A", 90, "A", "B", "C"),
				equalEntry("IDR", "B", 90, "A", "B", "C"),
				equalEntry("IDR", "C", 90, "A", "B", "C"),
			},
			want: nil,
		},
		{
			name: "currencies never net against each other",
			entries: []Entry{
				equalEntry("IDR", "A", 100, "A", "B"),
				equalEntry("USD", "B", 100, "A", "B"),
			},
			want: []Transfer{
				{From: "B", To: "A", Amount: 50, Currency: "IDR"},
				{From: "A", To: "B", Amount: 50, Currency: "USD"},
			},
		},
		{
			name:        "settlement adjusts balances",
			entries:     []Entry{equalEntry("IDR", "A", 300, "A", "B", "C")},
			settlements: []Transfer{{From: "B", To: "A", Amount: 100, Currency: "IDR"}},
			want:        []Transfer{{From: "C", To: "A", Amount: 100, Currency: "IDR"}},
		},
		{
			name: "ledger-only participant still shows up",
			entries: []Entry{
				equalEntry("IDR", "A", 100, "A", "D"),
			},
			want: []Transfer{{From: "D", To: "A", Amount: 50, Currency: "IDR"}},
		},
		{
			name: "ties keep join order",
			entries: []Entry{
				{Currency: "IDR", PayerID: "C", Amount: 100, Shares: []Share{{"A", 50}, {"B", 50}}},
			},
			want: []Transfer{
				{From: "A", To: "C", Amount: 50, Currency: "IDR"},
				{From: "B", To: "C", Amount: 50, Currency: "IDR"},
			},
		},
		{
			name: "sub-cent noise is ignored",
			entries: []Entry{
				{Currency: "IDR", PayerID: "A", Amount: 0.005, Shares: []Share{{"B", 0.005}}},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimplifyDebts(tt.entries, tt.settlements, members, "IDR")
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("SimplifyDebts() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCurrencies(t *testing.T) {
	entries := []Entry{
		{Currency: "USD"}, {Currency: "EUR"}, {Currency: "IDR"}, {Currency: "USD"},
	}

	got := Currencies(entries, nil, "IDR")
	want := []string{"IDR", "EUR", "USD"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Currencies() mismatch (-want +got):\n%s", diff)
	}

	got = Currencies(entries, nil, "SGD")
	want = []string{"EUR", "IDR", "USD"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Currencies() without preferred mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculateBalances(t *testing.T) {
	entries := []Entry{
		equalEntry("IDR", "A", 300, "A", "B", "C"),
		equalEntry("IDR", "B", 60, "A", "B", "C"),
		equalEntry("USD", "C", 10, "A", "C"),
	}

	got := CalculateBalances(entries, nil, []string{"A", "B", "C"}, "IDR")
	want := []MemberBalance{
		{UserID: "A", Currency: "IDR", TotalPaid: 300, TotalOwed: 120, NetBalance: 180},
		{UserID: "B", Currency: "IDR", TotalPaid: 60, TotalOwed: 120, NetBalance: -60},
		{UserID: "C", Currency: "IDR", TotalPaid: 0, TotalOwed: 120, NetBalance: -120},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("CalculateBalances() mismatch (-want +got):\n%s", diff)
	}
}

// TestSimplifyDebtsProperties checks conservation and minimality over random ledgers.
func TestSimplifyDebtsProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	members := []string{"A", "B", "C", "D", "E", "F"}

	for round := 0; round < 200; round++ {
		var entries []Entry
		for n := rng.Intn(12) + 1; n > 0; n-- {
			payer := members[rng.Intn(len(members))]
			perm := rng.Perm(len(members))[:rng.Intn(len(members))+1]
			var participants []string
			for _, i := range perm {
				participants = append(participants, members[i])
			}
			amount := float64(rng.Intn(100000)+1) / 100
			entries = append(entries, equalEntry("IDR", payer, amount, participants...))
		}

		balances := CalculateBalances(entries, nil, members, "IDR")
		var total float64
		nonZero := 0
		for _, b := range balances {
			total += b.NetBalance
			if math.Abs(b.NetBalance) > Epsilon {
				nonZero++
			}
		}
		if math.Abs(total) > 1e-6 {
			t.Fatalf("round %d: balances sum to %v, want 0", round, total)
		}

		transfers := SimplifyDebts(entries, nil, members, "IDR")
		if nonZero > 0 && len(transfers) > nonZero-1 {
			t.Errorf("round %d: %d transfers for %d non-zero balances", round, len(transfers), nonZero)
		}

		// Applying the transfers as settlements must zero every balance.
		after := CalculateBalances(entries, transfers, members, "IDR")
		for _, b := range after {
			if math.Abs(b.NetBalance) > 0.05 {
				t.Errorf("round %d: %s left with %v after settling", round, b.UserID, b.NetBalance)
			}
		}

		again := SimplifyDebts(entries, nil, members, "IDR")
		sortTransfers(transfers)
		sortTransfers(again)
		if diff := cmp.Diff(transfers, again); diff != "" {
			t.Errorf("round %d: recompute not stable (-first +second):\n%s", round, diff)
		}
	}
}

func sortTransfers(ts []Transfer) {
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].From != ts[j].From {
			return ts[i].From < ts[j].From
		}
		return ts[i].To < ts[j].To
	})
}
