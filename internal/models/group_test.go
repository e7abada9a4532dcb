package models

import (
	"errors"
	"math"
	"sort"
	"testing"
	"time"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestGroup creates an IDR group owned by A with members B and C.
func newTestGroup(t *testing.T) *Group {
	t.Helper()
	g, err := NewGroup(GroupParams{
		ID:        "g1",
		Code:      "abc123",
		OwnerID:   "A",
		OwnerName: "Alice",
		Title:     "Trip",
	}, t0)
	if err != nil {
		t.Fatalf("NewGroup failed: %v", err)
	}
	for _, m := range []struct{ id, name string }{{"B", "Bob"}, {"C", "Charlie"}} {
		if _, err := g.AddMember(m.id, m.name, "", t0); err != nil {
			t.Fatalf("AddMember(%s) failed: %v", m.id, err)
		}
	}
	return g
}

func splits(pairs ...any) []SplitInput {
	var out []SplitInput
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, SplitInput{UserID: pairs[i].(string), Amount: float64(pairs[i+1].(int))})
	}
	return out
}

func addExpense(t *testing.T, g *Group, payer string, amount float64, split []SplitInput) {
	t.Helper()
	_, err := g.AddExpense(ExpenseInput{
		Description:  "expense",
		Amount:       amount,
		PayerID:      payer,
		SplitBetween: split,
		CreatedBy:    payer,
	}, t0, RecalcDiscardSettled)
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
}

type debtKey struct {
	from, to string
	amount   float64
}

func debtKeys(debts []Debt) []debtKey {
	keys := make([]debtKey, len(debts))
	for i, d := range debts {
		keys[i] = debtKey{d.From.UserID, d.To.UserID, d.Amount}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].from != keys[j].from {
			return keys[i].from < keys[j].from
		}
		return keys[i].to < keys[j].to
	})
	return keys
}

func TestNewGroup(t *testing.T) {
	g := newTestGroup(t)

	if g.Code != "ABC123" {
		t.Errorf("Code = %q, want upper-cased ABC123", g.Code)
	}
	if g.DefaultCurrency != DefaultCurrency {
		t.Errorf("DefaultCurrency = %q, want %q", g.DefaultCurrency, DefaultCurrency)
	}
	if !g.AutoSimplifyDebts {
		t.Error("AutoSimplifyDebts should default to true")
	}
	if g.MaxMembers != DefaultMaxMembers {
		t.Errorf("MaxMembers = %d, want %d", g.MaxMembers, DefaultMaxMembers)
	}
	if !g.IsAdmin("A") {
		t.Error("creator should be an admin member")
	}
	if g.IsAdmin("B") {
		t.Error("B should not be an admin")
	}
}

func TestNewGroup_Validation(t *testing.T) {
	tests := []struct {
		name string
		p    GroupParams
		want error
	}{
		{"missing title", GroupParams{OwnerID: "A", Title: "  "}, ErrValidation},
		{"unsupported currency", GroupParams{OwnerID: "A", Title: "T", DefaultCurrency: "XYZ"}, ErrUnsupportedCurrency},
		{"max members too small", GroupParams{OwnerID: "A", Title: "T", MaxMembers: 1}, ErrValidation},
		{"max members too large", GroupParams{OwnerID: "A", Title: "T", MaxMembers: 101}, ErrValidation},
		{"missing owner", GroupParams{Title: "T"}, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGroup(tt.p, t0)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewGroup() error = %v, want %v", err, tt.want)
			}
			if KindOf(err) != KindValidation {
				t.Errorf("KindOf() = %v, want validation", KindOf(err))
			}
		})
	}
}

func TestAddMember(t *testing.T) {
	t.Run("duplicate active member", func(t *testing.T) {
		g := newTestGroup(t)
		_, err := g.AddMember("B", "Bob", "", t0)
		if !errors.Is(err, ErrAlreadyMember) {
			t.Errorf("error = %v, want ErrAlreadyMember", err)
		}
	})

	t.Run("capacity", func(t *testing.T) {
		g := newTestGroup(t)
		g.MaxMembers = 3
		_, err := g.AddMember("D", "Dan", "", t0)
		if !errors.Is(err, ErrCapacityExceeded) {
			t.Errorf("error = %v, want ErrCapacityExceeded", err)
		}
		if KindOf(err) != KindConflict {
			t.Errorf("KindOf() = %v, want conflict", KindOf(err))
		}
	})

	t.Run("rejoin reactivates instead of duplicating", func(t *testing.T) {
		g := newTestGroup(t)
		if err := g.RemoveMember("C"); err != nil {
			t.Fatalf("RemoveMember failed: %v", err)
		}
		if g.ActiveMemberCount() != 2 {
			t.Fatalf("active members = %d, want 2", g.ActiveMemberCount())
		}

		later := t0.Add(time.Hour)
		m, err := g.AddMember("C", "Chuck", "", later)
		if err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		if len(g.Members) != 3 {
			t.Errorf("members = %d, want 3 (no duplicate record)", len(g.Members))
		}
		if !m.IsActive || !m.JoinedAt.Equal(later) {
			t.Errorf("member not reactivated: %+v", m)
		}
		if m.Role != RoleMember {
			t.Errorf("role = %s, want member", m.Role)
		}
	})

	t.Run("rejoin keeps the stored role", func(t *testing.T) {
		g := newTestGroup(t)
		g.FindMember("C").Role = RoleAdmin
		if err := g.RemoveMember("C"); err != nil {
			t.Fatalf("RemoveMember failed: %v", err)
		}

		m, err := g.AddMember("C", "Chuck", RoleMember, t0.Add(time.Hour))
		if err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		if m.Role != RoleAdmin {
			t.Errorf("role = %s, want admin kept", m.Role)
		}
	})
}

func TestAddExpense_ScenarioOne(t *testing.T) {
	g := newTestGroup(t)
	addExpense(t, g, "A", 300, splits("A", 100, "B", 100, "C", 100))

	want := []debtKey{{"B", "A", 100}, {"C", "A", 100}}
	got := debtKeys(g.Debts)
	if len(got) != len(want) {
		t.Fatalf("debts = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("debt %d = %v, want %v", i, got[i], want[i])
		}
	}

	for _, d := range g.Debts {
		if d.Status != DebtPending || d.Currency != "IDR" {
			t.Errorf("debt %+v should be pending IDR", d)
		}
	}
	if g.Debts[0].To.Name != "Alice" {
		t.Errorf("creditor name = %q, want Alice", g.Debts[0].To.Name)
	}
}

func TestAddExpense_SecondExpenseNets(t *testing.T) {
	g := newTestGroup(t)
	addExpense(t, g, "A", 300, splits("A", 100, "B", 100, "C", 100))
	addExpense(t, g, "B", 60, splits("A", 20, "B", 20, "C", 20))

	// A: +180, B: -60, C: -120
	got := debtKeys(g.Debts)
	want := []debtKey{{"B", "A", 60}, {"C", "A", 120}}
	if len(got) != 2 {
		t.Fatalf("got %d debts, want exactly 2: %v", len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("debt %d = %v, want %v", i, got[i], want[i])
		}
	}

	var total float64
	for _, b := range g.Balances("IDR", RecalcDiscardSettled) {
		total += b.NetBalance
	}
	if math.Abs(total) > 1e-9 {
		t.Errorf("balances sum to %v, want 0", total)
	}
}

func TestAddExpense_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(g *Group)
		in     ExpenseInput
		want   error
	}{
		{
			name: "split within tolerance is accepted",
			in: ExpenseInput{Description: "x", Amount: 300, PayerID: "A",
				SplitBetween: []SplitInput{{"A", 100}, {"B", 100}, {"C", 99.99}}},
			want: nil,
		},
		{
			name: "split mismatch",
			in:   ExpenseInput{Description: "x", Amount: 300, PayerID: "A", SplitBetween: splits("A", 100, "B", 100, "C", 95)},
			want: ErrSplitMismatch,
		},
		{
			name: "zero amount",
			in:   ExpenseInput{Description: "x", Amount: 0, PayerID: "A", SplitBetween: splits("A", 0)},
			want: ErrInvalidAmount,
		},
		{
			name: "foreign currency without multi-currency",
			in:   ExpenseInput{Description: "x", Amount: 10, Currency: "usd", PayerID: "A", SplitBetween: splits("A", 10)},
			want: ErrCurrencyNotAllowed,
		},
		{
			name:   "foreign currency with multi-currency",
			mutate: func(g *Group) { g.AllowMultipleCurrencies = true },
			in:     ExpenseInput{Description: "x", Amount: 10, Currency: "usd", PayerID: "A", SplitBetween: splits("A", 10)},
			want:   nil,
		},
		{
			name:   "unknown currency",
			mutate: func(g *Group) { g.AllowMultipleCurrencies = true },
			in:     ExpenseInput{Description: "x", Amount: 10, Currency: "ABC", PayerID: "A", SplitBetween: splits("A", 10)},
			want:   ErrUnsupportedCurrency,
		},
		{
			name: "participant not a member",
			in:   ExpenseInput{Description: "x", Amount: 10, PayerID: "A", SplitBetween: splits("A", 5, "Z", 5)},
			want: ErrInvalidSplitParticipant,
		},
		{
			name:   "removed participant",
			mutate: func(g *Group) { g.Members[2].IsActive = false },
			in:     ExpenseInput{Description: "x", Amount: 10, PayerID: "A", SplitBetween: splits("A", 5, "C", 5)},
			want:   ErrInvalidSplitParticipant,
		},
		{
			name: "payer not a member",
			in:   ExpenseInput{Description: "x", Amount: 10, PayerID: "Z", SplitBetween: splits("A", 10)},
			want: ErrInvalidPayer,
		},
		{
			name: "duplicate participant",
			in:   ExpenseInput{Description: "x", Amount: 10, PayerID: "A", SplitBetween: splits("A", 5, "A", 5)},
			want: ErrInvalidSplit,
		},
		{
			name: "negative split",
			in: ExpenseInput{Description: "x", Amount: 10, PayerID: "A",
				SplitBetween: []SplitInput{{"A", 15}, {"B", -5}}},
			want: ErrInvalidSplit,
		},
		{
			name: "empty split",
			in:   ExpenseInput{Description: "x", Amount: 10, PayerID: "A"},
			want: ErrInvalidSplit,
		},
		{
			name:   "receipt required",
			mutate: func(g *Group) { g.RequireReceiptForExpenses = true },
			in:     ExpenseInput{Description: "x", Amount: 10, PayerID: "A", SplitBetween: splits("A", 10)},
			want:   ErrReceiptRequired,
		},
		{
			name:   "archived group",
			mutate: func(g *Group) { g.IsArchived = true },
			in:     ExpenseInput{Description: "x", Amount: 10, PayerID: "A", SplitBetween: splits("A", 10)},
			want:   ErrGroupArchived,
		},
		{
			name: "unknown category",
			in:   ExpenseInput{Description: "x", Amount: 10, PayerID: "A", SplitBetween: splits("A", 10), Category: "yachts"},
			want: ErrValidation,
		},
		{
			name: "missing description",
			in:   ExpenseInput{Amount: 10, PayerID: "A", SplitBetween: splits("A", 10)},
			want: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGroup(t)
			if tt.mutate != nil {
				tt.mutate(g)
			}

			_, err := g.AddExpense(tt.in, t0, RecalcDiscardSettled)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("AddExpense() error = %v, want nil", err)
				}
				if len(g.Expenses) != 1 {
					t.Errorf("expenses = %d, want 1", len(g.Expenses))
				}
				return
			}

			if !errors.Is(err, tt.want) {
				t.Fatalf("AddExpense() error = %v, want %v", err, tt.want)
			}
			if len(g.Expenses) != 0 || len(g.Debts) != 0 {
				t.Errorf("rejected expense mutated the group: %d expenses, %d debts", len(g.Expenses), len(g.Debts))
			}
			var ve *ValidationError
			if KindOf(err) == KindValidation && !errors.As(err, &ve) {
				t.Errorf("validation error %v should carry a field", err)
			}
		})
	}
}

func TestAddExpense_DenormalizedNames(t *testing.T) {
	g := newTestGroup(t)
	addExpense(t, g, "A", 30, splits("A", 10, "B", 10, "C", 10))

	g.FindMember("B").Name = "Robert"
	e := g.Expenses[0]
	if e.SplitBetween[1].Name != "Bob" {
		t.Errorf("split name = %q, want the name captured at write time", e.SplitBetween[1].Name)
	}
	if e.PaidBy.Name != "Alice" {
		t.Errorf("payer name = %q, want Alice", e.PaidBy.Name)
	}
}

func TestAddExpense_AutoSimplifyOff(t *testing.T) {
	g := newTestGroup(t)
	g.AutoSimplifyDebts = false
	addExpense(t, g, "A", 300, splits("A", 100, "B", 100, "C", 100))

	if len(g.Debts) != 0 {
		t.Fatalf("debts = %d, want 0 with auto-simplify off", len(g.Debts))
	}
	g.RecalculateDebts(t0, RecalcDiscardSettled)
	if len(g.Debts) != 2 {
		t.Errorf("debts after explicit recalculation = %d, want 2", len(g.Debts))
	}
}

func TestRecalculateDebts_Idempotent(t *testing.T) {
	g := newTestGroup(t)
	g.AllowMultipleCurrencies = true
	addExpense(t, g, "A", 300, splits("A", 100, "B", 100, "C", 100))
	addExpense(t, g, "C", 45, splits("A", 15, "B", 15, "C", 15))
	if _, err := g.AddExpense(ExpenseInput{
		Description: "taxi", Amount: 20, Currency: "USD", PayerID: "B",
		SplitBetween: splits("A", 10, "B", 10),
	}, t0, RecalcDiscardSettled); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	first := debtKeys(g.RecalculateDebts(t0, RecalcDiscardSettled))
	second := debtKeys(g.RecalculateDebts(t0, RecalcDiscardSettled))
	if len(first) != len(second) {
		t.Fatalf("recompute changed debt count: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("debt %d changed: %v vs %v", i, first[i], second[i])
		}
	}

	if got := g.DebtsInCurrency("usd"); len(got) != 1 || got[0].From.UserID != "A" || got[0].To.UserID != "B" {
		t.Errorf("USD debts = %+v, want A owes B", got)
	}
}

func TestRemoveMember_Guard(t *testing.T) {
	g := newTestGroup(t)
	addExpense(t, g, "A", 300, splits("A", 100, "B", 100, "C", 100))

	err := g.RemoveMember("C")
	if !errors.Is(err, ErrOutstandingDebt) {
		t.Fatalf("RemoveMember() error = %v, want ErrOutstandingDebt", err)
	}
	if KindOf(err) != KindPrecondition {
		t.Errorf("KindOf() = %v, want precondition", KindOf(err))
	}

	var debtID string
	for _, d := range g.Debts {
		if d.From.UserID == "C" {
			debtID = d.ID
		}
	}
	if _, err := g.SettleDebt(debtID, "A", t0); err != nil {
		t.Fatalf("SettleDebt failed: %v", err)
	}
	if err := g.RemoveMember("C"); err != nil {
		t.Fatalf("RemoveMember after settling failed: %v", err)
	}
	if g.IsActiveMember("C") {
		t.Error("C should be inactive")
	}
	if g.FindMember("C") == nil {
		t.Error("membership record should be kept")
	}

	if err := g.RemoveMember("C"); !errors.Is(err, ErrNotAMember) {
		t.Errorf("second RemoveMember() error = %v, want ErrNotAMember", err)
	}
}

func TestRemovedMemberStaysInLedger(t *testing.T) {
	g := newTestGroup(t)
	addExpense(t, g, "A", 20, splits("A", 10, "C", 10))
	if _, err := g.SettleDebt(g.Debts[0].ID, "C", t0); err != nil {
		t.Fatalf("SettleDebt failed: %v", err)
	}
	if err := g.RemoveMember("C"); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}

	// Discard-on-recompute: C's historical share reappears as a debt.
	addExpense(t, g, "B", 10, splits("A", 5, "B", 5))
	found := false
	for _, d := range g.Debts {
		if d.From.UserID == "C" && d.From.Name == "Charlie" {
			found = true
		}
	}
	if !found {
		t.Errorf("removed member's history should still produce a debt: %+v", g.Debts)
	}
}

func TestSettleDebt(t *testing.T) {
	g := newTestGroup(t)
	addExpense(t, g, "A", 300, splits("A", 100, "B", 100, "C", 100))
	debtID := g.Debts[0].ID

	d, err := g.SettleDebt(debtID, "B", t0)
	if err != nil {
		t.Fatalf("SettleDebt failed: %v", err)
	}
	if d.Status != DebtSettled || d.SettledBy != "B" || d.SettledAt == nil {
		t.Errorf("debt not settled: %+v", d)
	}

	if _, err := g.SettleDebt(debtID, "B", t0); !errors.Is(err, ErrAlreadySettled) {
		t.Errorf("second SettleDebt() error = %v, want ErrAlreadySettled", err)
	}
	if _, err := g.SettleDebt("debt_missing", "B", t0); !errors.Is(err, ErrDebtNotFound) {
		t.Errorf("SettleDebt(missing) error = %v, want ErrDebtNotFound", err)
	}
}

func TestSettleThenRecompute(t *testing.T) {
	setup := func(t *testing.T, mode RecalcMode) *Group {
		g := newTestGroup(t)
		addExpense(t, g, "A", 300, splits("A", 100, "B", 100, "C", 100))
		for _, d := range g.Debts {
			if d.From.UserID == "B" {
				if _, err := g.SettleDebt(d.ID, "A", t0); err != nil {
					t.Fatalf("SettleDebt failed: %v", err)
				}
			}
		}
		if _, err := g.AddExpense(ExpenseInput{
			Description: "snacks", Amount: 30, PayerID: "C", SplitBetween: splits("A", 10, "B", 10, "C", 10),
		}, t0, mode); err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}
		return g
	}

	t.Run("discard settled", func(t *testing.T) {
		g := setup(t, RecalcDiscardSettled)
		for _, d := range g.Debts {
			if d.Status == DebtSettled {
				t.Errorf("settled debt survived a rebuild: %+v", d)
			}
		}
		// Full ledger again: A +190, B -110, C -80
		got := debtKeys(g.Debts)
		want := []debtKey{{"B", "A", 110}, {"C", "A", 80}}
		for i := range want {
			if i >= len(got) || got[i] != want[i] {
				t.Fatalf("debts = %v, want %v", got, want)
			}
		}
	})

	t.Run("preserve settled", func(t *testing.T) {
		g := setup(t, RecalcPreserveSettled)
		settled := 0
		var pending []Debt
		for _, d := range g.Debts {
			switch d.Status {
			case DebtSettled:
				settled++
			case DebtPending:
				pending = append(pending, d)
			}
		}
		if settled != 1 {
			t.Errorf("settled debts = %d, want 1", settled)
		}
		// B paid 100 already: A +90, B -10, C -80
		got := debtKeys(pending)
		want := []debtKey{{"B", "A", 10}, {"C", "A", 80}}
		for i := range want {
			if i >= len(got) || got[i] != want[i] {
				t.Fatalf("pending debts = %v, want %v", got, want)
			}
		}
	})
}

func TestDisputeDebt(t *testing.T) {
	g := newTestGroup(t)
	addExpense(t, g, "A", 20, splits("A", 10, "B", 10))
	debtID := g.Debts[0].ID

	if _, err := g.DisputeDebt(debtID, "C"); !errors.Is(err, ErrForbidden) {
		t.Errorf("DisputeDebt by outsider error = %v, want ErrForbidden", err)
	}
	d, err := g.DisputeDebt(debtID, "B")
	if err != nil {
		t.Fatalf("DisputeDebt failed: %v", err)
	}
	if d.Status != DebtDisputed {
		t.Errorf("status = %s, want disputed", d.Status)
	}

	g.RecalculateDebts(t0, RecalcDiscardSettled)
	if g.Debts[0].Status != DebtPending {
		t.Errorf("rebuild should discard the dispute, got %s", g.Debts[0].Status)
	}
}

func TestCheckDeletable(t *testing.T) {
	g := newTestGroup(t)
	if err := g.CheckDeletable(); err != nil {
		t.Fatalf("empty group should be deletable: %v", err)
	}

	addExpense(t, g, "A", 20, splits("A", 10, "B", 10))
	if err := g.CheckDeletable(); !errors.Is(err, ErrOutstandingDebts) {
		t.Fatalf("CheckDeletable() error = %v, want ErrOutstandingDebts", err)
	}

	if _, err := g.SettleDebt(g.Debts[0].ID, "A", t0); err != nil {
		t.Fatalf("SettleDebt failed: %v", err)
	}
	if err := g.CheckDeletable(); err != nil {
		t.Errorf("CheckDeletable() after settling = %v, want nil", err)
	}
}

func TestInviteCode(t *testing.T) {
	g := newTestGroup(t)
	g.SetInviteCode("inv12345", t0.Add(time.Hour))

	if err := g.CheckInvite("INV12345", t0); err != nil {
		t.Errorf("CheckInvite() = %v, want nil", err)
	}
	if err := g.CheckInvite("inv12345", t0.Add(time.Hour)); !errors.Is(err, ErrInviteExpired) {
		t.Errorf("CheckInvite() at expiry = %v, want ErrInviteExpired", err)
	}
	if err := g.CheckInvite("OTHER123", t0); !errors.Is(err, ErrInvalidInvite) {
		t.Errorf("CheckInvite() wrong code = %v, want ErrInvalidInvite", err)
	}
}

func TestUpdateSettings(t *testing.T) {
	g := newTestGroup(t)
	addExpense(t, g, "A", 20, splits("A", 10, "B", 10))

	two := 2
	if err := g.UpdateSettings(Settings{MaxMembers: &two}); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("shrinking below active members error = %v, want ErrCapacityExceeded", err)
	}

	usd := "USD"
	if err := g.UpdateSettings(Settings{DefaultCurrency: &usd}); !errors.Is(err, ErrCurrencyNotAllowed) {
		t.Errorf("changing currency with IDR expenses error = %v, want ErrCurrencyNotAllowed", err)
	}

	title := "Bali trip"
	bad := 0
	if err := g.UpdateSettings(Settings{Title: &title, MaxMembers: &bad}); err == nil {
		t.Fatal("expected validation error")
	}
	if g.Title != "Trip" {
		t.Errorf("failed update partially applied: title = %q", g.Title)
	}

	yes := true
	if err := g.UpdateSettings(Settings{Title: &title, AllowMultipleCurrencies: &yes, DefaultCurrency: &usd}); err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	if g.Title != title || g.DefaultCurrency != "USD" || !g.AllowMultipleCurrencies {
		t.Errorf("settings not applied: %+v", g)
	}
}

func TestAddComment(t *testing.T) {
	g := newTestGroup(t)

	c, err := g.AddComment("B", "  who has the receipt?  ", t0)
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if c.Text != "who has the receipt?" || c.UserName != "Bob" {
		t.Errorf("comment = %+v", c)
	}

	if _, err := g.AddComment("Z", "hi", t0); !errors.Is(err, ErrNotAMember) {
		t.Errorf("AddComment by outsider error = %v, want ErrNotAMember", err)
	}
	if _, err := g.AddComment("B", "   ", t0); !errors.Is(err, ErrValidation) {
		t.Errorf("AddComment empty error = %v, want ErrValidation", err)
	}
}

func TestValidCode(t *testing.T) {
	tests := map[string]bool{
		"ABC123":    true,
		"ABCD1234":  true,
		"ABC12":     false,
		"ABCD12345": false,
		"abc123":    false,
		"ABC-12":    false,
	}
	for code, want := range tests {
		if got := ValidCode(code); got != want {
			t.Errorf("ValidCode(%q) = %v, want %v", code, got, want)
		}
	}
}

func TestClone(t *testing.T) {
	g := newTestGroup(t)
	addExpense(t, g, "A", 20, splits("A", 10, "B", 10))
	c := g.Clone()

	c.Members[0].Name = "changed"
	c.Expenses[0].SplitBetween[0].Amount = 99
	c.Debts[0].Status = DebtSettled

	if g.Members[0].Name == "changed" || g.Expenses[0].SplitBetween[0].Amount == 99 || g.Debts[0].Status == DebtSettled {
		t.Error("Clone shares state with the original")
	}
}
