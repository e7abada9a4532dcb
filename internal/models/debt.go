package models

import (
	"fmt"
	"time"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/id"
)

// DebtStatus is the lifecycle state of a debt.
type DebtStatus string

const (
	DebtPending  DebtStatus = "pending"
	DebtSettled  DebtStatus = "settled"
	DebtDisputed DebtStatus = "disputed"
)

// Debt is one simplified pairwise transfer. Debts are derived from the
// expense ledger and rebuilt from scratch on recalculation.
type Debt struct {
	ID        string      `json:"id"`
	From      Participant `json:"from"`
	To        Participant `json:"to"`
	Amount    float64     `json:"amount"`
	Currency  string      `json:"currency"`
	Status    DebtStatus  `json:"status"`
	SettledBy string      `json:"settled_by,omitempty"`
	SettledAt *time.Time  `json:"settled_at,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// RecalcMode selects what a rebuild does with settled debts.
type RecalcMode int

const (
	// RecalcDiscardSettled drops every prior debt, settled or not, and
	// derives debts from expenses alone.
	RecalcDiscardSettled RecalcMode = iota

	// RecalcPreserveSettled keeps settled debts and counts them as payments
	// from debtor to creditor, so settling survives later rebuilds.
	RecalcPreserveSettled
)

// RecalculateDebts replaces the debt list with a freshly simplified one.
func (g *Group) RecalculateDebts(now time.Time, mode RecalcMode) []Debt {
	g.Debts = rebuildDebts(g, now, mode)
	return g.Debts
}

// rebuildDebts is the single place where prior debt state meets the
// simplifier. Under RecalcDiscardSettled a settle-then-add-expense sequence
// loses the settlement record.
func rebuildDebts(g *Group, now time.Time, mode RecalcMode) []Debt {
	var kept []Debt
	var settlements []calculator.Transfer
	if mode == RecalcPreserveSettled {
		for _, d := range g.Debts {
			if d.Status != DebtSettled {
				continue
			}
			kept = append(kept, d)
			settlements = append(settlements, calculator.Transfer{
				From:     d.From.UserID,
				To:       d.To.UserID,
				Amount:   d.Amount,
				Currency: d.Currency,
			})
		}
	}

	transfers := calculator.SimplifyDebts(g.ledgerEntries(), settlements, g.MemberIDs(), g.DefaultCurrency)

	debts := make([]Debt, 0, len(kept)+len(transfers))
	debts = append(debts, kept...)
	for _, t := range transfers {
		debts = append(debts, Debt{
			ID:        id.New(id.PrefixDebt),
			From:      Participant{UserID: t.From, Name: g.memberName(t.From)},
			To:        Participant{UserID: t.To, Name: g.memberName(t.To)},
			Amount:    t.Amount,
			Currency:  t.Currency,
			Status:    DebtPending,
			CreatedAt: now,
		})
	}
	return debts
}

func (g *Group) ledgerEntries() []calculator.Entry {
	entries := make([]calculator.Entry, len(g.Expenses))
	for i, e := range g.Expenses {
		shares := make([]calculator.Share, len(e.SplitBetween))
		for j, s := range e.SplitBetween {
			shares[j] = calculator.Share{UserID: s.UserID, Amount: s.Amount}
		}
		entries[i] = calculator.Entry{
			Currency: e.Currency,
			PayerID:  e.PaidBy.UserID,
			Amount:   e.Amount,
			Shares:   shares,
		}
	}
	return entries
}

// Balances returns per-member balances for currency, or for every currency
// in use when currency is empty. Settled debts count as payments only under
// RecalcPreserveSettled, matching what a rebuild would see.
func (g *Group) Balances(currency string, mode RecalcMode) []calculator.MemberBalance {
	entries := g.ledgerEntries()
	var settlements []calculator.Transfer
	if mode == RecalcPreserveSettled {
		for _, d := range g.Debts {
			if d.Status == DebtSettled {
				settlements = append(settlements, calculator.Transfer{
					From: d.From.UserID, To: d.To.UserID, Amount: d.Amount, Currency: d.Currency,
				})
			}
		}
	}

	currencies := calculator.Currencies(entries, settlements, g.DefaultCurrency)
	if c := NormalizeCurrency(currency); c != "" {
		currencies = []string{c}
	}

	var out []calculator.MemberBalance
	for _, c := range currencies {
		out = append(out, calculator.CalculateBalances(entries, settlements, g.MemberIDs(), c)...)
	}
	return out
}

// FindDebt returns the debt with debtID, or nil.
func (g *Group) FindDebt(debtID string) *Debt {
	for i := range g.Debts {
		if g.Debts[i].ID == debtID {
			return &g.Debts[i]
		}
	}
	return nil
}

// SettleDebt marks a pending debt settled by actorID. The simplifier is not
// re-run.
func (g *Group) SettleDebt(debtID, actorID string, now time.Time) (*Debt, error) {
	d := g.FindDebt(debtID)
	if d == nil {
		return nil, fmt.Errorf("%w: %s", ErrDebtNotFound, debtID)
	}
	if d.Status != DebtPending {
		return nil, fmt.Errorf("%w: %s is %s", ErrAlreadySettled, debtID, d.Status)
	}
	d.Status = DebtSettled
	d.SettledBy = actorID
	settledAt := now
	d.SettledAt = &settledAt
	return d, nil
}

// DisputeDebt marks a pending debt disputed. Only the two parties may do so.
func (g *Group) DisputeDebt(debtID, actorID string) (*Debt, error) {
	d := g.FindDebt(debtID)
	if d == nil {
		return nil, fmt.Errorf("%w: %s", ErrDebtNotFound, debtID)
	}
	if actorID != d.From.UserID && actorID != d.To.UserID {
		return nil, fmt.Errorf("%w: only the debtor or creditor can dispute %s", ErrForbidden, debtID)
	}
	if d.Status != DebtPending {
		return nil, fmt.Errorf("%w: %s is %s", ErrAlreadySettled, debtID, d.Status)
	}
	d.Status = DebtDisputed
	return d, nil
}

// PendingDebts returns every debt still pending.
func (g *Group) PendingDebts() []Debt {
	var out []Debt
	for _, d := range g.Debts {
		if d.Status == DebtPending {
			out = append(out, d)
		}
	}
	return out
}

// PendingDebtsFor returns pending debts with userID on either side.
func (g *Group) PendingDebtsFor(userID string) []Debt {
	var out []Debt
	for _, d := range g.Debts {
		if d.Status == DebtPending && (d.From.UserID == userID || d.To.UserID == userID) {
			out = append(out, d)
		}
	}
	return out
}

// DebtsInCurrency returns debts in currency, or all when currency is empty.
func (g *Group) DebtsInCurrency(currency string) []Debt {
	currency = NormalizeCurrency(currency)
	if currency == "" {
		return append([]Debt(nil), g.Debts...)
	}
	var out []Debt
	for _, d := range g.Debts {
		if d.Currency == currency {
			out = append(out, d)
		}
	}
	return out
}
