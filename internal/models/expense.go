package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mmynk/splitledger/internal/id"
)

// SplitTolerance is the largest accepted gap between an expense amount and
// the sum of its splits.
const SplitTolerance = 0.01

// MaxExpenseDescriptionLength bounds Expense.Description.
const MaxExpenseDescriptionLength = 200

// Participant is a member reference with the name captured at write time.
type Participant struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// Split is one participant's share of an expense.
type Split struct {
	UserID string  `json:"user_id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Expense is one ledger entry. Names are denormalized at write time and
// never refreshed.
type Expense struct {
	ID           string      `json:"id"`
	Description  string      `json:"description"`
	Amount       float64     `json:"amount"`
	Currency     string      `json:"currency"`
	PaidBy       Participant `json:"paid_by"`
	SplitBetween []Split     `json:"split_between"`
	Category     Category    `json:"category"`
	ReceiptURL   string      `json:"receipt_url,omitempty"`
	Notes        string      `json:"notes,omitempty"`
	CreatedBy    string      `json:"created_by"`
	CreatedAt    time.Time   `json:"created_at"`
}

// SplitInput is a requested share; the name is filled from the member record.
type SplitInput struct {
	UserID string
	Amount float64
}

// ExpenseInput carries the fields of an expense to be added.
type ExpenseInput struct {
	Description  string
	Amount       float64
	Currency     string
	PayerID      string
	SplitBetween []SplitInput
	Category     string
	ReceiptURL   string
	Notes        string
	CreatedBy    string
}

// AddExpense validates in against the group, appends the expense and, when
// AutoSimplifyDebts is set, rebuilds the debt list. Nothing is modified if
// validation fails.
func (g *Group) AddExpense(in ExpenseInput, now time.Time, mode RecalcMode) (*Expense, error) {
	if err := g.CheckWritable(); err != nil {
		return nil, err
	}
	expense, err := g.buildExpense(in, now)
	if err != nil {
		return nil, err
	}

	g.Expenses = append(g.Expenses, expense)
	if g.AutoSimplifyDebts {
		g.RecalculateDebts(now, mode)
	}
	return &g.Expenses[len(g.Expenses)-1], nil
}

func (g *Group) buildExpense(in ExpenseInput, now time.Time) (Expense, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return Expense{}, invalid(ErrValidation, "description", "description is required")
	}
	if len(description) > MaxExpenseDescriptionLength {
		return Expense{}, invalid(ErrValidation, "description", "must be at most %d characters", MaxExpenseDescriptionLength)
	}

	if in.Amount <= 0 || math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
		return Expense{}, invalid(ErrInvalidAmount, "amount", "got %v", in.Amount)
	}

	currency := NormalizeCurrency(in.Currency)
	if currency == "" {
		currency = g.DefaultCurrency
	}
	if !IsSupportedCurrency(currency) {
		return Expense{}, invalid(ErrUnsupportedCurrency, "currency", "%q is not supported", in.Currency)
	}
	if !g.AllowMultipleCurrencies && currency != g.DefaultCurrency {
		return Expense{}, invalid(ErrCurrencyNotAllowed, "currency", "group uses %s, got %s", g.DefaultCurrency, currency)
	}

	payer := g.ActiveMember(in.PayerID)
	if payer == nil {
		return Expense{}, invalid(ErrInvalidPayer, "paid_by", "%q", in.PayerID)
	}

	splits, err := g.buildSplits(in.SplitBetween)
	if err != nil {
		return Expense{}, err
	}

	var sum float64
	for _, s := range splits {
		sum += s.Amount
	}
	if math.Abs(sum-in.Amount) > SplitTolerance+1e-9 {
		return Expense{}, invalid(ErrSplitMismatch, "split_between", "splits sum to %.2f, amount is %.2f", sum, in.Amount)
	}

	category, ok := ParseCategory(in.Category)
	if !ok {
		return Expense{}, invalid(ErrValidation, "category", "unknown category %q", in.Category)
	}

	receipt := strings.TrimSpace(in.ReceiptURL)
	if g.RequireReceiptForExpenses && receipt == "" {
		return Expense{}, invalid(ErrReceiptRequired, "receipt_url", "receipt is required")
	}

	return Expense{
		ID:           id.New(id.PrefixExpense),
		Description:  description,
		Amount:       in.Amount,
		Currency:     currency,
		PaidBy:       Participant{UserID: payer.UserID, Name: payer.Name},
		SplitBetween: splits,
		Category:     category,
		ReceiptURL:   receipt,
		Notes:        strings.TrimSpace(in.Notes),
		CreatedBy:    in.CreatedBy,
		CreatedAt:    now,
	}, nil
}

func (g *Group) buildSplits(inputs []SplitInput) ([]Split, error) {
	if len(inputs) == 0 {
		return nil, invalid(ErrInvalidSplit, "split_between", "at least one participant is required")
	}

	seen := make(map[string]bool, len(inputs))
	splits := make([]Split, 0, len(inputs))
	for i, in := range inputs {
		field := fmt.Sprintf("split_between[%d]", i)
		if in.Amount < 0 || math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
			return nil, invalid(ErrInvalidSplit, field, "amount must be zero or positive, got %v", in.Amount)
		}
		if seen[in.UserID] {
			return nil, invalid(ErrInvalidSplit, field, "%q appears more than once", in.UserID)
		}
		seen[in.UserID] = true

		m := g.ActiveMember(in.UserID)
		if m == nil {
			return nil, invalid(ErrInvalidSplitParticipant, field, "%q", in.UserID)
		}
		splits = append(splits, Split{UserID: m.UserID, Name: m.Name, Amount: in.Amount})
	}
	return splits, nil
}

// ExpensesInCurrency returns expenses in currency, or all when currency is empty.
func (g *Group) ExpensesInCurrency(currency string) []Expense {
	currency = NormalizeCurrency(currency)
	if currency == "" {
		return append([]Expense(nil), g.Expenses...)
	}
	var out []Expense
	for _, e := range g.Expenses {
		if e.Currency == currency {
			out = append(out, e)
		}
	}
	return out
}
