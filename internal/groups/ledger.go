package groups

import (
	"context"
	"log/slog"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/models"
)

// AddExpense records an expense created by actor. The payer defaults to
// actor when in.PayerID is empty.
func (e *Engine) AddExpense(ctx context.Context, actor Actor, groupID string, in models.ExpenseInput) (*models.Group, *models.Expense, error) {
	if in.PayerID == "" {
		in.PayerID = actor.UserID
	}
	in.CreatedBy = actor.UserID

	var expense models.Expense
	g, err := e.mutate(ctx, groupID, func(g *models.Group) error {
		if err := requireMember(g, actor); err != nil {
			return err
		}
		added, err := g.AddExpense(in, e.now(), e.recalc)
		if err != nil {
			return err
		}
		expense = *added
		return nil
	})
	if err != nil {
		return nil, nil, e.observe("add_expense", err)
	}
	e.observe("add_expense", nil)

	slog.InfoContext(ctx, "Expense added",
		"group_id", g.ID,
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"currency", expense.Currency,
		"debts", len(g.Debts),
	)
	e.publish(ctx, events.ExpenseAdded, g, actor, map[string]any{
		"expense_id": expense.ID,
		"amount":     expense.Amount,
		"currency":   expense.Currency,
	})
	return g, &expense, nil
}

// ListExpenses returns the group's expenses in currency, or all of them when
// currency is empty.
func (e *Engine) ListExpenses(ctx context.Context, actor Actor, groupID, currency string) ([]models.Expense, error) {
	g, err := e.view(ctx, actor, groupID)
	if err != nil {
		return nil, err
	}
	return g.ExpensesInCurrency(currency), nil
}

// GetDebts returns the group's debts in currency, or all of them when
// currency is empty.
func (e *Engine) GetDebts(ctx context.Context, actor Actor, groupID, currency string) ([]models.Debt, error) {
	g, err := e.view(ctx, actor, groupID)
	if err != nil {
		return nil, err
	}
	return g.DebtsInCurrency(currency), nil
}

// Balance is a member's position in one currency, with the member's name.
type Balance struct {
	calculator.MemberBalance
	Name string
}

// GetBalances returns per-member balances in currency, or for every
// currency in use when currency is empty.
func (e *Engine) GetBalances(ctx context.Context, actor Actor, groupID, currency string) ([]Balance, error) {
	g, err := e.view(ctx, actor, groupID)
	if err != nil {
		return nil, err
	}
	raw := g.Balances(currency, e.recalc)
	out := make([]Balance, len(raw))
	for i, b := range raw {
		out[i] = Balance{MemberBalance: b, Name: b.UserID}
		if m := g.FindMember(b.UserID); m != nil {
			out[i].Name = m.Name
		}
	}
	return out, nil
}

// RecalculateDebts rebuilds the debt list from the full ledger.
func (e *Engine) RecalculateDebts(ctx context.Context, actor Actor, groupID string) (*models.Group, error) {
	g, err := e.mutate(ctx, groupID, func(g *models.Group) error {
		if err := requireMember(g, actor); err != nil {
			return err
		}
		if err := g.CheckWritable(); err != nil {
			return err
		}
		g.RecalculateDebts(e.now(), e.recalc)
		return nil
	})
	if err != nil {
		return nil, e.observe("recalculate_debts", err)
	}
	e.observe("recalculate_debts", nil)

	slog.InfoContext(ctx, "Debts recalculated", "group_id", g.ID, "debts", len(g.Debts))
	e.publish(ctx, events.DebtsRebuilt, g, actor, map[string]any{"debts": len(g.Debts)})
	return g, nil
}

// SettleDebt marks a pending debt settled by actor.
func (e *Engine) SettleDebt(ctx context.Context, actor Actor, groupID, debtID string) (*models.Group, *models.Debt, error) {
	var debt models.Debt
	g, err := e.mutate(ctx, groupID, func(g *models.Group) error {
		if err := requireMember(g, actor); err != nil {
			return err
		}
		settled, err := g.SettleDebt(debtID, actor.UserID, e.now())
		if err != nil {
			return err
		}
		debt = *settled
		return nil
	})
	if err != nil {
		return nil, nil, e.observe("settle_debt", err)
	}
	e.observe("settle_debt", nil)

	slog.InfoContext(ctx, "Debt settled", "group_id", g.ID, "debt_id", debt.ID, "settled_by", actor.UserID)
	e.publish(ctx, events.DebtSettled, g, actor, map[string]any{
		"debt_id":  debt.ID,
		"from":     debt.From.UserID,
		"to":       debt.To.UserID,
		"amount":   debt.Amount,
		"currency": debt.Currency,
	})
	return g, &debt, nil
}

// DisputeDebt marks a pending debt disputed. Only its debtor or creditor may.
func (e *Engine) DisputeDebt(ctx context.Context, actor Actor, groupID, debtID string) (*models.Group, *models.Debt, error) {
	var debt models.Debt
	g, err := e.mutate(ctx, groupID, func(g *models.Group) error {
		if err := requireMember(g, actor); err != nil {
			return err
		}
		disputed, err := g.DisputeDebt(debtID, actor.UserID)
		if err != nil {
			return err
		}
		debt = *disputed
		return nil
	})
	if err != nil {
		return nil, nil, e.observe("dispute_debt", err)
	}
	e.observe("dispute_debt", nil)

	slog.InfoContext(ctx, "Debt disputed", "group_id", g.ID, "debt_id", debt.ID, "disputed_by", actor.UserID)
	e.publish(ctx, events.DebtDisputed, g, actor, map[string]any{"debt_id": debt.ID})
	return g, &debt, nil
}

// AddComment appends a comment from actor to the group's thread.
func (e *Engine) AddComment(ctx context.Context, actor Actor, groupID, text string) (*models.Comment, error) {
	var comment models.Comment
	g, err := e.mutate(ctx, groupID, func(g *models.Group) error {
		added, err := g.AddComment(actor.UserID, text, e.now())
		if err != nil {
			return err
		}
		comment = *added
		return nil
	})
	if err != nil {
		return nil, e.observe("add_comment", err)
	}
	e.observe("add_comment", nil)

	e.publish(ctx, events.CommentAdded, g, actor, map[string]any{"comment_id": comment.ID})
	return &comment, nil
}
