package service

import (
	"github.com/mmynk/splitledger/internal/groups"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/api"
)

func toAPIGroup(g *models.Group) *api.Group {
	out := &api.Group{
		ID:                        g.ID,
		Code:                      g.Code,
		Title:                     g.Title,
		Description:               g.Description,
		OwnerID:                   g.OwnerID,
		DefaultCurrency:           g.DefaultCurrency,
		AllowMultipleCurrencies:   g.AllowMultipleCurrencies,
		AutoSimplifyDebts:         g.AutoSimplifyDebts,
		RequireReceiptForExpenses: g.RequireReceiptForExpenses,
		MaxMembers:                g.MaxMembers,
		IsArchived:                g.IsArchived,
		InviteCode:                g.InviteCode,
		Members:                   make([]api.Member, len(g.Members)),
		Expenses:                  toAPIExpenses(g.Expenses),
		Debts:                     toAPIDebts(g.Debts),
		Comments:                  make([]api.Comment, len(g.Comments)),
		Version:                   g.Version,
		CreatedAt:                 g.CreatedAt,
		UpdatedAt:                 g.UpdatedAt,
	}
	if g.InviteCode != "" {
		expires := g.InviteCodeExpiresAt
		out.InviteCodeExpiresAt = &expires
	}
	for i, m := range g.Members {
		out.Members[i] = api.Member{
			UserID:   m.UserID,
			Name:     m.Name,
			Role:     string(m.Role),
			JoinedAt: m.JoinedAt,
			IsActive: m.IsActive,
		}
	}
	for i, c := range g.Comments {
		out.Comments[i] = toAPIComment(c)
	}
	return out
}

func toAPIExpenses(expenses []models.Expense) []api.Expense {
	out := make([]api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e)
	}
	return out
}

func toAPIExpense(e models.Expense) api.Expense {
	splits := make([]api.Split, len(e.SplitBetween))
	for i, s := range e.SplitBetween {
		splits[i] = api.Split(s)
	}
	return api.Expense{
		ID:           e.ID,
		Description:  e.Description,
		Amount:       e.Amount,
		Currency:     e.Currency,
		PaidBy:       api.Participant(e.PaidBy),
		SplitBetween: splits,
		Category:     string(e.Category),
		ReceiptURL:   e.ReceiptURL,
		Notes:        e.Notes,
		CreatedBy:    e.CreatedBy,
		CreatedAt:    e.CreatedAt,
	}
}

func toAPIDebts(debts []models.Debt) []api.Debt {
	out := make([]api.Debt, len(debts))
	for i, d := range debts {
		out[i] = toAPIDebt(d)
	}
	return out
}

func toAPIDebt(d models.Debt) api.Debt {
	return api.Debt{
		ID:        d.ID,
		From:      api.Participant(d.From),
		To:        api.Participant(d.To),
		Amount:    d.Amount,
		Currency:  d.Currency,
		Status:    string(d.Status),
		SettledBy: d.SettledBy,
		SettledAt: d.SettledAt,
		CreatedAt: d.CreatedAt,
	}
}

func toAPIComment(c models.Comment) api.Comment {
	return api.Comment(c)
}

func toAPIBalances(balances []groups.Balance) []api.Balance {
	out := make([]api.Balance, len(balances))
	for i, b := range balances {
		out[i] = api.Balance{
			UserID:     b.UserID,
			Name:       b.Name,
			Currency:   b.Currency,
			TotalPaid:  b.TotalPaid,
			TotalOwed:  b.TotalOwed,
			NetBalance: b.NetBalance,
		}
	}
	return out
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}
