package mongo

import (
	"time"

	"github.com/mmynk/splitledger/internal/models"
)

// ==================== Group models ====================

type groupModel struct {
	ID                        string         `bson:"_id"`
	Code                      string         `bson:"code"`
	Title                     string         `bson:"title"`
	Description               string         `bson:"description,omitempty"`
	OwnerID                   string         `bson:"owner_id"`
	DefaultCurrency           string         `bson:"default_currency"`
	AllowMultipleCurrencies   bool           `bson:"allow_multiple_currencies"`
	AutoSimplifyDebts         bool           `bson:"auto_simplify_debts"`
	RequireReceiptForExpenses bool           `bson:"require_receipt_for_expenses"`
	MaxMembers                int            `bson:"max_members"`
	IsActive                  bool           `bson:"is_active"`
	IsArchived                bool           `bson:"is_archived"`
	InviteCode                string         `bson:"invite_code,omitempty"`
	InviteCodeExpiresAt       time.Time      `bson:"invite_code_expires_at,omitempty"`
	Members                   []memberModel  `bson:"members"`
	Expenses                  []expenseModel `bson:"expenses"`
	Debts                     []debtModel    `bson:"debts"`
	Comments                  []commentModel `bson:"comments"`
	Version                   int64          `bson:"version"`
	CreatedAt                 time.Time      `bson:"created_at"`
	UpdatedAt                 time.Time      `bson:"updated_at"`
}

type memberModel struct {
	UserID   string    `bson:"user_id"`
	Name     string    `bson:"name"`
	Role     string    `bson:"role"`
	JoinedAt time.Time `bson:"joined_at"`
	IsActive bool      `bson:"is_active"`
}

type participantModel struct {
	UserID string `bson:"user_id"`
	Name   string `bson:"name"`
}

type splitModel struct {
	UserID string  `bson:"user_id"`
	Name   string  `bson:"name"`
	Amount float64 `bson:"amount"`
}

type expenseModel struct {
	ID           string           `bson:"id"`
	Description  string           `bson:"description"`
	Amount       float64          `bson:"amount"`
	Currency     string           `bson:"currency"`
	PaidBy       participantModel `bson:"paid_by"`
	SplitBetween []splitModel     `bson:"split_between"`
	Category     string           `bson:"category"`
	ReceiptURL   string           `bson:"receipt_url,omitempty"`
	Notes        string           `bson:"notes,omitempty"`
	CreatedBy    string           `bson:"created_by"`
	CreatedAt    time.Time        `bson:"created_at"`
}

type debtModel struct {
	ID        string           `bson:"id"`
	From      participantModel `bson:"from"`
	To        participantModel `bson:"to"`
	Amount    float64          `bson:"amount"`
	Currency  string           `bson:"currency"`
	Status    string           `bson:"status"`
	SettledBy string           `bson:"settled_by,omitempty"`
	SettledAt *time.Time       `bson:"settled_at,omitempty"`
	CreatedAt time.Time        `bson:"created_at"`
}

type commentModel struct {
	ID        string    `bson:"id"`
	UserID    string    `bson:"user_id"`
	UserName  string    `bson:"user_name"`
	Text      string    `bson:"text"`
	CreatedAt time.Time `bson:"created_at"`
}

func toGroupModel(g *models.Group) *groupModel {
	m := &groupModel{
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
		IsActive:                  g.IsActive,
		IsArchived:                g.IsArchived,
		InviteCode:                g.InviteCode,
		InviteCodeExpiresAt:       g.InviteCodeExpiresAt,
		Members:                   make([]memberModel, len(g.Members)),
		Expenses:                  make([]expenseModel, len(g.Expenses)),
		Debts:                     make([]debtModel, len(g.Debts)),
		Comments:                  make([]commentModel, len(g.Comments)),
		Version:                   g.Version,
		CreatedAt:                 g.CreatedAt,
		UpdatedAt:                 g.UpdatedAt,
	}
	for i, mem := range g.Members {
		m.Members[i] = memberModel{
			UserID:   mem.UserID,
			Name:     mem.Name,
			Role:     string(mem.Role),
			JoinedAt: mem.JoinedAt,
			IsActive: mem.IsActive,
		}
	}
	for i, e := range g.Expenses {
		splits := make([]splitModel, len(e.SplitBetween))
		for j, s := range e.SplitBetween {
			splits[j] = splitModel(s)
		}
		m.Expenses[i] = expenseModel{
			ID:           e.ID,
			Description:  e.Description,
			Amount:       e.Amount,
			Currency:     e.Currency,
			PaidBy:       participantModel(e.PaidBy),
			SplitBetween: splits,
			Category:     string(e.Category),
			ReceiptURL:   e.ReceiptURL,
			Notes:        e.Notes,
			CreatedBy:    e.CreatedBy,
			CreatedAt:    e.CreatedAt,
		}
	}
	for i, d := range g.Debts {
		m.Debts[i] = debtModel{
			ID:        d.ID,
			From:      participantModel(d.From),
			To:        participantModel(d.To),
			Amount:    d.Amount,
			Currency:  d.Currency,
			Status:    string(d.Status),
			SettledBy: d.SettledBy,
			SettledAt: d.SettledAt,
			CreatedAt: d.CreatedAt,
		}
	}
	for i, c := range g.Comments {
		m.Comments[i] = commentModel(c)
	}
	return m
}

func fromGroupModel(m *groupModel) *models.Group {
	g := &models.Group{
		ID:                        m.ID,
		Code:                      m.Code,
		Title:                     m.Title,
		Description:               m.Description,
		OwnerID:                   m.OwnerID,
		DefaultCurrency:           m.DefaultCurrency,
		AllowMultipleCurrencies:   m.AllowMultipleCurrencies,
		AutoSimplifyDebts:         m.AutoSimplifyDebts,
		RequireReceiptForExpenses: m.RequireReceiptForExpenses,
		MaxMembers:                m.MaxMembers,
		IsActive:                  m.IsActive,
		IsArchived:                m.IsArchived,
		InviteCode:                m.InviteCode,
		InviteCodeExpiresAt:       m.InviteCodeExpiresAt,
		Members:                   make([]models.Member, len(m.Members)),
		Expenses:                  make([]models.Expense, len(m.Expenses)),
		Debts:                     make([]models.Debt, len(m.Debts)),
		Comments:                  make([]models.Comment, len(m.Comments)),
		Version:                   m.Version,
		CreatedAt:                 m.CreatedAt,
		UpdatedAt:                 m.UpdatedAt,
	}
	for i, mem := range m.Members {
		g.Members[i] = models.Member{
			UserID:   mem.UserID,
			Name:     mem.Name,
			Role:     models.Role(mem.Role),
			JoinedAt: mem.JoinedAt,
			IsActive: mem.IsActive,
		}
	}
	for i, e := range m.Expenses {
		splits := make([]models.Split, len(e.SplitBetween))
		for j, s := range e.SplitBetween {
			splits[j] = models.Split(s)
		}
		g.Expenses[i] = models.Expense{
			ID:           e.ID,
			Description:  e.Description,
			Amount:       e.Amount,
			Currency:     e.Currency,
			PaidBy:       models.Participant(e.PaidBy),
			SplitBetween: splits,
			Category:     models.Category(e.Category),
			ReceiptURL:   e.ReceiptURL,
			Notes:        e.Notes,
			CreatedBy:    e.CreatedBy,
			CreatedAt:    e.CreatedAt,
		}
	}
	for i, d := range m.Debts {
		g.Debts[i] = models.Debt{
			ID:        d.ID,
			From:      models.Participant(d.From),
			To:        models.Participant(d.To),
			Amount:    d.Amount,
			Currency:  d.Currency,
			Status:    models.DebtStatus(d.Status),
			SettledBy: d.SettledBy,
			SettledAt: d.SettledAt,
			CreatedAt: d.CreatedAt,
		}
	}
	for i, c := range m.Comments {
		g.Comments[i] = models.Comment(c)
	}
	return g
}

// ==================== User models ====================

type userModel struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	DisplayName  string    `bson:"display_name"`
	PasswordHash string    `bson:"password_hash"`
	Groups       []string  `bson:"groups"`
	Friends      []string  `bson:"friends"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func toUserModel(u *models.User) *userModel {
	m := &userModel{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		PasswordHash: u.PasswordHash,
		Groups:       u.Groups,
		Friends:      u.Friends,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if m.Groups == nil {
		m.Groups = []string{}
	}
	if m.Friends == nil {
		m.Friends = []string{}
	}
	return m
}

func fromUserModel(m *userModel) *models.User {
	return &models.User{
		ID:           m.ID,
		Email:        m.Email,
		DisplayName:  m.DisplayName,
		PasswordHash: m.PasswordHash,
		Groups:       m.Groups,
		Friends:      m.Friends,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
