package models

import (
	"fmt"
	"strings"
	"time"
)

// Group limits.
const (
	MinMembersLimit      = 2
	MaxMembersLimit      = 100
	DefaultMaxMembers    = 50
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

// Group is the shared-expense aggregate: membership, the expense ledger and
// the debts derived from it. It is persisted and locked as one document;
// every invariant is enforced by its methods.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Code is the short join code, stored upper-case and matched
	// case-insensitively.
	Code string `json:"code"`

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// OwnerID is the user who created the group.
	OwnerID string `json:"owner_id"`

	DefaultCurrency           string `json:"default_currency"`
	AllowMultipleCurrencies   bool   `json:"allow_multiple_currencies"`
	AutoSimplifyDebts         bool   `json:"auto_simplify_debts"`
	RequireReceiptForExpenses bool   `json:"require_receipt_for_expenses"`
	MaxMembers                int    `json:"max_members"`

	IsActive   bool `json:"is_active"`
	IsArchived bool `json:"is_archived"`

	// InviteCode is empty when no invite has been generated.
	InviteCode          string    `json:"invite_code,omitempty"`
	InviteCodeExpiresAt time.Time `json:"invite_code_expires_at,omitempty"`

	Members  []Member  `json:"members"`
	Expenses []Expense `json:"expenses"`
	Debts    []Debt    `json:"debts"`
	Comments []Comment `json:"comments"`

	// Version is bumped by the store on every successful update and checked
	// on write for optimistic concurrency.
	Version int64 `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GroupParams holds the creator-supplied fields for a new group.
type GroupParams struct {
	ID        string
	Code      string
	OwnerID   string
	OwnerName string

	Title           string
	Description     string
	DefaultCurrency string
	MaxMembers      int

	AllowMultipleCurrencies   bool
	RequireReceiptForExpenses bool
	// AutoSimplifyDebts defaults to true when nil.
	AutoSimplifyDebts *bool
}

// NewGroup validates p and returns a group whose only member is the owner,
// as admin.
func NewGroup(p GroupParams, now time.Time) (*Group, error) {
	title, err := validateTitle(p.Title)
	if err != nil {
		return nil, err
	}
	if err := validateDescription(p.Description); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.OwnerID) == "" {
		return nil, invalid(ErrValidation, "owner_id", "owner is required")
	}

	currency := NormalizeCurrency(p.DefaultCurrency)
	if currency == "" {
		currency = DefaultCurrency
	}
	if !IsSupportedCurrency(currency) {
		return nil, invalid(ErrUnsupportedCurrency, "default_currency", "%q is not supported", p.DefaultCurrency)
	}

	maxMembers := p.MaxMembers
	if maxMembers == 0 {
		maxMembers = DefaultMaxMembers
	}
	if err := validateMaxMembers(maxMembers); err != nil {
		return nil, err
	}

	autoSimplify := true
	if p.AutoSimplifyDebts != nil {
		autoSimplify = *p.AutoSimplifyDebts
	}

	g := &Group{
		ID:                        p.ID,
		Code:                      NormalizeCode(p.Code),
		Title:                     title,
		Description:               strings.TrimSpace(p.Description),
		OwnerID:                   p.OwnerID,
		DefaultCurrency:           currency,
		AllowMultipleCurrencies:   p.AllowMultipleCurrencies,
		AutoSimplifyDebts:         autoSimplify,
		RequireReceiptForExpenses: p.RequireReceiptForExpenses,
		MaxMembers:                maxMembers,
		IsActive:                  true,
		Members:                   []Member{},
		Expenses:                  []Expense{},
		Debts:                     []Debt{},
		Comments:                  []Comment{},
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}
	if _, err := g.AddMember(p.OwnerID, p.OwnerName, RoleAdmin, now); err != nil {
		return nil, err
	}
	return g, nil
}

// NormalizeCode upper-cases and trims a group or invite code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCode reports whether code (already normalized) is 6–8 uppercase
// alphanumerics.
func ValidCode(code string) bool {
	if len(code) < 6 || len(code) > 8 {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// Settings is a partial update of group settings; nil fields are left alone.
type Settings struct {
	Title                     *string
	Description               *string
	DefaultCurrency           *string
	AllowMultipleCurrencies   *bool
	AutoSimplifyDebts         *bool
	RequireReceiptForExpenses *bool
	MaxMembers                *int
	IsArchived                *bool
}

// UpdateSettings validates every field of s before applying any of them.
func (g *Group) UpdateSettings(s Settings) error {
	next := *g

	if s.Title != nil {
		title, err := validateTitle(*s.Title)
		if err != nil {
			return err
		}
		next.Title = title
	}
	if s.Description != nil {
		if err := validateDescription(*s.Description); err != nil {
			return err
		}
		next.Description = strings.TrimSpace(*s.Description)
	}
	if s.AllowMultipleCurrencies != nil {
		next.AllowMultipleCurrencies = *s.AllowMultipleCurrencies
	}
	if s.DefaultCurrency != nil {
		currency := NormalizeCurrency(*s.DefaultCurrency)
		if !IsSupportedCurrency(currency) {
			return invalid(ErrUnsupportedCurrency, "default_currency", "%q is not supported", *s.DefaultCurrency)
		}
		next.DefaultCurrency = currency
	}
	if !next.AllowMultipleCurrencies {
		for _, e := range g.Expenses {
			if e.Currency != next.DefaultCurrency {
				return invalid(ErrCurrencyNotAllowed, "default_currency",
					"expense %s is in %s; enable multiple currencies first", e.ID, e.Currency)
			}
		}
	}
	if s.AutoSimplifyDebts != nil {
		next.AutoSimplifyDebts = *s.AutoSimplifyDebts
	}
	if s.RequireReceiptForExpenses != nil {
		next.RequireReceiptForExpenses = *s.RequireReceiptForExpenses
	}
	if s.MaxMembers != nil {
		if err := validateMaxMembers(*s.MaxMembers); err != nil {
			return err
		}
		if active := g.ActiveMemberCount(); *s.MaxMembers < active {
			return fmt.Errorf("%w: max_members %d is below the %d active members", ErrCapacityExceeded, *s.MaxMembers, active)
		}
		next.MaxMembers = *s.MaxMembers
	}
	if s.IsArchived != nil {
		next.IsArchived = *s.IsArchived
	}

	*g = next
	return nil
}

// SetInviteCode replaces the group's invite code.
func (g *Group) SetInviteCode(code string, expiresAt time.Time) {
	g.InviteCode = NormalizeCode(code)
	g.InviteCodeExpiresAt = expiresAt
}

// CheckInvite returns nil if code is the group's current, unexpired invite.
func (g *Group) CheckInvite(code string, now time.Time) error {
	if g.InviteCode == "" || g.InviteCode != NormalizeCode(code) {
		return fmt.Errorf("%w: %s", ErrInvalidInvite, code)
	}
	if !now.Before(g.InviteCodeExpiresAt) {
		return fmt.Errorf("%w: expired at %s", ErrInviteExpired, g.InviteCodeExpiresAt.Format(time.RFC3339))
	}
	return nil
}

// CheckWritable rejects mutations of ledger state on archived or inactive
// groups.
func (g *Group) CheckWritable() error {
	if g.IsArchived || !g.IsActive {
		return fmt.Errorf("%w: %s", ErrGroupArchived, g.ID)
	}
	return nil
}

// CheckDeletable returns ErrOutstandingDebts if any debt is still pending.
func (g *Group) CheckDeletable() error {
	if n := len(g.PendingDebts()); n > 0 {
		return fmt.Errorf("%w: %d pending", ErrOutstandingDebts, n)
	}
	return nil
}

// MemberIDs returns the ids of every membership record, active or not, in
// join order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.UserID
	}
	return ids
}

// Clone returns a deep copy of g.
func (g *Group) Clone() *Group {
	c := *g
	c.Members = append([]Member(nil), g.Members...)
	c.Expenses = make([]Expense, len(g.Expenses))
	for i, e := range g.Expenses {
		e.SplitBetween = append([]Split(nil), e.SplitBetween...)
		c.Expenses[i] = e
	}
	c.Debts = make([]Debt, len(g.Debts))
	for i, d := range g.Debts {
		if d.SettledAt != nil {
			t := *d.SettledAt
			d.SettledAt = &t
		}
		c.Debts[i] = d
	}
	c.Comments = append([]Comment(nil), g.Comments...)
	return &c
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", invalid(ErrValidation, "title", "title is required")
	}
	if len(title) > MaxTitleLength {
		return "", invalid(ErrValidation, "title", "must be at most %d characters", MaxTitleLength)
	}
	return title, nil
}

func validateDescription(description string) error {
	if len(strings.TrimSpace(description)) > MaxDescriptionLength {
		return invalid(ErrValidation, "description", "must be at most %d characters", MaxDescriptionLength)
	}
	return nil
}

func validateMaxMembers(n int) error {
	if n < MinMembersLimit || n > MaxMembersLimit {
		return invalid(ErrValidation, "max_members", "must be between %d and %d, got %d", MinMembersLimit, MaxMembersLimit, n)
	}
	return nil
}
