// Package api defines the wire messages of the splitledger.v1 services.
// Messages travel as JSON over Connect; see Codec.
package api

import "time"

// ==================== Shared types ====================

type Member struct {
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
	IsActive bool      `json:"is_active"`
}

type Participant struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type Split struct {
	UserID string  `json:"user_id"`
	Name   string  `json:"name,omitempty"`
	Amount float64 `json:"amount"`
}

type Expense struct {
	ID           string      `json:"id"`
	Description  string      `json:"description"`
	Amount       float64     `json:"amount"`
	Currency     string      `json:"currency"`
	PaidBy       Participant `json:"paid_by"`
	SplitBetween []Split     `json:"split_between"`
	Category     string      `json:"category"`
	ReceiptURL   string      `json:"receipt_url,omitempty"`
	Notes        string      `json:"notes,omitempty"`
	CreatedBy    string      `json:"created_by"`
	CreatedAt    time.Time   `json:"created_at"`
}

type Debt struct {
	ID        string      `json:"id"`
	From      Participant `json:"from"`
	To        Participant `json:"to"`
	Amount    float64     `json:"amount"`
	Currency  string      `json:"currency"`
	Status    string      `json:"status"`
	SettledBy string      `json:"settled_by,omitempty"`
	SettledAt *time.Time  `json:"settled_at,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type Balance struct {
	UserID     string  `json:"user_id"`
	Name       string  `json:"name"`
	Currency   string  `json:"currency"`
	TotalPaid  float64 `json:"total_paid"`
	TotalOwed  float64 `json:"total_owed"`
	NetBalance float64 `json:"net_balance"`
}

type Group struct {
	ID                        string     `json:"id"`
	Code                      string     `json:"code"`
	Title                     string     `json:"title"`
	Description               string     `json:"description,omitempty"`
	OwnerID                   string     `json:"owner_id"`
	DefaultCurrency           string     `json:"default_currency"`
	AllowMultipleCurrencies   bool       `json:"allow_multiple_currencies"`
	AutoSimplifyDebts         bool       `json:"auto_simplify_debts"`
	RequireReceiptForExpenses bool       `json:"require_receipt_for_expenses"`
	MaxMembers                int        `json:"max_members"`
	IsArchived                bool       `json:"is_archived"`
	InviteCode                string     `json:"invite_code,omitempty"`
	InviteCodeExpiresAt       *time.Time `json:"invite_code_expires_at,omitempty"`
	Members                   []Member   `json:"members"`
	Expenses                  []Expense  `json:"expenses"`
	Debts                     []Debt     `json:"debts"`
	Comments                  []Comment  `json:"comments"`
	Version                   int64      `json:"version"`
	CreatedAt                 time.Time  `json:"created_at"`
	UpdatedAt                 time.Time  `json:"updated_at"`
}

type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// ==================== GroupService ====================

type CreateGroupRequest struct {
	Title                     string `json:"title"`
	Description               string `json:"description,omitempty"`
	DefaultCurrency           string `json:"default_currency,omitempty"`
	MaxMembers                int    `json:"max_members,omitempty"`
	AllowMultipleCurrencies   bool   `json:"allow_multiple_currencies,omitempty"`
	RequireReceiptForExpenses bool   `json:"require_receipt_for_expenses,omitempty"`
	// AutoSimplifyDebts defaults to true when omitted.
	AutoSimplifyDebts *bool `json:"auto_simplify_debts,omitempty"`
}

// GroupResponse carries the group after a read or mutation.
type GroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type JoinGroupRequest struct {
	Code string `json:"code"`
}

type JoinByInviteRequest struct {
	InviteCode string `json:"invite_code"`
}

type GenerateInviteCodeRequest struct {
	GroupID string `json:"group_id"`
	// ExpirationHours defaults to 24; 1 to 720.
	ExpirationHours int `json:"expiration_hours,omitempty"`
}

type GenerateInviteCodeResponse struct {
	InviteCode string    `json:"invite_code"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type AddMemberRequest struct {
	GroupID  string `json:"group_id"`
	FriendID string `json:"friend_id"`
}

type RemoveMemberRequest struct {
	GroupID string `json:"group_id"`
	UserID  string `json:"user_id"`
}

type SplitInput struct {
	UserID string  `json:"user_id"`
	Amount float64 `json:"amount"`
}

type AddExpenseRequest struct {
	GroupID     string  `json:"group_id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency,omitempty"`
	// PaidBy defaults to the caller.
	PaidBy       string       `json:"paid_by,omitempty"`
	SplitBetween []SplitInput `json:"split_between,omitempty"`
	// SplitEqually fills SplitBetween with equal shares over Participants.
	SplitEqually bool     `json:"split_equally,omitempty"`
	Participants []string `json:"participants,omitempty"`
	Category     string   `json:"category,omitempty"`
	ReceiptURL   string   `json:"receipt_url,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
	Debts   []Debt   `json:"debts"`
	Version int64    `json:"version"`
}

type ListExpensesRequest struct {
	GroupID  string `json:"group_id"`
	Currency string `json:"currency,omitempty"`
}

type ListExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

type GetDebtsRequest struct {
	GroupID  string `json:"group_id"`
	Currency string `json:"currency,omitempty"`
}

type DebtsResponse struct {
	Debts []Debt `json:"debts"`
}

type DebtActionRequest struct {
	GroupID string `json:"group_id"`
	DebtID  string `json:"debt_id"`
}

type DebtResponse struct {
	Debt *Debt `json:"debt"`
}

type RecalculateDebtsRequest struct {
	GroupID string `json:"group_id"`
}

type GetBalancesRequest struct {
	GroupID  string `json:"group_id"`
	Currency string `json:"currency,omitempty"`
}

type GetBalancesResponse struct {
	Balances []Balance `json:"balances"`
}

// UpdateSettingsRequest is a partial update; omitted fields are unchanged.
type UpdateSettingsRequest struct {
	GroupID                   string  `json:"group_id"`
	Title                     *string `json:"title,omitempty"`
	Description               *string `json:"description,omitempty"`
	DefaultCurrency           *string `json:"default_currency,omitempty"`
	AllowMultipleCurrencies   *bool   `json:"allow_multiple_currencies,omitempty"`
	AutoSimplifyDebts         *bool   `json:"auto_simplify_debts,omitempty"`
	RequireReceiptForExpenses *bool   `json:"require_receipt_for_expenses,omitempty"`
	MaxMembers                *int    `json:"max_members,omitempty"`
	IsArchived                *bool   `json:"is_archived,omitempty"`
}

type AddCommentRequest struct {
	GroupID string `json:"group_id"`
	Text    string `json:"text"`
}

type CommentResponse struct {
	Comment *Comment `json:"comment"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"group_id"`
}

type DeleteGroupResponse struct{}

// ==================== AuthService ====================

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type UserResponse struct {
	User *User `json:"user"`
}

type AddFriendRequest struct {
	Email string `json:"email"`
}

type ListFriendsRequest struct{}

type ListFriendsResponse struct {
	Friends []*User `json:"friends"`
}

// ==================== SplitService ====================

type Item struct {
	Description    string   `json:"description"`
	Amount         float64  `json:"amount"`
	ParticipantIDs []string `json:"participant_ids"`
}

// CalculateSplitRequest previews a receipt split. With no items the total
// is split equally.
type CalculateSplitRequest struct {
	Items          []Item   `json:"items,omitempty"`
	Total          float64  `json:"total"`
	Subtotal       float64  `json:"subtotal"`
	ParticipantIDs []string `json:"participant_ids"`
}

type PersonSplit struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

type CalculateSplitResponse struct {
	Splits map[string]PersonSplit `json:"splits"`
	// Shares are the totals rounded to the cent, summing to Total, ready to
	// pass as AddExpenseRequest.SplitBetween.
	Shares []SplitInput `json:"shares"`
}

// GroupScoped is implemented by requests that address a single group.
type GroupScoped interface {
	GetGroupID() string
}

func (x *GetGroupRequest) GetGroupID() string {
	if x != nil {
		return x.GroupID
	}
	return ""
}

func (x *GenerateInviteCodeRequest) GetGroupID() string {
	if x != nil {
		return x.GroupID
	}
	return ""
}

func (x *AddMemberRequest) GetGroupID() string {
	if x != nil {
		return x.GroupID
	}
	return ""
}

func (x *RemoveMemberRequest) GetGroupID() string {
	if x != nil {
		return x.GroupID
	}
	return ""
}

func (x *AddExpenseRequest) GetGroupID() string {
	if x != nil {
		return x.GroupID
	}
	return ""
}

func (x *ListExpensesRequest) GetGroupID() string {
	if x != nil {
		return x.GroupID
	}
	return ""
}

func (x *GetDebtsRequest) GetGroupID() string {
	if x != nil {
		return x.GroupID
	}
	return ""
}

func (x *DebtActionRequest) GetGroupID() string {
	if x != nil {
		return x.GroupID
	}
	return ""
}

func (x *RecalculateDebtsRequest) GetGroupID() string {
	if x != nil {
		return x.GroupID
	}
	return ""
}

func (x *GetBalancesRequest) GetGroupID() string {
	if x != nil {
		return x.GroupID
	}
	return ""
}

func (x *UpdateSettingsRequest) GetGroupID() string {
	if x != nil {
		return x.GroupID
	}
	return ""
}

func (x *AddCommentRequest) GetGroupID() string {
	if x != nil {
		return x.GroupID
	}
	return ""
}

func (x *DeleteGroupRequest) GetGroupID() string {
	if x != nil {
		return x.GroupID
	}
	return ""
}
