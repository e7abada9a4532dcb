package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/groups"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// GroupService implements the Connect GroupService over the group engine.
type GroupService struct {
	engine *groups.Engine
}

// NewGroupService creates a new GroupService.
func NewGroupService(engine *groups.Engine) *GroupService {
	return &GroupService{engine: engine}
}

func groupResponse(g *models.Group) *connect.Response[api.GroupResponse] {
	return connect.NewResponse(&api.GroupResponse{Group: toAPIGroup(g)})
}

// CreateGroup creates a group owned by the caller.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "CreateGroup request received", "title", req.Msg.Title, "user_id", actor.UserID)

	g, err := s.engine.CreateGroup(ctx, actor, models.GroupParams{
		Title:                     req.Msg.Title,
		Description:               req.Msg.Description,
		DefaultCurrency:           req.Msg.DefaultCurrency,
		MaxMembers:                req.Msg.MaxMembers,
		AllowMultipleCurrencies:   req.Msg.AllowMultipleCurrencies,
		RequireReceiptForExpenses: req.Msg.RequireReceiptForExpenses,
		AutoSimplifyDebts:         req.Msg.AutoSimplifyDebts,
	})
	if err != nil {
		return nil, fail(ctx, "CreateGroup", err)
	}
	return groupResponse(g), nil
}

// GetGroup returns a group the caller belongs to.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	g, err := s.engine.GetGroup(ctx, actor, req.Msg.GroupID)
	if err != nil {
		return nil, fail(ctx, "GetGroup", err)
	}
	return groupResponse(g), nil
}

// ListGroups returns the caller's groups, newest first.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.engine.ListGroups(ctx, actor)
	if err != nil {
		return nil, fail(ctx, "ListGroups", err)
	}

	out := make([]*api.Group, len(list))
	for i, g := range list {
		out[i] = toAPIGroup(g)
	}
	slog.DebugContext(ctx, "ListGroups successful", "count", len(out))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// JoinGroup adds the caller to the group with the given join code.
func (s *GroupService) JoinGroup(ctx context.Context, req *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	g, err := s.engine.JoinGroup(ctx, actor, req.Msg.Code)
	if err != nil {
		return nil, fail(ctx, "JoinGroup", err)
	}
	return groupResponse(g), nil
}

// JoinByInvite adds the caller to the group using its invite code.
func (s *GroupService) JoinByInvite(ctx context.Context, req *connect.Request[api.JoinByInviteRequest]) (*connect.Response[api.GroupResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	g, err := s.engine.JoinByInvite(ctx, actor, req.Msg.InviteCode)
	if err != nil {
		return nil, fail(ctx, "JoinByInvite", err)
	}
	return groupResponse(g), nil
}

// GenerateInviteCode rotates the group's invite code.
func (s *GroupService) GenerateInviteCode(ctx context.Context, req *connect.Request[api.GenerateInviteCodeRequest]) (*connect.Response[api.GenerateInviteCodeResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	g, err := s.engine.GenerateInviteCode(ctx, actor, req.Msg.GroupID, req.Msg.ExpirationHours)
	if err != nil {
		return nil, fail(ctx, "GenerateInviteCode", err)
	}
	return connect.NewResponse(&api.GenerateInviteCodeResponse{
		InviteCode: g.InviteCode,
		ExpiresAt:  g.InviteCodeExpiresAt,
	}), nil
}

// AddMember adds one of the caller's friends to the group.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.GroupResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	g, err := s.engine.AddFriendToGroup(ctx, actor, req.Msg.GroupID, req.Msg.FriendID)
	if err != nil {
		return nil, fail(ctx, "AddMember", err)
	}
	return groupResponse(g), nil
}

// RemoveMember removes a member, or lets the caller leave.
func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.GroupResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	g, err := s.engine.RemoveMember(ctx, actor, req.Msg.GroupID, req.Msg.UserID)
	if err != nil {
		return nil, fail(ctx, "RemoveMember", err)
	}
	return groupResponse(g), nil
}

// AddExpense records an expense and returns the rebuilt debts.
func (s *GroupService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "AddExpense request received",
		"group_id", req.Msg.GroupID,
		"amount", req.Msg.Amount,
		"currency", req.Msg.Currency,
		"splits", len(req.Msg.SplitBetween),
		"split_equally", req.Msg.SplitEqually,
	)

	splits, err := s.expenseSplits(ctx, actor, req.Msg)
	if err != nil {
		return nil, fail(ctx, "AddExpense", err)
	}

	g, expense, err := s.engine.AddExpense(ctx, actor, req.Msg.GroupID, models.ExpenseInput{
		Description:  req.Msg.Description,
		Amount:       req.Msg.Amount,
		Currency:     req.Msg.Currency,
		PayerID:      req.Msg.PaidBy,
		SplitBetween: splits,
		Category:     req.Msg.Category,
		ReceiptURL:   req.Msg.ReceiptURL,
		Notes:        req.Msg.Notes,
	})
	if err != nil {
		return nil, fail(ctx, "AddExpense", err)
	}

	out := toAPIExpense(*expense)
	return connect.NewResponse(&api.AddExpenseResponse{
		Expense: &out,
		Debts:   toAPIDebts(g.Debts),
		Version: g.Version,
	}), nil
}

// expenseSplits returns the explicit splits, or equal shares when requested.
// Equal shares default to every active member.
func (s *GroupService) expenseSplits(ctx context.Context, actor groups.Actor, req *api.AddExpenseRequest) ([]models.SplitInput, error) {
	if !req.SplitEqually {
		splits := make([]models.SplitInput, len(req.SplitBetween))
		for i, sp := range req.SplitBetween {
			splits[i] = models.SplitInput(sp)
		}
		return splits, nil
	}

	participants := req.Participants
	if len(participants) == 0 {
		g, err := s.engine.GetGroup(ctx, actor, req.GroupID)
		if err != nil {
			return nil, err
		}
		for _, m := range g.ActiveMembers() {
			participants = append(participants, m.UserID)
		}
	}

	shares, err := calculator.EqualShares(req.Amount, participants)
	if err != nil {
		return nil, &models.ValidationError{Field: "participants", Message: err.Error(), Err: models.ErrInvalidSplit}
	}
	splits := make([]models.SplitInput, len(shares))
	for i, sh := range shares {
		splits[i] = models.SplitInput{UserID: sh.UserID, Amount: sh.Amount}
	}
	return splits, nil
}

// ListExpenses returns the group's expenses, optionally in one currency.
func (s *GroupService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.engine.ListExpenses(ctx, actor, req.Msg.GroupID, req.Msg.Currency)
	if err != nil {
		return nil, fail(ctx, "ListExpenses", err)
	}
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: toAPIExpenses(expenses)}), nil
}

// GetDebts returns the group's debts, optionally in one currency.
func (s *GroupService) GetDebts(ctx context.Context, req *connect.Request[api.GetDebtsRequest]) (*connect.Response[api.DebtsResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	debts, err := s.engine.GetDebts(ctx, actor, req.Msg.GroupID, req.Msg.Currency)
	if err != nil {
		return nil, fail(ctx, "GetDebts", err)
	}
	return connect.NewResponse(&api.DebtsResponse{Debts: toAPIDebts(debts)}), nil
}

// SettleDebt marks a debt settled by the caller.
func (s *GroupService) SettleDebt(ctx context.Context, req *connect.Request[api.DebtActionRequest]) (*connect.Response[api.DebtResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	_, debt, err := s.engine.SettleDebt(ctx, actor, req.Msg.GroupID, req.Msg.DebtID)
	if err != nil {
		return nil, fail(ctx, "SettleDebt", err)
	}
	out := toAPIDebt(*debt)
	return connect.NewResponse(&api.DebtResponse{Debt: &out}), nil
}

// DisputeDebt marks a debt disputed.
func (s *GroupService) DisputeDebt(ctx context.Context, req *connect.Request[api.DebtActionRequest]) (*connect.Response[api.DebtResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	_, debt, err := s.engine.DisputeDebt(ctx, actor, req.Msg.GroupID, req.Msg.DebtID)
	if err != nil {
		return nil, fail(ctx, "DisputeDebt", err)
	}
	out := toAPIDebt(*debt)
	return connect.NewResponse(&api.DebtResponse{Debt: &out}), nil
}

// RecalculateDebts rebuilds the group's debts from its ledger.
func (s *GroupService) RecalculateDebts(ctx context.Context, req *connect.Request[api.RecalculateDebtsRequest]) (*connect.Response[api.DebtsResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	g, err := s.engine.RecalculateDebts(ctx, actor, req.Msg.GroupID)
	if err != nil {
		return nil, fail(ctx, "RecalculateDebts", err)
	}
	return connect.NewResponse(&api.DebtsResponse{Debts: toAPIDebts(g.Debts)}), nil
}

// GetBalances returns per-member balances.
func (s *GroupService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	balances, err := s.engine.GetBalances(ctx, actor, req.Msg.GroupID, req.Msg.Currency)
	if err != nil {
		return nil, fail(ctx, "GetBalances", err)
	}
	return connect.NewResponse(&api.GetBalancesResponse{Balances: toAPIBalances(balances)}), nil
}

// UpdateSettings applies a partial settings update.
func (s *GroupService) UpdateSettings(ctx context.Context, req *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.GroupResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	g, err := s.engine.UpdateSettings(ctx, actor, req.Msg.GroupID, models.Settings{
		Title:                     req.Msg.Title,
		Description:               req.Msg.Description,
		DefaultCurrency:           req.Msg.DefaultCurrency,
		AllowMultipleCurrencies:   req.Msg.AllowMultipleCurrencies,
		AutoSimplifyDebts:         req.Msg.AutoSimplifyDebts,
		RequireReceiptForExpenses: req.Msg.RequireReceiptForExpenses,
		MaxMembers:                req.Msg.MaxMembers,
		IsArchived:                req.Msg.IsArchived,
	})
	if err != nil {
		return nil, fail(ctx, "UpdateSettings", err)
	}
	return groupResponse(g), nil
}

// AddComment posts a comment to the group's thread.
func (s *GroupService) AddComment(ctx context.Context, req *connect.Request[api.AddCommentRequest]) (*connect.Response[api.CommentResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.engine.AddComment(ctx, actor, req.Msg.GroupID, req.Msg.Text)
	if err != nil {
		return nil, fail(ctx, "AddComment", err)
	}
	out := toAPIComment(*c)
	return connect.NewResponse(&api.CommentResponse{Comment: &out}), nil
}

// DeleteGroup deletes a settled group.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "DeleteGroup request received", "group_id", req.Msg.GroupID, "user_id", actor.UserID)

	if err := s.engine.DeleteGroup(ctx, actor, req.Msg.GroupID); err != nil {
		return nil, fail(ctx, "DeleteGroup", fmt.Errorf("delete group %s: %w", req.Msg.GroupID, err))
	}
	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}
