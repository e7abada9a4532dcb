// Package apiconnect wires the splitledger.v1 services to Connect handlers
// and clients using the JSON codec from package api.
package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

const (
	// GroupServiceName is the fully-qualified name of the GroupService.
	GroupServiceName = "splitledger.v1.GroupService"
	// AuthServiceName is the fully-qualified name of the AuthService.
	AuthServiceName = "splitledger.v1.AuthService"
	// SplitServiceName is the fully-qualified name of the SplitService.
	SplitServiceName = "splitledger.v1.SplitService"
)

// Procedure names, exposed for interceptors and routing.
const (
	GroupServiceCreateGroupProcedure        = "/splitledger.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure           = "/splitledger.v1.GroupService/GetGroup"
	GroupServiceListGroupsProcedure         = "/splitledger.v1.GroupService/ListGroups"
	GroupServiceJoinGroupProcedure          = "/splitledger.v1.GroupService/JoinGroup"
	GroupServiceJoinByInviteProcedure       = "/splitledger.v1.GroupService/JoinByInvite"
	GroupServiceGenerateInviteCodeProcedure = "/splitledger.v1.GroupService/GenerateInviteCode"
	GroupServiceAddMemberProcedure          = "/splitledger.v1.GroupService/AddMember"
	GroupServiceRemoveMemberProcedure       = "/splitledger.v1.GroupService/RemoveMember"
	GroupServiceAddExpenseProcedure         = "/splitledger.v1.GroupService/AddExpense"
	GroupServiceListExpensesProcedure       = "/splitledger.v1.GroupService/ListExpenses"
	GroupServiceGetDebtsProcedure           = "/splitledger.v1.GroupService/GetDebts"
	GroupServiceSettleDebtProcedure         = "/splitledger.v1.GroupService/SettleDebt"
	GroupServiceDisputeDebtProcedure        = "/splitledger.v1.GroupService/DisputeDebt"
	GroupServiceRecalculateDebtsProcedure   = "/splitledger.v1.GroupService/RecalculateDebts"
	GroupServiceGetBalancesProcedure        = "/splitledger.v1.GroupService/GetBalances"
	GroupServiceUpdateSettingsProcedure     = "/splitledger.v1.GroupService/UpdateSettings"
	GroupServiceAddCommentProcedure         = "/splitledger.v1.GroupService/AddComment"
	GroupServiceDeleteGroupProcedure        = "/splitledger.v1.GroupService/DeleteGroup"
	AuthServiceRegisterProcedure            = "/splitledger.v1.AuthService/Register"
	AuthServiceLoginProcedure               = "/splitledger.v1.AuthService/Login"
	AuthServiceGetCurrentUserProcedure      = "/splitledger.v1.AuthService/GetCurrentUser"
	AuthServiceAddFriendProcedure           = "/splitledger.v1.AuthService/AddFriend"
	AuthServiceListFriendsProcedure         = "/splitledger.v1.AuthService/ListFriends"
	SplitServiceCalculateSplitProcedure     = "/splitledger.v1.SplitService/CalculateSplit"
)

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
}

// ==================== GroupService ====================

// GroupServiceHandler manages groups, their members and their shared ledger.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	JoinGroup(context.Context, *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.GroupResponse], error)
	JoinByInvite(context.Context, *connect.Request[api.JoinByInviteRequest]) (*connect.Response[api.GroupResponse], error)
	GenerateInviteCode(context.Context, *connect.Request[api.GenerateInviteCodeRequest]) (*connect.Response[api.GenerateInviteCodeResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.GroupResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.GroupResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	GetDebts(context.Context, *connect.Request[api.GetDebtsRequest]) (*connect.Response[api.DebtsResponse], error)
	SettleDebt(context.Context, *connect.Request[api.DebtActionRequest]) (*connect.Response[api.DebtResponse], error)
	DisputeDebt(context.Context, *connect.Request[api.DebtActionRequest]) (*connect.Response[api.DebtResponse], error)
	RecalculateDebts(context.Context, *connect.Request[api.RecalculateDebtsRequest]) (*connect.Response[api.DebtsResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	UpdateSettings(context.Context, *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.GroupResponse], error)
	AddComment(context.Context, *connect.Request[api.AddCommentRequest]) (*connect.Response[api.CommentResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler for every GroupService procedure.
// It returns the path prefix to mount it on.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(GroupServiceCreateGroupProcedure, connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...))
	mux.Handle(GroupServiceGetGroupProcedure, connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...))
	mux.Handle(GroupServiceListGroupsProcedure, connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...))
	mux.Handle(GroupServiceJoinGroupProcedure, connect.NewUnaryHandler(GroupServiceJoinGroupProcedure, svc.JoinGroup, opts...))
	mux.Handle(GroupServiceJoinByInviteProcedure, connect.NewUnaryHandler(GroupServiceJoinByInviteProcedure, svc.JoinByInvite, opts...))
	mux.Handle(GroupServiceGenerateInviteCodeProcedure, connect.NewUnaryHandler(GroupServiceGenerateInviteCodeProcedure, svc.GenerateInviteCode, opts...))
	mux.Handle(GroupServiceAddMemberProcedure, connect.NewUnaryHandler(GroupServiceAddMemberProcedure, svc.AddMember, opts...))
	mux.Handle(GroupServiceRemoveMemberProcedure, connect.NewUnaryHandler(GroupServiceRemoveMemberProcedure, svc.RemoveMember, opts...))
	mux.Handle(GroupServiceAddExpenseProcedure, connect.NewUnaryHandler(GroupServiceAddExpenseProcedure, svc.AddExpense, opts...))
	mux.Handle(GroupServiceListExpensesProcedure, connect.NewUnaryHandler(GroupServiceListExpensesProcedure, svc.ListExpenses, opts...))
	mux.Handle(GroupServiceGetDebtsProcedure, connect.NewUnaryHandler(GroupServiceGetDebtsProcedure, svc.GetDebts, opts...))
	mux.Handle(GroupServiceSettleDebtProcedure, connect.NewUnaryHandler(GroupServiceSettleDebtProcedure, svc.SettleDebt, opts...))
	mux.Handle(GroupServiceDisputeDebtProcedure, connect.NewUnaryHandler(GroupServiceDisputeDebtProcedure, svc.DisputeDebt, opts...))
	mux.Handle(GroupServiceRecalculateDebtsProcedure, connect.NewUnaryHandler(GroupServiceRecalculateDebtsProcedure, svc.RecalculateDebts, opts...))
	mux.Handle(GroupServiceGetBalancesProcedure, connect.NewUnaryHandler(GroupServiceGetBalancesProcedure, svc.GetBalances, opts...))
	mux.Handle(GroupServiceUpdateSettingsProcedure, connect.NewUnaryHandler(GroupServiceUpdateSettingsProcedure, svc.UpdateSettings, opts...))
	mux.Handle(GroupServiceAddCommentProcedure, connect.NewUnaryHandler(GroupServiceAddCommentProcedure, svc.AddComment, opts...))
	mux.Handle(GroupServiceDeleteGroupProcedure, connect.NewUnaryHandler(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts...))
	return "/" + GroupServiceName + "/", mux
}

// GroupServiceClient is a client for the GroupService.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	JoinGroup(context.Context, *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.GroupResponse], error)
	JoinByInvite(context.Context, *connect.Request[api.JoinByInviteRequest]) (*connect.Response[api.GroupResponse], error)
	GenerateInviteCode(context.Context, *connect.Request[api.GenerateInviteCodeRequest]) (*connect.Response[api.GenerateInviteCodeResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.GroupResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.GroupResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	GetDebts(context.Context, *connect.Request[api.GetDebtsRequest]) (*connect.Response[api.DebtsResponse], error)
	SettleDebt(context.Context, *connect.Request[api.DebtActionRequest]) (*connect.Response[api.DebtResponse], error)
	DisputeDebt(context.Context, *connect.Request[api.DebtActionRequest]) (*connect.Response[api.DebtResponse], error)
	RecalculateDebts(context.Context, *connect.Request[api.RecalculateDebtsRequest]) (*connect.Response[api.DebtsResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	UpdateSettings(context.Context, *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.GroupResponse], error)
	AddComment(context.Context, *connect.Request[api.AddCommentRequest]) (*connect.Response[api.CommentResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
}

type groupServiceClient struct {
	createGroup        *connect.Client[api.CreateGroupRequest, api.GroupResponse]
	getGroup           *connect.Client[api.GetGroupRequest, api.GroupResponse]
	listGroups         *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	joinGroup          *connect.Client[api.JoinGroupRequest, api.GroupResponse]
	joinByInvite       *connect.Client[api.JoinByInviteRequest, api.GroupResponse]
	generateInviteCode *connect.Client[api.GenerateInviteCodeRequest, api.GenerateInviteCodeResponse]
	addMember          *connect.Client[api.AddMemberRequest, api.GroupResponse]
	removeMember       *connect.Client[api.RemoveMemberRequest, api.GroupResponse]
	addExpense         *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	listExpenses       *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	getDebts           *connect.Client[api.GetDebtsRequest, api.DebtsResponse]
	settleDebt         *connect.Client[api.DebtActionRequest, api.DebtResponse]
	disputeDebt        *connect.Client[api.DebtActionRequest, api.DebtResponse]
	recalculateDebts   *connect.Client[api.RecalculateDebtsRequest, api.DebtsResponse]
	getBalances        *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
	updateSettings     *connect.Client[api.UpdateSettingsRequest, api.GroupResponse]
	addComment         *connect.Client[api.AddCommentRequest, api.CommentResponse]
	deleteGroup        *connect.Client[api.DeleteGroupRequest, api.DeleteGroupResponse]
}

// NewGroupServiceClient constructs a client for the GroupService at baseURL.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &groupServiceClient{
		createGroup:        connect.NewClient[api.CreateGroupRequest, api.GroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:           connect.NewClient[api.GetGroupRequest, api.GroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listGroups:         connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		joinGroup:          connect.NewClient[api.JoinGroupRequest, api.GroupResponse](httpClient, baseURL+GroupServiceJoinGroupProcedure, opts...),
		joinByInvite:       connect.NewClient[api.JoinByInviteRequest, api.GroupResponse](httpClient, baseURL+GroupServiceJoinByInviteProcedure, opts...),
		generateInviteCode: connect.NewClient[api.GenerateInviteCodeRequest, api.GenerateInviteCodeResponse](httpClient, baseURL+GroupServiceGenerateInviteCodeProcedure, opts...),
		addMember:          connect.NewClient[api.AddMemberRequest, api.GroupResponse](httpClient, baseURL+GroupServiceAddMemberProcedure, opts...),
		removeMember:       connect.NewClient[api.RemoveMemberRequest, api.GroupResponse](httpClient, baseURL+GroupServiceRemoveMemberProcedure, opts...),
		addExpense:         connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](httpClient, baseURL+GroupServiceAddExpenseProcedure, opts...),
		listExpenses:       connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL+GroupServiceListExpensesProcedure, opts...),
		getDebts:           connect.NewClient[api.GetDebtsRequest, api.DebtsResponse](httpClient, baseURL+GroupServiceGetDebtsProcedure, opts...),
		settleDebt:         connect.NewClient[api.DebtActionRequest, api.DebtResponse](httpClient, baseURL+GroupServiceSettleDebtProcedure, opts...),
		disputeDebt:        connect.NewClient[api.DebtActionRequest, api.DebtResponse](httpClient, baseURL+GroupServiceDisputeDebtProcedure, opts...),
		recalculateDebts:   connect.NewClient[api.RecalculateDebtsRequest, api.DebtsResponse](httpClient, baseURL+GroupServiceRecalculateDebtsProcedure, opts...),
		getBalances:        connect.NewClient[api.GetBalancesRequest, api.GetBalancesResponse](httpClient, baseURL+GroupServiceGetBalancesProcedure, opts...),
		updateSettings:     connect.NewClient[api.UpdateSettingsRequest, api.GroupResponse](httpClient, baseURL+GroupServiceUpdateSettingsProcedure, opts...),
		addComment:         connect.NewClient[api.AddCommentRequest, api.CommentResponse](httpClient, baseURL+GroupServiceAddCommentProcedure, opts...),
		deleteGroup:        connect.NewClient[api.DeleteGroupRequest, api.DeleteGroupResponse](httpClient, baseURL+GroupServiceDeleteGroupProcedure, opts...),
	}
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) JoinGroup(ctx context.Context, req *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.joinGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) JoinByInvite(ctx context.Context, req *connect.Request[api.JoinByInviteRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.joinByInvite.CallUnary(ctx, req)
}

func (c *groupServiceClient) GenerateInviteCode(ctx context.Context, req *connect.Request[api.GenerateInviteCodeRequest]) (*connect.Response[api.GenerateInviteCodeResponse], error) {
	return c.generateInviteCode.CallUnary(ctx, req)
}

func (c *groupServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *groupServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *groupServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetDebts(ctx context.Context, req *connect.Request[api.GetDebtsRequest]) (*connect.Response[api.DebtsResponse], error) {
	return c.getDebts.CallUnary(ctx, req)
}

func (c *groupServiceClient) SettleDebt(ctx context.Context, req *connect.Request[api.DebtActionRequest]) (*connect.Response[api.DebtResponse], error) {
	return c.settleDebt.CallUnary(ctx, req)
}

func (c *groupServiceClient) DisputeDebt(ctx context.Context, req *connect.Request[api.DebtActionRequest]) (*connect.Response[api.DebtResponse], error) {
	return c.disputeDebt.CallUnary(ctx, req)
}

func (c *groupServiceClient) RecalculateDebts(ctx context.Context, req *connect.Request[api.RecalculateDebtsRequest]) (*connect.Response[api.DebtsResponse], error) {
	return c.recalculateDebts.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *groupServiceClient) UpdateSettings(ctx context.Context, req *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.updateSettings.CallUnary(ctx, req)
}

func (c *groupServiceClient) AddComment(ctx context.Context, req *connect.Request[api.AddCommentRequest]) (*connect.Response[api.CommentResponse], error) {
	return c.addComment.CallUnary(ctx, req)
}

func (c *groupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

// ==================== AuthService ====================

// AuthServiceHandler registers users, issues tokens and manages friend lists.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.AuthResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error)
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.UserResponse], error)
	AddFriend(context.Context, *connect.Request[api.AddFriendRequest]) (*connect.Response[api.UserResponse], error)
	ListFriends(context.Context, *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler for every AuthService procedure.
// It returns the path prefix to mount it on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(AuthServiceRegisterProcedure, connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...))
	mux.Handle(AuthServiceLoginProcedure, connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...))
	mux.Handle(AuthServiceGetCurrentUserProcedure, connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...))
	mux.Handle(AuthServiceAddFriendProcedure, connect.NewUnaryHandler(AuthServiceAddFriendProcedure, svc.AddFriend, opts...))
	mux.Handle(AuthServiceListFriendsProcedure, connect.NewUnaryHandler(AuthServiceListFriendsProcedure, svc.ListFriends, opts...))
	return "/" + AuthServiceName + "/", mux
}

// AuthServiceClient is a client for the AuthService.
type AuthServiceClient interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.AuthResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error)
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.UserResponse], error)
	AddFriend(context.Context, *connect.Request[api.AddFriendRequest]) (*connect.Response[api.UserResponse], error)
	ListFriends(context.Context, *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error)
}

type authServiceClient struct {
	register       *connect.Client[api.RegisterRequest, api.AuthResponse]
	login          *connect.Client[api.LoginRequest, api.AuthResponse]
	getCurrentUser *connect.Client[api.GetCurrentUserRequest, api.UserResponse]
	addFriend      *connect.Client[api.AddFriendRequest, api.UserResponse]
	listFriends    *connect.Client[api.ListFriendsRequest, api.ListFriendsResponse]
}

// NewAuthServiceClient constructs a client for the AuthService at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &authServiceClient{
		register:       connect.NewClient[api.RegisterRequest, api.AuthResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:          connect.NewClient[api.LoginRequest, api.AuthResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		getCurrentUser: connect.NewClient[api.GetCurrentUserRequest, api.UserResponse](httpClient, baseURL+AuthServiceGetCurrentUserProcedure, opts...),
		addFriend:      connect.NewClient[api.AddFriendRequest, api.UserResponse](httpClient, baseURL+AuthServiceAddFriendProcedure, opts...),
		listFriends:    connect.NewClient[api.ListFriendsRequest, api.ListFriendsResponse](httpClient, baseURL+AuthServiceListFriendsProcedure, opts...),
	}
}

func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.AuthResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.UserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

func (c *authServiceClient) AddFriend(ctx context.Context, req *connect.Request[api.AddFriendRequest]) (*connect.Response[api.UserResponse], error) {
	return c.addFriend.CallUnary(ctx, req)
}

func (c *authServiceClient) ListFriends(ctx context.Context, req *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error) {
	return c.listFriends.CallUnary(ctx, req)
}

// ==================== SplitService ====================

// SplitServiceHandler previews receipt splits without touching any group.
type SplitServiceHandler interface {
	CalculateSplit(context.Context, *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error)
}

// NewSplitServiceHandler builds an HTTP handler for every SplitService procedure.
// It returns the path prefix to mount it on.
func NewSplitServiceHandler(svc SplitServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(SplitServiceCalculateSplitProcedure, connect.NewUnaryHandler(SplitServiceCalculateSplitProcedure, svc.CalculateSplit, opts...))
	return "/" + SplitServiceName + "/", mux
}

// SplitServiceClient is a client for the SplitService.
type SplitServiceClient interface {
	CalculateSplit(context.Context, *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error)
}

type splitServiceClient struct {
	calculateSplit *connect.Client[api.CalculateSplitRequest, api.CalculateSplitResponse]
}

// NewSplitServiceClient constructs a client for the SplitService at baseURL.
func NewSplitServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SplitServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &splitServiceClient{
		calculateSplit: connect.NewClient[api.CalculateSplitRequest, api.CalculateSplitResponse](httpClient, baseURL+SplitServiceCalculateSplitProcedure, opts...),
	}
}

func (c *splitServiceClient) CalculateSplit(ctx context.Context, req *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	return c.calculateSplit.CallUnary(ctx, req)
}
