package service

import (
	"context"
	"encoding/json"
	"net/http"

	"connectrpc.com/connect"
)

// Procedure names follow the Connect convention so clients in other
// languages can address the services the usual way.
const (
	AuthServiceRegisterProcedure = "/splitpay.v1.AuthService/Register"
	AuthServiceLoginProcedure    = "/splitpay.v1.AuthService/Login"

	GroupServiceCreateGroupProcedure     = "/splitpay.v1.GroupService/CreateGroup"
	GroupServiceAddMemberProcedure       = "/splitpay.v1.GroupService/AddMember"
	GroupServiceRemoveMemberProcedure    = "/splitpay.v1.GroupService/RemoveMember"
	GroupServiceGetGroupMembersProcedure = "/splitpay.v1.GroupService/GetGroupMembers"
	GroupServiceGetMemberGroupsProcedure = "/splitpay.v1.GroupService/GetMemberGroups"

	LedgerServiceAddExpenseProcedure       = "/splitpay.v1.LedgerService/AddExpense"
	LedgerServiceRemoveExpenseProcedure    = "/splitpay.v1.LedgerService/RemoveExpense"
	LedgerServiceSettleDebtProcedure       = "/splitpay.v1.LedgerService/SettleDebt"
	LedgerServiceGetMemberBalanceProcedure = "/splitpay.v1.LedgerService/GetMemberBalance"
	LedgerServiceGetGroupExpensesProcedure = "/splitpay.v1.LedgerService/GetGroupExpenses"
	LedgerServiceGetGroupSummaryProcedure  = "/splitpay.v1.LedgerService/GetGroupSummary"
)

// jsonCodec lets Connect carry plain Go structs. Registering it under the
// name "json" replaces the default protojson codec, which only accepts
// proto messages.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

func (jsonCodec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
}

// NewAuthServiceHandler returns the path prefix and handler for the auth
// service, to be mounted on a mux.
func NewAuthServiceHandler(svc *AuthService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(AuthServiceRegisterProcedure, connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...))
	mux.Handle(AuthServiceLoginProcedure, connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...))
	return "/splitpay.v1.AuthService/", mux
}

// NewGroupServiceHandler returns the path prefix and handler for the
// group service.
func NewGroupServiceHandler(svc *GroupService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(GroupServiceCreateGroupProcedure, connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...))
	mux.Handle(GroupServiceAddMemberProcedure, connect.NewUnaryHandler(GroupServiceAddMemberProcedure, svc.AddMember, opts...))
	mux.Handle(GroupServiceRemoveMemberProcedure, connect.NewUnaryHandler(GroupServiceRemoveMemberProcedure, svc.RemoveMember, opts...))
	mux.Handle(GroupServiceGetGroupMembersProcedure, connect.NewUnaryHandler(GroupServiceGetGroupMembersProcedure, svc.GetGroupMembers, opts...))
	mux.Handle(GroupServiceGetMemberGroupsProcedure, connect.NewUnaryHandler(GroupServiceGetMemberGroupsProcedure, svc.GetMemberGroups, opts...))
	return "/splitpay.v1.GroupService/", mux
}

// NewLedgerServiceHandler returns the path prefix and handler for the
// ledger service.
func NewLedgerServiceHandler(svc *LedgerService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(LedgerServiceAddExpenseProcedure, connect.NewUnaryHandler(LedgerServiceAddExpenseProcedure, svc.AddExpense, opts...))
	mux.Handle(LedgerServiceRemoveExpenseProcedure, connect.NewUnaryHandler(LedgerServiceRemoveExpenseProcedure, svc.RemoveExpense, opts...))
	mux.Handle(LedgerServiceSettleDebtProcedure, connect.NewUnaryHandler(LedgerServiceSettleDebtProcedure, svc.SettleDebt, opts...))
	mux.Handle(LedgerServiceGetMemberBalanceProcedure, connect.NewUnaryHandler(LedgerServiceGetMemberBalanceProcedure, svc.GetMemberBalance, opts...))
	mux.Handle(LedgerServiceGetGroupExpensesProcedure, connect.NewUnaryHandler(LedgerServiceGetGroupExpensesProcedure, svc.GetGroupExpenses, opts...))
	mux.Handle(LedgerServiceGetGroupSummaryProcedure, connect.NewUnaryHandler(LedgerServiceGetGroupSummaryProcedure, svc.GetGroupSummary, opts...))
	return "/splitpay.v1.LedgerService/", mux
}

// AuthServiceClient calls the auth service.
type AuthServiceClient struct {
	register *connect.Client[RegisterRequest, RegisterResponse]
	login    *connect.Client[LoginRequest, LoginResponse]
}

// NewAuthServiceClient creates a client for the auth service at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	opts = clientOptions(opts)
	return &AuthServiceClient{
		register: connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:    connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
	}
}

func (c *AuthServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

// GroupServiceClient calls the group service.
type GroupServiceClient struct {
	createGroup     *connect.Client[CreateGroupRequest, CreateGroupResponse]
	addMember       *connect.Client[AddMemberRequest, AddMemberResponse]
	removeMember    *connect.Client[RemoveMemberRequest, RemoveMemberResponse]
	getGroupMembers *connect.Client[GetGroupMembersRequest, GetGroupMembersResponse]
	getMemberGroups *connect.Client[GetMemberGroupsRequest, GetMemberGroupsResponse]
}

// NewGroupServiceClient creates a client for the group service at baseURL.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	opts = clientOptions(opts)
	return &GroupServiceClient{
		createGroup:     connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		addMember:       connect.NewClient[AddMemberRequest, AddMemberResponse](httpClient, baseURL+GroupServiceAddMemberProcedure, opts...),
		removeMember:    connect.NewClient[RemoveMemberRequest, RemoveMemberResponse](httpClient, baseURL+GroupServiceRemoveMemberProcedure, opts...),
		getGroupMembers: connect.NewClient[GetGroupMembersRequest, GetGroupMembersResponse](httpClient, baseURL+GroupServiceGetGroupMembersProcedure, opts...),
		getMemberGroups: connect.NewClient[GetMemberGroupsRequest, GetMemberGroupsResponse](httpClient, baseURL+GroupServiceGetMemberGroupsProcedure, opts...),
	}
}

func (c *GroupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *GroupServiceClient) RemoveMember(ctx context.Context, req *connect.Request[RemoveMemberRequest]) (*connect.Response[RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroupMembers(ctx context.Context, req *connect.Request[GetGroupMembersRequest]) (*connect.Response[GetGroupMembersResponse], error) {
	return c.getGroupMembers.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetMemberGroups(ctx context.Context, req *connect.Request[GetMemberGroupsRequest]) (*connect.Response[GetMemberGroupsResponse], error) {
	return c.getMemberGroups.CallUnary(ctx, req)
}

// LedgerServiceClient calls the ledger service.
type LedgerServiceClient struct {
	addExpense       *connect.Client[AddExpenseRequest, AddExpenseResponse]
	removeExpense    *connect.Client[RemoveExpenseRequest, RemoveExpenseResponse]
	settleDebt       *connect.Client[SettleDebtRequest, SettleDebtResponse]
	getMemberBalance *connect.Client[GetMemberBalanceRequest, GetMemberBalanceResponse]
	getGroupExpenses *connect.Client[GetGroupExpensesRequest, GetGroupExpensesResponse]
	getGroupSummary  *connect.Client[GetGroupSummaryRequest, GetGroupSummaryResponse]
}

// NewLedgerServiceClient creates a client for the ledger service at
// baseURL.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	opts = clientOptions(opts)
	return &LedgerServiceClient{
		addExpense:       connect.NewClient[AddExpenseRequest, AddExpenseResponse](httpClient, baseURL+LedgerServiceAddExpenseProcedure, opts...),
		removeExpense:    connect.NewClient[RemoveExpenseRequest, RemoveExpenseResponse](httpClient, baseURL+LedgerServiceRemoveExpenseProcedure, opts...),
		settleDebt:       connect.NewClient[SettleDebtRequest, SettleDebtResponse](httpClient, baseURL+LedgerServiceSettleDebtProcedure, opts...),
		getMemberBalance: connect.NewClient[GetMemberBalanceRequest, GetMemberBalanceResponse](httpClient, baseURL+LedgerServiceGetMemberBalanceProcedure, opts...),
		getGroupExpenses: connect.NewClient[GetGroupExpensesRequest, GetGroupExpensesResponse](httpClient, baseURL+LedgerServiceGetGroupExpensesProcedure, opts...),
		getGroupSummary:  connect.NewClient[GetGroupSummaryRequest, GetGroupSummaryResponse](httpClient, baseURL+LedgerServiceGetGroupSummaryProcedure, opts...),
	}
}

func (c *LedgerServiceClient) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) RemoveExpense(ctx context.Context, req *connect.Request[RemoveExpenseRequest]) (*connect.Response[RemoveExpenseResponse], error) {
	return c.removeExpense.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) SettleDebt(ctx context.Context, req *connect.Request[SettleDebtRequest]) (*connect.Response[SettleDebtResponse], error) {
	return c.settleDebt.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetMemberBalance(ctx context.Context, req *connect.Request[GetMemberBalanceRequest]) (*connect.Response[GetMemberBalanceResponse], error) {
	return c.getMemberBalance.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetGroupExpenses(ctx context.Context, req *connect.Request[GetGroupExpensesRequest]) (*connect.Response[GetGroupExpensesResponse], error) {
	return c.getGroupExpenses.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetGroupSummary(ctx context.Context, req *connect.Request[GetGroupSummaryRequest]) (*connect.Response[GetGroupSummaryResponse], error) {
	return c.getGroupSummary.CallUnary(ctx, req)
}
