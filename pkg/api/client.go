package api

import (
	"context"

	"connectrpc.com/connect"

	"github.com/toma1133/travel-app-sub001/internal/rpc"
)

// AuthServiceClient calls the AuthService procedures.
type AuthServiceClient struct {
	register       *connect.Client[RegisterRequest, RegisterResponse]
	login          *connect.Client[LoginRequest, LoginResponse]
	getCurrentUser *connect.Client[GetCurrentUserRequest, GetCurrentUserResponse]
}

// NewAuthServiceClient returns a client for the AuthService at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	return &AuthServiceClient{
		register:       rpc.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL, AuthServiceRegisterProcedure, opts...),
		login:          rpc.NewClient[LoginRequest, LoginResponse](httpClient, baseURL, AuthServiceLoginProcedure, opts...),
		getCurrentUser: rpc.NewClient[GetCurrentUserRequest, GetCurrentUserResponse](httpClient, baseURL, AuthServiceGetCurrentUserProcedure, opts...),
	}
}

func (c *AuthServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

// TripServiceClient calls the TripService procedures.
type TripServiceClient struct {
	createTrip             *connect.Client[CreateTripRequest, CreateTripResponse]
	getTrip                *connect.Client[GetTripRequest, GetTripResponse]
	listTrips              *connect.Client[ListTripsRequest, ListTripsResponse]
	updateCurrencySettings *connect.Client[UpdateCurrencySettingsRequest, UpdateCurrencySettingsResponse]
	deleteTrip             *connect.Client[DeleteTripRequest, DeleteTripResponse]
	addMember              *connect.Client[AddMemberRequest, AddMemberResponse]
	updateMemberRole       *connect.Client[UpdateMemberRoleRequest, UpdateMemberRoleResponse]
	removeMember           *connect.Client[RemoveMemberRequest, RemoveMemberResponse]
	createInvite           *connect.Client[CreateInviteRequest, CreateInviteResponse]
	joinTrip               *connect.Client[JoinTripRequest, JoinTripResponse]
}

// NewTripServiceClient returns a client for the TripService at baseURL.
func NewTripServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *TripServiceClient {
	return &TripServiceClient{
		createTrip:             rpc.NewClient[CreateTripRequest, CreateTripResponse](httpClient, baseURL, TripServiceCreateTripProcedure, opts...),
		getTrip:                rpc.NewClient[GetTripRequest, GetTripResponse](httpClient, baseURL, TripServiceGetTripProcedure, opts...),
		listTrips:              rpc.NewClient[ListTripsRequest, ListTripsResponse](httpClient, baseURL, TripServiceListTripsProcedure, opts...),
		updateCurrencySettings: rpc.NewClient[UpdateCurrencySettingsRequest, UpdateCurrencySettingsResponse](httpClient, baseURL, TripServiceUpdateCurrencySettingsProcedure, opts...),
		deleteTrip:             rpc.NewClient[DeleteTripRequest, DeleteTripResponse](httpClient, baseURL, TripServiceDeleteTripProcedure, opts...),
		addMember:              rpc.NewClient[AddMemberRequest, AddMemberResponse](httpClient, baseURL, TripServiceAddMemberProcedure, opts...),
		updateMemberRole:       rpc.NewClient[UpdateMemberRoleRequest, UpdateMemberRoleResponse](httpClient, baseURL, TripServiceUpdateMemberRoleProcedure, opts...),
		removeMember:           rpc.NewClient[RemoveMemberRequest, RemoveMemberResponse](httpClient, baseURL, TripServiceRemoveMemberProcedure, opts...),
		createInvite:           rpc.NewClient[CreateInviteRequest, CreateInviteResponse](httpClient, baseURL, TripServiceCreateInviteProcedure, opts...),
		joinTrip:               rpc.NewClient[JoinTripRequest, JoinTripResponse](httpClient, baseURL, TripServiceJoinTripProcedure, opts...),
	}
}

func (c *TripServiceClient) CreateTrip(ctx context.Context, req *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error) {
	return c.createTrip.CallUnary(ctx, req)
}

func (c *TripServiceClient) GetTrip(ctx context.Context, req *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error) {
	return c.getTrip.CallUnary(ctx, req)
}

func (c *TripServiceClient) ListTrips(ctx context.Context, req *connect.Request[ListTripsRequest]) (*connect.Response[ListTripsResponse], error) {
	return c.listTrips.CallUnary(ctx, req)
}

func (c *TripServiceClient) UpdateCurrencySettings(ctx context.Context, req *connect.Request[UpdateCurrencySettingsRequest]) (*connect.Response[UpdateCurrencySettingsResponse], error) {
	return c.updateCurrencySettings.CallUnary(ctx, req)
}

func (c *TripServiceClient) DeleteTrip(ctx context.Context, req *connect.Request[DeleteTripRequest]) (*connect.Response[DeleteTripResponse], error) {
	return c.deleteTrip.CallUnary(ctx, req)
}

func (c *TripServiceClient) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *TripServiceClient) UpdateMemberRole(ctx context.Context, req *connect.Request[UpdateMemberRoleRequest]) (*connect.Response[UpdateMemberRoleResponse], error) {
	return c.updateMemberRole.CallUnary(ctx, req)
}

func (c *TripServiceClient) RemoveMember(ctx context.Context, req *connect.Request[RemoveMemberRequest]) (*connect.Response[RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *TripServiceClient) CreateInvite(ctx context.Context, req *connect.Request[CreateInviteRequest]) (*connect.Response[CreateInviteResponse], error) {
	return c.createInvite.CallUnary(ctx, req)
}

func (c *TripServiceClient) JoinTrip(ctx context.Context, req *connect.Request[JoinTripRequest]) (*connect.Response[JoinTripResponse], error) {
	return c.joinTrip.CallUnary(ctx, req)
}

// ExpenseServiceClient calls the ExpenseService procedures.
type ExpenseServiceClient struct {
	createExpense *connect.Client[CreateExpenseRequest, CreateExpenseResponse]
	updateExpense *connect.Client[UpdateExpenseRequest, UpdateExpenseResponse]
	deleteExpense *connect.Client[DeleteExpenseRequest, DeleteExpenseResponse]
	listExpenses  *connect.Client[ListExpensesRequest, ListExpensesResponse]
	recordPayment *connect.Client[RecordPaymentRequest, RecordPaymentResponse]
	listPayments  *connect.Client[ListPaymentsRequest, ListPaymentsResponse]
	deletePayment *connect.Client[DeletePaymentRequest, DeletePaymentResponse]
	getSettlement *connect.Client[GetSettlementRequest, GetSettlementResponse]
	convertAmount *connect.Client[ConvertAmountRequest, ConvertAmountResponse]
}

// NewExpenseServiceClient returns a client for the ExpenseService at baseURL.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExpenseServiceClient {
	return &ExpenseServiceClient{
		createExpense: rpc.NewClient[CreateExpenseRequest, CreateExpenseResponse](httpClient, baseURL, ExpenseServiceCreateExpenseProcedure, opts...),
		updateExpense: rpc.NewClient[UpdateExpenseRequest, UpdateExpenseResponse](httpClient, baseURL, ExpenseServiceUpdateExpenseProcedure, opts...),
		deleteExpense: rpc.NewClient[DeleteExpenseRequest, DeleteExpenseResponse](httpClient, baseURL, ExpenseServiceDeleteExpenseProcedure, opts...),
		listExpenses:  rpc.NewClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL, ExpenseServiceListExpensesProcedure, opts...),
		recordPayment: rpc.NewClient[RecordPaymentRequest, RecordPaymentResponse](httpClient, baseURL, ExpenseServiceRecordPaymentProcedure, opts...),
		listPayments:  rpc.NewClient[ListPaymentsRequest, ListPaymentsResponse](httpClient, baseURL, ExpenseServiceListPaymentsProcedure, opts...),
		deletePayment: rpc.NewClient[DeletePaymentRequest, DeletePaymentResponse](httpClient, baseURL, ExpenseServiceDeletePaymentProcedure, opts...),
		getSettlement: rpc.NewClient[GetSettlementRequest, GetSettlementResponse](httpClient, baseURL, ExpenseServiceGetSettlementProcedure, opts...),
		convertAmount: rpc.NewClient[ConvertAmountRequest, ConvertAmountResponse](httpClient, baseURL, ExpenseServiceConvertAmountProcedure, opts...),
	}
}

func (c *ExpenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) RecordPayment(ctx context.Context, req *connect.Request[RecordPaymentRequest]) (*connect.Response[RecordPaymentResponse], error) {
	return c.recordPayment.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ListPayments(ctx context.Context, req *connect.Request[ListPaymentsRequest]) (*connect.Response[ListPaymentsResponse], error) {
	return c.listPayments.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) DeletePayment(ctx context.Context, req *connect.Request[DeletePaymentRequest]) (*connect.Response[DeletePaymentResponse], error) {
	return c.deletePayment.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetSettlement(ctx context.Context, req *connect.Request[GetSettlementRequest]) (*connect.Response[GetSettlementResponse], error) {
	return c.getSettlement.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ConvertAmount(ctx context.Context, req *connect.Request[ConvertAmountRequest]) (*connect.Response[ConvertAmountResponse], error) {
	return c.convertAmount.CallUnary(ctx, req)
}

// WithBearerToken attaches an Authorization header to every call.
func WithBearerToken(token string) connect.ClientOption {
	return connect.WithInterceptors(connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set("Authorization", "Bearer "+token)
			return next(ctx, req)
		}
	}))
}
