package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/toma1133/travel-app-sub001/internal/cache"
	"github.com/toma1133/travel-app-sub001/internal/calculator"
	"github.com/toma1133/travel-app-sub001/internal/currency"
	"github.com/toma1133/travel-app-sub001/internal/metrics"
	"github.com/toma1133/travel-app-sub001/internal/models"
	"github.com/toma1133/travel-app-sub001/internal/rpc"
	"github.com/toma1133/travel-app-sub001/internal/storage"
	"github.com/toma1133/travel-app-sub001/pkg/api"
)

// ExpenseService implements the ExpenseService RPC interface: expenses,
// recorded payments, settlements and conversions.
type ExpenseService struct {
	store       storage.Store
	settlements *cache.Loader
	metrics     *metrics.Metrics
	tolerance   decimal.Decimal
}

// NewExpenseService creates an ExpenseService. tolerance is the settlement
// band in home currency units; m may be nil.
func NewExpenseService(store storage.Store, settlements *cache.Loader, m *metrics.Metrics, tolerance decimal.Decimal) *ExpenseService {
	return &ExpenseService{store: store, settlements: settlements, metrics: m, tolerance: tolerance}
}

// Mount registers the handlers on mux.
func (s *ExpenseService) Mount(mux *http.ServeMux, opts ...connect.HandlerOption) {
	rpc.Mount(mux, api.ExpenseServiceCreateExpenseProcedure, s.CreateExpense, opts...)
	rpc.Mount(mux, api.ExpenseServiceUpdateExpenseProcedure, s.UpdateExpense, opts...)
	rpc.Mount(mux, api.ExpenseServiceDeleteExpenseProcedure, s.DeleteExpense, opts...)
	rpc.Mount(mux, api.ExpenseServiceListExpensesProcedure, s.ListExpenses, opts...)
	rpc.Mount(mux, api.ExpenseServiceRecordPaymentProcedure, s.RecordPayment, opts...)
	rpc.Mount(mux, api.ExpenseServiceListPaymentsProcedure, s.ListPayments, opts...)
	rpc.Mount(mux, api.ExpenseServiceDeletePaymentProcedure, s.DeletePayment, opts...)
	rpc.Mount(mux, api.ExpenseServiceGetSettlementProcedure, s.GetSettlement, opts...)
	rpc.Mount(mux, api.ExpenseServiceConvertAmountProcedure, s.ConvertAmount, opts...)
}

// memberSet returns the IDs of the trip's members.
func (s *ExpenseService) memberSet(ctx context.Context, tripID string) (map[string]bool, error) {
	members, err := s.store.ListMembers(ctx, tripID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(members))
	for _, m := range members {
		set[m.ID] = true
	}
	return set, nil
}

// checkAmount validates an amount and its currency against the trip's
// settings and returns the normalized currency code.
func checkAmount(settings currency.Settings, amount decimal.Decimal, code string) (string, error) {
	if !amount.IsPositive() {
		return "", invalidArgument("amount must be positive, got %s", amount.String())
	}
	if code == "" {
		code = settings.HomeCurrency
	}
	code = currency.Normalize(code)
	if !settings.Supports(code) {
		return "", invalidArgument("currency %s is neither %s nor %s", code, settings.HomeCurrency, settings.LocalCurrency)
	}
	return code, nil
}

// expenseFields holds the editable fields shared by create and update.
type expenseFields struct {
	description string
	payerID     string
	amount      decimal.Decimal
	currency    string
	splitWith   []string
}

func (s *ExpenseService) validateExpense(ctx context.Context, access *tripAccess, f expenseFields) (expenseFields, error) {
	code, err := checkAmount(access.trip.Currency, f.amount, f.currency)
	if err != nil {
		return f, err
	}
	f.currency = code
	f.description = strings.TrimSpace(f.description)

	members, err := s.memberSet(ctx, access.trip.ID)
	if err != nil {
		return f, storageError("ListMembers", err)
	}
	if f.payerID == "" {
		f.payerID = access.member.ID
	}
	if !members[f.payerID] {
		return f, invalidArgument("payer %s is not a member of the trip", f.payerID)
	}
	for _, id := range f.splitWith {
		if !members[id] {
			return f, invalidArgument("split member %s is not a member of the trip", id)
		}
	}
	return f, nil
}

// CreateExpense records an expense. The payer defaults to the caller.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	access, err := authorize(ctx, s.store, req.Msg.TripID, models.RoleEditor)
	if err != nil {
		return nil, err
	}

	f, err := s.validateExpense(ctx, access, expenseFields{
		description: req.Msg.Description,
		payerID:     req.Msg.PayerID,
		amount:      req.Msg.Amount,
		currency:    req.Msg.Currency,
		splitWith:   req.Msg.SplitWith,
	})
	if err != nil {
		slog.Warn("CreateExpense rejected", "trip_id", access.trip.ID, "error", err)
		return nil, err
	}

	expense := &models.Expense{
		TripID:      access.trip.ID,
		Description: f.description,
		PayerID:     f.payerID,
		Amount:      f.amount,
		Currency:    f.currency,
		SplitWith:   f.splitWith,
		CreatedBy:   access.userID,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, storageError("CreateExpense", err)
	}
	s.settlements.Invalidate(ctx, access.trip.ID)

	slog.Info("Expense created", "trip_id", access.trip.ID, "expense_id", expense.ID,
		"amount", expense.Amount.String(), "currency", expense.Currency)
	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// UpdateExpense replaces an expense's editable fields.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	access, err := authorize(ctx, s.store, req.Msg.TripID, models.RoleEditor)
	if err != nil {
		return nil, err
	}

	expense, err := s.store.GetExpense(ctx, access.trip.ID, req.Msg.ExpenseID)
	if err != nil {
		return nil, storageError("GetExpense", err)
	}

	payerID := req.Msg.PayerID
	if payerID == "" {
		payerID = expense.PayerID
	}
	f, err := s.validateExpense(ctx, access, expenseFields{
		description: req.Msg.Description,
		payerID:     payerID,
		amount:      req.Msg.Amount,
		currency:    req.Msg.Currency,
		splitWith:   req.Msg.SplitWith,
	})
	if err != nil {
		slog.Warn("UpdateExpense rejected", "trip_id", access.trip.ID, "expense_id", expense.ID, "error", err)
		return nil, err
	}

	expense.Description = f.description
	expense.PayerID = f.payerID
	expense.Amount = f.amount
	expense.Currency = f.currency
	expense.SplitWith = f.splitWith
	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		return nil, storageError("UpdateExpense", err)
	}
	s.settlements.Invalidate(ctx, access.trip.ID)

	slog.Info("Expense updated", "trip_id", access.trip.ID, "expense_id", expense.ID)
	return connect.NewResponse(&api.UpdateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// DeleteExpense removes an expense.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	access, err := authorize(ctx, s.store, req.Msg.TripID, models.RoleEditor)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteExpense(ctx, access.trip.ID, req.Msg.ExpenseID); err != nil {
		return nil, storageError("DeleteExpense", err)
	}
	s.settlements.Invalidate(ctx, access.trip.ID)

	slog.Info("Expense deleted", "trip_id", access.trip.ID, "expense_id", req.Msg.ExpenseID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// ListExpenses returns a trip's expenses in recording order.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	access, err := authorize(ctx, s.store, req.Msg.TripID, models.RoleViewer)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpenses(ctx, access.trip.ID)
	if err != nil {
		return nil, storageError("ListExpenses", err)
	}
	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e)
	}
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// RecordPayment records money handed from one member to another to settle up.
func (s *ExpenseService) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	access, err := authorize(ctx, s.store, req.Msg.TripID, models.RoleEditor)
	if err != nil {
		return nil, err
	}

	code, err := checkAmount(access.trip.Currency, req.Msg.Amount, req.Msg.Currency)
	if err != nil {
		return nil, err
	}
	if req.Msg.FromMemberID == req.Msg.ToMemberID {
		return nil, invalidArgument("a payment needs two different members")
	}
	members, err := s.memberSet(ctx, access.trip.ID)
	if err != nil {
		return nil, storageError("ListMembers", err)
	}
	for _, id := range []string{req.Msg.FromMemberID, req.Msg.ToMemberID} {
		if !members[id] {
			return nil, invalidArgument("member %q is not a member of the trip", id)
		}
	}

	payment := &models.Payment{
		TripID:       access.trip.ID,
		FromMemberID: req.Msg.FromMemberID,
		ToMemberID:   req.Msg.ToMemberID,
		Amount:       req.Msg.Amount,
		Currency:     code,
		CreatedBy:    access.userID,
		Note:         strings.TrimSpace(req.Msg.Note),
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		return nil, storageError("CreatePayment", err)
	}
	s.settlements.Invalidate(ctx, access.trip.ID)

	slog.Info("Payment recorded", "trip_id", access.trip.ID, "payment_id", payment.ID,
		"amount", payment.Amount.String(), "currency", payment.Currency)
	return connect.NewResponse(&api.RecordPaymentResponse{Payment: toAPIPayment(payment)}), nil
}

// ListPayments returns a trip's recorded payments.
func (s *ExpenseService) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	access, err := authorize(ctx, s.store, req.Msg.TripID, models.RoleViewer)
	if err != nil {
		return nil, err
	}

	payments, err := s.store.ListPayments(ctx, access.trip.ID)
	if err != nil {
		return nil, storageError("ListPayments", err)
	}
	out := make([]*api.Payment, len(payments))
	for i, p := range payments {
		out[i] = toAPIPayment(p)
	}
	return connect.NewResponse(&api.ListPaymentsResponse{Payments: out}), nil
}

// DeletePayment removes a recorded payment.
func (s *ExpenseService) DeletePayment(ctx context.Context, req *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error) {
	access, err := authorize(ctx, s.store, req.Msg.TripID, models.RoleEditor)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeletePayment(ctx, access.trip.ID, req.Msg.PaymentID); err != nil {
		return nil, storageError("DeletePayment", err)
	}
	s.settlements.Invalidate(ctx, access.trip.ID)

	slog.Info("Payment deleted", "trip_id", access.trip.ID, "payment_id", req.Msg.PaymentID)
	return connect.NewResponse(&api.DeletePaymentResponse{}), nil
}

// settlementInput loads a trip's records into the engine's input shape.
func (s *ExpenseService) settlementInput(ctx context.Context, tripID string) (calculator.Input, error) {
	var in calculator.Input

	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return in, err
	}
	members, err := s.store.ListMembers(ctx, tripID)
	if err != nil {
		return in, err
	}
	expenses, err := s.store.ListExpenses(ctx, tripID)
	if err != nil {
		return in, err
	}
	payments, err := s.store.ListPayments(ctx, tripID)
	if err != nil {
		return in, err
	}

	in.Currency = trip.Currency
	in.Members = make([]calculator.Member, len(members))
	for i, m := range members {
		in.Members[i] = calculator.Member{ID: m.ID, Name: m.DisplayName}
	}
	in.Expenses = make([]calculator.Expense, len(expenses))
	for i, e := range expenses {
		in.Expenses[i] = calculator.Expense{
			ID:        e.ID,
			PayerID:   e.PayerID,
			Amount:    e.Amount,
			Currency:  e.Currency,
			SplitWith: e.SplitWith,
		}
	}
	in.Payments = make([]calculator.Payment, len(payments))
	for i, p := range payments {
		in.Payments[i] = calculator.Payment{
			ID:       p.ID,
			FromID:   p.FromMemberID,
			ToID:     p.ToMemberID,
			Amount:   p.Amount,
			Currency: p.Currency,
		}
	}
	return in, nil
}

// computeSettlement runs the engine over the stored records of a trip.
func (s *ExpenseService) computeSettlement(ctx context.Context, tripID string) (*calculator.Result, error) {
	in, err := s.settlementInput(ctx, tripID)
	if err != nil {
		return nil, err
	}

	result, err := calculator.Settle(in, calculator.WithTolerance(s.tolerance))
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.SettlementsComputed.Inc()
		for _, sk := range result.Skipped {
			s.metrics.SkippedRecords.WithLabelValues(string(sk.Kind), string(sk.Reason)).Inc()
		}
	}
	slog.Info("Settlement computed",
		"trip_id", tripID,
		"members_count", len(in.Members),
		"expenses_count", len(in.Expenses),
		"payments_count", len(in.Payments),
		"transactions_count", len(result.Transactions),
		"skipped_count", result.SkippedCount(),
	)
	return result, nil
}

// settlementError maps engine and storage failures to connect codes.
func settlementError(tripID string, err error) error {
	switch {
	case calculator.IsConfigError(err):
		slog.Error("GetSettlement failed - bad currency configuration", "trip_id", tripID, "error", err)
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, calculator.ErrInvalidInput):
		slog.Error("GetSettlement failed - invalid input", "trip_id", tripID, "error", err)
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return storageError("GetSettlement", err)
	}
}

// GetSettlement returns the balances and suggested payments for a trip.
func (s *ExpenseService) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	access, err := authorize(ctx, s.store, req.Msg.TripID, models.RoleViewer)
	if err != nil {
		return nil, err
	}
	tripID := access.trip.ID

	result, err := s.settlements.Load(ctx, tripID, func(ctx context.Context) (*calculator.Result, error) {
		return s.computeSettlement(ctx, tripID)
	})
	if err != nil {
		return nil, settlementError(tripID, err)
	}
	return connect.NewResponse(&api.GetSettlementResponse{Settlement: toAPISettlement(result)}), nil
}

// ConvertAmount converts an amount in either trip currency into both.
func (s *ExpenseService) ConvertAmount(ctx context.Context, req *connect.Request[api.ConvertAmountRequest]) (*connect.Response[api.ConvertAmountResponse], error) {
	access, err := authorize(ctx, s.store, req.Msg.TripID, models.RoleViewer)
	if err != nil {
		return nil, err
	}
	settings := access.trip.Currency

	code, err := checkAmount(settings, req.Msg.Amount, req.Msg.Currency)
	if err != nil {
		return nil, err
	}

	home, err := settings.ToHome(req.Msg.Amount, code)
	if err != nil {
		return nil, conversionError(err)
	}
	local, err := settings.ToLocal(req.Msg.Amount, code)
	if err != nil {
		return nil, conversionError(err)
	}

	localCode := settings.LocalCurrency
	if localCode == "" {
		localCode = settings.HomeCurrency
	}
	return connect.NewResponse(&api.ConvertAmountResponse{
		HomeCurrency:  settings.HomeCurrency,
		HomeAmount:    home.Round(currency.Scale(settings.HomeCurrency)),
		LocalCurrency: localCode,
		LocalAmount:   local.Round(currency.Scale(localCode)),
	}), nil
}

func conversionError(err error) error {
	if errors.Is(err, currency.ErrInvalidExchangeRate) {
		return connect.NewError(connect.CodeFailedPrecondition, err)
	}
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("conversion failed: %w", err))
}
