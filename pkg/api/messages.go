// Package api defines the request and response messages of the travel.v1
// services and typed clients for calling them. Messages travel as JSON;
// amounts and exchange rates are decimal strings.
package api

import "github.com/shopspring/decimal"

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

type Trip struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	HomeCurrency  string          `json:"home_currency"`
	LocalCurrency string          `json:"local_currency"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     int64           `json:"created_at"`
	UpdatedAt     int64           `json:"updated_at"`
}

type Member struct {
	ID          string `json:"id"`
	TripID      string `json:"trip_id"`
	UserID      string `json:"user_id,omitempty"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	JoinedAt    int64  `json:"joined_at"`
}

type Expense struct {
	ID          string          `json:"id"`
	TripID      string          `json:"trip_id"`
	Description string          `json:"description"`
	PayerID     string          `json:"payer_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	SplitWith   []string        `json:"split_with"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   int64           `json:"created_at"`
	UpdatedAt   int64           `json:"updated_at"`
}

type Payment struct {
	ID           string          `json:"id"`
	TripID       string          `json:"trip_id"`
	FromMemberID string          `json:"from_member_id"`
	ToMemberID   string          `json:"to_member_id"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Note         string          `json:"note,omitempty"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    int64           `json:"created_at"`
}

// Transaction is a suggested settle-up payment. Amount is in the home
// currency; LocalAmount is present only for two-currency trips.
type Transaction struct {
	FromMemberID string           `json:"from_member_id"`
	FromName     string           `json:"from_name"`
	ToMemberID   string           `json:"to_member_id"`
	ToName       string           `json:"to_name"`
	Amount       decimal.Decimal  `json:"amount"`
	LocalAmount  *decimal.Decimal `json:"local_amount,omitempty"`
}

type MemberBalance struct {
	MemberID   string          `json:"member_id"`
	MemberName string          `json:"member_name"`
	NetBalance decimal.Decimal `json:"net_balance"`
	TotalPaid  decimal.Decimal `json:"total_paid"`
	TotalOwed  decimal.Decimal `json:"total_owed"`
}

// SkippedRecord is an expense or payment left out of a settlement.
type SkippedRecord struct {
	Kind   string `json:"kind"`
	ID     string `json:"id"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

type Settlement struct {
	HomeCurrency  string          `json:"home_currency"`
	LocalCurrency string          `json:"local_currency"`
	Transactions  []Transaction   `json:"transactions"`
	Balances      []MemberBalance `json:"balances"`
	Skipped       []SkippedRecord `json:"skipped"`
}

// AuthService

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

// TripService

type CreateTripRequest struct {
	Name          string          `json:"name"`
	HomeCurrency  string          `json:"home_currency"`
	LocalCurrency string          `json:"local_currency"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate"`
	// DisplayName names the creator on the trip; defaults to the account name.
	DisplayName   string          `json:"display_name,omitempty"`
}

type CreateTripResponse struct {
	Trip   *Trip   `json:"trip"`
	Member *Member `json:"member"`
}

type GetTripRequest struct {
	TripID string `json:"trip_id"`
}

type GetTripResponse struct {
	Trip    *Trip     `json:"trip"`
	Members []*Member `json:"members"`
	// Role is the caller's role on the trip.
	Role    string    `json:"role"`
}

type ListTripsRequest struct{}

type ListTripsResponse struct {
	Trips []*Trip `json:"trips"`
}

type UpdateCurrencySettingsRequest struct {
	TripID        string          `json:"trip_id"`
	HomeCurrency  string          `json:"home_currency"`
	LocalCurrency string          `json:"local_currency"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate"`
}

type UpdateCurrencySettingsResponse struct {
	Trip *Trip `json:"trip"`
}

type DeleteTripRequest struct {
	TripID string `json:"trip_id"`
}

type DeleteTripResponse struct{}

type AddMemberRequest struct {
	TripID      string `json:"trip_id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role,omitempty"`
	UserID      string `json:"user_id,omitempty"`
}

type AddMemberResponse struct {
	Member *Member `json:"member"`
}

type UpdateMemberRoleRequest struct {
	TripID   string `json:"trip_id"`
	MemberID string `json:"member_id"`
	Role     string `json:"role"`
}

type UpdateMemberRoleResponse struct {
	Member *Member `json:"member"`
}

type RemoveMemberRequest struct {
	TripID   string `json:"trip_id"`
	MemberID string `json:"member_id"`
}

type RemoveMemberResponse struct{}

type CreateInviteRequest struct {
	TripID string `json:"trip_id"`
	Role   string `json:"role,omitempty"`
}

type CreateInviteResponse struct {
	InviteID  string `json:"invite_id"`
	// Code is returned once; only its hash is stored.
	Code      string `json:"code"`
	ExpiresAt int64  `json:"expires_at"`
}

type JoinTripRequest struct {
	TripID      string `json:"trip_id"`
	Code        string `json:"code"`
	DisplayName string `json:"display_name,omitempty"`
}

type JoinTripResponse struct {
	Trip   *Trip   `json:"trip"`
	Member *Member `json:"member"`
}

// ExpenseService

type CreateExpenseRequest struct {
	TripID      string          `json:"trip_id"`
	Description string          `json:"description"`
	PayerID     string          `json:"payer_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	SplitWith   []string        `json:"split_with"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type UpdateExpenseRequest struct {
	TripID      string          `json:"trip_id"`
	ExpenseID   string          `json:"expense_id"`
	Description string          `json:"description"`
	PayerID     string          `json:"payer_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	SplitWith   []string        `json:"split_with"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	TripID    string `json:"trip_id"`
	ExpenseID string `json:"expense_id"`
}

type DeleteExpenseResponse struct{}

type ListExpensesRequest struct {
	TripID string `json:"trip_id"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type RecordPaymentRequest struct {
	TripID       string          `json:"trip_id"`
	FromMemberID string          `json:"from_member_id"`
	ToMemberID   string          `json:"to_member_id"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Note         string          `json:"note,omitempty"`
}

type RecordPaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type ListPaymentsRequest struct {
	TripID string `json:"trip_id"`
}

type ListPaymentsResponse struct {
	Payments []*Payment `json:"payments"`
}

type DeletePaymentRequest struct {
	TripID    string `json:"trip_id"`
	PaymentID string `json:"payment_id"`
}

type DeletePaymentResponse struct{}

type GetSettlementRequest struct {
	TripID string `json:"trip_id"`
}

type GetSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type ConvertAmountRequest struct {
	TripID   string          `json:"trip_id"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type ConvertAmountResponse struct {
	HomeCurrency  string          `json:"home_currency"`
	HomeAmount    decimal.Decimal `json:"home_amount"`
	LocalCurrency string          `json:"local_currency"`
	LocalAmount   decimal.Decimal `json:"local_amount"`
}
