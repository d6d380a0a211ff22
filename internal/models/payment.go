package models

import "github.com/shopspring/decimal"

// Payment represents a payment between trip members to clear debts.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// TripID is the trip this payment belongs to.
	TripID string

	// FromMemberID is the member who paid (debtor settling up).
	FromMemberID string

	// ToMemberID is the member who received payment (creditor being paid).
	ToMemberID string

	// Amount is the payment amount, in Currency.
	Amount decimal.Decimal

	// Currency is the trip's home or local currency code.
	Currency string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64

	// CreatedBy is the user ID who recorded this payment.
	CreatedBy string

	// Note is an optional description for the payment.
	Note string
}
