package models

import "github.com/shopspring/decimal"

// Expense represents a cost paid by one member and shared among others.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// TripID is the trip the expense belongs to.
	TripID string

	// Description is what was paid for (e.g., "Ryokan night 1").
	Description string

	// PayerID is the member ID of the person who paid.
	PayerID string

	// Amount is the amount paid, in Currency.
	Amount decimal.Decimal

	// Currency is the trip's home or local currency code.
	Currency string

	// SplitWith are the member IDs sharing the cost. The payer always shares,
	// whether listed or not.
	SplitWith []string

	// CreatedBy is the user ID who recorded this expense.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last edit.
	UpdatedAt int64
}
