package models

import "github.com/toma1133/travel-app-sub001/internal/currency"

// Trip represents a journey whose members share expenses.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// Name is the display name of the trip (e.g., "Kyoto 2026").
	Name string

	// Currency holds the home/local currencies and the exchange rate.
	Currency currency.Settings

	// CreatedBy is the user ID of the trip's creator.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last change to the trip itself.
	UpdatedAt int64
}
