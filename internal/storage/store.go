// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/toma1133/travel-app-sub001/internal/currency"
	"github.com/toma1133/travel-app-sub001/internal/models"
)

var (
	// ErrNotFound is wrapped by every lookup that finds nothing.
	ErrNotFound = errors.New("not found")

	// ErrConflict is wrapped when a write would violate a uniqueness rule.
	ErrConflict = errors.New("already exists")
)

// TripStore persists trips and their membership.
type TripStore interface {
	// CreateTrip persists a new trip together with its first member.
	// ID and timestamp fields are populated by the store.
	CreateTrip(ctx context.Context, trip *models.Trip, owner *models.Member) error

	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// ListTripsForUser returns the trips the user is a member of, newest first.
	ListTripsForUser(ctx context.Context, userID string) ([]*models.Trip, error)

	UpdateTripCurrency(ctx context.Context, tripID string, settings currency.Settings) error

	// DeleteTrip removes the trip and everything that belongs to it.
	DeleteTrip(ctx context.Context, tripID string) error

	AddMember(ctx context.Context, member *models.Member) error
	GetMember(ctx context.Context, tripID, memberID string) (*models.Member, error)
	GetMemberByUser(ctx context.Context, tripID, userID string) (*models.Member, error)

	// ListMembers returns members in the order they joined.
	ListMembers(ctx context.Context, tripID string) ([]*models.Member, error)

	UpdateMemberRole(ctx context.Context, tripID, memberID string, role models.Role) error
	RemoveMember(ctx context.Context, tripID, memberID string) error

	// MemberHasRecords reports whether any expense or payment references the member.
	MemberHasRecords(ctx context.Context, tripID, memberID string) (bool, error)
}

// ExpenseStore persists expenses and recorded payments.
type ExpenseStore interface {
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, tripID, expenseID string) (*models.Expense, error)
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, tripID, expenseID string) error

	// ListExpenses returns the trip's expenses in the order they were recorded.
	ListExpenses(ctx context.Context, tripID string) ([]*models.Expense, error)

	CreatePayment(ctx context.Context, payment *models.Payment) error
	DeletePayment(ctx context.Context, tripID, paymentID string) error
	ListPayments(ctx context.Context, tripID string) ([]*models.Payment, error)
}

// InviteStore persists trip invites.
type InviteStore interface {
	CreateInvite(ctx context.Context, invite *models.Invite) error

	// ListOpenInvites returns unused, unexpired invites for a trip.
	ListOpenInvites(ctx context.Context, tripID string, now int64) ([]*models.Invite, error)

	// RedeemInvite marks the invite used by userID and adds member in one
	// transaction. It fails with ErrConflict if the invite was already used.
	RedeemInvite(ctx context.Context, inviteID, userID string, member *models.Member) error
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Store defines the full storage surface used by the services.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	TripStore
	ExpenseStore
	InviteStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}
