package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/toma1133/travel-app-sub001/internal/currency"
	"github.com/toma1133/travel-app-sub001/internal/models"
	"github.com/toma1133/travel-app-sub001/internal/storage"
)

// CreateTrip persists a new trip and its owner in a single transaction.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip, owner *models.Member) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if trip.CreatedAt == 0 {
		trip.CreatedAt = now
	}
	trip.UpdatedAt = trip.CreatedAt
	if trip.Name == "" {
		trip.Name = generateTripName(trip.Currency, time.Unix(trip.CreatedAt, 0))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO trips (id, name, home_currency, local_currency, exchange_rate, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		trip.ID, trip.Name, trip.Currency.HomeCurrency, trip.Currency.LocalCurrency,
		trip.Currency.ExchangeRate.String(), trip.CreatedBy, trip.CreatedAt, trip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	if owner != nil {
		owner.TripID = trip.ID
		if err := insertMember(ctx, tx, owner); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*models.Trip, error) {
	trip := &models.Trip{}
	var rate string
	err := row.Scan(&trip.ID, &trip.Name, &trip.Currency.HomeCurrency, &trip.Currency.LocalCurrency,
		&rate, &trip.CreatedBy, &trip.CreatedAt, &trip.UpdatedAt)
	if err != nil {
		return nil, err
	}
	trip.Currency.ExchangeRate, err = decimal.NewFromString(rate)
	if err != nil {
		return nil, fmt.Errorf("corrupt exchange rate %q for trip %s: %w", rate, trip.ID, err)
	}
	return trip, nil
}

const tripColumns = "t.id, t.name, t.home_currency, t.local_currency, t.exchange_rate, t.created_by, t.created_at, t.updated_at"

// GetTrip retrieves a trip by ID.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+tripColumns+" FROM trips t WHERE t.id = ?", tripID)
	trip, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: trip %s", storage.ErrNotFound, tripID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return trip, nil
}

// ListTripsForUser retrieves the trips a user is a member of.
func (s *SQLiteStore) ListTripsForUser(ctx context.Context, userID string) ([]*models.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tripColumns+`
		 FROM trips t JOIN members m ON m.trip_id = t.id
		 WHERE m.user_id = ?
		 ORDER BY t.created_at DESC, t.rowid DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []*models.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}
	return trips, nil
}

// UpdateTripCurrency replaces the trip's currency settings.
func (s *SQLiteStore) UpdateTripCurrency(ctx context.Context, tripID string, settings currency.Settings) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE trips SET home_currency = ?, local_currency = ?, exchange_rate = ?, updated_at = ? WHERE id = ?",
		settings.HomeCurrency, settings.LocalCurrency, settings.ExchangeRate.String(), time.Now().Unix(), tripID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip currency: %w", err)
	}
	return expectOneRow(result, "trip", tripID)
}

// DeleteTrip removes a trip; members, expenses, payments and invites cascade.
func (s *SQLiteStore) DeleteTrip(ctx context.Context, tripID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// expense_splits cascade from expenses, which cascade from trips
	result, err := tx.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", tripID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if err := expectOneRow(result, "trip", tripID); err != nil {
		return err
	}
	return tx.Commit()
}

func expectOneRow(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", storage.ErrNotFound, kind, id)
	}
	return nil
}

// generateTripName creates a name for trips created without one.
func generateTripName(settings currency.Settings, at time.Time) string {
	if settings.SingleCurrency() {
		return fmt.Sprintf("Trip - %s", at.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s trip - %s", settings.LocalCurrency, at.Format("Jan 2006"))
}
