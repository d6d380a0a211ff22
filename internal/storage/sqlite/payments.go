package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/toma1133/travel-app-sub001/internal/models"
)

// CreatePayment persists a new payment to the database.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	// Generate ID if not set
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (id, trip_id, from_member_id, to_member_id, amount, currency, created_at, created_by, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.TripID, payment.FromMemberID, payment.ToMemberID,
		payment.Amount.String(), payment.Currency, payment.CreatedAt, payment.CreatedBy, nullString(payment.Note),
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

// DeletePayment removes a recorded payment.
func (s *SQLiteStore) DeletePayment(ctx context.Context, tripID, paymentID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM payments WHERE trip_id = ? AND id = ?", tripID, paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	return expectOneRow(result, "payment", paymentID)
}

// ListPayments retrieves all payments for a trip in recording order.
func (s *SQLiteStore) ListPayments(ctx context.Context, tripID string) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, from_member_id, to_member_id, amount, currency, created_at, created_by, note
		 FROM payments WHERE trip_id = ? ORDER BY created_at, rowid`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p := &models.Payment{}
		var note sql.NullString
		err := rows.Scan(&p.ID, &p.TripID, &p.FromMemberID, &p.ToMemberID,
			&p.Amount, &p.Currency, &p.CreatedAt, &p.CreatedBy, &note)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		p.Note = note.String
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}
