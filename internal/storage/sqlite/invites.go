package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/toma1133/travel-app-sub001/internal/models"
	"github.com/toma1133/travel-app-sub001/internal/storage"
)

// CreateInvite persists a new invite. Only the code hash is stored.
func (s *SQLiteStore) CreateInvite(ctx context.Context, invite *models.Invite) error {
	if invite.ID == "" {
		invite.ID = uuid.New().String()
	}
	if invite.CreatedAt == 0 {
		invite.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO invites (id, trip_id, code_hash, role, created_by, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		invite.ID, invite.TripID, invite.CodeHash, string(invite.Role),
		invite.CreatedBy, invite.CreatedAt, invite.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert invite: %w", err)
	}
	return nil
}

// ListOpenInvites retrieves a trip's unused invites that expire after now.
func (s *SQLiteStore) ListOpenInvites(ctx context.Context, tripID string, now int64) ([]*models.Invite, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, code_hash, role, created_by, created_at, expires_at
		 FROM invites WHERE trip_id = ? AND used_by IS NULL AND expires_at > ?
		 ORDER BY created_at DESC`,
		tripID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	defer rows.Close()

	var invites []*models.Invite
	for rows.Next() {
		inv := &models.Invite{}
		var role string
		if err := rows.Scan(&inv.ID, &inv.TripID, &inv.CodeHash, &role, &inv.CreatedBy, &inv.CreatedAt, &inv.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan invite: %w", err)
		}
		inv.Role = models.Role(role)
		invites = append(invites, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invites: %w", err)
	}
	return invites, nil
}

// RedeemInvite marks an invite used and adds the new member atomically.
func (s *SQLiteStore) RedeemInvite(ctx context.Context, inviteID, userID string, member *models.Member) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE invites SET used_by = ? WHERE id = ? AND used_by IS NULL",
		userID, inviteID,
	)
	if err != nil {
		return fmt.Errorf("failed to redeem invite: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: invite %s already used", storage.ErrConflict, inviteID)
	}

	if err := insertMember(ctx, tx, member); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
