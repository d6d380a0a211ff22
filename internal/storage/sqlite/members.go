package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/toma1133/travel-app-sub001/internal/models"
	"github.com/toma1133/travel-app-sub001/internal/storage"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertMember(ctx context.Context, db execer, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}

	_, err := db.ExecContext(ctx,
		"INSERT INTO members (id, trip_id, user_id, display_name, role, joined_at) VALUES (?, ?, ?, ?, ?, ?)",
		member.ID, member.TripID, nullString(member.UserID), member.DisplayName, string(member.Role), member.JoinedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: user %s is already a member of trip %s", storage.ErrConflict, member.UserID, member.TripID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// AddMember adds a member to an existing trip.
func (s *SQLiteStore) AddMember(ctx context.Context, member *models.Member) error {
	return insertMember(ctx, s.db, member)
}

const memberColumns = "id, trip_id, user_id, display_name, role, joined_at"

func scanMember(row rowScanner) (*models.Member, error) {
	m := &models.Member{}
	var userID sql.NullString
	var role string
	if err := row.Scan(&m.ID, &m.TripID, &userID, &m.DisplayName, &role, &m.JoinedAt); err != nil {
		return nil, err
	}
	m.UserID = userID.String
	m.Role = models.Role(role)
	return m, nil
}

func (s *SQLiteStore) getMember(ctx context.Context, where string, args ...any) (*models.Member, error) {
	m, err := scanMember(s.db.QueryRowContext(ctx, "SELECT "+memberColumns+" FROM members WHERE "+where, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}

// GetMember retrieves a member of a trip by member ID.
func (s *SQLiteStore) GetMember(ctx context.Context, tripID, memberID string) (*models.Member, error) {
	m, err := s.getMember(ctx, "trip_id = ? AND id = ?", tripID, memberID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: member %s", storage.ErrNotFound, memberID)
	}
	return m, err
}

// GetMemberByUser retrieves the member record linking a user to a trip.
func (s *SQLiteStore) GetMemberByUser(ctx context.Context, tripID, userID string) (*models.Member, error) {
	m, err := s.getMember(ctx, "trip_id = ? AND user_id = ?", tripID, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %s on trip %s", storage.ErrNotFound, userID, tripID)
	}
	return m, err
}

// ListMembers retrieves a trip's members in join order.
func (s *SQLiteStore) ListMembers(ctx context.Context, tripID string) ([]*models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+memberColumns+" FROM members WHERE trip_id = ? ORDER BY joined_at, rowid",
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// UpdateMemberRole changes a member's role.
func (s *SQLiteStore) UpdateMemberRole(ctx context.Context, tripID, memberID string, role models.Role) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE members SET role = ? WHERE trip_id = ? AND id = ?",
		string(role), tripID, memberID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}
	return expectOneRow(result, "member", memberID)
}

// RemoveMember deletes a member from a trip.
func (s *SQLiteStore) RemoveMember(ctx context.Context, tripID, memberID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM members WHERE trip_id = ? AND id = ?", tripID, memberID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return expectOneRow(result, "member", memberID)
}

// MemberHasRecords reports whether an expense, split or payment references the member.
func (s *SQLiteStore) MemberHasRecords(ctx context.Context, tripID, memberID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM expenses WHERE trip_id = ? AND payer_id = ?
		     UNION ALL
		     SELECT 1 FROM expense_splits es JOIN expenses e ON e.id = es.expense_id
		         WHERE e.trip_id = ? AND es.member_id = ?
		     UNION ALL
		     SELECT 1 FROM payments WHERE trip_id = ? AND (from_member_id = ? OR to_member_id = ?)
		 )`,
		tripID, memberID, tripID, memberID, tripID, memberID, memberID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check member records: %w", err)
	}
	return exists, nil
}
