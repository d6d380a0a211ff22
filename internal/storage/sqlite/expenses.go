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

func insertSplits(ctx context.Context, tx *sql.Tx, expense *models.Expense) error {
	seen := make(map[string]bool, len(expense.SplitWith))
	position := 0
	for _, memberID := range expense.SplitWith {
		if seen[memberID] {
			continue
		}
		seen[memberID] = true
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, member_id, position) VALUES (?, ?, ?)",
			expense.ID, memberID, position,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
		position++
	}
	return nil
}

// CreateExpense persists a new expense and its split list.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	expense.UpdatedAt = expense.CreatedAt

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, trip_id, description, payer_id, amount, currency, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.TripID, expense.Description, expense.PayerID, expense.Amount.String(),
		expense.Currency, expense.CreatedBy, expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	if err := insertSplits(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

const expenseColumns = "id, trip_id, description, payer_id, amount, currency, created_by, created_at, updated_at"

func scanExpense(row rowScanner) (*models.Expense, error) {
	e := &models.Expense{}
	err := row.Scan(&e.ID, &e.TripID, &e.Description, &e.PayerID, &e.Amount,
		&e.Currency, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetExpense retrieves an expense with its split list.
func (s *SQLiteStore) GetExpense(ctx context.Context, tripID, expenseID string) (*models.Expense, error) {
	expense, err := scanExpense(s.db.QueryRowContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE trip_id = ? AND id = ?",
		tripID, expenseID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: expense %s", storage.ErrNotFound, expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id FROM expense_splits WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var memberID string
		if err := rows.Scan(&memberID); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		expense.SplitWith = append(expense.SplitWith, memberID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}
	return expense, nil
}

// UpdateExpense replaces an expense's fields and split list.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	expense.UpdatedAt = time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE expenses SET description = ?, payer_id = ?, amount = ?, currency = ?, updated_at = ?
		 WHERE trip_id = ? AND id = ?`,
		expense.Description, expense.PayerID, expense.Amount.String(), expense.Currency,
		expense.UpdatedAt, expense.TripID, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if err := expectOneRow(result, "expense", expense.ID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_splits WHERE expense_id = ?", expense.ID); err != nil {
		return fmt.Errorf("failed to clear expense splits: %w", err)
	}
	if err := insertSplits(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteExpense deletes an expense; its splits cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, tripID, expenseID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE trip_id = ? AND id = ?", tripID, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return expectOneRow(result, "expense", expenseID)
}

// ListExpenses retrieves all expenses of a trip in recording order.
func (s *SQLiteStore) ListExpenses(ctx context.Context, tripID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE trip_id = ? ORDER BY created_at, rowid",
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	var expenses []*models.Expense
	byID := make(map[string]*models.Expense)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
		byID[e.ID] = e
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	if len(expenses) == 0 {
		return expenses, nil
	}

	// One query for every split of the trip; the pool holds a single connection
	splitRows, err := s.db.QueryContext(ctx,
		`SELECT es.expense_id, es.member_id FROM expense_splits es
		 JOIN expenses e ON e.id = es.expense_id
		 WHERE e.trip_id = ?
		 ORDER BY es.expense_id, es.position`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var expenseID, memberID string
		if err := splitRows.Scan(&expenseID, &memberID); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		if e, ok := byID[expenseID]; ok {
			e.SplitWith = append(e.SplitWith, memberID)
		}
	}
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}
	return expenses, nil
}
