package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/killshot-app/killshot/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateExpense inserts the expense and its splits in a single
// transaction.
func (d *DB) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now().UTC()
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, payer_id, description, amount_cents, split_type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.PayerID, expense.Description,
		int64(expense.Amount), string(expense.SplitType), expense.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting expense: %w", err)
	}

	for i := range expense.Splits {
		split := &expense.Splits[i]
		split.ExpenseID = expense.ID
		var pct sql.NullString
		if split.Percentage != nil {
			pct = sql.NullString{String: split.Percentage.String(), Valid: true}
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO expense_splits (expense_id, member_id, amount_cents, percentage)
			 VALUES (?, ?, ?, ?)`,
			split.ExpenseID, split.MemberID, int64(split.Amount), pct)
		if err != nil {
			return fmt.Errorf("error inserting expense split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

// GetExpense ...
func (d *DB) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	var expense models.Expense
	err := d.db.QueryRowContext(ctx,
		`SELECT id, group_id, payer_id, description, amount_cents, split_type, created_at
		 FROM expenses WHERE id = ?`, id).
		Scan(&expense.ID, &expense.GroupID, &expense.PayerID, &expense.Description,
			&expense.Amount, &expense.SplitType, &expense.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying expense: %w", err)
	}
	if err := d.loadSplits(ctx, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// ListExpenses returns the expenses of a group with their splits, oldest
// first.
func (d *DB) ListExpenses(ctx context.Context, groupID string) ([]models.Expense, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, group_id, payer_id, description, amount_cents, split_type, created_at
		 FROM expenses WHERE group_id = ? ORDER BY created_at, id`, groupID)
	if err != nil {
		return nil, fmt.Errorf("error querying expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var expense models.Expense
		if err := rows.Scan(&expense.ID, &expense.GroupID, &expense.PayerID, &expense.Description,
			&expense.Amount, &expense.SplitType, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range expenses {
		if err := d.loadSplits(ctx, &expenses[i]); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// DeleteExpense deletes the expense and, through FK cascade, its splits.
func (d *DB) DeleteExpense(ctx context.Context, id string) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting expense: %w", err)
	}
	return errNotFoundIfNoRows(res)
}

func (d *DB) loadSplits(ctx context.Context, expense *models.Expense) error {
	rows, err := d.db.QueryContext(ctx,
		`SELECT expense_id, member_id, amount_cents, percentage
		 FROM expense_splits WHERE expense_id = ? ORDER BY rowid`, expense.ID)
	if err != nil {
		return fmt.Errorf("error querying expense splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var split models.Split
		var pct sql.NullString
		if err := rows.Scan(&split.ExpenseID, &split.MemberID, &split.Amount, &pct); err != nil {
			return fmt.Errorf("error scanning expense split: %w", err)
		}
		if pct.Valid {
			dec, err := decimal.NewFromString(pct.String)
			if err != nil {
				return fmt.Errorf("error parsing stored percentage '%s': %w", pct.String, err)
			}
			split.Percentage = &dec
		}
		expense.Splits = append(expense.Splits, split)
	}
	return rows.Err()
}
