package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/killshot-app/killshot/models"

	"github.com/google/uuid"
)

// CreateGroup ...
func (d *DB) CreateGroup(ctx context.Context, name string) (*models.Group, error) {
	group := &models.Group{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO groups (id, name, created_at) VALUES (?, ?, ?)`,
		group.ID, group.Name, group.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error inserting group: %w", err)
	}
	return group, nil
}

// GetGroup ...
func (d *DB) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	var group models.Group
	err := d.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM groups WHERE id = ?`, id).
		Scan(&group.ID, &group.Name, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying group: %w", err)
	}
	return &group, nil
}

// ListGroups ...
func (d *DB) ListGroups(ctx context.Context) ([]models.Group, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM groups ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("error querying groups: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var group models.Group
		if err := rows.Scan(&group.ID, &group.Name, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning group: %w", err)
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

// UpdateGroupName ...
func (d *DB) UpdateGroupName(ctx context.Context, id, name string) error {
	res, err := d.db.ExecContext(ctx,
		`UPDATE groups SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("error updating group: %w", err)
	}
	return errNotFoundIfNoRows(res)
}

// DeleteGroup deletes the group and, through FK cascade, its members,
// expenses and splits.
func (d *DB) DeleteGroup(ctx context.Context, id string) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM groups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting group: %w", err)
	}
	return errNotFoundIfNoRows(res)
}

func errNotFoundIfNoRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
