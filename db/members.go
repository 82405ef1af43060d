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

// AddMember ...
func (d *DB) AddMember(ctx context.Context, groupID, name string) (*models.Member, error) {
	member := &models.Member{
		ID:        uuid.New().String(),
		GroupID:   groupID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO members (id, group_id, name, created_at) VALUES (?, ?, ?, ?)`,
		member.ID, member.GroupID, member.Name, member.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error inserting member: %w", err)
	}
	return member, nil
}

// GetMember ...
func (d *DB) GetMember(ctx context.Context, id string) (*models.Member, error) {
	var member models.Member
	err := d.db.QueryRowContext(ctx,
		`SELECT id, group_id, name, created_at FROM members WHERE id = ?`, id).
		Scan(&member.ID, &member.GroupID, &member.Name, &member.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying member: %w", err)
	}
	return &member, nil
}

// ListMembers ...
func (d *DB) ListMembers(ctx context.Context, groupID string) ([]models.Member, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, group_id, name, created_at FROM members WHERE group_id = ? ORDER BY created_at, id`,
		groupID)
	if err != nil {
		return nil, fmt.Errorf("error querying members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var member models.Member
		if err := rows.Scan(&member.ID, &member.GroupID, &member.Name, &member.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning member: %w", err)
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

// RemoveMember ...
func (d *DB) RemoveMember(ctx context.Context, groupID, memberID string) error {
	res, err := d.db.ExecContext(ctx,
		`DELETE FROM members WHERE id = ? AND group_id = ?`, memberID, groupID)
	if err != nil {
		return fmt.Errorf("error deleting member: %w", err)
	}
	return errNotFoundIfNoRows(res)
}
