package groups

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/killshot-app/killshot/db"
	"github.com/killshot-app/killshot/models"
)

type (
	// Service ...
	Service interface {
		Create(ctx context.Context, name string) (*models.Group, error)
		Get(ctx context.Context, id string) (*models.Group, error)
		List(ctx context.Context) ([]models.Group, error)
		Rename(ctx context.Context, id, name string) error
		Delete(ctx context.Context, id string) error

		AddMember(ctx context.Context, groupID, name string) (*models.Member, error)
		ListMembers(ctx context.Context, groupID string) ([]models.Member, error)
		RemoveMember(ctx context.Context, groupID, memberID string) error
	}

	service struct {
		db *db.DB
	}
)

var (
	// ErrEmptyName ...
	ErrEmptyName = errors.New("name must not be empty")
)

// NewService ...
func NewService(database *db.DB) Service {
	return &service{db: database}
}

func (s *service) Create(ctx context.Context, name string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return s.db.CreateGroup(ctx, name)
}

func (s *service) Get(ctx context.Context, id string) (*models.Group, error) {
	return s.db.GetGroup(ctx, id)
}

func (s *service) List(ctx context.Context) ([]models.Group, error) {
	return s.db.ListGroups(ctx)
}

func (s *service) Rename(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	return s.db.UpdateGroupName(ctx, id, name)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.db.DeleteGroup(ctx, id)
}

func (s *service) AddMember(ctx context.Context, groupID, name string) (*models.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, err := s.db.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	member, err := s.db.AddMember(ctx, groupID, name)
	if err != nil {
		return nil, fmt.Errorf("error adding member '%s': %w", name, err)
	}
	return member, nil
}

func (s *service) ListMembers(ctx context.Context, groupID string) ([]models.Member, error) {
	if _, err := s.db.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.db.ListMembers(ctx, groupID)
}

func (s *service) RemoveMember(ctx context.Context, groupID, memberID string) error {
	return s.db.RemoveMember(ctx, groupID, memberID)
}
