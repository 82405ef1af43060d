package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/killshot-app/killshot/models"

	"cloud.google.com/go/pubsub"
)

type (
	// Service ...
	Service interface {
		PublishExpenseCreated(ctx context.Context, expense *models.Expense) (id string, err error)
		PublishExpenseDeleted(ctx context.Context, expenseID, groupID string) (id string, err error)
		Close()
	}

	service struct {
		client *pubsub.Client
	}

	expenseEvent struct {
		Type    string          `json:"type"`
		Expense *models.Expense `json:"expense,omitempty"`
		ID      string          `json:"id,omitempty"`
		GroupID string          `json:"group_id,omitempty"`
	}
)

const (
	topicExpenses = "expenses"
)

var (
	// ErrServiceNotConfigured ...
	ErrServiceNotConfigured = errors.New("the pubsub client was not configured with a projectID")
)

// NewService returns a no-op Service when projectID is empty.
func NewService(ctx context.Context, projectID string) (Service, error) {
	if projectID == "" {
		return &service{}, nil
	}
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("error creating pubsub client: %w", err)
	}
	return &service{client}, nil
}

func (s *service) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

func (s *service) PublishExpenseCreated(ctx context.Context, expense *models.Expense) (string, error) {
	return s.publish(ctx, &expenseEvent{Type: "expense_created", Expense: expense})
}

func (s *service) PublishExpenseDeleted(ctx context.Context, expenseID, groupID string) (string, error) {
	return s.publish(ctx, &expenseEvent{Type: "expense_deleted", ID: expenseID, GroupID: groupID})
}

func (s *service) publish(ctx context.Context, event *expenseEvent) (string, error) {
	if s.client == nil {
		return "", ErrServiceNotConfigured
	}
	data, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("error marshaling event: %w", err)
	}
	msg := &pubsub.Message{Data: data}
	id, err := s.client.Topic(topicExpenses).Publish(ctx, msg).Get(ctx)
	if err != nil {
		return "", fmt.Errorf("error publishing pubsub message: %w", err)
	}
	return id, nil
}
