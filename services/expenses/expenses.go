package expenses

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/killshot-app/killshot/db"
	"github.com/killshot-app/killshot/models"
	"github.com/killshot-app/killshot/services/events"

	"github.com/sirupsen/logrus"
)

type (
	// Service ...
	Service interface {
		Create(ctx context.Context, req *CreateRequest) (*models.Expense, error)
		Get(ctx context.Context, id string) (*models.Expense, error)
		ListByGroup(ctx context.Context, groupID string) ([]models.Expense, error)
		Delete(ctx context.Context, id string) error
		Balances(ctx context.Context, groupID string) ([]models.Balance, error)
	}

	// CreateRequest ...
	CreateRequest struct {
		GroupID     string
		PayerID     string
		Description string
		Amount      models.PriceInCents
		SplitType   models.SplitType

		// Participants selects the members of an equal split. Empty
		// means the whole group.
		Participants []string

		// Shares carries the percentages of a percentage split.
		Shares []models.PercentageShare
	}

	// Notifier is notified after an expense lands. Implementations must
	// not block on network failures longer than the request deadline.
	Notifier interface {
		NotifyExpenseCreated(ctx context.Context, group *models.Group, payer *models.Member, expense *models.Expense)
	}

	service struct {
		db       *db.DB
		events   events.Service
		notifier Notifier
	}
)

var (
	// ErrUnknownPayer ...
	ErrUnknownPayer = errors.New("payer is not a member of the group")

	// ErrUnknownParticipant ...
	ErrUnknownParticipant = errors.New("participant is not a member of the group")

	// ErrInvalidSplitType ...
	ErrInvalidSplitType = errors.New("invalid split type")

	// ErrEmptyDescription ...
	ErrEmptyDescription = errors.New("description must not be empty")
)

// NewService ...
func NewService(database *db.DB, eventsService events.Service, notifier Notifier) Service {
	return &service{db: database, events: eventsService, notifier: notifier}
}

func (s *service) Create(ctx context.Context, req *CreateRequest) (*models.Expense, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	if req.Amount <= 0 {
		return nil, models.ErrNonPositiveAmount
	}
	if !req.SplitType.Valid() {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidSplitType, req.SplitType)
	}

	group, err := s.db.GetGroup(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	members, err := s.db.ListMembers(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	memberByID := make(map[string]*models.Member, len(members))
	for i := range members {
		memberByID[members[i].ID] = &members[i]
	}
	payer, ok := memberByID[req.PayerID]
	if !ok {
		return nil, ErrUnknownPayer
	}

	splits, err := s.computeSplits(req, members, memberByID)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		GroupID:     req.GroupID,
		PayerID:     req.PayerID,
		Description: description,
		Amount:      req.Amount,
		SplitType:   req.SplitType,
		Splits:      splits,
	}
	if err := s.db.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}

	// both side effects are best-effort
	if _, err := s.events.PublishExpenseCreated(ctx, expense); err != nil && !errors.Is(err, events.ErrServiceNotConfigured) {
		logrus.Errorf("error publishing expense created event: %v", err)
	}
	if s.notifier != nil {
		s.notifier.NotifyExpenseCreated(ctx, group, payer, expense)
	}

	return expense, nil
}

func (s *service) computeSplits(
	req *CreateRequest,
	members []models.Member,
	memberByID map[string]*models.Member,
) ([]models.Split, error) {
	switch req.SplitType {
	case models.SplitTypeEqual:
		participants := req.Participants
		if len(participants) == 0 {
			participants = make([]string, len(members))
			for i := range members {
				participants[i] = members[i].ID
			}
		}
		for _, id := range participants {
			if _, ok := memberByID[id]; !ok {
				return nil, fmt.Errorf("%w: '%s'", ErrUnknownParticipant, id)
			}
		}
		return models.ComputeEqualSplits(req.Amount, participants)
	case models.SplitTypePercentage:
		for _, share := range req.Shares {
			if _, ok := memberByID[share.MemberID]; !ok {
				return nil, fmt.Errorf("%w: '%s'", ErrUnknownParticipant, share.MemberID)
			}
		}
		return models.ComputePercentageSplits(req.Amount, req.Shares)
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidSplitType, req.SplitType)
	}
}

func (s *service) Get(ctx context.Context, id string) (*models.Expense, error) {
	return s.db.GetExpense(ctx, id)
}

func (s *service) ListByGroup(ctx context.Context, groupID string) ([]models.Expense, error) {
	if _, err := s.db.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.db.ListExpenses(ctx, groupID)
}

func (s *service) Delete(ctx context.Context, id string) error {
	expense, err := s.db.GetExpense(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.DeleteExpense(ctx, id); err != nil {
		return err
	}
	if _, err := s.events.PublishExpenseDeleted(ctx, expense.ID, expense.GroupID); err != nil && !errors.Is(err, events.ErrServiceNotConfigured) {
		logrus.Errorf("error publishing expense deleted event: %v", err)
	}
	return nil
}

// Balances folds the group's expenses into per-member positions. The net
// amounts always add up to zero.
func (s *service) Balances(ctx context.Context, groupID string) ([]models.Balance, error) {
	if _, err := s.db.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	members, err := s.db.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.db.ListExpenses(ctx, groupID)
	if err != nil {
		return nil, err
	}

	paid := make(map[string]models.PriceInCents)
	owed := make(map[string]models.PriceInCents)
	for i := range expenses {
		expense := &expenses[i]
		paid[expense.PayerID] += expense.Amount
		for _, split := range expense.Splits {
			owed[split.MemberID] += split.Amount
		}
	}

	balances := make([]models.Balance, len(members))
	for i := range members {
		member := &members[i]
		balances[i] = models.Balance{
			MemberID: member.ID,
			Name:     member.Name,
			Paid:     paid[member.ID],
			Owed:     owed[member.ID],
			Net:      paid[member.ID] - owed[member.ID],
		}
	}
	return balances, nil
}
