package expenses_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/killshot-app/killshot/db"
	"github.com/killshot-app/killshot/models"
	"github.com/killshot-app/killshot/services/events"
	"github.com/killshot-app/killshot/services/expenses"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc   expenses.Service
	group *models.Group
	alice *models.Member
	bob   *models.Member
	carol *models.Member
}

type recordingNotifier struct {
	created []string
}

func (n *recordingNotifier) NotifyExpenseCreated(ctx context.Context, group *models.Group, payer *models.Member, expense *models.Expense) {
	n.created = append(n.created, expense.ID)
}

func newFixture(t *testing.T) (*fixture, *recordingNotifier) {
	t.Helper()
	ctx := context.Background()

	d, err := db.New(filepath.Join(t.TempDir(), "killshot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })

	eventsService, err := events.NewService(ctx, "" /*projectID*/)
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	svc := expenses.NewService(d, eventsService, notifier)

	group, err := d.CreateGroup(ctx, "flat")
	require.NoError(t, err)
	alice, err := d.AddMember(ctx, group.ID, "alice")
	require.NoError(t, err)
	bob, err := d.AddMember(ctx, group.ID, "bob")
	require.NoError(t, err)
	carol, err := d.AddMember(ctx, group.ID, "carol")
	require.NoError(t, err)

	return &fixture{svc: svc, group: group, alice: alice, bob: bob, carol: carol}, notifier
}

func TestCreateEqualExpense(t *testing.T) {
	ctx := context.Background()
	f, notifier := newFixture(t)

	expense, err := f.svc.Create(ctx, &expenses.CreateRequest{
		GroupID:     f.group.ID,
		PayerID:     f.alice.ID,
		Description: "pizza",
		Amount:      1000,
		SplitType:   models.SplitTypeEqual,
	})
	require.NoError(t, err)
	require.Len(t, expense.Splits, 3)
	assert.Equal(t, models.PriceInCents(334), expense.Splits[0].Amount)
	assert.Equal(t, models.PriceInCents(333), expense.Splits[1].Amount)
	assert.Equal(t, models.PriceInCents(333), expense.Splits[2].Amount)
	assert.Equal(t, []string{expense.ID}, notifier.created)

	got, err := f.svc.Get(ctx, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, "pizza", got.Description)
	require.Len(t, got.Splits, 3)
}

func TestCreateEqualExpenseSubset(t *testing.T) {
	ctx := context.Background()
	f, _ := newFixture(t)

	expense, err := f.svc.Create(ctx, &expenses.CreateRequest{
		GroupID:      f.group.ID,
		PayerID:      f.alice.ID,
		Description:  "taxi",
		Amount:       900,
		SplitType:    models.SplitTypeEqual,
		Participants: []string{f.alice.ID, f.bob.ID},
	})
	require.NoError(t, err)
	require.Len(t, expense.Splits, 2)
	assert.Equal(t, models.PriceInCents(450), expense.Splits[0].Amount)
	assert.Equal(t, models.PriceInCents(450), expense.Splits[1].Amount)
}

func TestCreatePercentageExpense(t *testing.T) {
	ctx := context.Background()
	f, _ := newFixture(t)

	expense, err := f.svc.Create(ctx, &expenses.CreateRequest{
		GroupID:     f.group.ID,
		PayerID:     f.bob.ID,
		Description: "rent",
		Amount:      100000,
		SplitType:   models.SplitTypePercentage,
		Shares: []models.PercentageShare{
			{MemberID: f.alice.ID, Percentage: decimal.RequireFromString("40")},
			{MemberID: f.bob.ID, Percentage: decimal.RequireFromString("35")},
			{MemberID: f.carol.ID, Percentage: decimal.RequireFromString("25")},
		},
	})
	require.NoError(t, err)
	require.Len(t, expense.Splits, 3)
	assert.Equal(t, models.PriceInCents(40000), expense.Splits[0].Amount)
	assert.Equal(t, models.PriceInCents(35000), expense.Splits[1].Amount)
	assert.Equal(t, models.PriceInCents(25000), expense.Splits[2].Amount)
}

func TestCreateExpenseValidation(t *testing.T) {
	ctx := context.Background()
	f, _ := newFixture(t)

	for _, tt := range []struct {
		name        string
		req         *expenses.CreateRequest
		expectedErr error
	}{
		{
			name: "empty description",
			req: &expenses.CreateRequest{
				GroupID: f.group.ID, PayerID: f.alice.ID,
				Description: "  ", Amount: 100, SplitType: models.SplitTypeEqual,
			},
			expectedErr: expenses.ErrEmptyDescription,
		},
		{
			name: "non-positive amount",
			req: &expenses.CreateRequest{
				GroupID: f.group.ID, PayerID: f.alice.ID,
				Description: "x", Amount: 0, SplitType: models.SplitTypeEqual,
			},
			expectedErr: models.ErrNonPositiveAmount,
		},
		{
			name: "invalid split type",
			req: &expenses.CreateRequest{
				GroupID: f.group.ID, PayerID: f.alice.ID,
				Description: "x", Amount: 100, SplitType: "weighted",
			},
			expectedErr: expenses.ErrInvalidSplitType,
		},
		{
			name: "unknown payer",
			req: &expenses.CreateRequest{
				GroupID: f.group.ID, PayerID: "nope",
				Description: "x", Amount: 100, SplitType: models.SplitTypeEqual,
			},
			expectedErr: expenses.ErrUnknownPayer,
		},
		{
			name: "unknown participant",
			req: &expenses.CreateRequest{
				GroupID: f.group.ID, PayerID: f.alice.ID,
				Description: "x", Amount: 100, SplitType: models.SplitTypeEqual,
				Participants: []string{f.alice.ID, "nope"},
			},
			expectedErr: expenses.ErrUnknownParticipant,
		},
		{
			name: "unknown group",
			req: &expenses.CreateRequest{
				GroupID: "nope", PayerID: f.alice.ID,
				Description: "x", Amount: 100, SplitType: models.SplitTypeEqual,
			},
			expectedErr: db.ErrNotFound,
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, tt.req)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestBalances(t *testing.T) {
	ctx := context.Background()
	f, _ := newFixture(t)

	_, err := f.svc.Create(ctx, &expenses.CreateRequest{
		GroupID:     f.group.ID,
		PayerID:     f.alice.ID,
		Description: "groceries",
		Amount:      3000,
		SplitType:   models.SplitTypeEqual,
	})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, &expenses.CreateRequest{
		GroupID:      f.group.ID,
		PayerID:      f.bob.ID,
		Description:  "beers",
		Amount:       600,
		SplitType:    models.SplitTypeEqual,
		Participants: []string{f.bob.ID, f.carol.ID},
	})
	require.NoError(t, err)

	balances, err := f.svc.Balances(ctx, f.group.ID)
	require.NoError(t, err)
	require.Len(t, balances, 3)

	byName := make(map[string]models.Balance)
	var netSum models.PriceInCents
	for _, balance := range balances {
		byName[balance.Name] = balance
		netSum += balance.Net
	}
	assert.Equal(t, models.PriceInCents(0), netSum)

	assert.Equal(t, models.PriceInCents(3000), byName["alice"].Paid)
	assert.Equal(t, models.PriceInCents(1000), byName["alice"].Owed)
	assert.Equal(t, models.PriceInCents(2000), byName["alice"].Net)

	assert.Equal(t, models.PriceInCents(600), byName["bob"].Paid)
	assert.Equal(t, models.PriceInCents(1300), byName["bob"].Owed)
	assert.Equal(t, models.PriceInCents(-700), byName["bob"].Net)

	assert.Equal(t, models.PriceInCents(0), byName["carol"].Paid)
	assert.Equal(t, models.PriceInCents(1300), byName["carol"].Owed)
	assert.Equal(t, models.PriceInCents(-1300), byName["carol"].Net)
}

func TestDeleteExpense(t *testing.T) {
	ctx := context.Background()
	f, _ := newFixture(t)

	expense, err := f.svc.Create(ctx, &expenses.CreateRequest{
		GroupID:     f.group.ID,
		PayerID:     f.alice.ID,
		Description: "pizza",
		Amount:      1000,
		SplitType:   models.SplitTypeEqual,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, expense.ID))
	_, err = f.svc.Get(ctx, expense.ID)
	assert.ErrorIs(t, err, db.ErrNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, expense.ID), db.ErrNotFound)
}
