package models_test

import (
	"testing"

	"github.com/killshot-app/killshot/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeEqualSplits(t *testing.T) {
	for _, tt := range []struct {
		name     string
		amount   models.PriceInCents
		members  []string
		expected []models.PriceInCents
	}{
		{
			name:     "even division",
			amount:   900,
			members:  []string{"a", "b", "c"},
			expected: []models.PriceInCents{300, 300, 300},
		},
		{
			name:     "remainder goes to the first members",
			amount:   1000,
			members:  []string{"a", "b", "c"},
			expected: []models.PriceInCents{334, 333, 333},
		},
		{
			name:     "two members odd cent",
			amount:   101,
			members:  []string{"a", "b"},
			expected: []models.PriceInCents{51, 50},
		},
		{
			name:     "single member",
			amount:   250,
			members:  []string{"a"},
			expected: []models.PriceInCents{250},
		},
		{
			name:     "amount smaller than member count",
			amount:   2,
			members:  []string{"a", "b", "c"},
			expected: []models.PriceInCents{1, 1, 0},
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			splits, err := models.ComputeEqualSplits(tt.amount, tt.members)
			require.NoError(t, err)
			require.Len(t, splits, len(tt.expected))

			var sum models.PriceInCents
			for i, split := range splits {
				assert.Equal(t, tt.members[i], split.MemberID)
				assert.Equal(t, tt.expected[i], split.Amount)
				sum += split.Amount
			}
			assert.Equal(t, tt.amount, sum)
		})
	}
}

func TestComputeEqualSplitsError(t *testing.T) {
	_, err := models.ComputeEqualSplits(100, nil)
	assert.ErrorIs(t, err, models.ErrNoParticipants)

	_, err = models.ComputeEqualSplits(0, []string{"a"})
	assert.ErrorIs(t, err, models.ErrNonPositiveAmount)

	_, err = models.ComputeEqualSplits(-100, []string{"a"})
	assert.ErrorIs(t, err, models.ErrNonPositiveAmount)
}

func pct(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputePercentageSplits(t *testing.T) {
	for _, tt := range []struct {
		name     string
		amount   models.PriceInCents
		shares   []models.PercentageShare
		expected []models.PriceInCents
	}{
		{
			name:   "fifty fifty",
			amount: 1000,
			shares: []models.PercentageShare{
				{MemberID: "a", Percentage: pct("50")},
				{MemberID: "b", Percentage: pct("50")},
			},
			expected: []models.PriceInCents{500, 500},
		},
		{
			name:   "uneven thirds, last absorbs the residual",
			amount: 1000,
			shares: []models.PercentageShare{
				{MemberID: "a", Percentage: pct("33.33")},
				{MemberID: "b", Percentage: pct("33.33")},
				{MemberID: "c", Percentage: pct("33.34")},
			},
			expected: []models.PriceInCents{333, 333, 334},
		},
		{
			name:   "rounding half-up",
			amount: 101,
			shares: []models.PercentageShare{
				{MemberID: "a", Percentage: pct("50")},
				{MemberID: "b", Percentage: pct("50")},
			},
			expected: []models.PriceInCents{51, 50},
		},
		{
			name:   "sub-cent shares never go negative",
			amount: 2,
			shares: []models.PercentageShare{
				{MemberID: "a", Percentage: pct("25")},
				{MemberID: "b", Percentage: pct("25")},
				{MemberID: "c", Percentage: pct("25")},
				{MemberID: "d", Percentage: pct("25")},
			},
			expected: []models.PriceInCents{1, 1, 0, 0},
		},
		{
			name:   "one cent across three members",
			amount: 1,
			shares: []models.PercentageShare{
				{MemberID: "a", Percentage: pct("33.33")},
				{MemberID: "b", Percentage: pct("33.33")},
				{MemberID: "c", Percentage: pct("33.34")},
			},
			expected: []models.PriceInCents{0, 0, 1},
		},
		{
			name:   "zero percentage allowed",
			amount: 500,
			shares: []models.PercentageShare{
				{MemberID: "a", Percentage: pct("100")},
				{MemberID: "b", Percentage: pct("0")},
			},
			expected: []models.PriceInCents{500, 0},
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			splits, err := models.ComputePercentageSplits(tt.amount, tt.shares)
			require.NoError(t, err)
			require.Len(t, splits, len(tt.expected))

			var sum models.PriceInCents
			for i, split := range splits {
				assert.Equal(t, tt.shares[i].MemberID, split.MemberID)
				assert.Equal(t, tt.expected[i], split.Amount)
				assert.GreaterOrEqual(t, split.Amount, models.PriceInCents(0))
				require.NotNil(t, split.Percentage)
				assert.True(t, split.Percentage.Equal(tt.shares[i].Percentage))
				sum += split.Amount
			}
			assert.Equal(t, tt.amount, sum)
		})
	}
}

func TestComputePercentageSplitsError(t *testing.T) {
	_, err := models.ComputePercentageSplits(100, nil)
	assert.ErrorIs(t, err, models.ErrNoParticipants)

	_, err = models.ComputePercentageSplits(0, []models.PercentageShare{{MemberID: "a", Percentage: pct("100")}})
	assert.ErrorIs(t, err, models.ErrNonPositiveAmount)

	_, err = models.ComputePercentageSplits(100, []models.PercentageShare{
		{MemberID: "a", Percentage: pct("60")},
		{MemberID: "b", Percentage: pct("50")},
	})
	assert.ErrorContains(t, err, "must add up to 100")

	_, err = models.ComputePercentageSplits(100, []models.PercentageShare{
		{MemberID: "a", Percentage: pct("110")},
		{MemberID: "b", Percentage: pct("-10")},
	})
	assert.ErrorContains(t, err, "negative percentage")
}
