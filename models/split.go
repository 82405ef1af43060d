package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type (
	// PercentageShare ...
	PercentageShare struct {
		MemberID   string
		Percentage decimal.Decimal
	}
)

var (
	// ErrNoParticipants ...
	ErrNoParticipants = errors.New("expense has no participants")

	// ErrNonPositiveAmount ...
	ErrNonPositiveAmount = errors.New("expense amount must be positive")

	// ErrInvalidPercentages ...
	ErrInvalidPercentages = errors.New("invalid percentages")

	hundred = decimal.NewFromInt(100)
)

// ComputeEqualSplits divides amount evenly among the given members, in
// cents. The remainder is distributed one cent at a time starting from the
// first member, so the shares always add up to amount.
func ComputeEqualSplits(amount PriceInCents, memberIDs []string) ([]Split, error) {
	if len(memberIDs) == 0 {
		return nil, ErrNoParticipants
	}
	if amount <= 0 {
		return nil, ErrNonPositiveAmount
	}
	n := PriceInCents(len(memberIDs))
	share := amount / n
	remainder := amount % n
	splits := make([]Split, len(memberIDs))
	for i, memberID := range memberIDs {
		s := share
		if PriceInCents(i) < remainder {
			s++
		}
		splits[i] = Split{MemberID: memberID, Amount: s}
	}
	return splits, nil
}

// ComputePercentageSplits allocates amount according to the given
// percentages, which must add up to exactly 100. Each share is rounded
// half-up to a cent, capped at the remaining unallocated cents, and the
// last member absorbs the residual, so the shares always add up to
// amount and are never negative.
func ComputePercentageSplits(amount PriceInCents, shares []PercentageShare) ([]Split, error) {
	if len(shares) == 0 {
		return nil, ErrNoParticipants
	}
	if amount <= 0 {
		return nil, ErrNonPositiveAmount
	}
	total := decimal.Zero
	for _, share := range shares {
		if share.Percentage.IsNegative() {
			return nil, fmt.Errorf("%w: negative percentage for member '%s': %s",
				ErrInvalidPercentages, share.MemberID, share.Percentage)
		}
		total = total.Add(share.Percentage)
	}
	if !total.Equal(hundred) {
		return nil, fmt.Errorf("%w: percentages must add up to 100, got %s", ErrInvalidPercentages, total)
	}

	splits := make([]Split, len(shares))
	var allocated PriceInCents
	for i, share := range shares {
		pct := share.Percentage
		var cents PriceInCents
		if i == len(shares)-1 {
			cents = amount - allocated
		} else {
			// amount.Decimal() is in currency units, so units*pct is
			// exactly pct% of the amount in cents.
			cents = PriceInCents(amount.Decimal().Mul(pct).Round(0).IntPart())
			// rounding half-up can over-allocate on sub-cent shares
			if remaining := amount - allocated; cents > remaining {
				cents = remaining
			}
			allocated += cents
		}
		splits[i] = Split{MemberID: share.MemberID, Amount: cents, Percentage: &pct}
	}
	return splits, nil
}
