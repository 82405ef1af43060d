package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type (
	// Group ...
	Group struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		CreatedAt time.Time `json:"created_at"`
	}

	// Member ...
	Member struct {
		ID        string    `json:"id"`
		GroupID   string    `json:"group_id"`
		Name      string    `json:"name"`
		CreatedAt time.Time `json:"created_at"`
	}

	// SplitType ...
	SplitType string

	// Expense ...
	Expense struct {
		ID          string       `json:"id"`
		GroupID     string       `json:"group_id"`
		PayerID     string       `json:"payer_id"`
		Description string       `json:"description"`
		Amount      PriceInCents `json:"amount"`
		SplitType   SplitType    `json:"split_type"`
		CreatedAt   time.Time    `json:"created_at"`
		Splits      []Split      `json:"splits"`
	}

	// Split is the share of one member in an expense.
	Split struct {
		ExpenseID  string           `json:"expense_id,omitempty"`
		MemberID   string           `json:"member_id"`
		Amount     PriceInCents     `json:"amount"`
		Percentage *decimal.Decimal `json:"percentage,omitempty"`
	}

	// Balance is the position of one member within a group:
	// Net > 0 means the group owes the member.
	Balance struct {
		MemberID string       `json:"member_id"`
		Name     string       `json:"name"`
		Paid     PriceInCents `json:"paid"`
		Owed     PriceInCents `json:"owed"`
		Net      PriceInCents `json:"net"`
	}
)

const (
	// SplitTypeEqual ...
	SplitTypeEqual SplitType = "equal"

	// SplitTypePercentage ...
	SplitTypePercentage SplitType = "percentage"
)

// Valid ...
func (t SplitType) Valid() bool {
	return t == SplitTypeEqual || t == SplitTypePercentage
}
