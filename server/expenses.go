package server

import (
	"net/http"

	"github.com/killshot-app/killshot/models"
	"github.com/killshot-app/killshot/services/expenses"

	"github.com/shopspring/decimal"
)

type (
	createExpensePayload struct {
		PayerID      string              `json:"payer_id"`
		Description  string              `json:"description"`
		Amount       models.PriceInCents `json:"amount"`
		SplitType    models.SplitType    `json:"split_type"`
		Participants []string            `json:"participants,omitempty"`
		Shares       []sharePayload      `json:"shares,omitempty"`
	}

	sharePayload struct {
		MemberID   string          `json:"member_id"`
		Percentage decimal.Decimal `json:"percentage"`
	}
)

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var payload createExpensePayload
	if err := decodeJSON(r, &payload); err != nil {
		replyError(w, http.StatusBadRequest, err)
		return
	}

	req := &expenses.CreateRequest{
		GroupID:      r.PathValue("id"),
		PayerID:      payload.PayerID,
		Description:  payload.Description,
		Amount:       payload.Amount,
		SplitType:    payload.SplitType,
		Participants: payload.Participants,
	}
	for _, share := range payload.Shares {
		req.Shares = append(req.Shares, models.PercentageShare{
			MemberID:   share.MemberID,
			Percentage: share.Percentage,
		})
	}

	expense, err := s.expenses.Create(r.Context(), req)
	if err != nil {
		replyServiceError(w, err)
		return
	}
	replyJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	list, err := s.expenses.ListByGroup(r.Context(), r.PathValue("id"))
	if err != nil {
		replyServiceError(w, err)
		return
	}
	replyJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := s.expenses.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		replyServiceError(w, err)
		return
	}
	replyJSON(w, http.StatusOK, expense)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.Delete(r.Context(), r.PathValue("id")); err != nil {
		replyServiceError(w, err)
		return
	}
	replyStatusCode(w, http.StatusOK)
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := s.expenses.Balances(r.Context(), r.PathValue("id"))
	if err != nil {
		replyServiceError(w, err)
		return
	}
	replyJSON(w, http.StatusOK, balances)
}
