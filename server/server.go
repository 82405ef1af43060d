package server

import (
	"errors"
	"net/http"

	"github.com/killshot-app/killshot/backup"
	"github.com/killshot-app/killshot/config"
	"github.com/killshot-app/killshot/db"
	"github.com/killshot-app/killshot/models"
	"github.com/killshot-app/killshot/secrets"
	"github.com/killshot-app/killshot/services/expenses"
	"github.com/killshot-app/killshot/services/groups"
)

type (
	// Server holds the backend's dependencies and routes.
	Server struct {
		conf      *config.Config
		jwtSecret []byte
		groups    groups.Service
		expenses  expenses.Service

		// backup is nil when no bucket is configured, secrets is nil
		// when the jwt secret comes from the config file.
		backup  backup.Manager
		secrets secrets.Service
	}
)

// New ...
func New(
	conf *config.Config,
	jwtSecret []byte,
	groupsService groups.Service,
	expensesService expenses.Service,
	backupManager backup.Manager,
	secretsService secrets.Service,
) *Server {
	return &Server{
		conf:      conf,
		jwtSecret: jwtSecret,
		groups:    groupsService,
		expenses:  expensesService,
		backup:    backupManager,
		secrets:   secretsService,
	}
}

// Handler ...
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("POST /api/auth", s.handleLogin)

	mux.HandleFunc("GET /api/groups", s.authenticated(s.handleListGroups))
	mux.HandleFunc("POST /api/groups", s.authenticated(s.handleCreateGroup))
	mux.HandleFunc("GET /api/groups/{id}", s.authenticated(s.handleGetGroup))
	mux.HandleFunc("PATCH /api/groups/{id}", s.authenticated(s.handleRenameGroup))
	mux.HandleFunc("DELETE /api/groups/{id}", s.authenticated(s.handleDeleteGroup))

	mux.HandleFunc("GET /api/groups/{id}/members", s.authenticated(s.handleListMembers))
	mux.HandleFunc("POST /api/groups/{id}/members", s.authenticated(s.handleAddMember))
	mux.HandleFunc("DELETE /api/groups/{id}/members/{memberID}", s.authenticated(s.handleRemoveMember))

	mux.HandleFunc("GET /api/groups/{id}/expenses", s.authenticated(s.handleListExpenses))
	mux.HandleFunc("POST /api/groups/{id}/expenses", s.authenticated(s.handleCreateExpense))
	mux.HandleFunc("GET /api/groups/{id}/balances", s.authenticated(s.handleBalances))
	mux.HandleFunc("GET /api/expenses/{id}", s.authenticated(s.handleGetExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.authenticated(s.handleDeleteExpense))

	mux.HandleFunc("POST /admin/backup", s.authenticated(s.handleBackup))
	mux.HandleFunc("POST /admin/rotate-secret", s.authenticated(s.handleRotateSecret))

	return mux
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	replyStatusCode(w, http.StatusOK)
}

// replyServiceError maps service and adapter errors to status codes:
// unknown IDs are 404, validation failures are 422, the rest is 500.
func replyServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		replyStatusCode(w, http.StatusNotFound)
	case errors.Is(err, groups.ErrEmptyName),
		errors.Is(err, expenses.ErrEmptyDescription),
		errors.Is(err, expenses.ErrInvalidSplitType),
		errors.Is(err, expenses.ErrUnknownPayer),
		errors.Is(err, expenses.ErrUnknownParticipant),
		errors.Is(err, models.ErrNonPositiveAmount),
		errors.Is(err, models.ErrNoParticipants),
		errors.Is(err, models.ErrInvalidPercentages):
		replyError(w, http.StatusUnprocessableEntity, err)
	default:
		replyError(w, http.StatusInternalServerError, err)
	}
}
