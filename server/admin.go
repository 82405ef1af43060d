package server

import (
	"errors"
	"net/http"
)

var (
	errBackupsDisabled  = errors.New("backups are not configured")
	errRotationDisabled = errors.New("secret rotation requires a jwt secret ID")
)

func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	if s.backup == nil {
		replyError(w, http.StatusServiceUnavailable, errBackupsDisabled)
		return
	}
	if err := s.backup.Store(r.Context(), s.conf.Database.Path); err != nil {
		replyError(w, http.StatusInternalServerError, err)
		return
	}
	replyStatusCode(w, http.StatusCreated)
}

// handleRotateSecret rotates the jwt signing secret. Tokens signed with
// the previous secret stop validating once the server reloads it.
func (s *Server) handleRotateSecret(w http.ResponseWriter, r *http.Request) {
	if s.secrets == nil || s.conf.Auth.JWTSecretID == "" {
		replyError(w, http.StatusServiceUnavailable, errRotationDisabled)
		return
	}
	if err := s.secrets.Rotate(r.Context(), s.conf.Auth.JWTSecretID); err != nil {
		replyError(w, http.StatusInternalServerError, err)
		return
	}
	replyStatusCode(w, http.StatusCreated)
}
