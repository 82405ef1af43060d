package server

import (
	"net/http"
)

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.List(r.Context())
	if err != nil {
		replyServiceError(w, err)
		return
	}
	replyJSON(w, http.StatusOK, groups)
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		replyError(w, http.StatusBadRequest, err)
		return
	}
	group, err := s.groups.Create(r.Context(), payload.Name)
	if err != nil {
		replyServiceError(w, err)
		return
	}
	replyJSON(w, http.StatusCreated, group)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.groups.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		replyServiceError(w, err)
		return
	}
	replyJSON(w, http.StatusOK, group)
}

func (s *Server) handleRenameGroup(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		replyError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.groups.Rename(r.Context(), r.PathValue("id"), payload.Name); err != nil {
		replyServiceError(w, err)
		return
	}
	replyStatusCode(w, http.StatusOK)
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.groups.Delete(r.Context(), r.PathValue("id")); err != nil {
		replyServiceError(w, err)
		return
	}
	replyStatusCode(w, http.StatusOK)
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.groups.ListMembers(r.Context(), r.PathValue("id"))
	if err != nil {
		replyServiceError(w, err)
		return
	}
	replyJSON(w, http.StatusOK, members)
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		replyError(w, http.StatusBadRequest, err)
		return
	}
	member, err := s.groups.AddMember(r.Context(), r.PathValue("id"), payload.Name)
	if err != nil {
		replyServiceError(w, err)
		return
	}
	replyJSON(w, http.StatusCreated, member)
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	if err := s.groups.RemoveMember(r.Context(), r.PathValue("id"), r.PathValue("memberID")); err != nil {
		replyServiceError(w, err)
		return
	}
	replyStatusCode(w, http.StatusOK)
}
