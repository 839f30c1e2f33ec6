package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type createUserRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !s.decode(w, r, &req) {
		return
	}

	u, err := s.users.Create(r.Context(), req.Email, req.DisplayName)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, u)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.Get(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, u)
}

func (s *Server) handleGetUserByEmail(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.GetByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, u)
}

type fcmTokenRequest struct {
	FCMToken string `json:"fcmToken"`
}

func (s *Server) handleUpdateFCMToken(w http.ResponseWriter, r *http.Request) {
	var req fcmTokenRequest
	if !s.decode(w, r, &req) {
		return
	}

	u, err := s.users.UpdateFCMToken(r.Context(), chi.URLParam(r, "userID"), req.FCMToken)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, u)
}

func (s *Server) handleUserSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.sessions.ListForUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]any{"sessions": sessions})
}
