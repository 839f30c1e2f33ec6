package transport

import (
	"net/http"
	"time"

	"github.com/biteswipe/backend/internal/domain/restaurant"
	"github.com/go-chi/chi/v5"
)

type createSessionRequest struct {
	UserID    string  `json:"userId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if !s.decode(w, r, &req) {
		return
	}

	sess, err := s.sessions.Create(r.Context(), req.UserID, restaurant.Location{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Radius:    req.Radius,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, sess)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, sess)
}

type startSessionRequest struct {
	UserID string `json:"userId"`
	Time   int    `json:"time"` // minutes
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if !s.decode(w, r, &req) {
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	_, err := s.sessions.Start(r.Context(), sessionID, req.UserID, time.Duration(req.Time)*time.Minute)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"sessionId": sessionID})
}

type inviteRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

func (s *Server) handleInvite(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if !s.decode(w, r, &req) {
		return
	}

	userID := req.UserID
	if userID == "" && req.Email != "" {
		u, err := s.users.GetByEmail(r.Context(), req.Email)
		if err != nil {
			s.respondError(w, err)
			return
		}
		userID = u.ID
	}

	sess, err := s.sessions.Invite(r.Context(), chi.URLParam(r, "sessionID"), userID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, sess)
}

type joinRequest struct {
	UserID string `json:"userId"`
}

func (s *Server) handleJoinSession(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if !s.decode(w, r, &req) {
		return
	}

	sess, err := s.sessions.Join(r.Context(), chi.URLParam(r, "joinCode"), req.UserID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, sess)
}

func (s *Server) handleRejectInvitation(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Reject(r.Context(), chi.URLParam(r, "sessionID"), chi.URLParam(r, "userID"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, sess)
}

func (s *Server) handleLeaveSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Leave(r.Context(), chi.URLParam(r, "sessionID"), chi.URLParam(r, "userID"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, sess)
}

type voteRequest struct {
	UserID       string `json:"userId"`
	RestaurantID string `json:"restaurantId"`
	Liked        bool   `json:"liked"`
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if !s.decode(w, r, &req) {
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	if err := s.sessions.RecordVote(r.Context(), sessionID, req.UserID, req.RestaurantID, req.Liked); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"sessionId": sessionID})
}

type doneSwipingRequest struct {
	UserID string `json:"userId"`
}

func (s *Server) handleDoneSwiping(w http.ResponseWriter, r *http.Request) {
	var req doneSwipingRequest
	if !s.decode(w, r, &req) {
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	if err := s.sessions.MarkDoneSwiping(r.Context(), sessionID, req.UserID); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"sessionId": sessionID})
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	winner, err := s.sessions.Result(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, winner)
}

func (s *Server) handleSessionRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := s.sessions.Restaurants(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, restaurantList{Restaurants: restaurants})
}
