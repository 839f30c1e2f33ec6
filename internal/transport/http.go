package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/biteswipe/backend/internal/domain/restaurant"
	"github.com/biteswipe/backend/internal/domain/session"
	"github.com/biteswipe/backend/internal/domain/user"
	"github.com/go-chi/chi/v5"
)

// Services bundles the domain services the API exposes.
type Services struct {
	Sessions *session.Service
	Users    *user.Service
}

// Server wires HTTP handlers.
type Server struct {
	sessions *session.Service
	users    *user.Service
	logger   *slog.Logger
}

// NewRouter creates the REST API router.
func NewRouter(svcs Services, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{sessions: svcs.Sessions, users: svcs.Users, logger: logger}

	r := chi.NewRouter()

	r.Get("/health", srv.handleHealth)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", srv.handleCreateUser)
		r.Get("/{userID}", srv.handleGetUser)
		r.Get("/emails/{email}", srv.handleGetUserByEmail)
		r.Post("/{userID}/fcmToken", srv.handleUpdateFCMToken)
		r.Get("/{userID}/sessions", srv.handleUserSessions)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", srv.handleCreateSession)
		r.Get("/{sessionID}", srv.handleGetSession)
		r.Post("/{sessionID}/invitations", srv.handleInvite)
		r.Delete("/{sessionID}/invitations/{userID}", srv.handleRejectInvitation)
		r.Post("/{joinCode}/participants", srv.handleJoinSession)
		r.Delete("/{sessionID}/participants/{userID}", srv.handleLeaveSession)
		r.Post("/{sessionID}/votes", srv.handleVote)
		r.Post("/{sessionID}/start", srv.handleStartSession)
		r.Post("/{sessionID}/doneSwiping", srv.handleDoneSwiping)
		r.Get("/{sessionID}/result", srv.handleResult)
		r.Get("/{sessionID}/restaurants", srv.handleSessionRestaurants)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			s.logger.Error("failed to encode response", "error", err)
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.respond(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.respond(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

// restaurantList is the JSON shape for candidate list responses.
type restaurantList struct {
	Restaurants []restaurant.Restaurant `json:"restaurants"`
}
