package session

import (
	"time"

	"github.com/biteswipe/backend/internal/domain/restaurant"
)

// Status represents the lifecycle status of a session
type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusMatching  Status = "MATCHING"
	StatusCompleted Status = "COMPLETED"
)

// Preference is a single like/dislike swipe by a participant.
type Preference struct {
	RestaurantID string    `json:"restaurant_id"`
	Liked        bool      `json:"liked"`
	Timestamp    time.Time `json:"timestamp"`
}

// Participant is a user who has joined the session, with their swipe history.
type Participant struct {
	UserID      string       `json:"user_id"`
	Preferences []Preference `json:"preferences"`
	DoneSwiping bool         `json:"done_swiping"`
	JoinedAt    time.Time    `json:"joined_at"`
}

// Tally tracks aggregated votes for one candidate restaurant. Position is
// the restaurant's index in the original candidate list and breaks ties.
type Tally struct {
	RestaurantID  string  `json:"restaurant_id"`
	Position      int     `json:"position"`
	TotalVotes    int     `json:"total_votes"`
	PositiveVotes int     `json:"positive_votes"`
	Score         float64 `json:"score"`
}

// FinalSelection records the winning restaurant once a result is computed.
type FinalSelection struct {
	RestaurantID string    `json:"restaurant_id"`
	SelectedAt   time.Time `json:"selected_at"`
}

// Session is a time-boxed group decision round over a fixed candidate set.
type Session struct {
	ID                 string              `json:"id"`
	JoinCode           string              `json:"join_code"`
	CreatorID          string              `json:"creator_id"`
	Status             Status              `json:"status"`
	Location           restaurant.Location `json:"location"`
	Participants       []Participant       `json:"participants"`
	PendingInvitations []string            `json:"pending_invitations"`
	Restaurants        []Tally             `json:"restaurants"`
	FinalSelection     *FinalSelection     `json:"final_selection,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	ExpiresAt          time.Time           `json:"expires_at"`
}

// Participant returns the participant entry for userID, or nil.
func (s *Session) Participant(userID string) *Participant {
	for i := range s.Participants {
		if s.Participants[i].UserID == userID {
			return &s.Participants[i]
		}
	}
	return nil
}

// IsParticipant reports whether userID has joined the session.
func (s *Session) IsParticipant(userID string) bool {
	return s.Participant(userID) != nil
}

// IsInvited reports whether userID has a pending invitation.
func (s *Session) IsInvited(userID string) bool {
	for _, id := range s.PendingInvitations {
		if id == userID {
			return true
		}
	}
	return false
}

// HasVoted reports whether userID has already swiped on restaurantID.
func (s *Session) HasVoted(userID, restaurantID string) bool {
	p := s.Participant(userID)
	if p == nil {
		return false
	}
	for _, pref := range p.Preferences {
		if pref.RestaurantID == restaurantID {
			return true
		}
	}
	return false
}

// AllDone reports whether every participant has signaled done swiping.
func (s *Session) AllDone() bool {
	for _, p := range s.Participants {
		if !p.DoneSwiping {
			return false
		}
	}
	return len(s.Participants) > 0
}

// ExpiryRef identifies a started session and its completion deadline.
type ExpiryRef struct {
	SessionID string
	ExpiresAt time.Time
}
