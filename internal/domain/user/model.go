package user

import "time"

// User is an account in the directory. FCMToken is the push notification
// registration for the user's current device, empty until registered.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	FCMToken    string    `json:"fcm_token,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
