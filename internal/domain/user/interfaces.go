package user

import "context"

// Repository provides persistence for users.
type Repository interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	SetFCMToken(ctx context.Context, id, token string) error
}
