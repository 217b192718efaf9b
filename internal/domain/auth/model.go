package auth

import (
	"time"

	"github.com/Kabele/invoicely/internal/types"
)

// Auth stores a user's credential for the configured identity provider,
// ex a bcrypt password hash for the native provider.
type Auth struct {
	UserID    string             `db:"user_id" json:"user_id"`
	Provider  types.AuthProvider `db:"provider" json:"provider"`
	Token     string             `db:"token" json:"token"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt time.Time          `db:"updated_at" json:"updated_at"`
}

// Claims is the validated identity extracted from a session token
type Claims struct {
	UserID string
	Email  string
}

func NewAuth(userID string, provider types.AuthProvider, token string) *Auth {
	now := time.Now().UTC()
	return &Auth{
		UserID:    userID,
		Provider:  provider,
		Token:     token,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
