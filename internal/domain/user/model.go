package user

import (
	"time"

	"github.com/Kabele/invoicely/internal/types"
)

type User struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// NewUser builds a user record, minting an id when the identity provider did
// not supply one.
func NewUser(id, email string) *User {
	if id == "" {
		id = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER)
	}
	now := time.Now().UTC()
	return &User{
		ID:        id,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
