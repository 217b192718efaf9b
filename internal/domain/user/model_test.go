package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUserKeepsProviderID(t *testing.T) {
	u := NewUser("user_from_provider", "ada@example.com")
	assert.Equal(t, "user_from_provider", u.ID)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.False(t, u.CreatedAt.IsZero())
}

func TestNewUserMintsIDWhenAbsent(t *testing.T) {
	u := NewUser("", "ada@example.com")
	assert.True(t, strings.HasPrefix(u.ID, "user_"))
}
