package users

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole(""))
	assert.False(t, ValidRole("superadmin"))
	assert.False(t, ValidRole("Admin"))
}

func TestUserResponseNeverCarriesCredential(t *testing.T) {
	now := time.Now().UTC()
	u := User{
		ID:           "u1",
		Name:         "Ann",
		Email:        "ann@example.com",
		PasswordHash: "$2a$10$secret",
		Role:         RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	resp := NewUserResponse(u)
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), "password")

	// the stored record itself also hides the hash from JSON
	raw, err = json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
}
