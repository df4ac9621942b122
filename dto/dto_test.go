package dto

import (
	"testing"
	"time"

	"github.com/fync-dev/fync-auth/domain"
	"github.com/fync-dev/fync-auth/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEmailRequestValidate(t *testing.T) {
	valid := RegisterEmailRequest{
		Username: "jdoe",
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "hunter2hunter2",
	}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*RegisterEmailRequest)
		field  string
	}{
		{"missing username", func(r *RegisterEmailRequest) { r.Username = "  " }, "username"},
		{"missing name", func(r *RegisterEmailRequest) { r.Name = "" }, "name"},
		{"bad email", func(r *RegisterEmailRequest) { r.Email = "not-an-email" }, "email"},
		{"short password", func(r *RegisterEmailRequest) { r.Password = "short" }, "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			err := req.Validate()
			require.Error(t, err)
			assert.Equal(t, tc.field, errors.AsError(err).Field)
		})
	}
}

func TestAuthorizeRequestValidate(t *testing.T) {
	valid := AuthorizeRequest{
		ClientID: "client-1",
		UserID:   "user-1",
		Scopes:   []string{"read.friends", "dev.admin"},
	}
	require.NoError(t, valid.Validate())
	assert.Equal(t, []domain.Scope{domain.ScopeReadFriends, domain.ScopeDevAdmin}, valid.ScopeSet())

	noClient := valid
	noClient.ClientID = ""
	assert.Error(t, noClient.Validate())

	noUser := valid
	noUser.UserID = ""
	assert.Error(t, noUser.Validate())

	badScope := valid
	badScope.Scopes = []string{"read.friends", "read.everything"}
	err := badScope.Validate()
	require.Error(t, err)
	assert.Equal(t, "scopes", errors.AsError(err).Field)

	// An empty scope set is allowed; the grant just carries no scopes.
	empty := AuthorizeRequest{ClientID: "c", UserID: "u"}
	assert.NoError(t, empty.Validate())
	assert.Empty(t, empty.ScopeSet())
}

func TestDiscordRequestsValidate(t *testing.T) {
	login := DiscordLoginRequest{ID: "555", Email: "jane@example.com"}
	assert.NoError(t, login.Validate())

	login.ID = ""
	assert.Error(t, login.Validate())

	register := DiscordRegisterRequest{
		ID:       "555",
		Username: "jdoe",
		Name:     "Jane Doe",
		Email:    "jane@example.com",
	}
	assert.NoError(t, register.Validate())

	register.Email = "jane@"
	assert.Error(t, register.Validate())
}

func TestNewTokenResponse(t *testing.T) {
	token := &domain.AccessToken{
		AccessToken: "tok-abc",
		TokenType:   domain.TokenTypeBearer,
		Scopes:      []domain.Scope{domain.ScopeReadFriends, domain.ScopeReadProfile},
		ExpiresAt:   time.Now().Add(domain.AccessTokenTTL),
	}

	resp := NewTokenResponse(token)
	assert.Equal(t, "tok-abc", resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	// Five days, reported in seconds.
	assert.Equal(t, 432000, resp.ExpiresIn)
	assert.Equal(t, "read.friends,read.profile", resp.Scope)
}

func TestValidEmail(t *testing.T) {
	assert.True(t, validEmail("a@b.co"))
	assert.True(t, validEmail("jane.doe+tag@sub.example.com"))
	assert.False(t, validEmail(""))
	assert.False(t, validEmail("plain"))
	assert.False(t, validEmail("@example.com"))
	assert.False(t, validEmail("jane@example"))
	assert.False(t, validEmail("jane@.com"))
}
