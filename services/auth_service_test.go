package services

import (
	"context"
	"testing"

	"github.com/fync-dev/fync-auth/domain"
	"github.com/fync-dev/fync-auth/dto"
	"github.com/fync-dev/fync-auth/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	svc      *AuthService
	userRepo *memUserRepo
	assets   *fakeAssetStore
	issuer   *OAuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	userRepo := newMemUserRepo()
	assets := newFakeAssetStore()
	issuer := NewOAuthService(userRepo, newMemAppRepo(), newMemAuthCodeRepo(), newMemTokenRepo(), newMemDeveloperRepo(), nil)
	return &authFixture{
		svc:      NewAuthService(userRepo, fakeHasher{}, assets, issuer),
		userRepo: userRepo,
		assets:   assets,
		issuer:   issuer,
	}
}

func registerReq() *dto.RegisterEmailRequest {
	return &dto.RegisterEmailRequest{
		Username: "jdoe",
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "hunter2hunter2",
	}
}

func TestRegisterEmailUser(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, token, err := f.svc.RegisterEmailUser(ctx, registerReq(), nil)
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotNil(t, token)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "jdoe", user.Username)
	assert.Equal(t, []domain.Provider{domain.ProviderEmail}, user.Providers)
	assert.False(t, user.Verified)
	// The response copy never carries the hash.
	assert.Empty(t, user.PasswordHash)

	stored, err := f.userRepo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "h:hunter2hunter2", stored.PasswordHash)

	assert.Equal(t, user.ID, token.UserID)
	assert.Equal(t, domain.DefaultLoginScopes(), token.Scopes)
}

func TestRegisterEmailUserWithAvatar(t *testing.T) {
	f := newAuthFixture(t)

	user, _, err := f.svc.RegisterEmailUser(context.Background(), registerReq(), []byte{0xff, 0xd8})
	require.NoError(t, err)
	assert.Contains(t, user.ProfilePicture, "https://assets.test/profJane Doe")
	assert.Len(t, f.assets.stored, 1)
}

func TestRegisterEmailUserDuplicate(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, _, err := f.svc.RegisterEmailUser(ctx, registerReq(), nil)
	require.NoError(t, err)

	// Same email, fresh username: the message names Email.
	req := registerReq()
	req.Username = "other"
	_, _, err = f.svc.RegisterEmailUser(ctx, req, nil)
	require.ErrorIs(t, err, errors.ErrDuplicateUser)
	assert.Equal(t, "Email", errors.AsError(err).Field)

	// Same username, fresh email: the message names Username.
	req = registerReq()
	req.Email = "other@example.com"
	_, _, err = f.svc.RegisterEmailUser(ctx, req, nil)
	require.ErrorIs(t, err, errors.ErrDuplicateUser)
	assert.Equal(t, "Username", errors.AsError(err).Field)
}

func TestLoginEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, _, err := f.svc.RegisterEmailUser(ctx, registerReq(), nil)
	require.NoError(t, err)

	user, token, err := f.svc.LoginEmail(ctx, "jane@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, "jdoe", user.Username)
	assert.Empty(t, user.PasswordHash)
	assert.NotEmpty(t, token.AccessToken)
}

func TestLoginEmailWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, _, err := f.svc.RegisterEmailUser(ctx, registerReq(), nil)
	require.NoError(t, err)

	_, _, err = f.svc.LoginEmail(ctx, "jane@example.com", "nope")
	assert.ErrorIs(t, err, errors.ErrInvalidPassword)
}

func TestLoginEmailUnknownUser(t *testing.T) {
	f := newAuthFixture(t)

	_, _, err := f.svc.LoginEmail(context.Background(), "ghost@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, errors.ErrUserNotFound)
}

func TestLoginEmailExternalOnlyAccount(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	// An account registered through an external provider has no password
	// hash; a password login against it reads as not found.
	_, err := f.userRepo.CreateUser(ctx, &domain.User{
		Username:  "extonly",
		Name:      "Ext Only",
		Email:     "ext@example.com",
		Providers: []domain.Provider{domain.ProviderDiscord},
		DiscordID: "111",
	})
	require.NoError(t, err)

	_, _, err = f.svc.LoginEmail(ctx, "ext@example.com", "whatever")
	assert.ErrorIs(t, err, errors.ErrUserNotFound)
}

func TestEmailAvailable(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	available, err := f.svc.EmailAvailable(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.True(t, available)

	_, _, err = f.svc.RegisterEmailUser(ctx, registerReq(), nil)
	require.NoError(t, err)

	available, err = f.svc.EmailAvailable(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.False(t, available)
}
