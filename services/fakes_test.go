package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fync-dev/fync-auth/domain"
	"github.com/fync-dev/fync-auth/errors"
	"github.com/google/uuid"
)

// In-memory repository fakes backing the service tests. All of them are
// mutex guarded so the concurrency tests exercise real interleavings, and
// memAuthCodeRepo.ClaimAuthCode reproduces the conditional-update
// semantics of the Mongo implementation.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) CreateUser(_ context.Context, user *domain.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return "", errors.NewDuplicateUser("Email")
		}
		if u.Username == user.Username {
			return "", errors.NewDuplicateUser("Username")
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return user.ID, nil
}

func (r *memUserRepo) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, errors.ErrUserNotFound
}

func (r *memUserRepo) GetUserByEmailOrUsername(_ context.Context, email, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email || u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, errors.ErrUserNotFound
}

func (r *memUserRepo) GetUserByEmailOrDiscordID(_ context.Context, email, discordID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email || (u.DiscordID != "" && u.DiscordID == discordID) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, errors.ErrUserNotFound
}

func (r *memUserRepo) SetDiscordID(_ context.Context, userID, discordID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return errors.ErrUserNotFound
	}
	if u.DiscordID != "" {
		return nil
	}
	u.DiscordID = discordID
	return nil
}

func (r *memUserRepo) SetProfilePicture(_ context.Context, userID, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return errors.ErrUserNotFound
	}
	u.ProfilePicture = url
	return nil
}

func (r *memUserRepo) SetDevID(_ context.Context, userID, devID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return errors.ErrUserNotFound
	}
	u.DevID = devID
	return nil
}

type memAppRepo struct {
	mu   sync.Mutex
	apps map[string]*domain.App
}

func newMemAppRepo() *memAppRepo {
	return &memAppRepo{apps: make(map[string]*domain.App)}
}

func (r *memAppRepo) CreateApp(_ context.Context, app *domain.App) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	app.CreatedAt = time.Now()
	clone := *app
	r.apps[app.ClientID] = &clone
	return app.ID, nil
}

func (r *memAppRepo) GetAppByClientID(_ context.Context, clientID string) (*domain.App, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[clientID]
	if !ok {
		return nil, errors.ErrAppNotFound
	}
	clone := *app
	return &clone, nil
}

func (r *memAppRepo) ListApps(_ context.Context) ([]*domain.App, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.App, 0, len(r.apps))
	for _, app := range r.apps {
		clone := *app
		out = append(out, &clone)
	}
	return out, nil
}

type memAuthCodeRepo struct {
	mu    sync.Mutex
	codes map[string]*domain.AuthCode
}

func newMemAuthCodeRepo() *memAuthCodeRepo {
	return &memAuthCodeRepo{codes: make(map[string]*domain.AuthCode)}
}

func (r *memAuthCodeRepo) CreateAuthCode(_ context.Context, code *domain.AuthCode) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if code.ID == "" {
		code.ID = uuid.NewString()
	}
	code.CreatedAt = time.Now()
	clone := *code
	r.codes[code.ID] = &clone
	return code.ID, nil
}

func (r *memAuthCodeRepo) GetAuthCode(_ context.Context, id, clientID string) (*domain.AuthCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	code, ok := r.codes[id]
	if !ok || code.ClientID != clientID {
		return nil, errors.ErrCodeNotFound
	}
	clone := *code
	return &clone, nil
}

func (r *memAuthCodeRepo) ClaimAuthCode(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	code, ok := r.codes[id]
	if !ok || code.Used {
		return false, nil
	}
	code.Used = true
	return true, nil
}

type memTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*domain.AccessToken
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: make(map[string]*domain.AccessToken)}
}

func (r *memTokenRepo) StoreToken(_ context.Context, token *domain.AccessToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	token.CreatedAt = time.Now()
	clone := *token
	r.tokens[token.AccessToken] = &clone
	return nil
}

func (r *memTokenRepo) GetTokenByValue(_ context.Context, value string) (*domain.AccessToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[value]
	if !ok {
		return nil, errors.ErrTokenNotFound
	}
	clone := *token
	return &clone, nil
}

func (r *memTokenRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}

type memDeveloperRepo struct {
	mu   sync.Mutex
	devs map[string]*domain.Developer
}

func newMemDeveloperRepo() *memDeveloperRepo {
	return &memDeveloperRepo{devs: make(map[string]*domain.Developer)}
}

func (r *memDeveloperRepo) EnsureDeveloper(_ context.Context, userID string) (*domain.Developer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if dev, ok := r.devs[userID]; ok {
		clone := *dev
		return &clone, nil
	}
	dev := &domain.Developer{
		ID:        uuid.NewString(),
		UserID:    userID,
		AppIDs:    []string{},
		CreatedAt: time.Now(),
	}
	r.devs[userID] = dev
	clone := *dev
	return &clone, nil
}

func (r *memDeveloperRepo) GetDeveloperByUserID(_ context.Context, userID string) (*domain.Developer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dev, ok := r.devs[userID]
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	clone := *dev
	return &clone, nil
}

func (r *memDeveloperRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.devs)
}

// fakeHasher avoids bcrypt cost in unit tests; "h:" marks a hash so the
// services cannot confuse plaintext with hashed input.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "h:" + password, nil }

func (fakeHasher) Verify(hashedPassword, password string) error {
	if hashedPassword != "h:"+password {
		return fmt.Errorf("hash mismatch")
	}
	return nil
}

type fakeAssetStore struct {
	mu     sync.Mutex
	stored map[string][]byte
}

func newFakeAssetStore() *fakeAssetStore {
	return &fakeAssetStore{stored: make(map[string][]byte)}
}

func (s *fakeAssetStore) OptimizeAndStore(_ context.Context, raw []byte, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stored[name] = raw
	return "https://assets.test/" + name, nil
}
