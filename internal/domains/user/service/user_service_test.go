package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"librobuddy-backend/internal/config"
	"librobuddy-backend/internal/domains/user"
	"librobuddy-backend/internal/shared"
	"librobuddy-backend/pkg/cache"
	"librobuddy-backend/pkg/jwt"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*user.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role shared.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Role = role
	return nil
}

// fakeCache stores counters as JSON like Redis INCR values read back through Get
type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	expires map[string]time.Duration
	fail    bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}, expires: map[string]time.Duration{}}
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return false, errors.New("redis down")
	}
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *fakeCache) Ping(ctx context.Context) error { return nil }

func (c *fakeCache) Increment(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return 0, errors.New("redis down")
	}
	var n int64
	if raw, ok := c.data[key]; ok {
		_ = json.Unmarshal(raw, &n)
	}
	n++
	raw, _ := json.Marshal(n)
	c.data[key] = raw
	return n, nil
}

func (c *fakeCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expires[key] = ttl
	return nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{BcryptCost: bcrypt.MinCost, MaxFailedLogins: 3, FailedLoginWindow: 15 * time.Minute}
}

func newTestService(c *fakeCache) (user.Service, *fakeUserRepo, *jwt.Manager) {
	repo := newFakeUserRepo()
	m := jwt.NewManager("test-secret", time.Hour)
	var store cache.Cache
	if c != nil {
		store = c
	}
	return NewUserService(repo, m, store, testAuthConfig()), repo, m
}

func TestRegister(t *testing.T) {
	svc, repo, _ := newTestService(newFakeCache())
	ctx := context.Background()

	dto, err := svc.Register(ctx, user.RegisterRequest{Email: "  Reader@Example.com ", Password: "s3cret-pass", FullName: "Ada Reader"})
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", dto.Email)
	assert.Equal(t, shared.RoleCustomer, dto.Role)

	stored, err := repo.FindByID(ctx, dto.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))

	_, err = svc.Register(ctx, user.RegisterRequest{Email: "reader@example.com", Password: "another-pass", FullName: "Dup"})
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newTestService(nil)

	_, err := svc.Register(context.Background(), user.RegisterRequest{Email: "nope", Password: "short", FullName: ""})
	require.Error(t, err)

	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs, "email")
	assert.Contains(t, verrs, "password")
	assert.Contains(t, verrs, "full_name")
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	svc, _, m := newTestService(newFakeCache())
	ctx := context.Background()

	dto, err := svc.Register(ctx, user.RegisterRequest{Email: "a@example.com", Password: "password1", FullName: "A"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, user.LoginRequest{Email: "A@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, 5*time.Second)

	claims, err := m.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, dto.ID.String(), claims.UserID)
	assert.Equal(t, "customer", claims.Role)
}

func TestLogin_ThrottlesAfterRepeatedFailures(t *testing.T) {
	c := newFakeCache()
	svc, _, _ := newTestService(c)
	ctx := context.Background()

	_, err := svc.Register(ctx, user.RegisterRequest{Email: "a@example.com", Password: "password1", FullName: "A"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.Login(ctx, user.LoginRequest{Email: "a@example.com", Password: "wrong-pass"})
		require.ErrorIs(t, err, user.ErrInvalidCredentials)
	}
	assert.Equal(t, 15*time.Minute, c.expires[failedLoginKeyPrefix+"a@example.com"])

	// correct password is refused while the window is open
	_, err = svc.Login(ctx, user.LoginRequest{Email: "a@example.com", Password: "password1"})
	assert.ErrorIs(t, err, user.ErrTooManyAttempts)

	// window expiry
	require.NoError(t, c.Delete(ctx, failedLoginKeyPrefix+"a@example.com"))
	_, err = svc.Login(ctx, user.LoginRequest{Email: "a@example.com", Password: "password1"})
	assert.NoError(t, err)
}

func TestLogin_SuccessClearsCounter(t *testing.T) {
	c := newFakeCache()
	svc, _, _ := newTestService(c)
	ctx := context.Background()

	_, err := svc.Register(ctx, user.RegisterRequest{Email: "a@example.com", Password: "password1", FullName: "A"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, user.LoginRequest{Email: "a@example.com", Password: "bad-password"})
	require.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = svc.Login(ctx, user.LoginRequest{Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	_, present := c.data[failedLoginKeyPrefix+"a@example.com"]
	assert.False(t, present)
}

func TestLogin_CacheOutageDoesNotBlock(t *testing.T) {
	c := newFakeCache()
	svc, _, _ := newTestService(c)
	ctx := context.Background()

	_, err := svc.Register(ctx, user.RegisterRequest{Email: "a@example.com", Password: "password1", FullName: "A"})
	require.NoError(t, err)

	c.fail = true
	_, err = svc.Login(ctx, user.LoginRequest{Email: "a@example.com", Password: "password1"})
	assert.NoError(t, err)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(nil)

	_, err := svc.Login(context.Background(), user.LoginRequest{Email: "ghost@example.com", Password: "whatever1"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestUpdateUserRole(t *testing.T) {
	svc, _, _ := newTestService(nil)
	ctx := context.Background()

	dto, err := svc.Register(ctx, user.RegisterRequest{Email: "c@example.com", Password: "password1", FullName: "C"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateUserRole(ctx, dto.ID, user.UpdateRoleRequest{Role: shared.RoleCashier}))

	profile, err := svc.GetProfile(ctx, dto.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.RoleCashier, profile.Role)

	assert.ErrorIs(t, svc.UpdateUserRole(ctx, dto.ID, user.UpdateRoleRequest{Role: "root"}), user.ErrInvalidRole)
	assert.ErrorIs(t, svc.UpdateUserRole(ctx, uuid.New(), user.UpdateRoleRequest{Role: shared.RoleAdmin}), user.ErrUserNotFound)
}
