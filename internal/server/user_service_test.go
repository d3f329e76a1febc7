package server

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aura/counsel/internal/config"
	"github.com/aura/counsel/internal/db"
	"github.com/aura/counsel/internal/types"
)

// fakeDB is an in-memory DBClient for service and handler tests.
type fakeDB struct {
	usersByID    map[uuid.UUID]*db.User
	usersByEmail map[string]*db.User
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		usersByID:    make(map[uuid.UUID]*db.User),
		usersByEmail: make(map[string]*db.User),
	}
}

func (f *fakeDB) CheckEmailExists(_ context.Context, email string) (bool, error) {
	_, ok := f.usersByEmail[email]
	return ok, nil
}

func (f *fakeDB) CreateUser(_ context.Context, name, email, passwordHash, authMethod string) (uuid.UUID, error) {
	user := &db.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		AuthMethod:   authMethod,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.usersByID[user.ID] = user
	f.usersByEmail[email] = user
	return user.ID, nil
}

func (f *fakeDB) GetUser(_ context.Context, userID uuid.UUID) (*db.User, error) {
	return f.usersByID[userID], nil
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	return f.usersByEmail[email], nil
}

func (f *fakeDB) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	user, ok := f.usersByID[userID]
	if !ok {
		return &ErrUserNotFound{UserID: userID}
	}
	user.PasswordHash = passwordHash
	return nil
}

func testPasswordConfig(t *testing.T) *config.PasswordConfig {
	t.Helper()
	t.Setenv("BCRYPT_COST", "10") // minimum cost keeps the hashing tests fast
	t.Setenv("PASSWORD_PEPPER", "")
	cfg, err := config.NewPasswordConfig()
	require.NoError(t, err)
	return cfg
}

func TestUserService_Register(t *testing.T) {
	svc := NewUserService(newFakeDB(), testPasswordConfig(t))

	user, err := svc.Register(context.Background(), &types.SignupRequest{
		Name:     "Priya Sharma",
		Email:    "priya@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", user.Name)
	assert.Equal(t, "priya@example.com", user.Email)
	assert.Equal(t, types.AuthMethodLocal, user.AuthMethod)
	assert.NotEqual(t, uuid.Nil, user.ID)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	svc := NewUserService(newFakeDB(), testPasswordConfig(t))
	ctx := context.Background()

	_, err := svc.Register(ctx, &types.SignupRequest{
		Name: "Priya", Email: "priya@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &types.SignupRequest{
		Name: "Other", Email: "priya@example.com", Password: "different1",
	})
	require.Error(t, err)
	assert.IsType(t, &ErrEmailAlreadyExists{}, err)
}

func TestUserService_Register_ShortPassword(t *testing.T) {
	svc := NewUserService(newFakeDB(), testPasswordConfig(t))

	_, err := svc.Register(context.Background(), &types.SignupRequest{
		Name: "Priya", Email: "priya@example.com", Password: "abc",
	})
	require.Error(t, err)
	assert.IsType(t, &ErrValidation{}, err)
}

func TestUserService_Login(t *testing.T) {
	svc := NewUserService(newFakeDB(), testPasswordConfig(t))
	ctx := context.Background()

	registered, err := svc.Register(ctx, &types.SignupRequest{
		Name: "Priya", Email: "priya@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	user, err := svc.Login(ctx, &types.LoginRequest{
		Email: "priya@example.com", Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	svc := NewUserService(newFakeDB(), testPasswordConfig(t))
	ctx := context.Background()

	_, err := svc.Register(ctx, &types.SignupRequest{
		Name: "Priya", Email: "priya@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &types.LoginRequest{
		Email: "priya@example.com", Password: "wrong-password",
	})
	require.Error(t, err)
	assert.IsType(t, &ErrInvalidCredentials{}, err)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	svc := NewUserService(newFakeDB(), testPasswordConfig(t))

	_, err := svc.Login(context.Background(), &types.LoginRequest{
		Email: "nobody@example.com", Password: "whatever1",
	})
	require.Error(t, err)
	assert.IsType(t, &ErrInvalidCredentials{}, err)
}

func TestUserService_Login_GoogleAccountRejected(t *testing.T) {
	fake := newFakeDB()
	svc := NewUserService(fake, testPasswordConfig(t))
	ctx := context.Background()

	_, _, err := svc.OAuth(ctx, &types.OAuthRequest{
		Name: "Priya", Email: "priya@gmail.com",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &types.LoginRequest{
		Email: "priya@gmail.com", Password: "secret123",
	})
	require.Error(t, err)
	assert.IsType(t, &ErrAuthMethodMismatch{}, err)
	assert.Contains(t, err.Error(), "Google")
}

func TestUserService_OAuth_CreatesThenLogsIn(t *testing.T) {
	fake := newFakeDB()
	svc := NewUserService(fake, testPasswordConfig(t))
	ctx := context.Background()

	user, created, err := svc.OAuth(ctx, &types.OAuthRequest{
		Name: "Priya", Email: "priya@gmail.com",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, types.AuthMethodGoogle, user.AuthMethod)

	// No password hash is ever stored for OAuth accounts.
	stored := fake.usersByEmail["priya@gmail.com"]
	assert.Empty(t, stored.PasswordHash)

	again, created, err := svc.OAuth(ctx, &types.OAuthRequest{
		Name: "Priya", Email: "priya@gmail.com",
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.ID, again.ID)
}

func TestUserService_OAuth_PasswordAccountRejected(t *testing.T) {
	svc := NewUserService(newFakeDB(), testPasswordConfig(t))
	ctx := context.Background()

	_, err := svc.Register(ctx, &types.SignupRequest{
		Name: "Priya", Email: "priya@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, _, err = svc.OAuth(ctx, &types.OAuthRequest{
		Name: "Priya", Email: "priya@example.com",
	})
	require.Error(t, err)
	assert.IsType(t, &ErrAuthMethodMismatch{}, err)
	assert.Contains(t, err.Error(), "password")
}

func TestUserService_UpdatePassword(t *testing.T) {
	svc := NewUserService(newFakeDB(), testPasswordConfig(t))
	ctx := context.Background()

	user, err := svc.Register(ctx, &types.SignupRequest{
		Name: "Priya", Email: "priya@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePassword(ctx, user.ID, "secret123", "newsecret456"))

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "priya@example.com", Password: "secret123"})
	require.Error(t, err)

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "priya@example.com", Password: "newsecret456"})
	require.NoError(t, err)
}

func TestUserService_UpdatePassword_WrongCurrent(t *testing.T) {
	svc := NewUserService(newFakeDB(), testPasswordConfig(t))
	ctx := context.Background()

	user, err := svc.Register(ctx, &types.SignupRequest{
		Name: "Priya", Email: "priya@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	err = svc.UpdatePassword(ctx, user.ID, "not-the-password", "newsecret456")
	require.Error(t, err)
	assert.IsType(t, &ErrPasswordMismatch{}, err)
}

func TestUserService_UpdatePassword_UnknownUser(t *testing.T) {
	svc := NewUserService(newFakeDB(), testPasswordConfig(t))

	err := svc.UpdatePassword(context.Background(), uuid.New(), "secret123", "newsecret456")
	require.Error(t, err)
	assert.IsType(t, &ErrUserNotFound{}, err)
}

func TestUserService_UpdatePassword_GoogleAccountRejected(t *testing.T) {
	svc := NewUserService(newFakeDB(), testPasswordConfig(t))
	ctx := context.Background()

	user, _, err := svc.OAuth(ctx, &types.OAuthRequest{Name: "Priya", Email: "priya@gmail.com"})
	require.NoError(t, err)

	err = svc.UpdatePassword(ctx, user.ID, "", "newsecret456")
	require.Error(t, err)
	assert.IsType(t, &ErrAuthMethodMismatch{}, err)
}
