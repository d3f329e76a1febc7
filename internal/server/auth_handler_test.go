package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aura/counsel/internal/types"
)

func newTestAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	userService := NewUserService(newFakeDB(), testPasswordConfig(t))
	return NewAuthHandler(userService, testJWTService(t))
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAuthHandler_Signup(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := postJSON(t, h.Signup, "/auth/signup", types.SignupRequest{
		Name:     "Priya Sharma",
		Email:    "priya@example.com",
		Password: "secret123",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp types.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "User created successfully", resp.Message)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "priya@example.com", resp.User.Email)
	assert.Equal(t, types.AuthMethodLocal, resp.User.AuthMethod)

	// The token must validate against the same service configuration.
	claims, err := testJWTService(t).ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestAuthHandler_Signup_InvalidBody(t *testing.T) {
	h := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Signup(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Signup_MissingFields(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := postJSON(t, h.Signup, "/auth/signup", types.SignupRequest{
		Name:     "Priya",
		Password: "secret123",
		// Email missing
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation error")
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	h := newTestAuthHandler(t)
	body := types.SignupRequest{Name: "Priya", Email: "priya@example.com", Password: "secret123"}

	require.Equal(t, http.StatusCreated, postJSON(t, h.Signup, "/auth/signup", body).Code)
	assert.Equal(t, http.StatusConflict, postJSON(t, h.Signup, "/auth/signup", body).Code)
}

func TestAuthHandler_Login(t *testing.T) {
	h := newTestAuthHandler(t)
	require.Equal(t, http.StatusCreated, postJSON(t, h.Signup, "/auth/signup", types.SignupRequest{
		Name: "Priya", Email: "priya@example.com", Password: "secret123",
	}).Code)

	rec := postJSON(t, h.Login, "/auth/login", types.LoginRequest{
		Email: "priya@example.com", Password: "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Login successful", resp.Message)
	assert.NotEmpty(t, resp.Token)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	h := newTestAuthHandler(t)
	require.Equal(t, http.StatusCreated, postJSON(t, h.Signup, "/auth/signup", types.SignupRequest{
		Name: "Priya", Email: "priya@example.com", Password: "secret123",
	}).Code)

	rec := postJSON(t, h.Login, "/auth/login", types.LoginRequest{
		Email: "priya@example.com", Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_OAuth_SignupThenLogin(t *testing.T) {
	h := newTestAuthHandler(t)
	body := types.OAuthRequest{Name: "Priya", Email: "priya@gmail.com"}

	first := postJSON(t, h.OAuth, "/auth/oauth", body)
	require.Equal(t, http.StatusCreated, first.Code)

	var created types.AuthResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &created))
	assert.Equal(t, types.AuthMethodGoogle, created.User.AuthMethod)

	second := postJSON(t, h.OAuth, "/auth/oauth", body)
	require.Equal(t, http.StatusOK, second.Code)

	var loggedIn types.AuthResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &loggedIn))
	assert.Equal(t, created.User.ID, loggedIn.User.ID)
	assert.Equal(t, "Login successful", loggedIn.Message)
}

func TestAuthHandler_OAuth_PasswordAccountConflict(t *testing.T) {
	h := newTestAuthHandler(t)
	require.Equal(t, http.StatusCreated, postJSON(t, h.Signup, "/auth/signup", types.SignupRequest{
		Name: "Priya", Email: "priya@example.com", Password: "secret123",
	}).Code)

	rec := postJSON(t, h.OAuth, "/auth/oauth", types.OAuthRequest{
		Name: "Priya", Email: "priya@example.com",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}
