package server

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-screener/internal/types"
)

func registerUser(t *testing.T, ts *testServer, email, role string) types.LoginResponse {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/auth/register", types.CreateUserRequest{
		Name:     "Casey Tester",
		Email:    email,
		Password: "correct-horse-battery",
		Role:     role,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[types.LoginResponse](t, rec)
}

func TestRegister(t *testing.T) {
	ts := newTestServer(t)

	resp := registerUser(t, ts, "casey@example.com", "candidate")

	require.NotNil(t, resp.User)
	assert.Equal(t, "casey@example.com", resp.User.Email)
	assert.Equal(t, types.RoleCandidate, resp.User.Role)
	assert.NotEmpty(t, resp.Token)

	// Token must carry the registered identity.
	claims, err := ts.jwt.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.GetUserID())
	assert.Equal(t, types.RoleCandidate, claims.GetRole())

	// The stored record keeps the hash out of the API response.
	record := ts.db.users[resp.User.ID]
	require.NotNil(t, record)
	assert.NotEmpty(t, record.PasswordHash)
	assert.NotContains(t, record.PasswordHash, "correct-horse-battery")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "dupe@example.com", "hr")

	rec := ts.do(t, http.MethodPost, "/auth/register", types.CreateUserRequest{
		Name:     "Second",
		Email:    "dupe@example.com",
		Password: "another-password",
		Role:     "candidate",
	}, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_Validation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		req  types.CreateUserRequest
	}{
		{"missing email", types.CreateUserRequest{Name: "A", Password: "long-enough-pw", Role: "candidate"}},
		{"bad email", types.CreateUserRequest{Name: "A", Email: "nope", Password: "long-enough-pw", Role: "candidate"}},
		{"short password", types.CreateUserRequest{Name: "A", Email: "a@b.com", Password: "short", Role: "candidate"}},
		{"bad role", types.CreateUserRequest{Name: "A", Email: "a@b.com", Password: "long-enough-pw", Role: "admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/auth/register", tt.req, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	registered := registerUser(t, ts, "login@example.com", "hr")

	rec := ts.do(t, http.MethodPost, "/auth/login", types.LoginRequest{
		Email:    "login@example.com",
		Password: "correct-horse-battery",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[types.LoginResponse](t, rec)
	assert.Equal(t, registered.User.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_BadCredentials(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "secure@example.com", "candidate")

	tests := []struct {
		name string
		req  types.LoginRequest
	}{
		{"wrong password", types.LoginRequest{Email: "secure@example.com", Password: "wrong-password"}},
		{"unknown email", types.LoginRequest{Email: "ghost@example.com", Password: "correct-horse-battery"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/auth/login", tt.req, nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			// Same error either way so callers cannot probe for accounts.
			assert.Equal(t, "invalid email or password", strings.TrimSpace(rec.Body.String()))
		})
	}
}
