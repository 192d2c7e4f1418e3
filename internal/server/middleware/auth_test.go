package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-screener/internal/types"
)

type fakeClaims struct {
	userID uuid.UUID
	role   types.ActorRole
}

func (c *fakeClaims) GetUserID() uuid.UUID     { return c.userID }
func (c *fakeClaims) GetRole() types.ActorRole { return c.role }

type fakeValidator struct {
	claims *fakeClaims
	err    error
}

func (v *fakeValidator) ValidateToken(token string) (ActorGetter, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

func TestAuth_ValidToken(t *testing.T) {
	userID := uuid.New()
	validator := &fakeValidator{claims: &fakeClaims{userID: userID, role: types.RoleHR}}

	var gotActor types.Actor
	handler := Auth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := GetActor(r)
		require.NoError(t, err)
		gotActor = actor
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/jobs", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotActor.ID)
	assert.Equal(t, types.RoleHR, gotActor.Role)
}

func TestAuth_Rejections(t *testing.T) {
	validator := &fakeValidator{claims: &fakeClaims{userID: uuid.New(), role: types.RoleCandidate}}
	handler := Auth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no bearer prefix", "good-token"},
		{"wrong scheme", "Basic good-token"},
		{"empty token", "Bearer "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/jobs", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	validator := &fakeValidator{err: errors.New("token expired")}
	handler := Auth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest("GET", "/jobs", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetActor_MissingContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/jobs", nil)
	_, err := GetActor(req)
	assert.Error(t, err)
}

func TestAuth_BearerCaseInsensitive(t *testing.T) {
	validator := &fakeValidator{claims: &fakeClaims{userID: uuid.New(), role: types.RoleCandidate}}
	called := false
	handler := Auth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("GET", "/jobs", nil)
	req.Header.Set("Authorization", "bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, called)
}
