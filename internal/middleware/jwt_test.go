package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qaplatform/internal/model"
	"qaplatform/internal/utils"
)

const testSecret = "test-secret"

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, model.Actor, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotActor model.Actor
	var gotOK bool
	handler := mw(func(c echo.Context) error {
		gotActor, gotOK = Actor(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, gotActor, gotOK
}

func TestJWTAuthRoundTrip(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, "alice", model.RoleAdmin, 1)
	require.NoError(t, err)

	rec, actor, ok := doRequest(t, JWTAuth(testSecret), "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, ok)
	assert.Equal(t, uint64(42), actor.ID)
	assert.Equal(t, "alice", actor.Username)
	assert.Equal(t, model.RoleAdmin, actor.Role)
}

func TestJWTAuthRejects(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _, ok := doRequest(t, JWTAuth(testSecret), tc.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, ok)
		})
	}
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 42, "alice", model.RoleUser, 1)
	require.NoError(t, err)

	rec, _, _ := doRequest(t, JWTAuth(testSecret), "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthAnonymous(t *testing.T) {
	rec, _, ok := doRequest(t, OptionalAuth(testSecret), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, ok)
}

func TestOptionalAuthWithToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, "bob", model.RoleUser, 1)
	require.NoError(t, err)

	rec, actor, ok := doRequest(t, OptionalAuth(testSecret), "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, ok)
	assert.Equal(t, uint64(7), actor.ID)
	assert.Equal(t, "bob", actor.Username)
}

func TestOptionalAuthInvalidTokenFallsBackToAnonymous(t *testing.T) {
	rec, _, ok := doRequest(t, OptionalAuth(testSecret), "Bearer junk")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, ok)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	run := func(actor *model.Actor) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if actor != nil {
			c.Set("actor", *actor)
		}
		handler := RequireRole(model.RoleAdmin)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, handler(c))
		return rec
	}

	assert.Equal(t, http.StatusOK, run(&model.Actor{ID: 1, Role: model.RoleAdmin}).Code)
	assert.Equal(t, http.StatusForbidden, run(&model.Actor{ID: 1, Role: model.RoleUser}).Code)
	assert.Equal(t, http.StatusForbidden, run(nil).Code)
}
