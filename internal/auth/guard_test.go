package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lostfound/internal/model"
)

const (
	guardTestSecret     = "guard-test-secret"
	guardTestAdminEmail = "root@example.com"
)

type stubLookup struct {
	users map[uuid.UUID]*model.User
}

func (s *stubLookup) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newGuardServer(lookup UserLookup) *echo.Echo {
	guard := NewGuard(lookup, guardTestAdminEmail)

	e := echo.New()
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(guardTestSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
	}), guard.ResolveIdentity())

	secured.GET("/me", func(c echo.Context) error {
		identity, ok := IdentityFrom(c)
		if !ok {
			return echo.NewHTTPError(http.StatusInternalServerError, "identity missing")
		}
		return c.JSON(http.StatusOK, map[string]string{
			"id":    identity.ID.String(),
			"email": identity.Email,
			"role":  identity.Role,
		})
	})
	secured.GET("/admin-only", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, guard.RequireAdmin())

	return e
}

func doGuardRequest(e *echo.Echo, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGuard_MissingToken(t *testing.T) {
	e := newGuardServer(&stubLookup{})

	rec := doGuardRequest(e, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuard_InvalidToken(t *testing.T) {
	e := newGuardServer(&stubLookup{})

	rec := doGuardRequest(e, "/me", "not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuard_ForgedToken(t *testing.T) {
	e := newGuardServer(&stubLookup{})

	forged, err := NewJWTService("attacker-secret").GenerateToken(uuid.New(), "a@example.com", "admin")
	require.NoError(t, err)

	rec := doGuardRequest(e, "/me", forged)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuard_ResolvesRoleFromClaim(t *testing.T) {
	e := newGuardServer(&stubLookup{})

	token, err := NewJWTService(guardTestSecret).GenerateToken(uuid.New(), "user@example.com", "user")
	require.NoError(t, err)

	rec := doGuardRequest(e, "/me", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"user"`)
}

func TestGuard_RoleFallbackToStore(t *testing.T) {
	userID := uuid.New()
	e := newGuardServer(&stubLookup{users: map[uuid.UUID]*model.User{
		userID: {ID: userID, Email: "user@example.com", Role: model.RoleAdmin},
	}})

	// Empty role claim forces the store lookup.
	token, err := NewJWTService(guardTestSecret).GenerateToken(userID, "user@example.com", "")
	require.NoError(t, err)

	rec := doGuardRequest(e, "/me", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"admin"`)
}

func TestGuard_UnknownUserDefaultsToUserRole(t *testing.T) {
	e := newGuardServer(&stubLookup{})

	token, err := NewJWTService(guardTestSecret).GenerateToken(uuid.New(), "user@example.com", "")
	require.NoError(t, err)

	rec := doGuardRequest(e, "/me", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"user"`)
}

func TestGuard_AdminEmailOverride(t *testing.T) {
	e := newGuardServer(&stubLookup{})

	// Role claim says user, but the bootstrap admin email always wins.
	token, err := NewJWTService(guardTestSecret).GenerateToken(uuid.Nil, guardTestAdminEmail, "user")
	require.NoError(t, err)

	rec := doGuardRequest(e, "/me", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"admin"`)
}

func TestGuard_RequireAdmin(t *testing.T) {
	e := newGuardServer(&stubLookup{})
	jwtService := NewJWTService(guardTestSecret)

	userToken, err := jwtService.GenerateToken(uuid.New(), "user@example.com", "user")
	require.NoError(t, err)
	adminToken, err := jwtService.GenerateToken(uuid.New(), "boss@example.com", "admin")
	require.NoError(t, err)

	rec := doGuardRequest(e, "/admin-only", userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doGuardRequest(e, "/admin-only", adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}
