package auth

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"lostfound/internal/model"
)

// identityKey is the echo context key the guard stores the resolved identity under.
const identityKey = "identity"

// Identity is the resolved caller of a protected operation.
type Identity struct {
	ID    uuid.UUID
	Email string
	Role  string
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// UserLookup is the read access the guard needs for role fallback.
type UserLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// Guard resolves the effective identity and role for verified tokens and
// enforces role requirements. Every protected operation goes through it;
// handlers never re-derive roles themselves.
type Guard struct {
	users      UserLookup
	adminEmail string
}

// NewGuard creates a guard. adminEmail is the bootstrap admin identity that
// always resolves to the admin role, so administrative access survives a
// store without an admin row.
func NewGuard(users UserLookup, adminEmail string) *Guard {
	return &Guard{users: users, adminEmail: adminEmail}
}

// ResolveIdentity turns the verified token (placed in context by the JWT
// middleware) into an Identity. Role resolution order: bootstrap admin email
// override, explicit role claim, stored role, then plain user.
func (g *Guard) ResolveIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			identity := Identity{
				ID:    claims.UserID,
				Email: claims.Email,
				Role:  g.resolveRole(c.Request().Context(), claims),
			}
			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// RequireAdmin rejects non-admin identities with 403. It assumes
// ResolveIdentity already ran.
func (g *Guard) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			if !identity.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}

// IdentityFrom retrieves the resolved identity from the echo context.
func IdentityFrom(c echo.Context) (Identity, bool) {
	identity, ok := c.Get(identityKey).(Identity)
	return identity, ok
}

func (g *Guard) resolveRole(ctx context.Context, claims *Claims) string {
	if g.adminEmail != "" && claims.Email == g.adminEmail {
		return model.RoleAdmin
	}
	if model.ValidRole(claims.Role) {
		return claims.Role
	}
	if g.users != nil {
		if user, err := g.users.FindByID(ctx, claims.UserID); err == nil && model.ValidRole(user.Role) {
			return user.Role
		}
	}
	return model.RoleUser
}
