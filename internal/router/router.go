package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"lostfound/internal/auth"
	"lostfound/internal/config"
	"lostfound/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	guard *auth.Guard,
	authHandler *handler.AuthHandler,
	itemHandler *handler.ItemHandler,
	claimHandler *handler.ClaimHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/items", itemHandler.List)
	api.GET("/items/:id", itemHandler.Get)

	// Secured routes: echo-jwt verifies the bearer token, the guard resolves
	// the effective identity and role on top of it.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}), guard.ResolveIdentity())

	secured.GET("/auth/me", authHandler.Me)

	// Item routes
	secured.POST("/items", itemHandler.Create)
	secured.GET("/items/mine", itemHandler.Mine)
	secured.DELETE("/items/:id", itemHandler.Delete)

	// Claim routes
	secured.POST("/claims", claimHandler.Submit)
	secured.PUT("/claims/:id/approve", claimHandler.Approve)
	secured.PUT("/claims/:id/reject", claimHandler.Reject)
	secured.GET("/claims/my-items", claimHandler.MyItemClaims)

	// Admin routes
	admin := secured.Group("/admin", guard.RequireAdmin())
	admin.GET("/items", adminHandler.ListItems)
	admin.DELETE("/items/:id", adminHandler.DeleteItem)
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.PATCH("/users/:id/role", adminHandler.SetRole)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
