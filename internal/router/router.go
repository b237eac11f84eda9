package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"recicla/internal/auth"
	"recicla/internal/handler"
	"recicla/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	collectionHandler *handler.CollectionHandler,
	materialHandler *handler.MaterialHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/materials", materialHandler.ListMaterials)

	// Authenticated routes
	authed := api.Group("", auth.Authenticate(jwtService))

	authed.GET("/users/me", userHandler.Me)
	authed.PUT("/users/me", userHandler.UpdateMe)
	authed.GET("/users", userHandler.ListUsers, auth.RequireRoles(model.RoleCooperative))
	authed.GET("/users/:id", userHandler.GetUser, auth.RequireRoles(model.RoleCooperative))

	authed.POST("/collections", collectionHandler.Schedule, auth.RequireRoles(model.RoleCitizen, model.RoleCompany))
	authed.GET("/collections", collectionHandler.List)
	authed.GET("/collections/:id", collectionHandler.Get)
	authed.PUT("/collections/:id/status", collectionHandler.UpdateStatus, auth.RequireRoles(model.RoleCooperative))
	authed.POST("/collections/seed-materials", collectionHandler.SeedMaterials, auth.RequireRoles(model.RoleCooperative))
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
