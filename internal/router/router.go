package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Ananya-Krishnappa/fundoo-notes/internal/auth"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/config"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	noteHandler *handler.NoteHandler,
	labelHandler *handler.LabelHandler,
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
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)
	api.POST("/auth/reset-password", authHandler.ResetPassword)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	// Note routes
	secured.POST("/notes", noteHandler.Create)
	secured.GET("/notes", noteHandler.List)
	secured.GET("/notes/:id", noteHandler.Get)
	secured.PUT("/notes/:id", noteHandler.Update)
	secured.PUT("/notes/:id/trash", noteHandler.Trash)
	secured.PUT("/notes/:id/archive", noteHandler.Archive)
	secured.PUT("/notes/:id/pin", noteHandler.Pin)
	secured.DELETE("/notes/:id", noteHandler.DeleteForever)

	// Label routes
	secured.POST("/labels", labelHandler.Create)
	secured.GET("/notes/:id/labels", labelHandler.ListByNote)
	secured.PUT("/labels/:id", labelHandler.Update)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
