package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"admissions/docs"
	"admissions/internal/auth"
	"admissions/internal/config"
	"admissions/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authMw *AuthMiddleware,
	authHandler *handler.AuthHandler,
	studentHandler *handler.StudentHandler,
	staffHandler *handler.StaffHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)
	api.POST("/auth/reset-password/:token", authHandler.ResetPassword)
	api.POST("/students/register", authHandler.Register)
	api.POST("/students/login", authHandler.LoginStudent)
	api.POST("/staff/login", authHandler.LoginStaff)

	// Secured routes: echo-jwt checks signature and expiry, then the subject
	// is re-resolved against the store.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}), authMw.ResolvePrincipal)

	// Student routes
	students := secured.Group("/students", RequireRole("student"))
	students.GET("/me", studentHandler.Me)
	students.PUT("/me", studentHandler.UpdateProfile)
	students.GET("/me/results", studentHandler.MyResults)

	// Staff routes
	staff := secured.Group("/staff", RequireRole("staff"))
	staff.GET("/me", staffHandler.Me)
	staff.PUT("/me", staffHandler.UpdateProfile)
	staff.GET("/courses", staffHandler.Courses)
	staff.POST("/results", staffHandler.EnterResult)

	// Admin routes
	admin := secured.Group("/admin", authMw.RequireAdmin)
	admin.GET("/applications", adminHandler.ListApplications)
	admin.PUT("/applications/:id/status", adminHandler.UpdateStatus)
	admin.GET("/stats", adminHandler.Stats)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
