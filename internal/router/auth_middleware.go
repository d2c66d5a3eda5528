package router

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"admissions/internal/auth"
	"admissions/internal/config"
	"admissions/internal/handler"
	"admissions/internal/repository"
)

// AuthMiddleware resolves token subjects into principals. The subject is
// looked up against the store on every request; a record deleted after token
// issuance loses access immediately since no session cache exists.
type AuthMiddleware struct {
	cfg      *config.Config
	students repository.StudentRepository
	staff    repository.StaffRepository
}

// NewAuthMiddleware creates the middleware.
func NewAuthMiddleware(cfg *config.Config, students repository.StudentRepository, staff repository.StaffRepository) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg, students: students, staff: staff}
}

// ResolvePrincipal runs after echo-jwt has verified signature and expiry and
// attaches the resolved principal to the context.
func (m *AuthMiddleware) ResolvePrincipal(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
		}
		claims, ok := token.Claims.(*auth.Claims)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
		}

		if claims.UserID == auth.AdminSubject {
			c.Set(handler.PrincipalKey, auth.Principal{
				ID:       auth.AdminSubject,
				Role:     "admin",
				Email:    m.cfg.AdminEmail,
				FullName: "Admin",
			})
			return next(c)
		}

		id, err := uuid.Parse(claims.UserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
		}

		ctx := c.Request().Context()
		if student, err := m.students.FindByID(ctx, id); err == nil {
			c.Set(handler.PrincipalKey, auth.Principal{
				ID:       student.ID.String(),
				Role:     "student",
				Email:    student.Email,
				FullName: student.FullName,
			})
			return next(c)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusInternalServerError, "lookup failed")
		}

		if staff, err := m.staff.FindByID(ctx, id); err == nil {
			c.Set(handler.PrincipalKey, auth.Principal{
				ID:       staff.ID.String(),
				Role:     staff.Role,
				Email:    staff.Email,
				FullName: staff.FullName,
			})
			return next(c)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusInternalServerError, "lookup failed")
		}

		return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, user not found")
	}
}

// RequireRole rejects principals that do not carry the given role.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := c.Get(handler.PrincipalKey).(auth.Principal)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
			}
			if p.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

// RequireAdmin rejects non-admin principals. The configured admin email is
// accepted as a fallback for staff records promoted by configuration.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, ok := c.Get(handler.PrincipalKey).(auth.Principal)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
		}
		if !p.IsAdmin() && p.Email != m.cfg.AdminEmail {
			return echo.NewHTTPError(http.StatusForbidden, "not authorized as an admin")
		}
		return next(c)
	}
}
