package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"admissions/internal/auth"
	"admissions/internal/config"
	"admissions/internal/handler"
	"admissions/internal/model"
)

func testRouterConfig() *config.Config {
	return &config.Config{
		JWTSecret:  "test-secret",
		AdminEmail: "admin@josmed.edu.ng",
	}
}

// newSecuredEcho wires the token gate the same way Register does: echo-jwt
// verifies signature and expiry, then ResolvePrincipal re-resolves the subject.
func newSecuredEcho(cfg *config.Config, authMw *AuthMiddleware) *echo.Echo {
	e := echo.New()
	secured := e.Group("/api", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}), authMw.ResolvePrincipal)

	secured.GET("/whoami", func(c echo.Context) error {
		p, ok := c.Get(handler.PrincipalKey).(auth.Principal)
		if !ok {
			return echo.NewHTTPError(http.StatusInternalServerError, "no principal")
		}
		return c.JSON(http.StatusOK, map[string]string{"id": p.ID, "role": p.Role})
	})

	students := secured.Group("/students", RequireRole("student"))
	students.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	admin := secured.Group("/admin", authMw.RequireAdmin)
	admin.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	return e
}

func doSecuredRequest(e *echo.Echo, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestResolvePrincipal(t *testing.T) {
	cfg := testRouterConfig()
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	t.Run("student token resolves to a student principal", func(t *testing.T) {
		mStudents := new(MockStudentRepository)
		mStaff := new(MockStaffRepository)
		id := uuid.New()
		mStudents.On("FindByID", mock.Anything, id).Return(&model.Student{
			ID:       id,
			FullName: "Ada Obi",
			Email:    "ada@example.com",
		}, nil)

		e := newSecuredEcho(cfg, NewAuthMiddleware(cfg, mStudents, mStaff))
		token, err := jwtService.GenerateToken(id.String())
		assert.NoError(t, err)

		rec := doSecuredRequest(e, "/api/whoami", token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"role":"student"`)
		assert.Contains(t, rec.Body.String(), id.String())
	})

	t.Run("staff token resolves with the stored role", func(t *testing.T) {
		mStudents := new(MockStudentRepository)
		mStaff := new(MockStaffRepository)
		id := uuid.New()
		mStudents.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)
		mStaff.On("FindByID", mock.Anything, id).Return(&model.Staff{
			ID:    id,
			Email: "lecturer@example.com",
			Role:  "staff",
		}, nil)

		e := newSecuredEcho(cfg, NewAuthMiddleware(cfg, mStudents, mStaff))
		token, err := jwtService.GenerateToken(id.String())
		assert.NoError(t, err)

		rec := doSecuredRequest(e, "/api/whoami", token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"role":"staff"`)
	})

	t.Run("admin sentinel subject needs no backing record", func(t *testing.T) {
		mStudents := new(MockStudentRepository)
		mStaff := new(MockStaffRepository)

		e := newSecuredEcho(cfg, NewAuthMiddleware(cfg, mStudents, mStaff))
		token, err := jwtService.GenerateToken(auth.AdminSubject)
		assert.NoError(t, err)

		rec := doSecuredRequest(e, "/api/whoami", token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"role":"admin"`)
		mStudents.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		mStaff.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("subject deleted after issuance is rejected", func(t *testing.T) {
		mStudents := new(MockStudentRepository)
		mStaff := new(MockStaffRepository)
		id := uuid.New()
		mStudents.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)
		mStaff.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		e := newSecuredEcho(cfg, NewAuthMiddleware(cfg, mStudents, mStaff))
		token, err := jwtService.GenerateToken(id.String())
		assert.NoError(t, err)

		rec := doSecuredRequest(e, "/api/whoami", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		mStudents := new(MockStudentRepository)
		mStaff := new(MockStaffRepository)

		e := newSecuredEcho(cfg, NewAuthMiddleware(cfg, mStudents, mStaff))
		token, err := auth.NewJWTService("other-secret").GenerateToken(uuid.NewString())
		assert.NoError(t, err)

		rec := doSecuredRequest(e, "/api/whoami", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		mStudents.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestRoleGuards(t *testing.T) {
	cfg := testRouterConfig()
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	studentID := uuid.New()
	staffID := uuid.New()

	setup := func(staffRole, staffEmail string) *echo.Echo {
		mStudents := new(MockStudentRepository)
		mStaff := new(MockStaffRepository)
		mStudents.On("FindByID", mock.Anything, studentID).Return(&model.Student{ID: studentID}, nil)
		mStudents.On("FindByID", mock.Anything, staffID).Return(nil, gorm.ErrRecordNotFound)
		mStaff.On("FindByID", mock.Anything, staffID).Return(&model.Staff{
			ID:    staffID,
			Email: staffEmail,
			Role:  staffRole,
		}, nil)
		return newSecuredEcho(cfg, NewAuthMiddleware(cfg, mStudents, mStaff))
	}

	studentToken, err := jwtService.GenerateToken(studentID.String())
	assert.NoError(t, err)
	staffToken, err := jwtService.GenerateToken(staffID.String())
	assert.NoError(t, err)

	t.Run("student role passes the student guard", func(t *testing.T) {
		rec := doSecuredRequest(setup("staff", "lecturer@example.com"), "/api/students/ping", studentToken)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("staff role is forbidden on student routes", func(t *testing.T) {
		rec := doSecuredRequest(setup("staff", "lecturer@example.com"), "/api/students/ping", staffToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin role passes the admin guard", func(t *testing.T) {
		rec := doSecuredRequest(setup("admin", "registrar@josmed.edu.ng"), "/api/admin/ping", staffToken)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("configured admin email passes the admin guard", func(t *testing.T) {
		rec := doSecuredRequest(setup("staff", cfg.AdminEmail), "/api/admin/ping", staffToken)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("student is forbidden on admin routes", func(t *testing.T) {
		rec := doSecuredRequest(setup("staff", "lecturer@example.com"), "/api/admin/ping", studentToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
