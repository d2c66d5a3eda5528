package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"admissions/internal/errors"
	"admissions/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a student registration request.
type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Program  string `json:"program" validate:"required"`
	Password string `json:"password" validate:"required,min=5"`
}

// LoginRequest represents a login request. The identifier may arrive as an
// email or as an assigned student/staff ID.
type LoginRequest struct {
	Email     string `json:"email"`
	StudentID string `json:"student_id"`
	StaffID   string `json:"staff_id"`
	Password  string `json:"password" validate:"required"`
}

func (r LoginRequest) identifier() string {
	switch {
	case r.Email != "":
		return r.Email
	case r.StudentID != "":
		return r.StudentID
	default:
		return r.StaffID
	}
}

// ForgotPasswordRequest represents a reset-request.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest carries the new password; the token travels in the path.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=5"`
}

// MessageResponse is a plain status message.
type MessageResponse struct {
	Message string `json:"message"`
}

// uniformResetMessage is returned for both existing and unknown emails so a
// reset request never leaks account existence.
const uniformResetMessage = "If an account exists with that email, a reset link has been sent."

// Register godoc
// @Summary Register a new student application
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} service.Session
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.authService.RegisterStudent(c.Request().Context(), service.RegisterStudentInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Program:  req.Program,
		Password: req.Password,
	})
	if err != nil {
		if err == service.ErrUserAlreadyExists {
			return echo.NewHTTPError(http.StatusConflict, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "USER_ALREADY_EXISTS",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to register",
			Code:  "REGISTRATION_FAILED",
		})
	}

	return c.JSON(http.StatusCreated, session)
}

// Login godoc
// @Summary Login with email or assigned ID
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} service.Session
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	return h.login(c, "")
}

// LoginStudent narrows the lookup to student records.
// @Summary Student login
// @Tags students
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} service.Session
// @Failure 401 {object} errors.ErrorResponse
// @Router /students/login [post]
func (h *AuthHandler) LoginStudent(c echo.Context) error {
	return h.login(c, "student")
}

// LoginStaff narrows the lookup to staff records.
// @Summary Staff login
// @Tags staff
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} service.Session
// @Failure 401 {object} errors.ErrorResponse
// @Router /staff/login [post]
func (h *AuthHandler) LoginStaff(c echo.Context) error {
	return h.login(c, "staff")
}

func (h *AuthHandler) login(c echo.Context, kind string) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	identifier := req.identifier()
	if identifier == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "please provide both an identifier and a password")
	}

	session, err := h.authService.Login(c.Request().Context(), identifier, req.Password, kind)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_CREDENTIALS",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to login",
			Code:  "LOGIN_FAILED",
		})
	}

	return c.JSON(http.StatusOK, session)
}

// ForgotPassword godoc
// @Summary Request a password reset link
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		if err == service.ErrMailDispatchFailed {
			return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "MAIL_DISPATCH_FAILED",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to process reset request",
			Code:  "RESET_REQUEST_FAILED",
		})
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: uniformResetMessage})
}

// ResetPassword godoc
// @Summary Redeem a password reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param request body ResetPasswordRequest true "New password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/reset-password/{token} [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ResetPassword(c.Request().Context(), c.Param("token"), req.Password); err != nil {
		if err == service.ErrInvalidOrExpiredToken {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_OR_EXPIRED_TOKEN",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to reset password",
			Code:  "RESET_FAILED",
		})
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Password reset successful"})
}
