package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"admissions/internal/auth"
	"admissions/internal/errors"
	"admissions/internal/service"
)

// StudentHandler handles student self-service endpoints.
type StudentHandler struct {
	studentService service.StudentService
	jwtService     *auth.JWTService
}

// NewStudentHandler creates a new student handler.
func NewStudentHandler(studentService service.StudentService, jwtService *auth.JWTService) *StudentHandler {
	return &StudentHandler{studentService: studentService, jwtService: jwtService}
}

// UpdateStudentProfileRequest carries the mutable profile fields.
type UpdateStudentProfileRequest struct {
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	ProfilePic string `json:"profile_pic"`
}

// Me godoc
// @Summary Get the authenticated student's profile
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Student
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /students/me [get]
func (h *StudentHandler) Me(c echo.Context) error {
	id, err := principalID(c)
	if err != nil {
		return err
	}

	student, err := h.studentService.GetProfile(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, student)
}

// UpdateProfile godoc
// @Summary Update the authenticated student's profile
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateStudentProfileRequest true "Profile fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /students/me [put]
func (h *StudentHandler) UpdateProfile(c echo.Context) error {
	id, err := principalID(c)
	if err != nil {
		return err
	}

	var req UpdateStudentProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	student, err := h.studentService.UpdateProfile(c.Request().Context(), id, service.UpdateStudentProfileInput{
		Email:      req.Email,
		Phone:      req.Phone,
		ProfilePic: req.ProfilePic,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	// Responses to profile updates carry a fresh token.
	token, err := h.jwtService.GenerateToken(student.ID.String())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to issue token",
			Code:  "TOKEN_ISSUE_FAILED",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"student": student,
		"token":   token,
	})
}

// MyResults godoc
// @Summary List the authenticated student's course results
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Result
// @Failure 401 {object} errors.ErrorResponse
// @Router /students/me/results [get]
func (h *StudentHandler) MyResults(c echo.Context) error {
	id, err := principalID(c)
	if err != nil {
		return err
	}

	results, err := h.studentService.ListResults(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, results)
}
