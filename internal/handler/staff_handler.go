package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"admissions/internal/auth"
	"admissions/internal/errors"
	"admissions/internal/service"
)

// StaffHandler handles staff self-service and records-entry endpoints.
type StaffHandler struct {
	staffService service.StaffService
	jwtService   *auth.JWTService
}

// NewStaffHandler creates a new staff handler.
func NewStaffHandler(staffService service.StaffService, jwtService *auth.JWTService) *StaffHandler {
	return &StaffHandler{staffService: staffService, jwtService: jwtService}
}

// UpdateStaffProfileRequest carries the mutable staff profile fields.
type UpdateStaffProfileRequest struct {
	Phone      string `json:"phone"`
	ProfilePic string `json:"profile_pic"`
}

// ResultEntryRequest is a manual result entry.
type ResultEntryRequest struct {
	StudentID  string  `json:"student_id" validate:"required"`
	CourseCode string  `json:"course_code" validate:"required"`
	Score      float64 `json:"score" validate:"min=0,max=100"`
	Semester   string  `json:"semester"`
	Session    string  `json:"session"`
}

// Me godoc
// @Summary Get the authenticated staff member's profile
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Staff
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /staff/me [get]
func (h *StaffHandler) Me(c echo.Context) error {
	id, err := principalID(c)
	if err != nil {
		return err
	}

	staff, err := h.staffService.GetProfile(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, staff)
}

// UpdateProfile godoc
// @Summary Update the authenticated staff member's profile
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateStaffProfileRequest true "Profile fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /staff/me [put]
func (h *StaffHandler) UpdateProfile(c echo.Context) error {
	id, err := principalID(c)
	if err != nil {
		return err
	}

	var req UpdateStaffProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	staff, err := h.staffService.UpdateProfile(c.Request().Context(), id, service.UpdateStaffProfileInput{
		Phone:      req.Phone,
		ProfilePic: req.ProfilePic,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	token, err := h.jwtService.GenerateToken(staff.ID.String())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to issue token",
			Code:  "TOKEN_ISSUE_FAILED",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"staff": staff,
		"token": token,
	})
}

// Courses godoc
// @Summary List courses assigned to the authenticated staff member
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Course
// @Failure 401 {object} errors.ErrorResponse
// @Router /staff/courses [get]
func (h *StaffHandler) Courses(c echo.Context) error {
	id, err := principalID(c)
	if err != nil {
		return err
	}

	courses, err := h.staffService.ListCourses(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, courses)
}

// EnterResult godoc
// @Summary Enter or update a course result
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ResultEntryRequest true "Result entry"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /staff/results [post]
func (h *StaffHandler) EnterResult(c echo.Context) error {
	var req ResultEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.staffService.EnterResult(c.Request().Context(), service.ResultEntryInput{
		StudentNumber: req.StudentID,
		CourseCode:    req.CourseCode,
		Score:         req.Score,
		Semester:      req.Semester,
		Session:       req.Session,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Result saved successfully",
		"result":  result,
	})
}
