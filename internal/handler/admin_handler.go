package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"admissions/internal/errors"
	"admissions/internal/service"
)

// AdminHandler handles the application review endpoints.
type AdminHandler struct {
	admissionService service.AdmissionService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(admissionService service.AdmissionService) *AdminHandler {
	return &AdminHandler{admissionService: admissionService}
}

// UpdateStatusRequest carries the target admission status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListApplications godoc
// @Summary List all applications, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Student
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/applications [get]
func (h *AdminHandler) ListApplications(c echo.Context) error {
	students, err := h.admissionService.ListApplications(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, students)
}

// UpdateStatus godoc
// @Summary Approve or reject an application
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student record ID"
// @Param request body UpdateStatusRequest true "Target status"
// @Success 200 {object} model.Student
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/applications/{id}/status [put]
func (h *AdminHandler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid student id")
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	student, err := h.admissionService.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, student)
}

// Stats godoc
// @Summary Dashboard counters
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.AdmissionStats
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.admissionService.Stats(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, stats)
}
