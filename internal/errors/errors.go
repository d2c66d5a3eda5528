package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrStudentNotFound is returned when a student record is not found.
	ErrStudentNotFound = errors.New("student not found")
	// ErrStaffNotFound is returned when a staff record is not found.
	ErrStaffNotFound = errors.New("staff not found")
	// ErrCourseNotFound is returned when a course is not found.
	ErrCourseNotFound = errors.New("course not found")
	// ErrApprovalConflict is returned when a status update races another update
	// on the same application.
	ErrApprovalConflict = errors.New("application was modified by another request")
	// ErrInvalidStatus is returned when a status value is not one of the
	// admission states.
	ErrInvalidStatus = errors.New("invalid admission status")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrStudentNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "STUDENT_NOT_FOUND")
	case ErrStaffNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "STAFF_NOT_FOUND")
	case ErrCourseNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "COURSE_NOT_FOUND")
	case ErrApprovalConflict:
		return NewHTTPError(http.StatusConflict, err.Error(), "APPROVAL_CONFLICT")
	case ErrInvalidStatus:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
