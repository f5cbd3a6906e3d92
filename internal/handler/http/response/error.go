package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/workkeeper-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workkeeper-go/internal/domain/auth"
	"github.com/cmlabs-hris/workkeeper-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")
	case errors.Is(err, attendance.ErrMissingEmployeeClaim):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidRole):
		Forbidden(w, "Unknown role")
	case errors.Is(err, auth.ErrManagerAccessRequired):
		Forbidden(w, "Manager or owner access required")

	// Punch guard errors
	case errors.Is(err, attendance.ErrClockSkew):
		UnprocessableEntity(w, "CLOCK_SKEW", err.Error())
	case errors.Is(err, attendance.ErrDuplicatePunch):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrFuturePunch):
		UnprocessableEntity(w, "FUTURE_PUNCH", err.Error())

	// Lookup errors
	case errors.Is(err, attendance.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, attendance.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, attendance.ErrPunchNotFound):
		NotFound(w, "Punch not found")
	case errors.Is(err, attendance.ErrAlertNotFound):
		NotFound(w, "Alert not found")
	case errors.Is(err, attendance.ErrShiftNotAssigned):
		UnprocessableEntity(w, "SHIFT_NOT_ASSIGNED", "Shift not assigned to employee")

	// Parsing errors
	case errors.Is(err, attendance.ErrInvalidDate),
		errors.Is(err, attendance.ErrInvalidSource),
		errors.Is(err, attendance.ErrInvalidDirection):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
