package response

import (
	"errors"
	"net/http"

	"github.com/worklane-hq/orgtime-backend-go/internal/domain/attendance"
	"github.com/worklane-hq/orgtime-backend-go/internal/domain/leave"
	"github.com/worklane-hq/orgtime-backend-go/internal/domain/shift"
	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance conflicts
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "A session with a check-in already exists for this day")
	case errors.Is(err, attendance.ErrBreakAlreadyOpen):
		Conflict(w, "An open break already exists for this session")

	// Attendance invalid state
	case errors.Is(err, attendance.ErrNotClockedIn):
		InvalidState(w, "Session has no check-in")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		InvalidState(w, "Session is already clocked out")
	case errors.Is(err, attendance.ErrOpenBreakOnClockOut):
		InvalidState(w, "Close the open break before clocking out")
	case errors.Is(err, attendance.ErrBreakAlreadyEnded):
		InvalidState(w, "Break has already ended")
	case errors.Is(err, attendance.ErrBreakEndBeforeStart):
		InvalidState(w, "Break end must not be before its start")
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		InvalidState(w, "Check-out must not be before check-in")

	// Attendance not found
	case errors.Is(err, attendance.ErrSessionNotFound):
		NotFound(w, "Attendance session not found")
	case errors.Is(err, attendance.ErrBreakNotFound):
		NotFound(w, "Break record not found")

	// Shift catalog errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrBreakTypeNotFound):
		NotFound(w, "Break type not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave record not found")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrAllowanceExhausted):
		Conflict(w, "Leave allowance exhausted for the requested period")
	case errors.Is(err, leave.ErrInvalidTransition):
		InvalidState(w, "Leave status transition not allowed")
	case errors.Is(err, leave.ErrUnknownStatus):
		BadRequest(w, "Unknown leave status", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
