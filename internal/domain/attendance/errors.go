package attendance

import "errors"

// Attendance domain errors. Conflicts cover duplicate or overlapping state,
// invalid-state errors cover ordering violations. None are retried; they are
// request-time validation failures.
var (
	// Conflicts
	ErrAlreadyClockedIn = errors.New("a session with a check-in already exists for this day")
	ErrBreakAlreadyOpen = errors.New("an open break already exists for this session")

	// Invalid state
	ErrNotClockedIn          = errors.New("session has no check-in")
	ErrAlreadyClockedOut     = errors.New("session is already clocked out")
	ErrOpenBreakOnClockOut   = errors.New("close the open break before clocking out")
	ErrBreakAlreadyEnded     = errors.New("break has already ended")
	ErrBreakEndBeforeStart   = errors.New("break end must not be before its start")
	ErrCheckOutBeforeCheckIn = errors.New("check-out must not be before check-in")

	// General
	ErrSessionNotFound = errors.New("attendance session not found")
	ErrBreakNotFound   = errors.New("break record not found")
)
