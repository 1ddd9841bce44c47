package attendance

import (
	"time"
)

type SessionStatus string

const (
	SessionStatusPresent SessionStatus = "PRESENT"
	SessionStatusLate    SessionStatus = "LATE"
	SessionStatusRequest SessionStatus = "REQUEST"
	SessionStatusAbsent  SessionStatus = "ABSENT"
	SessionStatusOnLeave SessionStatus = "ON_LEAVE"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case SessionStatusPresent, SessionStatusLate, SessionStatusRequest,
		SessionStatusAbsent, SessionStatusOnLeave:
		return true
	}
	return false
}

// SessionState is derived from the stored timestamps, never persisted.
type SessionState string

const (
	StateNotStarted SessionState = "NOT_STARTED"
	StateClockedIn  SessionState = "CLOCKED_IN"
	StateOnBreak    SessionState = "ON_BREAK"
	StateClockedOut SessionState = "CLOCKED_OUT"
)

// Session is one employee's one-day presence record. At most one session
// exists per (employee, date); the date carries no time component.
type Session struct {
	ID              string
	EmployeeID      string
	OrgID           string
	Date            time.Time
	CheckIn         *time.Time
	CheckOut        *time.Time
	Status          SessionStatus
	ShiftID         *string
	DurationSeconds int64
	LateFeeAmount   int64
	OvertimeFee     int64
	Notes           *string
	Breaks          []BreakRecord
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// State derives the tracker state from the session's data.
func (s *Session) State() SessionState {
	switch {
	case s.CheckIn == nil:
		return StateNotStarted
	case s.CheckOut != nil:
		return StateClockedOut
	case s.OpenBreak() != nil:
		return StateOnBreak
	default:
		return StateClockedIn
	}
}

// OpenBreak returns the unterminated break, if any. The tracker keeps at
// most one open.
func (s *Session) OpenBreak() *BreakRecord {
	for i := range s.Breaks {
		if s.Breaks[i].End == nil {
			return &s.Breaks[i]
		}
	}
	return nil
}

// TotalBreakSeconds sums the durations of closed breaks.
func (s *Session) TotalBreakSeconds() int64 {
	var total int64
	for i := range s.Breaks {
		if s.Breaks[i].End != nil {
			total += s.Breaks[i].DurationSeconds
		}
	}
	return total
}

type BreakStatus string

const (
	BreakStatusPending  BreakStatus = "PENDING"
	BreakStatusApproved BreakStatus = "APPROVED"
	BreakStatusRejected BreakStatus = "REJECTED"
)

func (s BreakStatus) Valid() bool {
	switch s {
	case BreakStatusPending, BreakStatusApproved, BreakStatusRejected:
		return true
	}
	return false
}

// BreakRecord is a sub-interval of a session. It cannot outlive its
// session; deleting the session cascades. Status is administrative and
// independent of whether the break has ended.
type BreakRecord struct {
	ID              string
	SessionID       string
	EmployeeID      string
	OrgID           string
	BreakTypeID     string
	Start           time.Time
	End             *time.Time
	DurationSeconds int64
	Status          BreakStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
