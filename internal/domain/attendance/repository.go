package attendance

import (
	"context"
	"time"
)

// SessionRepository defines data access for attendance sessions.
// All methods take orgID to prevent cross-organization data access.
type SessionRepository interface {
	Create(ctx context.Context, session Session) (Session, error)

	// GetByID loads the session with its breaks, ordered by break start.
	GetByID(ctx context.Context, id string, orgID string) (Session, error)

	// GetByEmployeeAndDate is used to enforce the one-session-per-day
	// invariant. Returns nil when no session exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, orgID string) (*Session, error)

	Update(ctx context.Context, session Session) error

	List(ctx context.Context, filter SessionFilter, orgID string) ([]Session, int64, error)

	// Delete removes the session; breaks cascade with it.
	Delete(ctx context.Context, id string, orgID string) error
}

// BreakRepository defines data access for break records.
type BreakRepository interface {
	Create(ctx context.Context, br BreakRecord) (BreakRecord, error)

	GetByID(ctx context.Context, id string, orgID string) (BreakRecord, error)

	// ListBySession returns breaks ordered by start time.
	ListBySession(ctx context.Context, sessionID string, orgID string) ([]BreakRecord, error)

	// GetOpenBySession returns the unterminated break for a session, nil
	// when none is open.
	GetOpenBySession(ctx context.Context, sessionID string, orgID string) (*BreakRecord, error)

	Update(ctx context.Context, br BreakRecord) error
}
