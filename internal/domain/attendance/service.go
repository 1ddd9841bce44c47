package attendance

import (
	"context"
)

// TrackerService defines business logic for attendance sessions and breaks.
type TrackerService interface {
	// ClockIn opens the employee's session for the day. Conflicts when a
	// session with a check-in already exists for (employee, date).
	ClockIn(ctx context.Context, req ClockInRequest) (SessionResponse, error)

	// ClockOut closes the session. Rejects when no check-in is present or
	// a break is still open.
	ClockOut(ctx context.Context, req ClockOutRequest) (SessionResponse, error)

	// StartBreak appends an open break. Conflicts when one is already open.
	StartBreak(ctx context.Context, req StartBreakRequest) (BreakResponse, error)

	// EndBreak terminates an open break and fixes its duration.
	EndBreak(ctx context.Context, req EndBreakRequest) (BreakResponse, error)

	// SetBreakStatus applies the administrative approval decision.
	SetBreakStatus(ctx context.Context, req UpdateBreakStatusRequest) (BreakResponse, error)

	// ListBreaks returns a session's break ledger ordered by start time.
	ListBreaks(ctx context.Context, sessionID string) ([]BreakResponse, error)

	// EditSession replaces date/status/timestamps and recomputes the
	// derived duration and fees server-side.
	EditSession(ctx context.Context, req EditSessionRequest) (SessionResponse, error)

	GetSession(ctx context.Context, id string) (SessionResponse, error)

	ListSessions(ctx context.Context, filter SessionFilter) (ListSessionsResponse, error)

	// DeleteSession is administrative and bypasses tracker invariants.
	DeleteSession(ctx context.Context, id string) error
}
