package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/worklane-hq/orgtime-backend-go/internal/domain/attendance"
	"github.com/worklane-hq/orgtime-backend-go/internal/domain/shift"
	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/claims"
	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/database"
	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/locker"
)

type TrackerServiceImpl struct {
	db *database.DB
	attendance.SessionRepository
	attendance.BreakRepository
	shift.ShiftRepository
	shift.BreakTypeRepository
	locks *locker.KeyedLocker
}

func NewTrackerService(
	db *database.DB,
	sessionRepo attendance.SessionRepository,
	breakRepo attendance.BreakRepository,
	shiftRepo shift.ShiftRepository,
	breakTypeRepo shift.BreakTypeRepository,
	locks *locker.KeyedLocker,
) attendance.TrackerService {
	return &TrackerServiceImpl{
		db:                  db,
		SessionRepository:   sessionRepo,
		BreakRepository:     breakRepo,
		ShiftRepository:     shiftRepo,
		BreakTypeRepository: breakTypeRepo,
		locks:               locks,
	}
}

// timePtrToString safely converts a *time.Time to an RFC3339 string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}

// sessionKey serializes all mutations of one (employee, date) pair.
func sessionKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

// dateOnly drops the time component, keeping a bare calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ClockIn implements attendance.TrackerService.
func (s *TrackerServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}

	cl, err := claims.FromContext(ctx)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	now := time.Now().UTC()
	checkIn := now
	if req.ParsedCheckIn != nil {
		checkIn = req.ParsedCheckIn.UTC()
	}

	date := dateOnly(checkIn)
	if req.ParsedDate != nil {
		date = dateOnly(*req.ParsedDate)
	}

	unlock := s.locks.Lock(sessionKey(cl.EmployeeID, date))
	defer unlock()

	existing, err := s.SessionRepository.GetByEmployeeAndDate(ctx, cl.EmployeeID, date, cl.OrgID)
	if err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("failed to look up session for the day: %w", err)
	}
	if existing != nil && existing.CheckIn != nil {
		return attendance.SessionResponse{}, attendance.ErrAlreadyClockedIn
	}

	chosenShift, err := s.pickShift(ctx, req.ShiftID, checkIn, cl.OrgID)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	status := attendance.SessionStatusPresent
	if req.Status != "" {
		status = attendance.SessionStatus(req.Status)
	} else if chosenShift != nil && lateMinutes(*chosenShift, checkIn) > 0 {
		status = attendance.SessionStatusLate
	}

	session := attendance.Session{
		EmployeeID: cl.EmployeeID,
		OrgID:      cl.OrgID,
		Date:       date,
		CheckIn:    &checkIn,
		Status:     status,
		Notes:      req.Notes,
	}
	if chosenShift != nil {
		session.ShiftID = &chosenShift.ID
	}
	reprice(&session, chosenShift)

	if existing != nil {
		// Session row exists without a check-in (backdated request shell).
		session.ID = existing.ID
		if err := s.SessionRepository.Update(ctx, session); err != nil {
			return attendance.SessionResponse{}, fmt.Errorf("failed to update session on clock-in: %w", err)
		}
		return mapSessionToResponse(session), nil
	}

	session.ID = uuid.NewString()
	created, err := s.SessionRepository.Create(ctx, session)
	if err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("failed to create session: %w", err)
	}

	return mapSessionToResponse(created), nil
}

// pickShift resolves the shift reference for a clock-in: the explicit one
// when supplied, otherwise the catalog shift whose start is closest to the
// check-in time. A nil result means the catalog is empty and no fees apply.
func (s *TrackerServiceImpl) pickShift(ctx context.Context, shiftID *string, checkIn time.Time, orgID string) (*shift.Shift, error) {
	if shiftID != nil {
		sh, err := s.ShiftRepository.GetByID(ctx, *shiftID, orgID)
		if err != nil {
			return nil, err
		}
		return &sh, nil
	}

	catalog, err := s.ShiftRepository.List(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift catalog: %w", err)
	}
	closest, ok := shift.Closest(catalog, checkIn)
	if !ok {
		return nil, nil
	}
	return &closest, nil
}

// ClockOut implements attendance.TrackerService.
func (s *TrackerServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}

	cl, err := claims.FromContext(ctx)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	session, err := s.SessionRepository.GetByID(ctx, req.SessionID, cl.OrgID)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	unlock := s.locks.Lock(sessionKey(session.EmployeeID, session.Date))
	defer unlock()

	// Re-read under the lock so a concurrent mutation cannot slip between
	// the first load and the state checks.
	session, err = s.SessionRepository.GetByID(ctx, req.SessionID, cl.OrgID)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	if session.CheckIn == nil {
		return attendance.SessionResponse{}, attendance.ErrNotClockedIn
	}
	if session.CheckOut != nil {
		return attendance.SessionResponse{}, attendance.ErrAlreadyClockedOut
	}
	if session.OpenBreak() != nil {
		// Never fabricate a break end time on the employee's behalf.
		return attendance.SessionResponse{}, attendance.ErrOpenBreakOnClockOut
	}

	checkOut := time.Now().UTC()
	if req.ParsedCheckOut != nil {
		checkOut = req.ParsedCheckOut.UTC()
	}
	if checkOut.Before(*session.CheckIn) {
		return attendance.SessionResponse{}, attendance.ErrCheckOutBeforeCheckIn
	}

	session.CheckOut = &checkOut
	if req.Notes != nil {
		session.Notes = req.Notes
	}

	sh, err := s.sessionShift(ctx, &session, cl.OrgID)
	if err != nil {
		return attendance.SessionResponse{}, err
	}
	reprice(&session, sh)

	if err := s.SessionRepository.Update(ctx, session); err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("failed to update session on clock-out: %w", err)
	}

	return mapSessionToResponse(session), nil
}

func (s *TrackerServiceImpl) sessionShift(ctx context.Context, session *attendance.Session, orgID string) (*shift.Shift, error) {
	if session.ShiftID == nil {
		return nil, nil
	}
	sh, err := s.ShiftRepository.GetByID(ctx, *session.ShiftID, orgID)
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

// StartBreak implements attendance.TrackerService.
func (s *TrackerServiceImpl) StartBreak(ctx context.Context, req attendance.StartBreakRequest) (attendance.BreakResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BreakResponse{}, err
	}

	cl, err := claims.FromContext(ctx)
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	session, err := s.SessionRepository.GetByID(ctx, req.SessionID, cl.OrgID)
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	unlock := s.locks.Lock(sessionKey(session.EmployeeID, session.Date))
	defer unlock()

	// Re-read under the lock so a concurrent clock-out cannot slip between
	// the first load and the state checks.
	session, err = s.SessionRepository.GetByID(ctx, req.SessionID, cl.OrgID)
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	if session.CheckIn == nil {
		return attendance.BreakResponse{}, attendance.ErrNotClockedIn
	}
	if session.CheckOut != nil {
		return attendance.BreakResponse{}, attendance.ErrAlreadyClockedOut
	}

	if _, err := s.BreakTypeRepository.GetByID(ctx, req.BreakTypeID, cl.OrgID); err != nil {
		return attendance.BreakResponse{}, err
	}

	open, err := s.BreakRepository.GetOpenBySession(ctx, session.ID, cl.OrgID)
	if err != nil {
		return attendance.BreakResponse{}, fmt.Errorf("failed to look up open break: %w", err)
	}
	if open != nil {
		return attendance.BreakResponse{}, attendance.ErrBreakAlreadyOpen
	}

	start := time.Now().UTC()
	if req.ParsedStart != nil {
		start = req.ParsedStart.UTC()
	}

	record := attendance.BreakRecord{
		ID:          uuid.NewString(),
		SessionID:   session.ID,
		EmployeeID:  session.EmployeeID,
		OrgID:       session.OrgID,
		BreakTypeID: req.BreakTypeID,
		Start:       start,
		Status:      attendance.BreakStatusPending,
	}

	created, err := s.BreakRepository.Create(ctx, record)
	if err != nil {
		return attendance.BreakResponse{}, fmt.Errorf("failed to create break record: %w", err)
	}

	return mapBreakToResponse(created), nil
}

// EndBreak implements attendance.TrackerService.
func (s *TrackerServiceImpl) EndBreak(ctx context.Context, req attendance.EndBreakRequest) (attendance.BreakResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BreakResponse{}, err
	}

	cl, err := claims.FromContext(ctx)
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	session, err := s.SessionRepository.GetByID(ctx, req.SessionID, cl.OrgID)
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	unlock := s.locks.Lock(sessionKey(session.EmployeeID, session.Date))
	defer unlock()

	record, err := s.BreakRepository.GetByID(ctx, req.BreakID, cl.OrgID)
	if err != nil {
		return attendance.BreakResponse{}, err
	}
	if record.SessionID != session.ID {
		return attendance.BreakResponse{}, attendance.ErrBreakNotFound
	}

	if record.End != nil {
		return attendance.BreakResponse{}, attendance.ErrBreakAlreadyEnded
	}

	end := time.Now().UTC()
	if req.ParsedEnd != nil {
		end = req.ParsedEnd.UTC()
	}
	if end.Before(record.Start) {
		return attendance.BreakResponse{}, attendance.ErrBreakEndBeforeStart
	}

	record.End = &end
	record.DurationSeconds = breakSeconds(record.Start, end)

	if err := s.BreakRepository.Update(ctx, record); err != nil {
		return attendance.BreakResponse{}, fmt.Errorf("failed to update break record: %w", err)
	}

	return mapBreakToResponse(record), nil
}

// SetBreakStatus implements attendance.TrackerService.
func (s *TrackerServiceImpl) SetBreakStatus(ctx context.Context, req attendance.UpdateBreakStatusRequest) (attendance.BreakResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BreakResponse{}, err
	}

	cl, err := claims.FromContext(ctx)
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	record, err := s.BreakRepository.GetByID(ctx, req.BreakID, cl.OrgID)
	if err != nil {
		return attendance.BreakResponse{}, err
	}
	if record.SessionID != req.SessionID {
		return attendance.BreakResponse{}, attendance.ErrBreakNotFound
	}

	record.Status = attendance.BreakStatus(req.Status)

	if err := s.BreakRepository.Update(ctx, record); err != nil {
		return attendance.BreakResponse{}, fmt.Errorf("failed to update break status: %w", err)
	}

	return mapBreakToResponse(record), nil
}

// ListBreaks implements attendance.TrackerService.
func (s *TrackerServiceImpl) ListBreaks(ctx context.Context, sessionID string) ([]attendance.BreakResponse, error) {
	cl, err := claims.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.BreakRepository.ListBySession(ctx, sessionID, cl.OrgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list breaks: %w", err)
	}

	responses := make([]attendance.BreakResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, mapBreakToResponse(record))
	}
	return responses, nil
}

// EditSession implements attendance.TrackerService. Full replace of
// date/status/timestamps with server-side recomputation; a client-supplied
// duration is never trusted.
func (s *TrackerServiceImpl) EditSession(ctx context.Context, req attendance.EditSessionRequest) (attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}

	cl, err := claims.FromContext(ctx)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	session, err := s.SessionRepository.GetByID(ctx, req.ID, cl.OrgID)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	newDate := dateOnly(req.ParsedDate)

	// An edit that moves the session touches two days. Lock both keys, in
	// lexical order so two opposite moves cannot deadlock.
	firstKey := sessionKey(session.EmployeeID, session.Date)
	secondKey := sessionKey(session.EmployeeID, newDate)
	if secondKey < firstKey {
		firstKey, secondKey = secondKey, firstKey
	}
	unlock := s.locks.Lock(firstKey)
	defer unlock()
	if secondKey != firstKey {
		unlockSecond := s.locks.Lock(secondKey)
		defer unlockSecond()
	}

	// Re-read under the locks; the first load only resolved the old day.
	session, err = s.SessionRepository.GetByID(ctx, req.ID, cl.OrgID)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	if !newDate.Equal(session.Date) {
		other, err := s.SessionRepository.GetByEmployeeAndDate(ctx, session.EmployeeID, newDate, cl.OrgID)
		if err != nil {
			return attendance.SessionResponse{}, fmt.Errorf("failed to look up session for the day: %w", err)
		}
		if other != nil && other.ID != session.ID {
			return attendance.SessionResponse{}, attendance.ErrAlreadyClockedIn
		}
	}

	// A check-out without a check-in is internal inconsistency; fail fast
	// instead of computing from half a pair.
	if req.ParsedCheckOut != nil && req.ParsedCheckIn == nil {
		return attendance.SessionResponse{}, attendance.ErrNotClockedIn
	}

	session.Date = newDate
	session.Status = attendance.SessionStatus(req.Status)
	session.CheckIn = req.ParsedCheckIn
	session.CheckOut = req.ParsedCheckOut
	if req.ShiftID != nil {
		session.ShiftID = req.ShiftID
	}
	if req.Notes != nil {
		session.Notes = req.Notes
	}

	sh, err := s.sessionShift(ctx, &session, cl.OrgID)
	if err != nil {
		return attendance.SessionResponse{}, err
	}
	reprice(&session, sh)

	if err := s.SessionRepository.Update(ctx, session); err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("failed to update session: %w", err)
	}

	updated, err := s.SessionRepository.GetByID(ctx, req.ID, cl.OrgID)
	if err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("failed to get updated session: %w", err)
	}

	return mapSessionToResponse(updated), nil
}

// GetSession implements attendance.TrackerService.
func (s *TrackerServiceImpl) GetSession(ctx context.Context, id string) (attendance.SessionResponse, error) {
	cl, err := claims.FromContext(ctx)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	session, err := s.SessionRepository.GetByID(ctx, id, cl.OrgID)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	return mapSessionToResponse(session), nil
}

// ListSessions implements attendance.TrackerService.
func (s *TrackerServiceImpl) ListSessions(ctx context.Context, filter attendance.SessionFilter) (attendance.ListSessionsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListSessionsResponse{}, err
	}

	cl, err := claims.FromContext(ctx)
	if err != nil {
		return attendance.ListSessionsResponse{}, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	sessions, total, err := s.SessionRepository.List(ctx, filter, cl.OrgID)
	if err != nil {
		return attendance.ListSessionsResponse{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	responses := make([]attendance.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, mapSessionToResponse(session))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return attendance.ListSessionsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Sessions:   responses,
	}, nil
}

// DeleteSession implements attendance.TrackerService.
func (s *TrackerServiceImpl) DeleteSession(ctx context.Context, id string) error {
	cl, err := claims.FromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.SessionRepository.Delete(ctx, id, cl.OrgID); err != nil {
		return err
	}

	return nil
}

// mapSessionToResponse converts a Session entity to SessionResponse.
func mapSessionToResponse(session attendance.Session) attendance.SessionResponse {
	breaks := make([]attendance.BreakResponse, 0, len(session.Breaks))
	for _, record := range session.Breaks {
		breaks = append(breaks, mapBreakToResponse(record))
	}

	return attendance.SessionResponse{
		ID:              session.ID,
		EmployeeID:      session.EmployeeID,
		Date:            session.Date.Format("2006-01-02"),
		CheckIn:         timePtrToString(session.CheckIn),
		CheckOut:        timePtrToString(session.CheckOut),
		Status:          string(session.Status),
		State:           string(session.State()),
		ShiftID:         session.ShiftID,
		DurationSeconds: session.DurationSeconds,
		LateFeeAmount:   session.LateFeeAmount,
		OvertimeFee:     session.OvertimeFee,
		Notes:           session.Notes,
		Breaks:          breaks,
		CreatedAt:       session.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       session.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapBreakToResponse(record attendance.BreakRecord) attendance.BreakResponse {
	return attendance.BreakResponse{
		ID:              record.ID,
		SessionID:       record.SessionID,
		BreakTypeID:     record.BreakTypeID,
		Start:           record.Start.UTC().Format(time.RFC3339),
		End:             timePtrToString(record.End),
		DurationSeconds: record.DurationSeconds,
		Status:          string(record.Status),
	}
}
