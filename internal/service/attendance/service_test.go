package attendance

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worklane-hq/orgtime-backend-go/internal/domain/attendance"
	"github.com/worklane-hq/orgtime-backend-go/internal/domain/shift"
	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/locker"
)

const (
	testOrgID      = "11111111-1111-4111-8111-111111111111"
	testEmployeeID = "22222222-2222-4222-8222-222222222222"
)

func authedContext(t *testing.T, employeeID, orgID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":     "user-1",
		"employee_id": employeeID,
		"org_id":      orgID,
		"role":        "admin",
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type stubBreakRepo struct {
	records map[string]attendance.BreakRecord
}

func newStubBreakRepo() *stubBreakRepo {
	return &stubBreakRepo{records: make(map[string]attendance.BreakRecord)}
}

func (r *stubBreakRepo) Create(ctx context.Context, br attendance.BreakRecord) (attendance.BreakRecord, error) {
	br.CreatedAt = time.Now().UTC()
	br.UpdatedAt = br.CreatedAt
	r.records[br.ID] = br
	return br, nil
}

func (r *stubBreakRepo) GetByID(ctx context.Context, id string, orgID string) (attendance.BreakRecord, error) {
	br, ok := r.records[id]
	if !ok || br.OrgID != orgID {
		return attendance.BreakRecord{}, attendance.ErrBreakNotFound
	}
	return br, nil
}

func (r *stubBreakRepo) ListBySession(ctx context.Context, sessionID string, orgID string) ([]attendance.BreakRecord, error) {
	var out []attendance.BreakRecord
	for _, br := range r.records {
		if br.SessionID == sessionID && br.OrgID == orgID {
			out = append(out, br)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (r *stubBreakRepo) GetOpenBySession(ctx context.Context, sessionID string, orgID string) (*attendance.BreakRecord, error) {
	for _, br := range r.records {
		if br.SessionID == sessionID && br.OrgID == orgID && br.End == nil {
			open := br
			return &open, nil
		}
	}
	return nil, nil
}

func (r *stubBreakRepo) Update(ctx context.Context, br attendance.BreakRecord) error {
	if _, ok := r.records[br.ID]; !ok {
		return attendance.ErrBreakNotFound
	}
	r.records[br.ID] = br
	return nil
}

type stubSessionRepo struct {
	sessions map[string]attendance.Session
	breaks   *stubBreakRepo
}

func newStubSessionRepo(breaks *stubBreakRepo) *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[string]attendance.Session), breaks: breaks}
}

func (r *stubSessionRepo) withBreaks(s attendance.Session) attendance.Session {
	breaks, _ := r.breaks.ListBySession(context.Background(), s.ID, s.OrgID)
	s.Breaks = breaks
	return s
}

func (r *stubSessionRepo) Create(ctx context.Context, session attendance.Session) (attendance.Session, error) {
	session.CreatedAt = time.Now().UTC()
	session.UpdatedAt = session.CreatedAt
	r.sessions[session.ID] = session
	return session, nil
}

func (r *stubSessionRepo) GetByID(ctx context.Context, id string, orgID string) (attendance.Session, error) {
	s, ok := r.sessions[id]
	if !ok || s.OrgID != orgID {
		return attendance.Session{}, attendance.ErrSessionNotFound
	}
	return r.withBreaks(s), nil
}

func (r *stubSessionRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, orgID string) (*attendance.Session, error) {
	for _, s := range r.sessions {
		if s.EmployeeID == employeeID && s.OrgID == orgID && s.Date.Equal(date) {
			found := r.withBreaks(s)
			return &found, nil
		}
	}
	return nil, nil
}

func (r *stubSessionRepo) Update(ctx context.Context, session attendance.Session) error {
	if _, ok := r.sessions[session.ID]; !ok {
		return attendance.ErrSessionNotFound
	}
	session.UpdatedAt = time.Now().UTC()
	r.sessions[session.ID] = session
	return nil
}

func (r *stubSessionRepo) List(ctx context.Context, filter attendance.SessionFilter, orgID string) ([]attendance.Session, int64, error) {
	var out []attendance.Session
	for _, s := range r.sessions {
		if s.OrgID != orgID {
			continue
		}
		if filter.EmployeeID != nil && s.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, r.withBreaks(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	total := int64(len(out))

	offset := (filter.Page - 1) * filter.Limit
	if offset > len(out) {
		offset = len(out)
	}
	end := offset + filter.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (r *stubSessionRepo) Delete(ctx context.Context, id string, orgID string) error {
	s, ok := r.sessions[id]
	if !ok || s.OrgID != orgID {
		return attendance.ErrSessionNotFound
	}
	delete(r.sessions, id)
	for brID, br := range r.breaks.records {
		if br.SessionID == id {
			delete(r.breaks.records, brID)
		}
	}
	return nil
}

type stubShiftRepo struct {
	shifts []shift.Shift
}

func (r *stubShiftRepo) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	r.shifts = append(r.shifts, s)
	return s, nil
}

func (r *stubShiftRepo) GetByID(ctx context.Context, id string, orgID string) (shift.Shift, error) {
	for _, s := range r.shifts {
		if s.ID == id && s.OrgID == orgID {
			return s, nil
		}
	}
	return shift.Shift{}, shift.ErrShiftNotFound
}

func (r *stubShiftRepo) List(ctx context.Context, orgID string) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range r.shifts {
		if s.OrgID == orgID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubShiftRepo) Delete(ctx context.Context, id string, orgID string) error {
	for i, s := range r.shifts {
		if s.ID == id && s.OrgID == orgID {
			r.shifts = append(r.shifts[:i], r.shifts[i+1:]...)
			return nil
		}
	}
	return shift.ErrShiftNotFound
}

type stubBreakTypeRepo struct {
	types map[string]shift.BreakType
}

func (r *stubBreakTypeRepo) Create(ctx context.Context, bt shift.BreakType) (shift.BreakType, error) {
	r.types[bt.ID] = bt
	return bt, nil
}

func (r *stubBreakTypeRepo) GetByID(ctx context.Context, id string, orgID string) (shift.BreakType, error) {
	bt, ok := r.types[id]
	if !ok || bt.OrgID != orgID {
		return shift.BreakType{}, shift.ErrBreakTypeNotFound
	}
	return bt, nil
}

func (r *stubBreakTypeRepo) List(ctx context.Context, orgID string) ([]shift.BreakType, error) {
	var out []shift.BreakType
	for _, bt := range r.types {
		if bt.OrgID == orgID {
			out = append(out, bt)
		}
	}
	return out, nil
}

func (r *stubBreakTypeRepo) Delete(ctx context.Context, id string, orgID string) error {
	delete(r.types, id)
	return nil
}

type trackerFixture struct {
	svc        attendance.TrackerService
	sessions   *stubSessionRepo
	breaks     *stubBreakRepo
	shifts     *stubShiftRepo
	breakTypes *stubBreakTypeRepo
}

func newTrackerFixture() *trackerFixture {
	breaks := newStubBreakRepo()
	sessions := newStubSessionRepo(breaks)
	shifts := &stubShiftRepo{}
	breakTypes := &stubBreakTypeRepo{types: make(map[string]shift.BreakType)}

	shifts.shifts = append(shifts.shifts, shift.Shift{
		ID:                     "33333333-3333-4333-8333-333333333333",
		OrgID:                  testOrgID,
		Name:                   "Morning",
		StartTime:              time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:                time.Date(0, 1, 1, 17, 0, 0, 0, time.UTC),
		LateGraceMinutes:       10,
		LateFinePerMinute:      5,
		OvertimePricePerMinute: 8,
	}, shift.Shift{
		ID:        "44444444-4444-4444-8444-444444444444",
		OrgID:     testOrgID,
		Name:      "Evening",
		StartTime: time.Date(0, 1, 1, 14, 0, 0, 0, time.UTC),
		EndTime:   time.Date(0, 1, 1, 22, 0, 0, 0, time.UTC),
		Position:  1,
	})
	breakTypes.types["55555555-5555-4555-8555-555555555555"] = shift.BreakType{
		ID:    "55555555-5555-4555-8555-555555555555",
		OrgID: testOrgID,
		Name:  "Lunch",
	}

	return &trackerFixture{
		svc:        NewTrackerService(nil, sessions, breaks, shifts, breakTypes, locker.New()),
		sessions:   sessions,
		breaks:     breaks,
		shifts:     shifts,
		breakTypes: breakTypes,
	}
}

func TestClockIn_PicksClosestShiftAndFlagsLate(t *testing.T) {
	f := newTrackerFixture()
	ctx := authedContext(t, testEmployeeID, testOrgID)

	resp, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{
		CheckIn: "2025-03-10T09:23:00Z",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.ShiftID)
	assert.Equal(t, "33333333-3333-4333-8333-333333333333", *resp.ShiftID)
	assert.Equal(t, string(attendance.SessionStatusLate), resp.Status)
	assert.Equal(t, string(attendance.StateClockedIn), resp.State)
	// 13 late minutes at 5 per minute, priced at clock-in
	assert.Equal(t, int64(65), resp.LateFeeAmount)
	assert.Equal(t, "2025-03-10", resp.Date)
}

func TestClockIn_ExplicitStatusWins(t *testing.T) {
	f := newTrackerFixture()
	ctx := authedContext(t, testEmployeeID, testOrgID)

	resp, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{
		CheckIn: "2025-03-10T09:23:00Z",
		Status:  string(attendance.SessionStatusRequest),
	})
	require.NoError(t, err)

	assert.Equal(t, string(attendance.SessionStatusRequest), resp.Status)
}

func TestClockIn_SecondAttemptSameDayConflicts(t *testing.T) {
	f := newTrackerFixture()
	ctx := authedContext(t, testEmployeeID, testOrgID)

	_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{CheckIn: "2025-03-10T09:00:00Z"})
	require.NoError(t, err)

	_, err = f.svc.ClockIn(ctx, attendance.ClockInRequest{CheckIn: "2025-03-10T10:00:00Z"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestClockIn_DifferentDaysDoNotConflict(t *testing.T) {
	f := newTrackerFixture()
	ctx := authedContext(t, testEmployeeID, testOrgID)

	_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{CheckIn: "2025-03-10T09:00:00Z"})
	require.NoError(t, err)

	_, err = f.svc.ClockIn(ctx, attendance.ClockInRequest{CheckIn: "2025-03-11T09:00:00Z"})
	assert.NoError(t, err)
}

func TestClockOut_ComputesDurationAndOvertime(t *testing.T) {
	f := newTrackerFixture()
	ctx := authedContext(t, testEmployeeID, testOrgID)

	in, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{CheckIn: "2025-03-10T09:00:00Z"})
	require.NoError(t, err)

	out, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{
		SessionID: in.ID,
		CheckOut:  "2025-03-10T17:45:30Z",
	})
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StateClockedOut), out.State)
	assert.Equal(t, int64(8*3600+45*60+30), out.DurationSeconds)
	// 45 overtime minutes at 8 per minute
	assert.Equal(t, int64(360), out.OvertimeFee)
	assert.Equal(t, int64(0), out.LateFeeAmount)
}

func TestClockOut_TwiceFails(t *testing.T) {
	f := newTrackerFixture()
	ctx := authedContext(t, testEmployeeID, testOrgID)

	in, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{CheckIn: "2025-03-10T09:00:00Z"})
	require.NoError(t, err)

	_, err = f.svc.ClockOut(ctx, attendance.ClockOutRequest{SessionID: in.ID, CheckOut: "2025-03-10T17:00:00Z"})
	require.NoError(t, err)

	_, err = f.svc.ClockOut(ctx, attendance.ClockOutRequest{SessionID: in.ID, CheckOut: "2025-03-10T18:00:00Z"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
}

func TestClockOut_BeforeCheckInRejected(t *testing.T) {
	f := newTrackerFixture()
	ctx := authedContext(t, testEmployeeID, testOrgID)

	in, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{CheckIn: "2025-03-10T09:00:00Z"})
	require.NoError(t, err)

	_, err = f.svc.ClockOut(ctx, attendance.ClockOutRequest{SessionID: in.ID, CheckOut: "2025-03-10T08:00:00Z"})
	assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)
}

func TestClockOut_OpenBreakBlocks(t *testing.T) {
	f := newTrackerFixture()
	ctx := authedContext(t, testEmployeeID, testOrgID)

	in, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{CheckIn: "2025-03-10T09:00:00Z"})
	require.NoError(t, err)

	_, err = f.svc.StartBreak(ctx, attendance.StartBreakRequest{
		SessionID:   in.ID,
		BreakTypeID: "55555555-5555-4555-8555-555555555555",
		Start:       "2025-03-10T12:00:00Z",
	})
	require.NoError(t, err)

	_, err = f.svc.ClockOut(ctx, attendance.ClockOutRequest{SessionID: in.ID, CheckOut: "2025-03-10T17:00:00Z"})
	assert.ErrorIs(t, err, attendance.ErrOpenBreakOnClockOut)
}

func TestStartBreak_SecondOpenConflicts(t *testing.T) {
	f := newTrackerFixture()
	ctx := authedContext(t, testEmployeeID, testOrgID)

	in, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{CheckIn: "2025-03-10T09:00:00Z"})
	require.NoError(t, err)

	_, err = f.svc.StartBreak(ctx, attendance.StartBreakRequest{
		SessionID:   in.ID,
		BreakTypeID: "55555555-5555-4555-8555-555555555555",
	})
	require.NoError(t, err)

	_, err = f.svc.StartBreak(ctx, attendance.StartBreakRequest{
		SessionID:   in.ID,
		BreakTypeID: "55555555-5555-4555-8555-555555555555",
	})
	assert.ErrorIs(t, err, attendance.ErrBreakAlreadyOpen)
}

func TestStartBreak_UnknownBreakType(t *testing.T) {
	f := newTrackerFixture()
	ctx := authedContext(t, testEmployeeID, testOrgID)

	in, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{CheckIn: "2025-03-10T09:00:00Z"})
	require.NoError(t, err)

	_, err = f.svc.StartBreak(ctx, attendance.StartBreakRequest{
		SessionID:   in.ID,
		BreakTypeID: "99999999-9999-4999-8999-999999999999",
	})
	assert.ErrorIs(t, err, shift.ErrBreakTypeNotFound)
}

func TestEndBreak_FixesDurationAndRejectsReplay(t *testing.T) {
	f := newTrackerFixture()
	ctx := authedContext(t, testEmployeeID, testOrgID)

	in, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{CheckIn: "2025-03-10T09:00:00Z"})
	require.NoError(t, err)

	started, err := f.svc.StartBreak(ctx, attendance.StartBreakRequest{
		SessionID:   in.ID,
		BreakTypeID: "55555555-5555-4555-8555-555555555555",
		Start:       "2025-03-10T12:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.BreakStatusPending), started.Status)

	ended, err := f.svc.EndBreak(ctx, attendance.EndBreakRequest{
		SessionID: in.ID,
		BreakID:   started.ID,
		End:       "2025-03-10T12:30:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1800), ended.DurationSeconds)
	require.NotNil(t, ended.End)

	_, err = f.svc.EndBreak(ctx, attendance.EndBreakRequest{
		SessionID: in.ID,
		BreakID:   started.ID,
		End:       "2025-03-10T13:00:00Z",
	})
	assert.ErrorIs(t, err, attendance.ErrBreakAlreadyEnded)
}

func TestEndBreak_EndBeforeStartRejected(t *testing.T) {
	f := newTrackerFixture()
	ctx := authedContext(t, testEmployeeID, testOrgID)

	in, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{CheckIn: "2025-03-10T09:00:00Z"})
	require.NoError(t, err)

	started, err := f.svc.StartBreak(ctx, attendance.StartBreakRequest{
		SessionID:   in.ID,
		BreakTypeID: "55555555-5555-4555-8555-555555555555",
		Start:       "2025-03-10T12:00:00Z",
	})
	require.NoError(t, err)

	_, err = f.svc.EndBreak(ctx, attendance.EndBreakRequest{
		SessionID: in.ID,
		BreakID:   started.ID,
		End:       "2025-03-10T11:00:00Z",
	})
	assert.ErrorIs(t, err, attendance.ErrBreakEndBeforeStart)
}

func TestSetBreakStatus(t *testing.T) {
	f := newTrackerFixture()
	ctx := authedContext(t, testEmployeeID, testOrgID)

	in, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{CheckIn: "2025-03-10T09:00:00Z"})
	require.NoError(t, err)

	started, err := f.svc.StartBreak(ctx, attendance.StartBreakRequest{
		SessionID:   in.ID,
		BreakTypeID: "55555555-5555-4555-8555-555555555555",
	})
	require.NoError(t, err)

	updated, err := f.svc.SetBreakStatus(ctx, attendance.UpdateBreakStatusRequest{
		SessionID: in.ID,
		BreakID:   started.ID,
		Status:    string(attendance.BreakStatusApproved),
	})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.BreakStatusApproved), updated.Status)
}

func TestEditSession_RecomputesDerivedFields(t *testing.T) {
	f := newTrackerFixture()
	ctx := authedContext(t, testEmployeeID, testOrgID)

	in, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{
		CheckIn: "2025-03-10T09:23:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(65), in.LateFeeAmount)

	checkIn := "2025-03-10T09:05:00Z"
	checkOut := "2025-03-10T17:00:00Z"
	edited, err := f.svc.EditSession(ctx, attendance.EditSessionRequest{
		ID:       in.ID,
		Date:     "2025-03-10",
		Status:   string(attendance.SessionStatusPresent),
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
	})
	require.NoError(t, err)

	// Inside the grace window now, so the late fee disappears.
	assert.Equal(t, int64(0), edited.LateFeeAmount)
	assert.Equal(t, int64(7*3600+55*60), edited.DurationSeconds)
	assert.Equal(t, string(attendance.StateClockedOut), edited.State)
}

func TestEditSession_CheckOutWithoutCheckInRejected(t *testing.T) {
	f := newTrackerFixture()
	ctx := authedContext(t, testEmployeeID, testOrgID)

	in, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{CheckIn: "2025-03-10T09:00:00Z"})
	require.NoError(t, err)

	checkOut := "2025-03-10T17:00:00Z"
	_, err = f.svc.EditSession(ctx, attendance.EditSessionRequest{
		ID:       in.ID,
		Date:     "2025-03-10",
		Status:   string(attendance.SessionStatusPresent),
		CheckOut: &checkOut,
	})
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestEditSession_DateMoveConflicts(t *testing.T) {
	f := newTrackerFixture()
	ctx := authedContext(t, testEmployeeID, testOrgID)

	first, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{CheckIn: "2025-03-10T09:00:00Z"})
	require.NoError(t, err)
	_, err = f.svc.ClockIn(ctx, attendance.ClockInRequest{CheckIn: "2025-03-11T09:00:00Z"})
	require.NoError(t, err)

	checkIn := "2025-03-11T09:00:00Z"
	_, err = f.svc.EditSession(ctx, attendance.EditSessionRequest{
		ID:      first.ID,
		Date:    "2025-03-11",
		Status:  string(attendance.SessionStatusPresent),
		CheckIn: &checkIn,
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestListSessions_Pagination(t *testing.T) {
	f := newTrackerFixture()
	ctx := authedContext(t, testEmployeeID, testOrgID)

	for day := 10; day < 15; day++ {
		_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{
			CheckIn: time.Date(2025, 3, day, 9, 0, 0, 0, time.UTC).Format(time.RFC3339),
		})
		require.NoError(t, err)
	}

	resp, err := f.svc.ListSessions(ctx, attendance.SessionFilter{Page: 1, Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.TotalCount)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Len(t, resp.Sessions, 2)
}

func TestDeleteSession_CascadesBreaks(t *testing.T) {
	f := newTrackerFixture()
	ctx := authedContext(t, testEmployeeID, testOrgID)

	in, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{CheckIn: "2025-03-10T09:00:00Z"})
	require.NoError(t, err)

	_, err = f.svc.StartBreak(ctx, attendance.StartBreakRequest{
		SessionID:   in.ID,
		BreakTypeID: "55555555-5555-4555-8555-555555555555",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteSession(ctx, in.ID))

	_, err = f.svc.GetSession(ctx, in.ID)
	assert.ErrorIs(t, err, attendance.ErrSessionNotFound)
	assert.Empty(t, f.breaks.records)
}

func TestGetSession_WrongOrgHidden(t *testing.T) {
	f := newTrackerFixture()
	ctx := authedContext(t, testEmployeeID, testOrgID)

	in, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{CheckIn: "2025-03-10T09:00:00Z"})
	require.NoError(t, err)

	otherOrg := authedContext(t, testEmployeeID, "66666666-6666-4666-8666-666666666666")
	_, err = f.svc.GetSession(otherOrg, in.ID)
	assert.ErrorIs(t, err, attendance.ErrSessionNotFound)
}

// staleReadSessionRepo serves a captured stale snapshot for the next
// GetByID, simulating a read that raced a concurrent mutation.
type staleReadSessionRepo struct {
	*stubSessionRepo
	stale     attendance.Session
	staleLeft int
}

func (r *staleReadSessionRepo) GetByID(ctx context.Context, id string, orgID string) (attendance.Session, error) {
	if r.staleLeft > 0 && id == r.stale.ID {
		r.staleLeft--
		return r.stale, nil
	}
	return r.stubSessionRepo.GetByID(ctx, id, orgID)
}

func TestStartBreak_RejectedWhenClockOutRacesFirstRead(t *testing.T) {
	breaks := newStubBreakRepo()
	sessions := newStubSessionRepo(breaks)
	wrapped := &staleReadSessionRepo{stubSessionRepo: sessions}
	breakTypes := &stubBreakTypeRepo{types: map[string]shift.BreakType{
		"55555555-5555-4555-8555-555555555555": {
			ID:    "55555555-5555-4555-8555-555555555555",
			OrgID: testOrgID,
			Name:  "Lunch",
		},
	}}
	svc := NewTrackerService(nil, wrapped, breaks, &stubShiftRepo{}, breakTypes, locker.New())
	ctx := authedContext(t, testEmployeeID, testOrgID)

	in, err := svc.ClockIn(ctx, attendance.ClockInRequest{CheckIn: "2025-03-10T09:00:00Z"})
	require.NoError(t, err)

	stale, err := sessions.GetByID(ctx, in.ID, testOrgID)
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx, attendance.ClockOutRequest{SessionID: in.ID, CheckOut: "2025-03-10T17:00:00Z"})
	require.NoError(t, err)

	// The next read observes the session as it was before the clock-out.
	wrapped.stale = stale
	wrapped.staleLeft = 1

	_, err = svc.StartBreak(ctx, attendance.StartBreakRequest{
		SessionID:   in.ID,
		BreakTypeID: "55555555-5555-4555-8555-555555555555",
		Start:       "2025-03-10T17:30:00Z",
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
	assert.Empty(t, breaks.records)
}

func TestEditSession_WaitsForOldDateKey(t *testing.T) {
	breaks := newStubBreakRepo()
	sessions := newStubSessionRepo(breaks)
	breakTypes := &stubBreakTypeRepo{types: make(map[string]shift.BreakType)}
	locks := locker.New()
	svc := NewTrackerService(nil, sessions, breaks, &stubShiftRepo{}, breakTypes, locks)
	ctx := authedContext(t, testEmployeeID, testOrgID)

	in, err := svc.ClockIn(ctx, attendance.ClockInRequest{CheckIn: "2025-03-10T09:00:00Z"})
	require.NoError(t, err)

	oldDay := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	held := locks.Lock(sessionKey(testEmployeeID, oldDay))

	checkIn := "2025-03-12T09:00:00Z"
	done := make(chan error, 1)
	go func() {
		_, err := svc.EditSession(ctx, attendance.EditSessionRequest{
			ID:      in.ID,
			Date:    "2025-03-12",
			Status:  string(attendance.SessionStatusPresent),
			CheckIn: &checkIn,
		})
		done <- err
	}()

	select {
	case <-done:
		t.Fatal("edit completed while the session's current day was still locked")
	case <-time.After(50 * time.Millisecond):
	}

	held()
	require.NoError(t, <-done)
}

func TestEditSession_SameDayEditDoesNotSelfDeadlock(t *testing.T) {
	f := newTrackerFixture()
	ctx := authedContext(t, testEmployeeID, testOrgID)

	in, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{CheckIn: "2025-03-10T09:00:00Z"})
	require.NoError(t, err)

	checkIn := "2025-03-10T09:30:00Z"
	edited, err := f.svc.EditSession(ctx, attendance.EditSessionRequest{
		ID:      in.ID,
		Date:    "2025-03-10",
		Status:  string(attendance.SessionStatusPresent),
		CheckIn: &checkIn,
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", edited.Date)
}
