package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/worklane-hq/orgtime-backend-go/internal/domain/attendance"
	"github.com/worklane-hq/orgtime-backend-go/internal/domain/shift"
)

func wallClock(hour, min int) time.Time {
	return time.Date(2025, 3, 10, hour, min, 0, 0, time.UTC)
}

func testShift() shift.Shift {
	return shift.Shift{
		ID:                     "shift-1",
		Name:                   "Morning",
		StartTime:              wallClock(9, 0),
		EndTime:                wallClock(17, 0),
		LateGraceMinutes:       10,
		LateFinePerMinute:      5,
		OvertimePricePerMinute: 8,
	}
}

func TestLateMinutes(t *testing.T) {
	sh := testShift()

	cases := []struct {
		name    string
		checkIn time.Time
		want    int
	}{
		{"on time", wallClock(9, 0), 0},
		{"inside grace", wallClock(9, 10), 0},
		{"just past grace", wallClock(9, 11), 1},
		{"thirteen late", wallClock(9, 23), 13},
		{"early arrival", wallClock(8, 30), 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, lateMinutes(sh, c.checkIn))
		})
	}
}

func TestOvertimeMinutes(t *testing.T) {
	sh := testShift()

	assert.Equal(t, 0, overtimeMinutes(sh, wallClock(17, 0)))
	assert.Equal(t, 0, overtimeMinutes(sh, wallClock(16, 30)))
	assert.Equal(t, 45, overtimeMinutes(sh, wallClock(17, 45)))
}

func TestElapsedSeconds(t *testing.T) {
	start := wallClock(9, 0)

	assert.Equal(t, int64(3600), elapsedSeconds(start, start.Add(time.Hour)))
	// Sub-second remainder is floored
	assert.Equal(t, int64(1), elapsedSeconds(start, start.Add(1900*time.Millisecond)))
	// Inverted pair clips to zero instead of going negative
	assert.Equal(t, int64(0), elapsedSeconds(start, start.Add(-time.Minute)))
}

func TestWorkedSeconds_RawSpanIgnoresBreaks(t *testing.T) {
	checkIn := wallClock(9, 0)
	checkOut := wallClock(17, 0)
	breakEnd := wallClock(12, 30)

	session := attendance.Session{
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
		Breaks: []attendance.BreakRecord{
			{Start: wallClock(12, 0), End: &breakEnd, DurationSeconds: 1800},
		},
	}

	// The worked span is check-in to check-out; break time is reported
	// separately and not subtracted.
	assert.Equal(t, int64(8*3600), workedSeconds(&session))
}

func TestWorkedSeconds_IncompletePair(t *testing.T) {
	checkIn := wallClock(9, 0)

	assert.Equal(t, int64(0), workedSeconds(&attendance.Session{CheckIn: &checkIn}))
	assert.Equal(t, int64(0), workedSeconds(&attendance.Session{}))
}

func TestReprice_WithShift(t *testing.T) {
	sh := testShift()
	checkIn := wallClock(9, 23)
	checkOut := wallClock(17, 45)

	session := attendance.Session{CheckIn: &checkIn, CheckOut: &checkOut}
	reprice(&session, &sh)

	assert.Equal(t, elapsedSeconds(checkIn, checkOut), session.DurationSeconds)
	// 13 minutes late at 5 per minute
	assert.Equal(t, int64(65), session.LateFeeAmount)
	// 45 minutes over at 8 per minute
	assert.Equal(t, int64(360), session.OvertimeFee)
}

func TestReprice_NoShiftMeansNoFees(t *testing.T) {
	checkIn := wallClock(9, 23)
	checkOut := wallClock(19, 0)

	session := attendance.Session{
		CheckIn:       &checkIn,
		CheckOut:      &checkOut,
		LateFeeAmount: 999,
		OvertimeFee:   999,
	}
	reprice(&session, nil)

	assert.Equal(t, int64(0), session.LateFeeAmount)
	assert.Equal(t, int64(0), session.OvertimeFee)
	assert.Equal(t, elapsedSeconds(checkIn, checkOut), session.DurationSeconds)
}

func TestReprice_ClearsStaleFeesOnPartialSession(t *testing.T) {
	sh := testShift()
	checkIn := wallClock(9, 30)

	session := attendance.Session{CheckIn: &checkIn, OvertimeFee: 120}
	reprice(&session, &sh)

	assert.Equal(t, int64(0), session.DurationSeconds)
	assert.Equal(t, int64(100), session.LateFeeAmount) // 20 late minutes * 5
	assert.Equal(t, int64(0), session.OvertimeFee)
}
