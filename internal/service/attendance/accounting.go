package attendance

import (
	"time"

	"github.com/worklane-hq/orgtime-backend-go/internal/domain/attendance"
	"github.com/worklane-hq/orgtime-backend-go/internal/domain/shift"
)

// elapsedSeconds floors a timestamp pair to whole seconds, clipped at zero
// so malformed input can never yield a negative duration.
func elapsedSeconds(start, end time.Time) int64 {
	secs := int64(end.Sub(start) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// workedSeconds is the single place the worked-duration policy lives.
// It currently charges the raw check-in to check-out span and does NOT
// subtract break time; swap in checkOut-checkIn minus TotalBreakSeconds
// here if that policy is ever confirmed.
func workedSeconds(session *attendance.Session) int64 {
	if session.CheckIn == nil || session.CheckOut == nil {
		return 0
	}
	return elapsedSeconds(*session.CheckIn, *session.CheckOut)
}

// lateMinutes compares the check-in wall clock against the shift start plus
// grace. Zero inside the grace window.
func lateMinutes(sh shift.Shift, checkIn time.Time) int {
	late := shift.MinutesOfDay(checkIn) - shift.MinutesOfDay(sh.StartTime) - sh.LateGraceMinutes
	if late < 0 {
		return 0
	}
	return late
}

// overtimeMinutes counts wall-clock minutes worked past the shift end.
func overtimeMinutes(sh shift.Shift, checkOut time.Time) int {
	over := shift.MinutesOfDay(checkOut) - shift.MinutesOfDay(sh.EndTime)
	if over < 0 {
		return 0
	}
	return over
}

// reprice recomputes the derived duration and fee fields on the session.
// Both fee amounts stay zero when no shift is attached.
func reprice(session *attendance.Session, sh *shift.Shift) {
	session.DurationSeconds = workedSeconds(session)
	session.LateFeeAmount = 0
	session.OvertimeFee = 0

	if sh == nil {
		return
	}
	if session.CheckIn != nil {
		session.LateFeeAmount = int64(lateMinutes(*sh, *session.CheckIn)) * sh.LateFinePerMinute
	}
	if session.CheckOut != nil {
		session.OvertimeFee = int64(overtimeMinutes(*sh, *session.CheckOut)) * sh.OvertimePricePerMinute
	}
}

// breakSeconds fixes a closed break's duration, floored at zero.
func breakSeconds(start time.Time, end time.Time) int64 {
	return elapsedSeconds(start, end)
}
