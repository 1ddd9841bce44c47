package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(hour, min int) *time.Time {
	t := time.Date(2025, 3, 10, hour, min, 0, 0, time.UTC)
	return &t
}

func TestSessionState(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		want    SessionState
	}{
		{
			name:    "no check-in",
			session: Session{},
			want:    StateNotStarted,
		},
		{
			name:    "checked in only",
			session: Session{CheckIn: ts(9, 0)},
			want:    StateClockedIn,
		},
		{
			name: "open break",
			session: Session{
				CheckIn: ts(9, 0),
				Breaks:  []BreakRecord{{Start: *ts(12, 0)}},
			},
			want: StateOnBreak,
		},
		{
			name: "closed break back to clocked in",
			session: Session{
				CheckIn: ts(9, 0),
				Breaks:  []BreakRecord{{Start: *ts(12, 0), End: ts(12, 30)}},
			},
			want: StateClockedIn,
		},
		{
			name: "checked out wins over breaks",
			session: Session{
				CheckIn:  ts(9, 0),
				CheckOut: ts(17, 0),
				Breaks:   []BreakRecord{{Start: *ts(12, 0), End: ts(12, 30)}},
			},
			want: StateClockedOut,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.session.State())
		})
	}
}

func TestOpenBreak(t *testing.T) {
	session := Session{
		Breaks: []BreakRecord{
			{ID: "a", Start: *ts(10, 0), End: ts(10, 15)},
			{ID: "b", Start: *ts(12, 0)},
		},
	}

	open := session.OpenBreak()
	assert.NotNil(t, open)
	assert.Equal(t, "b", open.ID)

	assert.Nil(t, (&Session{}).OpenBreak())
}

func TestTotalBreakSeconds_SkipsOpenBreaks(t *testing.T) {
	session := Session{
		Breaks: []BreakRecord{
			{Start: *ts(10, 0), End: ts(10, 15), DurationSeconds: 900},
			{Start: *ts(12, 0), End: ts(12, 30), DurationSeconds: 1800},
			{Start: *ts(15, 0), DurationSeconds: 600}, // open, ignored
		},
	}

	assert.Equal(t, int64(2700), session.TotalBreakSeconds())
}

func TestSessionStatusValid(t *testing.T) {
	assert.True(t, SessionStatusPresent.Valid())
	assert.True(t, SessionStatusOnLeave.Valid())
	assert.False(t, SessionStatus("WORKING").Valid())
	assert.False(t, SessionStatus("").Valid())
}

func TestBreakStatusValid(t *testing.T) {
	assert.True(t, BreakStatusPending.Valid())
	assert.False(t, BreakStatus("OPEN").Valid())
}
