package shift

import (
	"time"
)

// Shift is static per-organization reference data: the expected working
// window plus the grace and fee rates used by attendance accounting.
// The engine only reads it.
type Shift struct {
	ID                     string
	OrgID                  string
	Name                   string
	StartTime              time.Time // wall clock, date part ignored
	EndTime                time.Time
	LateGraceMinutes       int
	LateFinePerMinute      int64
	OvertimePricePerMinute int64
	Position               int // catalog order, tie-breaker for selection
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// BreakType categorizes break records (lunch, prayer, rest, ...).
type BreakType struct {
	ID        string
	OrgID     string
	Name      string
	IsPaid    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MinutesOfDay returns the wall-clock offset of t in minutes since midnight.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Closest returns the shift whose start time is numerically closest, in
// minutes of day, to at. Ties keep the earlier catalog entry. The boolean is
// false when the catalog is empty.
func Closest(catalog []Shift, at time.Time) (Shift, bool) {
	if len(catalog) == 0 {
		return Shift{}, false
	}

	atMin := MinutesOfDay(at)
	best := catalog[0]
	bestDist := distance(MinutesOfDay(best.StartTime), atMin)
	for _, s := range catalog[1:] {
		if d := distance(MinutesOfDay(s.StartTime), atMin); d < bestDist {
			best = s
			bestDist = d
		}
	}
	return best, true
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
