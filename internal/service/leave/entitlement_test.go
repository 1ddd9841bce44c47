package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/worklane-hq/orgtime-backend-go/internal/domain/leave"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func record(employeeID string, typeID string, status leave.LeaveStatus, start time.Time) leave.LeaveRecord {
	return leave.LeaveRecord{
		EmployeeID:  employeeID,
		LeaveTypeID: typeID,
		Status:      status,
		StartDate:   start,
		EndDate:     start,
	}
}

func TestCalculateRemaining_MonthlyCapExhausted(t *testing.T) {
	lt := leave.LeaveType{ID: "annual", MaxPerMonth: 2, MaxPerYear: 12}
	history := []leave.LeaveRecord{
		record("emp-1", "annual", leave.LeaveStatusApproved, day(2025, time.March, 3)),
		record("emp-1", "annual", leave.LeaveStatusApproved, day(2025, time.March, 17)),
	}

	e := CalculateRemaining(history, "emp-1", lt, day(2025, time.March, 25))

	assert.Equal(t, 2, e.UsedThisMonth)
	assert.Equal(t, 2, e.UsedThisYear)
	assert.Equal(t, 0, e.RemainingThisMonth)
	assert.Equal(t, 10, e.RemainingThisYear)
	assert.False(t, Admissible(e))
}

func TestCalculateRemaining_RecordsNotDaySpans(t *testing.T) {
	lt := leave.LeaveType{ID: "annual", MaxPerMonth: 2, MaxPerYear: 12}
	// One record spanning five days consumes a single unit.
	long := record("emp-1", "annual", leave.LeaveStatusApproved, day(2025, time.June, 2))
	long.EndDate = day(2025, time.June, 6)

	e := CalculateRemaining([]leave.LeaveRecord{long}, "emp-1", lt, day(2025, time.June, 20))

	assert.Equal(t, 1, e.UsedThisMonth)
	assert.Equal(t, 1, e.RemainingThisMonth)
	assert.True(t, Admissible(e))
}

func TestCalculateRemaining_OnlyPositiveStatusesCount(t *testing.T) {
	lt := leave.LeaveType{ID: "annual", MaxPerMonth: 2, MaxPerYear: 2}
	history := []leave.LeaveRecord{
		record("emp-1", "annual", leave.LeaveStatusPending, day(2025, time.March, 3)),
		record("emp-1", "annual", leave.LeaveStatusRejected, day(2025, time.March, 4)),
		record("emp-1", "annual", leave.LeaveStatusCancelled, day(2025, time.March, 5)),
		record("emp-1", "annual", leave.LeaveStatusInactive, day(2025, time.March, 6)),
		record("emp-1", "annual", leave.LeaveStatusActive, day(2025, time.March, 7)),
		record("emp-1", "annual", leave.LeaveStatusCompleted, day(2025, time.March, 8)),
	}

	e := CalculateRemaining(history, "emp-1", lt, day(2025, time.March, 25))

	assert.Equal(t, 2, e.UsedThisMonth)
	assert.Equal(t, 0, e.RemainingThisMonth)
}

func TestCalculateRemaining_FiltersEmployeeAndType(t *testing.T) {
	lt := leave.LeaveType{ID: "annual", MaxPerMonth: 2, MaxPerYear: 12}
	history := []leave.LeaveRecord{
		record("emp-2", "annual", leave.LeaveStatusApproved, day(2025, time.March, 3)),
		record("emp-1", "sick", leave.LeaveStatusApproved, day(2025, time.March, 4)),
	}

	e := CalculateRemaining(history, "emp-1", lt, day(2025, time.March, 25))

	assert.Equal(t, 0, e.UsedThisMonth)
	assert.Equal(t, 0, e.UsedThisYear)
}

func TestCalculateRemaining_PeriodBoundaries(t *testing.T) {
	lt := leave.LeaveType{ID: "annual", MaxPerMonth: 1, MaxPerYear: 2}
	history := []leave.LeaveRecord{
		record("emp-1", "annual", leave.LeaveStatusApproved, day(2025, time.February, 28)),
		record("emp-1", "annual", leave.LeaveStatusApproved, day(2024, time.March, 10)),
	}

	e := CalculateRemaining(history, "emp-1", lt, day(2025, time.March, 5))

	// February counts toward the year but not the month; 2024 not at all.
	assert.Equal(t, 0, e.UsedThisMonth)
	assert.Equal(t, 1, e.UsedThisYear)
	assert.True(t, Admissible(e))
}

func TestCalculateRemaining_ZeroCapMeansUnlimited(t *testing.T) {
	lt := leave.LeaveType{ID: "sick", MaxPerMonth: 0, MaxPerYear: 0}
	var history []leave.LeaveRecord
	for i := 1; i <= 28; i++ {
		history = append(history, record("emp-1", "sick", leave.LeaveStatusApproved, day(2025, time.March, i)))
	}

	e := CalculateRemaining(history, "emp-1", lt, day(2025, time.March, 30))

	assert.Equal(t, 28, e.UsedThisMonth)
	assert.Equal(t, UnlimitedAllowance-28, e.RemainingThisMonth)
	assert.True(t, Admissible(e))
}

func TestRemaining_NeverNegative(t *testing.T) {
	assert.Equal(t, 0, remaining(2, 5))
	assert.Equal(t, 0, remaining(2, 2))
	assert.Equal(t, 1, remaining(2, 1))
}

func TestMaxConsecutiveDays(t *testing.T) {
	assert.Equal(t, 2, MaxConsecutiveDays(leave.Entitlement{RemainingThisMonth: 2, RemainingThisYear: 9}))
	assert.Equal(t, 3, MaxConsecutiveDays(leave.Entitlement{RemainingThisMonth: 7, RemainingThisYear: 3}))
}
