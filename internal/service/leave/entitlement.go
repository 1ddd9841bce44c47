package leave

import (
	"time"

	"github.com/worklane-hq/orgtime-backend-go/internal/domain/leave"
)

// UnlimitedAllowance stands in for a cap of zero, which historically means
// "no limit", not "zero allowed".
const UnlimitedAllowance = 1 << 30

// CalculateRemaining computes the remaining allowance for one employee and
// leave type at a candidate date, from a caller-supplied history snapshot.
// It counts whole leave records, not day spans: a three-day leave consumes
// one unit of the monthly and yearly caps. Only records in a positive
// status (APPROVED, ACTIVE, COMPLETED) consume entitlement. Pure function,
// safe to run concurrently across employees.
func CalculateRemaining(history []leave.LeaveRecord, employeeID string, leaveType leave.LeaveType, candidateDate time.Time) leave.Entitlement {
	var usedMonth, usedYear int

	for _, record := range history {
		if record.EmployeeID != employeeID || record.LeaveTypeID != leaveType.ID {
			continue
		}
		if !record.Status.Positive() {
			continue
		}
		if record.StartDate.Year() != candidateDate.Year() {
			continue
		}
		usedYear++
		if record.StartDate.Month() == candidateDate.Month() {
			usedMonth++
		}
	}

	return leave.Entitlement{
		UsedThisMonth:      usedMonth,
		UsedThisYear:       usedYear,
		RemainingThisMonth: remaining(leaveType.MaxPerMonth, usedMonth),
		RemainingThisYear:  remaining(leaveType.MaxPerYear, usedYear),
	}
}

func remaining(cap int, used int) int {
	if cap == 0 {
		cap = UnlimitedAllowance
	}
	rem := cap - used
	if rem < 0 {
		return 0
	}
	return rem
}

// Admissible reports whether a new request may be admitted at its start
// date: both period counters must have room left.
func Admissible(e leave.Entitlement) bool {
	return e.RemainingThisMonth > 0 && e.RemainingThisYear > 0
}

// MaxConsecutiveDays caps the selectable end-date range from a start date,
// as consumed by the requesting UI.
func MaxConsecutiveDays(e leave.Entitlement) int {
	if e.RemainingThisMonth < e.RemainingThisYear {
		return e.RemainingThisMonth
	}
	return e.RemainingThisYear
}
