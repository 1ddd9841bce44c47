package leave

import (
	"time"
)

// LeaveType categorizes leave with per-month/per-year caps. A cap of zero
// means unlimited, matching the historical behavior of the caps.
type LeaveType struct {
	ID          string
	OrgID       string
	Name        string
	MaxPerMonth int
	MaxPerYear  int
	IsPaid      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type LeaveStatus string

const (
	LeaveStatusPending   LeaveStatus = "PENDING"
	LeaveStatusApproved  LeaveStatus = "APPROVED"
	LeaveStatusRejected  LeaveStatus = "REJECTED"
	LeaveStatusCancelled LeaveStatus = "CANCELLED"
	LeaveStatusActive    LeaveStatus = "ACTIVE"
	LeaveStatusCompleted LeaveStatus = "COMPLETED"
	LeaveStatusInactive  LeaveStatus = "INACTIVE"
)

func (s LeaveStatus) Valid() bool {
	switch s {
	case LeaveStatusPending, LeaveStatusApproved, LeaveStatusRejected,
		LeaveStatusCancelled, LeaveStatusActive, LeaveStatusCompleted,
		LeaveStatusInactive:
		return true
	}
	return false
}

// Positive reports whether a leave in this status consumes entitlement.
func (s LeaveStatus) Positive() bool {
	switch s {
	case LeaveStatusApproved, LeaveStatusActive, LeaveStatusCompleted:
		return true
	}
	return false
}

// transitions holds the reachable targets per status. REJECTED, CANCELLED
// and COMPLETED are terminal. INACTIVE is an administrative hold that can be
// released back to PENDING or APPROVED. There are no time-based transitions.
var transitions = map[LeaveStatus][]LeaveStatus{
	LeaveStatusPending:   {LeaveStatusApproved, LeaveStatusRejected, LeaveStatusCancelled, LeaveStatusInactive},
	LeaveStatusApproved:  {LeaveStatusActive, LeaveStatusInactive},
	LeaveStatusActive:    {LeaveStatusCompleted},
	LeaveStatusInactive:  {LeaveStatusPending, LeaveStatusApproved},
	LeaveStatusRejected:  {},
	LeaveStatusCancelled: {},
	LeaveStatusCompleted: {},
}

// CanTransition reports whether to is reachable from s.
func (s LeaveStatus) CanTransition(to LeaveStatus) bool {
	for _, t := range transitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// LeaveRecord is one leave request. StartDate and EndDate are inclusive
// calendar dates with EndDate >= StartDate.
type LeaveRecord struct {
	ID          string
	EmployeeID  string
	OrgID       string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	Reason      string
	Status      LeaveStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	LeaveTypeName *string
}

// Entitlement is the remaining-allowance summary for one employee and leave
// type at a candidate date. Counts are whole leave records, not day spans.
type Entitlement struct {
	UsedThisMonth      int
	UsedThisYear       int
	RemainingThisMonth int
	RemainingThisYear  int
}
