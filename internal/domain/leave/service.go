package leave

import (
	"context"
)

// LeaveService defines business logic for leave types, submissions and the
// request lifecycle.
type LeaveService interface {
	CreateLeaveType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)

	ListLeaveTypes(ctx context.Context) ([]LeaveTypeResponse, error)

	DeleteLeaveType(ctx context.Context, id string) error

	// Submit admits a new leave request after checking the remaining
	// allowance at the request's start date.
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveResponse, error)

	// Transition moves a leave record along the lifecycle state machine.
	Transition(ctx context.Context, req TransitionLeaveRequest) (LeaveResponse, error)

	GetLeave(ctx context.Context, id string) (LeaveResponse, error)

	ListLeaves(ctx context.Context, filter LeaveFilter) (ListLeavesResponse, error)

	// Entitlement reports the remaining allowance for the authenticated
	// employee, leave type and candidate date.
	Entitlement(ctx context.Context, leaveTypeID string, date string) (EntitlementResponse, error)
}
