package leave

import (
	"context"
)

// LeaveTypeRepository defines data access for leave type reference data.
type LeaveTypeRepository interface {
	Create(ctx context.Context, lt LeaveType) (LeaveType, error)

	GetByID(ctx context.Context, id string, orgID string) (LeaveType, error)

	List(ctx context.Context, orgID string) ([]LeaveType, error)

	Delete(ctx context.Context, id string, orgID string) error
}

// LeaveRecordRepository defines data access for leave records.
type LeaveRecordRepository interface {
	Create(ctx context.Context, record LeaveRecord) (LeaveRecord, error)

	GetByID(ctx context.Context, id string, orgID string) (LeaveRecord, error)

	// ListByEmployeeAndType returns the employee's history for one leave
	// type, the snapshot the entitlement calculator consumes.
	ListByEmployeeAndType(ctx context.Context, employeeID string, leaveTypeID string, orgID string) ([]LeaveRecord, error)

	List(ctx context.Context, filter LeaveFilter, orgID string) ([]LeaveRecord, int64, error)

	UpdateStatus(ctx context.Context, id string, status LeaveStatus, orgID string) error
}
