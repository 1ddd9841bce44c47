package leave

import (
	"time"

	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/validator"
)

type CreateLeaveTypeRequest struct {
	Name        string `json:"name"`
	MaxPerMonth int    `json:"max_per_month"` // 0 = unlimited
	MaxPerYear  int    `json:"max_per_year"`  // 0 = unlimited
	IsPaid      bool   `json:"is_paid"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.MaxPerMonth < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_per_month",
			Message: "max_per_month must not be negative",
		})
	}

	if r.MaxPerYear < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_per_year",
			Message: "max_per_year must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SubmitLeaveRequest struct {
	LeaveTypeID string `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Reason      string `json:"reason"`

	ParsedStart time.Time `json:"-"`
	ParsedEnd   time.Time `json:"-"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	start, ok := validator.IsValidDate(r.StartDate)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	r.ParsedStart = start

	end, ok := validator.IsValidDate(r.EndDate)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	r.ParsedEnd = end

	if !r.ParsedStart.IsZero() && !r.ParsedEnd.IsZero() && r.ParsedEnd.Before(r.ParsedStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TransitionLeaveRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *TransitionLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "leave id is required",
		})
	}

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveFilter struct {
	EmployeeID  *string
	LeaveTypeID *string
	Status      *string
	Year        *int
	Page        int
	Limit       int
}

type LeaveResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeName *string `json:"leave_type_name,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Reason        string  `json:"reason"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type ListLeavesResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Leaves     []LeaveResponse `json:"leaves"`
}

type LeaveTypeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MaxPerMonth int    `json:"max_per_month"`
	MaxPerYear  int    `json:"max_per_year"`
	IsPaid      bool   `json:"is_paid"`
}

type EntitlementResponse struct {
	LeaveTypeID        string `json:"leave_type_id"`
	Date               string `json:"date"`
	UsedThisMonth      int    `json:"used_this_month"`
	UsedThisYear       int    `json:"used_this_year"`
	RemainingThisMonth int    `json:"remaining_this_month"`
	RemainingThisYear  int    `json:"remaining_this_year"`
	MaxConsecutiveDays int    `json:"max_consecutive_days"`
}
