package attendance

import (
	"time"

	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ClockInRequest struct {
	Date    string  `json:"date"`     // optional, defaults to today
	Status  string  `json:"status"`   // optional, defaults to PRESENT
	CheckIn string  `json:"check_in"` // optional RFC3339, defaults to now (backdated requests)
	ShiftID *string `json:"shift_id"` // optional, closest shift is picked when absent
	Notes   *string `json:"notes"`

	// Parsed during Validate
	ParsedDate    *time.Time `json:"-"`
	ParsedCheckIn *time.Time `json:"-"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != "" {
		date, ok := validator.IsValidDate(r.Date)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		} else {
			r.ParsedDate = &date
		}
	}

	if r.Status != "" && !SessionStatus(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is not a recognized session status",
		})
	}

	if r.CheckIn != "" {
		checkIn, ok := validator.IsValidDateTime(r.CheckIn)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be a valid ISO8601 timestamp",
			})
		} else {
			r.ParsedCheckIn = &checkIn
		}
	}

	if r.ShiftID != nil && !validator.IsValidUUID(*r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClockOutRequest struct {
	SessionID string  `json:"-"`
	CheckOut  string  `json:"check_out"` // optional RFC3339, defaults to now
	Notes     *string `json:"notes"`

	ParsedCheckOut *time.Time `json:"-"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SessionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "session_id",
			Message: "session id is required",
		})
	}

	if r.CheckOut != "" {
		checkOut, ok := validator.IsValidDateTime(r.CheckOut)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be a valid ISO8601 timestamp",
			})
		} else {
			r.ParsedCheckOut = &checkOut
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type StartBreakRequest struct {
	SessionID   string `json:"-"`
	BreakTypeID string `json:"break_type_id"`
	Start       string `json:"start"` // optional RFC3339, defaults to now

	ParsedStart *time.Time `json:"-"`
}

func (r *StartBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SessionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "session_id",
			Message: "session id is required",
		})
	}

	if validator.IsEmpty(r.BreakTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_type_id",
			Message: "break_type_id is required",
		})
	}

	if r.Start != "" {
		start, ok := validator.IsValidDateTime(r.Start)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start",
				Message: "start must be a valid ISO8601 timestamp",
			})
		} else {
			r.ParsedStart = &start
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EndBreakRequest struct {
	SessionID string `json:"-"`
	BreakID   string `json:"-"`
	End       string `json:"end"` // optional RFC3339, defaults to now

	ParsedEnd *time.Time `json:"-"`
}

func (r *EndBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SessionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "session_id",
			Message: "session id is required",
		})
	}

	if validator.IsEmpty(r.BreakID) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_id",
			Message: "break id is required",
		})
	}

	if r.End != "" {
		end, ok := validator.IsValidDateTime(r.End)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end",
				Message: "end must be a valid ISO8601 timestamp",
			})
		} else {
			r.ParsedEnd = &end
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateBreakStatusRequest struct {
	SessionID string `json:"-"`
	BreakID   string `json:"-"`
	Status    string `json:"status"` // APPROVED or REJECTED
}

func (r *UpdateBreakStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SessionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "session_id",
			Message: "session id is required",
		})
	}

	if validator.IsEmpty(r.BreakID) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_id",
			Message: "break id is required",
		})
	}

	if !BreakStatus(r.Status).Valid() || BreakStatus(r.Status) == BreakStatusPending {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be APPROVED or REJECTED",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// EditSessionRequest replaces the session's date, status and timestamps.
// Durations and fees are always recomputed server-side; any client-supplied
// values are ignored.
type EditSessionRequest struct {
	ID       string  `json:"-"`
	Date     string  `json:"date"`
	Status   string  `json:"status"`
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
	ShiftID  *string `json:"shift_id"`
	Notes    *string `json:"notes"`

	ParsedDate     time.Time  `json:"-"`
	ParsedCheckIn  *time.Time `json:"-"`
	ParsedCheckOut *time.Time `json:"-"`
}

func (r *EditSessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "session id is required",
		})
	}

	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	r.ParsedDate = date

	if !SessionStatus(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is not a recognized session status",
		})
	}

	if r.CheckIn != nil && *r.CheckIn != "" {
		checkIn, ok := validator.IsValidDateTime(*r.CheckIn)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be a valid ISO8601 timestamp",
			})
		} else {
			r.ParsedCheckIn = &checkIn
		}
	}

	if r.CheckOut != nil && *r.CheckOut != "" {
		checkOut, ok := validator.IsValidDateTime(*r.CheckOut)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be a valid ISO8601 timestamp",
			})
		} else {
			r.ParsedCheckOut = &checkOut
		}
	}

	if r.ParsedCheckIn != nil && r.ParsedCheckOut != nil && r.ParsedCheckOut.Before(*r.ParsedCheckIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out",
			Message: "check_out must not be before check_in",
		})
	}

	if r.ShiftID != nil && !validator.IsValidUUID(*r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SessionFilter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	Status     *string
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

func (f *SessionFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Status != nil && !SessionStatus(*f.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is not a recognized session status",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// RESPONSES
// ========================================

type SessionResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	Date            string          `json:"date"`
	CheckIn         *string         `json:"check_in"`
	CheckOut        *string         `json:"check_out"`
	Status          string          `json:"status"`
	State           string          `json:"state"`
	ShiftID         *string         `json:"shift_id"`
	DurationSeconds int64           `json:"duration_seconds"`
	LateFeeAmount   int64           `json:"late_fee_amount"`
	OvertimeFee     int64           `json:"overtime_fee_amount"`
	Notes           *string         `json:"notes"`
	Breaks          []BreakResponse `json:"breaks,omitempty"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

type BreakResponse struct {
	ID              string  `json:"id"`
	SessionID       string  `json:"session_id"`
	BreakTypeID     string  `json:"break_type_id"`
	Start           string  `json:"start"`
	End             *string `json:"end"`
	DurationSeconds int64   `json:"duration_seconds"`
	Status          string  `json:"status"`
}

type ListSessionsResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Sessions   []SessionResponse `json:"sessions"`
}
