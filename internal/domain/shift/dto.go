package shift

import (
	"time"

	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	Name                   string `json:"name"`
	StartTime              string `json:"start_time"` // "09:00"
	EndTime                string `json:"end_time"`   // "17:00"
	LateGraceMinutes       int    `json:"late_grace_minutes"`
	LateFinePerMinute      int64  `json:"late_fine_per_minute"`
	OvertimePricePerMinute int64  `json:"overtime_price_per_minute"`
	Position               int    `json:"position"`

	// Parsed during Validate
	ParsedStart time.Time `json:"-"`
	ParsedEnd   time.Time `json:"-"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	start, ok := validator.IsValidTimeOfDay(r.StartTime)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be a valid time like 09:00",
		})
	}
	r.ParsedStart = start

	end, ok := validator.IsValidTimeOfDay(r.EndTime)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be a valid time like 17:00",
		})
	}
	r.ParsedEnd = end

	if r.LateGraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_grace_minutes",
			Message: "late_grace_minutes must not be negative",
		})
	}
	if r.LateFinePerMinute < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_fine_per_minute",
			Message: "late_fine_per_minute must not be negative",
		})
	}
	if r.OvertimePricePerMinute < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_price_per_minute",
			Message: "overtime_price_per_minute must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateBreakTypeRequest struct {
	Name   string `json:"name"`
	IsPaid bool   `json:"is_paid"`
}

func (r *CreateBreakTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ShiftResponse struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	StartTime              string `json:"start_time"`
	EndTime                string `json:"end_time"`
	LateGraceMinutes       int    `json:"late_grace_minutes"`
	LateFinePerMinute      int64  `json:"late_fine_per_minute"`
	OvertimePricePerMinute int64  `json:"overtime_price_per_minute"`
	Position               int    `json:"position"`
}

type BreakTypeResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsPaid bool   `json:"is_paid"`
}
