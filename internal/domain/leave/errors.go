package leave

import "errors"

var (
	ErrLeaveNotFound      = errors.New("leave record not found")
	ErrLeaveTypeNotFound  = errors.New("leave type not found")
	ErrAllowanceExhausted = errors.New("leave allowance exhausted for the requested period")
	ErrInvalidTransition  = errors.New("leave status transition not allowed")
	ErrUnknownStatus      = errors.New("unknown leave status")
)
