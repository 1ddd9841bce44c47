package shift

import "errors"

var (
	ErrShiftNotFound     = errors.New("shift not found")
	ErrBreakTypeNotFound = errors.New("break type not found")
)
