package shift

import (
	"context"
)

// CatalogService manages shift and break-type reference data.
type CatalogService interface {
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)

	ListShifts(ctx context.Context) ([]ShiftResponse, error)

	GetShift(ctx context.Context, id string) (ShiftResponse, error)

	DeleteShift(ctx context.Context, id string) error

	CreateBreakType(ctx context.Context, req CreateBreakTypeRequest) (BreakTypeResponse, error)

	ListBreakTypes(ctx context.Context) ([]BreakTypeResponse, error)

	DeleteBreakType(ctx context.Context, id string) error
}
