package shift

import (
	"context"
)

// ShiftRepository defines data access for the shift catalog.
// All methods take orgID to prevent cross-organization data access.
type ShiftRepository interface {
	Create(ctx context.Context, s Shift) (Shift, error)

	GetByID(ctx context.Context, id string, orgID string) (Shift, error)

	// List returns the catalog ordered by position then creation time,
	// the order used to break shift-selection ties.
	List(ctx context.Context, orgID string) ([]Shift, error)

	Delete(ctx context.Context, id string, orgID string) error
}

// BreakTypeRepository defines data access for break type reference data.
type BreakTypeRepository interface {
	Create(ctx context.Context, bt BreakType) (BreakType, error)

	GetByID(ctx context.Context, id string, orgID string) (BreakType, error)

	List(ctx context.Context, orgID string) ([]BreakType, error)

	Delete(ctx context.Context, id string, orgID string) error
}
