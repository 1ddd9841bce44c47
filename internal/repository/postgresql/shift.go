package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/worklane-hq/orgtime-backend-go/internal/domain/shift"
	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (
			id, org_id, name, start_time, end_time,
			late_grace_minutes, late_fine_per_minute, overtime_price_per_minute, position
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.ID,
		s.OrgID,
		s.Name,
		s.StartTime,
		s.EndTime,
		s.LateGraceMinutes,
		s.LateFinePerMinute,
		s.OvertimePricePerMinute,
		s.Position,
	).Scan(&s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return s, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string, orgID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, org_id, name, start_time, end_time,
			   late_grace_minutes, late_fine_per_minute, overtime_price_per_minute, position,
			   created_at, updated_at
		FROM shifts
		WHERE id = $1 AND org_id = $2
	`

	var s shift.Shift
	err := q.QueryRow(ctx, query, id, orgID).Scan(
		&s.ID, &s.OrgID, &s.Name, &s.StartTime, &s.EndTime,
		&s.LateGraceMinutes, &s.LateFinePerMinute, &s.OvertimePricePerMinute, &s.Position,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return s, nil
}

// List implements shift.ShiftRepository. The order here is the catalog order
// that shift selection uses to break ties.
func (r *shiftRepositoryImpl) List(ctx context.Context, orgID string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, org_id, name, start_time, end_time,
			   late_grace_minutes, late_fine_per_minute, overtime_price_per_minute, position,
			   created_at, updated_at
		FROM shifts
		WHERE org_id = $1
		ORDER BY position ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		var s shift.Shift
		if err := rows.Scan(
			&s.ID, &s.OrgID, &s.Name, &s.StartTime, &s.EndTime,
			&s.LateGraceMinutes, &s.LateFinePerMinute, &s.OvertimePricePerMinute, &s.Position,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string, orgID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM shifts
		WHERE id = $1 AND org_id = $2
	`

	tag, err := q.Exec(ctx, query, id, orgID)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

type breakTypeRepositoryImpl struct {
	db *database.DB
}

func NewBreakTypeRepository(db *database.DB) shift.BreakTypeRepository {
	return &breakTypeRepositoryImpl{db: db}
}

// Create implements shift.BreakTypeRepository.
func (r *breakTypeRepositoryImpl) Create(ctx context.Context, bt shift.BreakType) (shift.BreakType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO break_types (id, org_id, name, is_paid)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, bt.ID, bt.OrgID, bt.Name, bt.IsPaid).
		Scan(&bt.CreatedAt, &bt.UpdatedAt)
	if err != nil {
		return shift.BreakType{}, fmt.Errorf("failed to create break type: %w", err)
	}

	return bt, nil
}

// GetByID implements shift.BreakTypeRepository.
func (r *breakTypeRepositoryImpl) GetByID(ctx context.Context, id string, orgID string) (shift.BreakType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, org_id, name, is_paid, created_at, updated_at
		FROM break_types
		WHERE id = $1 AND org_id = $2
	`

	var bt shift.BreakType
	err := q.QueryRow(ctx, query, id, orgID).Scan(
		&bt.ID, &bt.OrgID, &bt.Name, &bt.IsPaid, &bt.CreatedAt, &bt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.BreakType{}, shift.ErrBreakTypeNotFound
		}
		return shift.BreakType{}, fmt.Errorf("failed to get break type: %w", err)
	}

	return bt, nil
}

// List implements shift.BreakTypeRepository.
func (r *breakTypeRepositoryImpl) List(ctx context.Context, orgID string) ([]shift.BreakType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, org_id, name, is_paid, created_at, updated_at
		FROM break_types
		WHERE org_id = $1
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query break types: %w", err)
	}
	defer rows.Close()

	var breakTypes []shift.BreakType
	for rows.Next() {
		var bt shift.BreakType
		if err := rows.Scan(
			&bt.ID, &bt.OrgID, &bt.Name, &bt.IsPaid, &bt.CreatedAt, &bt.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan break type: %w", err)
		}
		breakTypes = append(breakTypes, bt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return breakTypes, nil
}

// Delete implements shift.BreakTypeRepository.
func (r *breakTypeRepositoryImpl) Delete(ctx context.Context, id string, orgID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM break_types
		WHERE id = $1 AND org_id = $2
	`

	tag, err := q.Exec(ctx, query, id, orgID)
	if err != nil {
		return fmt.Errorf("failed to delete break type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrBreakTypeNotFound
	}

	return nil
}
