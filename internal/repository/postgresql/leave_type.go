package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/worklane-hq/orgtime-backend-go/internal/domain/leave"
	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/database"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// Create implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_types (
			id, org_id, name, max_per_month, max_per_year, is_paid
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		lt.ID,
		lt.OrgID,
		lt.Name,
		lt.MaxPerMonth,
		lt.MaxPerYear,
		lt.IsPaid,
	).Scan(&lt.CreatedAt, &lt.UpdatedAt)

	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}

	return lt, nil
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string, orgID string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, org_id, name, max_per_month, max_per_year, is_paid,
			   created_at, updated_at
		FROM leave_types
		WHERE id = $1 AND org_id = $2
	`

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, id, orgID).Scan(
		&lt.ID, &lt.OrgID, &lt.Name, &lt.MaxPerMonth, &lt.MaxPerYear, &lt.IsPaid,
		&lt.CreatedAt, &lt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type: %w", err)
	}

	return lt, nil
}

// List implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) List(ctx context.Context, orgID string) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, org_id, name, max_per_month, max_per_year, is_paid,
			   created_at, updated_at
		FROM leave_types
		WHERE org_id = $1
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave types: %w", err)
	}
	defer rows.Close()

	var leaveTypes []leave.LeaveType
	for rows.Next() {
		var lt leave.LeaveType
		if err := rows.Scan(
			&lt.ID, &lt.OrgID, &lt.Name, &lt.MaxPerMonth, &lt.MaxPerYear, &lt.IsPaid,
			&lt.CreatedAt, &lt.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		leaveTypes = append(leaveTypes, lt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return leaveTypes, nil
}

// Delete implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Delete(ctx context.Context, id string, orgID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM leave_types
		WHERE id = $1 AND org_id = $2
	`

	tag, err := q.Exec(ctx, query, id, orgID)
	if err != nil {
		return fmt.Errorf("failed to delete leave type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}

	return nil
}
