package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/worklane-hq/orgtime-backend-go/internal/domain/attendance"
	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/database"
)

type breakRepositoryImpl struct {
	db *database.DB
}

func NewBreakRepository(db *database.DB) attendance.BreakRepository {
	return &breakRepositoryImpl{db: db}
}

// Create implements attendance.BreakRepository.
func (r *breakRepositoryImpl) Create(ctx context.Context, br attendance.BreakRecord) (attendance.BreakRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO break_records (
			id, session_id, employee_id, org_id, break_type_id,
			start_time, end_time, duration_seconds, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		br.ID,
		br.SessionID,
		br.EmployeeID,
		br.OrgID,
		br.BreakTypeID,
		br.Start,
		br.End,
		br.DurationSeconds,
		br.Status,
	).Scan(&br.CreatedAt, &br.UpdatedAt)

	if err != nil {
		return attendance.BreakRecord{}, fmt.Errorf("failed to create break record: %w", err)
	}

	return br, nil
}

// GetByID implements attendance.BreakRepository.
func (r *breakRepositoryImpl) GetByID(ctx context.Context, id string, orgID string) (attendance.BreakRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, session_id, employee_id, org_id, break_type_id,
			   start_time, end_time, duration_seconds, status,
			   created_at, updated_at
		FROM break_records
		WHERE id = $1 AND org_id = $2
	`

	var b attendance.BreakRecord
	err := q.QueryRow(ctx, query, id, orgID).Scan(
		&b.ID, &b.SessionID, &b.EmployeeID, &b.OrgID, &b.BreakTypeID,
		&b.Start, &b.End, &b.DurationSeconds, &b.Status,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.BreakRecord{}, attendance.ErrBreakNotFound
		}
		return attendance.BreakRecord{}, fmt.Errorf("failed to get break record: %w", err)
	}

	return b, nil
}

// ListBySession implements attendance.BreakRepository.
func (r *breakRepositoryImpl) ListBySession(ctx context.Context, sessionID string, orgID string) ([]attendance.BreakRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, session_id, employee_id, org_id, break_type_id,
			   start_time, end_time, duration_seconds, status,
			   created_at, updated_at
		FROM break_records
		WHERE session_id = $1 AND org_id = $2
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query, sessionID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query break records: %w", err)
	}
	defer rows.Close()

	var breaks []attendance.BreakRecord
	for rows.Next() {
		var b attendance.BreakRecord
		if err := rows.Scan(
			&b.ID, &b.SessionID, &b.EmployeeID, &b.OrgID, &b.BreakTypeID,
			&b.Start, &b.End, &b.DurationSeconds, &b.Status,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan break record: %w", err)
		}
		breaks = append(breaks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return breaks, nil
}

// GetOpenBySession implements attendance.BreakRepository.
func (r *breakRepositoryImpl) GetOpenBySession(ctx context.Context, sessionID string, orgID string) (*attendance.BreakRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, session_id, employee_id, org_id, break_type_id,
			   start_time, end_time, duration_seconds, status,
			   created_at, updated_at
		FROM break_records
		WHERE session_id = $1 AND org_id = $2 AND end_time IS NULL
		ORDER BY start_time DESC
		LIMIT 1
	`

	var b attendance.BreakRecord
	err := q.QueryRow(ctx, query, sessionID, orgID).Scan(
		&b.ID, &b.SessionID, &b.EmployeeID, &b.OrgID, &b.BreakTypeID,
		&b.Start, &b.End, &b.DurationSeconds, &b.Status,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open break: %w", err)
	}

	return &b, nil
}

// Update implements attendance.BreakRepository.
func (r *breakRepositoryImpl) Update(ctx context.Context, br attendance.BreakRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE break_records
		SET end_time = $1,
			duration_seconds = $2,
			status = $3,
			updated_at = NOW()
		WHERE id = $4 AND org_id = $5
	`

	tag, err := q.Exec(ctx, query,
		br.End,
		br.DurationSeconds,
		br.Status,
		br.ID,
		br.OrgID,
	)
	if err != nil {
		return fmt.Errorf("failed to update break record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrBreakNotFound
	}

	return nil
}
