package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/worklane-hq/orgtime-backend-go/internal/domain/attendance"
	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/database"
)

type sessionRepositoryImpl struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) attendance.SessionRepository {
	return &sessionRepositoryImpl{db: db}
}

// Create implements attendance.SessionRepository.
func (r *sessionRepositoryImpl) Create(ctx context.Context, session attendance.Session) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_sessions (
			id, employee_id, org_id, date,
			check_in, check_out, status, shift_id,
			duration_seconds, late_fee_amount, overtime_fee, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		session.ID,
		session.EmployeeID,
		session.OrgID,
		session.Date,
		session.CheckIn,
		session.CheckOut,
		session.Status,
		session.ShiftID,
		session.DurationSeconds,
		session.LateFeeAmount,
		session.OvertimeFee,
		session.Notes,
	).Scan(&session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		return attendance.Session{}, fmt.Errorf("failed to create attendance session: %w", err)
	}

	return session, nil
}

// GetByID implements attendance.SessionRepository.
func (r *sessionRepositoryImpl) GetByID(ctx context.Context, id string, orgID string) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, org_id, date,
			   check_in, check_out, status, shift_id,
			   duration_seconds, late_fee_amount, overtime_fee, notes,
			   created_at, updated_at
		FROM attendance_sessions
		WHERE id = $1 AND org_id = $2
	`

	var s attendance.Session
	err := q.QueryRow(ctx, query, id, orgID).Scan(
		&s.ID, &s.EmployeeID, &s.OrgID, &s.Date,
		&s.CheckIn, &s.CheckOut, &s.Status, &s.ShiftID,
		&s.DurationSeconds, &s.LateFeeAmount, &s.OvertimeFee, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Session{}, attendance.ErrSessionNotFound
		}
		return attendance.Session{}, fmt.Errorf("failed to get attendance session: %w", err)
	}

	breaks, err := r.loadBreaks(ctx, q, s.ID)
	if err != nil {
		return attendance.Session{}, err
	}
	s.Breaks = breaks

	return s, nil
}

// GetByEmployeeAndDate implements attendance.SessionRepository.
func (r *sessionRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, orgID string) (*attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, org_id, date,
			   check_in, check_out, status, shift_id,
			   duration_seconds, late_fee_amount, overtime_fee, notes,
			   created_at, updated_at
		FROM attendance_sessions
		WHERE employee_id = $1 AND date = $2 AND org_id = $3
		LIMIT 1
	`

	var s attendance.Session
	err := q.QueryRow(ctx, query, employeeID, date, orgID).Scan(
		&s.ID, &s.EmployeeID, &s.OrgID, &s.Date,
		&s.CheckIn, &s.CheckOut, &s.Status, &s.ShiftID,
		&s.DurationSeconds, &s.LateFeeAmount, &s.OvertimeFee, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session by employee and date: %w", err)
	}

	breaks, err := r.loadBreaks(ctx, q, s.ID)
	if err != nil {
		return nil, err
	}
	s.Breaks = breaks

	return &s, nil
}

// Update implements attendance.SessionRepository.
func (r *sessionRepositoryImpl) Update(ctx context.Context, session attendance.Session) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_sessions
		SET date = $1,
			check_in = $2,
			check_out = $3,
			status = $4,
			shift_id = $5,
			duration_seconds = $6,
			late_fee_amount = $7,
			overtime_fee = $8,
			notes = $9,
			updated_at = NOW()
		WHERE id = $10 AND org_id = $11
	`

	tag, err := q.Exec(ctx, query,
		session.Date,
		session.CheckIn,
		session.CheckOut,
		session.Status,
		session.ShiftID,
		session.DurationSeconds,
		session.LateFeeAmount,
		session.OvertimeFee,
		session.Notes,
		session.ID,
		session.OrgID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrSessionNotFound
	}

	return nil
}

// List implements attendance.SessionRepository.
func (r *sessionRepositoryImpl) List(ctx context.Context, filter attendance.SessionFilter, orgID string) ([]attendance.Session, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "org_id = $1"
	args := []interface{}{orgID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendance_sessions WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance sessions: %w", err)
	}

	orderByField := "date"
	switch filter.SortBy {
	case "check_in":
		orderByField = "check_in"
	case "check_out":
		orderByField = "check_out"
	case "status":
		orderByField = "status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT id, employee_id, org_id, date,
			   check_in, check_out, status, shift_id,
			   duration_seconds, late_fee_amount, overtime_fee, notes,
			   created_at, updated_at
		FROM attendance_sessions
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance sessions: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.Session
	for rows.Next() {
		var s attendance.Session
		if err := rows.Scan(
			&s.ID, &s.EmployeeID, &s.OrgID, &s.Date,
			&s.CheckIn, &s.CheckOut, &s.Status, &s.ShiftID,
			&s.DurationSeconds, &s.LateFeeAmount, &s.OvertimeFee, &s.Notes,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range sessions {
		breaks, err := r.loadBreaks(ctx, q, sessions[i].ID)
		if err != nil {
			return nil, 0, err
		}
		sessions[i].Breaks = breaks
	}

	return sessions, total, nil
}

// Delete implements attendance.SessionRepository. Break records reference the
// session with ON DELETE CASCADE, so they go with it.
func (r *sessionRepositoryImpl) Delete(ctx context.Context, id string, orgID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM attendance_sessions
		WHERE id = $1 AND org_id = $2
	`

	tag, err := q.Exec(ctx, query, id, orgID)
	if err != nil {
		return fmt.Errorf("failed to delete attendance session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrSessionNotFound
	}

	return nil
}

func (r *sessionRepositoryImpl) loadBreaks(ctx context.Context, q database.Querier, sessionID string) ([]attendance.BreakRecord, error) {
	query := `
		SELECT id, session_id, employee_id, org_id, break_type_id,
			   start_time, end_time, duration_seconds, status,
			   created_at, updated_at
		FROM break_records
		WHERE session_id = $1
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query, sessionID)
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
