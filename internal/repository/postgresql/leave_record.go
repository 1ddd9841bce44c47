package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/worklane-hq/orgtime-backend-go/internal/domain/leave"
	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/database"
)

type leaveRecordRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRecordRepository(db *database.DB) leave.LeaveRecordRepository {
	return &leaveRecordRepositoryImpl{db: db}
}

// Create implements leave.LeaveRecordRepository.
func (r *leaveRecordRepositoryImpl) Create(ctx context.Context, record leave.LeaveRecord) (leave.LeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_records (
			id, employee_id, org_id, leave_type_id,
			start_date, end_date, reason, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ID,
		record.EmployeeID,
		record.OrgID,
		record.LeaveTypeID,
		record.StartDate,
		record.EndDate,
		record.Reason,
		record.Status,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return leave.LeaveRecord{}, fmt.Errorf("failed to create leave record: %w", err)
	}

	return record, nil
}

// GetByID implements leave.LeaveRecordRepository.
func (r *leaveRecordRepositoryImpl) GetByID(ctx context.Context, id string, orgID string) (leave.LeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.org_id, lr.leave_type_id,
			   lr.start_date, lr.end_date, lr.reason, lr.status,
			   lr.created_at, lr.updated_at,
			   lt.name AS leave_type_name
		FROM leave_records lr
		LEFT JOIN leave_types lt ON lt.id = lr.leave_type_id
		WHERE lr.id = $1 AND lr.org_id = $2
	`

	var rec leave.LeaveRecord
	err := q.QueryRow(ctx, query, id, orgID).Scan(
		&rec.ID, &rec.EmployeeID, &rec.OrgID, &rec.LeaveTypeID,
		&rec.StartDate, &rec.EndDate, &rec.Reason, &rec.Status,
		&rec.CreatedAt, &rec.UpdatedAt,
		&rec.LeaveTypeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRecord{}, leave.ErrLeaveNotFound
		}
		return leave.LeaveRecord{}, fmt.Errorf("failed to get leave record: %w", err)
	}

	return rec, nil
}

// ListByEmployeeAndType implements leave.LeaveRecordRepository. The result is
// the full history the entitlement calculator filters in memory, so no status
// or date conditions here.
func (r *leaveRecordRepositoryImpl) ListByEmployeeAndType(ctx context.Context, employeeID string, leaveTypeID string, orgID string) ([]leave.LeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, org_id, leave_type_id,
			   start_date, end_date, reason, status,
			   created_at, updated_at
		FROM leave_records
		WHERE employee_id = $1 AND leave_type_id = $2 AND org_id = $3
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, leaveTypeID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave history: %w", err)
	}
	defer rows.Close()

	var records []leave.LeaveRecord
	for rows.Next() {
		var rec leave.LeaveRecord
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.OrgID, &rec.LeaveTypeID,
			&rec.StartDate, &rec.EndDate, &rec.Reason, &rec.Status,
			&rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// List implements leave.LeaveRecordRepository.
func (r *leaveRecordRepositoryImpl) List(ctx context.Context, filter leave.LeaveFilter, orgID string) ([]leave.LeaveRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "lr.org_id = $1"
	args := []interface{}{orgID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND lr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.LeaveTypeID != nil && *filter.LeaveTypeID != "" {
		baseWhere += fmt.Sprintf(" AND lr.leave_type_id = $%d", argIdx)
		args = append(args, *filter.LeaveTypeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND lr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Year != nil {
		baseWhere += fmt.Sprintf(" AND EXTRACT(YEAR FROM lr.start_date) = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM leave_records lr WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave records: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT lr.id, lr.employee_id, lr.org_id, lr.leave_type_id,
			   lr.start_date, lr.end_date, lr.reason, lr.status,
			   lr.created_at, lr.updated_at,
			   lt.name AS leave_type_name
		FROM leave_records lr
		LEFT JOIN leave_types lt ON lt.id = lr.leave_type_id
		WHERE %s
		ORDER BY lr.start_date DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leave records: %w", err)
	}
	defer rows.Close()

	var records []leave.LeaveRecord
	for rows.Next() {
		var rec leave.LeaveRecord
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.OrgID, &rec.LeaveTypeID,
			&rec.StartDate, &rec.EndDate, &rec.Reason, &rec.Status,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.LeaveTypeName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// UpdateStatus implements leave.LeaveRecordRepository.
func (r *leaveRecordRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.LeaveStatus, orgID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_records
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND org_id = $3
	`

	tag, err := q.Exec(ctx, query, status, id, orgID)
	if err != nil {
		return fmt.Errorf("failed to update leave status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}

	return nil
}
