package leave

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/worklane-hq/orgtime-backend-go/internal/domain/leave"
	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/claims"
	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/database"
	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/locker"
	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/validator"
	"github.com/worklane-hq/orgtime-backend-go/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveTypeRepository
	leave.LeaveRecordRepository
	locks *locker.KeyedLocker
}

func NewLeaveService(
	db *database.DB,
	leaveTypeRepo leave.LeaveTypeRepository,
	leaveRecordRepo leave.LeaveRecordRepository,
	locks *locker.KeyedLocker,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                    db,
		LeaveTypeRepository:   leaveTypeRepo,
		LeaveRecordRepository: leaveRecordRepo,
		locks:                 locks,
	}
}

// allowanceKey serializes admission checks per (employee, leave type) so two
// concurrent submissions cannot both observe "remaining > 0".
func allowanceKey(employeeID string, leaveTypeID string) string {
	return employeeID + "|" + leaveTypeID
}

// CreateLeaveType implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateLeaveType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	cl, err := claims.FromContext(ctx)
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	lt := leave.LeaveType{
		ID:          uuid.NewString(),
		OrgID:       cl.OrgID,
		Name:        req.Name,
		MaxPerMonth: req.MaxPerMonth,
		MaxPerYear:  req.MaxPerYear,
		IsPaid:      req.IsPaid,
	}

	created, err := s.LeaveTypeRepository.Create(ctx, lt)
	if err != nil {
		return leave.LeaveTypeResponse{}, fmt.Errorf("failed to create leave type: %w", err)
	}

	return mapLeaveTypeToResponse(created), nil
}

// ListLeaveTypes implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveTypes(ctx context.Context) ([]leave.LeaveTypeResponse, error) {
	cl, err := claims.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	types, err := s.LeaveTypeRepository.List(ctx, cl.OrgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	responses := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, lt := range types {
		responses = append(responses, mapLeaveTypeToResponse(lt))
	}
	return responses, nil
}

// DeleteLeaveType implements leave.LeaveService.
func (s *LeaveServiceImpl) DeleteLeaveType(ctx context.Context, id string) error {
	cl, err := claims.FromContext(ctx)
	if err != nil {
		return err
	}

	return s.LeaveTypeRepository.Delete(ctx, id, cl.OrgID)
}

// Submit implements leave.LeaveService. The allowance check and the insert
// run under a per-(employee, leave type) lock and one transaction, closing
// the check-then-act window between two concurrent submissions.
func (s *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	cl, err := claims.FromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID, cl.OrgID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	unlock := s.locks.Lock(allowanceKey(cl.EmployeeID, leaveType.ID))
	defer unlock()

	var created leave.LeaveRecord
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		history, err := s.LeaveRecordRepository.ListByEmployeeAndType(txCtx, cl.EmployeeID, leaveType.ID, cl.OrgID)
		if err != nil {
			return fmt.Errorf("failed to load leave history: %w", err)
		}

		entitlement := CalculateRemaining(history, cl.EmployeeID, leaveType, req.ParsedStart)
		if !Admissible(entitlement) {
			return leave.ErrAllowanceExhausted
		}

		record := leave.LeaveRecord{
			ID:          uuid.NewString(),
			EmployeeID:  cl.EmployeeID,
			OrgID:       cl.OrgID,
			LeaveTypeID: leaveType.ID,
			StartDate:   req.ParsedStart,
			EndDate:     req.ParsedEnd,
			Reason:      req.Reason,
			Status:      leave.LeaveStatusPending,
		}

		created, err = s.LeaveRecordRepository.Create(txCtx, record)
		if err != nil {
			return fmt.Errorf("failed to create leave record: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return mapLeaveToResponse(created), nil
}

// Transition implements leave.LeaveService.
func (s *LeaveServiceImpl) Transition(ctx context.Context, req leave.TransitionLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	cl, err := claims.FromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	target := leave.LeaveStatus(req.Status)
	if !target.Valid() {
		return leave.LeaveResponse{}, leave.ErrUnknownStatus
	}

	record, err := s.LeaveRecordRepository.GetByID(ctx, req.ID, cl.OrgID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	if !record.Status.CanTransition(target) {
		return leave.LeaveResponse{}, leave.ErrInvalidTransition
	}

	if err := s.LeaveRecordRepository.UpdateStatus(ctx, record.ID, target, cl.OrgID); err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to update leave status: %w", err)
	}

	record.Status = target
	return mapLeaveToResponse(record), nil
}

// GetLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeave(ctx context.Context, id string) (leave.LeaveResponse, error) {
	cl, err := claims.FromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	record, err := s.LeaveRecordRepository.GetByID(ctx, id, cl.OrgID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return mapLeaveToResponse(record), nil
}

// ListLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaves(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeavesResponse, error) {
	cl, err := claims.FromContext(ctx)
	if err != nil {
		return leave.ListLeavesResponse{}, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	records, total, err := s.LeaveRecordRepository.List(ctx, filter, cl.OrgID)
	if err != nil {
		return leave.ListLeavesResponse{}, fmt.Errorf("failed to list leave records: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, mapLeaveToResponse(record))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return leave.ListLeavesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Leaves:     responses,
	}, nil
}

// Entitlement implements leave.LeaveService.
func (s *LeaveServiceImpl) Entitlement(ctx context.Context, leaveTypeID string, date string) (leave.EntitlementResponse, error) {
	cl, err := claims.FromContext(ctx)
	if err != nil {
		return leave.EntitlementResponse{}, err
	}

	candidate, ok := validator.IsValidDate(date)
	if !ok {
		candidate = time.Now().UTC()
	}

	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, leaveTypeID, cl.OrgID)
	if err != nil {
		return leave.EntitlementResponse{}, err
	}

	history, err := s.LeaveRecordRepository.ListByEmployeeAndType(ctx, cl.EmployeeID, leaveType.ID, cl.OrgID)
	if err != nil {
		return leave.EntitlementResponse{}, fmt.Errorf("failed to load leave history: %w", err)
	}

	entitlement := CalculateRemaining(history, cl.EmployeeID, leaveType, candidate)

	return leave.EntitlementResponse{
		LeaveTypeID:        leaveType.ID,
		Date:               candidate.Format("2006-01-02"),
		UsedThisMonth:      entitlement.UsedThisMonth,
		UsedThisYear:       entitlement.UsedThisYear,
		RemainingThisMonth: entitlement.RemainingThisMonth,
		RemainingThisYear:  entitlement.RemainingThisYear,
		MaxConsecutiveDays: MaxConsecutiveDays(entitlement),
	}, nil
}

func mapLeaveTypeToResponse(lt leave.LeaveType) leave.LeaveTypeResponse {
	return leave.LeaveTypeResponse{
		ID:          lt.ID,
		Name:        lt.Name,
		MaxPerMonth: lt.MaxPerMonth,
		MaxPerYear:  lt.MaxPerYear,
		IsPaid:      lt.IsPaid,
	}
}

func mapLeaveToResponse(record leave.LeaveRecord) leave.LeaveResponse {
	return leave.LeaveResponse{
		ID:            record.ID,
		EmployeeID:    record.EmployeeID,
		LeaveTypeID:   record.LeaveTypeID,
		LeaveTypeName: record.LeaveTypeName,
		StartDate:     record.StartDate.Format("2006-01-02"),
		EndDate:       record.EndDate.Format("2006-01-02"),
		Reason:        record.Reason,
		Status:        string(record.Status),
		CreatedAt:     record.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     record.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
