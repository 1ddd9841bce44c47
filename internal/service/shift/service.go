package shift

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/worklane-hq/orgtime-backend-go/internal/domain/shift"
	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/claims"
	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/database"
)

type CatalogServiceImpl struct {
	db *database.DB
	shift.ShiftRepository
	shift.BreakTypeRepository
}

func NewCatalogService(
	db *database.DB,
	shiftRepo shift.ShiftRepository,
	breakTypeRepo shift.BreakTypeRepository,
) shift.CatalogService {
	return &CatalogServiceImpl{
		db:                  db,
		ShiftRepository:     shiftRepo,
		BreakTypeRepository: breakTypeRepo,
	}
}

// CreateShift implements shift.CatalogService.
func (s *CatalogServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	cl, err := claims.FromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	created, err := s.ShiftRepository.Create(ctx, shift.Shift{
		ID:                     uuid.NewString(),
		OrgID:                  cl.OrgID,
		Name:                   req.Name,
		StartTime:              req.ParsedStart,
		EndTime:                req.ParsedEnd,
		LateGraceMinutes:       req.LateGraceMinutes,
		LateFinePerMinute:      req.LateFinePerMinute,
		OvertimePricePerMinute: req.OvertimePricePerMinute,
		Position:               req.Position,
	})
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return mapShiftToResponse(created), nil
}

// ListShifts implements shift.CatalogService.
func (s *CatalogServiceImpl) ListShifts(ctx context.Context) ([]shift.ShiftResponse, error) {
	cl, err := claims.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	shifts, err := s.ShiftRepository.List(ctx, cl.OrgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, mapShiftToResponse(sh))
	}

	return responses, nil
}

// GetShift implements shift.CatalogService.
func (s *CatalogServiceImpl) GetShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	cl, err := claims.FromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	sh, err := s.ShiftRepository.GetByID(ctx, id, cl.OrgID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return mapShiftToResponse(sh), nil
}

// DeleteShift implements shift.CatalogService.
func (s *CatalogServiceImpl) DeleteShift(ctx context.Context, id string) error {
	cl, err := claims.FromContext(ctx)
	if err != nil {
		return err
	}

	return s.ShiftRepository.Delete(ctx, id, cl.OrgID)
}

// CreateBreakType implements shift.CatalogService.
func (s *CatalogServiceImpl) CreateBreakType(ctx context.Context, req shift.CreateBreakTypeRequest) (shift.BreakTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.BreakTypeResponse{}, err
	}

	cl, err := claims.FromContext(ctx)
	if err != nil {
		return shift.BreakTypeResponse{}, err
	}

	created, err := s.BreakTypeRepository.Create(ctx, shift.BreakType{
		ID:     uuid.NewString(),
		OrgID:  cl.OrgID,
		Name:   req.Name,
		IsPaid: req.IsPaid,
	})
	if err != nil {
		return shift.BreakTypeResponse{}, fmt.Errorf("failed to create break type: %w", err)
	}

	return mapBreakTypeToResponse(created), nil
}

// ListBreakTypes implements shift.CatalogService.
func (s *CatalogServiceImpl) ListBreakTypes(ctx context.Context) ([]shift.BreakTypeResponse, error) {
	cl, err := claims.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	breakTypes, err := s.BreakTypeRepository.List(ctx, cl.OrgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list break types: %w", err)
	}

	responses := make([]shift.BreakTypeResponse, 0, len(breakTypes))
	for _, bt := range breakTypes {
		responses = append(responses, mapBreakTypeToResponse(bt))
	}

	return responses, nil
}

// DeleteBreakType implements shift.CatalogService.
func (s *CatalogServiceImpl) DeleteBreakType(ctx context.Context, id string) error {
	cl, err := claims.FromContext(ctx)
	if err != nil {
		return err
	}

	return s.BreakTypeRepository.Delete(ctx, id, cl.OrgID)
}

func mapShiftToResponse(sh shift.Shift) shift.ShiftResponse {
	return shift.ShiftResponse{
		ID:                     sh.ID,
		Name:                   sh.Name,
		StartTime:              sh.StartTime.Format("15:04"),
		EndTime:                sh.EndTime.Format("15:04"),
		LateGraceMinutes:       sh.LateGraceMinutes,
		LateFinePerMinute:      sh.LateFinePerMinute,
		OvertimePricePerMinute: sh.OvertimePricePerMinute,
		Position:               sh.Position,
	}
}

func mapBreakTypeToResponse(bt shift.BreakType) shift.BreakTypeResponse {
	return shift.BreakTypeResponse{
		ID:     bt.ID,
		Name:   bt.Name,
		IsPaid: bt.IsPaid,
	}
}
