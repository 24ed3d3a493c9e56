package staff

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/staff"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type StaffServiceImpl struct {
	staffRepo staff.StaffRepository
}

func NewStaffService(staffRepo staff.StaffRepository) staff.StaffService {
	return &StaffServiceImpl{
		staffRepo: staffRepo,
	}
}

// ListStaff implements staff.StaffService.
func (s *StaffServiceImpl) ListStaff(ctx context.Context, filter staff.StaffFilter) ([]staff.StaffResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	list, err := s.staffRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	responses := make([]staff.StaffResponse, 0, len(list))
	for _, st := range list {
		responses = append(responses, staff.ToResponse(st))
	}
	return responses, nil
}

// GetStaff implements staff.StaffService.
func (s *StaffServiceImpl) GetStaff(ctx context.Context, id string) (staff.StaffResponse, error) {
	if !validator.IsValidUUID(id) {
		return staff.StaffResponse{}, staff.ErrStaffNotFound
	}
	found, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return staff.StaffResponse{}, err
	}
	return staff.ToResponse(found), nil
}

// CreateStaff implements staff.StaffService.
func (s *StaffServiceImpl) CreateStaff(ctx context.Context, req staff.CreateStaffRequest) (staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.StaffResponse{}, err
	}

	exists, err := s.staffRepo.ExistsByStaffID(ctx, req.StaffID)
	if err != nil {
		return staff.StaffResponse{}, fmt.Errorf("failed to check staff ID: %w", err)
	}
	if exists {
		return staff.StaffResponse{}, staff.ErrStaffIDExists
	}

	newStaff := req.ToEntity()
	newStaff.ID = uuid.NewString()

	created, err := s.staffRepo.Create(ctx, newStaff)
	if err != nil {
		return staff.StaffResponse{}, err
	}

	slog.Info("staff created", "id", created.ID, "staff_id", created.StaffID)
	return staff.ToResponse(created), nil
}

// UpdateStaff implements staff.StaffService.
func (s *StaffServiceImpl) UpdateStaff(ctx context.Context, req staff.UpdateStaffRequest) (staff.StaffResponse, error) {
	if !validator.IsValidUUID(req.ID) {
		return staff.StaffResponse{}, staff.ErrStaffNotFound
	}
	if err := req.Validate(); err != nil {
		return staff.StaffResponse{}, err
	}

	current, err := s.staffRepo.GetByID(ctx, req.ID)
	if err != nil {
		return staff.StaffResponse{}, err
	}

	if req.StaffID != nil && *req.StaffID != current.StaffID {
		exists, err := s.staffRepo.ExistsByStaffID(ctx, *req.StaffID)
		if err != nil {
			return staff.StaffResponse{}, fmt.Errorf("failed to check staff ID: %w", err)
		}
		if exists {
			return staff.StaffResponse{}, staff.ErrStaffIDExists
		}
	}

	updated, err := s.staffRepo.Update(ctx, req.ApplyTo(current))
	if err != nil {
		return staff.StaffResponse{}, err
	}
	return staff.ToResponse(updated), nil
}

// DeleteStaff implements staff.StaffService.
func (s *StaffServiceImpl) DeleteStaff(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return staff.ErrStaffNotFound
	}
	if err := s.staffRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("staff deleted", "id", id)
	return nil
}

// ListDepartments implements staff.StaffService.
func (s *StaffServiceImpl) ListDepartments(ctx context.Context) ([]staff.Department, error) {
	departments, err := s.staffRepo.Departments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	if departments == nil {
		departments = []staff.Department{}
	}
	return departments, nil
}
