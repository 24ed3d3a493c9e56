package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/staff"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

// bulkWorkers bounds concurrent upserts of one bulk request.
const bulkWorkers = 8

// StaffLookup is the part of the staff directory attendance marking needs.
type StaffLookup interface {
	ExistsByStaffID(ctx context.Context, staffID string) (bool, error)
}

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	staffLookup    StaffLookup
	loc            *time.Location
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, staffLookup StaffLookup, loc *time.Location) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		staffLookup:    staffLookup,
		loc:            loc,
	}
}

// MarkAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, bool, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, false, err
	}

	att, created, err := s.mark(ctx, req.StaffID, s.parseDay(req.Date), req.Status, req.Notes)
	if err != nil {
		return attendance.AttendanceResponse{}, false, err
	}
	return attendance.ToResponse(att), created, nil
}

// BulkMarkAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) BulkMarkAttendance(ctx context.Context, req attendance.BulkMarkAttendanceRequest) (attendance.BulkMarkAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BulkMarkAttendanceResponse{}, err
	}

	day := s.parseDay(req.Date)
	results := make([]attendance.BulkMarkResult, len(req.Entries))

	var g errgroup.Group
	g.SetLimit(bulkWorkers)
	for i, entry := range req.Entries {
		g.Go(func() error {
			result := attendance.BulkMarkResult{StaffID: entry.StaffID, Status: entry.Status}
			att, created, err := s.mark(ctx, entry.StaffID, day, entry.Status, entry.Notes)
			if err != nil {
				msg := err.Error()
				result.Error = &msg
				if !errors.Is(err, staff.ErrStaffNotFound) {
					slog.Error("bulk mark entry failed", "staff_id", entry.StaffID, "error", err)
				}
			} else {
				result.AttendanceID = &att.ID
				result.Created = created
			}
			results[i] = result
			return nil
		})
	}
	_ = g.Wait()

	resp := attendance.BulkMarkAttendanceResponse{
		Date:    calendar.FormatDay(day),
		Results: results,
	}
	for _, r := range results {
		if r.Error != nil {
			resp.Failed++
		} else {
			resp.Applied++
		}
	}
	return resp, nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.Find(ctx, filter.ToQuery(s.loc))
	if err != nil {
		return nil, fmt.Errorf("failed to find attendance: %w", err)
	}
	return attendance.ToResponses(records), nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	// ids are UUIDs; anything else cannot name a record
	if !validator.IsValidUUID(id) {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}
	att, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(att), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if !validator.IsValidUUID(req.ID) {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	current, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.Date != nil {
		current.Date = s.parseDay(*req.Date)
	}
	if req.Status != nil {
		current.Status = *req.Status
	}
	if req.Notes != nil {
		current.Notes = *req.Notes
	}

	updated, err := s.attendanceRepo.Update(ctx, current)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(updated), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return attendance.ErrAttendanceNotFound
	}
	return s.attendanceRepo.Delete(ctx, id)
}

func (s *AttendanceServiceImpl) mark(ctx context.Context, staffID string, day time.Time, status attendance.Status, notes string) (attendance.Attendance, bool, error) {
	exists, err := s.staffLookup.ExistsByStaffID(ctx, staffID)
	if err != nil {
		return attendance.Attendance{}, false, fmt.Errorf("failed to check staff: %w", err)
	}
	if !exists {
		return attendance.Attendance{}, false, fmt.Errorf("staff %s: %w", staffID, staff.ErrStaffNotFound)
	}

	att, created, err := s.attendanceRepo.UpsertByStaffAndDay(ctx, staffID, day, status, notes)
	if err != nil {
		return attendance.Attendance{}, false, fmt.Errorf("failed to mark attendance: %w", err)
	}
	return att, created, nil
}

// parseDay expects an already validated value.
func (s *AttendanceServiceImpl) parseDay(value string) time.Time {
	day, _ := validator.ParseDay(value, s.loc)
	return day
}
