package report

import (
	"context"

	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/staff"
)

// StaffDirectory is the read side of the staff repository used by reports.
type StaffDirectory interface {
	List(ctx context.Context, filter staff.StaffFilter) ([]staff.Staff, error)
}

// AttendanceStore is the read side of the attendance repository used by reports.
type AttendanceStore interface {
	Find(ctx context.Context, query attendance.AttendanceQuery) ([]attendance.Attendance, error)
}
