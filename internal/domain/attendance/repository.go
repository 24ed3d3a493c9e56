package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// There is at most one record per (staff_id, date); UpsertByStaffAndDay is the only way
// a record is created.
type AttendanceRepository interface {
	// Find returns records matching the query, newest day first then by staff ID
	Find(ctx context.Context, query AttendanceQuery) ([]Attendance, error)

	// GetByID retrieves a record with its joined staff fields
	GetByID(ctx context.Context, id string) (Attendance, error)

	// UpsertByStaffAndDay creates the record for staffID on day, or overwrites the status of
	// the existing one. Notes replace the stored notes only when non-empty.
	// created reports whether a new row was inserted.
	UpsertByStaffAndDay(ctx context.Context, staffID string, day time.Time, status Status, notes string) (att Attendance, created bool, err error)

	// Update rewrites date, status and notes of an existing record.
	// Returns ErrAttendanceExists when the new date collides with another record.
	Update(ctx context.Context, att Attendance) (Attendance, error)

	// Delete removes a record permanently
	Delete(ctx context.Context, id string) error
}

// AttendanceQuery filters Find. From/To are inclusive calendar days.
type AttendanceQuery struct {
	From       *time.Time
	To         *time.Time
	StaffID    *string
	Department *string
	Status     *Status
}
