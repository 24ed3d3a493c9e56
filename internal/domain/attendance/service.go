package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// MarkAttendance records a staff member's status for a day (upsert-by-day).
	// created is false when an existing record for that day was updated.
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (result AttendanceResponse, created bool, err error)

	// BulkMarkAttendance marks many staff for one day. Entries are independent; a failing
	// entry does not roll back the others.
	BulkMarkAttendance(ctx context.Context, req BulkMarkAttendanceRequest) (BulkMarkAttendanceResponse, error)

	// ListAttendance retrieves records with filters
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)

	// GetAttendance retrieves a single record by ID
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// UpdateAttendance edits date, status or notes of a record
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// DeleteAttendance removes a record
	DeleteAttendance(ctx context.Context, id string) error
}
