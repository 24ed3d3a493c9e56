package staff

import "context"

// StaffService defines business logic for the staff directory
type StaffService interface {
	// ListStaff lists staff filtered by department, active flag and free-text search, ordered by name
	ListStaff(ctx context.Context, filter StaffFilter) ([]StaffResponse, error)

	// GetStaff retrieves a single staff member by internal ID
	GetStaff(ctx context.Context, id string) (StaffResponse, error)

	// CreateStaff creates a staff member, rejecting a duplicate staffId
	CreateStaff(ctx context.Context, req CreateStaffRequest) (StaffResponse, error)

	// UpdateStaff applies a partial update, re-checking staffId uniqueness when it changes
	UpdateStaff(ctx context.Context, req UpdateStaffRequest) (StaffResponse, error)

	// DeleteStaff permanently removes a staff member. Attendance records are kept.
	DeleteStaff(ctx context.Context, id string) error

	// ListDepartments returns departments that currently have staff
	ListDepartments(ctx context.Context) ([]Department, error)
}
