package staff

import "context"

// StaffRepository is the staff directory. Lookups by ID use the internal record id,
// lookups by StaffID use the business key.
type StaffRepository interface {
	List(ctx context.Context, filter StaffFilter) ([]Staff, error)
	GetByID(ctx context.Context, id string) (Staff, error)
	GetByStaffID(ctx context.Context, staffID string) (Staff, error)
	ExistsByStaffID(ctx context.Context, staffID string) (bool, error)
	Create(ctx context.Context, newStaff Staff) (Staff, error)
	Update(ctx context.Context, updated Staff) (Staff, error)
	Delete(ctx context.Context, id string) error

	// Departments returns the distinct departments currently in use.
	Departments(ctx context.Context) ([]Department, error)
}
