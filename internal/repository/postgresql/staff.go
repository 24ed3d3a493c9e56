package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/staff"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const staffColumns = `id, staff_id, name, department, cabin_no, year_of_joining, phone_number,
		email, designation, active, created_at, updated_at`

type staffRepositoryImpl struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepositoryImpl{db: db}
}

func scanStaff(row pgx.Row) (staff.Staff, error) {
	var s staff.Staff
	var department string
	err := row.Scan(
		&s.ID,
		&s.StaffID,
		&s.Name,
		&department,
		&s.CabinNo,
		&s.YearOfJoining,
		&s.PhoneNumber,
		&s.Email,
		&s.Designation,
		&s.Active,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	s.Department = staff.Department(department)
	return s, err
}

// List implements staff.StaffRepository.
func (r *staffRepositoryImpl) List(ctx context.Context, filter staff.StaffFilter) ([]staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.Department != nil && *filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("department = $%d", argIdx))
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", argIdx))
		args = append(args, *filter.Active)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR staff_id ILIKE $%d OR department ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+escapeLike(*filter.Search)+"%")
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM staff
		WHERE %s
		ORDER BY name ASC, staff_id ASC
	`, staffColumns, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	list := make([]staff.Staff, 0)
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		list = append(list, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// GetByID implements staff.StaffRepository.
func (r *staffRepositoryImpl) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM staff WHERE id = $1`, staffColumns)
	s, err := scanStaff(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, fmt.Errorf("failed to get staff by id: %w", err)
	}
	return s, nil
}

// GetByStaffID implements staff.StaffRepository.
func (r *staffRepositoryImpl) GetByStaffID(ctx context.Context, staffID string) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM staff WHERE staff_id = $1`, staffColumns)
	s, err := scanStaff(q.QueryRow(ctx, query, staffID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, fmt.Errorf("failed to get staff by staff id: %w", err)
	}
	return s, nil
}

// ExistsByStaffID implements staff.StaffRepository.
func (r *staffRepositoryImpl) ExistsByStaffID(ctx context.Context, staffID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM staff WHERE staff_id = $1)`, staffID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check staff id: %w", err)
	}
	return exists, nil
}

// Create implements staff.StaffRepository.
func (r *staffRepositoryImpl) Create(ctx context.Context, newStaff staff.Staff) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO staff (id, staff_id, name, department, cabin_no, year_of_joining, phone_number,
			email, designation, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING %s
	`, staffColumns)

	created, err := scanStaff(q.QueryRow(ctx, query,
		newStaff.ID,
		newStaff.StaffID,
		newStaff.Name,
		string(newStaff.Department),
		newStaff.CabinNo,
		newStaff.YearOfJoining,
		newStaff.PhoneNumber,
		newStaff.Email,
		newStaff.Designation,
		newStaff.Active,
	))
	if err != nil {
		if isUniqueViolation(err, staffStaffIDKey) {
			return staff.Staff{}, staff.ErrStaffIDExists
		}
		return staff.Staff{}, fmt.Errorf("failed to create staff: %w", err)
	}
	return created, nil
}

// Update implements staff.StaffRepository.
func (r *staffRepositoryImpl) Update(ctx context.Context, updated staff.Staff) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE staff
		SET staff_id = $2, name = $3, department = $4, cabin_no = $5, year_of_joining = $6,
			phone_number = $7, email = $8, designation = $9, active = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, staffColumns)

	s, err := scanStaff(q.QueryRow(ctx, query,
		updated.ID,
		updated.StaffID,
		updated.Name,
		string(updated.Department),
		updated.CabinNo,
		updated.YearOfJoining,
		updated.PhoneNumber,
		updated.Email,
		updated.Designation,
		updated.Active,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		if isUniqueViolation(err, staffStaffIDKey) {
			return staff.Staff{}, staff.ErrStaffIDExists
		}
		return staff.Staff{}, fmt.Errorf("failed to update staff: %w", err)
	}
	return s, nil
}

// Delete implements staff.StaffRepository. Attendance rows referencing the staff are kept.
func (r *staffRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return staff.ErrStaffNotFound
	}
	return nil
}

// Departments implements staff.StaffRepository.
func (r *staffRepositoryImpl) Departments(ctx context.Context) ([]staff.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT DISTINCT department FROM staff ORDER BY department`)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	departments := make([]staff.Department, 0)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, staff.Department(d))
	}
	return departments, rows.Err()
}

// escapeLike escapes LIKE wildcards so search input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
