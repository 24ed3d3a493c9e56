package postgresql

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// Unique constraints created by database.RunMigrations
const (
	usersEmailKey         = "users_email_key"
	staffStaffIDKey       = "staff_staff_id_key"
	attendanceStaffDayKey = "attendance_staff_day_key"
)

// isUniqueViolation reports whether err violates the named unique constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return false
	}
	return pgErr.ConstraintName == constraint
}
