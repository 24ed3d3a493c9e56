package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// Staff fields are joined by business key so records outlive their staff row.
const attendanceSelect = `
	SELECT a.id, a.staff_id, a.date, a.status, a.notes, a.marked_at, a.updated_at,
		   s.name, s.department, s.cabin_no
	FROM attendance a
	LEFT JOIN staff s ON s.staff_id = a.staff_id
`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	var status string
	err := row.Scan(
		&att.ID, &att.StaffID, &att.Date, &status, &att.Notes, &att.MarkedAt, &att.UpdatedAt,
		&att.StaffName, &att.StaffDepartment, &att.StaffCabinNo,
	)
	att.Status = attendance.Status(status)
	return att, err
}

// Find implements attendance.AttendanceRepository.
func (a *attendanceRepository) Find(ctx context.Context, query attendance.AttendanceQuery) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if query.From != nil {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d::date", argIdx))
		args = append(args, calendar.FormatDay(*query.From))
		argIdx++
	}
	if query.To != nil {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d::date", argIdx))
		args = append(args, calendar.FormatDay(*query.To))
		argIdx++
	}
	if query.StaffID != nil {
		conditions = append(conditions, fmt.Sprintf("a.staff_id = $%d", argIdx))
		args = append(args, *query.StaffID)
		argIdx++
	}
	if query.Department != nil {
		conditions = append(conditions, fmt.Sprintf("s.department = $%d", argIdx))
		args = append(args, *query.Department)
		argIdx++
	}
	if query.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, string(*query.Status))
		argIdx++
	}

	sql := attendanceSelect + fmt.Sprintf(`
		WHERE %s
		ORDER BY a.date DESC, a.staff_id ASC
	`, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	att, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return att, nil
}

// UpsertByStaffAndDay implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpsertByStaffAndDay(ctx context.Context, staffID string, day time.Time, status attendance.Status, notes string) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, a.db)

	// xmax is zero only for a freshly inserted tuple
	query := `
		INSERT INTO attendance (id, staff_id, date, status, notes, marked_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2::date, $3, $4, NOW(), NOW())
		ON CONFLICT (staff_id, date) DO UPDATE
		SET status = EXCLUDED.status,
			notes = CASE WHEN EXCLUDED.notes <> '' THEN EXCLUDED.notes ELSE attendance.notes END,
			updated_at = NOW()
		RETURNING id, (xmax = 0)
	`

	var id string
	var created bool
	err := q.QueryRow(ctx, query, staffID, calendar.FormatDay(day), string(status), notes).Scan(&id, &created)
	if err != nil {
		return attendance.Attendance{}, false, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	att, err := a.GetByID(ctx, id)
	if err != nil {
		return attendance.Attendance{}, false, err
	}
	return att, created, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance
		SET date = $2::date, status = $3, notes = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, att.ID, calendar.FormatDay(att.Date), string(att.Status), att.Notes)
	if err != nil {
		if isUniqueViolation(err, attendanceStaffDayKey) {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}

	return a.GetByID(ctx, att.ID)
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
