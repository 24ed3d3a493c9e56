package postgresql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dayKey := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: attendanceStaffDayKey}
	primaryKey := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "staff_pkey"}
	badUUID := &pgconn.PgError{Code: "22P02"}

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{"named constraint", dayKey, attendanceStaffDayKey, true},
		{"wrapped", fmt.Errorf("failed to update attendance: %w", dayKey), attendanceStaffDayKey, true},
		{"other constraint", primaryKey, staffStaffIDKey, false},
		{"other sqlstate", badUUID, staffStaffIDKey, false},
		{"not a pg error", errors.New("connection refused"), usersEmailKey, false},
		{"nil", nil, usersEmailKey, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err, tt.constraint))
		})
	}
}
