package http

import (
	"net/http"
	"testing"

	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceHandler_MarkCreatesThenOverwrites(t *testing.T) {
	s := newTestServer(t)
	admin := s.register("Principal", "principal@example.com").Token
	s.createStaff(admin, "ST-001", "Arun", "matric")

	rec := s.mark(admin, "ST-001", "2024-06-03", attendance.StatusPresent)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var first attendance.AttendanceResponse
	decodeEnvelope(t, rec, &first)
	assert.Equal(t, "2024-06-03", first.Date)
	require.NotNil(t, first.Staff)
	assert.Equal(t, "Arun", first.Staff.Name)

	rec = s.mark(admin, "ST-001", "2024-06-03", attendance.StatusAbsent)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var second attendance.AttendanceResponse
	decodeEnvelope(t, rec, &second)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, attendance.StatusAbsent, second.Status)
	assert.Len(t, s.store.records, 1)
}

func TestAttendanceHandler_MarkRejects(t *testing.T) {
	s := newTestServer(t)
	admin := s.register("Principal", "principal@example.com").Token
	s.createStaff(admin, "ST-001", "Arun", "matric")

	tests := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{"unknown staff", map[string]any{"staffId": "ST-404", "date": "2024-06-03"}, http.StatusNotFound},
		{"bad date", map[string]any{"staffId": "ST-001", "date": "03/06/2024"}, http.StatusUnprocessableEntity},
		{"bad status", map[string]any{"staffId": "ST-001", "date": "2024-06-03", "status": "late"}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/api/attendance", tt.body, withToken(admin))
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
	assert.Empty(t, s.store.records)
}

func TestAttendanceHandler_BulkMark(t *testing.T) {
	s := newTestServer(t)
	admin := s.register("Principal", "principal@example.com").Token
	s.createStaff(admin, "ST-001", "Arun", "matric")
	s.createStaff(admin, "ST-002", "Bala", "stateboard")

	rec := s.do(http.MethodPost, "/api/attendance/bulk", map[string]any{
		"date": "2024-06-03",
		"entries": []map[string]any{
			{"staffId": "ST-001", "status": "present"},
			{"staffId": "ST-002", "status": "leave"},
			{"staffId": "ST-404"},
		},
	}, withToken(admin))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result attendance.BulkMarkAttendanceResponse
	decodeEnvelope(t, rec, &result)
	assert.Equal(t, 2, result.Applied)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Results, 3)
	assert.NotNil(t, result.Results[2].Error)
	assert.Len(t, s.store.records, 2)
}

func TestAttendanceHandler_ListGetUpdateDelete(t *testing.T) {
	s := newTestServer(t)
	admin := s.register("Principal", "principal@example.com").Token
	clerk := s.register("Clerk", "clerk@example.com").Token
	s.createStaff(admin, "ST-001", "Arun", "matric")
	s.createStaff(admin, "ST-002", "Bala", "stateboard")

	require.Equal(t, http.StatusCreated, s.mark(clerk, "ST-001", "2024-06-03", attendance.StatusPresent).Code)
	require.Equal(t, http.StatusCreated, s.mark(clerk, "ST-002", "2024-06-03", attendance.StatusAbsent).Code)
	rec := s.mark(clerk, "ST-001", "2024-06-04", attendance.StatusPresent)
	require.Equal(t, http.StatusCreated, rec.Code)
	var later attendance.AttendanceResponse
	decodeEnvelope(t, rec, &later)

	t.Run("list newest first", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/attendance", nil, withToken(clerk))
		require.Equal(t, http.StatusOK, rec.Code)
		var list []attendance.AttendanceResponse
		env := decodeEnvelope(t, rec, &list)
		require.Len(t, list, 3)
		assert.Equal(t, "2024-06-04", list[0].Date)
		assert.Equal(t, 3, env.Meta.Count)
	})

	t.Run("list filtered", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/attendance?startDate=2024-06-03&endDate=2024-06-03&department=stateboard", nil, withToken(clerk))
		require.Equal(t, http.StatusOK, rec.Code)
		var list []attendance.AttendanceResponse
		decodeEnvelope(t, rec, &list)
		require.Len(t, list, 1)
		assert.Equal(t, "ST-002", list[0].StaffID)
	})

	t.Run("list bad status", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/attendance?status=late", nil, withToken(clerk))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("get", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/attendance/"+later.ID, nil, withToken(clerk))
		require.Equal(t, http.StatusOK, rec.Code)
		rec = s.do(http.MethodGet, "/api/attendance/missing", nil, withToken(clerk))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("update onto a marked day conflicts", func(t *testing.T) {
		rec := s.do(http.MethodPut, "/api/attendance/"+later.ID, map[string]any{"date": "2024-06-03"}, withToken(clerk))
		assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	})

	t.Run("update status", func(t *testing.T) {
		rec := s.do(http.MethodPut, "/api/attendance/"+later.ID, map[string]any{"status": "halfday", "notes": "left at noon"}, withToken(clerk))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got attendance.AttendanceResponse
		decodeEnvelope(t, rec, &got)
		assert.Equal(t, attendance.StatusHalfday, got.Status)
		assert.Equal(t, "left at noon", got.Notes)
	})

	t.Run("delete is admin only", func(t *testing.T) {
		rec := s.do(http.MethodDelete, "/api/attendance/"+later.ID, nil, withToken(clerk))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		rec = s.do(http.MethodDelete, "/api/attendance/"+later.ID, nil, withToken(admin))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, s.store.records, 2)
	})
}

func TestAttendanceHandler_NonUUIDIDIsNotFound(t *testing.T) {
	s := newTestServer(t)
	admin := s.register("Principal", "principal@example.com").Token
	s.createStaff(admin, "ST-001", "Arun", "matric")
	require.Equal(t, http.StatusCreated, s.mark(admin, "ST-001", "2024-06-03", attendance.StatusPresent).Code)

	path := "/api/attendance/not-a-uuid"
	rec := s.do(http.MethodGet, path, nil, withToken(admin))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPut, path, map[string]any{"status": "absent"}, withToken(admin))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete, path, nil, withToken(admin))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Len(t, s.store.records, 1)
}

func TestAttendanceHandler_OrphanedRecordHasNoStaff(t *testing.T) {
	s := newTestServer(t)
	admin := s.register("Principal", "principal@example.com").Token
	member := s.createStaff(admin, "ST-001", "Arun", "matric")

	rec := s.mark(admin, "ST-001", "2024-06-03", attendance.StatusPresent)
	require.Equal(t, http.StatusCreated, rec.Code)
	var marked attendance.AttendanceResponse
	decodeEnvelope(t, rec, &marked)

	require.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/api/staff/"+member.ID, nil, withToken(admin)).Code)

	rec = s.do(http.MethodGet, "/api/attendance/"+marked.ID, nil, withToken(admin))
	require.Equal(t, http.StatusOK, rec.Code)
	var got attendance.AttendanceResponse
	decodeEnvelope(t, rec, &got)
	assert.Nil(t, got.Staff)
	assert.Equal(t, "ST-001", got.StaffID)
}
