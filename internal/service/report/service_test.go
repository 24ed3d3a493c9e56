package report

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/staff"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStaffDirectory struct {
	staff   []staff.Staff
	err     error
	filters []staff.StaffFilter
	mu      sync.Mutex
}

func (f *fakeStaffDirectory) List(ctx context.Context, filter staff.StaffFilter) ([]staff.Staff, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	return f.staff, f.err
}

type fakeAttendanceStore struct {
	records []attendance.Attendance
	err     error
	queries []attendance.AttendanceQuery
	mu      sync.Mutex
}

// Find applies the date window the way the database does.
func (f *fakeAttendanceStore) Find(ctx context.Context, q attendance.AttendanceQuery) ([]attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	var out []attendance.Attendance
	for _, r := range f.records {
		if q.From != nil && r.Date.Before(*q.From) {
			continue
		}
		if q.To != nil && r.Date.After(*q.To) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type fakeWriter struct {
	rendered []report.Export
	err      error
}

func (w *fakeWriter) Render(export report.Export) ([]byte, error) {
	w.rendered = append(w.rendered, export)
	if w.err != nil {
		return nil, w.err
	}
	return []byte("xlsx"), nil
}

func (w *fakeWriter) ContentType() string { return "application/test" }

func newTestReportService() (*ReportServiceImpl, *fakeStaffDirectory, *fakeAttendanceStore, *fakeWriter) {
	dir := &fakeStaffDirectory{}
	store := &fakeAttendanceStore{}
	writer := &fakeWriter{}
	svc := NewReportService(dir, store, writer, time.UTC).(*ReportServiceImpl)
	return svc, dir, store, writer
}

func TestReportService_DailyReport(t *testing.T) {
	// Setup
	svc, dir, store, _ := newTestReportService()
	dir.staff = []staff.Staff{member("A", "Alice"), member("B", "Bob"), member("C", "Carol")}
	store.records = []attendance.Attendance{
		mark("A", "2024-06-03", attendance.StatusPresent),
		mark("B", "2024-06-03", attendance.StatusAbsent),
		mark("C", "2024-06-04", attendance.StatusPresent),
	}

	// Act
	got, err := svc.DailyReport(context.Background(), report.DailyReportRequest{Date: "2024-06-03"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalStaff)
	assert.Equal(t, 1, got.Present)
	assert.Equal(t, 1, got.Absent)
	assert.Equal(t, 1, got.Unmarked)

	require.Len(t, dir.filters, 1)
	require.NotNil(t, dir.filters[0].Active)
	assert.True(t, *dir.filters[0].Active)

	require.Len(t, store.queries, 1)
	assert.Equal(t, day("2024-06-03"), *store.queries[0].From)
	assert.Equal(t, day("2024-06-03"), *store.queries[0].To)
}

func TestReportService_DailyReport_MissingDate(t *testing.T) {
	svc, dir, store, _ := newTestReportService()

	_, err := svc.DailyReport(context.Background(), report.DailyReportRequest{})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "date is required", verrs.ToMap()["date"])
	assert.Empty(t, dir.filters)
	assert.Empty(t, store.queries)
}

func TestReportService_WeeklyReport(t *testing.T) {
	svc, dir, store, _ := newTestReportService()
	store.records = []attendance.Attendance{
		mark("A", "2024-06-02", attendance.StatusPresent), // previous Sunday
		mark("A", "2024-06-05", attendance.StatusPresent),
		mark("A", "2024-06-09", attendance.StatusAbsent),
	}

	got, err := svc.WeeklyReport(context.Background(), report.WeeklyReportRequest{Date: "2024-06-06"})

	require.NoError(t, err)
	assert.Equal(t, "2024-06-03", got.Summary.StartDate)
	assert.Equal(t, "2024-06-09", got.Summary.EndDate)
	assert.Equal(t, 1, got.Summary.TotalStaff)
	assert.Len(t, got.StaffAttendance["A"].Days, 2)
	assert.Empty(t, dir.filters, "weekly roster comes from records")
}

func TestReportService_MonthlyReport(t *testing.T) {
	svc, dir, store, _ := newTestReportService()
	dir.staff = []staff.Staff{member("A", "Alice")}
	store.records = markWeekdays("A", calendar.MonthBounds(2024, time.March, time.UTC), "2024-03-29")

	got, err := svc.MonthlyReport(context.Background(), report.MonthlyReportRequest{Month: 3, Year: 2024})

	require.NoError(t, err)
	assert.Equal(t, 21, got.Summary.WorkingDays)
	assert.Equal(t, 95.24, got.StaffReports[0].AttendancePercentage)
	require.Len(t, store.queries, 1)
	assert.Equal(t, day("2024-03-01"), *store.queries[0].From)
	assert.Equal(t, day("2024-03-31"), *store.queries[0].To)
}

func TestReportService_MonthlyReport_Invalid(t *testing.T) {
	svc, _, _, _ := newTestReportService()

	_, err := svc.MonthlyReport(context.Background(), report.MonthlyReportRequest{Month: 13, Year: 1900})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "month")
	assert.Contains(t, verrs.ToMap(), "year")
}

func TestReportService_PropagatesStoreError(t *testing.T) {
	svc, dir, store, _ := newTestReportService()
	dir.staff = []staff.Staff{member("A", "Alice")}
	store.err = errors.New("connection refused")

	_, err := svc.DailyReport(context.Background(), report.DailyReportRequest{Date: "2024-06-03"})

	require.Error(t, err)
	assert.ErrorIs(t, err, store.err)
}

func TestReportService_ExportReport_Windows(t *testing.T) {
	tests := []struct {
		name     string
		req      report.ExportRequest
		wantFrom string
		wantTo   string
	}{
		{"daily", report.ExportRequest{Type: report.ReportTypeDaily, StartDate: "2024-06-05"}, "2024-06-05", "2024-06-05"},
		{"weekly", report.ExportRequest{Type: report.ReportTypeWeekly, StartDate: "2024-06-05"}, "2024-06-03", "2024-06-09"},
		{"monthly", report.ExportRequest{Type: report.ReportTypeMonthly, Month: 2, Year: 2024}, "2024-02-01", "2024-02-29"},
		{"custom", report.ExportRequest{Type: report.ReportTypeCustom, StartDate: "2024-06-01", EndDate: "2024-06-15"}, "2024-06-01", "2024-06-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, store, _ := newTestReportService()

			got, err := svc.ExportReport(context.Background(), tt.req)

			require.NoError(t, err)
			assert.Equal(t, tt.req.Type, got.Type)
			require.Len(t, store.queries, 1)
			assert.Equal(t, tt.wantFrom, calendar.FormatDay(*store.queries[0].From))
			assert.Equal(t, tt.wantTo, calendar.FormatDay(*store.queries[0].To))
		})
	}
}

func TestReportService_ExportReport_ValidationBeforeFetch(t *testing.T) {
	tests := []struct {
		name  string
		req   report.ExportRequest
		field string
	}{
		{"missing type", report.ExportRequest{}, "type"},
		{"unknown type", report.ExportRequest{Type: "yearly"}, "type"},
		{"daily without date", report.ExportRequest{Type: report.ReportTypeDaily}, "startDate"},
		{"monthly without month", report.ExportRequest{Type: report.ReportTypeMonthly, Year: 2024}, "month"},
		{"custom without end", report.ExportRequest{Type: report.ReportTypeCustom, StartDate: "2024-06-01"}, "endDate"},
		{"custom reversed", report.ExportRequest{Type: report.ReportTypeCustom, StartDate: "2024-06-10", EndDate: "2024-06-01"}, "endDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, store, _ := newTestReportService()

			_, err := svc.ExportReport(context.Background(), tt.req)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
			assert.Empty(t, store.queries)
		})
	}
}

func TestReportService_GenerateExportFile(t *testing.T) {
	svc, _, store, writer := newTestReportService()
	store.records = []attendance.Attendance{mark("A", "2024-06-05", attendance.StatusPresent)}

	file, err := svc.GenerateExportFile(context.Background(), report.ExportRequest{Type: report.ReportTypeDaily, StartDate: "2024-06-05"})

	require.NoError(t, err)
	assert.Equal(t, "daily_attendance_report_2024-06-05.xlsx", file.Filename)
	assert.Equal(t, "application/test", file.ContentType)
	assert.Equal(t, []byte("xlsx"), file.Content)
	require.Len(t, writer.rendered, 1)
	assert.Len(t, writer.rendered[0].Records, 1)
}

func TestReportService_GenerateExportFile_WriterError(t *testing.T) {
	svc, _, _, writer := newTestReportService()
	writer.err = errors.New("disk full")

	_, err := svc.GenerateExportFile(context.Background(), report.ExportRequest{Type: report.ReportTypeDaily, StartDate: "2024-06-05"})

	assert.ErrorIs(t, err, report.ErrReportGenerationFailed)
}
