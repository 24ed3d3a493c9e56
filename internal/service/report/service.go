package report

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/staff"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	staffDir report.StaffDirectory
	store    report.AttendanceStore
	writer   report.SpreadsheetWriter
	loc      *time.Location
}

func NewReportService(staffDir report.StaffDirectory, store report.AttendanceStore, writer report.SpreadsheetWriter, loc *time.Location) report.ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportServiceImpl{
		staffDir: staffDir,
		store:    store,
		writer:   writer,
		loc:      loc,
	}
}

// DailyReport implements report.ReportService.
func (s *ReportServiceImpl) DailyReport(ctx context.Context, req report.DailyReportRequest) (report.DailyReport, error) {
	if err := req.Validate(); err != nil {
		return report.DailyReport{}, err
	}

	day := s.parseDay(req.Date)
	activeStaff, records, err := s.fetch(ctx, calendar.DayBounds(day), true)
	if err != nil {
		return report.DailyReport{}, err
	}

	return BuildDailyReport(day, records, activeStaff), nil
}

// WeeklyReport implements report.ReportService.
func (s *ReportServiceImpl) WeeklyReport(ctx context.Context, req report.WeeklyReportRequest) (report.WeeklyReport, error) {
	if err := req.Validate(); err != nil {
		return report.WeeklyReport{}, err
	}

	week := calendar.WeekBounds(s.parseDay(req.Date))
	_, records, err := s.fetch(ctx, week, false)
	if err != nil {
		return report.WeeklyReport{}, err
	}

	return BuildWeeklyReport(week.Start, week.End, records), nil
}

// MonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) MonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}

	month := calendar.MonthBounds(req.Year, time.Month(req.Month), s.loc)
	activeStaff, records, err := s.fetch(ctx, month, true)
	if err != nil {
		return report.MonthlyReport{}, err
	}

	return BuildMonthlyReport(time.Month(req.Month), req.Year, records, activeStaff), nil
}

// ExportReport implements report.ReportService.
func (s *ReportServiceImpl) ExportReport(ctx context.Context, req report.ExportRequest) (report.Export, error) {
	if err := req.Validate(); err != nil {
		return report.Export{}, err
	}

	window, err := s.exportWindow(req)
	if err != nil {
		return report.Export{}, err
	}

	_, records, err := s.fetch(ctx, window, false)
	if err != nil {
		return report.Export{}, err
	}

	return BuildExport(req.Type, records, window), nil
}

// GenerateExportFile implements report.ReportService.
func (s *ReportServiceImpl) GenerateExportFile(ctx context.Context, req report.ExportRequest) (report.ExportFile, error) {
	export, err := s.ExportReport(ctx, req)
	if err != nil {
		return report.ExportFile{}, err
	}

	content, err := s.writer.Render(export)
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	return report.ExportFile{
		Filename:    export.Filename,
		ContentType: s.writer.ContentType(),
		Content:     content,
	}, nil
}

func (s *ReportServiceImpl) exportWindow(req report.ExportRequest) (calendar.Range, error) {
	switch req.Type {
	case report.ReportTypeDaily:
		return calendar.DayBounds(s.parseDay(req.StartDate)), nil
	case report.ReportTypeWeekly:
		return calendar.WeekBounds(s.parseDay(req.StartDate)), nil
	case report.ReportTypeMonthly:
		return calendar.MonthBounds(req.Year, time.Month(req.Month), s.loc), nil
	case report.ReportTypeCustom:
		return calendar.Range{Start: s.parseDay(req.StartDate), End: s.parseDay(req.EndDate)}, nil
	}
	return calendar.Range{}, report.ErrInvalidReportType
}

// fetch loads in-range attendance and, when withRoster is set, the active roster concurrently.
func (s *ReportServiceImpl) fetch(ctx context.Context, window calendar.Range, withRoster bool) ([]staff.Staff, []attendance.Attendance, error) {
	var (
		activeStaff []staff.Staff
		records     []attendance.Attendance
	)

	g, gctx := errgroup.WithContext(ctx)

	if withRoster {
		g.Go(func() error {
			active := true
			list, err := s.staffDir.List(gctx, staff.StaffFilter{Active: &active})
			if err != nil {
				return fmt.Errorf("failed to list active staff: %w", err)
			}
			activeStaff = list
			return nil
		})
	}

	g.Go(func() error {
		list, err := s.store.Find(gctx, attendance.AttendanceQuery{From: &window.Start, To: &window.End})
		if err != nil {
			return fmt.Errorf("failed to find attendance: %w", err)
		}
		records = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return activeStaff, records, nil
}

// parseDay expects an already validated value.
func (s *ReportServiceImpl) parseDay(value string) time.Time {
	day, _ := validator.ParseDay(value, s.loc)
	return day
}
