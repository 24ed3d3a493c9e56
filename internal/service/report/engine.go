package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/staff"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// The Build* functions are pure: they read only their arguments and never fail.
// Records are expected to hold at most one entry per staff and day.

// BuildDailyReport summarizes records of one day against the active roster.
// Only present and absent are totaled; leave and halfday appear in Records only.
func BuildDailyReport(day time.Time, records []attendance.Attendance, activeStaff []staff.Staff) report.DailyReport {
	result := report.DailyReport{
		Date:         calendar.FormatDay(day),
		TotalStaff:   len(activeStaff),
		Records:      attendance.ToResponses(records),
		MissingStaff: make([]report.MissingStaff, 0),
	}

	marked := make(map[string]struct{}, len(records))
	for _, rec := range records {
		marked[rec.StaffID] = struct{}{}
		switch rec.Status {
		case attendance.StatusPresent:
			result.Present++
		case attendance.StatusAbsent:
			result.Absent++
		}
	}

	for _, s := range activeStaff {
		if _, ok := marked[s.StaffID]; ok {
			continue
		}
		result.MissingStaff = append(result.MissingStaff, report.MissingStaff{
			ID:         s.ID,
			Name:       s.Name,
			StaffID:    s.StaffID,
			Department: s.Department,
		})
	}
	result.Unmarked = len(result.MissingStaff)

	return result
}

// BuildWeeklyReport groups records of start..end by staff and day. The roster is implied
// by the records, so TotalStaff counts distinct staff IDs seen.
func BuildWeeklyReport(start, end time.Time, records []attendance.Attendance) report.WeeklyReport {
	summary := report.WeeklySummary{
		StartDate:    calendar.FormatDay(start),
		EndDate:      calendar.FormatDay(end),
		TotalDays:    report.WorkingDaysPerWeek,
		DailyPresent: make(map[string]int),
		DailyAbsent:  make(map[string]int),
	}
	for _, d := range calendar.DaysBetween(start, end) {
		key := calendar.FormatDay(d)
		summary.DailyPresent[key] = 0
		summary.DailyAbsent[key] = 0
	}

	byStaff := make(map[string]report.WeeklyStaffAttendance)
	for _, rec := range records {
		key := calendar.FormatDay(rec.Date)

		entry, ok := byStaff[rec.StaffID]
		if !ok {
			entry = report.WeeklyStaffAttendance{
				Staff: attendance.ToStaffSummary(rec),
				Days:  make(map[string]attendance.Status),
			}
			byStaff[rec.StaffID] = entry
		}
		entry.Days[key] = rec.Status

		if _, inWeek := summary.DailyPresent[key]; !inWeek {
			continue
		}
		switch rec.Status {
		case attendance.StatusPresent:
			summary.DailyPresent[key]++
		case attendance.StatusAbsent:
			summary.DailyAbsent[key]++
		}
	}
	summary.TotalStaff = len(byStaff)

	return report.WeeklyReport{Summary: summary, StaffAttendance: byStaff}
}

// BuildMonthlyReport computes per-staff statistics over the Monday-Friday days of the month.
// Records of staff outside the roster are ignored. Join dates are not considered.
func BuildMonthlyReport(month time.Month, year int, records []attendance.Attendance, activeStaff []staff.Staff) report.MonthlyReport {
	workingDays := calendar.WorkingDays(calendar.MonthBounds(year, month, time.UTC))

	staffReports := make([]report.StaffMonthlyReport, len(activeStaff))
	index := make(map[string]int, len(activeStaff))
	for i, s := range activeStaff {
		staffReports[i] = report.StaffMonthlyReport{
			StaffID:       s.StaffID,
			Name:          s.Name,
			Department:    s.Department,
			DayWiseStatus: make(map[string]report.DayStatus),
		}
		index[s.StaffID] = i
	}

	for _, rec := range records {
		i, ok := index[rec.StaffID]
		if !ok {
			continue
		}
		sr := &staffReports[i]
		sr.DayWiseStatus[calendar.FormatDay(rec.Date)] = report.DayStatusOf(rec.Status)
		switch rec.Status {
		case attendance.StatusPresent:
			sr.TotalPresent++
		case attendance.StatusAbsent:
			sr.TotalAbsent++
		}
	}

	total := decimal.Zero
	for i := range staffReports {
		sr := &staffReports[i]
		for _, d := range workingDays {
			key := calendar.FormatDay(d)
			if _, ok := sr.DayWiseStatus[key]; !ok {
				sr.DayWiseStatus[key] = report.DayUnmarked
				sr.TotalUnmarked++
			}
		}
		pct := AttendancePercentage(sr.TotalPresent, sr.TotalAbsent)
		sr.AttendancePercentage = pct.InexactFloat64()
		total = total.Add(pct)
	}

	average := decimal.Zero
	if len(staffReports) > 0 {
		average = total.DivRound(decimal.NewFromInt(int64(len(staffReports))), 2)
	}

	return report.MonthlyReport{
		Summary: report.MonthlySummary{
			Month:             month.String(),
			Year:              year,
			WorkingDays:       len(workingDays),
			TotalStaff:        len(activeStaff),
			AverageAttendance: average.InexactFloat64(),
		},
		StaffReports: staffReports,
	}
}

// AttendancePercentage is present/(present+absent)*100 rounded to 2 places, 0 when nothing was marked.
func AttendancePercentage(present, absent int) decimal.Decimal {
	marked := present + absent
	if marked == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(present) * 100).DivRound(decimal.NewFromInt(int64(marked)), 2)
}

// BuildExport orders records by day then staff ID and derives the title from the days
// present in them. window is the queried range; it names the file and titles an empty export.
func BuildExport(reportType report.ReportType, records []attendance.Attendance, window calendar.Range) report.Export {
	sorted := make([]attendance.Attendance, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := calendar.FormatDay(sorted[i].Date), calendar.FormatDay(sorted[j].Date)
		if di != dj {
			return di < dj
		}
		return sorted[i].StaffID < sorted[j].StaffID
	})

	span := window
	if len(sorted) > 0 {
		span = calendar.Range{Start: sorted[0].Date, End: sorted[len(sorted)-1].Date}
	}

	var summary report.ExportSummary
	summary.Total = len(sorted)
	for _, rec := range sorted {
		switch rec.Status {
		case attendance.StatusPresent:
			summary.Present++
		case attendance.StatusAbsent:
			summary.Absent++
		case attendance.StatusLeave:
			summary.Leave++
		case attendance.StatusHalfday:
			summary.Halfday++
		}
	}

	return report.Export{
		Type:     reportType,
		Title:    exportTitle(reportType, span),
		Filename: exportFilename(reportType, window),
		Summary:  summary,
		Records:  sorted,
	}
}

func exportTitle(reportType report.ReportType, span calendar.Range) string {
	start, end := calendar.FormatDay(span.Start), calendar.FormatDay(span.End)
	switch reportType {
	case report.ReportTypeDaily:
		return "Daily Attendance Report - " + start
	case report.ReportTypeWeekly:
		return fmt.Sprintf("Weekly Attendance Report - %s to %s", start, end)
	case report.ReportTypeMonthly:
		return fmt.Sprintf("Monthly Attendance Report - %s %d", span.Start.Month(), span.Start.Year())
	default:
		return fmt.Sprintf("Custom Attendance Report - %s to %s", start, end)
	}
}

func exportFilename(reportType report.ReportType, window calendar.Range) string {
	start, end := calendar.FormatDay(window.Start), calendar.FormatDay(window.End)
	switch reportType {
	case report.ReportTypeDaily:
		return fmt.Sprintf("daily_attendance_report_%s.xlsx", start)
	case report.ReportTypeWeekly:
		return fmt.Sprintf("weekly_attendance_report_%s_to_%s.xlsx", start, end)
	case report.ReportTypeMonthly:
		return fmt.Sprintf("monthly_attendance_report_%d_%d.xlsx", int(window.Start.Month()), window.Start.Year())
	default:
		return fmt.Sprintf("custom_attendance_report_%s_to_%s.xlsx", start, end)
	}
}
