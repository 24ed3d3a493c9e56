package report

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/staff"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/validator"
)

// MinReportYear is the earliest year a monthly report can be requested for.
const MinReportYear = staff.MinYearOfJoining

// ========================================
// DAILY REPORT
// ========================================

type DailyReportRequest struct {
	Date string `json:"date"`
}

func (r *DailyReportRequest) Validate() error {
	var errs validator.ValidationErrors
	checkDay(&errs, "date", r.Date)
	return errs.OrNil()
}

type DailyReport struct {
	Date         string                          `json:"date"`
	TotalStaff   int                             `json:"totalStaff"`
	Present      int                             `json:"present"`
	Absent       int                             `json:"absent"`
	Unmarked     int                             `json:"unmarked"`
	Records      []attendance.AttendanceResponse `json:"records"`
	MissingStaff []MissingStaff                  `json:"missingStaff"`
}

// MissingStaff is an active staff member with no record for the day.
type MissingStaff struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	StaffID    string           `json:"staffId"`
	Department staff.Department `json:"department"`
}

// ========================================
// WEEKLY REPORT
// ========================================

// WorkingDaysPerWeek is the fixed working-day count reported for every week.
const WorkingDaysPerWeek = 5

type WeeklyReportRequest struct {
	Date string `json:"date"` // any day inside the week
}

func (r *WeeklyReportRequest) Validate() error {
	var errs validator.ValidationErrors
	checkDay(&errs, "date", r.Date)
	return errs.OrNil()
}

type WeeklyReport struct {
	Summary         WeeklySummary                    `json:"summary"`
	StaffAttendance map[string]WeeklyStaffAttendance `json:"staffAttendance"`
}

type WeeklySummary struct {
	StartDate    string         `json:"startDate"`
	EndDate      string         `json:"endDate"`
	TotalDays    int            `json:"totalDays"`
	TotalStaff   int            `json:"totalStaff"`
	DailyPresent map[string]int `json:"dailyPresent"`
	DailyAbsent  map[string]int `json:"dailyAbsent"`
}

type WeeklyStaffAttendance struct {
	Staff *attendance.StaffSummary     `json:"staff"`
	Days  map[string]attendance.Status `json:"days"`
}

// ========================================
// MONTHLY REPORT
// ========================================

type MonthlyReportRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors
	checkMonthYear(&errs, r.Month, r.Year)
	return errs.OrNil()
}

type MonthlyReport struct {
	Summary      MonthlySummary       `json:"summary"`
	StaffReports []StaffMonthlyReport `json:"staffReports"`
}

type MonthlySummary struct {
	Month             string  `json:"month"`
	Year              int     `json:"year"`
	WorkingDays       int     `json:"workingDays"`
	TotalStaff        int     `json:"totalStaff"`
	AverageAttendance float64 `json:"averageAttendance"`
}

type StaffMonthlyReport struct {
	StaffID              string               `json:"staffId"`
	Name                 string               `json:"name"`
	Department           staff.Department     `json:"department"`
	TotalPresent         int                  `json:"totalPresent"`
	TotalAbsent          int                  `json:"totalAbsent"`
	TotalUnmarked        int                  `json:"totalUnmarked"`
	AttendancePercentage float64              `json:"attendancePercentage"`
	DayWiseStatus        map[string]DayStatus `json:"dayWiseStatus"`
}

// DayStatus is a staff member's state on one day of a report: a stored status or unmarked.
type DayStatus string

const DayUnmarked DayStatus = "unmarked"

func DayStatusOf(s attendance.Status) DayStatus {
	return DayStatus(s)
}

// ========================================
// EXPORT
// ========================================

type ReportType string

const (
	ReportTypeDaily   ReportType = "daily"
	ReportTypeWeekly  ReportType = "weekly"
	ReportTypeMonthly ReportType = "monthly"
	ReportTypeCustom  ReportType = "custom"
)

func (t ReportType) IsValid() bool {
	switch t {
	case ReportTypeDaily, ReportTypeWeekly, ReportTypeMonthly, ReportTypeCustom:
		return true
	}
	return false
}

// ExportRequest selects the framing of an export. Daily and weekly read StartDate,
// monthly reads Month and Year, custom reads StartDate and EndDate.
type ExportRequest struct {
	Type      ReportType `json:"type"`
	StartDate string     `json:"startDate"`
	EndDate   string     `json:"endDate"`
	Month     int        `json:"month"`
	Year      int        `json:"year"`
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors

	switch r.Type {
	case "":
		errs.Add("type", "type is required")
	case ReportTypeDaily, ReportTypeWeekly:
		checkDay(&errs, "startDate", r.StartDate)
	case ReportTypeMonthly:
		checkMonthYear(&errs, r.Month, r.Year)
	case ReportTypeCustom:
		start, okStart := checkDay(&errs, "startDate", r.StartDate)
		end, okEnd := checkDay(&errs, "endDate", r.EndDate)
		if okStart && okEnd && end.Before(start) {
			errs.Add("endDate", "endDate must be on or after startDate")
		}
	default:
		errs.Add("type", "type must be one of: daily, weekly, monthly, custom")
	}

	return errs.OrNil()
}

// Export is the flat, ordered record list handed to a SpreadsheetWriter.
type Export struct {
	Type     ReportType
	Title    string
	Filename string
	Summary  ExportSummary
	Records  []attendance.Attendance
}

type ExportSummary struct {
	Total   int
	Present int
	Absent  int
	Leave   int
	Halfday int
}

// ExportFile is a rendered export ready to be served.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

func checkDay(errs *validator.ValidationErrors, field, value string) (time.Time, bool) {
	if validator.IsEmpty(value) {
		errs.Add(field, field+" is required")
		return time.Time{}, false
	}
	day, ok := validator.ParseDay(value, time.UTC)
	if !ok {
		errs.Add(field, field+" must be in YYYY-MM-DD format")
	}
	return day, ok
}

func checkMonthYear(errs *validator.ValidationErrors, month, year int) {
	if month < 1 || month > 12 {
		errs.Add("month", "month must be between 1 and 12")
	}

	currentYear := time.Now().Year()
	if year < MinReportYear || year > currentYear+1 {
		errs.Add("year", fmt.Sprintf("year must be between %d and %d", MinReportYear, currentYear+1))
	}
}
