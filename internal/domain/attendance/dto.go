package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// MaxBulkEntries caps one bulk mark request.
const MaxBulkEntries = 500

type MarkAttendanceRequest struct {
	StaffID string `json:"staffId"`
	Date    string `json:"date"` // YYYY-MM-DD or RFC3339
	Status  Status `json:"status"`
	Notes   string `json:"notes"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	r.StaffID = strings.TrimSpace(r.StaffID)
	r.Notes = strings.TrimSpace(r.Notes)

	if validator.IsEmpty(r.StaffID) {
		errs.Add("staffId", "staffId is required")
	}

	validateDay(&errs, "date", r.Date, true)

	if r.Status == "" {
		r.Status = StatusPresent // Default status
	} else if !r.Status.IsValid() {
		errs.Add("status", statusMessage())
	}

	if len(r.Notes) > 1000 {
		errs.Add("notes", "notes must not exceed 1000 characters")
	}

	return errs.OrNil()
}

type BulkMarkEntry struct {
	StaffID string `json:"staffId"`
	Status  Status `json:"status"`
	Notes   string `json:"notes"`
}

type BulkMarkAttendanceRequest struct {
	Date    string          `json:"date"`
	Entries []BulkMarkEntry `json:"entries"`
}

func (r *BulkMarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	validateDay(&errs, "date", r.Date, true)

	if len(r.Entries) == 0 {
		errs.Add("entries", "entries must contain at least one item")
	}
	if len(r.Entries) > MaxBulkEntries {
		errs.Add("entries", "entries must not exceed "+validator.Itoa(MaxBulkEntries)+" items")
	}

	for i := range r.Entries {
		e := &r.Entries[i]
		field := "entries[" + validator.Itoa(i) + "]"
		e.StaffID = strings.TrimSpace(e.StaffID)
		e.Notes = strings.TrimSpace(e.Notes)
		if e.StaffID == "" {
			errs.Add(field+".staffId", "staffId is required")
		}
		if e.Status == "" {
			e.Status = StatusPresent
		} else if !e.Status.IsValid() {
			errs.Add(field+".status", statusMessage())
		}
	}

	return errs.OrNil()
}

type BulkMarkResult struct {
	StaffID      string  `json:"staffId"`
	Status       Status  `json:"status"`
	AttendanceID *string `json:"attendanceId,omitempty"`
	Created      bool    `json:"created"`
	Error        *string `json:"error,omitempty"`
}

type BulkMarkAttendanceResponse struct {
	Date    string           `json:"date"`
	Applied int              `json:"applied"`
	Failed  int              `json:"failed"`
	Results []BulkMarkResult `json:"results"`
}

// UpdateAttendanceRequest is a partial update: nil fields are left unchanged.
type UpdateAttendanceRequest struct {
	ID     string  `json:"-"`
	Date   *string `json:"date,omitempty"`
	Status *Status `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}

	if r.Date != nil {
		validateDay(&errs, "date", *r.Date, true)
	}

	if r.Status != nil && !r.Status.IsValid() {
		errs.Add("status", statusMessage())
	}

	if r.Notes != nil {
		trimmed := strings.TrimSpace(*r.Notes)
		r.Notes = &trimmed
		if len(trimmed) > 1000 {
			errs.Add("notes", "notes must not exceed 1000 characters")
		}
	}

	if r.Date == nil && r.Status == nil && r.Notes == nil {
		errs.Add("body", "at least one of date, status, notes is required")
	}

	return errs.OrNil()
}

type AttendanceFilter struct {
	StartDate  *string `json:"startDate,omitempty"`
	EndDate    *string `json:"endDate,omitempty"`
	StaffID    *string `json:"staffId,omitempty"`
	Department *string `json:"department,omitempty"`
	Status     *string `json:"status,omitempty"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil {
		validateDay(&errs, "startDate", *f.StartDate, false)
	}
	if f.EndDate != nil {
		validateDay(&errs, "endDate", *f.EndDate, false)
	}

	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs.Add("status", statusMessage())
	}

	return errs.OrNil()
}

// ToQuery converts a validated filter into a repository query with days resolved in loc.
func (f AttendanceFilter) ToQuery(loc *time.Location) AttendanceQuery {
	var q AttendanceQuery
	if f.StartDate != nil {
		if d, ok := validator.ParseDay(*f.StartDate, loc); ok {
			q.From = &d
		}
	}
	if f.EndDate != nil {
		if d, ok := validator.ParseDay(*f.EndDate, loc); ok {
			q.To = &d
		}
	}
	q.StaffID = f.StaffID
	q.Department = f.Department
	if f.Status != nil {
		s := Status(*f.Status)
		q.Status = &s
	}
	return q
}

// StaffSummary is the joined staff projection carried on attendance responses.
type StaffSummary struct {
	Name       string  `json:"name"`
	StaffID    string  `json:"staffId"`
	Department string  `json:"department"`
	CabinNo    *string `json:"cabinNo,omitempty"`
}

type AttendanceResponse struct {
	ID        string        `json:"id"`
	StaffID   string        `json:"staffId"`
	Staff     *StaffSummary `json:"staff"`
	Date      string        `json:"date"`
	Status    Status        `json:"status"`
	Notes     string        `json:"notes"`
	MarkedAt  string        `json:"markedAt"`
	UpdatedAt string        `json:"updatedAt"`
}

// ToStaffSummary returns nil when the record's staff no longer exists.
func ToStaffSummary(a Attendance) *StaffSummary {
	if a.StaffName == nil {
		return nil
	}
	summary := &StaffSummary{
		Name:    *a.StaffName,
		StaffID: a.StaffID,
		CabinNo: a.StaffCabinNo,
	}
	if a.StaffDepartment != nil {
		summary.Department = *a.StaffDepartment
	}
	return summary
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:        a.ID,
		StaffID:   a.StaffID,
		Staff:     ToStaffSummary(a),
		Date:      calendar.FormatDay(a.Date),
		Status:    a.Status,
		Notes:     a.Notes,
		MarkedAt:  a.MarkedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}
}

// ToResponses never returns nil so empty lists encode as [].
func ToResponses(list []Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(list))
	for _, a := range list {
		out = append(out, ToResponse(a))
	}
	return out
}

func validateDay(errs *validator.ValidationErrors, field, value string, required bool) {
	if validator.IsEmpty(value) {
		if required {
			errs.Add(field, field+" is required")
		}
		return
	}
	if _, ok := validator.ParseDay(value, time.UTC); !ok {
		errs.Add(field, field+" must be in YYYY-MM-DD format")
	}
}

func statusMessage() string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = string(s)
	}
	return "status must be one of: " + strings.Join(names, ", ")
}
