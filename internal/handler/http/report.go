package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/staff-attendance-go/internal/handler/http/response"
)

type ReportHandler interface {
	GetDailyReport(w http.ResponseWriter, r *http.Request)
	GetWeeklyReport(w http.ResponseWriter, r *http.Request)
	GetMonthlyReport(w http.ResponseWriter, r *http.Request)
	ExportReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetDailyReport handles GET /attendance/reports/daily
func (h *reportHandlerImpl) GetDailyReport(w http.ResponseWriter, r *http.Request) {
	req := report.DailyReportRequest{Date: r.URL.Query().Get("date")}

	result, err := h.reportService.DailyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetWeeklyReport handles GET /attendance/reports/weekly
func (h *reportHandlerImpl) GetWeeklyReport(w http.ResponseWriter, r *http.Request) {
	req := report.WeeklyReportRequest{Date: r.URL.Query().Get("date")}

	result, err := h.reportService.WeeklyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMonthlyReport handles GET /attendance/reports/monthly
func (h *reportHandlerImpl) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	month, ok := intParam(w, r, "month")
	if !ok {
		return
	}
	year, ok := intParam(w, r, "year")
	if !ok {
		return
	}

	result, err := h.reportService.MonthlyReport(r.Context(), report.MonthlyReportRequest{Month: month, Year: year})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportReport handles GET /attendance/reports/export and streams an xlsx workbook
func (h *reportHandlerImpl) ExportReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	month, ok := intParam(w, r, "month")
	if !ok {
		return
	}
	year, ok := intParam(w, r, "year")
	if !ok {
		return
	}

	req := report.ExportRequest{
		Type:      report.ReportType(query.Get("type")),
		StartDate: query.Get("startDate"),
		EndDate:   query.Get("endDate"),
		Month:     month,
		Year:      year,
	}

	file, err := h.reportService.GenerateExportFile(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Report exported", "type", req.Type, "filename", file.Filename, "bytes", len(file.Content))
	response.File(w, file.Filename, file.ContentType, file.Content)
}

// intParam reads an optional integer query parameter. Absent parameters are zero and
// left to request validation; malformed ones are rejected here.
func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		response.BadRequest(w, "invalid "+name+" parameter", nil)
		return 0, false
	}
	return v, true
}
