package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// DailyReport summarizes one day against the active roster
	DailyReport(ctx context.Context, req DailyReportRequest) (DailyReport, error)

	// WeeklyReport groups the Monday..Sunday week containing req.Date
	WeeklyReport(ctx context.Context, req WeeklyReportRequest) (WeeklyReport, error)

	// MonthlyReport computes per-staff working-day statistics for a month
	MonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)

	// ExportReport fetches and orders the records of the requested window
	ExportReport(ctx context.Context, req ExportRequest) (Export, error)

	// GenerateExportFile renders ExportReport through the SpreadsheetWriter
	GenerateExportFile(ctx context.Context, req ExportRequest) (ExportFile, error)
}

// SpreadsheetWriter renders an export into a workbook.
type SpreadsheetWriter interface {
	Render(export Export) ([]byte, error)
	ContentType() string
}
