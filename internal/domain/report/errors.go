package report

import "errors"

var (
	ErrInvalidReportType      = errors.New("report type must be one of daily, weekly, monthly, custom")
	ErrReportGenerationFailed = errors.New("failed to generate report")
)
