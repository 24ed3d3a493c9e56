package spreadsheet

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/staff-attendance-go/internal/pkg/calendar"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Attendance Report"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// HeaderRow is the column header row; records start right below it.
	HeaderRow = 5
	unknown   = "Unknown"
)

// Columns are the record columns in sheet order.
var Columns = []string{"Staff ID", "Name", "Department", "Date", "Status", "Notes"}

var columnWidths = []float64{15, 25, 15, 15, 15, 30}

var statusFills = map[attendance.Status]string{
	attendance.StatusPresent: "#90EE90",
	attendance.StatusAbsent:  "#FF9999",
	attendance.StatusLeave:   "#FFCC99",
	attendance.StatusHalfday: "#FFF599",
}

// ExcelWriter renders exports as a single-sheet xlsx workbook.
type ExcelWriter struct{}

func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{}
}

// ContentType implements report.SpreadsheetWriter.
func (w *ExcelWriter) ContentType() string {
	return ContentType
}

// Render implements report.SpreadsheetWriter.
func (w *ExcelWriter) Render(export report.Export) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeHeading(f, export, styles); err != nil {
		return nil, err
	}
	if err := writeColumns(f, styles); err != nil {
		return nil, err
	}
	for i, record := range export.Records {
		if err := writeRecord(f, HeaderRow+1+i, record, styles); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetStyles struct {
	title   int
	summary int
	header  int
	status  map[attendance.Status]int
}

func newStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error

	s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return s, fmt.Errorf("failed to create title style: %w", err)
	}

	s.summary, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return s, fmt.Errorf("failed to create summary style: %w", err)
	}

	s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return s, fmt.Errorf("failed to create header style: %w", err)
	}

	s.status = make(map[attendance.Status]int, len(statusFills))
	for status, color := range statusFills {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return s, fmt.Errorf("failed to create %s style: %w", status, err)
		}
		s.status[status] = id
	}
	return s, nil
}

func writeHeading(f *excelize.File, export report.Export, styles sheetStyles) error {
	summary := export.Summary
	rows := []struct {
		cell  string
		value string
		merge string
		style int
	}{
		{"A1", export.Title, "F1", styles.title},
		{"A2", "Summary:", "F2", styles.summary},
		{"A3", fmt.Sprintf("Total Records: %d | Present: %d | Absent: %d | Leave: %d | Half Day: %d",
			summary.Total, summary.Present, summary.Absent, summary.Leave, summary.Halfday), "F3", 0},
	}

	for _, r := range rows {
		if err := f.SetCellValue(SheetName, r.cell, r.value); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", r.cell, err)
		}
		if err := f.MergeCell(SheetName, r.cell, r.merge); err != nil {
			return fmt.Errorf("failed to merge %s:%s: %w", r.cell, r.merge, err)
		}
		if r.style != 0 {
			if err := f.SetCellStyle(SheetName, r.cell, r.merge, r.style); err != nil {
				return fmt.Errorf("failed to style %s: %w", r.cell, err)
			}
		}
	}
	return nil
}

func writeColumns(f *excelize.File, styles sheetStyles) error {
	for i, title := range Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, HeaderRow)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, title); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(SheetName, cell, cell, styles.header); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}

		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(SheetName, col, col, max(columnWidths[i], 12)); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	return nil
}

func writeRecord(f *excelize.File, row int, record attendance.Attendance, styles sheetStyles) error {
	name, department := unknown, unknown
	if record.StaffName != nil {
		name = *record.StaffName
	}
	if record.StaffDepartment != nil {
		department = *record.StaffDepartment
	}

	values := []interface{}{
		record.StaffID,
		name,
		department,
		calendar.FormatDay(record.Date),
		StatusLabel(record.Status),
		record.Notes,
	}

	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}

	if style, ok := styles.status[record.Status]; ok {
		statusCell, err := excelize.CoordinatesToCellName(5, row)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellStyle(SheetName, statusCell, statusCell, style); err != nil {
			return fmt.Errorf("failed to style status cell: %w", err)
		}
	}
	return nil
}

// StatusLabel capitalizes a status for display, e.g. "halfday" becomes "Halfday".
func StatusLabel(status attendance.Status) string {
	s := string(status)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
