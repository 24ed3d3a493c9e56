// Package calendar holds the calendar-day arithmetic shared by attendance marking and reports.
// Every value it returns is a calendar day: midnight in the location of the input.
package calendar

import "time"

// DayLayout is the wire and map-key format of a calendar day.
const DayLayout = "2006-01-02"

// Range is an inclusive span of calendar days.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether day falls inside the range, inclusive on both ends.
func (r Range) Contains(day time.Time) bool {
	day = StartOfDay(day)
	return !day.Before(r.Start) && !day.After(r.End)
}

// Days returns every calendar day in the range.
func (r Range) Days() []time.Time {
	return DaysBetween(r.Start, r.End)
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FormatDay renders t as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// WeekBounds returns Monday..Sunday of the week containing t.
func WeekBounds(t time.Time) Range {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	start := day.AddDate(0, 0, -offset)
	return Range{Start: start, End: start.AddDate(0, 0, 6)}
}

// MonthBounds returns the first and last day of month/year in loc.
func MonthBounds(year int, month time.Month, loc *time.Location) Range {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return Range{Start: start, End: start.AddDate(0, 1, -1)}
}

// DayBounds returns the single-day range for t.
func DayBounds(t time.Time) Range {
	day := StartOfDay(t)
	return Range{Start: day, End: day}
}

// DaysBetween lists the calendar days from start to end inclusive. Empty when end < start.
func DaysBetween(start, end time.Time) []time.Time {
	start, end = StartOfDay(start), StartOfDay(end)
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// IsWorkingDay reports whether t is Monday through Friday. Holidays are not considered.
func IsWorkingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// WorkingDays lists the Monday-Friday days of r.
func WorkingDays(r Range) []time.Time {
	var days []time.Time
	for _, d := range r.Days() {
		if IsWorkingDay(d) {
			days = append(days, d)
		}
	}
	return days
}
