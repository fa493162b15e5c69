package race

import (
	"fmt"
	"strings"
	"time"
)

const (
	// CourseSuffix is appended to every bare venue name.
	CourseSuffix = "競馬場"

	// ExcludedPrefix marks venues run by the central authority. Races at these
	// venues are dropped from the output.
	ExcludedPrefix = "JRA"
)

// Date is a calendar date without a time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate validates the components and returns the date.
// Components that time.Date would normalize (Feb 30, month 13) are rejected.
func NewDate(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d does not exist", ErrMalformedDate, year, int(month), day)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Format renders the date in the iCalendar DATE form, e.g. 20180124.
func (d Date) Format() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Race is a single graded race from the schedule
type Race struct {
	Grade  Grade
	Date   Date
	Name   string
	Course string // venue display name, always ending in CourseSuffix
}

// Excluded reports whether the race is held by the excluded authority.
func (r Race) Excluded() bool {
	return strings.HasPrefix(r.Course, ExcludedPrefix)
}

// CourseName normalizes raw course text such as "大井 1800m" into "大井競馬場".
// The distance and anything after the first whitespace are dropped.
func CourseName(raw string) (string, bool) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return "", false
	}
	return fields[0] + CourseSuffix, true
}
