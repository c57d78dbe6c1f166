package businessdays

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"vacation-manager/pkg/holidays"
)

// HoursPerDay - hours credited for every business day of a vacation
const HoursPerDay = 8

// DateLayout - wire format of vacation dates
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate    = errors.New("invalid date")
	ErrEndBeforeStart = errors.New("end date is before start date")
)

// Duration - computed fields stamped onto a vacation request at creation time
type Duration struct {
	BusinessDays int
	TotalHours   int
	ReturnDate   time.Time
}

// Calculator decides business-day-ness against the holiday calendar plus
// optional extra closure dates.
type Calculator struct {
	closures map[string]struct{}
}

// New returns a calculator that only knows the holiday calendar.
func New() *Calculator {
	return &Calculator{closures: map[string]struct{}{}}
}

// WithClosures returns a copy of c that also treats the given dates as non-business days.
func (c *Calculator) WithClosures(dates ...time.Time) *Calculator {
	next := &Calculator{closures: make(map[string]struct{}, len(c.closures)+len(dates))}
	for k := range c.closures {
		next.closures[k] = struct{}{}
	}
	for _, d := range dates {
		next.closures[key(d)] = struct{}{}
	}
	return next
}

// IsBusinessDay - weekday that is neither a holiday nor a closure
func (c *Calculator) IsBusinessDay(date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	if holidays.IsHoliday(date) {
		return false
	}
	_, closed := c.closures[key(date)]
	return !closed
}

// Count - inclusive number of business days in [start, end]; 0 when end is before start
func (c *Calculator) Count(start, end time.Time) int {
	start, end = holidays.DateOf(start), holidays.DateOf(end)
	if end.Before(start) {
		return 0
	}

	count := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if c.IsBusinessDay(day) {
			count++
		}
	}
	return count
}

// Next - first business day strictly after date
func (c *Calculator) Next(date time.Time) time.Time {
	day := holidays.DateOf(date).AddDate(0, 0, 1)
	for !c.IsBusinessDay(day) {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

// TotalHours returns HoursPerDay times the business days in [start, end].
func (c *Calculator) TotalHours(start, end time.Time) int {
	return HoursPerDay * c.Count(start, end)
}

// ReturnDate - the day the employee is back at work
func (c *Calculator) ReturnDate(end time.Time) time.Time {
	return c.Next(end)
}

// Calculate parses "YYYY-MM-DD" bounds and returns the vacation duration.
func (c *Calculator) Calculate(start, end string) (Duration, error) {
	startDate, err := ParseDate(start)
	if err != nil {
		return Duration{}, err
	}
	endDate, err := ParseDate(end)
	if err != nil {
		return Duration{}, err
	}
	if endDate.Before(startDate) {
		return Duration{}, fmt.Errorf("%w: %s < %s", ErrEndBeforeStart, end, start)
	}

	days := c.Count(startDate, endDate)
	return Duration{
		BusinessDays: days,
		TotalHours:   days * HoursPerDay,
		ReturnDate:   c.Next(endDate),
	}, nil
}

// ParseDate parses a "YYYY-MM-DD" string into a date-only value.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, value)
	}
	return parsed, nil
}

func key(date time.Time) string {
	return date.Format(DateLayout)
}

var defaultCalculator = New()

// IsBusinessDay reports whether date is a business day under the holiday calendar alone.
func IsBusinessDay(date time.Time) bool { return defaultCalculator.IsBusinessDay(date) }

// Count - see Calculator.Count
func Count(start, end time.Time) int { return defaultCalculator.Count(start, end) }

// Next - see Calculator.Next
func Next(date time.Time) time.Time { return defaultCalculator.Next(date) }

// TotalHours - see Calculator.TotalHours
func TotalHours(start, end time.Time) int { return defaultCalculator.TotalHours(start, end) }

// ReturnDate - see Calculator.ReturnDate
func ReturnDate(end time.Time) time.Time { return defaultCalculator.ReturnDate(end) }

// Calculate - see Calculator.Calculate
func Calculate(start, end string) (Duration, error) { return defaultCalculator.Calculate(start, end) }
