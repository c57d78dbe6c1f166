package service

import (
	"time"

	"vacation-manager/pkg/holidays"
)

// VacationWindow - where a vacation start sits relative to today
type VacationWindow struct {
	DaysUntil int
	InWindow  bool
}

// DaysUntil returns calendar days from today to start; negative once start has passed.
func DaysUntil(start, today time.Time) int {
	diff := holidays.DateOf(start).Sub(holidays.DateOf(today))
	return int(diff.Hours() / 24)
}

// InLeadWindow - 0 <= daysUntil <= daysBefore
func InLeadWindow(daysUntil, daysBefore int) bool {
	return daysUntil >= 0 && daysUntil <= daysBefore
}

// EvaluateWindow uses calendar days only; business days play no part in the lead-time window.
func EvaluateWindow(start, today time.Time, daysBefore int) VacationWindow {
	days := DaysUntil(start, today)
	return VacationWindow{
		DaysUntil: days,
		InWindow:  InLeadWindow(days, daysBefore),
	}
}
