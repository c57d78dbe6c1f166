package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateWindow(t *testing.T) {
	today := day(2024, 6, 10)

	tests := []struct {
		name       string
		start      time.Time
		daysBefore int
		want       VacationWindow
	}{
		{"starts today", day(2024, 6, 10), 2, VacationWindow{DaysUntil: 0, InWindow: true}},
		{"edge of window", day(2024, 6, 12), 2, VacationWindow{DaysUntil: 2, InWindow: true}},
		{"beyond window", day(2024, 6, 13), 2, VacationWindow{DaysUntil: 3, InWindow: false}},
		{"already started", day(2024, 6, 9), 2, VacationWindow{DaysUntil: -1, InWindow: false}},
		{"zero lead only today", day(2024, 6, 11), 0, VacationWindow{DaysUntil: 1, InWindow: false}},
		{"weekend counts", day(2024, 6, 17), 7, VacationWindow{DaysUntil: 7, InWindow: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateWindow(tt.start, today, tt.daysBefore))
		})
	}
}

func TestDaysUntilIgnoresClockTime(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Skip("tzdata not available")
	}

	// late evening local time is still the 10th
	now := time.Date(2024, 6, 10, 23, 30, 0, 0, chicago)
	assert.Equal(t, 2, DaysUntil(day(2024, 6, 12), now))

	// spans a daylight saving change
	assert.Equal(t, 5, DaysUntil(day(2024, 3, 13), day(2024, 3, 8)))
}
