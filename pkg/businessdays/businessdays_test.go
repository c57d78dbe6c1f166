package businessdays

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vacation-manager/pkg/holidays"
)

func d(year int, month time.Month, day int) time.Time {
	return holidays.Date(year, month, day)
}

func TestIsBusinessDayOverYears(t *testing.T) {
	holidaySet := map[time.Time]bool{}
	for year := 2023; year <= 2026; year++ {
		for _, h := range holidays.ForYear(year) {
			holidaySet[h] = true
		}
	}

	for day := d(2023, time.January, 1); day.Year() <= 2026; day = day.AddDate(0, 0, 1) {
		weekend := day.Weekday() == time.Saturday || day.Weekday() == time.Sunday
		want := !weekend && !holidaySet[day]
		if got := IsBusinessDay(day); got != want {
			t.Fatalf("IsBusinessDay(%s) = %v, want %v", day.Format("2006-01-02 Mon"), got, want)
		}
	}
}

func TestCountSingleDay(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		want int
	}{
		{"regular Tuesday", d(2024, time.March, 5), 1},
		{"Saturday", d(2024, time.March, 9), 0},
		{"Independence Day", d(2024, time.July, 4), 0},
		{"day after Thanksgiving", d(2024, time.November, 29), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Count(tt.day, tt.day))
		})
	}
}

func TestCountReversedRangeIsZero(t *testing.T) {
	assert.Equal(t, 0, Count(d(2024, time.March, 8), d(2024, time.March, 4)))
	assert.Equal(t, 0, Count(d(2025, time.January, 1), d(2024, time.January, 1)))
}

func TestNextIsAfterAndBusiness(t *testing.T) {
	for day := d(2024, time.January, 1); day.Year() == 2024; day = day.AddDate(0, 0, 1) {
		next := Next(day)
		require.True(t, next.After(day), "Next(%s) = %s", day.Format("2006-01-02"), next.Format("2006-01-02"))
		require.True(t, IsBusinessDay(next), "Next(%s) = %s is not a business day", day.Format("2006-01-02"), next.Format("2006-01-02"))
		for between := day.AddDate(0, 0, 1); between.Before(next); between = between.AddDate(0, 0, 1) {
			require.False(t, IsBusinessDay(between), "Next(%s) skipped business day %s", day.Format("2006-01-02"), between.Format("2006-01-02"))
		}
	}
}

func TestCalculateScenarios(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		days       int
		hours      int
		returnDate time.Time
	}{
		{"week with Independence Day", "2024-07-01", "2024-07-05", 4, 32, d(2024, time.July, 8)},
		{"Christmas week", "2024-12-23", "2024-12-26", 2, 16, d(2024, time.December, 27)},
		{"single day ending on Friday", "2024-03-08", "2024-03-08", 1, 8, d(2024, time.March, 11)},
		{"Thanksgiving weekend", "2024-11-27", "2024-11-27", 1, 8, d(2024, time.December, 2)},
		{"across new year", "2025-12-29", "2026-01-02", 4, 32, d(2026, time.January, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.days, got.BusinessDays)
			assert.Equal(t, tt.hours, got.TotalHours)
			assert.Equal(t, tt.returnDate, got.ReturnDate)
		})
	}
}

func TestCalculateRejectsBadInput(t *testing.T) {
	_, err := Calculate("2024-07-05", "2024-07-01")
	assert.True(t, errors.Is(err, ErrEndBeforeStart))

	_, err = Calculate("07/01/2024", "2024-07-05")
	assert.True(t, errors.Is(err, ErrInvalidDate))

	_, err = Calculate("2024-07-01", "2024-02-30")
	assert.True(t, errors.Is(err, ErrInvalidDate))
}

func TestWithClosures(t *testing.T) {
	base := New()
	plant := base.WithClosures(d(2024, time.July, 5))

	assert.True(t, base.IsBusinessDay(d(2024, time.July, 5)))
	assert.False(t, plant.IsBusinessDay(d(2024, time.July, 5)))
	assert.Equal(t, 3, plant.Count(d(2024, time.July, 1), d(2024, time.July, 5)))
	assert.Equal(t, d(2024, time.July, 8), plant.Next(d(2024, time.July, 3)))
}
