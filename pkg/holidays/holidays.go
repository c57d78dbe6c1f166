package holidays

import (
	"sync"
	"time"
)

// Observance - a named holiday resolved for a concrete year
type Observance struct {
	Name string
	Date time.Time
}

// Observance names
const (
	NewYearsDay          = "New Year's Day"
	MLKDay               = "Martin Luther King Jr. Day"
	PresidentsDay        = "Presidents' Day"
	MemorialDay          = "Memorial Day"
	IndependenceDay      = "Independence Day"
	LaborDay             = "Labor Day"
	Thanksgiving         = "Thanksgiving Day"
	DayAfterThanksgiving = "Day after Thanksgiving"
	ChristmasEve         = "Christmas Eve"
	ChristmasDay         = "Christmas Day"
)

var (
	cacheMu sync.RWMutex
	cache   = map[int][]Observance{}
)

// Date returns the date-only value used throughout the calendar (UTC midnight).
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf strips the clock and location from t, keeping its wall-clock calendar date.
func DateOf(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// NthWeekday - n-th occurrence of weekday in the month (n starts at 1)
func NthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	first := Date(year, month, 1)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+(n-1)*7)
}

// LastWeekday - last occurrence of weekday in the month, found by walking back from the month end
func LastWeekday(year int, month time.Month, weekday time.Weekday) time.Time {
	day := Date(year, month+1, 1).AddDate(0, 0, -1)
	for day.Weekday() != weekday {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

// Observances returns the named holidays of the year in calendar order.
func Observances(year int) []Observance {
	cacheMu.RLock()
	cached, ok := cache[year]
	cacheMu.RUnlock()
	if !ok {
		cached = compute(year)
		cacheMu.Lock()
		cache[year] = cached
		cacheMu.Unlock()
	}

	result := make([]Observance, len(cached))
	copy(result, cached)
	return result
}

func compute(year int) []Observance {
	thanksgiving := NthWeekday(year, time.November, time.Thursday, 4)

	return []Observance{
		{Name: NewYearsDay, Date: Date(year, time.January, 1)},
		{Name: MLKDay, Date: NthWeekday(year, time.January, time.Monday, 3)},
		{Name: PresidentsDay, Date: NthWeekday(year, time.February, time.Monday, 3)},
		{Name: MemorialDay, Date: LastWeekday(year, time.May, time.Monday)},
		{Name: IndependenceDay, Date: Date(year, time.July, 4)},
		{Name: LaborDay, Date: NthWeekday(year, time.September, time.Monday, 1)},
		{Name: Thanksgiving, Date: thanksgiving},
		{Name: DayAfterThanksgiving, Date: thanksgiving.AddDate(0, 0, 1)},
		{Name: ChristmasEve, Date: Date(year, time.December, 24)},
		{Name: ChristmasDay, Date: Date(year, time.December, 25)},
	}
}

// ForYear - holiday dates of the year
func ForYear(year int) []time.Time {
	observances := Observances(year)
	dates := make([]time.Time, 0, len(observances))
	for _, o := range observances {
		dates = append(dates, o.Date)
	}
	return dates
}

// Name returns the observance name when date is a holiday.
func Name(date time.Time) (string, bool) {
	for _, o := range Observances(date.Year()) {
		if sameDay(o.Date, date) {
			return o.Name, true
		}
	}
	return "", false
}

// IsHoliday - checks the date against the holidays of its own year
func IsHoliday(date time.Time) bool {
	_, ok := Name(date)
	return ok
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
