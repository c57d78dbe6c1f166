package closures

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// FileJSON - structure of a plant closure file
//
//	{"year": 2024, "months": [{"month": 7, "days": "5,15*"}]}
//
// Day markers "+" and "*" are accepted and ignored.
type FileJSON struct {
	Year   int            `json:"year"`
	Months []MonthClosure `json:"months"`
}

type MonthClosure struct {
	Month int    `json:"month"`
	Days  string `json:"days"`
}

// Day - one closure date
type Day struct {
	Date  time.Time `json:"date"`
	Year  int       `json:"year"`
	Month int       `json:"month"`
	Day   int       `json:"day"`
}

// ParseFile reads and parses a closure file.
func ParseFile(filePath string) ([]Day, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read closure file: %w", err)
	}
	return Parse(data)
}

// Parse - parses closure JSON and returns the listed days
func Parse(data []byte) ([]Day, error) {
	var file FileJSON
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal closure JSON: %w", err)
	}

	days := []Day{}
	for _, monthData := range file.Months {
		if monthData.Month < 1 || monthData.Month > 12 {
			return nil, fmt.Errorf("invalid month %d", monthData.Month)
		}

		for _, dayStr := range strings.Split(monthData.Days, ",") {
			dayStr = strings.TrimSpace(dayStr)
			dayStr = strings.TrimSuffix(dayStr, "+")
			dayStr = strings.TrimSuffix(dayStr, "*")
			if dayStr == "" {
				continue
			}

			day, err := strconv.Atoi(dayStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse day '%s' in month %d: %w",
					dayStr, monthData.Month, err)
			}

			date := time.Date(file.Year, time.Month(monthData.Month), day, 0, 0, 0, 0, time.UTC)
			if date.Month() != time.Month(monthData.Month) {
				return nil, fmt.Errorf("day %d out of range for month %d", day, monthData.Month)
			}

			days = append(days, Day{
				Date:  date,
				Year:  file.Year,
				Month: monthData.Month,
				Day:   day,
			})
		}
	}

	return days, nil
}

// Dates - just the dates
func Dates(days []Day) []time.Time {
	result := make([]time.Time, 0, len(days))
	for _, d := range days {
		result = append(result, d.Date)
	}
	return result
}
