package services

import (
	"sort"
	"time"
)

const dayLayout = "2006-01-02"

func ParseDay(value string) (time.Time, error) {
	return time.Parse(dayLayout, value)
}

func FormatDay(value time.Time) string {
	return value.Format(dayLayout)
}

// NormalizeDates returns the sorted, deduplicated view of a date set,
// dropping anything that does not parse as an ISO day. Resolvers always
// operate on this view regardless of write order.
func NormalizeDates(dates []string) []string {
	seen := make(map[string]bool, len(dates))
	normalized := make([]string, 0, len(dates))
	for _, date := range dates {
		if seen[date] {
			continue
		}
		if _, err := ParseDay(date); err != nil {
			continue
		}
		seen[date] = true
		normalized = append(normalized, date)
	}
	sort.Strings(normalized)
	return normalized
}

// ConsecutiveDays reports whether secondISO is the calendar-day successor
// of firstISO.
func ConsecutiveDays(firstISO string, secondISO string) bool {
	first, err := ParseDay(firstISO)
	if err != nil {
		return false
	}
	second, err := ParseDay(secondISO)
	if err != nil {
		return false
	}
	return calendarDaysBetween(first, second) == 1
}

// NightsBetween is the calendar-day difference between two ISO days.
// Unparseable input yields 0.
func NightsBetween(startISO string, endISO string) int {
	start, err := ParseDay(startISO)
	if err != nil {
		return 0
	}
	end, err := ParseDay(endISO)
	if err != nil {
		return 0
	}
	return calendarDaysBetween(start, end)
}

// EnumerateDatesInRange lists every ISO day from startISO through endISO
// inclusive. An invalid or inverted range yields nil.
func EnumerateDatesInRange(startISO string, endISO string) []string {
	start, err := ParseDay(startISO)
	if err != nil {
		return nil
	}
	end, err := ParseDay(endISO)
	if err != nil {
		return nil
	}
	if end.Before(start) {
		return nil
	}

	dates := make([]string, 0, calendarDaysBetween(start, end)+1)
	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, 1) {
		dates = append(dates, FormatDay(cursor))
	}
	return dates
}

func calendarDaysBetween(start time.Time, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}
