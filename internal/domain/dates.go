package domain

import (
	"fmt"
	"time"
)

// DateLayout is the persisted calendar-date format.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

var koreanWeekdays = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// ParseDate parses a "2006-01-02" date as midnight UTC.
// Returns ErrValidation for malformed input.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, s)
	}
	return t, nil
}

// CalculateDays returns the inclusive number of calendar days between start
// and end: ceil(|end-start| in days) + 1.
//
// The absolute difference means a reversed range yields a plausible count.
// Plan creation rejects reversed ranges before this is called; do not rely on
// this function for that check.
func CalculateDays(start, end string) (int, error) {
	s, err := ParseDate(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return 0, err
	}
	// Both dates are midnight UTC, so the difference is whole days. Unix
	// seconds avoid time.Duration saturating at ~292 years.
	diff := (e.Unix() - s.Unix()) / secondsPerDay
	if diff < 0 {
		diff = -diff
	}
	return int(diff) + 1, nil
}

// GenerateDays builds n empty day shells starting at start, numbered from 1.
func GenerateDays(start string, n int) ([]DayPlan, error) {
	s, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	days := make([]DayPlan, n)
	for i := range n {
		days[i] = DayPlan{
			Date:       s.AddDate(0, 0, i).Format(DateLayout),
			DayNumber:  i + 1,
			Activities: []Activity{},
		}
	}
	return days, nil
}

// FormatDate renders a stored date as "M/D (요일)", e.g. "3/15 (금)".
// Unparsable input is returned unchanged.
func FormatDate(s string) string {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%d/%d (%s)", int(t.Month()), t.Day(), koreanWeekdays[t.Weekday()])
}

// DaysUntil returns ceil((date - now) / 24h). Negative values mean the date
// is in the past.
func DaysUntil(date string, now time.Time) (int, error) {
	t, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	secs := t.Unix() - now.Unix()
	days := secs / secondsPerDay
	if secs > 0 && secs%secondsPerDay != 0 {
		days++
	}
	return int(days), nil
}
