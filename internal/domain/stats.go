package domain

import (
	"fmt"
	"math"
	"time"
)

// UpcomingWindowDays is how far ahead a trip counts as "upcoming" in stats.
const UpcomingWindowDays = 30

// PlanFilter selects plans by start date relative to now.
type PlanFilter string

const (
	FilterAll      PlanFilter = "all"
	FilterUpcoming PlanFilter = "upcoming"
	FilterPast     PlanFilter = "past"
)

// ParsePlanFilter maps a query value to a filter. Empty means all.
func ParsePlanFilter(s string) (PlanFilter, error) {
	switch PlanFilter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterUpcoming, FilterPast:
		return PlanFilter(s), nil
	}
	return "", fmt.Errorf("%w: unknown filter %q", ErrValidation, s)
}

// Keep reports whether p passes the filter. A plan is past when its start
// date is before now; plans with an unparsable start date are never past.
func (f PlanFilter) Keep(p TravelPlan, now time.Time) bool {
	if f == FilterAll || f == "" {
		return true
	}
	start, err := ParseDate(p.StartDate)
	past := err == nil && start.Before(now)
	if f == FilterPast {
		return past
	}
	return !past
}

// DayCost is the spending of a single day.
type DayCost struct {
	DayNumber int     `json:"dayNumber"`
	Date      string  `json:"date"`
	Cost      float64 `json:"cost"`
}

// PlanStats are the derived figures shown with a plan.
type PlanStats struct {
	DayCount        int       `json:"dayCount"`
	ActivityCount   int       `json:"activityCount"`
	AvgDailySpend   float64   `json:"avgDailySpend"`
	DailyCosts      []DayCost `json:"dailyCosts"`
	DaysUntil       int       `json:"daysUntil"`
	Upcoming        bool      `json:"upcoming"`
	Past            bool      `json:"past"`
	FormattedBudget string    `json:"formattedBudget"`
	FormattedSpent  string    `json:"formattedSpent"`
}

// ComputeStats derives PlanStats at the given instant. currency is used when
// the plan carries none.
func ComputeStats(p TravelPlan, now time.Time, currency string) PlanStats {
	st := PlanStats{
		DayCount:      len(p.Days),
		ActivityCount: p.ActivityCount(),
		DailyCosts:    make([]DayCost, 0, len(p.Days)),
	}
	if st.DayCount > 0 {
		st.AvgDailySpend = math.Round(p.TotalSpent / float64(st.DayCount))
	}
	for _, d := range p.Days {
		st.DailyCosts = append(st.DailyCosts, DayCost{DayNumber: d.DayNumber, Date: d.Date, Cost: d.Cost()})
	}
	if n, err := DaysUntil(p.StartDate, now); err == nil {
		st.DaysUntil = n
		st.Upcoming = n >= 0 && n <= UpcomingWindowDays
		st.Past = n < 0
	}
	code := p.CurrencyOr(currency)
	st.FormattedBudget = FormatCurrency(p.Budget, code)
	st.FormattedSpent = FormatCurrency(p.TotalSpent, code)
	return st
}
