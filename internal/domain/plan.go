// Package domain contains the core data types for the Tourday planner and the
// pure functions that derive values from them (day generation, budget status,
// checklist progress, formatting). It has no storage or transport dependencies
// and is imported by every other internal package (repo, service, handler).
package domain

import (
	"strings"
	"time"
)

// TravelPlan is a single trip and the aggregate root of the data model.
// Days and their activities are owned exclusively by the plan.
//
// JSON field names match the persisted browser layout exactly, so existing
// stored data round-trips without translation. Currency and Members were
// added later and are omitted when empty.
type TravelPlan struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Destination string    `json:"destination"`
	Country     string    `json:"country"`
	StartDate   string    `json:"startDate"` // "2006-01-02"
	EndDate     string    `json:"endDate"`   // "2006-01-02"
	Budget      float64   `json:"budget"`
	Currency    string    `json:"currency,omitempty"`
	Members     []string  `json:"members,omitempty"`
	TotalSpent  float64   `json:"totalSpent"` // derived, see RecomputeTotalSpent
	Days        []DayPlan `json:"days"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DayPlan is one calendar day of a trip.
// DayNumber is always the 1-based position of the day in TravelPlan.Days.
type DayPlan struct {
	Date       string     `json:"date"` // "2006-01-02"
	DayNumber  int        `json:"dayNumber"`
	Activities []Activity `json:"activities"`
}

// CurrencyOr returns the plan currency, or fallback for plans stored before
// the currency field existed.
func (p TravelPlan) CurrencyOr(fallback string) string {
	if p.Currency == "" {
		return fallback
	}
	return p.Currency
}

// Day returns the day with the given 1-based number.
func (p TravelPlan) Day(dayNumber int) (DayPlan, bool) {
	if dayNumber < 1 || dayNumber > len(p.Days) {
		return DayPlan{}, false
	}
	return p.Days[dayNumber-1], true
}

// ActivityCount returns the number of activities across all days.
func (p TravelPlan) ActivityCount() int {
	n := 0
	for _, d := range p.Days {
		n += len(d.Activities)
	}
	return n
}

// RecomputeTotalSpent resets TotalSpent to the sum of every activity cost.
// This is the only place TotalSpent is written after creation.
func (p *TravelPlan) RecomputeTotalSpent() {
	p.TotalSpent = TotalSpent(p.Days)
}

// Clone returns a deep copy of the plan so callers can edit days and
// activities without aliasing the original slices.
func (p TravelPlan) Clone() TravelPlan {
	out := p
	if p.Members != nil {
		out.Members = append([]string(nil), p.Members...)
	}
	if p.Days != nil {
		out.Days = make([]DayPlan, len(p.Days))
		for i, d := range p.Days {
			out.Days[i] = d.clone()
		}
	}
	return out
}

func (d DayPlan) clone() DayPlan {
	out := d
	out.Activities = make([]Activity, len(d.Activities))
	for i, a := range d.Activities {
		out.Activities[i] = a.clone()
	}
	return out
}

// Matches reports whether query is a case-insensitive substring of the plan
// title or destination. An empty query matches every plan.
func (p TravelPlan) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Destination), q)
}
