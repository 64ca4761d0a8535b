package domain

import (
	"slices"
	"strings"
)

// AddActivity returns a copy of day with a new activity built from draft.
// The activity list is re-sorted by time afterwards. day is not modified.
// Returns ErrValidation if the draft is invalid.
func AddActivity(day DayPlan, id string, draft ActivityDraft) (DayPlan, error) {
	a, err := draft.toActivity(id)
	if err != nil {
		return DayPlan{}, err
	}
	out := day.clone()
	out.Activities = append(out.Activities, a)
	SortActivities(out.Activities)
	return out, nil
}

// UpdateActivity returns a copy of day with the activity identified by id
// replaced by the draft values (the id is kept). The list is re-sorted.
//
// An unknown id is not an error: the day is returned unchanged with
// changed=false, so retries of an already-applied delete-then-update are safe.
func UpdateActivity(day DayPlan, id string, draft ActivityDraft) (DayPlan, bool, error) {
	idx := slices.IndexFunc(day.Activities, func(a Activity) bool { return a.ID == id })
	if idx < 0 {
		return day, false, nil
	}
	a, err := draft.toActivity(id)
	if err != nil {
		return DayPlan{}, false, err
	}
	out := day.clone()
	out.Activities[idx] = a
	SortActivities(out.Activities)
	return out, true, nil
}

// RemoveActivity returns a copy of day without the activity identified by id.
// changed is false when no such activity exists.
func RemoveActivity(day DayPlan, id string) (DayPlan, bool) {
	if !slices.ContainsFunc(day.Activities, func(a Activity) bool { return a.ID == id }) {
		return day, false
	}
	out := day.clone()
	out.Activities = slices.DeleteFunc(out.Activities, func(a Activity) bool { return a.ID == id })
	return out, true
}

// SortActivities orders activities ascending by time in place.
// Equal times keep their insertion order.
func SortActivities(acts []Activity) {
	slices.SortStableFunc(acts, func(a, b Activity) int {
		return strings.Compare(a.Time, b.Time)
	})
}

// Cost returns the sum of activity costs for the day (absent costs count as 0).
func (d DayPlan) Cost() float64 {
	var sum float64
	for _, a := range d.Activities {
		sum += a.CostOrZero()
	}
	return sum
}

// TotalSpent sums the cost of every activity in every day.
func TotalSpent(days []DayPlan) float64 {
	var sum float64
	for _, d := range days {
		sum += d.Cost()
	}
	return sum
}
