package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourday/planner/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func times(day domain.DayPlan) []string {
	out := make([]string, len(day.Activities))
	for i, a := range day.Activities {
		out[i] = a.Time
	}
	return out
}

func TestAddActivity_SortsByTime(t *testing.T) {
	day := domain.DayPlan{Date: "2024-03-15", DayNumber: 1, Activities: []domain.Activity{}}

	var err error
	for i, clock := range []string{"14:00", "09:30", "11:15"} {
		day, err = domain.AddActivity(day, string(rune('a'+i)), domain.ActivityDraft{Time: clock, Title: "visit " + clock})
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"09:30", "11:15", "14:00"}, times(day))
}

func TestAddActivity_Defaults(t *testing.T) {
	day := domain.DayPlan{DayNumber: 1}

	got, err := domain.AddActivity(day, "a1", domain.ActivityDraft{Title: "  Museum  "})

	require.NoError(t, err)
	require.Len(t, got.Activities, 1)
	a := got.Activities[0]
	assert.Equal(t, "a1", a.ID)
	assert.Equal(t, domain.DefaultActivityTime, a.Time)
	assert.Equal(t, domain.CategoryEtc, a.Category)
	assert.Equal(t, "Museum", a.Title)
	assert.Nil(t, a.Cost)
}

func TestAddActivity_NormalizesTime(t *testing.T) {
	got, err := domain.AddActivity(domain.DayPlan{}, "a1", domain.ActivityDraft{Title: "Breakfast", Time: "7:05"})

	require.NoError(t, err)
	assert.Equal(t, "07:05", got.Activities[0].Time)
}

func TestAddActivity_Validation(t *testing.T) {
	tests := []struct {
		name  string
		draft domain.ActivityDraft
	}{
		{"blank title", domain.ActivityDraft{Title: "   "}},
		{"bad time", domain.ActivityDraft{Title: "x", Time: "25:00"}},
		{"unknown category", domain.ActivityDraft{Title: "x", Category: "spa"}},
		{"negative cost", domain.ActivityDraft{Title: "x", Cost: ptr(-1.0)}},
		{"negative duration", domain.ActivityDraft{Title: "x", Duration: ptr(-30)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain.AddActivity(domain.DayPlan{}, "a1", tc.draft)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestAddActivity_DoesNotMutateInput(t *testing.T) {
	day := domain.DayPlan{Activities: []domain.Activity{{ID: "a", Time: "10:00", Title: "x", Category: domain.CategoryEtc}}}

	_, err := domain.AddActivity(day, "b", domain.ActivityDraft{Title: "y", Time: "08:00"})

	require.NoError(t, err)
	require.Len(t, day.Activities, 1)
	assert.Equal(t, "a", day.Activities[0].ID)
}

func TestUpdateActivity(t *testing.T) {
	day, err := domain.AddActivity(domain.DayPlan{}, "a", domain.ActivityDraft{Title: "Lunch", Time: "12:00"})
	require.NoError(t, err)
	day, err = domain.AddActivity(day, "b", domain.ActivityDraft{Title: "Dinner", Time: "18:00"})
	require.NoError(t, err)

	got, changed, err := domain.UpdateActivity(day, "b", domain.ActivityDraft{Title: "Breakfast", Time: "08:00", Category: domain.CategoryRestaurant})

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"08:00", "12:00"}, times(got))
	assert.Equal(t, "b", got.Activities[0].ID, "id is preserved")
	assert.Equal(t, domain.CategoryRestaurant, got.Activities[0].Category)
}

func TestUpdateActivity_UnknownIDIsNoop(t *testing.T) {
	day, err := domain.AddActivity(domain.DayPlan{}, "a", domain.ActivityDraft{Title: "Lunch"})
	require.NoError(t, err)

	got, changed, err := domain.UpdateActivity(day, "missing", domain.ActivityDraft{Title: "x"})

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, day, got)
}

func TestRemoveActivity(t *testing.T) {
	day, err := domain.AddActivity(domain.DayPlan{}, "a", domain.ActivityDraft{Title: "Lunch"})
	require.NoError(t, err)

	got, changed := domain.RemoveActivity(day, "a")
	assert.True(t, changed)
	assert.Empty(t, got.Activities)

	_, changed = domain.RemoveActivity(got, "a")
	assert.False(t, changed)
}

func TestSortActivities_StableOnEqualTimes(t *testing.T) {
	acts := []domain.Activity{
		{ID: "late", Time: "10:00"},
		{ID: "first", Time: "09:00"},
		{ID: "second", Time: "09:00"},
	}

	domain.SortActivities(acts)

	assert.Equal(t, "first", acts[0].ID)
	assert.Equal(t, "second", acts[1].ID)
	assert.Equal(t, "late", acts[2].ID)
}

func TestRecomputeTotalSpent_AbsentCostIsZero(t *testing.T) {
	p := domain.TravelPlan{
		TotalSpent: 9999,
		Days: []domain.DayPlan{
			{DayNumber: 1, Activities: []domain.Activity{
				{ID: "a", Cost: ptr(100.0)},
				{ID: "c"},
			}},
			{DayNumber: 2, Activities: []domain.Activity{{ID: "b", Cost: ptr(250.0)}}},
		},
	}

	p.RecomputeTotalSpent()

	assert.Equal(t, 350.0, p.TotalSpent)
	assert.Equal(t, 100.0, p.Days[0].Cost())
}
