package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourday/planner/internal/domain"
)

func samplePlan() domain.TravelPlan {
	created := time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)
	return domain.TravelPlan{
		ID:          "plan-1",
		Title:       "도쿄 여행",
		Destination: "Tokyo",
		Country:     "Japan",
		StartDate:   "2024-03-15",
		EndDate:     "2024-03-16",
		Budget:      1500000,
		TotalSpent:  30000,
		Days: []domain.DayPlan{
			{Date: "2024-03-15", DayNumber: 1, Activities: []domain.Activity{
				{ID: "a1", Time: "09:00", Title: "Flight", Category: domain.CategoryFlight, Cost: ptr(30000.0), Duration: ptr(150)},
				{ID: "a2", Time: "15:00", Title: "Check-in", Category: domain.CategoryHotel, Location: "Shinjuku"},
			}},
			{Date: "2024-03-16", DayNumber: 2, Activities: []domain.Activity{}},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestTravelPlan_JSONRoundTrip(t *testing.T) {
	in := samplePlan()

	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out domain.TravelPlan
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in, out)
}

func TestTravelPlan_JSONOmitsAbsentOptionals(t *testing.T) {
	raw, err := json.Marshal(samplePlan())
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))

	assert.NotContains(t, generic, "currency")
	assert.NotContains(t, generic, "members")
	for _, key := range []string{"id", "title", "destination", "country", "startDate", "endDate", "budget", "totalSpent", "days", "createdAt", "updatedAt"} {
		assert.Contains(t, generic, key)
	}

	days := generic["days"].([]any)
	checkIn := days[0].(map[string]any)["activities"].([]any)[1].(map[string]any)
	assert.NotContains(t, checkIn, "cost", "absent cost is omitted, never null")
	assert.NotContains(t, checkIn, "duration")
	assert.NotContains(t, checkIn, "memo")
	assert.Equal(t, "Shinjuku", checkIn["location"])
}

func TestTravelPlan_ParsesStoredLayout(t *testing.T) {
	stored := `{"id":"1710000000000","title":"Trip","destination":"Osaka","country":"Japan",
		"startDate":"2024-03-15","endDate":"2024-03-15","budget":0,"totalSpent":0,
		"days":[{"date":"2024-03-15","dayNumber":1,"activities":[]}],
		"createdAt":"2024-03-01T00:00:00.000Z","updatedAt":"2024-03-01T00:00:00.000Z"}`

	var p domain.TravelPlan
	require.NoError(t, json.Unmarshal([]byte(stored), &p))

	assert.Equal(t, "1710000000000", p.ID)
	assert.Equal(t, "KRW", p.CurrencyOr(domain.DefaultCurrency))
	require.Len(t, p.Days, 1)
	assert.Equal(t, 2024, p.CreatedAt.Year())
}

func TestTravelPlan_Clone(t *testing.T) {
	in := samplePlan()
	in.Members = []string{"민수"}

	out := in.Clone()
	out.Members[0] = "지영"
	out.Days[0].Activities[0].Title = "changed"
	*out.Days[0].Activities[0].Cost = 1

	assert.Equal(t, "민수", in.Members[0])
	assert.Equal(t, "Flight", in.Days[0].Activities[0].Title)
	assert.Equal(t, 30000.0, *in.Days[0].Activities[0].Cost)
}

func TestTravelPlan_Day(t *testing.T) {
	p := samplePlan()

	d, ok := p.Day(2)
	assert.True(t, ok)
	assert.Equal(t, "2024-03-16", d.Date)

	_, ok = p.Day(0)
	assert.False(t, ok)
	_, ok = p.Day(3)
	assert.False(t, ok)
}

func TestTravelPlan_Matches(t *testing.T) {
	p := samplePlan()

	assert.True(t, p.Matches(""))
	assert.True(t, p.Matches("tok"))
	assert.True(t, p.Matches("도쿄"))
	assert.False(t, p.Matches("paris"))
}
