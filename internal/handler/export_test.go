package handler_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourday/planner/internal/domain"
	"github.com/tourday/planner/internal/handler"
)

func exportPlans() *mockPlanServicer {
	return &mockPlanServicer{
		getByID: func(_ context.Context, id string) (domain.TravelPlan, error) {
			if id != "plan-1" {
				return domain.TravelPlan{}, domain.ErrNotFound
			}
			return planFixture(), nil
		},
	}
}

// ---- GET /plans/{planId}/export -------------------------------------------

func TestExportSchedule_DefaultJSON(t *testing.T) {
	rec := do(newHTTPHandler(exportPlans(), nil, nil), http.MethodGet, "/plans/plan-1/export", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var rows []handler.ExportRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	require.Len(t, rows, 2, "one activity row plus one row for the empty day")

	assert.Equal(t, 1, rows[0].DayNumber)
	assert.Equal(t, "3/15 (금)", rows[0].DateLabel)
	require.NotNil(t, rows[0].Title)
	assert.Equal(t, "Ramen", *rows[0].Title)
	require.NotNil(t, rows[0].Cost)
	assert.Equal(t, 45000.0, *rows[0].Cost)

	assert.Equal(t, 2, rows[1].DayNumber)
	assert.Nil(t, rows[1].Title)
	assert.Nil(t, rows[1].Cost)
}

func TestExportSchedule_CSV(t *testing.T) {
	rec := do(newHTTPHandler(exportPlans(), nil, nil), http.MethodGet, "/plans/plan-1/export?format=csv", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "plan-1.csv")

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"day", "date", "date_label", "time", "title", "category", "location", "cost", "duration_min", "memo"}, records[0])
	assert.Equal(t, []string{"1", "2024-03-15", "3/15 (금)", "12:30", "Ramen", "restaurant", "", "45000", "", ""}, records[1])
	assert.Equal(t, []string{"2", "2024-03-16", "3/16 (토)", "", "", "", "", "", "", ""}, records[2])
}

func TestExportSchedule_400_UnknownFormat(t *testing.T) {
	rec := do(newHTTPHandler(exportPlans(), nil, nil), http.MethodGet, "/plans/plan-1/export?format=xlsx", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportSchedule_404(t *testing.T) {
	rec := do(newHTTPHandler(exportPlans(), nil, nil), http.MethodGet, "/plans/other/export", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
