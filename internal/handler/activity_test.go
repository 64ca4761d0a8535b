package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourday/planner/internal/domain"
	"github.com/tourday/planner/internal/handler"
)

func TestAddActivity_201(t *testing.T) {
	var (
		gotDay   int
		gotDraft domain.ActivityDraft
	)
	sched := &mockScheduleServicer{
		addActivity: func(_ context.Context, planID string, day int, d domain.ActivityDraft) (domain.TravelPlan, domain.Activity, error) {
			require.Equal(t, "plan-1", planID)
			gotDay, gotDraft = day, d
			p := planFixture()
			return p, p.Days[0].Activities[0], nil
		},
	}

	body := jsonBody(t, map[string]any{
		"time": "12:30", "title": "Ramen", "category": "restaurant", "cost": 45000, "duration": 60,
	})
	rec := do(newHTTPHandler(nil, sched, nil), http.MethodPost, "/plans/plan-1/days/1/activities", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, gotDay)
	assert.Equal(t, domain.CategoryRestaurant, gotDraft.Category)
	require.NotNil(t, gotDraft.Cost)
	assert.Equal(t, 45000.0, *gotDraft.Cost)
	require.NotNil(t, gotDraft.Duration)
	assert.Equal(t, 60, *gotDraft.Duration)

	var resp handler.ActivityCreated
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "act-1", resp.Activity.ID)
	assert.Equal(t, 45000.0, resp.Plan.TotalSpent)
}

func TestAddActivity_400_DayNotANumber(t *testing.T) {
	rec := do(newHTTPHandler(nil, &mockScheduleServicer{}, nil), http.MethodPost,
		"/plans/plan-1/days/first/activities", jsonBody(t, map[string]any{"title": "x"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddActivity_404_UnknownDay(t *testing.T) {
	sched := &mockScheduleServicer{
		addActivity: func(context.Context, string, int, domain.ActivityDraft) (domain.TravelPlan, domain.Activity, error) {
			return domain.TravelPlan{}, domain.Activity{}, fmt.Errorf("service.ScheduleService.AddActivity: day 9: %w", domain.ErrNotFound)
		},
	}

	rec := do(newHTTPHandler(nil, sched, nil), http.MethodPost, "/plans/plan-1/days/9/activities",
		jsonBody(t, map[string]any{"title": "x"}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddActivity_422_InvalidCategory(t *testing.T) {
	sched := &mockScheduleServicer{
		addActivity: func(context.Context, string, int, domain.ActivityDraft) (domain.TravelPlan, domain.Activity, error) {
			return domain.TravelPlan{}, domain.Activity{}, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, "spa")
		},
	}

	rec := do(newHTTPHandler(nil, sched, nil), http.MethodPost, "/plans/plan-1/days/1/activities",
		jsonBody(t, map[string]any{"title": "x", "category": "spa"}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, `unknown category "spa"`, decodeError(t, rec).Message)
}

func TestUpdateActivity_200(t *testing.T) {
	var gotID string
	sched := &mockScheduleServicer{
		updateActivity: func(_ context.Context, _ string, _ int, id string, _ domain.ActivityDraft) (domain.TravelPlan, bool, error) {
			gotID = id
			return planFixture(), true, nil
		},
	}

	rec := do(newHTTPHandler(nil, sched, nil), http.MethodPut, "/plans/plan-1/days/1/activities/act-1",
		jsonBody(t, map[string]any{"title": "Sushi", "time": "13:00"}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "act-1", gotID)
}

func TestRemoveActivity_204(t *testing.T) {
	sched := &mockScheduleServicer{
		removeActivity: func(context.Context, string, int, string) (domain.TravelPlan, bool, error) {
			return planFixture(), false, nil
		},
	}

	rec := do(newHTTPHandler(nil, sched, nil), http.MethodDelete, "/plans/plan-1/days/2/activities/unknown", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
