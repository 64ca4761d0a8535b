package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tourday/planner/internal/domain"
	"github.com/tourday/planner/internal/handler"
	"github.com/tourday/planner/internal/service"
	"github.com/tourday/planner/internal/wizard"
)

// mockPlanServicer is a test double for handler.PlanServicer.
// Set only the method fields your test needs.
type mockPlanServicer struct {
	search          func(ctx context.Context, params service.SearchParams) ([]domain.TravelPlan, domain.PageMeta, error)
	getByID         func(ctx context.Context, id string) (domain.TravelPlan, error)
	createFromDraft func(ctx context.Context, d wizard.Draft) (domain.TravelPlan, error)
	update          func(ctx context.Context, id string, u service.PlanUpdate) (domain.TravelPlan, error)
	delete          func(ctx context.Context, id string) error
}

func (m *mockPlanServicer) Search(ctx context.Context, params service.SearchParams) ([]domain.TravelPlan, domain.PageMeta, error) {
	return m.search(ctx, params)
}
func (m *mockPlanServicer) GetByID(ctx context.Context, id string) (domain.TravelPlan, error) {
	return m.getByID(ctx, id)
}
func (m *mockPlanServicer) CreateFromDraft(ctx context.Context, d wizard.Draft) (domain.TravelPlan, error) {
	return m.createFromDraft(ctx, d)
}
func (m *mockPlanServicer) Update(ctx context.Context, id string, u service.PlanUpdate) (domain.TravelPlan, error) {
	return m.update(ctx, id, u)
}
func (m *mockPlanServicer) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}

// View derives the view at a fixed instant so responses are deterministic.
func (m *mockPlanServicer) View(p domain.TravelPlan, currency string) service.PlanView {
	return service.PlanView{
		TravelPlan:    p,
		BudgetSummary: domain.Summarize(p.Budget, p.TotalSpent),
		Stats:         domain.ComputeStats(p, fixedNow, currency),
	}
}

type mockScheduleServicer struct {
	addActivity    func(ctx context.Context, planID string, dayNumber int, draft domain.ActivityDraft) (domain.TravelPlan, domain.Activity, error)
	updateActivity func(ctx context.Context, planID string, dayNumber int, activityID string, draft domain.ActivityDraft) (domain.TravelPlan, bool, error)
	removeActivity func(ctx context.Context, planID string, dayNumber int, activityID string) (domain.TravelPlan, bool, error)
}

func (m *mockScheduleServicer) AddActivity(ctx context.Context, planID string, dayNumber int, draft domain.ActivityDraft) (domain.TravelPlan, domain.Activity, error) {
	return m.addActivity(ctx, planID, dayNumber, draft)
}
func (m *mockScheduleServicer) UpdateActivity(ctx context.Context, planID string, dayNumber int, activityID string, draft domain.ActivityDraft) (domain.TravelPlan, bool, error) {
	return m.updateActivity(ctx, planID, dayNumber, activityID, draft)
}
func (m *mockScheduleServicer) RemoveActivity(ctx context.Context, planID string, dayNumber int, activityID string) (domain.TravelPlan, bool, error) {
	return m.removeActivity(ctx, planID, dayNumber, activityID)
}

type mockChecklistServicer struct {
	load   func(ctx context.Context, planID string) ([]domain.ChecklistItem, error)
	add    func(ctx context.Context, planID, text, category string) ([]domain.ChecklistItem, bool, error)
	toggle func(ctx context.Context, planID, itemID string) ([]domain.ChecklistItem, bool, error)
	remove func(ctx context.Context, planID, itemID string) ([]domain.ChecklistItem, bool, error)
	clear  func(ctx context.Context, planID string) error
}

func (m *mockChecklistServicer) MaterializeOrLoad(ctx context.Context, planID string) ([]domain.ChecklistItem, error) {
	return m.load(ctx, planID)
}
func (m *mockChecklistServicer) Add(ctx context.Context, planID, text, category string) ([]domain.ChecklistItem, bool, error) {
	return m.add(ctx, planID, text, category)
}
func (m *mockChecklistServicer) Toggle(ctx context.Context, planID, itemID string) ([]domain.ChecklistItem, bool, error) {
	return m.toggle(ctx, planID, itemID)
}
func (m *mockChecklistServicer) Remove(ctx context.Context, planID, itemID string) ([]domain.ChecklistItem, bool, error) {
	return m.remove(ctx, planID, itemID)
}
func (m *mockChecklistServicer) Clear(ctx context.Context, planID string) error {
	return m.clear(ctx, planID)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.PlanServicer      = (*mockPlanServicer)(nil)
	_ handler.ScheduleServicer  = (*mockScheduleServicer)(nil)
	_ handler.ChecklistServicer = (*mockChecklistServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// newHTTPHandler wires a Server with the given mocks into a chi router, the
// same way main.go mounts it.
func newHTTPHandler(plans handler.PlanServicer, schedule handler.ScheduleServicer, checklists handler.ChecklistServicer) http.Handler {
	if plans == nil {
		plans = &mockPlanServicer{}
	}
	srv := handler.NewServer(plans, schedule, checklists, nil, handler.Options{DefaultCurrency: "KRW"})
	return srv.Handler()
}

func planFixture() domain.TravelPlan {
	cost := 45000.0
	return domain.TravelPlan{
		ID:          "plan-1",
		Title:       "Osaka spring",
		Destination: "Osaka",
		Country:     "Japan",
		StartDate:   "2024-03-15",
		EndDate:     "2024-03-16",
		Budget:      100000,
		Currency:    "KRW",
		TotalSpent:  cost,
		Days: []domain.DayPlan{
			{Date: "2024-03-15", DayNumber: 1, Activities: []domain.Activity{
				{ID: "act-1", Time: "12:30", Title: "Ramen", Category: domain.CategoryRestaurant, Cost: &cost},
			}},
			{Date: "2024-03-16", DayNumber: 2, Activities: []domain.Activity{}},
		},
		CreatedAt: fixedNow,
		UpdatedAt: fixedNow,
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// do sends a request through h and returns the recorder.
func do(h http.Handler, method, target string, body *bytes.Buffer) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}
