package service_test

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/tourday/planner/internal/domain"
	"github.com/tourday/planner/internal/repo"
	"github.com/tourday/planner/internal/service"
)

// mockPlanRepo is a hand-written test double for repo.PlanRepo.
// Each method is a function field; set only the ones your test needs.
type mockPlanRepo struct {
	loadAll       func(ctx context.Context) ([]domain.TravelPlan, error)
	loadAllStrict func(ctx context.Context) ([]domain.TravelPlan, error)
	quarantine    func(ctx context.Context, suffix string) (string, bool, error)
	save          func(ctx context.Context, plan domain.TravelPlan) error
	deleteByID    func(ctx context.Context, id string) error
}

func (m *mockPlanRepo) LoadAll(ctx context.Context) ([]domain.TravelPlan, error) {
	return m.loadAll(ctx)
}
func (m *mockPlanRepo) LoadAllStrict(ctx context.Context) ([]domain.TravelPlan, error) {
	return m.loadAllStrict(ctx)
}
func (m *mockPlanRepo) Quarantine(ctx context.Context, suffix string) (string, bool, error) {
	return m.quarantine(ctx, suffix)
}
func (m *mockPlanRepo) Save(ctx context.Context, plan domain.TravelPlan) error {
	return m.save(ctx, plan)
}
func (m *mockPlanRepo) DeleteByID(ctx context.Context, id string) error {
	return m.deleteByID(ctx, id)
}

var _ repo.PlanRepo = (*mockPlanRepo)(nil)

// mockChecklistRepo is a hand-written test double for repo.ChecklistRepo.
type mockChecklistRepo struct {
	load    func(ctx context.Context, planID string) ([]domain.ChecklistItem, bool, error)
	save    func(ctx context.Context, planID string, items []domain.ChecklistItem) error
	delete  func(ctx context.Context, planID string) error
	planIDs func(ctx context.Context) ([]string, error)
}

func (m *mockChecklistRepo) Load(ctx context.Context, planID string) ([]domain.ChecklistItem, bool, error) {
	return m.load(ctx, planID)
}
func (m *mockChecklistRepo) Save(ctx context.Context, planID string, items []domain.ChecklistItem) error {
	return m.save(ctx, planID, items)
}
func (m *mockChecklistRepo) Delete(ctx context.Context, planID string) error {
	return m.delete(ctx, planID)
}
func (m *mockChecklistRepo) PlanIDs(ctx context.Context) ([]string, error) {
	return m.planIDs(ctx)
}

var _ repo.ChecklistRepo = (*mockChecklistRepo)(nil)

// recorder captures observer notifications.
type recorder struct {
	mu         sync.Mutex
	saved      []string
	deleted    []string
	checklists map[string][]domain.ChecklistItem
}

func (r *recorder) PlanSaved(p domain.TravelPlan) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, p.ID)
}
func (r *recorder) PlanDeleted(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, id)
}
func (r *recorder) ChecklistChanged(planID string, items []domain.ChecklistItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.checklists == nil {
		r.checklists = map[string][]domain.ChecklistItem{}
	}
	r.checklists[planID] = items
}

// livePlans is a hand-written test double for service.LivePlans.
type livePlans func(ctx context.Context) (map[string]struct{}, error)

func (f livePlans) LiveIDs(ctx context.Context) (map[string]struct{}, error) { return f(ctx) }

// flakyKV fails reads of one key on demand.
type flakyKV struct {
	repo.KV
	failKey string
	err     error
}

func (f *flakyKV) Get(ctx context.Context, key string) (string, bool, error) {
	if key == f.failKey && f.err != nil {
		return "", false, f.err
	}
	return f.KV.Get(ctx, key)
}

// Keys forwards to the wrapped store so checklist enumeration still works.
func (f *flakyKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	return f.KV.(repo.KeyLister).Keys(ctx, prefix)
}

// ---- helpers ---------------------------------------------------------------

// fakeClock returns a clock that advances one minute per call.
func fakeClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Minute)
		return t
	}
}

// seqIDs returns an id generator yielding prefix1, prefix2, ...
func seqIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return prefix + strconv.Itoa(n)
	}
}

type fixture struct {
	kv         *repo.MemoryKV
	plans      *service.PlanService
	checklists *service.ChecklistService
	schedule   *service.ScheduleService
	events     *recorder
}

// newFixture wires the services over an in-memory store.
func newFixture() *fixture {
	kv := repo.NewMemoryKV()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	events := &recorder{}
	clock := fakeClock()

	checklists := service.NewChecklistService(repo.NewChecklistRepo(kv, "", log), events,
		service.WithIDGenerator(seqIDs("item-")))
	plans := service.NewPlanService(repo.NewPlanRepo(kv, "", log), checklists, events,
		service.WithClock(clock), service.WithIDGenerator(seqIDs("plan-")))
	schedule := service.NewScheduleService(plans, service.WithIDGenerator(seqIDs("act-")))

	return &fixture{kv: kv, plans: plans, checklists: checklists, schedule: schedule, events: events}
}

func ptr[T any](v T) *T { return &v }
