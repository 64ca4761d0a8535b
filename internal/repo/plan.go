package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/tourday/planner/internal/domain"
)

// PlansKey is the key holding the JSON array of every plan.
const PlansKey = "tourday_plans"

// PlanRepo defines the persistence operations for plans.
// The service layer depends on this interface, not on a concrete store.
type PlanRepo interface {
	// LoadAll returns every stored plan in stored order.
	// A missing, unreadable, or corrupt collection yields an empty slice; the
	// only error is context cancellation.
	LoadAll(ctx context.Context) ([]domain.TravelPlan, error)

	// LoadAllStrict is LoadAll without degradation: an unreadable or corrupt
	// collection is an error. Use it where an empty result would be acted on.
	LoadAllStrict(ctx context.Context) ([]domain.TravelPlan, error)

	// Quarantine moves a corrupt collection to namespace+PlansKey+suffix and
	// leaves the store empty. A readable or missing collection is untouched
	// and moved is false.
	Quarantine(ctx context.Context, suffix string) (backupKey string, moved bool, err error)

	// Save replaces the plan with the same ID in place, or appends it.
	// Save refuses to overwrite a collection it cannot parse; Quarantine
	// clears that state.
	Save(ctx context.Context, plan domain.TravelPlan) error

	// DeleteByID removes the plan with the given ID. Deleting a missing
	// plan is not an error.
	DeleteByID(ctx context.Context, id string) error
}

type kvPlanRepo struct {
	kv  KV
	key string
	log *slog.Logger

	// mu serializes read-modify-write of the plans blob within this process.
	mu sync.Mutex
}

// NewPlanRepo constructs a PlanRepo storing plans under namespace+PlansKey.
func NewPlanRepo(kv KV, namespace string, log *slog.Logger) PlanRepo {
	return &kvPlanRepo{kv: kv, key: namespace + PlansKey, log: log}
}

func (r *kvPlanRepo) LoadAll(ctx context.Context) ([]domain.TravelPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("repo.PlanRepo.LoadAll: %w", err)
	}
	plans, err := r.read(ctx)
	if err != nil {
		r.log.WarnContext(ctx, "plan collection unreadable, using empty collection",
			slog.String("key", r.key), slog.String("error", err.Error()))
		return []domain.TravelPlan{}, nil
	}
	return plans, nil
}

func (r *kvPlanRepo) LoadAllStrict(ctx context.Context) ([]domain.TravelPlan, error) {
	plans, err := r.read(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.PlanRepo.LoadAllStrict: %w", err)
	}
	return plans, nil
}

func (r *kvPlanRepo) Quarantine(ctx context.Context, suffix string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, found, err := r.kv.Get(ctx, r.key)
	if err != nil {
		return "", false, fmt.Errorf("repo.PlanRepo.Quarantine: %w", err)
	}
	if !found || raw == "" || r.decodes(raw) {
		return "", false, nil
	}

	backup := r.key + suffix
	if err := r.kv.Set(ctx, backup, raw); err != nil {
		return "", false, fmt.Errorf("repo.PlanRepo.Quarantine: %w", err)
	}
	if err := r.kv.Delete(ctx, r.key); err != nil {
		return backup, false, fmt.Errorf("repo.PlanRepo.Quarantine: %w", err)
	}
	r.log.WarnContext(ctx, "corrupt plan collection quarantined",
		slog.String("key", r.key), slog.String("backup", backup))
	return backup, true, nil
}

func (r *kvPlanRepo) decodes(raw string) bool {
	var plans []domain.TravelPlan
	return json.Unmarshal([]byte(raw), &plans) == nil
}

func (r *kvPlanRepo) Save(ctx context.Context, plan domain.TravelPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	plans, err := r.read(ctx)
	if err != nil {
		return fmt.Errorf("repo.PlanRepo.Save: %w", err)
	}

	if i := slices.IndexFunc(plans, func(p domain.TravelPlan) bool { return p.ID == plan.ID }); i >= 0 {
		plans[i] = plan
	} else {
		plans = append(plans, plan)
	}

	if err := r.write(ctx, plans); err != nil {
		return fmt.Errorf("repo.PlanRepo.Save: %w", err)
	}
	return nil
}

func (r *kvPlanRepo) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	plans, err := r.read(ctx)
	if err != nil {
		return fmt.Errorf("repo.PlanRepo.DeleteByID: %w", err)
	}
	filtered := slices.DeleteFunc(plans, func(p domain.TravelPlan) bool { return p.ID == id })

	if err := r.write(ctx, filtered); err != nil {
		return fmt.Errorf("repo.PlanRepo.DeleteByID: %w", err)
	}
	return nil
}

// read loads and parses the blob. A missing key is an empty collection.
func (r *kvPlanRepo) read(ctx context.Context) ([]domain.TravelPlan, error) {
	raw, found, err := r.kv.Get(ctx, r.key)
	if err != nil {
		return nil, err
	}
	plans := []domain.TravelPlan{}
	if !found || raw == "" {
		return plans, nil
	}
	if err := json.Unmarshal([]byte(raw), &plans); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.key, err)
	}
	if plans == nil {
		plans = []domain.TravelPlan{}
	}
	return plans, nil
}

func (r *kvPlanRepo) write(ctx context.Context, plans []domain.TravelPlan) error {
	raw, err := json.Marshal(plans)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.key, err)
	}
	return r.kv.Set(ctx, r.key, string(raw))
}
