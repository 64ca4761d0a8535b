package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tourday/planner/internal/domain"
)

// ChecklistKeyPrefix prefixes the per-plan checklist key ("checklist_<planID>").
const ChecklistKeyPrefix = "checklist_"

// ChecklistRepo defines the persistence operations for plan checklists.
type ChecklistRepo interface {
	// Load returns the stored items for planID. found is false when nothing
	// is stored, or when the stored blob cannot be read or parsed.
	Load(ctx context.Context, planID string) (items []domain.ChecklistItem, found bool, err error)

	// Save overwrites the checklist for planID.
	Save(ctx context.Context, planID string, items []domain.ChecklistItem) error

	// Delete removes the checklist for planID. Missing is not an error.
	Delete(ctx context.Context, planID string) error

	// PlanIDs lists every plan id that has a stored checklist.
	// Returns an empty slice when the store cannot enumerate keys.
	PlanIDs(ctx context.Context) ([]string, error)
}

type kvChecklistRepo struct {
	kv     KV
	prefix string
	log    *slog.Logger
}

// NewChecklistRepo constructs a ChecklistRepo storing each checklist under
// namespace+ChecklistKeyPrefix+planID.
func NewChecklistRepo(kv KV, namespace string, log *slog.Logger) ChecklistRepo {
	return &kvChecklistRepo{kv: kv, prefix: namespace + ChecklistKeyPrefix, log: log}
}

func (r *kvChecklistRepo) key(planID string) string {
	return r.prefix + planID
}

func (r *kvChecklistRepo) Load(ctx context.Context, planID string) ([]domain.ChecklistItem, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, fmt.Errorf("repo.ChecklistRepo.Load: %w", err)
	}

	key := r.key(planID)
	raw, found, err := r.kv.Get(ctx, key)
	if err != nil {
		r.log.WarnContext(ctx, "checklist unreadable, treating as absent",
			slog.String("key", key), slog.String("error", err.Error()))
		return nil, false, nil
	}
	if !found {
		return nil, false, nil
	}

	var items []domain.ChecklistItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		r.log.WarnContext(ctx, "checklist corrupt, treating as absent",
			slog.String("key", key), slog.String("error", err.Error()))
		return nil, false, nil
	}
	if items == nil {
		items = []domain.ChecklistItem{}
	}
	return items, true, nil
}

func (r *kvChecklistRepo) Save(ctx context.Context, planID string, items []domain.ChecklistItem) error {
	if items == nil {
		items = []domain.ChecklistItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("repo.ChecklistRepo.Save: encode: %w", err)
	}
	if err := r.kv.Set(ctx, r.key(planID), string(raw)); err != nil {
		return fmt.Errorf("repo.ChecklistRepo.Save: %w", err)
	}
	return nil
}

func (r *kvChecklistRepo) Delete(ctx context.Context, planID string) error {
	if err := r.kv.Delete(ctx, r.key(planID)); err != nil {
		return fmt.Errorf("repo.ChecklistRepo.Delete: %w", err)
	}
	return nil
}

func (r *kvChecklistRepo) PlanIDs(ctx context.Context) ([]string, error) {
	lister, ok := r.kv.(KeyLister)
	if !ok {
		return []string{}, nil
	}
	keys, err := lister.Keys(ctx, r.prefix)
	if err != nil {
		return nil, fmt.Errorf("repo.ChecklistRepo.PlanIDs: %w", err)
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, r.prefix))
	}
	return ids, nil
}
