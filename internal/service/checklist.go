package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/tourday/planner/internal/domain"
	"github.com/tourday/planner/internal/repo"
)

// ChecklistService manages per-plan checklists. Plan existence is not
// checked: checklists may be edited under a draft id before the plan exists.
type ChecklistService struct {
	repo     repo.ChecklistRepo
	observer ChecklistObserver
	deps     deps

	mu sync.Mutex
}

// NewChecklistService constructs a ChecklistService. observer may be nil.
func NewChecklistService(r repo.ChecklistRepo, observer ChecklistObserver, opts ...Option) *ChecklistService {
	if observer == nil {
		observer = nopObserver{}
	}
	return &ChecklistService{repo: r, observer: observer, deps: buildDeps(opts)}
}

// MaterializeOrLoad returns the stored checklist, or stores and returns the
// default template when nothing is stored yet.
func (s *ChecklistService) MaterializeOrLoad(ctx context.Context, planID string) ([]domain.ChecklistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadLocked(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("service.ChecklistService.MaterializeOrLoad: %w", err)
	}
	return items, nil
}

func (s *ChecklistService) loadLocked(ctx context.Context, planID string) ([]domain.ChecklistItem, error) {
	items, found, err := s.repo.Load(ctx, planID)
	if err != nil {
		return nil, err
	}
	if found {
		return items, nil
	}
	items = domain.NewDefaultChecklist(s.deps.newID)
	if err := s.repo.Save(ctx, planID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// mutate loads the checklist, applies fn, and saves and notifies when fn
// reports a change.
func (s *ChecklistService) mutate(ctx context.Context, planID string, fn func([]domain.ChecklistItem) ([]domain.ChecklistItem, bool)) ([]domain.ChecklistItem, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadLocked(ctx, planID)
	if err != nil {
		return nil, false, err
	}
	next, changed := fn(items)
	if !changed {
		return items, false, nil
	}
	if err := s.repo.Save(ctx, planID, next); err != nil {
		return nil, false, err
	}
	s.observer.ChecklistChanged(planID, next)
	return next, true, nil
}

// Toggle flips the checked state of an item.
func (s *ChecklistService) Toggle(ctx context.Context, planID, itemID string) ([]domain.ChecklistItem, bool, error) {
	items, changed, err := s.mutate(ctx, planID, func(items []domain.ChecklistItem) ([]domain.ChecklistItem, bool) {
		return domain.ToggleItem(items, itemID)
	})
	if err != nil {
		return nil, false, fmt.Errorf("service.ChecklistService.Toggle: %w", err)
	}
	return items, changed, nil
}

// Add appends an item. Blank text is a no-op; blank category becomes "기타".
func (s *ChecklistService) Add(ctx context.Context, planID, text, category string) ([]domain.ChecklistItem, bool, error) {
	id := s.deps.newID()
	items, changed, err := s.mutate(ctx, planID, func(items []domain.ChecklistItem) ([]domain.ChecklistItem, bool) {
		return domain.AddItem(items, id, text, category)
	})
	if err != nil {
		return nil, false, fmt.Errorf("service.ChecklistService.Add: %w", err)
	}
	return items, changed, nil
}

// Remove deletes an item.
func (s *ChecklistService) Remove(ctx context.Context, planID, itemID string) ([]domain.ChecklistItem, bool, error) {
	items, changed, err := s.mutate(ctx, planID, func(items []domain.ChecklistItem) ([]domain.ChecklistItem, bool) {
		return domain.RemoveItem(items, itemID)
	})
	if err != nil {
		return nil, false, fmt.Errorf("service.ChecklistService.Remove: %w", err)
	}
	return items, changed, nil
}

// Clear deletes the stored checklist. The next read materializes the
// default template again.
func (s *ChecklistService) Clear(ctx context.Context, planID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, planID); err != nil {
		return fmt.Errorf("service.ChecklistService.Clear: %w", err)
	}
	s.observer.ChecklistChanged(planID, []domain.ChecklistItem{})
	return nil
}

// Reassign moves the checklist stored under fromID to toID. Nothing stored
// under fromID is a no-op.
func (s *ChecklistService) Reassign(ctx context.Context, fromID, toID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, found, err := s.repo.Load(ctx, fromID)
	if err != nil {
		return fmt.Errorf("service.ChecklistService.Reassign: %w", err)
	}
	if !found || fromID == toID {
		return nil
	}
	if err := s.repo.Save(ctx, toID, items); err != nil {
		return fmt.Errorf("service.ChecklistService.Reassign: %w", err)
	}
	if err := s.repo.Delete(ctx, fromID); err != nil {
		return fmt.Errorf("service.ChecklistService.Reassign: %w", err)
	}
	s.observer.ChecklistChanged(toID, items)
	return nil
}

// LivePlans reports the ids of every stored plan. It must return an error,
// never an empty set, when the plans cannot be read.
type LivePlans interface {
	LiveIDs(ctx context.Context) (map[string]struct{}, error)
}

// PruneOrphans deletes checklists whose plan no longer exists and returns
// the plan ids removed. Nothing is deleted when plans cannot be read.
func (s *ChecklistService) PruneOrphans(ctx context.Context, plans LivePlans) ([]string, error) {
	live, err := plans.LiveIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ChecklistService.PruneOrphans: %w", err)
	}
	ids, err := s.repo.PlanIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ChecklistService.PruneOrphans: %w", err)
	}
	removed := []string{}
	for _, id := range ids {
		if _, ok := live[id]; ok {
			continue
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return removed, fmt.Errorf("service.ChecklistService.PruneOrphans: %w", err)
		}
		removed = append(removed, id)
	}
	return removed, nil
}
