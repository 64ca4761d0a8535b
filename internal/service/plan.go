package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/tourday/planner/internal/domain"
	"github.com/tourday/planner/internal/repo"
	"github.com/tourday/planner/internal/wizard"
)

// ChecklistLinker is the part of checklist management plan lifecycle needs.
type ChecklistLinker interface {
	Reassign(ctx context.Context, fromID, toID string) error
	Clear(ctx context.Context, planID string) error
}

// PlanService implements business logic for plans.
type PlanService struct {
	repo       repo.PlanRepo
	checklists ChecklistLinker
	observer   PlanObserver
	deps       deps

	// mu serializes load-modify-save sequences that span several repo calls.
	mu sync.Mutex
}

// NewPlanService constructs a PlanService. observer may be nil.
func NewPlanService(r repo.PlanRepo, checklists ChecklistLinker, observer PlanObserver, opts ...Option) *PlanService {
	if observer == nil {
		observer = nopObserver{}
	}
	return &PlanService{repo: r, checklists: checklists, observer: observer, deps: buildDeps(opts)}
}

// List returns every plan in stored order. Never nil.
func (s *PlanService) List(ctx context.Context) ([]domain.TravelPlan, error) {
	plans, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.PlanService.List: %w", err)
	}
	if plans == nil {
		plans = []domain.TravelPlan{}
	}
	return plans, nil
}

// LiveIDs returns the id of every stored plan. Unlike List it fails when the
// collection cannot be read, so callers never mistake an outage for an empty
// store.
func (s *PlanService) LiveIDs(ctx context.Context) (map[string]struct{}, error) {
	plans, err := s.repo.LoadAllStrict(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.PlanService.LiveIDs: %w", err)
	}
	ids := make(map[string]struct{}, len(plans))
	for _, p := range plans {
		ids[p.ID] = struct{}{}
	}
	return ids, nil
}

// QuarantineCorrupt moves an unparsable plan collection aside under a
// timestamped backup key so plans can be saved again. moved is false when
// the collection was readable.
func (s *PlanService) QuarantineCorrupt(ctx context.Context) (backupKey string, moved bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	suffix := ".corrupt-" + s.deps.now().UTC().Format("20060102T150405Z")
	backupKey, moved, err = s.repo.Quarantine(ctx, suffix)
	if err != nil {
		return backupKey, false, fmt.Errorf("service.PlanService.QuarantineCorrupt: %w", err)
	}
	return backupKey, moved, nil
}

// GetByID returns the plan with the given id, or domain.ErrNotFound.
func (s *PlanService) GetByID(ctx context.Context, id string) (domain.TravelPlan, error) {
	plans, err := s.repo.LoadAll(ctx)
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("service.PlanService.GetByID: %w", err)
	}
	p, ok := find(plans, id)
	if !ok {
		return domain.TravelPlan{}, fmt.Errorf("service.PlanService.GetByID: plan %q: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

// Upsert replaces the stored plan with the same id, bumping UpdatedAt and
// keeping the original CreatedAt, or appends it as a new plan.
func (s *PlanService) Upsert(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.upsertLocked(ctx, plan)
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("service.PlanService.Upsert: %w", err)
	}
	return saved, nil
}

func (s *PlanService) upsertLocked(ctx context.Context, plan domain.TravelPlan) (domain.TravelPlan, error) {
	plans, err := s.repo.LoadAll(ctx)
	if err != nil {
		return domain.TravelPlan{}, err
	}
	if existing, ok := find(plans, plan.ID); ok {
		plan.CreatedAt = existing.CreatedAt
		plan.UpdatedAt = s.deps.now()
	}
	if err := s.repo.Save(ctx, plan); err != nil {
		return domain.TravelPlan{}, err
	}
	s.observer.PlanSaved(plan)
	return plan, nil
}

// Mutate applies fn to a copy of the plan and saves the result when fn
// reports a change. TotalSpent is recomputed before saving. The returned
// plan is the stored state either way.
func (s *PlanService) Mutate(ctx context.Context, id string, fn func(p *domain.TravelPlan) (bool, error)) (domain.TravelPlan, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.TravelPlan{}, false, err
	}

	next := current.Clone()
	changed, err := fn(&next)
	if err != nil {
		return domain.TravelPlan{}, false, err
	}
	if !changed {
		return current, false, nil
	}

	next.ID = current.ID
	next.RecomputeTotalSpent()
	saved, err := s.upsertLocked(ctx, next)
	if err != nil {
		return domain.TravelPlan{}, false, fmt.Errorf("service.PlanService.Mutate: %w", err)
	}
	return saved, true, nil
}

// Delete removes the plan and its checklist.
// Returns domain.ErrNotFound if the plan does not exist.
func (s *PlanService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("service.PlanService.Delete: %w", err)
	}
	if err := s.checklists.Clear(ctx, id); err != nil {
		return fmt.Errorf("service.PlanService.Delete: checklist: %w", err)
	}
	s.observer.PlanDeleted(id)
	return nil
}

// SearchParams narrows a plan listing.
type SearchParams struct {
	Query  string
	Filter domain.PlanFilter
	Page   domain.PaginationParams
}

// Search returns plans matching the query and filter, newest first.
func (s *PlanService) Search(ctx context.Context, params SearchParams) ([]domain.TravelPlan, domain.PageMeta, error) {
	plans, err := s.List(ctx)
	if err != nil {
		return nil, domain.PageMeta{}, fmt.Errorf("service.PlanService.Search: %w", err)
	}

	now := s.deps.now()
	matched := make([]domain.TravelPlan, 0, len(plans))
	for _, p := range plans {
		if p.Matches(params.Query) && params.Filter.Keep(p, now) {
			matched = append(matched, p)
		}
	}
	slices.SortStableFunc(matched, func(a, b domain.TravelPlan) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	page := params.Page
	if page.Limit == 0 {
		page = domain.NewPaginationParams(nil, nil)
	}
	out, meta := domain.Paginate(matched, page)
	return out, meta, nil
}

// PlanUpdate carries the editable plan fields. Nil fields are left as is.
// Dates cannot change once days are generated.
type PlanUpdate struct {
	Title       *string
	Destination *string
	Country     *string
	Budget      *float64
	Currency    *string
	Members     []string // nil leaves members unchanged; empty clears them
}

// Update applies the non-nil fields of u to the plan.
func (s *PlanService) Update(ctx context.Context, id string, u PlanUpdate) (domain.TravelPlan, error) {
	p, _, err := s.Mutate(ctx, id, func(p *domain.TravelPlan) (bool, error) {
		for _, f := range []struct {
			name string
			src  *string
			dst  *string
		}{
			{"title", u.Title, &p.Title},
			{"destination", u.Destination, &p.Destination},
			{"country", u.Country, &p.Country},
		} {
			if f.src == nil {
				continue
			}
			v := strings.TrimSpace(*f.src)
			if v == "" {
				return false, fmt.Errorf("%w: %s is required", domain.ErrValidation, f.name)
			}
			*f.dst = v
		}

		if u.Budget != nil {
			if *u.Budget < 0 {
				return false, fmt.Errorf("%w: budget must not be negative", domain.ErrValidation)
			}
			p.Budget = *u.Budget
		}
		if u.Currency != nil {
			c, ok := domain.LookupCurrency(*u.Currency)
			if !ok {
				return false, fmt.Errorf("%w: unsupported currency %q", domain.ErrValidation, *u.Currency)
			}
			p.Currency = c.Code
		}
		if u.Members != nil {
			w := wizard.Resume(wizard.Draft{Members: u.Members})
			p.Members = w.Draft().Members
		}
		return true, nil
	})
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("service.PlanService.Update: %w", err)
	}
	return p, nil
}

// CreateFromDraft validates the wizard draft, persists the new plan, and
// moves any draft checklist onto the new plan id.
func (s *PlanService) CreateFromDraft(ctx context.Context, d wizard.Draft) (domain.TravelPlan, error) {
	plan, err := wizard.Build(d, s.deps.newID(), s.deps.now())
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("service.PlanService.CreateFromDraft: %w", err)
	}

	saved, err := s.Upsert(ctx, plan)
	if err != nil {
		return domain.TravelPlan{}, fmt.Errorf("service.PlanService.CreateFromDraft: %w", err)
	}

	if d.DraftChecklistID != "" {
		if err := s.checklists.Reassign(ctx, d.DraftChecklistID, saved.ID); err != nil {
			return domain.TravelPlan{}, fmt.Errorf("service.PlanService.CreateFromDraft: checklist: %w", err)
		}
	}
	return saved, nil
}

// PlanView is a plan with its derived budget and stats.
type PlanView struct {
	domain.TravelPlan
	BudgetSummary domain.BudgetSummary `json:"budgetSummary"`
	Stats         domain.PlanStats     `json:"stats"`
}

// View derives the budget summary and stats of a plan at the current time.
func (s *PlanService) View(p domain.TravelPlan, defaultCurrency string) PlanView {
	return PlanView{
		TravelPlan:    p,
		BudgetSummary: domain.Summarize(p.Budget, p.TotalSpent),
		Stats:         domain.ComputeStats(p, s.deps.now(), defaultCurrency),
	}
}

// Now exposes the service clock so callers format relative dates consistently.
func (s *PlanService) Now() time.Time { return s.deps.now() }

func find(plans []domain.TravelPlan, id string) (domain.TravelPlan, bool) {
	i := slices.IndexFunc(plans, func(p domain.TravelPlan) bool { return p.ID == id })
	if i < 0 {
		return domain.TravelPlan{}, false
	}
	return plans[i], true
}
