package service

import (
	"context"
	"fmt"

	"github.com/tourday/planner/internal/domain"
)

// ScheduleService edits the activities of a plan's days. Every edit
// recomputes the plan's TotalSpent and writes the whole plan through.
type ScheduleService struct {
	plans *PlanService
	deps  deps
}

// NewScheduleService constructs a ScheduleService writing through plans.
func NewScheduleService(plans *PlanService, opts ...Option) *ScheduleService {
	return &ScheduleService{plans: plans, deps: buildDeps(opts)}
}

// AddActivity adds an activity to day dayNumber of the plan.
// Returns domain.ErrNotFound for an unknown plan or day and
// domain.ErrValidation for an invalid draft.
func (s *ScheduleService) AddActivity(ctx context.Context, planID string, dayNumber int, draft domain.ActivityDraft) (domain.TravelPlan, domain.Activity, error) {
	id := s.deps.newID()
	plan, _, err := s.plans.Mutate(ctx, planID, func(p *domain.TravelPlan) (bool, error) {
		day, err := dayOf(p, dayNumber)
		if err != nil {
			return false, err
		}
		next, err := domain.AddActivity(*day, id, draft)
		if err != nil {
			return false, err
		}
		*day = next
		return true, nil
	})
	if err != nil {
		return domain.TravelPlan{}, domain.Activity{}, fmt.Errorf("service.ScheduleService.AddActivity: %w", err)
	}

	day, _ := plan.Day(dayNumber)
	for _, a := range day.Activities {
		if a.ID == id {
			return plan, a, nil
		}
	}
	return plan, domain.Activity{}, nil
}

// UpdateActivity replaces the activity's fields. An unknown activity id is a
// no-op reported by changed=false.
func (s *ScheduleService) UpdateActivity(ctx context.Context, planID string, dayNumber int, activityID string, draft domain.ActivityDraft) (domain.TravelPlan, bool, error) {
	plan, changed, err := s.plans.Mutate(ctx, planID, func(p *domain.TravelPlan) (bool, error) {
		day, err := dayOf(p, dayNumber)
		if err != nil {
			return false, err
		}
		next, changed, err := domain.UpdateActivity(*day, activityID, draft)
		if err != nil || !changed {
			return false, err
		}
		*day = next
		return true, nil
	})
	if err != nil {
		return domain.TravelPlan{}, false, fmt.Errorf("service.ScheduleService.UpdateActivity: %w", err)
	}
	return plan, changed, nil
}

// RemoveActivity deletes the activity. An unknown activity id is a no-op
// reported by changed=false.
func (s *ScheduleService) RemoveActivity(ctx context.Context, planID string, dayNumber int, activityID string) (domain.TravelPlan, bool, error) {
	plan, changed, err := s.plans.Mutate(ctx, planID, func(p *domain.TravelPlan) (bool, error) {
		day, err := dayOf(p, dayNumber)
		if err != nil {
			return false, err
		}
		next, changed := domain.RemoveActivity(*day, activityID)
		if !changed {
			return false, nil
		}
		*day = next
		return true, nil
	})
	if err != nil {
		return domain.TravelPlan{}, false, fmt.Errorf("service.ScheduleService.RemoveActivity: %w", err)
	}
	return plan, changed, nil
}

func dayOf(p *domain.TravelPlan, dayNumber int) (*domain.DayPlan, error) {
	if dayNumber < 1 || dayNumber > len(p.Days) {
		return nil, fmt.Errorf("day %d: %w", dayNumber, domain.ErrNotFound)
	}
	return &p.Days[dayNumber-1], nil
}
