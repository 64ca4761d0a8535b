// Package service contains the business logic for the planner.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No storage details live here: services depend on repo interfaces.
package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/tourday/planner/internal/domain"
)

// PlanObserver is notified after a plan is written or removed.
type PlanObserver interface {
	PlanSaved(plan domain.TravelPlan)
	PlanDeleted(planID string)
}

// ChecklistObserver receives the full item list after every checklist mutation.
type ChecklistObserver interface {
	ChecklistChanged(planID string, items []domain.ChecklistItem)
}

type nopObserver struct{}

func (nopObserver) PlanSaved(domain.TravelPlan)                      {}
func (nopObserver) PlanDeleted(string)                               {}
func (nopObserver) ChecklistChanged(string, []domain.ChecklistItem) {}

// deps are the replaceable collaborators shared by every service.
type deps struct {
	now   func() time.Time
	newID func() string
}

func defaultDeps() deps {
	return deps{
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.NewString() },
	}
}

// Option customizes a service at construction time.
type Option func(*deps)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *deps) { d.now = now }
}

// WithIDGenerator replaces the UUID v4 generator used for new ids.
func WithIDGenerator(newID func() string) Option {
	return func(d *deps) { d.newID = newID }
}

func buildDeps(opts []Option) deps {
	d := defaultDeps()
	for _, o := range opts {
		o(&d)
	}
	return d
}
