// Package handler implements the HTTP handlers for the planner API.
// All handlers are methods on Server. Methods are split into resource files
// (health.go, plan.go, etc.) but share the same Server struct so they can
// access its dependencies. RegisterRoutes mounts them on a chi router.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tourday/planner/internal/domain"
	"github.com/tourday/planner/internal/events"
	"github.com/tourday/planner/internal/service"
	"github.com/tourday/planner/internal/wizard"
)

// PlanServicer defines the plan operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching storage or the service layer.
type PlanServicer interface {
	Search(ctx context.Context, params service.SearchParams) ([]domain.TravelPlan, domain.PageMeta, error)
	GetByID(ctx context.Context, id string) (domain.TravelPlan, error)
	CreateFromDraft(ctx context.Context, d wizard.Draft) (domain.TravelPlan, error)
	Update(ctx context.Context, id string, u service.PlanUpdate) (domain.TravelPlan, error)
	Delete(ctx context.Context, id string) error
	View(p domain.TravelPlan, defaultCurrency string) service.PlanView
}

// ScheduleServicer defines the activity operations of a plan's days.
type ScheduleServicer interface {
	AddActivity(ctx context.Context, planID string, dayNumber int, draft domain.ActivityDraft) (domain.TravelPlan, domain.Activity, error)
	UpdateActivity(ctx context.Context, planID string, dayNumber int, activityID string, draft domain.ActivityDraft) (domain.TravelPlan, bool, error)
	RemoveActivity(ctx context.Context, planID string, dayNumber int, activityID string) (domain.TravelPlan, bool, error)
}

// ChecklistServicer defines the checklist operations.
type ChecklistServicer interface {
	MaterializeOrLoad(ctx context.Context, planID string) ([]domain.ChecklistItem, error)
	Add(ctx context.Context, planID, text, category string) ([]domain.ChecklistItem, bool, error)
	Toggle(ctx context.Context, planID, itemID string) ([]domain.ChecklistItem, bool, error)
	Remove(ctx context.Context, planID, itemID string) ([]domain.ChecklistItem, bool, error)
	Clear(ctx context.Context, planID string) error
}

// EventHub accepts websocket subscribers.
type EventHub interface {
	Register(ctx context.Context, c *events.Client) error
	Unregister(ctx context.Context, c *events.Client)
}

// Options carries the non-service settings of a Server.
type Options struct {
	Log             *slog.Logger
	DefaultCurrency string
	// CheckOrigin validates the Origin of websocket upgrades. Nil allows all.
	CheckOrigin func(r *http.Request) bool
}

// Server serves every API endpoint.
type Server struct {
	plans      PlanServicer
	schedule   ScheduleServicer
	checklists ChecklistServicer
	hub        EventHub

	log         *slog.Logger
	currency    string
	checkOrigin func(r *http.Request) bool
}

// NewServer constructs the Server with all its dependencies.
// Any service may be nil when the caller only mounts a subset of routes.
func NewServer(plans PlanServicer, schedule ScheduleServicer, checklists ChecklistServicer, hub EventHub, opts Options) *Server {
	s := &Server{
		plans:       plans,
		schedule:    schedule,
		checklists:  checklists,
		hub:         hub,
		log:         opts.Log,
		currency:    opts.DefaultCurrency,
		checkOrigin: opts.CheckOrigin,
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	if s.currency == "" {
		s.currency = domain.DefaultCurrency
	}
	return s
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil, Options{})
}

// RegisterRoutes mounts every endpoint on r.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/ws", s.ServeWS)

	r.Route("/plans", func(r chi.Router) {
		r.Get("/", s.ListPlans)
		r.Post("/", s.CreatePlan)

		r.Route("/{planId}", func(r chi.Router) {
			r.Get("/", s.GetPlan)
			r.Put("/", s.UpdatePlan)
			r.Delete("/", s.DeletePlan)
			r.Get("/budget", s.GetBudget)
			r.Get("/export", s.ExportSchedule)

			r.Post("/days/{dayNumber}/activities", s.AddActivity)
			r.Put("/days/{dayNumber}/activities/{activityId}", s.UpdateActivity)
			r.Delete("/days/{dayNumber}/activities/{activityId}", s.RemoveActivity)

			r.Get("/checklist", s.GetChecklist)
			r.Post("/checklist", s.AddChecklistItem)
			r.Delete("/checklist", s.ClearChecklist)
			r.Post("/checklist/{itemId}/toggle", s.ToggleChecklistItem)
			r.Delete("/checklist/{itemId}", s.RemoveChecklistItem)
		})
	})
}

// Handler returns a chi router with every endpoint registered and no middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.RegisterRoutes(r)
	return r
}
