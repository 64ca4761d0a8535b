// Package app assembles storage and services from a Config. Both the API
// server and plannerctl start from here so they see the same data the same way.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/tourday/planner/internal/config"
	"github.com/tourday/planner/internal/repo"
	"github.com/tourday/planner/internal/service"
)

// Observer receives change notifications from every service.
type Observer interface {
	service.PlanObserver
	service.ChecklistObserver
}

// Services is the opened store and the services built on it.
type Services struct {
	Store      *repo.Store
	Plans      *service.PlanService
	Schedule   *service.ScheduleService
	Checklists *service.ChecklistService
}

// NewLogger returns a JSON slog logger at the named level. Unknown levels
// fall back to info.
func NewLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// Open connects the configured store, applies pending migrations when
// migrate is set, and builds the services. observer may be nil.
func Open(ctx context.Context, cfg config.Config, log *slog.Logger, observer Observer, migrate bool) (*Services, error) {
	store, err := repo.OpenStore(ctx, repo.StoreOptions{
		Driver:      cfg.StoreDriver,
		SQLitePath:  cfg.SQLitePath,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("app.Open: %w", err)
	}

	if migrate {
		if err := Migrate(ctx, store, log); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("app.Open: %w", err)
		}
	}

	var (
		planObserver      service.PlanObserver
		checklistObserver service.ChecklistObserver
	)
	if observer != nil {
		planObserver, checklistObserver = observer, observer
	}

	checklists := service.NewChecklistService(repo.NewChecklistRepo(store.KV, cfg.StoreNamespace, log), checklistObserver)
	plans := service.NewPlanService(repo.NewPlanRepo(store.KV, cfg.StoreNamespace, log), checklists, planObserver)

	return &Services{
		Store:      store,
		Plans:      plans,
		Schedule:   service.NewScheduleService(plans),
		Checklists: checklists,
	}, nil
}

// Migrate applies pending migrations and logs each one that ran.
func Migrate(ctx context.Context, store *repo.Store, log *slog.Logger) error {
	results, err := store.Migrate(ctx)
	if err != nil {
		return err
	}
	for _, r := range results {
		log.Info("migration applied",
			"version", r.Source.Version,
			"path", r.Source.Path,
			"duration", r.Duration.String(),
		)
	}
	return nil
}

// Close releases the store.
func (s *Services) Close() error {
	return s.Store.Close()
}
