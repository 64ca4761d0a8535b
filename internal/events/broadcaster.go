package events

import (
	"log/slog"

	"github.com/tourday/planner/internal/domain"
)

// Broadcaster turns service notifications into hub messages.
// It satisfies service.PlanObserver and service.ChecklistObserver.
type Broadcaster struct {
	hub *Hub
	log *slog.Logger
}

// NewBroadcaster creates a Broadcaster publishing to hub.
func NewBroadcaster(hub *Hub, log *slog.Logger) *Broadcaster {
	return &Broadcaster{hub: hub, log: log}
}

func (b *Broadcaster) PlanSaved(p domain.TravelPlan) {
	b.publish(NewMessage(TypePlanSaved, PlanSavedPayload{
		PlanID:     p.ID,
		Title:      p.Title,
		TotalSpent: p.TotalSpent,
		Budget:     p.Budget,
		Status:     domain.Summarize(p.Budget, p.TotalSpent).Status,
		UpdatedAt:  p.UpdatedAt,
	}))
}

func (b *Broadcaster) PlanDeleted(planID string) {
	b.publish(NewMessage(TypePlanDeleted, PlanDeletedPayload{PlanID: planID}))
}

func (b *Broadcaster) ChecklistChanged(planID string, items []domain.ChecklistItem) {
	if items == nil {
		items = []domain.ChecklistItem{}
	}
	b.publish(NewMessage(TypeChecklistChanged, ChecklistChangedPayload{
		PlanID:   planID,
		Items:    items,
		Progress: domain.SummarizeChecklist(items).Progress,
	}))
}

func (b *Broadcaster) publish(m Message) {
	raw, err := m.JSON()
	if err != nil {
		b.log.Error("encode event", slog.String("type", string(m.Type)), slog.String("error", err.Error()))
		return
	}
	b.hub.Broadcast(raw)
}
