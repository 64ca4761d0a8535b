package events

import (
	"encoding/json"
	"time"

	"github.com/tourday/planner/internal/domain"
)

// MessageType identifies the kind of event.
type MessageType string

const (
	TypePlanSaved        MessageType = "plan.saved"
	TypePlanDeleted      MessageType = "plan.deleted"
	TypeChecklistChanged MessageType = "checklist.changed"
)

// Message is the envelope written to clients.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload"`
}

// NewMessage stamps a message with the current time.
func NewMessage(t MessageType, payload any) Message {
	return Message{Type: t, Timestamp: time.Now().UTC(), Payload: payload}
}

// JSON serializes the message.
func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// PlanSavedPayload summarizes a written plan.
type PlanSavedPayload struct {
	PlanID     string              `json:"planId"`
	Title      string              `json:"title"`
	TotalSpent float64             `json:"totalSpent"`
	Budget     float64             `json:"budget"`
	Status     domain.BudgetStatus `json:"budgetStatus"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// PlanDeletedPayload names a removed plan.
type PlanDeletedPayload struct {
	PlanID string `json:"planId"`
}

// ChecklistChangedPayload carries the full checklist after a change.
type ChecklistChangedPayload struct {
	PlanID   string                 `json:"planId"`
	Items    []domain.ChecklistItem `json:"items"`
	Progress float64                `json:"progress"`
}
