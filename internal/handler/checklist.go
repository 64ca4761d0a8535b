package handler

import (
	"net/http"

	"github.com/tourday/planner/internal/domain"
)

// Checklist is the body of checklist reads and mutations.
type Checklist struct {
	Items   []domain.ChecklistItem `json:"items"`
	Summary ChecklistSummary       `json:"summary"`
}

// ChecklistSummary mirrors domain.ChecklistSummary with a rendered subtotal
// per group.
type ChecklistSummary struct {
	Checked  int              `json:"checked"`
	Total    int              `json:"total"`
	Progress float64          `json:"progress"`
	Groups   []ChecklistGroup `json:"groups"`
}

// ChecklistGroup is one category of the summary.
type ChecklistGroup struct {
	Category string `json:"category"`
	Checked  int    `json:"checked"`
	Total    int    `json:"total"`
	Subtotal string `json:"subtotal"`
}

// AddChecklistItemRequest is the body of POST /plans/{planId}/checklist.
type AddChecklistItemRequest struct {
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
}

func checklistToResponse(items []domain.ChecklistItem) Checklist {
	if items == nil {
		items = []domain.ChecklistItem{}
	}
	sum := domain.SummarizeChecklist(items)
	groups := make([]ChecklistGroup, len(sum.Groups))
	for i, g := range sum.Groups {
		groups[i] = ChecklistGroup{Category: g.Category, Checked: g.Checked, Total: g.Total, Subtotal: g.Subtotal()}
	}
	return Checklist{
		Items: items,
		Summary: ChecklistSummary{
			Checked:  sum.Checked,
			Total:    sum.Total,
			Progress: sum.Progress,
			Groups:   groups,
		},
	}
}

// GetChecklist handles GET /plans/{planId}/checklist.
// The default template is stored on first read.
func (s *Server) GetChecklist(w http.ResponseWriter, r *http.Request) {
	var planID string
	if !pathParam(w, r, "planId", &planID) {
		return
	}
	items, err := s.checklists.MaterializeOrLoad(r.Context(), planID)
	if err != nil {
		s.writeServiceError(w, r, err, "checklist not found")
		return
	}
	writeJSON(w, http.StatusOK, checklistToResponse(items))
}

// AddChecklistItem handles POST /plans/{planId}/checklist.
// Returns 201 when the item was added and 200 when the text was blank.
func (s *Server) AddChecklistItem(w http.ResponseWriter, r *http.Request) {
	var planID string
	if !pathParam(w, r, "planId", &planID) {
		return
	}
	var body AddChecklistItemRequest
	if !decodeBody(w, r, &body) {
		return
	}

	items, changed, err := s.checklists.Add(r.Context(), planID, body.Text, body.Category)
	if err != nil {
		s.writeServiceError(w, r, err, "checklist not found")
		return
	}
	status := http.StatusOK
	if changed {
		status = http.StatusCreated
	}
	writeJSON(w, status, checklistToResponse(items))
}

// ToggleChecklistItem handles POST /plans/{planId}/checklist/{itemId}/toggle.
// An unknown item id leaves the checklist unchanged.
func (s *Server) ToggleChecklistItem(w http.ResponseWriter, r *http.Request) {
	var planID, itemID string
	if !pathParam(w, r, "planId", &planID) || !pathParam(w, r, "itemId", &itemID) {
		return
	}
	items, _, err := s.checklists.Toggle(r.Context(), planID, itemID)
	if err != nil {
		s.writeServiceError(w, r, err, "checklist not found")
		return
	}
	writeJSON(w, http.StatusOK, checklistToResponse(items))
}

// RemoveChecklistItem handles DELETE /plans/{planId}/checklist/{itemId}.
func (s *Server) RemoveChecklistItem(w http.ResponseWriter, r *http.Request) {
	var planID, itemID string
	if !pathParam(w, r, "planId", &planID) || !pathParam(w, r, "itemId", &itemID) {
		return
	}
	if _, _, err := s.checklists.Remove(r.Context(), planID, itemID); err != nil {
		s.writeServiceError(w, r, err, "checklist not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearChecklist handles DELETE /plans/{planId}/checklist.
// The next read starts again from the default template.
func (s *Server) ClearChecklist(w http.ResponseWriter, r *http.Request) {
	var planID string
	if !pathParam(w, r, "planId", &planID) {
		return
	}
	if err := s.checklists.Clear(r.Context(), planID); err != nil {
		s.writeServiceError(w, r, err, "checklist not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
