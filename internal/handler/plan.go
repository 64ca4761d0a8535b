package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tourday/planner/internal/domain"
	"github.com/tourday/planner/internal/service"
	"github.com/tourday/planner/internal/wizard"
)

// CreatePlanRequest is the body of POST /plans: the completed wizard draft.
type CreatePlanRequest struct {
	Title            string              `json:"title"`
	Destination      string              `json:"destination"`
	Country          string              `json:"country"`
	Currency         *string             `json:"currency,omitempty"`
	Budget           float64             `json:"budget"`
	StartDate        *openapi_types.Date `json:"startDate"`
	EndDate          *openapi_types.Date `json:"endDate"`
	Members          []string            `json:"members,omitempty"`
	DraftChecklistID *string             `json:"draftChecklistId,omitempty"`
}

// UpdatePlanRequest is the body of PUT /plans/{planId}. Absent fields are
// left unchanged; an empty members array clears the members.
type UpdatePlanRequest struct {
	Title       *string  `json:"title,omitempty"`
	Destination *string  `json:"destination,omitempty"`
	Country     *string  `json:"country,omitempty"`
	Budget      *float64 `json:"budget,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
	Members     []string `json:"members,omitempty"`
}

// PlanList is the body of GET /plans.
type PlanList struct {
	Data       []PlanListItem  `json:"data"`
	Pagination domain.PageMeta `json:"pagination"`
}

// PlanListItem is a plan card: the plan without its days plus its budget.
type PlanListItem struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	Destination   string               `json:"destination"`
	Country       string               `json:"country"`
	StartDate     string               `json:"startDate"`
	EndDate       string               `json:"endDate"`
	DayCount      int                  `json:"dayCount"`
	BudgetSummary domain.BudgetSummary `json:"budgetSummary"`
	DaysUntil     int                  `json:"daysUntil"`
}

// ListPlans handles GET /plans.
// Supports ?q= (title/destination search), ?filter=all|upcoming|past and
// ?page= / ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) ListPlans(w http.ResponseWriter, r *http.Request) {
	var (
		q, filter   *string
		page, limit *int
	)
	if !queryParam(w, r, "q", &q) || !queryParam(w, r, "filter", &filter) ||
		!queryParam(w, r, "page", &page) || !queryParam(w, r, "limit", &limit) {
		return
	}

	params := service.SearchParams{Page: domain.NewPaginationParams(page, limit)}
	if q != nil {
		params.Query = *q
	}
	var err error
	if params.Filter, err = domain.ParsePlanFilter(deref(filter)); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}

	plans, meta, err := s.plans.Search(r.Context(), params)
	if err != nil {
		s.writeServiceError(w, r, err, "plan not found")
		return
	}

	data := make([]PlanListItem, len(plans))
	for i, p := range plans {
		v := s.plans.View(p, s.currency)
		data[i] = PlanListItem{
			ID:            p.ID,
			Title:         p.Title,
			Destination:   p.Destination,
			Country:       p.Country,
			StartDate:     p.StartDate,
			EndDate:       p.EndDate,
			DayCount:      len(p.Days),
			BudgetSummary: v.BudgetSummary,
			DaysUntil:     v.Stats.DaysUntil,
		}
	}
	writeJSON(w, http.StatusOK, PlanList{Data: data, Pagination: meta})
}

// CreatePlan handles POST /plans.
func (s *Server) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var body CreatePlanRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.plans.CreateFromDraft(r.Context(), requestToDraft(body))
	if err != nil {
		s.writeServiceError(w, r, err, "plan not found")
		return
	}
	writeJSON(w, http.StatusCreated, s.plans.View(created, s.currency))
}

// GetPlan handles GET /plans/{planId}.
func (s *Server) GetPlan(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadPlan(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.plans.View(p, s.currency))
}

// GetBudget handles GET /plans/{planId}/budget.
func (s *Server) GetBudget(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadPlan(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.plans.View(p, s.currency).BudgetSummary)
}

// UpdatePlan handles PUT /plans/{planId}.
func (s *Server) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	var planID string
	if !pathParam(w, r, "planId", &planID) {
		return
	}
	var body UpdatePlanRequest
	if !decodeBody(w, r, &body) {
		return
	}

	updated, err := s.plans.Update(r.Context(), planID, service.PlanUpdate{
		Title:       body.Title,
		Destination: body.Destination,
		Country:     body.Country,
		Budget:      body.Budget,
		Currency:    body.Currency,
		Members:     body.Members,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "plan not found")
		return
	}
	writeJSON(w, http.StatusOK, s.plans.View(updated, s.currency))
}

// DeletePlan handles DELETE /plans/{planId}.
func (s *Server) DeletePlan(w http.ResponseWriter, r *http.Request) {
	var planID string
	if !pathParam(w, r, "planId", &planID) {
		return
	}
	if err := s.plans.Delete(r.Context(), planID); err != nil {
		s.writeServiceError(w, r, err, "plan not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// loadPlan binds {planId} and fetches the plan, writing the error response
// on failure.
func (s *Server) loadPlan(w http.ResponseWriter, r *http.Request) (domain.TravelPlan, bool) {
	var planID string
	if !pathParam(w, r, "planId", &planID) {
		return domain.TravelPlan{}, false
	}
	p, err := s.plans.GetByID(r.Context(), planID)
	if err != nil {
		s.writeServiceError(w, r, err, "plan not found")
		return domain.TravelPlan{}, false
	}
	return p, true
}

// --- mapping helpers --------------------------------------------------------

// requestToDraft converts a CreatePlanRequest into a wizard.Draft. Missing
// dates become empty strings and are rejected by the service.
func requestToDraft(body CreatePlanRequest) wizard.Draft {
	d := wizard.Draft{
		Title:            body.Title,
		Destination:      body.Destination,
		Country:          body.Country,
		Currency:         deref(body.Currency),
		Budget:           body.Budget,
		Members:          body.Members,
		DraftChecklistID: deref(body.DraftChecklistID),
	}
	if body.StartDate != nil {
		d.StartDate = body.StartDate.Format(domain.DateLayout)
	}
	if body.EndDate != nil {
		d.EndDate = body.EndDate.Format(domain.DateLayout)
	}
	return d
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
