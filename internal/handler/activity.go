package handler

import (
	"net/http"

	"github.com/tourday/planner/internal/domain"
	"github.com/tourday/planner/internal/service"
)

// ActivityRequest is the body of activity create and update.
type ActivityRequest struct {
	Time     string          `json:"time"`
	Title    string          `json:"title"`
	Category domain.Category `json:"category"`
	Location string          `json:"location,omitempty"`
	Cost     *float64        `json:"cost,omitempty"`
	Memo     string          `json:"memo,omitempty"`
	Duration *int            `json:"duration,omitempty"`
}

func (a ActivityRequest) draft() domain.ActivityDraft {
	return domain.ActivityDraft{
		Time:     a.Time,
		Title:    a.Title,
		Category: a.Category,
		Location: a.Location,
		Cost:     a.Cost,
		Memo:     a.Memo,
		Duration: a.Duration,
	}
}

// ActivityCreated is the body of a successful activity create: the new
// activity and the updated plan.
type ActivityCreated struct {
	Activity domain.Activity  `json:"activity"`
	Plan     service.PlanView `json:"plan"`
}

// dayRef binds the {planId} and {dayNumber} path parameters.
func dayRef(w http.ResponseWriter, r *http.Request) (planID string, dayNumber int, ok bool) {
	if !pathParam(w, r, "planId", &planID) || !pathParam(w, r, "dayNumber", &dayNumber) {
		return "", 0, false
	}
	return planID, dayNumber, true
}

// AddActivity handles POST /plans/{planId}/days/{dayNumber}/activities.
func (s *Server) AddActivity(w http.ResponseWriter, r *http.Request) {
	planID, dayNumber, ok := dayRef(w, r)
	if !ok {
		return
	}
	var body ActivityRequest
	if !decodeBody(w, r, &body) {
		return
	}

	p, a, err := s.schedule.AddActivity(r.Context(), planID, dayNumber, body.draft())
	if err != nil {
		s.writeServiceError(w, r, err, "plan or day not found")
		return
	}
	writeJSON(w, http.StatusCreated, ActivityCreated{Activity: a, Plan: s.plans.View(p, s.currency)})
}

// UpdateActivity handles PUT /plans/{planId}/days/{dayNumber}/activities/{activityId}.
// An unknown activity id leaves the plan unchanged and still answers 200.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	planID, dayNumber, ok := dayRef(w, r)
	if !ok {
		return
	}
	var activityID string
	if !pathParam(w, r, "activityId", &activityID) {
		return
	}
	var body ActivityRequest
	if !decodeBody(w, r, &body) {
		return
	}

	p, _, err := s.schedule.UpdateActivity(r.Context(), planID, dayNumber, activityID, body.draft())
	if err != nil {
		s.writeServiceError(w, r, err, "plan or day not found")
		return
	}
	writeJSON(w, http.StatusOK, s.plans.View(p, s.currency))
}

// RemoveActivity handles DELETE /plans/{planId}/days/{dayNumber}/activities/{activityId}.
func (s *Server) RemoveActivity(w http.ResponseWriter, r *http.Request) {
	planID, dayNumber, ok := dayRef(w, r)
	if !ok {
		return
	}
	var activityID string
	if !pathParam(w, r, "activityId", &activityID) {
		return
	}

	if _, _, err := s.schedule.RemoveActivity(r.Context(), planID, dayNumber, activityID); err != nil {
		s.writeServiceError(w, r, err, "plan or day not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
