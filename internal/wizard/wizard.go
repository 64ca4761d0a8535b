// Package wizard is the step machine behind plan creation. It collects the
// draft fields step by step, gates advancement on each step's required
// fields, and assembles the final TravelPlan with its day shells.
package wizard

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tourday/planner/internal/domain"
)

// MaxTripDays caps the number of day shells a plan may carry.
const MaxTripDays = 365

// Step is a wizard page.
type Step int

const (
	StepBasicInfo Step = iota
	StepDates
	StepMembers
	StepSuggestions
	StepChecklist
	StepConfirm
)

var stepNames = [...]string{"basic_info", "dates", "members", "suggestions", "checklist", "confirm"}

func (s Step) String() string {
	if s < StepBasicInfo || s > StepConfirm {
		return fmt.Sprintf("step(%d)", int(s))
	}
	return stepNames[s]
}

// Optional reports whether the step has no required field and may be skipped.
func (s Step) Optional() bool {
	return s == StepMembers || s == StepSuggestions || s == StepChecklist
}

// Draft holds everything collected so far.
type Draft struct {
	Title       string   `json:"title"`
	Destination string   `json:"destination"`
	Country     string   `json:"country"`
	Currency    string   `json:"currency,omitempty"`
	Budget      float64  `json:"budget"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Members     []string `json:"members,omitempty"`

	// DraftChecklistID is the key the checklist was edited under before the
	// plan existed. It is reassigned to the new plan id on creation.
	DraftChecklistID string `json:"draftChecklistId,omitempty"`
}

// missing returns the names of required fields of step that are unset.
func (d Draft) missing(step Step) []string {
	var out []string
	switch step {
	case StepBasicInfo:
		if strings.TrimSpace(d.Title) == "" {
			out = append(out, "title")
		}
		if strings.TrimSpace(d.Destination) == "" {
			out = append(out, "destination")
		}
		if strings.TrimSpace(d.Country) == "" {
			out = append(out, "country")
		}
	case StepDates:
		if strings.TrimSpace(d.StartDate) == "" {
			out = append(out, "startDate")
		}
		if strings.TrimSpace(d.EndDate) == "" {
			out = append(out, "endDate")
		}
	}
	return out
}

// Wizard walks a Draft through the steps. The zero value starts at
// StepBasicInfo with an empty draft.
type Wizard struct {
	step  Step
	draft Draft
}

// New starts a wizard with currency preselected.
func New(currency string) *Wizard {
	return &Wizard{draft: Draft{Currency: currency}}
}

// Resume starts a wizard at StepBasicInfo over an existing draft.
// Members are normalized the same way AddMember does.
func Resume(d Draft) *Wizard {
	w := &Wizard{draft: d}
	w.draft.Members = nil
	for _, m := range d.Members {
		w.AddMember(m)
	}
	return w
}

func (w *Wizard) Step() Step   { return w.step }
func (w *Wizard) Draft() Draft { return w.draft }

// SetBasicInfo fills the first step.
func (w *Wizard) SetBasicInfo(title, destination, country, currency string, budget float64) {
	w.draft.Title = title
	w.draft.Destination = destination
	w.draft.Country = country
	if currency != "" {
		w.draft.Currency = currency
	}
	w.draft.Budget = budget
}

// SetDates fills the date step. Values are "2006-01-02" strings.
func (w *Wizard) SetDates(start, end string) {
	w.draft.StartDate = start
	w.draft.EndDate = end
}

// SetDraftChecklist records the checklist edited during the checklist step.
func (w *Wizard) SetDraftChecklist(id string) {
	w.draft.DraftChecklistID = id
}

// CanAdvance reports whether the current step's required fields are set.
func (w *Wizard) CanAdvance() bool {
	return w.step < StepConfirm && len(w.draft.missing(w.step)) == 0
}

// Next moves to the following step. It returns ErrValidation naming the
// unset fields when the current step is incomplete.
func (w *Wizard) Next() error {
	if w.step >= StepConfirm {
		return fmt.Errorf("%w: already at the last step", domain.ErrValidation)
	}
	if m := w.draft.missing(w.step); len(m) > 0 {
		return fmt.Errorf("%w: %s required", domain.ErrValidation, strings.Join(m, ", "))
	}
	w.step++
	return nil
}

// Prev moves back one step. It is a no-op on the first step.
func (w *Wizard) Prev() {
	if w.step > StepBasicInfo {
		w.step--
	}
}

// Skip advances past an optional step without requiring any input.
func (w *Wizard) Skip() error {
	if !w.step.Optional() {
		return fmt.Errorf("%w: step %s cannot be skipped", domain.ErrValidation, w.step)
	}
	w.step++
	return nil
}

// AddMember appends a trimmed member name. Blank and duplicate names are
// ignored; added reports whether the list changed.
func (w *Wizard) AddMember(name string) (added bool) {
	name = strings.TrimSpace(name)
	if name == "" || slices.Contains(w.draft.Members, name) {
		return false
	}
	w.draft.Members = append(w.draft.Members, name)
	return true
}

// RemoveMember drops the member with exactly this (trimmed) name.
func (w *Wizard) RemoveMember(name string) (removed bool) {
	name = strings.TrimSpace(name)
	before := len(w.draft.Members)
	w.draft.Members = slices.DeleteFunc(w.draft.Members, func(m string) bool { return m == name })
	return len(w.draft.Members) != before
}

// Build validates the whole draft and assembles the plan with empty day
// shells. createdAt and updatedAt are set to now.
func (w *Wizard) Build(id string, now time.Time) (domain.TravelPlan, error) {
	return Build(w.draft, id, now)
}

// Build is the stateless form of Wizard.Build, used when a complete draft
// arrives in one request.
func Build(d Draft, id string, now time.Time) (domain.TravelPlan, error) {
	var missing []string
	for _, s := range []Step{StepBasicInfo, StepDates} {
		missing = append(missing, d.missing(s)...)
	}
	if len(missing) > 0 {
		return domain.TravelPlan{}, fmt.Errorf("%w: %s required", domain.ErrValidation, strings.Join(missing, ", "))
	}

	start, err := domain.ParseDate(d.StartDate)
	if err != nil {
		return domain.TravelPlan{}, err
	}
	end, err := domain.ParseDate(d.EndDate)
	if err != nil {
		return domain.TravelPlan{}, err
	}
	if end.Before(start) {
		return domain.TravelPlan{}, fmt.Errorf("%w: endDate must not be before startDate", domain.ErrValidation)
	}
	if d.Budget < 0 {
		return domain.TravelPlan{}, fmt.Errorf("%w: budget must not be negative", domain.ErrValidation)
	}

	currency := strings.ToUpper(strings.TrimSpace(d.Currency))
	if currency != "" {
		if _, ok := domain.LookupCurrency(currency); !ok {
			return domain.TravelPlan{}, fmt.Errorf("%w: unsupported currency %q", domain.ErrValidation, d.Currency)
		}
	}

	n, err := domain.CalculateDays(d.StartDate, d.EndDate)
	if err != nil {
		return domain.TravelPlan{}, err
	}
	if n > MaxTripDays {
		return domain.TravelPlan{}, fmt.Errorf("%w: trips are limited to %d days", domain.ErrValidation, MaxTripDays)
	}
	days, err := domain.GenerateDays(d.StartDate, n)
	if err != nil {
		return domain.TravelPlan{}, err
	}

	var members []string
	for _, m := range d.Members {
		m = strings.TrimSpace(m)
		if m != "" && !slices.Contains(members, m) {
			members = append(members, m)
		}
	}

	now = now.UTC()
	return domain.TravelPlan{
		ID:          id,
		Title:       strings.TrimSpace(d.Title),
		Destination: strings.TrimSpace(d.Destination),
		Country:     strings.TrimSpace(d.Country),
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Budget:      d.Budget,
		Currency:    currency,
		Members:     members,
		TotalSpent:  0,
		Days:        days,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
