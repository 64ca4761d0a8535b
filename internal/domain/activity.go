package domain

import (
	"fmt"
	"strings"
	"time"
)

// Category classifies an activity. The set is fixed.
type Category string

const (
	CategoryFlight     Category = "flight"
	CategoryHotel      Category = "hotel"
	CategoryRestaurant Category = "restaurant"
	CategoryAttraction Category = "attraction"
	CategoryShopping   Category = "shopping"
	CategoryEtc        Category = "etc"
)

// CategoryMeta is the presentation data attached to a category.
type CategoryMeta struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// categoryOrder keeps Categories deterministic; categoryInfo is keyed by it.
var categoryOrder = []Category{
	CategoryFlight, CategoryHotel, CategoryRestaurant,
	CategoryAttraction, CategoryShopping, CategoryEtc,
}

var categoryInfo = map[Category]CategoryMeta{
	CategoryFlight:     {Icon: "✈️", Label: "항공", Color: "blue"},
	CategoryHotel:      {Icon: "🏨", Label: "숙박", Color: "purple"},
	CategoryRestaurant: {Icon: "🍽️", Label: "식사", Color: "orange"},
	CategoryAttraction: {Icon: "🎭", Label: "관광", Color: "green"},
	CategoryShopping:   {Icon: "🛍️", Label: "쇼핑", Color: "pink"},
	CategoryEtc:        {Icon: "📝", Label: "기타", Color: "gray"},
}

// Categories returns every valid category in display order.
func Categories() []Category {
	return append([]Category(nil), categoryOrder...)
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	_, ok := categoryInfo[c]
	return ok
}

// Info returns the presentation metadata for c, falling back to etc.
func (c Category) Info() CategoryMeta {
	if m, ok := categoryInfo[c]; ok {
		return m
	}
	return categoryInfo[CategoryEtc]
}

// DefaultActivityTime is used when an activity is added without a time.
const DefaultActivityTime = "09:00"

// Activity is one scheduled item within a day.
// Cost and Duration are pointers because absence means "not specified",
// which is different from zero.
type Activity struct {
	ID       string   `json:"id"`
	Time     string   `json:"time"` // "15:04"
	Title    string   `json:"title"`
	Category Category `json:"category"`
	Location string   `json:"location,omitempty"`
	Cost     *float64 `json:"cost,omitempty"`
	Memo     string   `json:"memo,omitempty"`
	Duration *int     `json:"duration,omitempty"` // minutes
}

// CostOrZero returns the activity cost, treating an absent cost as 0.
func (a Activity) CostOrZero() float64 {
	if a.Cost == nil {
		return 0
	}
	return *a.Cost
}

func (a Activity) clone() Activity {
	out := a
	if a.Cost != nil {
		c := *a.Cost
		out.Cost = &c
	}
	if a.Duration != nil {
		d := *a.Duration
		out.Duration = &d
	}
	return out
}

// ActivityDraft carries user-supplied activity fields for add and update.
type ActivityDraft struct {
	Time     string
	Title    string
	Category Category
	Location string
	Cost     *float64
	Memo     string
	Duration *int
}

// toActivity validates the draft and applies defaults.
//   - Title must be non-empty after trimming.
//   - Time defaults to DefaultActivityTime and is normalized to zero-padded "15:04"
//     so string comparison orders activities chronologically.
//   - Category defaults to etc and must be one of the fixed set.
//   - Cost and Duration, when present, must not be negative.
func (d ActivityDraft) toActivity(id string) (Activity, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return Activity{}, fmt.Errorf("%w: title is required", ErrValidation)
	}

	clock := strings.TrimSpace(d.Time)
	if clock == "" {
		clock = DefaultActivityTime
	}
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return Activity{}, fmt.Errorf("%w: time must be HH:MM", ErrValidation)
	}

	cat := d.Category
	if cat == "" {
		cat = CategoryEtc
	}
	if !cat.Valid() {
		return Activity{}, fmt.Errorf("%w: unknown category %q", ErrValidation, cat)
	}

	if d.Cost != nil && *d.Cost < 0 {
		return Activity{}, fmt.Errorf("%w: cost must not be negative", ErrValidation)
	}
	if d.Duration != nil && *d.Duration < 0 {
		return Activity{}, fmt.Errorf("%w: duration must not be negative", ErrValidation)
	}

	a := Activity{
		ID:       id,
		Time:     parsed.Format("15:04"),
		Title:    title,
		Category: cat,
		Location: strings.TrimSpace(d.Location),
		Memo:     d.Memo,
		Cost:     d.Cost,
		Duration: d.Duration,
	}
	return a.clone(), nil
}
