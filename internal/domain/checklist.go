package domain

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultChecklistCategory is assigned to items added without a category.
const DefaultChecklistCategory = "기타"

// ChecklistItem is one entry of a plan's preparation checklist.
// Category is free text; items are grouped by it in insertion order.
type ChecklistItem struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Checked  bool   `json:"checked"`
	Category string `json:"category"`
}

// ChecklistTemplateItem is a row of the default checklist table.
type ChecklistTemplateItem struct {
	Text     string
	Category string
}

// DefaultChecklistTemplate is materialized for a plan the first time its
// checklist is read and nothing is stored yet.
var DefaultChecklistTemplate = []ChecklistTemplateItem{
	{Text: "여권 확인", Category: "출발 전"},
	{Text: "항공권 출력/저장", Category: "출발 전"},
	{Text: "현금 환전", Category: "출발 전"},
	{Text: "여행자 보험 가입", Category: "출발 전"},
	{Text: "해외 유심/로밍", Category: "출발 전"},
	{Text: "호텔 예약 확인", Category: "현지 준비"},
	{Text: "레스토랑 예약", Category: "현지 준비"},
	{Text: "교통패스 구매", Category: "현지 준비"},
	{Text: "옷가방 준비", Category: "짐 싸기"},
	{Text: "세면도구", Category: "짐 싸기"},
	{Text: "충전기/어댑터", Category: "짐 싸기"},
	{Text: "상비약", Category: "짐 싸기"},
}

// NewDefaultChecklist builds unchecked items from DefaultChecklistTemplate,
// calling newID once per item.
func NewDefaultChecklist(newID func() string) []ChecklistItem {
	items := make([]ChecklistItem, len(DefaultChecklistTemplate))
	for i, t := range DefaultChecklistTemplate {
		items[i] = ChecklistItem{ID: newID(), Text: t.Text, Category: t.Category}
	}
	return items
}

// ToggleItem returns a copy of items with the matching item's Checked flipped.
// changed is false when no item has the id.
func ToggleItem(items []ChecklistItem, id string) ([]ChecklistItem, bool) {
	idx := slices.IndexFunc(items, func(it ChecklistItem) bool { return it.ID == id })
	if idx < 0 {
		return items, false
	}
	out := slices.Clone(items)
	out[idx].Checked = !out[idx].Checked
	return out, true
}

// AddItem returns a copy of items with a new unchecked item appended.
// Blank text is a no-op (changed=false). A blank category becomes
// DefaultChecklistCategory.
func AddItem(items []ChecklistItem, id, text, category string) ([]ChecklistItem, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return items, false
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultChecklistCategory
	}
	out := append(slices.Clone(items), ChecklistItem{ID: id, Text: text, Category: category})
	return out, true
}

// RemoveItem returns a copy of items without the matching item.
func RemoveItem(items []ChecklistItem, id string) ([]ChecklistItem, bool) {
	if !slices.ContainsFunc(items, func(it ChecklistItem) bool { return it.ID == id }) {
		return items, false
	}
	out := slices.DeleteFunc(slices.Clone(items), func(it ChecklistItem) bool { return it.ID == id })
	return out, true
}

// ChecklistGroup is the items of one category with their progress.
type ChecklistGroup struct {
	Category string          `json:"category"`
	Checked  int             `json:"checked"`
	Total    int             `json:"total"`
	Items    []ChecklistItem `json:"items"`
}

// Subtotal renders the group progress as "checked/total", e.g. "1/3".
func (g ChecklistGroup) Subtotal() string {
	return fmt.Sprintf("%d/%d", g.Checked, g.Total)
}

// ChecklistSummary is the derived progress view of a checklist.
type ChecklistSummary struct {
	Checked  int              `json:"checked"`
	Total    int              `json:"total"`
	Progress float64          `json:"progress"` // 0-100
	Groups   []ChecklistGroup `json:"groups"`
}

// SummarizeChecklist computes overall progress and per-category groups.
// Groups appear in order of each category's first item. Progress is 0 for an
// empty checklist.
func SummarizeChecklist(items []ChecklistItem) ChecklistSummary {
	sum := ChecklistSummary{Groups: []ChecklistGroup{}}
	index := make(map[string]int)

	for _, it := range items {
		i, ok := index[it.Category]
		if !ok {
			i = len(sum.Groups)
			index[it.Category] = i
			sum.Groups = append(sum.Groups, ChecklistGroup{Category: it.Category})
		}
		g := &sum.Groups[i]
		g.Items = append(g.Items, it)
		g.Total++
		sum.Total++
		if it.Checked {
			g.Checked++
			sum.Checked++
		}
	}

	if sum.Total > 0 {
		sum.Progress = float64(sum.Checked) * 100 / float64(sum.Total)
	}
	return sum
}
