// Package checklist defines the trading checklist domain types and the
// payload validation rules for values received from the journal server.
package checklist

import (
	"encoding/json"
	"errors"
)

// ErrInvalidToday is returned when a today-checklist payload is missing its
// date or items. The message text is a stable contract; callers and tests
// match on it.
var ErrInvalidToday = errors.New("Invalid today checklist response")

// TemplateItem is one entry of the user's recurring checklist template.
// The ID is server-assigned and empty until the item has been persisted.
type TemplateItem struct {
	ID        string `json:"id,omitempty"`
	Text      string `json:"text"`
	SortOrder int    `json:"sortOrder"`
	Enabled   bool   `json:"enabled"`
}

// TodayItem is a single per-day checklist entry with completion state.
type TodayItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Today is the per-day instantiation of the checklist template. Date is the
// server's calendar day (resolved against the requested timezone), not the
// client clock.
type Today struct {
	Date  string      `json:"date"`
	Items []TodayItem `json:"items"`
}

// Update flips the completion state of a single item for a given day.
// A batch of updates targets disjoint item ids, so ordering within the
// batch is irrelevant.
type Update struct {
	ChecklistItemID string `json:"checklistItemId"`
	Completed       bool   `json:"completed"`
}

// ValidateToday checks that a raw payload has the required today-checklist
// shape: a string date and a list of items. A partial payload is not a
// degraded value, it is a hard failure.
func ValidateToday(raw []byte) (Today, error) {
	var probe struct {
		Date  any `json:"date"`
		Items any `json:"items"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Today{}, ErrInvalidToday
	}
	if _, ok := probe.Date.(string); !ok {
		return Today{}, ErrInvalidToday
	}
	if _, ok := probe.Items.([]any); !ok {
		return Today{}, ErrInvalidToday
	}

	var today Today
	if err := json.Unmarshal(raw, &today); err != nil {
		return Today{}, ErrInvalidToday
	}
	if today.Items == nil {
		today.Items = []TodayItem{}
	}
	return today, nil
}

// NormalizeTemplate decodes a template-list payload. Lists are never
// invalid, only empty: null, absent, or non-list payloads all normalize to
// an empty slice.
func NormalizeTemplate(raw []byte) []TemplateItem {
	if len(raw) == 0 {
		return []TemplateItem{}
	}

	var items []TemplateItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return []TemplateItem{}
	}
	if items == nil {
		return []TemplateItem{}
	}
	return items
}

// ApplyUpdates returns a copy of today with the completion flags from the
// batch applied. Items whose id does not appear in the batch are untouched.
// Applying the same batch twice yields the same result as applying it once.
func ApplyUpdates(today Today, updates []Update) Today {
	completed := make(map[string]bool, len(updates))
	for _, u := range updates {
		completed[u.ChecklistItemID] = u.Completed
	}

	items := make([]TodayItem, len(today.Items))
	copy(items, today.Items)
	for i, item := range items {
		if done, ok := completed[item.ID]; ok {
			items[i].Completed = done
		}
	}

	return Today{Date: today.Date, Items: items}
}
