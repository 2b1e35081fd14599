// Package plan defines the featured trading plan surfaced by the journal
// server's insights endpoint.
package plan

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type distinguishes the cadence of a featured plan.
type Type string

// Supported plan types.
const (
	TypeDaily  Type = "daily"
	TypeWeekly Type = "weekly"
)

// Valid reports whether t is a known plan type.
func (t Type) Valid() bool {
	return t == TypeDaily || t == TypeWeekly
}

// QueryName is the human-readable name of the lookup for this plan type.
// It is embedded in error messages and is part of the observable contract.
func (t Type) QueryName() string {
	if t == TypeWeekly {
		return "featuredWeeklyPlan"
	}
	return "featuredDailyPlan"
}

// Featured is a server-curated trading plan. A nil *Featured is a valid,
// meaningful value: no plan is currently featured.
type Featured struct {
	ID           string            `json:"id"`
	Slug         string            `json:"slug,omitempty"`
	Title        string            `json:"title"`
	Type         Type              `json:"type"`
	Bias         string            `json:"bias"`
	PrimaryModel string            `json:"primaryModel"`
	KeyLevels    []decimal.Decimal `json:"keyLevels"`
	Tags         []string          `json:"tags"`
	Symbols      []string          `json:"symbols"`
	WeekStart    string            `json:"weekStart,omitempty"`
	WeekEnd      string            `json:"weekEnd,omitempty"`
	PublishedAt  *time.Time        `json:"publishedAt,omitempty"`
	UpdatedAt    *time.Time        `json:"updatedAt,omitempty"`
}
