// Package cache provides the process-wide keyed store for last-known-good
// remote state, with subscription and invalidation semantics.
package cache

import "strings"

// Key identifies one cached remote value. It is a composite of an entity
// kind tag and the ordered request parameters that scope it (for example
// the timezone a today-checklist was resolved against). Two keys are equal
// iff their rendered forms are equal.
type Key struct {
	Kind   string
	Params []string
}

// NewKey builds a key from a kind tag and its parameters.
func NewKey(kind string, params ...string) Key {
	return Key{Kind: kind, Params: params}
}

// String renders the key as a stable path-like identifier, e.g.
// "checklist/today/America/New_York". The rendered form is what the store
// maps on and what invalidation patterns match against.
func (k Key) String() string {
	if len(k.Params) == 0 {
		return k.Kind
	}
	return k.Kind + "/" + strings.Join(k.Params, "/")
}

// Well-known key constructors. Keeping them here stops ad hoc key strings
// from spreading through the codebase.

// TemplateKey is the cache key for the checklist template.
func TemplateKey() Key {
	return NewKey("checklist/template")
}

// TodayKey is the cache key for the today checklist resolved in tz.
func TodayKey(tz string) Key {
	return NewKey("checklist/today", tz)
}

// TodayFamilyPattern matches every today-checklist key regardless of
// timezone. Timezone names contain slashes, so the pattern uses a
// multi-segment glob.
const TodayFamilyPattern = "checklist/today/**"

// FeaturedPlanKey is the cache key for a featured plan lookup. The timezone
// parameter is optional and may be empty.
func FeaturedPlanKey(planType, tz string) Key {
	if tz == "" {
		return NewKey("plan/featured", planType)
	}
	return NewKey("plan/featured", planType, tz)
}
