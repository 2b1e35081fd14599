package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyString(t *testing.T) {
	assert.Equal(t, "checklist/template", TemplateKey().String())
	assert.Equal(t, "checklist/today/America/New_York", TodayKey("America/New_York").String())
	assert.Equal(t, "plan/featured/daily", FeaturedPlanKey("daily", "").String())
	assert.Equal(t, "plan/featured/weekly/Europe/Paris", FeaturedPlanKey("weekly", "Europe/Paris").String())
}

func TestStore_SetAndGet(t *testing.T) {
	s := NewStore()
	key := TodayKey("UTC")

	_, ok := s.Get(key)
	assert.False(t, ok, "unknown key")

	s.SetAuthoritative(key, "v1")
	entry, ok := s.Get(key)
	require.True(t, ok)
	assert.Equal(t, "v1", entry.Value)
	assert.False(t, entry.Provisional)
	assert.False(t, entry.Stale)
}

func TestStore_GenerationsIncrease(t *testing.T) {
	s := NewStore()
	key := TemplateKey()

	s.SetAuthoritative(key, "v1")
	first, _ := s.Get(key)

	s.SetProvisional(key, "v2")
	second, _ := s.Get(key)

	assert.Greater(t, second.Generation, first.Generation)
	assert.True(t, second.Provisional)
}

func TestStore_Restore(t *testing.T) {
	t.Run("puts the snapshot back", func(t *testing.T) {
		s := NewStore()
		key := TodayKey("UTC")

		s.SetAuthoritative(key, "before")
		snapshot, existed := s.Get(key)
		require.True(t, existed)

		s.SetProvisional(key, "optimistic")
		s.Restore(key, snapshot, existed)

		entry, ok := s.Get(key)
		require.True(t, ok)
		assert.Equal(t, "before", entry.Value)
		assert.False(t, entry.Provisional)
	})

	t.Run("removes the key when it did not exist before", func(t *testing.T) {
		s := NewStore()
		key := TodayKey("UTC")

		snapshot, existed := s.Get(key)
		require.False(t, existed)

		s.SetProvisional(key, "optimistic")
		s.Restore(key, snapshot, existed)

		_, ok := s.Get(key)
		assert.False(t, ok)
	})
}

func TestStore_Invalidate(t *testing.T) {
	s := NewStore()
	key := TodayKey("UTC")

	s.Invalidate(key) // unknown key is a no-op
	assert.Equal(t, 0, s.Len())

	s.SetAuthoritative(key, "v1")
	s.Invalidate(key)

	entry, ok := s.Get(key)
	require.True(t, ok)
	assert.True(t, entry.Stale)
	assert.Equal(t, "v1", entry.Value, "stale entries keep their value")
}

func TestStore_InvalidatePattern(t *testing.T) {
	s := NewStore()

	// Timezone names contain slashes; the family pattern must still
	// match every member.
	s.SetAuthoritative(TodayKey("UTC"), "a")
	s.SetAuthoritative(TodayKey("America/New_York"), "b")
	s.SetAuthoritative(TemplateKey(), "c")
	s.SetAuthoritative(FeaturedPlanKey("daily", ""), "d")

	s.InvalidatePattern(TodayFamilyPattern)

	for _, key := range []Key{TodayKey("UTC"), TodayKey("America/New_York")} {
		entry, ok := s.Get(key)
		require.True(t, ok)
		assert.True(t, entry.Stale, "key %s should be stale", key)
	}

	for _, key := range []Key{TemplateKey(), FeaturedPlanKey("daily", "")} {
		entry, ok := s.Get(key)
		require.True(t, ok)
		assert.False(t, entry.Stale, "key %s should be untouched", key)
	}
}

func TestStore_InvalidatePatternNotifiesWithOriginalKeys(t *testing.T) {
	s := NewStore()
	s.SetAuthoritative(TodayKey("America/New_York"), "a")

	var seen []Key
	s.Subscribe(func(k Key) { seen = append(seen, k) })

	s.InvalidatePattern(TodayFamilyPattern)

	// Subscribers get the key as it was written, kind and params intact,
	// so they can dispatch on Kind without reparsing the rendered form.
	require.Len(t, seen, 1)
	assert.Equal(t, "checklist/today", seen[0].Kind)
	assert.Equal(t, []string{"America/New_York"}, seen[0].Params)
}

func TestStore_Subscribe(t *testing.T) {
	s := NewStore()
	key := TodayKey("UTC")

	var seen []string
	s.Subscribe(func(k Key) { seen = append(seen, k.String()) })

	s.SetAuthoritative(key, "v1")
	s.SetProvisional(key, "v2")
	s.Invalidate(key)

	assert.Equal(t, []string{
		"checklist/today/UTC",
		"checklist/today/UTC",
		"checklist/today/UTC",
	}, seen)
}
