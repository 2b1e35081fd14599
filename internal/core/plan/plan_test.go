package plan

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeQueryName(t *testing.T) {
	assert.Equal(t, "featuredDailyPlan", TypeDaily.QueryName())
	assert.Equal(t, "featuredWeeklyPlan", TypeWeekly.QueryName())
}

func TestTypeValid(t *testing.T) {
	assert.True(t, TypeDaily.Valid())
	assert.True(t, TypeWeekly.Valid())
	assert.False(t, Type("monthly").Valid())
	assert.False(t, Type("").Valid())
}

func TestFeaturedDecode(t *testing.T) {
	raw := []byte(`{
		"id": "pl-1",
		"slug": "es-breakout",
		"title": "ES breakout day",
		"type": "daily",
		"bias": "Long above the open",
		"primaryModel": "opening range",
		"keyLevels": [5030.25, "5018.5"],
		"tags": ["breakout"],
		"symbols": ["ES", "NQ"]
	}`)

	var featured Featured
	require.NoError(t, json.Unmarshal(raw, &featured))

	assert.Equal(t, "pl-1", featured.ID)
	assert.Equal(t, TypeDaily, featured.Type)
	require.Len(t, featured.KeyLevels, 2)
	assert.True(t, featured.KeyLevels[0].Equal(decimal.RequireFromString("5030.25")),
		"key levels decode from bare numbers")
	assert.True(t, featured.KeyLevels[1].Equal(decimal.RequireFromString("5018.5")),
		"key levels decode from quoted numbers")
	assert.Nil(t, featured.PublishedAt)
}
