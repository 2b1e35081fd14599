package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/daybook-app/daybook/internal/core/plan"
)

const featuredPath = "/insights/featured"

// FetchFeaturedPlan looks up the currently featured plan of the given type.
// The lookup has a richer taxonomy than the checklist calls because "not
// found" is an answer here: 404 and 204 both resolve to (nil, nil). Every
// failure is wrapped with the query name (featuredDailyPlan or
// featuredWeeklyPlan); that wrapping is part of the observable contract.
func (s *Session) FetchFeaturedPlan(ctx context.Context, planType plan.Type, tz string) (*plan.Featured, error) {
	if !planType.Valid() {
		return nil, fmt.Errorf("unknown plan type %q", planType)
	}
	queryName := planType.QueryName()

	query := url.Values{"type": {string(planType)}}
	if tz != "" {
		query.Set("tz", tz)
	}

	status, raw, endpoint, err := s.do(ctx, http.MethodGet, featuredPath, query, nil)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", queryName, err)
	}

	outcome, err := classify(endpoint, status, true)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", queryName, err)
	}
	if outcome == outcomeEmpty {
		return nil, nil
	}

	// A 2xx with an empty or null body also means nothing is featured.
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}

	var featured plan.Featured
	if err := json.Unmarshal(raw, &featured); err != nil {
		return nil, fmt.Errorf("%s failed: %w", queryName, &PayloadError{Endpoint: endpoint})
	}
	return &featured, nil
}
