package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-app/daybook/internal/core/plan"
)

func TestFetchFeaturedPlan(t *testing.T) {
	t.Run("builds the request per contract", func(t *testing.T) {
		session := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/insights/featured", r.URL.Path)
			assert.Equal(t, "weekly", r.URL.Query().Get("type"))
			assert.Equal(t, "America/New_York", r.URL.Query().Get("tz"))
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			assert.Equal(t, "en-US", r.Header.Get("Accept-Language"))
			w.WriteHeader(http.StatusNoContent)
		}))

		_, err := session.FetchFeaturedPlan(context.Background(), plan.TypeWeekly, "America/New_York")
		require.NoError(t, err)
	})

	t.Run("omits tz when none supplied", func(t *testing.T) {
		session := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, has := r.URL.Query()["tz"]
			assert.False(t, has)
			w.WriteHeader(http.StatusNoContent)
		}))

		_, err := session.FetchFeaturedPlan(context.Background(), plan.TypeDaily, "")
		require.NoError(t, err)
	})

	t.Run("200 with a plan resolves to that plan", func(t *testing.T) {
		session := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"id":"pl-1","title":"ES breakout","type":"daily","bias":"long","primaryModel":"ORB","keyLevels":[5030.25],"tags":[],"symbols":["ES"]}`))
		}))

		featured, err := session.FetchFeaturedPlan(context.Background(), plan.TypeDaily, "UTC")
		require.NoError(t, err)
		require.NotNil(t, featured)
		assert.Equal(t, "pl-1", featured.ID)
		assert.Equal(t, plan.TypeDaily, featured.Type)
	})

	t.Run("404 and 204 both mean none featured", func(t *testing.T) {
		for _, status := range []int{http.StatusNotFound, http.StatusNoContent} {
			t.Run(fmt.Sprintf("status %d", status), func(t *testing.T) {
				session := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(status)
				}))

				featured, err := session.FetchFeaturedPlan(context.Background(), plan.TypeDaily, "UTC")
				require.NoError(t, err)
				assert.Nil(t, featured)
			})
		}
	})

	t.Run("null body on 200 means none featured", func(t *testing.T) {
		session := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`null`))
		}))

		featured, err := session.FetchFeaturedPlan(context.Background(), plan.TypeDaily, "UTC")
		require.NoError(t, err)
		assert.Nil(t, featured)
	})

	t.Run("500 rejects with the contract message", func(t *testing.T) {
		session := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		_, err := session.FetchFeaturedPlan(context.Background(), plan.TypeDaily, "Europe/Paris")
		require.Error(t, err)
		assert.Equal(t,
			"featuredDailyPlan failed: 500 Internal Server Error (/insights/featured?type=daily&tz=Europe%2FParis)",
			err.Error())
	})

	t.Run("weekly failures carry the weekly query name", func(t *testing.T) {
		session := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))

		_, err := session.FetchFeaturedPlan(context.Background(), plan.TypeWeekly, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "featuredWeeklyPlan failed: 502 Bad Gateway")
	})

	t.Run("malformed body is distinct from a status failure", func(t *testing.T) {
		session := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		}))

		_, err := session.FetchFeaturedPlan(context.Background(), plan.TypeDaily, "UTC")
		require.Error(t, err)

		var payloadErr *PayloadError
		require.ErrorAs(t, err, &payloadErr)
		assert.Contains(t, err.Error(), "featuredDailyPlan failed:")

		var statusErr *StatusError
		assert.False(t, errors.As(err, &statusErr))
	})

	t.Run("transport failure wraps with the query name", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		session, err := NewSession(Options{
			BaseURL: srv.URL,
			Locale:  "en",
			Client:  srv.Client(),
		}, zerolog.Nop())
		require.NoError(t, err)
		srv.Close()

		_, err = session.FetchFeaturedPlan(context.Background(), plan.TypeDaily, "UTC")
		require.Error(t, err)

		var transportErr *TransportError
		require.ErrorAs(t, err, &transportErr)
		assert.Contains(t, err.Error(), "featuredDailyPlan failed:")
	})

	t.Run("rejects unknown plan types", func(t *testing.T) {
		session := newTestSession(t, http.NotFoundHandler())
		_, err := session.FetchFeaturedPlan(context.Background(), plan.Type("hourly"), "")
		require.Error(t, err)
	})
}
