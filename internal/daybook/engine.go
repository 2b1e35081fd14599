// Package daybook wires the remote access layer and the cache store into
// the synchronization engine the rest of the application talks to.
package daybook

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/daybook-app/daybook/internal/api"
	"github.com/daybook-app/daybook/internal/core/cache"
	"github.com/daybook-app/daybook/internal/core/checklist"
	"github.com/daybook-app/daybook/internal/core/plan"
)

// KeyState tracks where a cache key is in the mutation protocol.
type KeyState int

// Key states. A key with no recorded state is Idle.
const (
	StateIdle KeyState = iota
	StateMutationInFlight
	StateReconciling
)

// Engine orchestrates read-through caching and optimistic mutations. It is
// the only writer to the cache store; consumers read the store, subscribe
// to it, and hand mutation intents to the engine.
type Engine struct {
	store *cache.Store
	api   *api.Session
	log   zerolog.Logger

	mu     sync.Mutex
	tokens map[string]uint64
	states map[string]KeyState
}

// NewEngine creates an engine over the given store and API session.
func NewEngine(store *cache.Store, session *api.Session, log zerolog.Logger) *Engine {
	return &Engine{
		store:  store,
		api:    session,
		log:    log.With().Str("component", "engine").Logger(),
		tokens: make(map[string]uint64),
		states: make(map[string]KeyState),
	}
}

// Store exposes the cache store for subscription. Consumers must treat it
// as read-only.
func (e *Engine) Store() *cache.Store { return e.store }

// State returns the mutation state of a key.
func (e *Engine) State(key cache.Key) KeyState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.states[key.String()]
}

func (e *Engine) setState(key cache.Key, s KeyState) {
	e.mu.Lock()
	e.states[key.String()] = s
	e.mu.Unlock()
}

// issueToken invalidates every outstanding read for key and returns the
// token a new read must present to land its result.
func (e *Engine) issueToken(key cache.Key) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tokens[key.String()]++
	return e.tokens[key.String()]
}

func (e *Engine) tokenValid(key cache.Key, token uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tokens[key.String()] == token
}

// ReadToday returns the checklist for the server's current day in tz,
// serving the cache when it holds a fresh value. A stale or unknown key
// goes to the server; the fetched value only lands in the cache if no
// mutation superseded the read while it was in flight.
func (e *Engine) ReadToday(ctx context.Context, tz string) (checklist.Today, error) {
	key := cache.TodayKey(tz)

	if entry, ok := e.store.Get(key); ok && !entry.Stale {
		if today, ok := entry.Value.(checklist.Today); ok {
			return today, nil
		}
	}

	token := e.issueToken(key)
	today, err := e.api.FetchTodayChecklist(ctx, tz)
	if err != nil {
		return checklist.Today{}, err
	}

	if !e.tokenValid(key, token) {
		// Superseded by a mutation while in flight. The stale result
		// must not overwrite the provisional value; serve whatever
		// the cache holds now.
		e.log.Debug().Str("key", key.String()).Msg("read superseded, discarding result")
		if entry, ok := e.store.Get(key); ok {
			if cached, ok := entry.Value.(checklist.Today); ok {
				return cached, nil
			}
		}
		return today, nil
	}

	e.store.SetAuthoritative(key, today)
	return today, nil
}

// ToggleToday applies a batch of completion changes for the given date.
// The cached value is updated optimistically before the server responds,
// then either replaced by the server's authoritative copy or rolled back
// to the pre-mutation snapshot. Either way the key ends up marked stale so
// the next read resynchronizes.
func (e *Engine) ToggleToday(ctx context.Context, tz, date string, updates []checklist.Update) (checklist.Today, error) {
	key := cache.TodayKey(tz)

	// A mutation always supersedes an outstanding plain read.
	e.issueToken(key)
	e.setState(key, StateMutationInFlight)

	snapshot, existed := e.store.Get(key)

	// Optimistic apply, but only when the cached value is for the same
	// calendar day. Around day rollover the cache may hold yesterday;
	// writing the update into it would fabricate state, so the network
	// call stays the sole source of truth.
	if existed {
		if cached, ok := snapshot.Value.(checklist.Today); ok && cached.Date == date {
			e.store.SetProvisional(key, checklist.ApplyUpdates(cached, updates))
		}
	}

	result, err := e.api.UpdateTodayChecklist(ctx, date, updates)

	e.setState(key, StateReconciling)
	defer e.setState(key, StateIdle)

	if err != nil {
		e.store.Restore(key, snapshot, existed)
		e.store.Invalidate(key)
		return checklist.Today{}, err
	}

	// The server copy wins over the locally computed one; it may differ,
	// e.g. after a day rollover or a concurrent update elsewhere.
	e.store.SetAuthoritative(key, result)
	e.store.Invalidate(key)
	return result, nil
}

// ReadTemplate returns the checklist template, read-through cached.
func (e *Engine) ReadTemplate(ctx context.Context) ([]checklist.TemplateItem, error) {
	key := cache.TemplateKey()

	if entry, ok := e.store.Get(key); ok && !entry.Stale {
		if items, ok := entry.Value.([]checklist.TemplateItem); ok {
			return items, nil
		}
	}

	token := e.issueToken(key)
	items, err := e.api.FetchChecklistTemplate(ctx)
	if err != nil {
		return nil, err
	}
	if e.tokenValid(key, token) {
		e.store.SetAuthoritative(key, items)
	}
	return items, nil
}

// SaveTemplate submits the full replacement template. A template change
// can add, remove, or reorder the items every per-day view is built from,
// so after settlement the template key and the entire today-checklist key
// family are invalidated, one today key per timezone previously queried.
// That holds on failure too: the write may have landed server-side even
// though the response failed, so nothing cached about checklists can be
// trusted until the next read resynchronizes.
func (e *Engine) SaveTemplate(ctx context.Context, items []checklist.TemplateItem) ([]checklist.TemplateItem, error) {
	key := cache.TemplateKey()
	e.issueToken(key)

	result, err := e.api.SaveChecklistTemplate(ctx, items)
	if err != nil {
		e.store.Invalidate(key)
		e.store.InvalidatePattern(cache.TodayFamilyPattern)
		return nil, err
	}

	e.store.SetAuthoritative(key, result)
	e.store.Invalidate(key)
	e.store.InvalidatePattern(cache.TodayFamilyPattern)
	return result, nil
}

// ReadFeatured returns the featured plan of the given type, read-through
// cached. A nil plan is an authoritative answer ("nothing is featured")
// and is cached like any other value.
func (e *Engine) ReadFeatured(ctx context.Context, planType plan.Type, tz string) (*plan.Featured, error) {
	key := cache.FeaturedPlanKey(string(planType), tz)

	if entry, ok := e.store.Get(key); ok && !entry.Stale {
		if featured, ok := entry.Value.(*plan.Featured); ok {
			return featured, nil
		}
	}

	token := e.issueToken(key)
	featured, err := e.api.FetchFeaturedPlan(ctx, planType, tz)
	if err != nil {
		return nil, err
	}
	if e.tokenValid(key, token) {
		e.store.SetAuthoritative(key, featured)
	}
	return featured, nil
}

// Refresh marks a key stale so the next read goes to the server.
func (e *Engine) Refresh(key cache.Key) {
	e.store.Invalidate(key)
}
