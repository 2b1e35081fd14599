package daybook

import (
	"github.com/daybook-app/daybook/internal/api"
	"github.com/daybook-app/daybook/internal/core/cache"
	"github.com/daybook-app/daybook/internal/core/config"
)

// App bundles the shared application state commands operate on. It is
// allocated once in main and populated in the CLI Before hook.
type App struct {
	Config  *config.Config
	Session *api.Session
	Engine  *Engine
	Cache   *cache.Store
}

// NewApp creates an App from its parts.
func NewApp(cfg *config.Config, session *api.Session, engine *Engine, store *cache.Store) *App {
	return &App{
		Config:  cfg,
		Session: session,
		Engine:  engine,
		Cache:   store,
	}
}
