package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/aeobrien/deadline-calendar/internal/repository"
	"github.com/aeobrien/deadline-calendar/internal/schedule"
	"github.com/aeobrien/deadline-calendar/internal/testutil"
)

// core bundles everything a service test needs, backed by an in-memory
// SQLite database so write-through persistence is exercised for real.
type core struct {
	DB       *sql.DB
	Store    *schedule.Store
	Catalog  testutil.StaticCatalog
	Projects ProjectService
	Triggers TriggerService
}

func setupCore(t *testing.T, clock func() time.Time) *core {
	t.Helper()

	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectSetRepo(database, testutil.NewTestUoW(database))
	catalog := testutil.StaticCatalog{"essay": testutil.NewEssayTemplate()}

	store := schedule.NewStore(repo, catalog)
	engine := schedule.NewEngine(store, catalog, clock)

	return &core{
		DB:       database,
		Store:    store,
		Catalog:  catalog,
		Projects: NewProjectService(store, catalog),
		Triggers: NewTriggerService(store, engine),
	}
}

// rehydrate builds a fresh store over the same database, proving the
// write-through actually persisted.
func (c *core) rehydrate(t *testing.T) *schedule.Store {
	t.Helper()
	repo := repository.NewSQLiteProjectSetRepo(c.DB, testutil.NewTestUoW(c.DB))
	fresh := schedule.NewStore(repo, c.Catalog)
	if err := fresh.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrating fresh store: %v", err)
	}
	return fresh
}
