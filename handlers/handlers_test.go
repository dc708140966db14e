// ABOUTME: Shared test fixtures for MCP tool handler tests
// ABOUTME: In-memory database plus an engine on a fixed clock
package handlers

import (
	"database/sql"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"suivi/db"
	"suivi/engine"
	"suivi/models"
)

type testFixture struct {
	db     *sql.DB
	engine *engine.Engine
	clock  *engine.FixedClock
}

func setupTest(t *testing.T) *testFixture {
	t.Helper()

	database, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, db.InitSchema(database))

	clock := &engine.FixedClock{Time: time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)}
	eng := engine.New(database, clock, log.New(io.Discard))
	return &testFixture{db: database, engine: eng, clock: clock}
}

func (f *testFixture) createContact(t *testing.T, name string) *models.Contact {
	t.Helper()
	contact := &models.Contact{Name: name, Email: name + "@example.com", Status: models.StatusWarm}
	require.NoError(t, db.CreateContact(f.db, contact))
	return contact
}
