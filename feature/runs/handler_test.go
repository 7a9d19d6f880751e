package runs

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"refsync/core/database"
	"refsync/core/keymap"
)

func setupApp(t *testing.T) (*fiber.App, *keymap.Store) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	store := keymap.NewStore(db)
	require.NoError(t, store.Migrate())

	app := fiber.New()
	feature := NewFeature(store, zap.NewNop())
	require.NoError(t, feature.Load(app))
	return app, store
}

func TestHandleHealth(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestHandleListRuns(t *testing.T) {
	app, store := setupApp(t)

	require.NoError(t, store.CreateRun(&keymap.ImportRun{UID: "run-1", StartedAt: time.Now()}))
	require.NoError(t, store.CreateRun(&keymap.ImportRun{UID: "run-2", StartedAt: time.Now()}))
	require.NoError(t, store.AppendRecords([]keymap.ImportRecord{
		{RunID: 1, SourceKey: "AAAAAAAA", TargetID: 100},
		{RunID: 1, SourceKey: "BBBBBBBB", TargetID: 101},
	}))

	resp, err := app.Test(httptest.NewRequest("GET", "/runs", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var summaries []keymap.RunSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summaries))
	require.Len(t, summaries, 2)
	assert.Equal(t, "run-2", summaries[0].UID)
	assert.Equal(t, int64(0), summaries[0].RecordCount)
	assert.Equal(t, "run-1", summaries[1].UID)
	assert.Equal(t, int64(2), summaries[1].RecordCount)
}

func TestHandleListRuns_Limit(t *testing.T) {
	app, store := setupApp(t)

	for _, uid := range []string{"run-1", "run-2", "run-3"} {
		require.NoError(t, store.CreateRun(&keymap.ImportRun{UID: uid, StartedAt: time.Now()}))
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/runs?limit=1", nil))
	require.NoError(t, err)

	var summaries []keymap.RunSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "run-3", summaries[0].UID)
}
