package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lirajourney/internal/models"
	"github.com/vytor/lirajourney/internal/testutil"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("DATA_DIR", filepath.Join(root, "data"))
	t.Setenv("OUTPUT_DIR", filepath.Join(root, "out"))
	t.Setenv("STATIC_DIR", filepath.Join(root, "static"))
	t.Setenv("TEMPLATES_DIR", "")
	t.Setenv("QUEUE_PATH", filepath.Join(root, "data", "review_queue.json"))
	t.Setenv("HISTORY_DB_PATH", filepath.Join(root, "history.db"))
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("REVIEW_LIMIT", "6")
	t.Setenv("RANDOM_SEED", "3")
	return root
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQueueCommands(t *testing.T) {
	setupEnv(t)

	out, err := runCLI(t, "queue", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Queue is empty")

	out, err = runCLI(t, "queue", "add", "w_macht", "--character", "king_lear", "--phase", "throne")
	require.NoError(t, err)
	assert.Contains(t, out, "Queued w_macht/king_lear/throne")

	out, err = runCLI(t, "queue", "add", "w_macht", "--character", "king_lear", "--phase", "throne")
	require.NoError(t, err)
	assert.Contains(t, out, "already queued")

	out, err = runCLI(t, "queue", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "w_macht")
	assert.Contains(t, out, "king_lear")

	_, err = runCLI(t, "queue", "remove", "w_macht")
	assert.Error(t, err, "key parts must all match")

	out, err = runCLI(t, "queue", "remove", "w_macht", "--character", "king_lear", "--phase", "throne")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 entries, 0 remaining")

	_, err = runCLI(t, "queue", "add", "w_sturm")
	require.NoError(t, err)
	out, err = runCLI(t, "queue", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 1 entries")
}

func TestQueuePreview(t *testing.T) {
	root := setupEnv(t)
	testutil.WriteFile(t, filepath.Join(root, "data", "vocabulary"), "vocabulary.json",
		`{"vocabulary": [{"id": "w_krone", "german": "Krone", "article": "die", "translation": "корона", "emoji": "👑"}]}`)

	out, err := runCLI(t, "queue", "preview")
	require.NoError(t, err)
	assert.Contains(t, out, "👑 die Krone")
	assert.Contains(t, out, "корона")
}

func TestGenerateAndHistory(t *testing.T) {
	root := setupEnv(t)
	testutil.WriteFile(t, filepath.Join(root, "data"), "site.toml", "character_order = [\"cordelia\", \"edgar\"]\n")
	testutil.WriteFile(t, filepath.Join(root, "data", "characters"), "cordelia.json", `{
  "id": "cordelia", "name": "Корделия", "title": "Младшая дочь",
  "journey_phases": [{"id": "love", "title": "Любовь", "description": "Ничего",
    "vocabulary": [{"german": "die Liebe", "russian": "любовь"}, {"german": "die Wahrheit", "russian": "правда"}]}]
}`)

	out, err := runCLI(t, "generate", "--no-progress")
	require.NoError(t, err)
	assert.Contains(t, out, "cordelia")
	assert.Contains(t, out, "Missing character files: edgar")
	assert.Contains(t, out, "partial (found 1 of 2, generated 1, failed 0)")
	assert.FileExists(t, filepath.Join(root, "out", "journeys", "cordelia.html"))
	assert.FileExists(t, filepath.Join(root, "out", "index.html"))

	out, err = runCLI(t, "history", "--character", "cordelia")
	require.NoError(t, err)
	assert.Contains(t, out, models.RunStatusPartial)
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "Last cordelia page: generated in run")

	out, err = runCLI(t, "history", "--character", "edgar")
	require.NoError(t, err)
	assert.Contains(t, out, "No build runs recorded")

	_, err = runCLI(t, "history", "--status", "bogus")
	assert.Error(t, err)
}

func TestGenerate_NothingGeneratedFails(t *testing.T) {
	setupEnv(t)

	out, err := runCLI(t, "generate", "--no-progress")
	assert.ErrorIs(t, err, errNothingGenerated)
	assert.Contains(t, out, "failed (found 0 of 12")
}

func TestInvalidConfigFails(t *testing.T) {
	setupEnv(t)
	t.Setenv("REVIEW_LIMIT", "0")

	_, err := runCLI(t, "queue", "list")
	assert.ErrorContains(t, err, "REVIEW_LIMIT")
}

func TestRenderRuns(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	finished := now.Add(-2*time.Hour + 1500*time.Millisecond)
	out := renderRuns([]models.BuildRun{
		{ID: "run-1", Status: models.RunStatusOK, StartedAt: now.Add(-2 * time.Hour), FinishedAt: &finished, CharactersFound: 12, CharactersExpected: 12, PagesGenerated: 12},
		{ID: "run-2", Status: models.RunStatusRunning, StartedAt: now.Add(-time.Minute)},
	}, now)

	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "12/12")
	assert.Contains(t, out, "1 minute ago")
}

func TestRenderTable_PadsShortRows(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"x"}}, []columnAlignment{alignLeft, alignRight})
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "x")
	assert.Empty(t, renderTable(nil, nil, nil))
}
