package services_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lirajourney/internal/config"
	"github.com/vytor/lirajourney/internal/journey"
	"github.com/vytor/lirajourney/internal/models"
	"github.com/vytor/lirajourney/internal/reviewqueue"
	"github.com/vytor/lirajourney/internal/services"
	"github.com/vytor/lirajourney/internal/site"
	"github.com/vytor/lirajourney/internal/testutil"
	"github.com/vytor/lirajourney/internal/testutil/mocks"
	"github.com/vytor/lirajourney/internal/vocabulary"
)

const learJSON = `{
  "id": "lear",
  "name": "Король Лир",
  "title": "Король Британии",
  "journey_phases": [
    {
      "id": "throne",
      "title": "Трон",
      "description": "Король делит королевство",
      "icon": "👑",
      "vocabulary": [
        {"german": "der Thron", "russian": "трон", "sentence_parts": ["Der König", "sitzt auf dem Thron"]},
        {"german": "die Macht", "russian": "власть"},
        {"german": "die Krone", "russian": "корона"},
        {"german": "das Reich", "russian": "королевство"}
      ],
      "theatrical_scene": {
        "title": "Раздел",
        "narrative": "Lear spricht.",
        "exercise_text": "Er verliert ___ (власть)."
      }
    },
    {
      "title": "Буря",
      "description": "Король в степи",
      "vocabulary": [{"german": "der Sturm", "russian": "буря"}]
    }
  ]
}`

const catalogueJSON = `{"vocabulary": [
  {"id": "w_macht", "german": "Macht", "article": "die", "translation": {"ru": "власть"}, "frequency": "high", "level": "A2", "synonyms": ["Gewalt"]},
  {"id": "w_sturm", "german": "Sturm", "article": "der", "translation": "буря", "frequency": "low", "level": "B1"}
]}`

type buildFixture struct {
	cfg   config.Config
	runs  *mocks.MockRunRepository
	pages *mocks.MockPageRepository
	now   time.Time
}

func newBuildFixture(t *testing.T) *buildFixture {
	root := t.TempDir()
	cfg := config.Config{
		DataDir:     filepath.Join(root, "data"),
		OutputDir:   filepath.Join(root, "out"),
		StaticDir:   filepath.Join(root, "static"),
		QueuePath:   filepath.Join(root, "data", "review_queue.json"),
		ReviewLimit: 6,
		RandomSeed:  7,
	}
	testutil.WriteFile(t, cfg.CharactersDir(), "lear.json", learJSON)
	testutil.WriteFile(t, cfg.CharactersDir(), "broken.json", `{"id": "broken", "journey_phases": [`)
	testutil.WriteFile(t, filepath.Dir(cfg.VocabularyPath()), "vocabulary.json", catalogueJSON)
	testutil.WriteFile(t, cfg.StaticDir, "css/index.css", "body {}")

	return &buildFixture{
		cfg:   cfg,
		runs:  new(mocks.MockRunRepository),
		pages: new(mocks.MockPageRepository),
		now:   time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (f *buildFixture) service(t *testing.T, order []string) services.BuildService {
	tmpl, err := site.LoadTemplates("")
	require.NoError(t, err)
	manifest := config.DefaultManifest()
	manifest.CharacterOrder = order
	manifest.Roles = map[string]string{"lear": "Трагический король"}

	return services.NewBuildService(services.BuildDeps{
		Config:     f.cfg,
		Manifest:   manifest,
		Vocabulary: vocabulary.NewIndex(f.cfg.VocabularyPath()),
		Assembler:  journey.NewAssembler(journey.NewQuizBuilderForSeed(f.cfg.RandomSeed)),
		Renderer:   site.NewRenderer(tmpl),
		Queue:      reviewqueue.NewStore(f.cfg.QueuePath),
		Runs:       f.runs,
		Pages:      f.pages,
		Now:        func() time.Time { return f.now },
		NewID:      func() string { return "run-1" },
	})
}

func TestBuildService_GeneratePartial(t *testing.T) {
	f := newBuildFixture(t)
	ctx := context.Background()

	f.runs.On("Create", mock.Anything, mock.MatchedBy(func(r models.BuildRun) bool {
		return r.ID == "run-1" && r.CharactersExpected == 3 && r.Status == models.RunStatusRunning
	})).Return(nil)
	f.pages.On("Insert", mock.Anything, mock.AnythingOfType("models.BuildPage")).Return(int64(1), nil)
	f.runs.On("Finish", mock.Anything, "run-1", models.RunStatusPartial, f.now).
		Return(&models.BuildRun{ID: "run-1", Status: models.RunStatusPartial, PagesGenerated: 1, PagesFailed: 1}, nil)

	var progress []string
	summary, err := f.service(t, []string{"lear", "cordelia", "broken"}).Generate(ctx, func(done, total int, id string) {
		assert.Equal(t, 2, total)
		progress = append(progress, id)
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"lear", "broken"}, progress)
	assert.Equal(t, []string{"cordelia"}, summary.Missing)
	assert.Equal(t, 1, summary.Generated())
	assert.Equal(t, models.RunStatusPartial, summary.Run.Status)
	require.Len(t, summary.Pages, 2)

	lear := summary.Pages[0]
	assert.Equal(t, models.PageStatusGenerated, lear.Status)
	assert.Equal(t, 2, lear.PhaseCount)
	assert.Equal(t, 1, lear.ExerciseCount)
	assert.Equal(t, 5, lear.QuizCount)

	broken := summary.Pages[1]
	assert.Equal(t, models.PageStatusFailed, broken.Status)
	assert.Contains(t, broken.Error, "PARSE_ERROR")

	page, err := os.ReadFile(filepath.Join(f.cfg.JourneysDir(), "lear.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), `const characterId = "lear";`)
	assert.Contains(t, string(page), `"phase-2": {`)
	assert.Contains(t, string(page), `data-answer="die MACHT"`)

	index, err := os.ReadFile(summary.IndexPath)
	require.NoError(t, err)
	assert.Contains(t, string(index), `href="journeys/lear.html"`)
	assert.Contains(t, string(index), "Трагический король")
	assert.Contains(t, string(index), `id="review-w_macht"`)
	assert.NotContains(t, string(index), "card-broken")

	_, err = os.Stat(filepath.Join(f.cfg.OutputDir, "static", "css", "index.css"))
	assert.NoError(t, err)

	f.runs.AssertExpectations(t)
	f.pages.AssertNumberOfCalls(t, "Insert", 2)
}

func TestBuildService_NothingFound(t *testing.T) {
	f := newBuildFixture(t)

	f.runs.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.runs.On("Finish", mock.Anything, "run-1", models.RunStatusFailed, f.now).
		Return(&models.BuildRun{ID: "run-1", Status: models.RunStatusFailed}, nil)

	summary, err := f.service(t, []string{"edgar"}).Generate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Generated())
	assert.Empty(t, summary.IndexPath)
	assert.Equal(t, models.RunStatusFailed, summary.Run.Status)

	_, err = os.Stat(filepath.Join(f.cfg.OutputDir, "index.html"))
	assert.True(t, os.IsNotExist(err))
	f.pages.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestBuildService_AllGeneratedIsOK(t *testing.T) {
	f := newBuildFixture(t)

	f.runs.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.pages.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)
	f.runs.On("Finish", mock.Anything, "run-1", models.RunStatusOK, f.now).
		Return(&models.BuildRun{ID: "run-1", Status: models.RunStatusOK, PagesGenerated: 1}, nil)

	summary, err := f.service(t, []string{"lear"}).Generate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusOK, summary.Run.Status)
	f.runs.AssertExpectations(t)
}

func TestBuildService_CreateRunFails(t *testing.T) {
	f := newBuildFixture(t)
	f.runs.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := f.service(t, []string{"lear"}).Generate(context.Background(), nil)
	assert.ErrorIs(t, err, assert.AnError)
	f.runs.AssertNotCalled(t, "Finish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
