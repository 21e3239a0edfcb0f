package services

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/lirajourney/internal/config"
	"github.com/vytor/lirajourney/internal/content"
	"github.com/vytor/lirajourney/internal/errors"
	"github.com/vytor/lirajourney/internal/journey"
	"github.com/vytor/lirajourney/internal/logger"
	"github.com/vytor/lirajourney/internal/models"
	"github.com/vytor/lirajourney/internal/payload"
	"github.com/vytor/lirajourney/internal/repository"
	"github.com/vytor/lirajourney/internal/reviewqueue"
	"github.com/vytor/lirajourney/internal/site"
	"github.com/vytor/lirajourney/internal/vocabulary"
)

const (
	defaultCharacterIcon = "👤"
	defaultCharacterRole = "Персонаж"
)

// BuildSummary is the outcome of one generator run.
type BuildSummary struct {
	Run       models.BuildRun
	Pages     []models.BuildPage
	Missing   []string
	IndexPath string
	IndexErr  error
}

// Generated counts the character pages written in this run.
func (b *BuildSummary) Generated() int {
	n := 0
	for _, p := range b.Pages {
		if p.Status == models.PageStatusGenerated {
			n++
		}
	}
	return n
}

// ProgressFunc is called after each character page, successful or not.
type ProgressFunc func(done, total int, characterID string)

// BuildService generates the whole static site.
type BuildService interface {
	Generate(ctx context.Context, progress ProgressFunc) (*BuildSummary, error)
}

// BuildDeps wires a BuildService.
type BuildDeps struct {
	Config     config.Config
	Manifest   config.Manifest
	Vocabulary *vocabulary.Index
	Assembler  *journey.Assembler
	Renderer   *site.Renderer
	Queue      reviewqueue.Loader
	Runs       repository.RunRepository
	Pages      repository.PageRepository
	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

type buildService struct {
	BuildDeps
}

// NewBuildService creates a new BuildService
func NewBuildService(deps BuildDeps) BuildService {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}
	if deps.Assembler == nil {
		deps.Assembler = journey.NewAssembler(journey.NewQuizBuilderForSeed(deps.Config.RandomSeed))
	}
	return &buildService{BuildDeps: deps}
}

func (s *buildService) Generate(ctx context.Context, progress ProgressFunc) (*BuildSummary, error) {
	run := models.BuildRun{
		ID:                 s.NewID(),
		StartedAt:          s.Now(),
		Status:             models.RunStatusRunning,
		CharactersExpected: len(s.Manifest.CharacterOrder),
		OutputDir:          s.Config.OutputDir,
	}
	log := logger.FromContext(ctx).WithPrefix("build").WithField("run", run.ID)
	ctx = logger.NewContext(ctx, log)
	log.Info("starting build into %s", s.Config.OutputDir)

	if err := s.Runs.Create(ctx, run); err != nil {
		log.Error("failed to record run: %v", err)
		return nil, errors.NewInternalError(err)
	}

	summary := &BuildSummary{Run: run}
	if err := s.prepareOutput(ctx); err != nil {
		s.finish(ctx, summary, run.ID, models.RunStatusFailed)
		return summary, err
	}

	files, missing := content.ResolveCharacterFiles(ctx, s.Config.CharactersDir(), s.Manifest.CharacterOrder)
	summary.Missing = missing
	log.Info("found %d of %d character files", len(files), len(s.Manifest.CharacterOrder))

	var cards []site.CharacterCard
	generated := 0
	for i, file := range files {
		page, card := s.buildJourney(ctx, run.ID, file)
		if page.Status == models.PageStatusGenerated {
			generated++
		}
		if card != nil {
			cards = append(cards, *card)
		}
		if _, err := s.Pages.Insert(ctx, page); err != nil {
			log.Warn("failed to record page %s: %v", file.ID, err)
		}
		summary.Pages = append(summary.Pages, page)
		if progress != nil {
			progress(i+1, len(files), file.ID)
		}
	}

	if len(files) > 0 {
		summary.IndexPath, summary.IndexErr = s.buildIndex(ctx, cards)
		if summary.IndexErr != nil {
			log.Error("failed to generate index page: %v", summary.IndexErr)
		}
	} else {
		log.Warn("no character files found, skipping index page")
	}

	s.finish(ctx, summary, run.ID, runStatus(generated, len(s.Manifest.CharacterOrder), summary.IndexErr))
	log.Info("build finished: %d generated, %d failed, %d missing",
		summary.Generated(), len(summary.Pages)-summary.Generated(), len(missing))
	return summary, nil
}

func (s *buildService) prepareOutput(ctx context.Context) error {
	log := logger.FromContext(ctx)
	if err := os.MkdirAll(s.Config.JourneysDir(), 0o755); err != nil {
		log.Error("failed to create output directories: %v", err)
		return fmt.Errorf("create output dirs: %w", err)
	}
	copied, err := site.CopyDir(s.Config.StaticDir, filepath.Join(s.Config.OutputDir, "static"))
	if err != nil {
		log.Error("failed to copy static assets: %v", err)
		return fmt.Errorf("copy static assets: %w", err)
	}
	log.Debug("copied %d static files", copied)
	return nil
}

// buildJourney renders one character page. The card is nil only when the
// character file could not be read at all.
func (s *buildService) buildJourney(ctx context.Context, runID string, file content.CharacterFile) (models.BuildPage, *site.CharacterCard) {
	log := logger.FromContext(ctx).WithField("character", file.ID)
	page := models.BuildPage{
		RunID:       runID,
		CharacterID: file.ID,
		Status:      models.PageStatusFailed,
		CreatedAt:   s.Now(),
	}
	fail := func(step string, err error) {
		log.Error("failed to %s: %v", step, err)
		page.Error = err.Error()
	}

	character, err := content.LoadCharacter(file.Path)
	if err != nil {
		fail("load character", err)
		return page, nil
	}
	card := s.card(file.ID, character)

	enriched, err := s.Vocabulary.EnrichCharacter(ctx, character)
	if err != nil {
		fail("enrich vocabulary", err)
		return page, &card
	}
	assets, err := s.Assembler.Prepare(ctx, enriched)
	if err != nil {
		fail("assemble journey", err)
		return page, &card
	}
	enriched.JourneyPhases = assets.Phases
	script, err := payload.Serialize(enriched)
	if err != nil {
		fail("serialize payload", err)
		return page, &card
	}

	html, err := s.Renderer.RenderJourney(site.JourneyPage{
		Character: enriched,
		Assets:    assets,
		Head:      journey.BuildHead(assets.Phases, journey.InitialProgress(assets.Phases)),
		Script:    template.JS(script),
		Theme:     s.Manifest.Theme,
	})
	if err != nil {
		fail("render page", err)
		return page, &card
	}

	path := filepath.Join(s.Config.JourneysDir(), file.ID+".html")
	if err := site.SaveFile(path, html); err != nil {
		fail("save page", err)
		return page, &card
	}

	page.Status = models.PageStatusGenerated
	page.OutputPath = path
	page.PhaseCount = len(assets.Phases)
	page.ExerciseCount = len(assets.Exercises)
	for _, group := range assets.Quizzes {
		page.QuizCount += len(group.Questions)
	}
	log.Info("generated %s", path)
	return page, &card
}

func (s *buildService) card(id string, character models.Character) site.CharacterCard {
	card := site.CharacterCard{
		ID:         id,
		Icon:       defaultCharacterIcon,
		Name:       character.Name,
		Role:       s.Manifest.Roles[id],
		PhaseCount: len(character.JourneyPhases),
		URL:        "journeys/" + id + ".html",
	}
	if len(character.JourneyPhases) > 0 && character.JourneyPhases[0].Icon != "" {
		card.Icon = character.JourneyPhases[0].Icon
	}
	if card.Name == "" {
		card.Name = id
	}
	if card.Role == "" {
		card.Role = character.Title
	}
	if card.Role == "" {
		card.Role = defaultCharacterRole
	}
	return card
}

func (s *buildService) buildIndex(ctx context.Context, cards []site.CharacterCard) (string, error) {
	log := logger.FromContext(ctx)

	// A catalogue that failed to parse has already failed every page; the
	// review section then falls back to whatever the index holds.
	if err := s.Vocabulary.Load(ctx); err != nil {
		log.Warn("review section without catalogue: %v", err)
	}
	selector := reviewqueue.NewSelector(s.Vocabulary.Words(), s.Queue)
	items := selector.GetReviewItems(ctx, s.Config.ReviewLimit)

	html, err := s.Renderer.RenderIndex(site.IndexPage{
		Cards:       cards,
		ReviewItems: items,
		Theme:       s.Manifest.Theme,
	})
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.Config.OutputDir, "index.html")
	if err := site.SaveFile(path, html); err != nil {
		return "", err
	}
	log.Info("generated %s with %d characters and %d review items", path, len(cards), len(items))
	return path, nil
}

func (s *buildService) finish(ctx context.Context, summary *BuildSummary, runID, status string) {
	run, err := s.Runs.Finish(ctx, runID, status, s.Now())
	if err != nil {
		logger.FromContext(ctx).Warn("failed to finish run %s: %v", runID, err)
		summary.Run.Status = status
		return
	}
	summary.Run = *run
}

// runStatus is ok when every expected character was generated along with the
// index, failed when nothing was generated and partial otherwise.
func runStatus(generated, expected int, indexErr error) string {
	switch {
	case generated == 0:
		return models.RunStatusFailed
	case generated == expected && indexErr == nil:
		return models.RunStatusOK
	default:
		return models.RunStatusPartial
	}
}
