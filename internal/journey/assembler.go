package journey

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/vytor/lirajourney/internal/jsonutil"
	"github.com/vytor/lirajourney/internal/logger"
	"github.com/vytor/lirajourney/internal/models"
	"github.com/vytor/lirajourney/internal/vocabulary"
)

// Assembler produces the JourneyAssets of an enriched character.
type Assembler struct {
	quizzes *QuizBuilder
}

// NewAssembler returns an assembler using quizzes for quiz generation.
func NewAssembler(quizzes *QuizBuilder) *Assembler {
	if quizzes == nil {
		quizzes = NewQuizBuilder(nil)
	}
	return &Assembler{quizzes: quizzes}
}

// Prepare builds phases, exercises, quiz groups, the quiz JSON map and the
// relations metadata. The character itself is left untouched.
func (a *Assembler) Prepare(ctx context.Context, character models.Character) (models.JourneyAssets, error) {
	log := logger.FromContext(ctx).WithPrefix("journey").WithField("character", character.ID)

	phases := EnsurePhaseIDs(character.JourneyPhases)
	assets := models.JourneyAssets{
		Phases:    phases,
		Exercises: make([]models.Exercise, 0, len(phases)),
		Quizzes:   make([]models.QuizGroup, 0, len(phases)),
	}
	quizMap := jsonutil.NewObject()

	for i := range phases {
		phase := &phases[i]
		phase.SentenceParts = SentenceConstructors(phase.Vocabulary)
		phase.Quizzes = a.quizzes.Build(*phase)

		assets.Quizzes = append(assets.Quizzes, models.QuizGroup{
			PhaseID:   phase.ID,
			Questions: phase.Quizzes,
			IsActive:  i == 0,
		})
		quizMap.Set(phase.ID, phase.Quizzes)

		if exercise := BuildExercise(i, *phase, phase.ID); exercise != nil {
			assets.Exercises = append(assets.Exercises, *exercise)
		}
		log.Debug("phase %s: %d quizzes, %d constructor entries", phase.ID, len(phase.Quizzes), len(phase.SentenceParts))
	}

	quizzesJSON, err := json.Marshal(quizMap)
	if err != nil {
		return models.JourneyAssets{}, fmt.Errorf("encode quizzes for %s: %w", character.ID, err)
	}
	assets.QuizzesJSON = string(quizzesJSON)
	assets.RelationsMetadata = vocabulary.RelationsMetadata(phases)

	log.Info("prepared %d phases, %d exercises", len(phases), len(assets.Exercises))
	return assets, nil
}

// SentenceConstructors lists the vocabulary entries with more than one
// sentence part.
func SentenceConstructors(entries []models.VocabularyEntry) []models.ConstructorEntry {
	out := make([]models.ConstructorEntry, 0)
	for _, entry := range entries {
		if len(entry.SentenceParts) <= 1 {
			continue
		}
		out = append(out, models.ConstructorEntry{
			German:              strings.TrimSpace(entry.German),
			Russian:             strings.TrimSpace(entry.Russian),
			Sentence:            entry.Sentence,
			SentenceTranslation: entry.SentenceTranslation,
			Parts:               slices.Clone([]string(entry.SentenceParts)),
		})
	}
	return out
}
