package journey

import (
	"github.com/vytor/lirajourney/internal/markup"
	"github.com/vytor/lirajourney/internal/models"
	"github.com/vytor/lirajourney/internal/vocabulary"
)

// BuildExercise turns the phase's scene exercise text into a blank exercise.
// It returns nil when the phase has no scene or the scene no exercise text.
// Blanks whose hint is not in the phase dictionary get the answer UNKNOWN.
func BuildExercise(index int, phase models.JourneyPhase, phaseID string) *models.Exercise {
	scene := phase.TheatricalScene
	if scene == nil || scene.ExerciseText == "" {
		return nil
	}
	words := vocabulary.WordsDictionary(phase)
	return &models.Exercise{
		PhaseID:  phaseID,
		Title:    scene.Title,
		Text:     markup.ReplaceBlanks(scene.ExerciseText, words.Resolve),
		IsActive: index == 0,
	}
}
