// Package journey assembles the interactive data of a character page:
// phase ids, quizzes, blank exercises and relation flags.
package journey

import (
	"github.com/vytor/lirajourney/internal/models"
	"github.com/vytor/lirajourney/internal/vocabulary"
)

// EnsurePhaseIDs returns a copy of phases in which every phase has an id.
// Missing ids become phase-{index}; existing ids are kept.
func EnsurePhaseIDs(phases []models.JourneyPhase) []models.JourneyPhase {
	out := make([]models.JourneyPhase, len(phases))
	for i, phase := range phases {
		phase = phase.Clone()
		phase.ID = vocabulary.PhaseKey(phase, i)
		out[i] = phase
	}
	return out
}

// InitialProgress is the progress bar width shown before any phase is
// completed: 0 without phases, otherwise floor(100/n) but at least 1.
func InitialProgress(phases []models.JourneyPhase) int {
	if len(phases) == 0 {
		return 0
	}
	return max(1, 100/len(phases))
}

// HeadContext populates the hero section and progress bar.
type HeadContext struct {
	InitialDescription string
	FirstPhaseTitle    string
	InitialProgress    int
}

// BuildHead reads the hero text from the first phase.
func BuildHead(phases []models.JourneyPhase, progress int) HeadContext {
	head := HeadContext{InitialProgress: progress}
	if len(phases) > 0 {
		head.InitialDescription = phases[0].Description
		head.FirstPhaseTitle = phases[0].Title
	}
	return head
}
