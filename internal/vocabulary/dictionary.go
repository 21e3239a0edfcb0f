package vocabulary

import (
	"strconv"
	"strings"

	"github.com/vytor/lirajourney/internal/markup"
	"github.com/vytor/lirajourney/internal/models"
	"github.com/vytor/lirajourney/internal/textutil"
)

// caseVariants maps a nominative Russian hint to the inflected form the
// scene texts actually use, so both resolve to the same German answer.
var caseVariants = map[string]string{
	"трон":      "троне",
	"церемония": "церемонию",
	"гнев":      "гнев",
	"проклятие": "проклятием",
	"нищета":    "нищету",
	"хижина":    "хижине",
	"правда":    "правду",
	"конец":     "концом",
	"слеза":     "слезы",
	"нужда":     "нужде",
	"вечный":    "вечна",
}

var articles = []string{"der ", "die ", "das "}

// FormatGerman upper-cases a headword for display as a blank answer. A
// leading lower-case der/die/das article is kept as is.
func FormatGerman(german string) string {
	for _, article := range articles {
		if rest, ok := strings.CutPrefix(german, article); ok {
			return strings.TrimSpace(article) + " " + textutil.UpperGerman(rest)
		}
	}
	return textutil.UpperGerman(german)
}

// Dictionary maps a Russian hint to the German answer of a blank.
type Dictionary map[string]string

// Resolve returns the answer for hint, or "UNKNOWN".
func (d Dictionary) Resolve(hint string) string {
	if answer, ok := d[hint]; ok {
		return answer
	}
	if answer, ok := d[textutil.CollapseWhitespace(hint)]; ok {
		return answer
	}
	return "UNKNOWN"
}

// WordsDictionary builds the hint lookup for a phase's exercise: every
// vocabulary translation (plus its known case variant) maps to the formatted
// German word, then bold hints from the scene narrative fill any hint still
// missing.
func WordsDictionary(phase models.JourneyPhase) Dictionary {
	words := make(Dictionary)
	for _, vocab := range phase.Vocabulary {
		russian := strings.TrimSpace(vocab.Russian)
		if russian == "" {
			continue
		}
		answer := FormatGerman(vocab.German)
		words[russian] = answer
		if variant, ok := caseVariants[russian]; ok {
			words[variant] = answer
		}
	}

	if phase.TheatricalScene == nil {
		return words
	}
	for _, bold := range markup.BoldHints(phase.TheatricalScene.Narrative) {
		if _, exists := words[bold.Hint]; !exists {
			words[bold.Hint] = bold.German
		}
	}
	return words
}

// Relations computes the relation flags of one phase's vocabulary.
func Relations(vocabulary []models.VocabularyEntry) models.RelationsMetadata {
	var meta models.RelationsMetadata
	for _, word := range vocabulary {
		meta.HasWordFamilies = meta.HasWordFamilies || len(word.WordFamily) > 0
		meta.HasSynonyms = meta.HasSynonyms || len(word.Synonyms) > 0
		meta.HasCollocations = meta.HasCollocations || len(word.Collocations) > 0
	}
	meta.HasRelations = meta.HasWordFamilies || meta.HasSynonyms || meta.HasCollocations
	return meta
}

// RelationsMetadata keys Relations by phase id, using phase-{index} for
// phases without one.
func RelationsMetadata(phases []models.JourneyPhase) map[string]models.RelationsMetadata {
	out := make(map[string]models.RelationsMetadata, len(phases))
	for i, phase := range phases {
		out[PhaseKey(phase, i)] = Relations(phase.Vocabulary)
	}
	return out
}

// PhaseKey is the phase id, or phase-{index} when it is empty.
func PhaseKey(phase models.JourneyPhase, index int) string {
	if phase.ID != "" {
		return phase.ID
	}
	return "phase-" + strconv.Itoa(index)
}
