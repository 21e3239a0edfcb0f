// Package payload turns assembled journey phases into the script block the
// browser runtime reads at page load.
package payload

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vytor/lirajourney/internal/jsonutil"
	"github.com/vytor/lirajourney/internal/models"
)

const (
	storagePrefix = "liraJourney"
	fallbackID    = "journey"
)

type vocabularyEntry struct {
	German              string   `json:"german"`
	Russian             string   `json:"russian"`
	Sentence            string   `json:"sentence"`
	SentenceTranslation string   `json:"sentence_translation"`
	RussianHint         string   `json:"russian_hint"`
	Transcription       string   `json:"transcription"`
	Themes              []string `json:"themes"`
	SentenceParts       []string `json:"sentence_parts"`
	Synonyms            []string `json:"synonyms"`
	VisualHint          string   `json:"visual_hint"`
}

type word struct {
	Word                string   `json:"word"`
	Translation         string   `json:"translation"`
	RussianHint         string   `json:"russian_hint"`
	Transcription       string   `json:"transcription"`
	Sentence            string   `json:"sentence"`
	SentenceTranslation string   `json:"sentenceTranslation"`
	VisualHint          string   `json:"visual_hint"`
	Themes              []string `json:"themes"`
	WordFamily          []string `json:"wordFamily"`
	Collocations        []string `json:"collocations"`
	SentenceParts       []string `json:"sentenceParts"`
}

type quiz struct {
	Question     string   `json:"question"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correctIndex"`
}

type constructor struct {
	Word                string   `json:"word"`
	Translation         string   `json:"translation"`
	Parts               []string `json:"parts"`
	Sentence            string   `json:"sentence"`
	SentenceTranslation string   `json:"sentenceTranslation"`
}

type phase struct {
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Vocabulary    []vocabularyEntry `json:"vocabulary"`
	Words         []word            `json:"words"`
	Quizzes       []quiz            `json:"quizzes"`
	QuizAttempts  struct{}          `json:"quizAttempts"`
	SentenceParts []constructor     `json:"sentenceParts"`
}

// CharacterID is the identifier the runtime stores progress under.
func CharacterID(character models.Character) string {
	switch {
	case character.ID != "":
		return character.ID
	case character.Slug != "":
		return character.Slug
	default:
		return fallbackID
	}
}

// PhaseMap builds the phase id → phase payload object, in phase order.
// Phases without an id are skipped.
func PhaseMap(phases []models.JourneyPhase) *jsonutil.Object {
	out := jsonutil.NewObject()
	for _, p := range phases {
		if p.ID == "" {
			continue
		}
		out.Set(p.ID, serializePhase(p))
	}
	return out
}

// Serialize renders the full script payload for character, whose phases
// must already be assembled.
func Serialize(character models.Character) (string, error) {
	phaseJSON, err := jsonutil.MarshalIndent(PhaseMap(character.JourneyPhases), "    ")
	if err != nil {
		return "", fmt.Errorf("encode phases: %w", err)
	}
	id, err := json.Marshal(CharacterID(character))
	if err != nil {
		return "", fmt.Errorf("encode character id: %w", err)
	}

	var b strings.Builder
	b.WriteString("const phaseVocabularies = ")
	b.WriteString(phaseJSON)
	b.WriteString(";\n\n")
	fmt.Fprintf(&b, "const characterId = %s;\n", id)
	fmt.Fprintf(&b, "const STORAGE_PREFIX = '%s';\n", storagePrefix)
	b.WriteString("const REVIEW_QUEUE_KEY = `${STORAGE_PREFIX}:reviewQueue`;\n")
	b.WriteString("const quizStateCache = {};\n\n")
	b.WriteString("window.phaseData = phaseVocabularies;\n")
	b.WriteString("window.phaseKeys = Object.keys(phaseVocabularies);\n\n")
	return b.String(), nil
}

func serializePhase(p models.JourneyPhase) phase {
	out := phase{
		Title:         p.Title,
		Description:   p.Description,
		Vocabulary:    make([]vocabularyEntry, 0, len(p.Vocabulary)),
		Words:         make([]word, 0, len(p.Vocabulary)),
		Quizzes:       make([]quiz, 0, len(p.Quizzes)),
		SentenceParts: make([]constructor, 0),
	}
	for _, v := range p.Vocabulary {
		out.Vocabulary = append(out.Vocabulary, vocabularyEntry{
			German:              v.German,
			Russian:             v.Russian,
			Sentence:            v.Sentence,
			SentenceTranslation: v.SentenceTranslation,
			RussianHint:         v.RussianHint,
			Transcription:       v.Transcription,
			Themes:              list(v.Themes),
			SentenceParts:       list(v.SentenceParts),
			Synonyms:            list(v.Synonyms),
			VisualHint:          v.VisualHint,
		})
		out.Words = append(out.Words, word{
			Word:                v.German,
			Translation:         v.Russian,
			RussianHint:         v.RussianHint,
			Transcription:       v.Transcription,
			Sentence:            v.Sentence,
			SentenceTranslation: v.SentenceTranslation,
			VisualHint:          v.VisualHint,
			Themes:              list(v.Themes),
			WordFamily:          list(v.WordFamily),
			Collocations:        list(v.Collocations),
			SentenceParts:       list(v.SentenceParts),
		})
		if len(v.SentenceParts) > 1 {
			out.SentenceParts = append(out.SentenceParts, constructor{
				Word:                v.German,
				Translation:         v.Russian,
				Parts:               list(v.SentenceParts),
				Sentence:            v.Sentence,
				SentenceTranslation: v.SentenceTranslation,
			})
		}
	}
	for _, q := range p.Quizzes {
		out.Quizzes = append(out.Quizzes, quiz{
			Question:     q.Question,
			Choices:      list(q.Choices),
			CorrectIndex: q.CorrectIndex,
		})
	}
	return out
}

// list never returns nil, so empty lists encode as [] rather than null.
func list[S ~[]string](values S) []string {
	return append(make([]string, 0, len(values)), values...)
}
