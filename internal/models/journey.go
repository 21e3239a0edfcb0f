package models

import (
	"encoding/json"
	"slices"
)

// Character is one per-character journey file.
type Character struct {
	ID            string         `json:"id"`
	Slug          string         `json:"slug,omitempty"`
	Name          string         `json:"name"`
	Title         string         `json:"title"`
	JourneyPhases []JourneyPhase `json:"journey_phases"`
}

// JourneyPhase is one step of a character's journey.
type JourneyPhase struct {
	ID              string             `json:"id,omitempty"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Icon            string             `json:"icon,omitempty"`
	Keywords        StringList         `json:"keywords,omitempty"`
	Vocabulary      []VocabularyEntry  `json:"vocabulary"`
	Quizzes         []Quiz             `json:"quizzes,omitempty"`
	SentenceParts   []ConstructorEntry `json:"sentence_parts,omitempty"`
	TheatricalScene *TheatricalScene   `json:"theatrical_scene,omitempty"`
}

// TheatricalScene is the narrative shown for a phase. ExerciseText carries
// "___ (hint)" blanks.
type TheatricalScene struct {
	Title         string `json:"title"`
	Narrative     string `json:"narrative"`
	ExerciseText  string `json:"exercise_text,omitempty"`
	EmotionalPeak string `json:"emotional_peak,omitempty"`
}

// VocabularyEntry is a word taught in a phase.
type VocabularyEntry struct {
	German              string     `json:"german"`
	Russian             string     `json:"russian"`
	Transcription       string     `json:"transcription"`
	Sentence            string     `json:"sentence"`
	SentenceTranslation string     `json:"sentence_translation"`
	RussianHint         string     `json:"russian_hint,omitempty"`
	Themes              StringList `json:"themes,omitempty"`
	WordFamily          StringList `json:"wordFamily,omitempty"`
	Synonyms            StringList `json:"synonyms,omitempty"`
	Collocations        StringList `json:"collocations,omitempty"`
	VisualHint          string     `json:"visual_hint,omitempty"`
	SentenceParts       StringList `json:"sentence_parts,omitempty"`
}

// UnmarshalJSON also accepts the snake_case "word_family" key.
func (v *VocabularyEntry) UnmarshalJSON(data []byte) error {
	type alias VocabularyEntry
	aux := struct {
		*alias
		WordFamilySnake StringList `json:"word_family"`
	}{alias: (*alias)(v)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(v.WordFamily) == 0 {
		v.WordFamily = aux.WordFamilySnake
	}
	return nil
}

// ConstructorEntry is a sentence-construction exercise derived from a
// vocabulary item with more than one sentence part.
type ConstructorEntry struct {
	German              string   `json:"german"`
	Russian             string   `json:"russian"`
	Sentence            string   `json:"sentence"`
	SentenceTranslation string   `json:"sentence_translation"`
	Parts               []string `json:"parts"`
}

// Quiz is a multiple-choice question. After the quiz builder runs,
// 0 <= CorrectIndex < len(Choices) whenever Choices is non-empty.
type Quiz struct {
	Question     string   `json:"question"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correct_index"`
}

// UnmarshalJSON accepts correct_index or correctIndex, as a number or a
// numeric string. correct_index wins when both are present.
func (q *Quiz) UnmarshalJSON(data []byte) error {
	var aux struct {
		Question string          `json:"question"`
		Choices  []any           `json:"choices"`
		Snake    json.RawMessage `json:"correct_index"`
		Camel    json.RawMessage `json:"correctIndex"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	q.Question = aux.Question
	q.Choices = make([]string, 0, len(aux.Choices))
	for _, c := range aux.Choices {
		switch v := c.(type) {
		case string:
			q.Choices = append(q.Choices, v)
		case nil:
			q.Choices = append(q.Choices, "")
		default:
			b, _ := json.Marshal(v)
			q.Choices = append(q.Choices, string(b))
		}
	}
	q.CorrectIndex = 0
	if i, ok := flexInt(aux.Snake); ok {
		q.CorrectIndex = i
	} else if i, ok := flexInt(aux.Camel); ok {
		q.CorrectIndex = i
	}
	return nil
}

// Clone returns a copy that shares no slices with c.
func (c Character) Clone() Character {
	out := c
	if c.JourneyPhases != nil {
		out.JourneyPhases = make([]JourneyPhase, len(c.JourneyPhases))
		for i, p := range c.JourneyPhases {
			out.JourneyPhases[i] = p.Clone()
		}
	}
	return out
}

// Clone returns a copy that shares no slices with p.
func (p JourneyPhase) Clone() JourneyPhase {
	out := p
	out.Keywords = slices.Clone(p.Keywords)
	if p.Vocabulary != nil {
		out.Vocabulary = make([]VocabularyEntry, len(p.Vocabulary))
		for i, v := range p.Vocabulary {
			out.Vocabulary[i] = v.Clone()
		}
	}
	if p.Quizzes != nil {
		out.Quizzes = make([]Quiz, len(p.Quizzes))
		for i, q := range p.Quizzes {
			q.Choices = slices.Clone(q.Choices)
			out.Quizzes[i] = q
		}
	}
	if p.SentenceParts != nil {
		out.SentenceParts = make([]ConstructorEntry, len(p.SentenceParts))
		for i, e := range p.SentenceParts {
			e.Parts = slices.Clone(e.Parts)
			out.SentenceParts[i] = e
		}
	}
	if p.TheatricalScene != nil {
		scene := *p.TheatricalScene
		out.TheatricalScene = &scene
	}
	return out
}

// Clone returns a copy that shares no slices with v.
func (v VocabularyEntry) Clone() VocabularyEntry {
	out := v
	out.Themes = slices.Clone(v.Themes)
	out.WordFamily = slices.Clone(v.WordFamily)
	out.Synonyms = slices.Clone(v.Synonyms)
	out.Collocations = slices.Clone(v.Collocations)
	out.SentenceParts = slices.Clone(v.SentenceParts)
	return out
}
