package journey

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/vytor/lirajourney/internal/markup"
	"github.com/vytor/lirajourney/internal/models"
	"github.com/vytor/lirajourney/internal/textutil"
)

const maxDistractors = 3

// QuizBuilder combines authored quizzes with generated ones and shuffles
// every choice list. The random source is injected so builds can be
// reproduced.
type QuizBuilder struct {
	rng *rand.Rand
}

// NewQuizBuilder returns a builder drawing from rng. A nil rng uses a
// randomly seeded source.
func NewQuizBuilder(rng *rand.Rand) *QuizBuilder {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &QuizBuilder{rng: rng}
}

// NewSeededQuizBuilder returns a builder whose output depends only on seed.
func NewSeededQuizBuilder(seed uint64) *QuizBuilder {
	return NewQuizBuilder(rand.New(rand.NewPCG(seed, seed)))
}

// NewQuizBuilderForSeed maps a configured seed to a builder: 0 draws a
// fresh random source, anything else is reproducible.
func NewQuizBuilderForSeed(seed uint64) *QuizBuilder {
	if seed == 0 {
		return NewQuizBuilder(nil)
	}
	return NewSeededQuizBuilder(seed)
}

type wordPair struct {
	german  string
	russian string
}

// QuestionFor is the generated question text for a headword.
func QuestionFor(german string) string {
	return fmt.Sprintf("Что означает немецкое слово «%s»?", german)
}

// Build returns the full quiz set of phase. Words already referenced by an
// authored question are not asked again.
func (b *QuizBuilder) Build(phase models.JourneyPhase) []models.Quiz {
	quizzes := make([]models.Quiz, 0, len(phase.Quizzes)+len(phase.Vocabulary))
	referenced := make(map[string]struct{})
	for _, quiz := range phase.Quizzes {
		quiz.Choices = slices.Clone(quiz.Choices)
		quizzes = append(quizzes, quiz)
		if word, ok := markup.QuotedWord(quiz.Question); ok {
			referenced[textutil.Lower(word)] = struct{}{}
		}
	}

	words := vocabularyWords(phase.Vocabulary)
	translations := make([]string, len(words))
	for i, w := range words {
		translations[i] = w.russian
	}

	for _, w := range words {
		key := textutil.Lower(w.german)
		if _, seen := referenced[key]; seen {
			continue
		}
		quizzes = append(quizzes, models.Quiz{
			Question:     QuestionFor(w.german),
			Choices:      append([]string{w.russian}, b.distractors(translations, w.russian)...),
			CorrectIndex: 0,
		})
		referenced[key] = struct{}{}
	}

	for i := range quizzes {
		quizzes[i] = b.shuffle(quizzes[i])
	}
	return quizzes
}

// distractors picks up to three translations that differ from correct.
func (b *QuizBuilder) distractors(translations []string, correct string) []string {
	correctKey := textutil.Lower(correct)
	pool := make([]string, 0, len(translations))
	for _, t := range translations {
		if textutil.Lower(t) != correctKey {
			pool = append(pool, t)
		}
	}
	if len(pool) <= maxDistractors {
		return pool
	}
	// partial Fisher-Yates: the first maxDistractors slots hold the sample
	for i := 0; i < maxDistractors; i++ {
		j := i + b.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:maxDistractors]
}

// shuffle permutes the choices and moves CorrectIndex with the correct
// choice. An out-of-range index falls back to 0.
func (b *QuizBuilder) shuffle(quiz models.Quiz) models.Quiz {
	choices := slices.Clone(quiz.Choices)
	var correct string
	hasCorrect := quiz.CorrectIndex >= 0 && quiz.CorrectIndex < len(choices)
	if hasCorrect {
		correct = choices[quiz.CorrectIndex]
	}

	b.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	index := 0
	if hasCorrect {
		if found := slices.Index(choices, correct); found >= 0 {
			index = found
		}
	}
	return models.Quiz{Question: quiz.Question, Choices: choices, CorrectIndex: index}
}

func vocabularyWords(entries []models.VocabularyEntry) []wordPair {
	words := make([]wordPair, 0, len(entries))
	for _, entry := range entries {
		german := strings.TrimSpace(entry.German)
		russian := strings.TrimSpace(entry.Russian)
		if german != "" && russian != "" {
			words = append(words, wordPair{german: german, russian: russian})
		}
	}
	return words
}
