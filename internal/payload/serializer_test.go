package payload_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lirajourney/internal/models"
	"github.com/vytor/lirajourney/internal/payload"
)

// phaseJSON extracts the object assigned to phaseVocabularies.
func phaseJSON(t *testing.T, script string) map[string]map[string]any {
	t.Helper()
	const prefix = "const phaseVocabularies = "
	require.True(t, strings.HasPrefix(script, prefix))
	body, _, found := strings.Cut(strings.TrimPrefix(script, prefix), ";\n\n")
	require.True(t, found)

	var out map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	return out
}

func TestSerialize_PreservesQuotesAndNewlines(t *testing.T) {
	character := models.Character{
		JourneyPhases: []models.JourneyPhase{{
			ID:          "phase1",
			Title:       `Эдмунд's "choice"`,
			Description: "Первая строка\nВторая строка",
			Vocabulary: []models.VocabularyEntry{{
				German:              "die Entscheidung",
				Russian:             "решение",
				Transcription:       "[энт-ШАЙ-дӯнг]",
				Sentence:            "Er flüstert: \"Das ist Edmunds Weg.\"\nUnd geht.",
				SentenceTranslation: "Он шепчет: \"Это путь Эдмунда.\"\nИ уходит.",
			}},
		}},
	}

	script, err := payload.Serialize(character)
	require.NoError(t, err)

	phases := phaseJSON(t, script)
	require.Contains(t, phases, "phase1")
	p := phases["phase1"]
	assert.Equal(t, character.JourneyPhases[0].Title, p["title"])
	assert.Equal(t, character.JourneyPhases[0].Description, p["description"])

	words := p["words"].([]any)
	require.Len(t, words, 1)
	w := words[0].(map[string]any)
	src := character.JourneyPhases[0].Vocabulary[0]
	assert.Equal(t, src.German, w["word"])
	assert.Equal(t, src.Russian, w["translation"])
	assert.Equal(t, src.Transcription, w["transcription"])
	assert.Equal(t, src.Sentence, w["sentence"])
	assert.Equal(t, src.SentenceTranslation, w["sentenceTranslation"])

	assert.Contains(t, script, "решение")
	assert.Contains(t, script, `const characterId = "journey";`)
	assert.Contains(t, script, "const STORAGE_PREFIX = 'liraJourney';\n")
	assert.Contains(t, script, "const REVIEW_QUEUE_KEY = `${STORAGE_PREFIX}:reviewQueue`;\n")
	assert.True(t, strings.HasSuffix(script, "window.phaseKeys = Object.keys(phaseVocabularies);\n\n"))
}

func TestSerialize_PhaseShape(t *testing.T) {
	character := models.Character{
		ID: "king_lear",
		JourneyPhases: []models.JourneyPhase{
			{
				ID: "throne",
				Vocabulary: []models.VocabularyEntry{
					{German: "der Thron", Russian: "трон", WordFamily: models.StringList{"thronen"}, SentenceParts: models.StringList{"Der Thron", "wankt."}},
					{German: "die Krone", Russian: "корона"},
				},
				Quizzes: []models.Quiz{{Question: "q", Choices: []string{"a", "b"}, CorrectIndex: 1}},
			},
			{Title: "skipped without id"},
			{ID: "storm"},
		},
	}

	script, err := payload.Serialize(character)
	require.NoError(t, err)
	assert.Contains(t, script, `const characterId = "king_lear";`)
	assert.Less(t, strings.Index(script, `"throne"`), strings.Index(script, `"storm"`), "phase order is kept")

	phases := phaseJSON(t, script)
	require.Len(t, phases, 2)

	throne := phases["throne"]
	assert.Equal(t, map[string]any{}, throne["quizAttempts"])
	assert.Equal(t, []any{map[string]any{"question": "q", "choices": []any{"a", "b"}, "correctIndex": float64(1)}}, throne["quizzes"])

	constructors := throne["sentenceParts"].([]any)
	require.Len(t, constructors, 1)
	assert.Equal(t, "der Thron", constructors[0].(map[string]any)["word"])

	vocab := throne["vocabulary"].([]any)
	require.Len(t, vocab, 2)
	krone := vocab[1].(map[string]any)
	assert.Equal(t, []any{}, krone["themes"], "empty lists encode as []")
	assert.Equal(t, "", krone["russian_hint"])

	storm := phases["storm"]
	assert.Equal(t, []any{}, storm["words"])
	assert.Equal(t, []any{}, storm["sentenceParts"])
}

func TestCharacterID(t *testing.T) {
	assert.Equal(t, "lear", payload.CharacterID(models.Character{ID: "lear", Slug: "x"}))
	assert.Equal(t, "x", payload.CharacterID(models.Character{Slug: "x"}))
	assert.Equal(t, "journey", payload.CharacterID(models.Character{}))
}
