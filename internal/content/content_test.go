package content_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lirajourney/internal/content"
	apperrors "github.com/vytor/lirajourney/internal/errors"
)

const learJSON = `{
  "id": "king_lear",
  "name": "Король Лир",
  "title": "Трагический король",
  "journey_phases": [
    {
      "id": "throne",
      "title": "Трон",
      "description": "Раздел королевства",
      "icon": "👑",
      "keywords": "власть, гордыня",
      "vocabulary": [
        {"german": "der Thron", "russian": "трон", "themes": "power", "word_family": ["thronen"], "sentence_parts": ["Der Thron", "wankt."]}
      ],
      "quizzes": [{"question": "Что означает «der Thron»?", "choices": ["трон", "корона"], "correctIndex": "0"}],
      "theatrical_scene": {"title": "Сцена", "narrative": "<b>THRON (трон)</b>", "exercise_text": "___ (трон)"}
    }
  ]
}`

func TestLoadCharacter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "king_lear.json")
	require.NoError(t, os.WriteFile(path, []byte(learJSON), 0o644))

	character, err := content.LoadCharacter(path)
	require.NoError(t, err)

	assert.Equal(t, "king_lear", character.ID)
	require.Len(t, character.JourneyPhases, 1)
	phase := character.JourneyPhases[0]
	assert.Equal(t, "👑", phase.Icon)
	assert.Equal(t, []string{"власть, гордыня"}, []string(phase.Keywords))
	assert.Equal(t, []string{"power"}, []string(phase.Vocabulary[0].Themes))
	assert.Equal(t, []string{"thronen"}, []string(phase.Vocabulary[0].WordFamily))
	assert.Equal(t, 0, phase.Quizzes[0].CorrectIndex)
	require.NotNil(t, phase.TheatricalScene)
	assert.Equal(t, "___ (трон)", phase.TheatricalScene.ExerciseText)
}

func TestLoadCharacter_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := content.LoadCharacter(filepath.Join(dir, "missing.json"))
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"id": `), 0o644))
	_, err = content.LoadCharacter(broken)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeParse))
	assert.Contains(t, err.Error(), "broken.json")
}

func TestResolveCharacterFiles(t *testing.T) {
	dir := t.TempDir()
	for _, id := range []string{"cordelia", "king_lear"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, id+".json"), []byte(`{}`), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "fool.json"), 0o755))

	found, missing := content.ResolveCharacterFiles(context.Background(), dir, []string{"king_lear", "fool", "cordelia", " ", "kent"})

	assert.Equal(t, []content.CharacterFile{
		{ID: "king_lear", Path: filepath.Join(dir, "king_lear.json")},
		{ID: "cordelia", Path: filepath.Join(dir, "cordelia.json")},
	}, found)
	assert.Equal(t, []string{"fool", "kent"}, missing)
}
