package vocabulary_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/lirajourney/internal/errors"
	"github.com/vytor/lirajourney/internal/models"
	"github.com/vytor/lirajourney/internal/vocabulary"
)

const catalogueJSON = `{
  "vocabulary": [
    {"id": "thron", "german": "der  Thron", "translation": {"ru": "трон"}, "word_family": ["thronen"], "synonyms": "Herrschersitz", "visual_hint": "👑", "themes": ["power"]},
    {"id": "krone", "german": "die Krone", "russian": "корона", "collocations": ["die Krone tragen"]},
    {"german": "   "}
  ]
}`

func writeCatalogue(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vocabulary.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestIndex_LoadMissingFileIsEmpty(t *testing.T) {
	idx := vocabulary.NewIndex(filepath.Join(t.TempDir(), "missing.json"))

	require.NoError(t, idx.Load(context.Background()))
	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.Words())
}

func TestIndex_LoadMalformedIsParseError(t *testing.T) {
	idx := vocabulary.NewIndex(writeCatalogue(t, `{"vocabulary": [`))

	err := idx.Load(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeParse))
}

func TestIndex_LookupNormalizesHeadword(t *testing.T) {
	idx := vocabulary.NewIndex(writeCatalogue(t, catalogueJSON))
	require.NoError(t, idx.Load(context.Background()))

	entry, ok := idx.Lookup("DER THRON ")
	require.True(t, ok)
	assert.Equal(t, "thron", entry.ID)
	assert.Equal(t, 2, idx.Len())
	assert.Len(t, idx.Words(), 3)
}

func TestEnrichCharacter_FillsOnlyEmptyFields(t *testing.T) {
	idx := vocabulary.NewIndex(writeCatalogue(t, catalogueJSON))
	character := models.Character{
		ID: "king_lear",
		JourneyPhases: []models.JourneyPhase{{
			Vocabulary: []models.VocabularyEntry{
				{German: "der Thron", Russian: "трон", Synonyms: models.StringList{"Sitz"}},
				{German: "die Krone", Russian: "корона"},
				{German: "der Sturm", Russian: "буря"},
			},
		}},
	}

	enriched, err := idx.EnrichCharacter(context.Background(), character)
	require.NoError(t, err)

	thron := enriched.JourneyPhases[0].Vocabulary[0]
	assert.Equal(t, models.StringList{"thronen"}, thron.WordFamily)
	assert.Equal(t, models.StringList{"Sitz"}, thron.Synonyms, "character data wins")
	assert.Equal(t, "👑", thron.VisualHint)
	assert.Equal(t, models.StringList{"power"}, thron.Themes)

	krone := enriched.JourneyPhases[0].Vocabulary[1]
	assert.Equal(t, models.StringList{"die Krone tragen"}, krone.Collocations)
	assert.Empty(t, krone.WordFamily)

	assert.Empty(t, enriched.JourneyPhases[0].Vocabulary[2].WordFamily)

	assert.Empty(t, character.JourneyPhases[0].Vocabulary[0].WordFamily, "input is not mutated")
}

func TestEnrichCharacter_EmptyCatalogueReturnsCopy(t *testing.T) {
	idx := vocabulary.NewIndexFromEntries(nil)
	character := models.Character{ID: "cordelia", Name: "Корделия"}

	enriched, err := idx.EnrichCharacter(context.Background(), character)

	require.NoError(t, err)
	assert.Equal(t, character, enriched)
}

func TestFormatGerman(t *testing.T) {
	assert.Equal(t, "der THRON", vocabulary.FormatGerman("der Thron"))
	assert.Equal(t, "die STRASSE", vocabulary.FormatGerman("die Straße"))
	assert.Equal(t, "das LAND", vocabulary.FormatGerman("das Land"))
	assert.Equal(t, "VERRATEN", vocabulary.FormatGerman("verraten"))
	assert.Equal(t, "DER THRON", vocabulary.FormatGerman("Der Thron"))
}

func TestWordsDictionary(t *testing.T) {
	phase := models.JourneyPhase{
		Vocabulary: []models.VocabularyEntry{
			{German: "der Thron", Russian: "трон"},
			{German: "die Krone", Russian: "корона"},
			{German: "leer", Russian: ""},
		},
		TheatricalScene: &models.TheatricalScene{
			Narrative: "Er sitzt auf dem <b>THRON (трон)</b>, voller <b>ZORN (ярость)</b>.",
		},
	}

	dict := vocabulary.WordsDictionary(phase)

	assert.Equal(t, "der THRON", dict["трон"])
	assert.Equal(t, "der THRON", dict["троне"], "case variant")
	assert.Equal(t, "die KRONE", dict["корона"])
	assert.Equal(t, "ZORN", dict["ярость"], "narrative hint fills gap")
	assert.Equal(t, "UNKNOWN", dict.Resolve("бездна"))
	assert.Equal(t, "die KRONE", dict.Resolve("корона"))
}

func TestRelationsMetadata(t *testing.T) {
	phases := []models.JourneyPhase{
		{ID: "throne", Vocabulary: []models.VocabularyEntry{{WordFamily: models.StringList{"thronen"}}}},
		{Vocabulary: []models.VocabularyEntry{{German: "nichts"}}},
		{ID: "storm", Vocabulary: []models.VocabularyEntry{{Synonyms: models.StringList{"Unwetter"}}, {Collocations: models.StringList{"im Sturm"}}}},
	}

	meta := vocabulary.RelationsMetadata(phases)

	assert.Equal(t, models.RelationsMetadata{HasWordFamilies: true, HasRelations: true}, meta["throne"])
	assert.Equal(t, models.RelationsMetadata{}, meta["phase-1"])
	assert.Equal(t, models.RelationsMetadata{HasSynonyms: true, HasCollocations: true, HasRelations: true}, meta["storm"])
}
