// Package vocabulary loads the global word catalogue and derives the
// per-phase lookups built from it.
package vocabulary

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	apperrors "github.com/vytor/lirajourney/internal/errors"
	"github.com/vytor/lirajourney/internal/logger"
	"github.com/vytor/lirajourney/internal/models"
	"github.com/vytor/lirajourney/internal/textutil"
)

// Index is the global vocabulary catalogue keyed by normalized headword.
// It is loaded at most once and is read-only afterwards.
type Index struct {
	path string

	once     sync.Once
	err      error
	words    []models.CatalogueEntry
	byGerman map[string]models.CatalogueEntry
}

// NewIndex returns an index backed by the catalogue file at path.
func NewIndex(path string) *Index {
	return &Index{path: path}
}

// NewIndexFromEntries builds an already-loaded index.
func NewIndexFromEntries(entries []models.CatalogueEntry) *Index {
	idx := &Index{}
	idx.once.Do(func() { idx.build(entries) })
	return idx
}

// Load parses the catalogue file on first use. A missing file yields an
// empty index; malformed JSON is a parse error.
func (i *Index) Load(ctx context.Context) error {
	i.once.Do(func() {
		log := logger.FromContext(ctx).WithPrefix("vocabulary")

		data, err := os.ReadFile(i.path)
		if err != nil {
			if os.IsNotExist(err) {
				log.Info("no vocabulary catalogue at %s", i.path)
				i.build(nil)
				return
			}
			i.err = fmt.Errorf("read vocabulary catalogue: %w", err)
			return
		}

		var catalogue models.Catalogue
		if err := json.Unmarshal(data, &catalogue); err != nil {
			log.Error("failed to parse vocabulary catalogue %s: %v", i.path, err)
			i.err = apperrors.NewParseError(i.path, err)
			return
		}
		i.build(catalogue.Vocabulary)
		log.Info("loaded %d catalogue words (%d headwords)", len(i.words), len(i.byGerman))
	})
	return i.err
}

func (i *Index) build(entries []models.CatalogueEntry) {
	i.words = entries
	i.byGerman = make(map[string]models.CatalogueEntry, len(entries))
	for _, entry := range entries {
		key := textutil.NormalizeHeadword(entry.German)
		if key == "" {
			continue
		}
		// later duplicates replace earlier ones
		i.byGerman[key] = entry
	}
}

// Len reports the number of distinct headwords.
func (i *Index) Len() int {
	return len(i.byGerman)
}

// Words returns the catalogue in file order.
func (i *Index) Words() []models.CatalogueEntry {
	return i.words
}

// Lookup finds a catalogue entry by headword.
func (i *Index) Lookup(german string) (models.CatalogueEntry, bool) {
	entry, ok := i.byGerman[textutil.NormalizeHeadword(german)]
	return entry, ok
}

// EnrichCharacter returns a copy of character whose vocabulary words carry
// the catalogue's relation fields wherever the word itself left them empty.
// Character data is never overwritten.
func (i *Index) EnrichCharacter(ctx context.Context, character models.Character) (models.Character, error) {
	if err := i.Load(ctx); err != nil {
		return models.Character{}, err
	}
	out := character.Clone()
	if i.Len() == 0 {
		return out, nil
	}

	enriched := 0
	for p := range out.JourneyPhases {
		vocab := out.JourneyPhases[p].Vocabulary
		for w := range vocab {
			entry, ok := i.Lookup(vocab[w].German)
			if !ok {
				continue
			}
			vocab[w] = applyDefaults(vocab[w], entry)
			enriched++
		}
	}
	logger.FromContext(ctx).WithPrefix("vocabulary").Debug("character %s: %d words matched the catalogue", character.ID, enriched)
	return out, nil
}

func applyDefaults(word models.VocabularyEntry, entry models.CatalogueEntry) models.VocabularyEntry {
	if len(word.WordFamily) == 0 && len(entry.WordFamily) > 0 {
		word.WordFamily = append(models.StringList(nil), entry.WordFamily...)
	}
	if len(word.Synonyms) == 0 && len(entry.Synonyms) > 0 {
		word.Synonyms = append(models.StringList(nil), entry.Synonyms...)
	}
	if len(word.Collocations) == 0 && len(entry.Collocations) > 0 {
		word.Collocations = append(models.StringList(nil), entry.Collocations...)
	}
	if word.VisualHint == "" && entry.VisualHint != "" {
		word.VisualHint = entry.VisualHint
	}
	if len(word.Themes) == 0 && len(entry.Themes) > 0 {
		word.Themes = append(models.StringList(nil), entry.Themes...)
	}
	return word
}
