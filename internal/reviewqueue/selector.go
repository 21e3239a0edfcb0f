package reviewqueue

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/vytor/lirajourney/internal/logger"
	"github.com/vytor/lirajourney/internal/models"
	"github.com/vytor/lirajourney/internal/textutil"
)

const (
	// DefaultLimit is the size of the review section.
	DefaultLimit = 6
	// DefaultEmoji marks items whose catalogue entry has no emoji.
	DefaultEmoji = "📘"

	fallbackItemID = "review_item"
	missingLevel   = "Z"
)

var frequencyRank = map[string]int{"high": 0, "medium": 1, "low": 2}

// Loader is the read side of the queue store.
type Loader interface {
	Load(ctx context.Context) []Entry
}

// Selector picks the "review today" words from the catalogue, preferring
// the persisted queue over the default ranking.
type Selector struct {
	words    []models.CatalogueEntry
	byID     map[string]models.CatalogueEntry
	byGerman map[string]models.CatalogueEntry
	queue    Loader
}

// NewSelector builds a selector over the catalogue word list.
func NewSelector(words []models.CatalogueEntry, queue Loader) *Selector {
	s := &Selector{
		words:    words,
		byID:     make(map[string]models.CatalogueEntry, len(words)),
		byGerman: make(map[string]models.CatalogueEntry, len(words)),
		queue:    queue,
	}
	for _, w := range words {
		if id := strings.TrimSpace(w.ID); id != "" {
			if _, dup := s.byID[id]; !dup {
				s.byID[id] = w
			}
		}
		if key := textutil.NormalizeHeadword(w.German); key != "" {
			if _, dup := s.byGerman[key]; !dup {
				s.byGerman[key] = w
			}
		}
	}
	return s
}

// GetReviewItems returns at most limit items. A queue that yields at least
// one item wins; otherwise unlearned catalogue words (or all words, when
// every word is learned) are ranked by frequency, level and headword.
func (s *Selector) GetReviewItems(ctx context.Context, limit int) []models.ReviewItem {
	log := logger.FromContext(ctx).WithPrefix("review")
	if limit <= 0 || len(s.words) == 0 {
		return []models.ReviewItem{}
	}

	if s.queue != nil {
		if items := s.fromQueue(s.queue.Load(ctx), limit); len(items) > 0 {
			log.Debug("review section uses %d queued items", len(items))
			return items
		}
	}

	items := s.defaultRanking(limit)
	log.Debug("review section uses %d ranked catalogue words", len(items))
	return items
}

func (s *Selector) fromQueue(entries []Entry, limit int) []models.ReviewItem {
	items := make([]models.ReviewItem, 0, min(limit, len(entries)))
	for _, entry := range entries {
		if len(items) >= limit {
			break
		}
		item, ok := s.resolve(entry)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items
}

// resolve builds an item from the matching catalogue word overridden by the
// entry, or from the entry alone. Entries without a display word are skipped.
func (s *Selector) resolve(entry Entry) (models.ReviewItem, bool) {
	var item models.ReviewItem
	if word, ok := s.lookup(entry); ok {
		item = catalogueItem(word)
	} else {
		display := entry.Field("word", "german")
		if display == "" {
			return models.ReviewItem{}, false
		}
		item = models.ReviewItem{
			ID:          itemID("", display),
			Emoji:       DefaultEmoji,
			Word:        display,
			Translation: entry.Field("translation", "russian"),
		}
	}

	item.CharacterID = entry.Key.CharacterID
	item.PhaseID = entry.Key.PhaseID
	override(&item.Word, entry.Field("word"))
	override(&item.Translation, entry.Field("translation"))
	override(&item.Emoji, entry.Field("emoji"))
	override(&item.Level, entry.Field("level"))
	override(&item.Category, entry.Field("category"))
	override(&item.Phonetic, entry.Field("phonetic"))
	override(&item.Example, entry.Field("example"))
	override(&item.PracticeURL, entry.Field("practice_url", "practiceUrl"))
	if item.PracticeURL == "" {
		item.PracticeURL = practiceURL(item.CharacterID, item.PhaseID)
	}
	return item, true
}

func (s *Selector) lookup(entry Entry) (models.CatalogueEntry, bool) {
	if id := entry.Key.WordID; id != "" {
		if w, ok := s.byID[id]; ok {
			return w, true
		}
		if w, ok := s.byGerman[textutil.NormalizeHeadword(id)]; ok {
			return w, true
		}
	}
	if display := entry.Field("word", "german"); display != "" {
		if w, ok := s.byGerman[textutil.NormalizeHeadword(display)]; ok {
			return w, true
		}
	}
	return models.CatalogueEntry{}, false
}

func (s *Selector) defaultRanking(limit int) []models.ReviewItem {
	candidates := make([]models.CatalogueEntry, 0, len(s.words))
	for _, w := range s.words {
		if !w.Learned {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		candidates = slices.Clone(s.words)
	}

	slices.SortStableFunc(candidates, compareForReview)

	items := make([]models.ReviewItem, 0, min(limit, len(candidates)))
	for _, w := range candidates[:min(limit, len(candidates))] {
		items = append(items, catalogueItem(w))
	}
	return items
}

func compareForReview(a, b models.CatalogueEntry) int {
	return cmp.Or(
		cmp.Compare(rankFrequency(a.Frequency), rankFrequency(b.Frequency)),
		cmp.Compare(sortLevel(a.Level), sortLevel(b.Level)),
		cmp.Compare(a.German, b.German),
	)
}

func rankFrequency(frequency string) int {
	if rank, ok := frequencyRank[strings.ToLower(strings.TrimSpace(frequency))]; ok {
		return rank
	}
	return len(frequencyRank)
}

func sortLevel(level string) string {
	if level == "" {
		return missingLevel
	}
	return level
}

func catalogueItem(w models.CatalogueEntry) models.ReviewItem {
	emoji := w.Emoji
	if emoji == "" {
		emoji = DefaultEmoji
	}
	return models.ReviewItem{
		ID:          itemID(w.ID, displayWord(w)),
		Emoji:       emoji,
		Word:        displayWord(w),
		Translation: w.TranslationText(),
		Level:       w.Level,
		Category:    w.Category,
		Phonetic:    w.Phonetic,
		Example:     w.ExampleText(),
		PracticeURL: w.PracticeURL,
	}
}

// displayWord prefixes the article when the headword does not carry it.
func displayWord(w models.CatalogueEntry) string {
	german := textutil.CollapseWhitespace(w.German)
	article := strings.TrimSpace(w.Article)
	if article == "" || strings.HasPrefix(textutil.Lower(german), textutil.Lower(article)+" ") {
		return german
	}
	return article + " " + german
}

// itemID prefers the catalogue id, then the word with spaces as
// underscores. A blank word has no slug either, so it gets the fixed
// fallback id.
func itemID(catalogueID, word string) string {
	if id := strings.TrimSpace(catalogueID); id != "" {
		return id
	}
	if joined := strings.ReplaceAll(textutil.CollapseWhitespace(word), " ", "_"); joined != "" {
		return joined
	}
	return fallbackItemID
}

func practiceURL(characterID, phaseID string) string {
	if characterID == "" {
		return ""
	}
	url := "journeys/" + characterID + ".html"
	if phaseID != "" {
		url += "#" + phaseID
	}
	return url
}

func override(field *string, value string) {
	if value != "" {
		*field = value
	}
}
