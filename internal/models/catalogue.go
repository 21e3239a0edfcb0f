package models

// CatalogueEntry is one word of the global vocabulary catalogue. It both
// enriches character vocabulary and feeds the index page review list.
type CatalogueEntry struct {
	ID           string        `json:"id"`
	German       string        `json:"german"`
	Article      string        `json:"article,omitempty"`
	Translation  LocalizedText `json:"translation,omitempty"`
	Russian      string        `json:"russian,omitempty"`
	Emoji        string        `json:"emoji,omitempty"`
	Level        string        `json:"level,omitempty"`
	Frequency    string        `json:"frequency,omitempty"`
	Category     string        `json:"category,omitempty"`
	Phonetic     string        `json:"phonetic,omitempty"`
	Example      LocalizedText `json:"example,omitempty"`
	PracticeURL  string        `json:"practice_url,omitempty"`
	Learned      bool          `json:"learned,omitempty"`
	WordFamily   StringList    `json:"word_family,omitempty"`
	Synonyms     StringList    `json:"synonyms,omitempty"`
	Collocations StringList    `json:"collocations,omitempty"`
	VisualHint   string        `json:"visual_hint,omitempty"`
	Themes       StringList    `json:"themes,omitempty"`
}

// TranslationText prefers the Russian translation.
func (e CatalogueEntry) TranslationText() string {
	if t := e.Translation.Pick("ru", "en"); t != "" {
		return t
	}
	return e.Russian
}

// ExampleText prefers the German example sentence.
func (e CatalogueEntry) ExampleText() string {
	return e.Example.Pick("de", "ru")
}

// Catalogue is the on-disk shape of the vocabulary file.
type Catalogue struct {
	Vocabulary []CatalogueEntry `json:"vocabulary"`
}

// ReviewItem is a card in the index page "review today" section.
type ReviewItem struct {
	ID          string `json:"id"`
	Emoji       string `json:"emoji"`
	Word        string `json:"word"`
	Translation string `json:"translation"`
	Level       string `json:"level"`
	Category    string `json:"category"`
	Phonetic    string `json:"phonetic"`
	Example     string `json:"example"`
	PracticeURL string `json:"practice_url"`
	CharacterID string `json:"character_id,omitempty"`
	PhaseID     string `json:"phase_id,omitempty"`
}
