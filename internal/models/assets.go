package models

// Exercise is a fill-in-the-blank text built from a phase's theatrical scene.
// Text is an HTML fragment.
type Exercise struct {
	PhaseID  string `json:"phase_id"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	IsActive bool   `json:"is_active"`
}

// QuizGroup is the quiz set of one phase.
type QuizGroup struct {
	PhaseID   string `json:"phase_id"`
	Questions []Quiz `json:"questions"`
	IsActive  bool   `json:"is_active"`
}

// RelationsMetadata flags which relation blocks a phase can render.
type RelationsMetadata struct {
	HasWordFamilies bool `json:"has_word_families"`
	HasSynonyms     bool `json:"has_synonyms"`
	HasCollocations bool `json:"has_collocations"`
	HasRelations    bool `json:"has_relations"`
}

// JourneyAssets is everything the journey template needs besides the
// character header.
type JourneyAssets struct {
	Phases            []JourneyPhase
	Exercises         []Exercise
	Quizzes           []QuizGroup
	QuizzesJSON       string
	RelationsMetadata map[string]RelationsMetadata
}
