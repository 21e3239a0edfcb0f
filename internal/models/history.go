package models

import "time"

const (
	RunStatusRunning = "running"
	RunStatusOK      = "ok"
	RunStatusPartial = "partial"
	RunStatusFailed  = "failed"

	PageStatusGenerated = "generated"
	PageStatusFailed    = "failed"
)

// BuildRun is one invocation of the generator.
type BuildRun struct {
	ID                 string     `json:"id"`
	StartedAt          time.Time  `json:"started_at"`
	FinishedAt         *time.Time `json:"finished_at"`
	Status             string     `json:"status"`
	CharactersExpected int        `json:"characters_expected"`
	CharactersFound    int        `json:"characters_found"`
	PagesGenerated     int        `json:"pages_generated"`
	PagesFailed        int        `json:"pages_failed"`
	OutputDir          string     `json:"output_dir"`
}

// BuildPage is the outcome of one page within a run.
type BuildPage struct {
	ID            int64     `json:"id"`
	RunID         string    `json:"run_id"`
	CharacterID   string    `json:"character_id"`
	Status        string    `json:"status"`
	Error         string    `json:"error,omitempty"`
	PhaseCount    int       `json:"phase_count"`
	QuizCount     int       `json:"quiz_count"`
	ExerciseCount int       `json:"exercise_count"`
	OutputPath    string    `json:"output_path"`
	CreatedAt     time.Time `json:"created_at"`
}

// RunFilter narrows history listings. CharacterID matches runs that built
// a page for that character.
type RunFilter struct {
	CharacterID string
	Status      string
	Limit       int
	Offset      int
}
