// Package quality scores the pipeline against the shipped improvement rules
// and turns low scores into concrete improvement suggestions.
package quality

import "time"

// Observed carries the measured state a review scores against: per-file
// test coverage and named pipeline metrics, each in [0, 1].
type Observed struct {
	Files   map[string]FileCoverage `json:"files"`
	Metrics map[string]float64      `json:"metrics"`
}

// FileCoverage is the coverage record for one source file.
type FileCoverage struct {
	Coverage float64 `json:"coverage"`
}

// AreaScore is the combined file and metric score for one improvement area.
type AreaScore struct {
	Area  string  `json:"area"`
	Score float64 `json:"score"`
}

// Suggestion describes the changes an area below the review threshold
// calls for, with the commit message the automation would use.
type Suggestion struct {
	Area             string   `json:"area"`
	Description      string   `json:"description"`
	TargetFiles      []string `json:"target_files"`
	CurrentScore     float64  `json:"current_score"`
	SuggestedChanges []string `json:"suggested_changes"`
	CommitMessage    string   `json:"commit_message"`
}

// Review is the outcome of one improvement review.
type Review struct {
	Scores      []AreaScore  `json:"scores"`
	Suggestions []Suggestion `json:"suggestions"`
	ReviewedAt  time.Time    `json:"reviewed_at"`
}
