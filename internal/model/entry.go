package model

import "time"

// JournalEntry represents a single logged task.
// Duration, Category and ProductivityScore stay nil until they are known.
type JournalEntry struct {
	ID                string        `json:"id"`
	Task              string        `json:"task"`
	StartTime         time.Time     `json:"start_time"`
	Duration          *int          `json:"duration_minutes"`
	Category          *TaskCategory `json:"category"`
	ProductivityScore *int          `json:"productivity_score"`
}

// IsOpen reports whether the entry is still running (no duration yet).
func (e JournalEntry) IsOpen() bool {
	return e.Duration == nil
}

// TaskCategory is a keyword-defined productivity bucket.
type TaskCategory struct {
	Name     string   `json:"name" toml:"name"`
	Keywords []string `json:"keywords" toml:"keywords"`
	Score    int      `json:"score" toml:"score"`
}

// CategoryBreakdown aggregates tracked minutes for one category.
type CategoryBreakdown struct {
	Category     TaskCategory `json:"category"`
	TotalMinutes int          `json:"total_minutes"`
	Percentage   float64      `json:"percentage"`
}

// Analysis is the result of analysing the day's entries.
type Analysis struct {
	Entries      []JournalEntry      `json:"entries"`
	OverallScore float64             `json:"overall_score"`
	Breakdown    []CategoryBreakdown `json:"breakdown"`
	Summary      string              `json:"summary"`
}
