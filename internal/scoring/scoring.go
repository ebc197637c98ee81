// Package scoring computes the duration-weighted productivity score and the
// per-category time breakdown of classified journal entries.
package scoring

import (
	"sort"

	"github.com/Tiliavir/productivity-journal/internal/model"
)

// MaxScore is the highest per-minute category score; it normalizes the overall score.
const MaxScore = 10.0

// TotalMinutes sums the durations of all entries that have one.
func TotalMinutes(entries []model.JournalEntry) int {
	total := 0
	for _, e := range entries {
		if e.Duration != nil {
			total += *e.Duration
		}
	}
	return total
}

// OverallScore returns the duration-weighted average score normalized to [0,1].
// Entries without a score or duration do not contribute to the weighted sum.
// It returns 0 when no tracked time exists.
func OverallScore(entries []model.JournalEntry) float64 {
	weighted := 0
	for _, e := range entries {
		if e.ProductivityScore == nil || e.Duration == nil {
			continue
		}
		weighted += *e.ProductivityScore * *e.Duration
	}

	total := TotalMinutes(entries)
	if total == 0 {
		return 0.0
	}
	return float64(weighted) / (float64(total) * MaxScore)
}

// CategoryBreakdown groups classified entries by category name and returns
// their minutes and share of total tracked time, largest first. Categories
// with equal minutes keep the order in which they first appear.
func CategoryBreakdown(entries []model.JournalEntry) []model.CategoryBreakdown {
	total := TotalMinutes(entries)

	index := map[string]int{}
	var result []model.CategoryBreakdown
	for _, e := range entries {
		if e.Category == nil || e.Duration == nil {
			continue
		}
		i, seen := index[e.Category.Name]
		if !seen {
			i = len(result)
			index[e.Category.Name] = i
			result = append(result, model.CategoryBreakdown{Category: *e.Category})
		}
		result[i].TotalMinutes += *e.Duration
	}

	for i := range result {
		if total > 0 {
			result[i].Percentage = float64(result[i].TotalMinutes) / float64(total) * 100
		}
	}

	sort.SliceStable(result, func(a, b int) bool {
		return result[a].TotalMinutes > result[b].TotalMinutes
	})
	return result
}
