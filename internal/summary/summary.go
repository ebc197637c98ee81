// Package summary renders the day's analysis as a short paragraph.
package summary

import (
	"fmt"
	"strings"

	"github.com/Tiliavir/productivity-journal/internal/model"
	"github.com/Tiliavir/productivity-journal/internal/scoring"
)

// Band is a coarse productivity rating derived from the overall score.
type Band int

const (
	Low Band = iota
	Average
	Good
	Excellent
)

func (b Band) String() string {
	switch b {
	case Excellent:
		return "excellent"
	case Good:
		return "good"
	case Average:
		return "average"
	default:
		return "low"
	}
}

// BandFor maps an overall score onto a Band. Bounds are inclusive below:
// [0.8, 1.0] excellent, [0.6, 0.8) good, [0.4, 0.6) average, anything else low.
func BandFor(score float64) Band {
	switch {
	case score >= 0.8 && score <= 1.0:
		return Excellent
	case score >= 0.6 && score < 0.8:
		return Good
	case score >= 0.4 && score < 0.6:
		return Average
	default:
		return Low
	}
}

var closing = map[Band]string{
	Excellent: "Excellent productivity today! You focused on high-value activities.",
	Good:      "Good productivity today with room for improvement.",
	Average:   "Average productivity. Consider focusing more on deep work tomorrow.",
	Low:       "Low productivity today. Try to minimize distractions and focus on important tasks.",
}

// TopCategory returns the first breakdown element with the most minutes.
func TopCategory(breakdown []model.CategoryBreakdown) (model.CategoryBreakdown, bool) {
	if len(breakdown) == 0 {
		return model.CategoryBreakdown{}, false
	}
	top := breakdown[0]
	for _, b := range breakdown[1:] {
		if b.TotalMinutes > top.TotalMinutes {
			top = b
		}
	}
	return top, true
}

// Generate builds the summary text from entries, the overall score and the breakdown.
func Generate(entries []model.JournalEntry, overallScore float64, breakdown []model.CategoryBreakdown) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You tracked %d minutes across %d tasks today. ", scoring.TotalMinutes(entries), len(entries))

	if top, ok := TopCategory(breakdown); ok {
		fmt.Fprintf(&sb, "You spent most of your time on %s activities (%d minutes). ", top.Category.Name, top.TotalMinutes)
	}

	sb.WriteString(closing[BandFor(overallScore)])
	return sb.String()
}
