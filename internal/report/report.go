// Package report formats an analysis for output as markdown, JSON or CSV.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/Tiliavir/productivity-journal/internal/model"
	"github.com/Tiliavir/productivity-journal/internal/summary"
	"github.com/Tiliavir/productivity-journal/internal/timecalc"
)

// Format names an output format.
type Format string

const (
	Markdown Format = "md"
	JSON     Format = "json"
	CSV      Format = "csv"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Markdown, JSON, CSV:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want md, json or csv)", s)
}

// Options controls rendering.
type Options struct {
	// Width wraps the markdown summary paragraph; 0 disables wrapping.
	Width int
}

// Write renders a in the given format.
func Write(w io.Writer, a model.Analysis, format Format, opts Options) error {
	switch format {
	case JSON:
		data, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case CSV:
		return writeCSV(w, a)
	default:
		_, err := io.WriteString(w, MarkdownString(a, opts))
		return err
	}
}

// Percent formats a [0,1] score as a whole percentage, truncating like a gauge.
func Percent(score float64) string {
	return fmt.Sprintf("%d%%", int(math.Floor(score*100)))
}

// MarkdownString renders a as a markdown document.
func MarkdownString(a model.Analysis, opts Options) string {
	var sb strings.Builder
	sb.WriteString("# Day Analysis\n\n")
	fmt.Fprintf(&sb, "Productivity score: **%s** (%s)\n\n", Percent(a.OverallScore), summary.BandFor(a.OverallScore))

	if len(a.Breakdown) > 0 {
		sb.WriteString("## Category Breakdown\n\n")
		sb.WriteString("| Category | Time | Share |\n")
		sb.WriteString("|---|---:|---:|\n")
		for _, b := range a.Breakdown {
			fmt.Fprintf(&sb, "| %s | %s | %.0f%% |\n", b.Category.Name, timecalc.FormatMinutes(b.TotalMinutes), b.Percentage)
		}
		sb.WriteString("\n")
	}

	if len(a.Entries) > 0 {
		sb.WriteString("## Entries\n\n")
		for _, e := range a.Entries {
			fmt.Fprintf(&sb, "- %s %s", e.StartTime.Format("15:04"), e.Task)
			if e.Duration != nil {
				fmt.Fprintf(&sb, " (%d min)", *e.Duration)
			}
			if e.Category != nil && e.ProductivityScore != nil {
				fmt.Fprintf(&sb, " · %s, score %d", e.Category.Name, *e.ProductivityScore)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Summary\n\n")
	text := a.Summary
	if opts.Width > 0 {
		text = wordwrap.String(text, opts.Width)
	}
	sb.WriteString(text)
	sb.WriteString("\n")
	return sb.String()
}

func writeCSV(w io.Writer, a model.Analysis) error {
	if _, err := fmt.Fprintln(w, "start,task,duration_minutes,category,score"); err != nil {
		return err
	}
	for _, e := range a.Entries {
		dur, cat, score := "", "", ""
		if e.Duration != nil {
			dur = fmt.Sprint(*e.Duration)
		}
		if e.Category != nil {
			cat = e.Category.Name
		}
		if e.ProductivityScore != nil {
			score = fmt.Sprint(*e.ProductivityScore)
		}
		if _, err := fmt.Fprintf(w, "%s,%s,%s,%s,%s\n",
			csvEscape(e.StartTime.Format("2006-01-02T15:04:05Z07:00")),
			csvEscape(e.Task),
			dur,
			csvEscape(cat),
			score,
		); err != nil {
			return err
		}
	}
	return nil
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	// Escape internal double quotes by doubling them.
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
