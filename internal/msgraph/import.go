package msgraph

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/Tiliavir/productivity-journal/internal/journal"
)

// ImportResult holds counters for an import run.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   int
}

// parseGraphTime parses a Graph API dateTime string in the given timezone.
// Graph returns times like "2026-02-27T09:00:00.0000000" without a zone suffix
// when a Prefer: outlook.timezone header is set.
func parseGraphTime(dt, tz string) (time.Time, error) {
	// Try RFC3339 first (includes timezone offset).
	if t, err := time.Parse(time.RFC3339, dt); err == nil {
		return t, nil
	}
	// Try RFC3339Nano.
	if t, err := time.Parse(time.RFC3339Nano, dt); err == nil {
		return t, nil
	}

	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}

	// Graph returns fractional seconds: "2026-02-27T09:00:00.0000000"
	for _, layout := range []string{
		"2006-01-02T15:04:05.0000000",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, dt, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse graph time %q", dt)
}

// shouldSkip returns true if the event should not be imported.
func shouldSkip(event CalendarEvent) bool {
	if event.IsCancelled {
		return true
	}
	if event.IsAllDay {
		return true
	}
	if event.Sensitivity == "private" {
		return true
	}
	if event.ShowAs == "free" {
		return true
	}
	if strings.TrimSpace(event.Subject) == "" {
		return true
	}
	if event.Start.DateTime == "" || event.End.DateTime == "" {
		return true
	}
	return false
}

// span is an event reduced to what the journal needs.
type span struct {
	task       string
	start, end time.Time
}

func eventSpan(event CalendarEvent, timezone string) (span, error) {
	start, err := parseGraphTime(event.Start.DateTime, timezone)
	if err != nil {
		return span{}, fmt.Errorf("parsing start time: %w", err)
	}
	end, err := parseGraphTime(event.End.DateTime, timezone)
	if err != nil {
		return span{}, fmt.Errorf("parsing end time: %w", err)
	}
	if end.Before(start) {
		return span{}, fmt.Errorf("event ends before it starts")
	}
	return span{task: strings.TrimSpace(event.Subject), start: start, end: end}, nil
}

// Import adds calendar events to store as journal entries in start order.
// Each event runs until the next one starts; the last one is closed at its
// own end time. Skipped and unparseable events are counted, not fatal.
func Import(w io.Writer, events []CalendarEvent, store *journal.Store, timezone string) ImportResult {
	var result ImportResult

	var spans []span
	for _, event := range events {
		if shouldSkip(event) {
			result.Skipped++
			continue
		}
		s, err := eventSpan(event, timezone)
		if err != nil {
			fmt.Fprintf(w, "  ! Error mapping event %q: %v\n", event.Subject, err)
			result.Errors++
			continue
		}
		spans = append(spans, s)
	}

	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].start.Before(spans[j].start)
	})

	for _, s := range spans {
		if err := store.AddEntry(s.task, s.start); err != nil {
			fmt.Fprintf(w, "  ! Error adding %q: %v\n", s.task, err)
			result.Errors++
			continue
		}
		fmt.Fprintf(w, "  ✓ Imported: %s (%s)\n", s.task, s.start.Format("15:04"))
		result.Imported++
	}
	if len(spans) > 0 {
		store.FinalizeOpenEntry(spans[len(spans)-1].end)
	}
	return result
}
