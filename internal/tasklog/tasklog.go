// Package tasklog parses a plain-text day log and replays it into a journal.
//
// Each line is "HH:MM task text" or "<RFC 3339 timestamp> task text". Blank
// lines and lines starting with # are ignored. A line holding only a time is
// an end marker that closes the running task.
package tasklog

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/Tiliavir/productivity-journal/internal/journal"
	"github.com/Tiliavir/productivity-journal/internal/timecalc"
)

// Line is one parsed log line. An empty Task marks the end of the running task.
type Line struct {
	Number int
	At     time.Time
	Task   string
}

// ParseError reports a malformed line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parse reads a day log. Clock times are placed on day, in day's location.
// Times must not go backwards.
func Parse(r io.Reader, day time.Time) ([]Line, error) {
	var lines []Line
	var last time.Time

	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		stamp, task := text, ""
		if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
			stamp, task = text[:i], text[i:]
		}
		at, err := parseStamp(day, stamp)
		if err != nil {
			return nil, &ParseError{Line: n, Msg: err.Error()}
		}
		if !last.IsZero() && at.Before(last) {
			return nil, &ParseError{Line: n, Msg: fmt.Sprintf("time %s is before previous entry", stamp)}
		}
		last = at

		lines = append(lines, Line{Number: n, At: at, Task: strings.TrimSpace(task)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading task log: %w", err)
	}
	return lines, nil
}

func parseStamp(day time.Time, stamp string) (time.Time, error) {
	if strings.Contains(stamp, "T") {
		t, err := time.Parse(time.RFC3339, stamp)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid timestamp %q", stamp)
		}
		return t, nil
	}
	return timecalc.ParseClock(day, stamp)
}

// Replay feeds parsed lines into store in order. Task lines are added as
// entries; end markers finalize the running entry.
func Replay(lines []Line, store *journal.Store) error {
	for _, l := range lines {
		if l.Task == "" {
			store.FinalizeOpenEntry(l.At)
			continue
		}
		if err := store.AddEntry(l.Task, l.At); err != nil {
			return &ParseError{Line: l.Number, Msg: err.Error()}
		}
	}
	return nil
}
