// Package journal holds the day's ordered task log and turns it into an
// analysis.
//
// Entries are appended in chronological order and never removed. Only the
// last entry may be open (no duration yet); it is closed when the next task
// is added or when the day is analysed.
package journal

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tiliavir/productivity-journal/internal/category"
	"github.com/Tiliavir/productivity-journal/internal/model"
	"github.com/Tiliavir/productivity-journal/internal/scoring"
	"github.com/Tiliavir/productivity-journal/internal/summary"
	"github.com/Tiliavir/productivity-journal/internal/timecalc"
)

// ErrEmptyTask is returned by AddEntry when the task text is blank.
var ErrEmptyTask = errors.New("task description is empty")

// noOpen marks that no entry is open.
const noOpen = -1

// State is a snapshot of the store's observable state.
type State struct {
	Entries      []model.JournalEntry
	OverallScore float64
	Breakdown    []model.CategoryBreakdown
}

// Store is the in-memory journal of one session. It is not safe for
// concurrent use; it is owned by a single UI loop.
type Store struct {
	table     category.Table
	entries   []model.JournalEntry
	open      int
	score     float64
	breakdown []model.CategoryBreakdown

	nextSub     int
	subscribers []subscriber
}

type subscriber struct {
	id int
	fn func(State)
}

// New returns an empty store classifying against table.
func New(table category.Table) *Store {
	return &Store{
		table: table,
		open:  noOpen,
	}
}

// Subscribe registers fn to be called with a fresh State after every change.
// Subscribers are called in the order they subscribed. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	id := s.nextSub
	s.nextSub++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	return func() {
		s.subscribers = slices.DeleteFunc(s.subscribers, func(sub subscriber) bool {
			return sub.id == id
		})
	}
}

// AddEntry closes the open entry at now and starts a new one for task.
// A blank task is rejected with ErrEmptyTask and leaves the store unchanged.
func (s *Store) AddEntry(task string, now time.Time) error {
	task = strings.TrimSpace(task)
	if task == "" {
		return ErrEmptyTask
	}

	s.closeOpen(now)
	s.entries = append(s.entries, model.JournalEntry{
		ID:        uuid.NewString(),
		Task:      task,
		StartTime: now,
	})
	s.open = len(s.entries) - 1
	s.publish()
	return nil
}

// FinalizeOpenEntry closes the open entry at now, if there is one.
func (s *Store) FinalizeOpenEntry(now time.Time) {
	if s.closeOpen(now) {
		s.publish()
	}
}

// closeOpen backfills the open entry's duration and reports whether one was open.
func (s *Store) closeOpen(now time.Time) bool {
	if s.open == noOpen {
		return false
	}
	e := &s.entries[s.open]
	minutes := timecalc.ElapsedMinutes(e.StartTime, now)
	e.Duration = &minutes
	s.open = noOpen
	return true
}

// ClassifyAll replaces every entry with a copy carrying its category and score
// and returns the classified entries. Only Category and ProductivityScore change.
func (s *Store) ClassifyAll() []model.JournalEntry {
	s.classify()
	s.publish()
	return s.Entries()
}

func (s *Store) classify() {
	classified := make([]model.JournalEntry, len(s.entries))
	for i, e := range s.entries {
		c := s.table.Classify(e.Task)
		score := c.Score
		e.Category = &c
		e.ProductivityScore = &score
		classified[i] = e
	}
	s.entries = classified
}

// Analyze closes the open entry at now, classifies all entries and recomputes
// the overall score, the breakdown and the summary.
func (s *Store) Analyze(now time.Time) model.Analysis {
	s.closeOpen(now)
	s.classify()

	entries := s.Entries()
	s.score = scoring.OverallScore(entries)
	s.breakdown = scoring.CategoryBreakdown(entries)
	s.publish()

	breakdown := s.Breakdown()
	return model.Analysis{
		Entries:      entries,
		OverallScore: s.score,
		Breakdown:    breakdown,
		Summary:      summary.Generate(entries, s.score, breakdown),
	}
}

// Entries returns a deep copy of the entries in insertion order.
func (s *Store) Entries() []model.JournalEntry {
	if len(s.entries) == 0 {
		return nil
	}
	out := make([]model.JournalEntry, len(s.entries))
	for i, e := range s.entries {
		out[i] = copyEntry(e)
	}
	return out
}

// copyEntry detaches e from the store's pointers and keyword slices.
func copyEntry(e model.JournalEntry) model.JournalEntry {
	if e.Duration != nil {
		d := *e.Duration
		e.Duration = &d
	}
	if e.ProductivityScore != nil {
		p := *e.ProductivityScore
		e.ProductivityScore = &p
	}
	if e.Category != nil {
		c := *e.Category
		c.Keywords = slices.Clone(c.Keywords)
		e.Category = &c
	}
	return e
}

// OpenEntry returns the open entry, if any.
func (s *Store) OpenEntry() (model.JournalEntry, bool) {
	if s.open == noOpen {
		return model.JournalEntry{}, false
	}
	return copyEntry(s.entries[s.open]), true
}

// OverallScore returns the score computed by the last analysis.
func (s *Store) OverallScore() float64 {
	return s.score
}

// Breakdown returns the breakdown computed by the last analysis.
func (s *Store) Breakdown() []model.CategoryBreakdown {
	if len(s.breakdown) == 0 {
		return nil
	}
	out := make([]model.CategoryBreakdown, len(s.breakdown))
	for i, b := range s.breakdown {
		b.Category.Keywords = slices.Clone(b.Category.Keywords)
		out[i] = b
	}
	return out
}

// State returns a snapshot of the observable state.
func (s *Store) State() State {
	return State{
		Entries:      s.Entries(),
		OverallScore: s.score,
		Breakdown:    s.Breakdown(),
	}
}

func (s *Store) publish() {
	if len(s.subscribers) == 0 {
		return
	}
	st := s.State()
	for _, sub := range slices.Clone(s.subscribers) {
		sub.fn(st)
	}
}
