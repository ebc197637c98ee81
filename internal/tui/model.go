// Package tui is the interactive journal: a Bubble Tea program that records
// tasks as they are typed and shows the day's analysis on demand.
package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tiliavir/productivity-journal/internal/journal"
	"github.com/Tiliavir/productivity-journal/internal/model"
)

// MsgTick refreshes the elapsed time of the open entry.
type MsgTick struct{}

type screen int

const (
	screenJournal screen = iota
	screenAnalysis
)

// Options configures a Model. Zero values select the defaults.
type Options struct {
	// Now is the clock used for entry timestamps. Defaults to time.Now.
	Now func() time.Time
	// WrapWidth wraps the summary paragraph. Defaults to 72.
	WrapWidth int
	// Copy places text on the system clipboard. Defaults to clipboard.WriteAll.
	Copy func(string) error
}

// Model is the Bubble Tea model of the journal.
type Model struct {
	store       *journal.Store
	unsubscribe func()
	now         func() time.Time
	copy        func(string) error
	wrapWidth   int

	input    textinput.Model
	state    journal.State
	screen   screen
	analysis *model.Analysis
	status   string
}

// New returns a model driving store. The model renders from the states the
// store publishes; call Close to drop the subscription.
func New(store *journal.Store, opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.WrapWidth <= 0 {
		opts.WrapWidth = 72
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}

	ti := textinput.New()
	ti.Placeholder = "What are you working on?"
	ti.Prompt = "→ "
	ti.CharLimit = 200
	ti.Width = 50
	ti.Focus()

	m := &Model{
		store:     store,
		now:       opts.Now,
		copy:      opts.Copy,
		wrapWidth: opts.WrapWidth,
		input:     ti,
		state:     store.State(),
	}
	m.unsubscribe = store.Subscribe(func(s journal.State) {
		m.state = s
	})
	return m
}

// Close detaches the model from the store.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Analysis returns the last analysis shown, if any.
func (m *Model) Analysis() (model.Analysis, bool) {
	if m.analysis == nil {
		return model.Analysis{}, false
	}
	return *m.analysis, true
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgTick:
		return m, nil
	case tea.WindowSizeMsg:
		if w := msg.Width - 4; w > 10 && w < m.input.Width {
			m.input.Width = w
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.screen == screenAnalysis {
			return m.handleAnalysisKey(msg)
		}
		return m.handleJournalKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleJournalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// Blank input is ignored; the store rejects it without changes.
		if err := m.store.AddEntry(m.input.Value(), m.now()); err == nil {
			m.input.Reset()
		}
		m.status = ""
		return m, nil
	case "ctrl+a":
		a := m.store.Analyze(m.now())
		m.analysis = &a
		m.screen = screenAnalysis
		m.status = ""
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleAnalysisKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenJournal
		m.status = ""
		return m, m.input.Focus()
	case "c":
		if m.analysis == nil {
			return m, nil
		}
		if err := m.copy(m.analysis.Summary); err != nil {
			m.status = "Could not copy summary: " + err.Error()
		} else {
			m.status = "Summary copied to clipboard."
		}
	}
	return m, nil
}
