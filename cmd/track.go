package cmd

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/productivity-journal/internal/journal"
	"github.com/Tiliavir/productivity-journal/internal/report"
	"github.com/Tiliavir/productivity-journal/internal/tui"
)

var trackNoReport bool

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Start the interactive journal",
	Long: `Start the interactive journal. Type what you are working on and press
Enter whenever you switch tasks. Ctrl+A shows the day's analysis.
When the journal is closed the final analysis is printed.`,
	Args: cobra.NoArgs,
	RunE: runTrack,
}

func init() {
	// The root command runs the journal too, so it takes the same flag.
	for _, c := range []*cobra.Command{trackCmd, rootCmd} {
		c.Flags().BoolVar(&trackNoReport, "no-report", false, "Do not print the analysis on exit")
	}
}

func runTrack(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store := journal.New(loadCategories(cfg))

	m := tui.New(store, tui.Options{WrapWidth: cfg.Summary.WrapWidth})
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.Send(tui.MsgTick{})
			case <-done:
				return
			}
		}
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running journal: %v\n", err)
		os.Exit(2)
	}

	if trackNoReport || len(store.Entries()) == 0 {
		return nil
	}
	a := store.Analyze(time.Now())
	writeAnalysis(a, report.Markdown, "", false, cfg.Summary.WrapWidth)
	return nil
}
