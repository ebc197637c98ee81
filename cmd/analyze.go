package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/productivity-journal/internal/journal"
	"github.com/Tiliavir/productivity-journal/internal/model"
	"github.com/Tiliavir/productivity-journal/internal/report"
	"github.com/Tiliavir/productivity-journal/internal/tasklog"
	"github.com/Tiliavir/productivity-journal/internal/timecalc"
)

var (
	analyzeDate   string
	analyzeEnd    string
	analyzeFormat string
	analyzeOutput string
	analyzeCopy   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [FILE|-]",
	Short: "Analyze a day log",
	Long: `Analyze a plain-text day log and print the productivity analysis.

Each line is "HH:MM task" (or an RFC 3339 timestamp followed by the task).
A line with only a time ends the running task. Blank lines and lines starting
with # are ignored. The log is read from FILE, or from stdin when FILE is
omitted or "-".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeDate, "date", "", "Day of the log (YYYY-MM-DD); defaults to today")
	analyzeCmd.Flags().StringVar(&analyzeEnd, "end", "", "Close the last task at HH:MM; defaults to now for today's log and is required for an earlier day whose log does not end with a time-only line")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "md", "Output format: md, json, csv")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Write the analysis to FILE instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeCopy, "copy", false, "Copy the summary to the clipboard")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(analyzeFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	day := time.Now()
	if analyzeDate != "" {
		day, err = time.ParseInLocation("2006-01-02", analyzeDate, time.Local)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --date value %q: %v\n", analyzeDate, err)
			os.Exit(1)
		}
	}

	end := time.Now()
	if analyzeEnd != "" {
		end, err = timecalc.ParseClock(day, analyzeEnd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "--end: %v\n", err)
			os.Exit(1)
		}
	}

	var in io.Reader = os.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		defer f.Close()
		in = f
	}

	lines, err := tasklog.Parse(in, day)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		var pe *tasklog.ParseError
		if errors.As(err, &pe) {
			os.Exit(1)
		}
		os.Exit(2)
	}

	cfg := loadConfig()
	store := journal.New(loadCategories(cfg))
	if err := tasklog.Replay(lines, store); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if _, open := store.OpenEntry(); open && analyzeEnd == "" && !timecalc.SameDay(day, time.Now()) {
		fmt.Fprintf(os.Stderr, "the last task of %s is still running: pass --end HH:MM or end the log with a time-only line\n", day.Format("2006-01-02"))
		os.Exit(1)
	}

	a := store.Analyze(end)
	writeAnalysis(a, format, analyzeOutput, analyzeCopy, cfg.Summary.WrapWidth)
	return nil
}

// writeAnalysis prints a, or writes it to output when set. Markdown sent to a
// terminal is rendered with glamour.
func writeAnalysis(a model.Analysis, format report.Format, output string, copySummary bool, width int) {
	opts := report.Options{Width: width}

	switch {
	case output != "":
		var buf bytes.Buffer
		if err := report.Write(&buf, a, format, opts); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		if err := report.WriteFile(output, buf.Bytes()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		fmt.Printf("Analysis written to %s\n", output)
	case format == report.Markdown && report.IsTerminal(os.Stdout):
		fmt.Print(report.RenderMarkdown(report.MarkdownString(a, opts), width))
	default:
		if err := report.Write(os.Stdout, a, format, opts); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	if copySummary {
		if err := clipboard.WriteAll(a.Summary); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not copy summary: %v\n", err)
		} else {
			fmt.Fprintln(os.Stderr, "Summary copied to clipboard.")
		}
	}
}
