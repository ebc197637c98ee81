package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/productivity-journal/internal/config"
	"github.com/Tiliavir/productivity-journal/internal/journal"
	"github.com/Tiliavir/productivity-journal/internal/msgraph"
	"github.com/Tiliavir/productivity-journal/internal/report"
	"github.com/Tiliavir/productivity-journal/internal/timecalc"
)

var (
	outlookImportDate   string
	outlookImportTZ     string
	outlookImportFormat string
	outlookImportOutput string
)

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Outlook calendar integration",
}

var outlookImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Analyze a day of Outlook calendar events",
	Long: `Fetch a day of Outlook calendar events and analyze them as journal
entries. Each event is a task that runs until the next event starts.
Cancelled, all-day, private and free events are skipped.`,
	Args: cobra.NoArgs,
	RunE: runOutlookImport,
}

func init() {
	outlookImportCmd.Flags().StringVar(&outlookImportDate, "date", "", "Day to import (YYYY-MM-DD); defaults to today")
	outlookImportCmd.Flags().StringVar(&outlookImportTZ, "timezone", "", "IANA timezone for event times (e.g. Europe/Berlin)")
	outlookImportCmd.Flags().StringVar(&outlookImportFormat, "format", "md", "Output format: md, json, csv")
	outlookImportCmd.Flags().StringVarP(&outlookImportOutput, "output", "o", "", "Write the analysis to FILE instead of stdout")
	outlookCmd.AddCommand(outlookImportCmd)
}

func runOutlookImport(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(outlookImportFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	day := time.Now()
	if outlookImportDate != "" {
		day, err = time.ParseInLocation("2006-01-02", outlookImportDate, time.Local)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --date value %q: %v\n", outlookImportDate, err)
			os.Exit(1)
		}
	}
	from := timecalc.StartOfDay(day)
	to := timecalc.EndOfDay(day)

	cfg := loadConfig()
	table := loadCategories(cfg)

	// --timezone flag overrides config; config overrides UTC default.
	timezone := cfg.Outlook.Timezone
	if outlookImportTZ != "" {
		timezone = outlookImportTZ
	}

	base, err := config.BaseDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Progress goes to stderr when stdout carries machine-readable output.
	var progress io.Writer = os.Stdout
	if format != report.Markdown || outlookImportOutput != "" {
		progress = os.Stderr
	}
	fmt.Fprintf(progress, "Importing Outlook events for %s...\n\n", from.Format("2006-01-02"))

	ctx := context.Background()

	tokens := msgraph.NewTokenStore(base)
	tok, oauthCfg, err := msgraph.Authenticate(ctx, tokens, cfg.Outlook.TenantID, cfg.Outlook.ClientID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Authentication failed: %v\n", err)
		os.Exit(1)
	}

	client := msgraph.NewClient(ctx, tokens, tok, oauthCfg)

	events, err := client.GetCalendarView(ctx, from, to, timezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch calendar events: %v\n", err)
		os.Exit(2)
	}

	store := journal.New(table)
	result := msgraph.Import(progress, events, store, timezone)

	fmt.Fprintln(progress)
	fmt.Fprintf(progress, "%d imported, %d skipped", result.Imported, result.Skipped)
	if result.Errors > 0 {
		fmt.Fprintf(progress, ", %d errors", result.Errors)
	}
	fmt.Fprint(progress, "\n\n")

	if result.Imported == 0 {
		fmt.Fprintln(os.Stderr, "No events to analyze.")
		os.Exit(1)
	}

	a := store.Analyze(time.Now())
	writeAnalysis(a, format, outlookImportOutput, false, cfg.Summary.WrapWidth)
	return nil
}
