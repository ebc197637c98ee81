package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Tiliavir/productivity-journal/internal/model"
)

func intPtr(v int) *int { return &v }

func sampleAnalysis() model.Analysis {
	start := time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC)
	deep := model.TaskCategory{Name: "Deep Work", Keywords: []string{"coding"}, Score: 10}
	brk := model.TaskCategory{Name: "Break", Keywords: []string{"lunch"}, Score: 3}
	return model.Analysis{
		Entries: []model.JournalEntry{
			{ID: "a", Task: "coding, mostly", StartTime: start, Duration: intPtr(30), Category: &deep, ProductivityScore: intPtr(10)},
			{ID: "b", Task: "lunch", StartTime: start.Add(30 * time.Minute), Duration: intPtr(15), Category: &brk, ProductivityScore: intPtr(3)},
		},
		OverallScore: 345.0 / 450.0,
		Breakdown: []model.CategoryBreakdown{
			{Category: deep, TotalMinutes: 30, Percentage: 200.0 / 3},
			{Category: brk, TotalMinutes: 15, Percentage: 100.0 / 3},
		},
		Summary: "You tracked 45 minutes across 2 tasks today. Good productivity today with room for improvement.",
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"md", Markdown, false},
		{" JSON ", JSON, false},
		{"csv", CSV, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0, "0%"},
		{0.1, "10%"},
		{345.0 / 450.0, "76%"},
		{1, "100%"},
	}
	for _, tt := range tests {
		if got := Percent(tt.score); got != tt.want {
			t.Errorf("Percent(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleAnalysis(), Markdown, Options{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Productivity score: **76%** (good)",
		"| Deep Work | 30m | 67% |",
		"| Break | 15m | 33% |",
		"- 09:00 coding, mostly (30 min) · Deep Work, score 10",
		"## Summary\n\nYou tracked 45 minutes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestWriteMarkdownWrapsSummary(t *testing.T) {
	out := MarkdownString(sampleAnalysis(), Options{Width: 30})
	_, tail, _ := strings.Cut(out, "## Summary\n\n")
	for _, line := range strings.Split(strings.TrimSpace(tail), "\n") {
		if len(line) > 30 {
			t.Errorf("line %q longer than 30 columns", line)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleAnalysis(), JSON, Options{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var decoded model.Analysis
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(decoded.Entries) != 2 || decoded.Breakdown[0].Category.Name != "Deep Work" {
		t.Errorf("decoded = %+v", decoded)
	}
	if !strings.Contains(buf.String(), `"duration_minutes": 30`) {
		t.Errorf("JSON field names changed:\n%s", buf.String())
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleAnalysis(), CSV, Options{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "start,task,duration_minutes,category,score\n" +
		"2026-02-27T09:00:00Z,\"coding, mostly\",30,Deep Work,10\n" +
		"2026-02-27T09:30:00Z,lunch,15,Break,3\n"
	if buf.String() != want {
		t.Errorf("csv =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestCsvEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"with space", "with space"},
		{"with,comma", `"with,comma"`},
		{`with"quote`, `"with""quote"`},
		{"with\nnewline", "\"with\nnewline\""},
		{"with\rreturn", "\"with\rreturn\""},
		{"", ""},
	}
	for _, tt := range tests {
		got := csvEscape(tt.input)
		if got != tt.want {
			t.Errorf("csvEscape(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "day.md")
	if err := WriteFile(path, []byte("one")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := WriteFile(path, []byte("two")); err != nil {
		t.Fatalf("WriteFile overwrite: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "two" {
		t.Errorf("content = %q, want %q", data, "two")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}

func TestIsTerminalNonFile(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("bytes.Buffer reported as terminal")
	}
}

func TestRenderMarkdown(t *testing.T) {
	if got := RenderMarkdown("  ", 40); got != "  " {
		t.Errorf("blank input changed: %q", got)
	}
	out := RenderMarkdown("# Title\n\nsome text", 40)
	if !strings.Contains(out, "Title") || !strings.Contains(out, "some text") {
		t.Errorf("rendered output lost content: %q", out)
	}
}
