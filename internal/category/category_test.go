package category_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tiliavir/productivity-journal/internal/category"
	"github.com/Tiliavir/productivity-journal/internal/model"
)

func TestClassify(t *testing.T) {
	table := category.Default()
	tests := []struct {
		task      string
		wantName  string
		wantScore int
	}{
		{"coding the parser", "Deep Work", 10},
		{"Writing docs", "Deep Work", 10},
		{"team MEETING", "Communication", 7},
		{"answering email", "Communication", 7},
		{"paperwork", "Administrative", 5},
		{"online course", "Learning", 8},
		{"lunch", "Break", 3},
		{"browsing", "Low Value", 1},
		{"scrolling social media", "Low Value", 1},
		{"Meeting about coding plan", "Deep Work", 10},
		{"email review of planning doc", "Deep Work", 10},
		{"reading during lunch", "Learning", 8},
		{"gardening", "General", 5},
		{"", "General", 5},
		{"   ", "General", 5},
	}
	for _, tt := range tests {
		got := table.Classify(tt.task)
		if got.Name != tt.wantName || got.Score != tt.wantScore {
			t.Errorf("Classify(%q) = %s(%d), want %s(%d)", tt.task, got.Name, got.Score, tt.wantName, tt.wantScore)
		}
	}
}

func TestClassifyDeclarationOrderWins(t *testing.T) {
	table := category.Table{
		{Name: "B", Keywords: []string{"plan"}, Score: 2},
		{Name: "A", Keywords: []string{"planning"}, Score: 9},
	}
	if got := table.Classify("planning session"); got.Name != "B" {
		t.Errorf("Classify = %q, want first declared %q", got.Name, "B")
	}
}

func TestClassifyFallbackIsShared(t *testing.T) {
	table := category.Default()
	got := table.Classify("nothing to see")
	if got.Name != category.FallbackName || got.Score != 5 || len(got.Keywords) != 0 {
		t.Errorf("fallback = %+v", got)
	}
	// An empty table always falls back.
	if got := category.Table(nil).Classify("coding"); got.Name != category.FallbackName {
		t.Errorf("empty table Classify = %q, want %q", got.Name, category.FallbackName)
	}
}

func TestDefaultIsACopy(t *testing.T) {
	a := category.Default()
	a[0] = model.TaskCategory{Name: "mutated"}
	if b := category.Default(); b[0].Name != "Deep Work" {
		t.Errorf("Default()[0] = %q after mutating a copy", b[0].Name)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		table   category.Table
		wantErr string
	}{
		{"ok", category.Default(), ""},
		{"empty name", category.Table{{Name: " ", Score: 3}}, "name is required"},
		{"duplicate", category.Table{{Name: "A", Score: 3}, {Name: "A", Score: 4}}, "duplicate"},
		{"reserved", category.Table{{Name: "general", Score: 3}}, "reserved"},
		{"score low", category.Table{{Name: "A", Score: 0}}, "out of range"},
		{"score high", category.Table{{Name: "A", Score: 11}}, "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParse(t *testing.T) {
	table, err := category.Parse(`
[[category]]
name = "Focus"
keywords = ["  Coding ", "DESIGN", ""]
score = 9

[[category]]
name = "Chores"
keywords = ["dishes"]
score = 2
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("categories = %d, want 2", len(table))
	}
	if got := strings.Join(table[0].Keywords, ","); got != "coding,design" {
		t.Errorf("keywords = %q, want %q", got, "coding,design")
	}
	if got := table.Classify("Design review"); got.Name != "Focus" {
		t.Errorf("Classify = %q, want %q", got.Name, "Focus")
	}
}

func TestParseErrors(t *testing.T) {
	for _, data := range []string{
		`not toml = [`,
		``,
		"[[category]]\nname = \"A\"\nscore = 42\n",
	} {
		if _, err := category.Parse(data); err == nil {
			t.Errorf("Parse(%q): expected error", data)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	table, err := category.Load(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("Load missing: %v", err)
	}
	if len(table) != len(category.Default()) {
		t.Errorf("Load missing: %d categories, want default %d", len(table), len(category.Default()))
	}

	path := filepath.Join(dir, "categories.toml")
	data := "[[category]]\nname = \"Ops\"\nkeywords = [\"deploy\"]\nscore = 6\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	table, err = category.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(table) != 1 || table[0].Name != "Ops" {
		t.Errorf("Load = %+v", table)
	}
}

func TestClassifyReturnsIndependentCopies(t *testing.T) {
	table := category.Default()
	got := table.Classify("coding")
	got.Keywords[0] = "changed"
	if table[0].Keywords[0] != "coding" {
		t.Errorf("table keyword changed through classified copy: %q", table[0].Keywords[0])
	}

	fallback := category.General()
	fallback.Score = 1
	fallback.Keywords = append(fallback.Keywords, "x")
	again := category.General()
	if again.Score != 5 || len(again.Keywords) != 0 {
		t.Errorf("General() = %+v after mutating a previous copy", again)
	}
}
