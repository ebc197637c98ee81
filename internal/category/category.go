// Package category holds the productivity category table and the keyword
// classifier that maps task text onto it.
//
// The table is ordered: when a task matches keywords of several categories,
// the category declared first wins.
package category

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Tiliavir/productivity-journal/internal/model"
)

// FallbackName is the name of the category assigned when no keyword matches.
const FallbackName = "General"

// general is the fallback category. It has no keywords and is never matched
// by keyword search.
var general = model.TaskCategory{
	Name:     FallbackName,
	Keywords: []string{},
	Score:    5,
}

// General returns the fallback category.
func General() model.TaskCategory {
	return clone(general)
}

// clone copies c so callers cannot reach the table's keyword slices.
func clone(c model.TaskCategory) model.TaskCategory {
	c.Keywords = slices.Clone(c.Keywords)
	if c.Keywords == nil {
		c.Keywords = []string{}
	}
	return c
}

// Table is an ordered list of categories. Order defines match priority.
type Table []model.TaskCategory

var defaultTable = Table{
	{Name: "Deep Work", Keywords: []string{"coding", "writing", "research", "analysis", "planning", "designing", "studying"}, Score: 10},
	{Name: "Communication", Keywords: []string{"meeting", "email", "call", "discussion", "review", "feedback"}, Score: 7},
	{Name: "Administrative", Keywords: []string{"organizing", "filing", "scheduling", "paperwork", "admin"}, Score: 5},
	{Name: "Learning", Keywords: []string{"reading", "tutorial", "course", "learning", "training"}, Score: 8},
	{Name: "Break", Keywords: []string{"lunch", "break", "coffee", "walk", "rest", "personal"}, Score: 3},
	{Name: "Low Value", Keywords: []string{"browsing", "social media", "distracted", "procrastinating"}, Score: 1},
}

// Default returns the built-in category table.
func Default() Table {
	return append(Table(nil), defaultTable...)
}

// Classify returns the first category in t with a keyword contained in task,
// compared case-insensitively, or General when nothing matches.
func (t Table) Classify(task string) model.TaskCategory {
	lower := strings.ToLower(task)
	for _, c := range t {
		for _, kw := range c.Keywords {
			if kw != "" && strings.Contains(lower, kw) {
				return clone(c)
			}
		}
	}
	return General()
}

// Validate checks that names are unique and non-empty and scores are within 1–10.
func (t Table) Validate() error {
	seen := make(map[string]bool, len(t))
	for i, c := range t {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return fmt.Errorf("category %d: name is required", i+1)
		}
		if strings.EqualFold(name, FallbackName) {
			return fmt.Errorf("category %q: name is reserved for the fallback category", name)
		}
		if seen[name] {
			return fmt.Errorf("category %q: duplicate name", name)
		}
		seen[name] = true
		if c.Score < 1 || c.Score > 10 {
			return fmt.Errorf("category %q: score %d out of range 1-10", name, c.Score)
		}
	}
	return nil
}
