package category

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// tableFile is the on-disk shape of a category table:
//
//	[[category]]
//	name = "Deep Work"
//	keywords = ["coding", "writing"]
//	score = 10
type tableFile struct {
	Category Table `toml:"category"`
}

// Load reads a category table from a TOML file. A missing file yields the
// default table. Keywords are trimmed and lower-cased so they match the
// lower-cased task text.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read category file %s: %w", path, err)
	}
	return Parse(string(data))
}

// Parse decodes and validates a TOML category table.
func Parse(data string) (Table, error) {
	var f tableFile
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("parse category table: %w", err)
	}
	if len(f.Category) == 0 {
		return nil, fmt.Errorf("parse category table: no [[category]] entries")
	}

	table := make(Table, 0, len(f.Category))
	for _, c := range f.Category {
		keywords := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				keywords = append(keywords, kw)
			}
		}
		c.Name = strings.TrimSpace(c.Name)
		c.Keywords = keywords
		table = append(table, c)
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}
