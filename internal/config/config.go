package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration for pj, stored in ~/.pj/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	// CategoriesFile is the TOML category table. Empty = ~/.pj/categories.toml.
	CategoriesFile string        `json:"categories_file"`
	Summary        SummaryConfig `json:"summary"`
	Outlook        OutlookConfig `json:"outlook"`
}

// SummaryConfig controls how the analysis is presented.
type SummaryConfig struct {
	// WrapWidth is the column at which summary text is wrapped.
	WrapWidth int `json:"wrap_width"`
}

// OutlookConfig holds Microsoft Graph / Outlook calendar import settings.
type OutlookConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for personal/multi-tenant accounts.
	TenantID string `json:"tenant_id"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code flow.
	ClientID string `json:"client_id"`
	// Timezone is the IANA timezone for event times (e.g. "Europe/Berlin"). Empty = UTC.
	Timezone string `json:"timezone"`
}

const (
	// DefaultTenantID is the Microsoft "common" tenant (supports personal and
	// multi-tenant organisational accounts without additional registration).
	DefaultTenantID = "common"
	// DefaultClientID is the well-known public Azure CLI app ID.
	// It supports device code flow without a client secret and requires no
	// app registration.
	DefaultClientID = "04b07795-8542-4c4a-95af-30b2c573d5ab"
	// DefaultWrapWidth is the summary wrap width used when none is configured.
	DefaultWrapWidth = 72
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig(base string) Config {
	return Config{
		CategoriesFile: filepath.Join(base, "categories.toml"),
		Summary:        SummaryConfig{WrapWidth: DefaultWrapWidth},
		Outlook: OutlookConfig{
			TenantID: DefaultTenantID,
			ClientID: DefaultClientID,
		},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// pj configuration – ~/.pj/config.json
//
// All settings are optional; the built-in defaults work out of the box.
{
  // TOML file with a custom category table. Empty uses ~/.pj/categories.toml
  // when it exists and the built-in table otherwise. Example entry:
  //   [[category]]
  //   name = "Deep Work"
  //   keywords = ["coding", "writing"]
  //   score = 10
  "categories_file": "",

  "summary": {
    // Column at which the summary paragraph is wrapped.
    "wrap_width": 72
  },

  // ── Microsoft Graph / Outlook calendar import ────────────────────────────
  "outlook": {
    // Azure AD tenant ID ("common" for personal accounts and any organisation).
    "tenant_id": "common",

    // Azure application (client) ID used for the OAuth2 device code flow.
    // The built-in value is the public Azure CLI app – no app registration needed.
    "client_id": "04b07795-8542-4c4a-95af-30b2c573d5ab",

    // IANA timezone for interpreting calendar event times, e.g. "Europe/Berlin".
    // Leave empty to use UTC. Can be overridden with: pj outlook import --timezone <tz>
    "timezone": ""
  }
}
`

// BaseDir returns the pj data directory (~/.pj).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".pj"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.pj/config.json, creating it with annotated defaults on first run.
func Load() (Config, error) {
	base, err := BaseDir()
	if err != nil {
		return defaultConfig(""), err
	}
	return LoadFrom(base)
}

// LoadFrom reads config.json from base. Lines starting with // are treated as
// comments and stripped before JSON parsing.
func LoadFrom(base string) (Config, error) {
	path := filepath.Join(base, "config.json")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return defaultConfig(base), nil
	}
	if err != nil {
		return defaultConfig(base), fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(stripLineComments(data), &cfg); err != nil {
		return defaultConfig(base), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	def := defaultConfig(base)
	if cfg.CategoriesFile == "" {
		cfg.CategoriesFile = def.CategoriesFile
	}
	if cfg.Summary.WrapWidth <= 0 {
		cfg.Summary.WrapWidth = def.Summary.WrapWidth
	}
	if cfg.Outlook.TenantID == "" {
		cfg.Outlook.TenantID = def.Outlook.TenantID
	}
	if cfg.Outlook.ClientID == "" {
		cfg.Outlook.ClientID = def.Outlook.ClientID
	}

	return cfg, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
