// Package config assembles the announcer's settings from an optional config
// file and the environment.
//
// The environment is the primary source (the tool runs inside a release
// pipeline where everything arrives as env vars); a YAML or JSON file can
// pre-fill the same settings plus tuning knobs that have no env equivalent.
// Env always wins over the file.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const (
	// DefaultNotesFile is the conventional release-notes filename used when
	// RELEASE_NOTES_FILE is not set.
	DefaultNotesFile = "RELEASE_NOTES.md"

	// DefaultMessageLimit matches the destination's hard per-message cap.
	DefaultMessageLimit = 2000

	DefaultRequestTimeout = 10 * time.Second
	DefaultSendEvery      = time.Second
)

type Config struct {
	// WebhookURL is the destination endpoint (env DISCORD_WEBHOOK).
	WebhookURL string `json:"webhook_url"`
	// VersionTag is the release tag being announced (env VERSION_TAG).
	VersionTag string `json:"version_tag"`
	// Repository is the owner/name slug used to build the download link
	// (env GITHUB_REPOSITORY).
	Repository string `json:"repository"`
	// NotesFile is the path to the release-notes document
	// (env RELEASE_NOTES_FILE).
	NotesFile string `json:"notes_file,omitempty"`

	// MessageLimit is the per-message character budget.
	MessageLimit int `json:"message_limit,omitempty"`

	// RequestTimeout and SendEvery are Go duration strings
	// (e.g. "10s", "500ms"). File-only tuning knobs.
	RequestTimeout string `json:"request_timeout,omitempty"`
	SendEvery      string `json:"send_every,omitempty"`
}

// Load builds the effective config: optional file, then env overrides, then
// defaults, then validation. path may be empty (env-only operation).
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		parsed, err := Parse(path)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		cfg = parsed
	}
	applyEnv(cfg)
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse reads and strictly decodes a config file. YAML files are coerced to
// JSON bytes first so both formats go through the same strict decoder
// (DisallowUnknownFields).
func Parse(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	jb, _, err := coerceToJSONBytes(path, b)
	if err != nil {
		return nil, err
	}

	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(jb))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	// reject trailing tokens (e.g. concatenated JSON)
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("invalid config: trailing data")
		}
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DISCORD_WEBHOOK"); v != "" {
		cfg.WebhookURL = v
	}
	if v := os.Getenv("VERSION_TAG"); v != "" {
		cfg.VersionTag = v
	}
	if v := os.Getenv("GITHUB_REPOSITORY"); v != "" {
		cfg.Repository = v
	}
	if v := os.Getenv("RELEASE_NOTES_FILE"); v != "" {
		cfg.NotesFile = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.NotesFile == "" {
		cfg.NotesFile = DefaultNotesFile
	}
	if cfg.MessageLimit == 0 {
		cfg.MessageLimit = DefaultMessageLimit
	}
}

// Validate fails fast on missing required settings, naming them the way the
// pipeline sets them, so the CI log points straight at the fix.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.WebhookURL) == "" {
		return errors.New("DISCORD_WEBHOOK is required")
	}
	if strings.TrimSpace(c.VersionTag) == "" {
		return errors.New("VERSION_TAG is required")
	}
	if strings.TrimSpace(c.Repository) == "" {
		return errors.New("GITHUB_REPOSITORY is required")
	}
	if c.MessageLimit <= 0 {
		return fmt.Errorf("message_limit must be positive, got %d", c.MessageLimit)
	}
	if _, err := ParseDurationField("request_timeout", c.RequestTimeout); err != nil {
		return err
	}
	if _, err := ParseDurationField("send_every", c.SendEvery); err != nil {
		return err
	}
	return nil
}

// Timeout returns the per-request timeout, falling back to the default.
// Call Validate first; a malformed duration here degrades to the default.
func (c *Config) Timeout() time.Duration {
	d, err := ParseDurationOrDefault("request_timeout", c.RequestTimeout, DefaultRequestTimeout)
	if err != nil {
		return DefaultRequestTimeout
	}
	return d
}

// SendInterval returns the pause between consecutive sends.
func (c *Config) SendInterval() time.Duration {
	d, err := ParseDurationOrDefault("send_every", c.SendEvery, DefaultSendEvery)
	if err != nil {
		return DefaultSendEvery
	}
	return d
}

func ParseDurationField(path, raw string) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", path, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: duration must be >= 0", path)
	}
	return d, nil
}

func ParseDurationOrDefault(path, raw string, def time.Duration) (time.Duration, error) {
	d, err := ParseDurationField(path, raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return def, nil
	}
	return d, nil
}
