// Package config provides configuration types and defaults for orglyph.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rivo/uniseg"

	"github.com/zjrosen/orglyph/internal/log"
)

// CheckboxGlyph pairs a replacement glyph with the style tag used to render it.
type CheckboxGlyph struct {
	Glyph    string `mapstructure:"glyph" yaml:"glyph"`
	StyleTag string `mapstructure:"style_tag" yaml:"style_tag"`
}

// CheckboxesConfig holds per-state checkbox replacements. There is no entry
// for the unchecked state: `[ ]` is always shown raw.
type CheckboxesConfig struct {
	Done CheckboxGlyph `mapstructure:"done" yaml:"done"`
	Half CheckboxGlyph `mapstructure:"half" yaml:"half"`
}

// SymbolsConfig holds the replacement glyphs for outline constructs.
type SymbolsConfig struct {
	// Headlines lists replacement glyphs indexed by nesting depth (1-based).
	// Depths beyond the list fall back to the last glyph.
	Headlines  []string         `mapstructure:"headlines" yaml:"headlines"`
	Bullet     string           `mapstructure:"bullet" yaml:"bullet"`
	Checkboxes CheckboxesConfig `mapstructure:"checkboxes" yaml:"checkboxes"`
}

// HeadlineGlyph returns the glyph for the given 1-based depth. Depths past the
// configured list resolve to the last glyph, never out of bounds.
func (s SymbolsConfig) HeadlineGlyph(depth int) string {
	if len(s.Headlines) == 0 {
		return ""
	}
	if depth < 1 {
		depth = 1
	}
	if depth > len(s.Headlines) {
		depth = len(s.Headlines)
	}
	return s.Headlines[depth-1]
}

// WatchConfig controls live reload of the opened file.
type WatchConfig struct {
	AutoReload bool `mapstructure:"auto_reload" yaml:"auto_reload"`
	// DebounceMs is the quiet period after a write before reloading.
	DebounceMs int `mapstructure:"debounce_ms" yaml:"debounce_ms"`
}

// TracingConfig enables span export for decoration passes.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Exporter selects the backend: "none", "file", "stdout", "otlp".
	Exporter     string  `mapstructure:"exporter" yaml:"exporter"`
	FilePath     string  `mapstructure:"file_path" yaml:"file_path"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate" yaml:"sample_rate"`
}

// Config holds all configuration options for orglyph.
type Config struct {
	// ShowCurrentLine keeps decorations on the cursor line. When false (the
	// default) the cursor line shows raw markup so it can be read as typed.
	ShowCurrentLine bool `mapstructure:"show_current_line" yaml:"show_current_line"`

	// Indent pads headline replacements so sibling text keeps its column.
	Indent bool `mapstructure:"indent" yaml:"indent"`

	Symbols SymbolsConfig `mapstructure:"symbols" yaml:"symbols"`
	Watch   WatchConfig   `mapstructure:"watch" yaml:"watch"`
	Tracing TracingConfig `mapstructure:"tracing" yaml:"tracing"`
}

// Defaults returns a Config with the documented default glyphs and behavior.
func Defaults() Config {
	return Config{
		ShowCurrentLine: false,
		Indent:          true,
		Symbols: SymbolsConfig{
			Headlines: []string{"◉", "○", "✸", "✿"},
			Bullet:    "•",
			Checkboxes: CheckboxesConfig{
				Done: CheckboxGlyph{Glyph: "✓", StyleTag: "CheckboxDone"},
				Half: CheckboxGlyph{Glyph: "", StyleTag: "CheckboxHalf"},
			},
		},
		Watch: WatchConfig{
			AutoReload: true,
			DebounceMs: 250,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks a merged configuration. Errors here are the only ones that
// halt setup; everything downstream recovers locally.
func Validate(cfg Config) error {
	if len(cfg.Symbols.Headlines) == 0 {
		return fmt.Errorf("symbols.headlines must list at least one glyph")
	}
	for i, g := range cfg.Symbols.Headlines {
		if err := validateGlyph(g, false); err != nil {
			return fmt.Errorf("symbols.headlines[%d]: %w", i, err)
		}
	}
	if err := validateGlyph(cfg.Symbols.Bullet, false); err != nil {
		return fmt.Errorf("symbols.bullet: %w", err)
	}
	if err := validateGlyph(cfg.Symbols.Checkboxes.Done.Glyph, true); err != nil {
		return fmt.Errorf("symbols.checkboxes.done.glyph: %w", err)
	}
	if err := validateGlyph(cfg.Symbols.Checkboxes.Half.Glyph, true); err != nil {
		return fmt.Errorf("symbols.checkboxes.half.glyph: %w", err)
	}
	if err := ValidateTracing(cfg.Tracing); err != nil {
		return err
	}
	if cfg.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative, got %d", cfg.Watch.DebounceMs)
	}
	return nil
}

// validateGlyph requires a glyph to be a single grapheme cluster so the
// replacement occupies one visual cell group. Checkbox glyphs may be empty.
func validateGlyph(g string, allowEmpty bool) error {
	if g == "" {
		if allowEmpty {
			return nil
		}
		return fmt.Errorf("glyph must not be empty")
	}
	if n := uniseg.GraphemeClusterCount(g); n != 1 {
		return fmt.Errorf("glyph %q must be a single grapheme cluster, got %d", g, n)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}
	switch tracing.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
	}
	if tracing.Enabled {
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "orglyph", "traces", "traces.jsonl")
}

// DefaultStorePath returns the default path of the recent-files database.
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".orglyph", "recent.db")
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# orglyph configuration

# Keep decorations on the line the cursor is on.
# When false (default), the cursor line shows the raw markup.
show_current_line: false

# Pad headline glyphs so text after the marker keeps its column.
indent: true

symbols:
  # Headline glyphs by nesting depth. Deeper levels reuse the last entry.
  headlines: ["◉", "○", "✸", "✿"]

  # List bullet replacement for -, + and *.
  bullet: "•"

  checkboxes:
    done:
      glyph: "✓"
      style_tag: CheckboxDone
    half:
      glyph: ""
      style_tag: CheckboxHalf
    # There is no "undone" entry: [ ] is always shown raw.

# Live reload of the opened file.
watch:
  auto_reload: true
  debounce_ms: 250

# Span export for decoration passes (for profiling large documents).
# tracing:
#   enabled: true
#   exporter: file              # none, file, stdout, otlp
#   file_path: ~/.config/orglyph/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
