package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.False(t, cfg.ShowCurrentLine)
	require.True(t, cfg.Indent)
	require.Equal(t, []string{"◉", "○", "✸", "✿"}, cfg.Symbols.Headlines)
	require.Equal(t, "•", cfg.Symbols.Bullet)
	require.Equal(t, "✓", cfg.Symbols.Checkboxes.Done.Glyph)
	require.Equal(t, "CheckboxDone", cfg.Symbols.Checkboxes.Done.StyleTag)
	require.Empty(t, cfg.Symbols.Checkboxes.Half.Glyph)
}

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestHeadlineGlyph_WithinRange(t *testing.T) {
	s := Defaults().Symbols
	require.Equal(t, "◉", s.HeadlineGlyph(1))
	require.Equal(t, "○", s.HeadlineGlyph(2))
	require.Equal(t, "✸", s.HeadlineGlyph(3))
	require.Equal(t, "✿", s.HeadlineGlyph(4))
}

func TestHeadlineGlyph_DeepLevelsFallBackToLast(t *testing.T) {
	s := Defaults().Symbols
	require.Equal(t, "✿", s.HeadlineGlyph(5))
	require.Equal(t, "✿", s.HeadlineGlyph(99))
}

func TestHeadlineGlyph_ZeroClampsToFirst(t *testing.T) {
	s := Defaults().Symbols
	require.Equal(t, "◉", s.HeadlineGlyph(0))
}

func TestValidate_EmptyHeadlines(t *testing.T) {
	cfg := Defaults()
	cfg.Symbols.Headlines = nil
	err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "symbols.headlines")
}

func TestValidate_MultiClusterGlyph(t *testing.T) {
	cfg := Defaults()
	cfg.Symbols.Bullet = "ab"
	err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "grapheme")
}

func TestValidate_EmptyBullet(t *testing.T) {
	cfg := Defaults()
	cfg.Symbols.Bullet = ""
	require.Error(t, Validate(cfg))
}

func TestValidate_EmptyCheckboxGlyphAllowed(t *testing.T) {
	cfg := Defaults()
	cfg.Symbols.Checkboxes.Done.Glyph = ""
	require.NoError(t, Validate(cfg))
}

func TestValidate_CombiningGlyphAllowed(t *testing.T) {
	cfg := Defaults()
	// e followed by a combining acute accent is one grapheme cluster.
	cfg.Symbols.Bullet = "é"
	require.NoError(t, Validate(cfg))
}

func TestValidateTracing_SampleRate(t *testing.T) {
	tc := Defaults().Tracing
	tc.SampleRate = 1.5
	require.Error(t, ValidateTracing(tc))
}

func TestValidateTracing_BadExporter(t *testing.T) {
	tc := Defaults().Tracing
	tc.Exporter = "kafka"
	err := ValidateTracing(tc)
	require.Error(t, err)
	require.Contains(t, err.Error(), "exporter")
}

func TestValidateTracing_OTLPNeedsEndpoint(t *testing.T) {
	tc := Defaults().Tracing
	tc.Enabled = true
	tc.Exporter = "otlp"
	tc.OTLPEndpoint = ""
	require.Error(t, ValidateTracing(tc))
}

func TestWriteDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "show_current_line")
	require.Contains(t, string(data), "headlines")
}
