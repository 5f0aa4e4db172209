package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/orglyph/internal/config"
)

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3 (commit: abc, built: today)")
	require.Equal(t, "1.2.3 (commit: abc, built: today)", rootCmd.Version)
}

func TestGlyphsCommand_PrintsPreview(t *testing.T) {
	cfg = config.Defaults()

	var out bytes.Buffer
	glyphsCmd.SetOut(&out)
	require.NoError(t, runGlyphs(glyphsCmd, nil))

	require.Contains(t, out.String(), "headlines:")
	require.Contains(t, out.String(), "◉")
	require.Contains(t, out.String(), "•")
	require.Contains(t, out.String(), "✓")
	require.Contains(t, out.String(), "always shown raw")
}

func TestGlyphsCommand_RejectsBadConfig(t *testing.T) {
	cfg = config.Defaults()
	cfg.Symbols.Headlines = nil

	err := runGlyphs(glyphsCmd, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid configuration")
}

func TestRunViewer_MissingFile(t *testing.T) {
	cfg = config.Defaults()

	err := runViewer(rootCmd, []string{"/nonexistent/never.org"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading")
}
