package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplice_ReplacesByteRange(t *testing.T) {
	out, err := Splice("*** heading", 0, 4, "  ✸ ")
	require.NoError(t, err)
	require.Equal(t, "  ✸ heading", out)
}

func TestSplice_MidLine(t *testing.T) {
	out, err := Splice("- [X] task", 2, 5, "[✓]")
	require.NoError(t, err)
	require.Equal(t, "- [✓] task", out)
}

func TestSplice_EmptyReplacementConceals(t *testing.T) {
	out, err := Splice("- [-] task", 3, 4, "")
	require.NoError(t, err)
	require.Equal(t, "- [] task", out)
}

func TestSplice_WholeLine(t *testing.T) {
	out, err := Splice("abc", 0, 3, "xyz")
	require.NoError(t, err)
	require.Equal(t, "xyz", out)
}

func TestSplice_InvalidSpans(t *testing.T) {
	for _, tc := range []struct {
		name  string
		start int
		end   int
	}{
		{"negative start", -1, 2},
		{"end before start", 3, 1},
		{"end past line", 0, 20},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Splice("short", tc.start, tc.end, "x")
			require.Error(t, err)
			require.Contains(t, err.Error(), "invalid span")
		})
	}
}

func TestSplice_RejectsRuneSplits(t *testing.T) {
	// "é" is two bytes; offset 1 lands inside it
	_, err := Splice("é rest", 1, 2, "x")
	require.Error(t, err)
	require.Contains(t, err.Error(), "splits a rune")
}

func TestPlace_BottomOverlay(t *testing.T) {
	bg := strings.Join([]string{
		"line one  ",
		"line two  ",
		"line three",
	}, "\n")

	out := Place(Config{Width: 10, Height: 3, Position: Bottom}, "[toast]", bg)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "line one  ", lines[0])
	require.Contains(t, lines[2], "[toast]")
}

func TestPlace_PadsShortBackground(t *testing.T) {
	out := Place(Config{Width: 8, Height: 4, Position: Center}, "hi", "only")
	require.Len(t, strings.Split(out, "\n"), 4)
	require.Contains(t, out, "hi")
}
