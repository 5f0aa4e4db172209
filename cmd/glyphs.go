package cmd

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/zjrosen/orglyph/internal/config"
	"github.com/zjrosen/orglyph/internal/query"
	"github.com/zjrosen/orglyph/internal/rules"
	"github.com/zjrosen/orglyph/internal/ui/styles"
)

var glyphsCmd = &cobra.Command{
	Use:   "glyphs",
	Short: "Preview the configured glyphs",
	Long:  `Prints each configured headline, bullet, and checkbox glyph with the style it will be rendered in.`,
	RunE:  runGlyphs,
}

func init() {
	rootCmd.AddCommand(glyphsCmd)
}

func runGlyphs(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	profile := termenv.ColorProfile()
	fmt.Fprintf(out, "color profile: %s\n\n", profileName(profile))

	fmt.Fprintln(out, "headlines:")
	for depth := 1; depth <= len(cfg.Symbols.Headlines)+2; depth++ {
		marker := strings.Repeat("*", depth) + " "
		segs := rules.Resolve(query.HeadlineMarker, strings.Repeat("*", depth), cfg)
		fmt.Fprintf(out, "  %-8s %s\n", marker, renderSegments(segs))
	}

	fmt.Fprintln(out, "\nbullets:")
	for _, marker := range []string{"-", "+", "*"} {
		segs := rules.Resolve(query.ListBullet, marker, cfg)
		fmt.Fprintf(out, "  %-8s %s\n", marker, renderSegments(segs))
	}

	fmt.Fprintln(out, "\ncheckboxes:")
	for _, c := range []struct {
		raw  string
		kind query.Kind
	}{
		{"[X]", query.CheckboxDone},
		{"[-]", query.CheckboxHalf},
	} {
		segs := rules.Resolve(c.kind, c.raw, cfg)
		fmt.Fprintf(out, "  %-8s %s\n", c.raw, renderSegments(segs))
	}
	fmt.Fprintf(out, "  %-8s %s\n", "[ ]", "[ ]  (always shown raw)")

	return nil
}

func renderSegments(segs []rules.Segment) string {
	var b strings.Builder
	for _, seg := range segs {
		b.WriteString(styles.ForTag(seg.StyleTag).Render(seg.Text))
	}
	return b.String()
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "256 colors"
	case termenv.ANSI:
		return "16 colors"
	default:
		return "no color"
	}
}
