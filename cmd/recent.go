package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/orglyph/internal/config"
	"github.com/zjrosen/orglyph/internal/store"
)

var recentLimit int

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently opened files",
	RunE:  runRecent,
}

func init() {
	recentCmd.Flags().IntVarP(&recentLimit, "limit", "n", 10, "maximum number of entries")
	rootCmd.AddCommand(recentCmd)
}

func runRecent(cmd *cobra.Command, args []string) error {
	storePath := config.DefaultStorePath()
	if storePath == "" {
		return fmt.Errorf("cannot resolve home directory")
	}

	recent, err := store.Open(storePath)
	if err != nil {
		return fmt.Errorf("opening recent-files store: %w", err)
	}
	defer recent.Close()

	entries, err := recent.List(recentLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no recent files")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  (%d opens)\n",
			e.OpenedAt.Local().Format("2006-01-02 15:04"), e.Path, e.OpenCount)
	}
	return nil
}
