package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/orglyph/internal/config"
	"github.com/zjrosen/orglyph/internal/decor"
	"github.com/zjrosen/orglyph/internal/log"
	"github.com/zjrosen/orglyph/internal/store"
	"github.com/zjrosen/orglyph/internal/tracing"
	"github.com/zjrosen/orglyph/internal/ui"
	"github.com/zjrosen/orglyph/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "orglyph [file]",
	Short:   "A terminal viewer for org outlines with stylized glyphs",
	Long: `A terminal viewer for org-style outline files. Headline stars, list
bullets, and checkboxes are overlaid with stylized glyphs while the
underlying text stays untouched.`,
	Version: version,
	Args:    cobra.ExactArgs(1),
	RunE:    runViewer,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/orglyph/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write a debug log next to the current directory")
	rootCmd.Flags().Bool("no-watch", false,
		"disable automatic reload when the file changes on disk")
	rootCmd.Flags().Bool("show-current-line", false,
		"keep decorations on the cursor line")

	_ = viper.BindPFlag("show_current_line", rootCmd.Flags().Lookup("show-current-line"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("show_current_line", defaults.ShowCurrentLine)
	viper.SetDefault("indent", defaults.Indent)
	viper.SetDefault("symbols.headlines", defaults.Symbols.Headlines)
	viper.SetDefault("symbols.bullet", defaults.Symbols.Bullet)
	viper.SetDefault("symbols.checkboxes.done.glyph", defaults.Symbols.Checkboxes.Done.Glyph)
	viper.SetDefault("symbols.checkboxes.done.style_tag", defaults.Symbols.Checkboxes.Done.StyleTag)
	viper.SetDefault("symbols.checkboxes.half.glyph", defaults.Symbols.Checkboxes.Half.Glyph)
	viper.SetDefault("symbols.checkboxes.half.style_tag", defaults.Symbols.Checkboxes.Half.StyleTag)
	viper.SetDefault("watch.auto_reload", defaults.Watch.AutoReload)
	viper.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .orglyph/config.yaml (current directory)
		// 2. ~/.config/orglyph/config.yaml (user config)
		if _, err := os.Stat(".orglyph/config.yaml"); err == nil {
			viper.SetConfigFile(".orglyph/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "orglyph"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create a commented default
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, homeErr := os.UserHomeDir()
			if homeErr == nil {
				defaultPath := filepath.Join(home, ".config", "orglyph", "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runViewer(cmd *cobra.Command, args []string) error {
	if debugFlag || os.Getenv("ORGLYPH_DEBUG") != "" {
		cleanup, err := log.Init("orglyph-debug.log", "orglyph")
		if err != nil {
			return fmt.Errorf("initializing debug log: %w", err)
		}
		defer cleanup()
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		cfg.Watch.AutoReload = false
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = provider.Shutdown(shutdownCtx)
	}()

	if storePath := config.DefaultStorePath(); storePath != "" {
		if recent, err := store.Open(storePath); err == nil {
			if err := recent.Touch(path); err != nil {
				log.ErrorErr(log.CatStore, "Failed to record recent file", err, "path", path)
			}
			_ = recent.Close()
		}
	}

	var watch *watcher.Watcher
	if cfg.Watch.AutoReload {
		watch, err = watcher.New(path, time.Duration(cfg.Watch.DebounceMs)*time.Millisecond)
		if err != nil {
			return fmt.Errorf("creating file watcher: %w", err)
		}
		defer func() { _ = watch.Stop() }()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifier := decor.NewNotifier()
	defer notifier.Close()

	model := ui.New(ctx, path, string(data), cfg, notifier, watch,
		decor.WithTracer(provider.Tracer()))

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
