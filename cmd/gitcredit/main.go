package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/audi70r/gitcredit/internal/config"
	"github.com/audi70r/gitcredit/internal/git"
	"github.com/audi70r/gitcredit/internal/ui"
)

var (
	flagRef        string
	flagSince      string
	flagUntil      string
	flagPathPrefix string
	flagConfig     string
	flagDebug      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gitcredit [path]",
		Short: "Interactive contribution statistics for a git repository",
		Long: "gitcredit walks a repository's history, splits line credit " +
			"between authors and their co-authors, and shows the result in " +
			"an interactive terminal UI.",
		Args: cobra.MaximumNArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVar(&flagRef, "ref", "", "Starting reference (default: HEAD)")
	rootCmd.Flags().StringVar(&flagSince, "since", "", "Only count commits on or after this date (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&flagUntil, "until", "", "Only count commits on or before this date (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&flagPathPrefix, "path", "", "Only count changes under this path prefix")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Config file (default: $XDG_CONFIG_HOME/gitcredit.toml)")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Write debug logs to gitcredit.log")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if err := setupLogging(); err != nil {
		return err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.RepoPath = "."
	if len(args) > 0 {
		cfg.RepoPath = args[0]
	}
	cfg.Ref = flagRef
	cfg.PathPrefix = flagPathPrefix
	cfg.Debug = flagDebug

	if cfg.Since, err = parseDate(flagSince); err != nil {
		return err
	}
	if cfg.Until, err = parseDate(flagUntil); err != nil {
		return err
	}

	src, err := git.Open(cfg.RepoPath)
	if err != nil {
		return err
	}

	app := ui.NewApp(cfg, src)
	if err := app.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	return nil
}

// setupLogging sends logs to a file in debug mode and discards them
// otherwise; the TUI owns the terminal.
func setupLogging() error {
	if !flagDebug {
		logrus.SetOutput(io.Discard)
		return nil
	}

	f, err := os.OpenFile("gitcredit.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	logrus.SetOutput(f)
	logrus.SetLevel(logrus.DebugLevel)
	return nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}
