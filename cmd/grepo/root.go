package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msandoval/grepo/internal/config"
	"github.com/msandoval/grepo/internal/git"
	"github.com/msandoval/grepo/internal/log"
	"github.com/msandoval/grepo/internal/output"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Shared state injected into commands
	cfg *config.Config
)

// Command group IDs for organizing help output
const (
	GroupWatch  = "watch"
	GroupReport = "report"
	GroupConfig = "config"
)

// errPartialFailure marks a report where some (not all) repos failed.
// Mapped to exit status 2 so scripts can tell partial results apart
// from fatal errors.
var errPartialFailure = errors.New("some repositories failed")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "grepo",
	Short: "Organize and search across multiple git repositories",
	Long: `grepo keeps a watch list of git repositories and runs read-only
inspections across all of them at once: which branch each repo is on,
branch name search, and commit message/author search, merged into a
single report.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip git check for completion and help commands
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}

		// Flags are parsed by now. Rebuild the context logger with
		// their values so --verbose and --quiet take effect, keeping
		// whatever writer was attached.
		ctx := cmd.Context()
		logger := log.New(log.FromContext(ctx).Writer(), verbose, quiet)
		cmd.SetContext(log.WithLogger(ctx, logger))

		// Check git is available
		return git.CheckGit()
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Load config; a corrupt file degrades to defaults with a warning
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg = &loadedCfg

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create logger (stderr for diagnostics). Flag values are not
	// parsed yet; PersistentPreRunE rebuilds the logger with them.
	ctx = log.WithLogger(ctx, log.New(os.Stderr, false, false))

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, os.Stdout)

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errPartialFailure) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'grepo -h' for help")
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupWatch, Title: "Watch List Commands:"},
		&cobra.Group{ID: GroupReport, Title: "Report Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Watch list commands
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newScanCmd())

	// Report commands
	rootCmd.AddCommand(newBranchCmd())
	rootCmd.AddCommand(newCommitCmd())

	// Configuration commands
	rootCmd.AddCommand(newBaseDirCmd())
	rootCmd.AddCommand(newConfigCmd())
}

// saveConfig persists the mutated config, surfacing write failures.
func saveConfig() error {
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}
