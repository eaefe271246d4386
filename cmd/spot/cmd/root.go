// Package cmd provides the CLI commands for spot.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/spotcli/spot/internal/config"
	"github.com/spotcli/spot/internal/index"
	"github.com/spotcli/spot/internal/logging"
	"github.com/spotcli/spot/internal/opener"
	"github.com/spotcli/spot/internal/scanner"
	"github.com/spotcli/spot/internal/search"
	"github.com/spotcli/spot/internal/ui"
	"github.com/spotcli/spot/pkg/version"
)

// Debug logging flag
var (
	debugMode      bool
	loggingCleanup func()
)

// rootOptions holds CLI flags for the interactive command.
type rootOptions struct {
	limit    int
	viewport int
	noIgnore bool
	noColor  bool
}

// NewRootCmd creates the root command for the spot CLI.
func NewRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "spot [dir]",
		Short: "Interactive filename search for the terminal",
		Long: `Spot indexes every file under a directory into an in-memory index,
then searches filenames as you type. Enter opens the selected file
with your OS default application; Esc quits.

The index lives only for the session: no daemon, no cache files.

Just run 'spot' in the directory you want to search.`,
		Version:       version.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), cmd, args, opts)
		},
	}

	cmd.SetVersionTemplate("spot version {{.Version}}\n")

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of matches per search (default from config)")
	cmd.Flags().IntVar(&opts.viewport, "viewport", 0, "Number of result rows on screen (default from config)")
	cmd.Flags().BoolVar(&opts.noIgnore, "no-ignore", false, "Index everything, ignoring .gitignore and config globs")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.spot/logs/")
	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// startLogging initializes file logging. The TTY belongs to the
// session, so stderr logging stays off.
func startLogging(_ *cobra.Command, _ []string) error {
	if !debugMode {
		return nil
	}
	cleanup, err := logging.SetupDefault()
	if err != nil {
		return fmt.Errorf("failed to enable debug logging: %w", err)
	}
	loggingCleanup = cleanup
	return nil
}

func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// resolveRoot determines the directory to index. A missing positional
// argument falls back to the current working directory; failure to
// resolve it is the only fatal startup error.
func resolveRoot(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}
	return dir, nil
}

// buildIndex runs the one-shot blocking scan, inserting every
// discovered file into a fresh store.
func buildIndex(ctx context.Context, root string, cfg *config.Config, noIgnore bool) (*index.Store, time.Duration, error) {
	sc, err := scanner.New()
	if err != nil {
		return nil, 0, err
	}

	opts := &scanner.Options{RootDir: root}
	if !noIgnore {
		opts.IgnorePatterns = cfg.Ignore
		opts.UseGitignore = cfg.ShouldUseGitignore()
	}

	entries, err := sc.Scan(ctx, opts)
	if err != nil {
		return nil, 0, err
	}

	store := index.New()
	start := time.Now()
	for e := range entries {
		store.Insert(e.Name, e.Path)
	}
	elapsed := time.Since(start)

	slog.Info("index built",
		slog.String("root", root),
		slog.Int("files", store.Size()),
		slog.Duration("elapsed", elapsed))
	return store, elapsed, nil
}

func runInteractive(ctx context.Context, cmd *cobra.Command, args []string, opts rootOptions) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	if opts.limit > 0 {
		cfg.ResultLimit = opts.limit
	}
	if opts.viewport > 0 {
		cfg.ViewportHeight = opts.viewport
	}
	if cfg.ResultLimit > config.MaxResultLimit {
		cfg.ResultLimit = config.MaxResultLimit
	}
	noColor := opts.noColor || cfg.NoColor

	if !ui.IsTTY(os.Stdout) {
		return fmt.Errorf("interactive mode needs a terminal; use 'spot search <query>' in pipes")
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "  Index > Scanning %s ...\n", root)

	store, elapsed, err := buildIndex(ctx, root, cfg, opts.noIgnore)
	if err != nil {
		return err
	}
	defer store.Clear()

	_, _ = fmt.Fprintf(out, "  Index > %d files indexed in %s\n", store.Size(), elapsed.Round(time.Millisecond))

	session := ui.NewSession(store, search.New(store), opener.New(), ui.Options{
		ViewportHeight:   cfg.ViewportHeight,
		ResultLimit:      cfg.ResultLimit,
		MaxQueryLen:      cfg.MaxQueryLen,
		ClearQueryOnOpen: cfg.ShouldClearQueryOnOpen(),
		NoColor:          noColor,
	})

	p := tea.NewProgram(session, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("session failed: %w", err)
	}
	return nil
}
