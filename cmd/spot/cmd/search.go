package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spotcli/spot/internal/config"
	"github.com/spotcli/spot/internal/search"
)

// searchOptions holds CLI flags for one-shot search.
type searchOptions struct {
	limit    int
	format   string // "text", "json"
	noIgnore bool
}

// matchOutput is one search hit in JSON output.
type matchOutput struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query> [dir]",
		Short: "Search filenames once and print the matches",
		Long: `Search indexes the directory, runs a single case-insensitive
substring search over filenames, and prints the matches.

Results follow index scan order and are capped at --limit; they are
not ranked.

Examples:
  spot search report
  spot search invoice ~/Documents
  spot search .pdf --format json --limit 20`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOneShot(cmd, args, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", search.DefaultLimit, "Maximum number of matches")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().BoolVar(&opts.noIgnore, "no-ignore", false, "Index everything, ignoring .gitignore and config globs")

	return cmd
}

func runOneShot(cmd *cobra.Command, args []string, opts searchOptions) error {
	query := args[0]

	root, err := resolveRoot(args[1:])
	if err != nil {
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	limit := opts.limit
	if limit < 1 || limit > config.MaxResultLimit {
		limit = config.MaxResultLimit
	}

	store, _, err := buildIndex(cmd.Context(), root, cfg, opts.noIgnore)
	if err != nil {
		return err
	}
	defer store.Clear()

	res := search.New(store).Search(query, limit)
	out := cmd.OutOrStdout()

	switch opts.format {
	case "json":
		matches := make([]matchOutput, 0, len(res.Records))
		for _, r := range res.Records {
			matches = append(matches, matchOutput{Filename: r.Name, Path: r.Path})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(matches)

	case "text":
		for _, r := range res.Records {
			_, _ = fmt.Fprintf(out, "%s\t%s\n", r.Name, r.Path)
		}
		return nil

	default:
		return fmt.Errorf("unknown format: %s (use: text, json)", opts.format)
	}
}
