// Package scanner discovers files under a root directory for indexing.
// It streams entries over a channel, skips anything it cannot read, and
// optionally honors ignore globs and .gitignore files.
package scanner

// Entry is one discovered file: its base name and fully qualified path.
type Entry struct {
	Name string
	Path string
}

// Options configures a scan.
type Options struct {
	// RootDir is the directory to scan. Empty means the current
	// working directory.
	RootDir string

	// IgnorePatterns are gitignore-style globs applied relative to the
	// root (e.g. ".git", "node_modules", "*.tmp").
	IgnorePatterns []string

	// UseGitignore enables per-directory .gitignore parsing.
	UseGitignore bool
}
