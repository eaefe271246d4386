package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ignoreCacheSize bounds the number of parsed .gitignore matchers kept
// in memory during a scan of a large tree.
const ignoreCacheSize = 1000

// entryBuffer is the channel buffer between the walking goroutine and
// the inserting consumer.
const entryBuffer = 256

// Scanner walks a directory tree and emits file entries.
type Scanner struct {
	// ignoreCache caches parsed .gitignore matchers by directory.
	ignoreCache *lru.Cache[string, *Matcher]
}

// New creates a Scanner.
func New() (*Scanner, error) {
	cache, err := lru.New[string, *Matcher](ignoreCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create ignore cache: %w", err)
	}
	return &Scanner{ignoreCache: cache}, nil
}

// Scan validates the root directory and streams every non-directory
// entry beneath it on the returned channel. The channel is closed when
// the walk completes. Entries that cannot be read are skipped, never
// aborting the walk; symlinks are emitted as leaves and never followed,
// so symlinked directory cycles cannot occur.
func (s *Scanner) Scan(ctx context.Context, opts *Options) (<-chan Entry, error) {
	if opts == nil {
		opts = &Options{}
	}

	rootDir := opts.RootDir
	if rootDir == "" {
		rootDir = "."
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path is not a directory: %s", absRoot)
	}

	base := NewMatcher(opts.IgnorePatterns)
	entries := make(chan Entry, entryBuffer)

	go func() {
		defer close(entries)
		s.walk(ctx, absRoot, base, opts, entries)
	}()

	return entries, nil
}

// walk performs the traversal. WalkDir recurses only into entries whose
// reported type is a real directory, which gives the leaf treatment of
// symlinks for free.
func (s *Scanner) walk(ctx context.Context, absRoot string, base *Matcher, opts *Options, entries chan<- Entry) {
	err := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			slog.Debug("skipping unreadable entry", slog.String("path", path), slog.String("error", err.Error()))
			return nil
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			return nil
		}
		if rel == "." {
			return nil
		}

		isDir := d.IsDir()
		if s.ignored(absRoot, path, rel, isDir, base, opts) {
			if isDir {
				return filepath.SkipDir
			}
			return nil
		}

		if isDir {
			return nil
		}

		select {
		case entries <- Entry{Name: d.Name(), Path: path}:
		case <-ctx.Done():
			return ctx.Err()
		}
		return nil
	})

	if err != nil && err != context.Canceled {
		slog.Debug("walk ended early", slog.String("error", err.Error()))
	}
}

// ignored applies the config matcher and, when enabled, the .gitignore
// files of the root and of the entry's parent directory.
func (s *Scanner) ignored(absRoot, absPath, rel string, isDir bool, base *Matcher, opts *Options) bool {
	if base.Match(rel, isDir) {
		return true
	}
	if !opts.UseGitignore {
		return false
	}

	if m := s.matcherFor(absRoot); m.Match(rel, isDir) {
		return true
	}

	parent := filepath.Dir(absPath)
	if parent != absRoot {
		if relToParent, err := filepath.Rel(parent, absPath); err == nil {
			if m := s.matcherFor(parent); m.Match(relToParent, isDir) {
				return true
			}
		}
	}
	return false
}

// matcherFor returns the parsed .gitignore matcher for a directory,
// consulting the LRU cache first. Parse failures degrade to an empty
// matcher.
func (s *Scanner) matcherFor(dir string) *Matcher {
	if m, ok := s.ignoreCache.Get(dir); ok {
		return m
	}

	m, err := MatcherFromFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		slog.Debug("failed to parse gitignore", slog.String("dir", dir), slog.String("error", err.Error()))
		m = NewMatcher(nil)
	}
	s.ignoreCache.Add(dir, m)
	return m
}
