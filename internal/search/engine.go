// Package search implements substring search over the filename index.
package search

import (
	"log/slog"
	"time"

	"github.com/spotcli/spot/internal/index"
)

// DefaultLimit is the result cap used when a caller passes limit <= 0.
// It matches the upper bound of the interactive viewport.
const DefaultLimit = 50

// Result is the outcome of a single search.
type Result struct {
	// Query is the query string the result was produced for.
	Query string

	// Records references index records in scan order (table order, then
	// newest-first within each bucket). The slice is truncated at the
	// limit, not ranked.
	Records []*index.Record

	// Elapsed is the wall-clock time of this search only.
	Elapsed time.Duration
}

// Engine performs case-insensitive substring search over a Store.
// The scan is linear over every bucket: substring matching cannot use
// the hash bucket as a selective key, so cost is O(indexed files)
// bounded by the early exit at the result limit.
type Engine struct {
	store *index.Store
}

// New creates a search engine over the given store.
func New(store *index.Store) *Engine {
	return &Engine{store: store}
}

// Search returns records whose filename contains query, ignoring ASCII
// case, capped at limit. The empty query matches nothing. Repeating a
// search with no intervening index mutation returns an identical
// ordered sequence.
func (e *Engine) Search(query string, limit int) Result {
	if limit <= 0 {
		limit = DefaultLimit
	}

	res := Result{Query: query}
	if query == "" {
		return res
	}

	start := time.Now()
	e.store.Walk(func(r *index.Record) bool {
		if containsFold(r.Name, query) {
			res.Records = append(res.Records, r)
		}
		return len(res.Records) < limit
	})
	res.Elapsed = time.Since(start)

	slog.Debug("search completed",
		slog.String("query", query),
		slog.Int("matches", len(res.Records)),
		slog.Duration("elapsed", res.Elapsed))

	return res
}

// containsFold reports whether substr occurs in s under ASCII case
// folding. Byte-level on purpose: filenames are matched as byte
// strings and no Unicode-aware folding is performed.
func containsFold(s, substr string) bool {
	n := len(substr)
	if n == 0 {
		return true
	}
	for i := 0; i+n <= len(s); i++ {
		if foldEqualAt(s, i, substr) {
			return true
		}
	}
	return false
}

func foldEqualAt(s string, off int, substr string) bool {
	for j := 0; j < len(substr); j++ {
		if lowerByte(s[off+j]) != lowerByte(substr[j]) {
			return false
		}
	}
	return true
}

func lowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
