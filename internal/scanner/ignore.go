package scanner

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Matcher holds compiled ignore patterns. It supports the common subset
// of gitignore syntax: name globs, anchored patterns containing a
// slash, and directory-only patterns with a trailing slash. Comments
// and blank lines are skipped; negation is not supported.
type Matcher struct {
	rules []ignoreRule
}

type ignoreRule struct {
	pattern  string
	dirOnly  bool
	anchored bool
}

// NewMatcher compiles a set of ignore patterns.
func NewMatcher(patterns []string) *Matcher {
	m := &Matcher{}
	for _, p := range patterns {
		m.addPattern(p)
	}
	return m
}

func (m *Matcher) addPattern(pattern string) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" || strings.HasPrefix(pattern, "#") {
		return
	}

	r := ignoreRule{}
	if strings.HasSuffix(pattern, "/") {
		r.dirOnly = true
		pattern = strings.TrimSuffix(pattern, "/")
	}
	if strings.HasPrefix(pattern, "/") {
		r.anchored = true
		pattern = strings.TrimPrefix(pattern, "/")
	}
	// A pattern with an internal slash applies from the matcher's base
	// directory, like "doc/build" in gitignore.
	if strings.Contains(pattern, "/") {
		r.anchored = true
	}
	r.pattern = pattern

	m.rules = append(m.rules, r)
}

// MatcherFromFile parses an ignore file (e.g. .gitignore). A missing
// file yields an empty matcher.
func MatcherFromFile(p string) (*Matcher, error) {
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return NewMatcher(nil), nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	m := &Matcher{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		m.addPattern(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// Len returns the number of compiled rules.
func (m *Matcher) Len() int {
	return len(m.rules)
}

// Match reports whether the relative path should be ignored. rel uses
// forward slashes and is relative to the directory the patterns were
// loaded from.
func (m *Matcher) Match(rel string, isDir bool) bool {
	rel = filepath.ToSlash(rel)
	base := path.Base(rel)

	for _, r := range m.rules {
		if r.dirOnly && !isDir {
			continue
		}
		if r.anchored {
			if ok, _ := path.Match(r.pattern, rel); ok {
				return true
			}
			continue
		}
		// Unanchored patterns match the base name at any depth.
		if ok, _ := path.Match(r.pattern, base); ok {
			return true
		}
	}
	return false
}
