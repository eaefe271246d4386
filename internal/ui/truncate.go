package ui

import (
	"github.com/mattn/go-runewidth"
)

// Display widths for the result viewport. Filenames are tail-elided,
// paths head-elided so the filename at the end stays visible.
const (
	filenameWidth = 35
	pathWidth     = 55
)

// truncateName elides a filename that exceeds max display cells,
// keeping the head.
func truncateName(name string, max int) string {
	if runewidth.StringWidth(name) <= max {
		return name
	}
	if max <= 3 {
		return "..."
	}
	return runewidth.Truncate(name, max-3, "") + "..."
}

// shortenPath head-elides a path that exceeds max display cells,
// keeping the tail.
func shortenPath(path string, max int) string {
	if runewidth.StringWidth(path) <= max {
		return path
	}
	if max <= 3 {
		return "..."
	}
	return "..." + tailCells(path, max-3)
}

// tailCells returns the trailing portion of s occupying at most max
// display cells.
func tailCells(s string, max int) string {
	runes := []rune(s)
	width := 0
	for i := len(runes) - 1; i >= 0; i-- {
		width += runewidth.RuneWidth(runes[i])
		if width > max {
			return string(runes[i+1:])
		}
	}
	return s
}
