// Package transcript renders translation history for monospace chat blocks.
package transcript

import (
	"strings"
	"unicode/utf8"
)

// maxOriginalWidth keeps one long headline from blowing up the whole column.
const maxOriginalWidth = 24

type Entry struct {
	Original string
	Slug     string
}

// RenderHistory renders entries as an aligned two-column table. Callers wrap
// the result in a <pre> block; ordering is whatever the caller passed in
// (newest first for the /history reply).
func RenderHistory(entries []Entry) string {
	width := 0
	cells := make([]string, len(entries))
	for i, e := range entries {
		cells[i] = truncate(strings.TrimSpace(e.Original), maxOriginalWidth)
		if n := utf8.RuneCountInString(cells[i]); n > width {
			width = n
		}
	}

	var b strings.Builder
	for i, e := range entries {
		b.WriteString(cells[i])
		b.WriteString(strings.Repeat(" ", width-utf8.RuneCountInString(cells[i])))
		b.WriteString("  ")
		b.WriteString(e.Slug)
		if i < len(entries)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}
