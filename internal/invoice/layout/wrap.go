package layout

import "strings"

// wrapDescription performs the greedy word-wrap simulation for a row's
// description column. The result depends only on the text and the
// character budget, which keeps row heights reproducible across runs.
// Words longer than the budget are hard-split rather than overflowed.
// Widths count runes, not bytes, so multi-byte text wraps the same as
// ASCII and splits never land inside a character.
func wrapDescription(text string, maxChars int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			lines = append(lines, string(current))
			current = current[:0]
		}
	}

	for _, w := range words {
		word := []rune(w)
		for len(word) > maxChars {
			flush()
			lines = append(lines, string(word[:maxChars]))
			word = word[maxChars:]
		}
		if len(word) == 0 {
			continue
		}
		switch {
		case len(current) == 0:
			current = append(current, word...)
		case len(current)+1+len(word) <= maxChars:
			current = append(current, ' ')
			current = append(current, word...)
		default:
			flush()
			current = append(current, word...)
		}
	}
	flush()
	return lines
}

// rowHeight estimates the rendered height of one item row from its
// wrapped description line count.
func (g Geometry) rowHeight(desc string) (float64, []string) {
	lines := wrapDescription(desc, g.maxDescChars())
	return float64(len(lines))*g.LineHeight + g.RowVerticalPadding, lines
}
