package document

import (
	"strings"
	"unicode/utf8"
)

// WrapText greedily wraps a paragraph to width columns, collapsing runs of
// whitespace. Words longer than width are split. An empty paragraph yields a
// single empty line so blank lines keep their vertical space.
func WrapText(paragraph string, width int) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var (
		lines   []string
		current strings.Builder
		n       int
	)
	flush := func() {
		if n > 0 {
			lines = append(lines, current.String())
			current.Reset()
			n = 0
		}
	}

	for _, w := range words {
		wn := utf8.RuneCountInString(w)
		for wn > width {
			flush()
			head, tail := splitRunes(w, width)
			lines = append(lines, head)
			w, wn = tail, wn-width
		}
		if wn == 0 {
			continue
		}
		switch {
		case n == 0:
			current.WriteString(w)
			n = wn
		case n+1+wn <= width:
			current.WriteByte(' ')
			current.WriteString(w)
			n += 1 + wn
		default:
			flush()
			current.WriteString(w)
			n = wn
		}
	}
	flush()
	return lines
}

// Paragraphs splits text at line breaks of any convention.
func Paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

func splitRunes(s string, n int) (string, string) {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], s[pos:]
		}
		i++
	}
	return s, ""
}
