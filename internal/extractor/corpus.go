package extractor

import (
	"strings"
)

// Corpus is the ordered, non-empty, trimmed line sequence of one document.
// Lines from page N precede lines from page N+1. A Corpus is never
// modified after NewCorpus returns.
type Corpus struct {
	lines []string
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NewCorpus splits each page on line breaks, trims every line, and drops
// lines left empty. An empty page contributes no lines.
func NewCorpus(pages []string) Corpus {
	var lines []string
	for _, page := range pages {
		if page == "" {
			continue
		}
		for _, line := range strings.Split(lineBreaks.Replace(page), "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return Corpus{lines: lines}
}

func (c Corpus) Len() int { return len(c.lines) }

func (c Corpus) Line(i int) string { return c.lines[i] }

// Lines returns a copy of the corpus lines.
func (c Corpus) Lines() []string {
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

// Head returns a copy of at most the first n lines.
func (c Corpus) Head(n int) []string {
	n = min(n, len(c.lines))
	out := make([]string, n)
	copy(out, c.lines[:n])
	return out
}
