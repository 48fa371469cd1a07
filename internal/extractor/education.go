package extractor

import (
	"regexp"
)

// Degree abbreviations are matched as whole tokens, including compound
// forms such as BSCS or MSEE, so "systems" or "jobs" do not count. The
// longer words match anywhere in the line.
var educationPattern = regexp.MustCompile(
	`(?i)(\b([bm]\.?s\.?[a-z]{0,2}|mba|ph\.?d)\b|bachelor|master|degree|college|university)`,
)

// IsEducation reports whether line carries a degree or institution marker.
func IsEducation(line string) bool {
	return educationPattern.MatchString(line)
}

// ExtractEducation returns every line with an education marker, in
// document order. Nothing is deduplicated or capped.
func ExtractEducation(c Corpus) []string {
	out := []string{}
	for i := 0; i < c.Len(); i++ {
		if line := c.Line(i); IsEducation(line) {
			out = append(out, line)
		}
	}
	return out
}
