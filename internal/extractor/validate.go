package extractor

import (
	"strings"
)

// SelectValid walks candidates in order and keeps those whose text passes
// accept, skipping case-insensitive duplicates, until k are kept.
func SelectValid[T any](candidates []T, text func(T) string, accept Predicate, k int) []string {
	out := []string{}
	if k <= 0 {
		return out
	}

	seen := make(map[string]struct{}, k)
	for _, c := range candidates {
		line := text(c)
		key := strings.ToLower(line)
		if _, dup := seen[key]; dup {
			continue
		}
		if !accept(line) {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, line)
		if len(out) == k {
			break
		}
	}

	return out
}

// Validate keeps up to k ranked candidates that pass the label's
// predicate. A label without Accept uses PredicateFor(label.Name).
func Validate(label Label, candidates []RankedCandidate, k int) []string {
	accept := label.Accept
	if accept == nil {
		accept = PredicateFor(label.Name)
	}
	return SelectValid(candidates, func(c RankedCandidate) string { return c.Line }, accept, k)
}
