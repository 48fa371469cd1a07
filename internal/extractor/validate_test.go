package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ranked(lines ...string) []RankedCandidate {
	out := make([]RankedCandidate, len(lines))
	for i, l := range lines {
		out[i] = RankedCandidate{Line: l, Index: i, Score: 1 - float64(i)/100}
	}
	return out
}

func TestValidateStopsAtK(t *testing.T) {
	got := Validate(Label{Name: "skills"}, ranked(
		"Skills: Go", "Proficient in SQL", "• Docker", "• Kubernetes", "Proficient in C",
	), 3)

	assert.Equal(t, []string{"Skills: Go", "Proficient in SQL", "• Docker"}, got)
}

func TestValidateReturnsFewerWhenCandidatesFail(t *testing.T) {
	lines := []string{"Proficient in Go"}
	for i := 0; i < 11; i++ {
		lines = append(lines, "unrelated line")
	}

	got := Validate(Label{Name: "skills"}, ranked(lines...), 3)

	assert.Equal(t, []string{"Proficient in Go"}, got)
}

func TestValidateDeduplicatesCaseInsensitively(t *testing.T) {
	got := Validate(Label{Name: "experience"}, ranked(
		"Worked at Acme", "WORKED AT ACME", "worked at acme", "Intern at Initech",
	), 3)

	assert.Equal(t, []string{"Worked at Acme", "Intern at Initech"}, got)
}

func TestValidateRejectedLineDoesNotBlockLaterDuplicate(t *testing.T) {
	accept := func(line string) bool { return line != strings.ToLower(line) }

	got := SelectValid([]string{"go developer", "Go Developer"}, func(s string) string { return s }, accept, 3)

	assert.Equal(t, []string{"Go Developer"}, got)
}

func TestValidateUnknownLabelAcceptsAll(t *testing.T) {
	got := Validate(Label{Name: "hobbies"}, ranked("chess", "climbing"), 3)

	assert.Equal(t, []string{"chess", "climbing"}, got)
}

func TestValidateUsesLabelPredicate(t *testing.T) {
	label := Label{Name: "skills", Accept: func(line string) bool { return strings.HasPrefix(line, "Go") }}

	got := Validate(label, ranked("Skills: SQL", "Go", "Golang"), 3)

	assert.Equal(t, []string{"Go", "Golang"}, got)
}

func TestSelectValidNonPositiveK(t *testing.T) {
	got := SelectValid([]string{"a"}, func(s string) string { return s }, AcceptAll, 0)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}
