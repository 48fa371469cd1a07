package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEducation(t *testing.T) {
	testCases := []struct {
		line string
		want bool
	}{
		{line: "B.S. Computer Science, State University", want: true},
		{line: "BSc in Physics", want: true},
		{line: "M.S. Electrical Engineering", want: true},
		{line: "MBA, 2015", want: true},
		{line: "BSCS, State Tech", want: true},
		{line: "MSEE 2019", want: true},
		{line: "B.S.E.E. coursework", want: true},
		{line: "Ph.D. candidate", want: true},
		{line: "Bachelor of Arts", want: true},
		{line: "Master's thesis on compilers", want: true},
		{line: "Springfield Community College", want: true},
		{line: "Degree in Economics", want: true},
		{line: "Proficient in distributed systems", want: false},
		{line: "Applied to many jobs", want: false},
		{line: "Built microservices in Go", want: false},
		{line: "Managed a team of five engineers", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			assert.Equal(t, tc.want, IsEducation(tc.line))
		})
	}
}

func TestExtractEducationIsExhaustive(t *testing.T) {
	page := "Jane Doe\n" +
		"State University\n" +
		"Managed things\n" +
		"state university\n" +
		"more filler\nmore filler\nmore filler\nmore filler\nmore filler\nmore filler\nmore filler\n" +
		"B.S. Computer Science, State University\n"

	got := ExtractEducation(NewCorpus([]string{page}))

	assert.Equal(t, []string{
		"State University",
		"state university",
		"B.S. Computer Science, State University",
	}, got)
}

func TestExtractEducationNoMatches(t *testing.T) {
	got := ExtractEducation(NewCorpus([]string{"Jane Doe\nGolang developer"}))

	assert.NotNil(t, got)
	assert.Empty(t, got)
}
