package extractor

import (
	"strings"
)

// Predicate decides whether a candidate line is plausible for a label.
// Predicates are pure and receive the line in its original case.
type Predicate func(line string) bool

// Label describes one extracted field. Description is the similarity
// query. When Extract is set the label bypasses ranking entirely.
type Label struct {
	Name        string
	Description string
	Accept      Predicate
	Extract     func(Corpus) []string
}

var (
	experienceMarkers = []string{"manager", "intern", "company", "experience", "worked", "hired"}
	skillsMarkers     = []string{"proficient", "skills", "•"}
	summaryExclusions = []string{"experience", "education", "skills"}
)

const summaryMinTokens = 5

func containsAny(line string, words []string) bool {
	lower := strings.ToLower(line)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func IsExperience(line string) bool { return containsAny(line, experienceMarkers) }

func IsSkills(line string) bool { return containsAny(line, skillsMarkers) }

// IsSummary accepts longer lines that mention none of the other sections.
func IsSummary(line string) bool {
	return len(strings.Fields(line)) > summaryMinTokens && !containsAny(line, summaryExclusions)
}

func AcceptAll(string) bool { return true }

// PredicateFor returns the acceptance rule for a label name. Unknown
// names accept every line.
func PredicateFor(name string) Predicate {
	switch name {
	case "experience":
		return IsExperience
	case "skills":
		return IsSkills
	case "summary":
		return IsSummary
	case "education":
		return IsEducation
	default:
		return AcceptAll
	}
}

// DefaultLabels is the label table used when none is configured. Name and
// email come from the contact extractor and are not listed.
func DefaultLabels() []Label {
	return []Label{
		{
			Name:        "skills",
			Description: "Technical or soft skills listed under skills section",
			Accept:      IsSkills,
		},
		{
			Name:        "education",
			Description: "Academic degrees or qualifications with college/university name",
			Accept:      IsEducation,
			Extract:     ExtractEducation,
		},
		{
			Name:        "experience",
			Description: "Past job roles, positions, company names, or work descriptions",
			Accept:      IsExperience,
		},
		{
			Name:        "summary",
			Description: "Profile summary or objective describing the candidate's background",
			Accept:      IsSummary,
		},
	}
}
