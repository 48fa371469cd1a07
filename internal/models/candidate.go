package models

import (
	"time"

	"github.com/google/uuid"
)

// CandidateRecord is the structured result of one extraction call.
// Every field is present; lists are empty rather than nil.
type CandidateRecord struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Skills     []string `json:"skills"`
	Education  []string `json:"education"`
	Experience []string `json:"experience"`
	Summary    []string `json:"summary"`

	// fields produced by labels outside the built-in table
	Extra map[string][]string `json:"extra,omitempty"`
}

func NewCandidateRecord() *CandidateRecord {
	return &CandidateRecord{
		Skills:     []string{},
		Education:  []string{},
		Experience: []string{},
		Summary:    []string{},
	}
}

// SetField stores values under the named field. Unknown names go to Extra.
func (r *CandidateRecord) SetField(name string, values []string) {
	if values == nil {
		values = []string{}
	}
	switch name {
	case "skills":
		r.Skills = values
	case "education":
		r.Education = values
	case "experience":
		r.Experience = values
	case "summary":
		r.Summary = values
	default:
		if r.Extra == nil {
			r.Extra = make(map[string][]string)
		}
		r.Extra[name] = values
	}
}

// Field returns the values stored under name.
func (r *CandidateRecord) Field(name string) []string {
	switch name {
	case "skills":
		return r.Skills
	case "education":
		return r.Education
	case "experience":
		return r.Experience
	case "summary":
		return r.Summary
	default:
		return r.Extra[name]
	}
}

// Candidate is a persisted CandidateRecord.
type Candidate struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	JobID     uuid.NullUUID   `json:"job_id" db:"job_id"`
	Record    CandidateRecord `json:"data"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
