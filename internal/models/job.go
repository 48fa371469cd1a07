package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Status int

// default status in database is "queued"
const (
	StatusUnknown    Status = iota
	StatusQueued            // 1
	StatusProcessing        // 2
	StatusCompleted         // 3
	StatusFailed            // 4
)

type Job struct {
	ID uuid.UUID `json:"id" db:"id"`

	Status Status `json:"status" db:"job_status"`

	FileName string `json:"file_name" db:"file_name"`

	ContentType string `json:"content_type" db:"content_type"`

	CandidateID uuid.NullUUID `json:"candidate_id" db:"candidate_id"`

	ErrorMessage *string `json:"error_message,omitempty" db:"error_message"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`

	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusProcessing:
		return "processing"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func ParseStatus(s string) (Status, error) {
	switch s {
	case "queued":
		return StatusQueued, nil
	case "processing":
		return StatusProcessing, nil
	case "completed":
		return StatusCompleted, nil
	case "failed":
		return StatusFailed, nil
	default:
		return StatusUnknown, fmt.Errorf("invalid job status %q", s)
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
