package storage

import (
	"context"
	"io"

	"resume-extractor/internal/models"

	"github.com/google/uuid"
)

type JobCreator interface {
	CreateJob(ctx context.Context, job *models.Job) error
}

type JobUpdater interface {
	JobByID(ctx context.Context, jobID uuid.UUID) (*models.Job, error)
	UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status models.Status) error
	CompleteJob(ctx context.Context, jobID, candidateID uuid.UUID) error
	FailJob(ctx context.Context, jobID uuid.UUID, reason error) error
}

type JobStore interface {
	JobCreator
	JobUpdater
}

// CandidateStore persists extracted records and assigns their ids.
type CandidateStore interface {
	SaveCandidate(ctx context.Context, jobID uuid.NullUUID, record *models.CandidateRecord) (uuid.UUID, error)
	CandidateByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error)
}

type FileStorer interface {
	Upload(ctx context.Context, file io.Reader, bucket, key, contentType string) (string, error)
	Download(ctx context.Context, bucket, key string) ([]byte, error)
}

type JobQueuer interface {
	InsertJob(ctx context.Context, jobID string) error
}

type JobFetcher interface {
	ConsumeJob(ctx context.Context) (string, error)
	AckJob(ctx context.Context, jobID string) error
}
