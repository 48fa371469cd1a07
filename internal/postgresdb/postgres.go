package postgresdb

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "resume-extractor/internal/errors"
	"resume-extractor/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, connString string) (*Store, error) {
	if connString == "" {
		return nil, fmt.Errorf("ERROR: database connection string is required")
	}

	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("ERROR: invalid database connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("ERROR: unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ERROR: unable to ping database: %w", err)
	}

	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

// Migrate creates the jobs and candidates tables when missing.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ERROR: failed to apply schema: %w", err)
	}
	return nil
}

func (s *Store) CreateJob(ctx context.Context, job *models.Job) error {

	sql := `
		INSERT INTO jobs (id, file_name, content_type, job_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		`

	_, err := s.Pool.Exec(
		ctx,
		sql,
		job.ID,
		job.FileName,
		job.ContentType,
		job.Status.String(),
		job.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("ERROR: failed to insert job %s: %w", job.ID, err)
	}

	return nil
}

func (s *Store) JobByID(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {

	var job models.Job

	// convert to string before sending back
	var statusString string

	sql := `
        SELECT id, file_name, content_type, job_status, candidate_id, error_message, created_at, updated_at
        FROM jobs
        WHERE id = $1
        `

	err := s.Pool.QueryRow(
		ctx,
		sql,
		jobID,
	).Scan(
		&job.ID,
		&job.FileName,
		&job.ContentType,
		&statusString,
		&job.CandidateID,
		&job.ErrorMessage,
		&job.CreatedAt,
		&job.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("job %s: %w", jobID, apperrors.ErrNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("ERROR: Failed to retrieve job with error: %w", err)
	}

	job.Status, err = models.ParseStatus(statusString)

	if err != nil {
		return nil, fmt.Errorf("ERROR: database contains invalid job status string: %w", err)
	}

	return &job, nil
}

func (s *Store) UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status models.Status) error {
	sql := `UPDATE jobs
              SET job_status = $1, updated_at = NOW()
              WHERE id = $2`

	return s.execOne(ctx, jobID, sql, status.String(), jobID)
}

func (s *Store) CompleteJob(ctx context.Context, jobID, candidateID uuid.UUID) error {
	sql := `UPDATE jobs
              SET job_status = $1, candidate_id = $2, error_message = NULL, updated_at = NOW()
              WHERE id = $3`

	return s.execOne(ctx, jobID, sql, models.StatusCompleted.String(), candidateID, jobID)
}

func (s *Store) FailJob(ctx context.Context, jobID uuid.UUID, reason error) error {
	sql := `UPDATE jobs
              SET job_status = $1, error_message = $2, updated_at = NOW()
              WHERE id = $3`

	return s.execOne(ctx, jobID, sql, models.StatusFailed.String(), reason.Error(), jobID)
}

func (s *Store) execOne(ctx context.Context, jobID uuid.UUID, sql string, args ...any) error {
	tag, err := s.Pool.Exec(ctx, sql, args...)

	if err != nil {
		return fmt.Errorf("ERROR: failed to update job %s: %w", jobID, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job %s: %w", jobID, apperrors.ErrNotFound)
	}

	return nil
}

// SaveCandidate stores record and returns its new id.
func (s *Store) SaveCandidate(ctx context.Context, jobID uuid.NullUUID, record *models.CandidateRecord) (uuid.UUID, error) {

	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, fmt.Errorf("ERROR: failed to generate candidate id: %w", err)
	}

	var extra []byte
	if len(record.Extra) > 0 {
		if extra, err = json.Marshal(record.Extra); err != nil {
			return uuid.Nil, fmt.Errorf("ERROR: failed to encode extra fields: %w", err)
		}
	}

	sql := `
		INSERT INTO candidates (id, job_id, name, email, skills, education, experience, summary, extra)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`

	_, err = s.Pool.Exec(
		ctx,
		sql,
		id,
		jobID,
		record.Name,
		record.Email,
		record.Skills,
		record.Education,
		record.Experience,
		record.Summary,
		extra,
	)

	if err != nil {
		return uuid.Nil, fmt.Errorf("ERROR: failed to insert candidate: %w", err)
	}

	return id, nil
}

func (s *Store) CandidateByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error) {

	candidate := models.Candidate{ID: id}
	record := &candidate.Record
	var extra []byte

	sql := `
        SELECT job_id, name, email, skills, education, experience, summary, extra, created_at
        FROM candidates
        WHERE id = $1
        `

	err := s.Pool.QueryRow(ctx, sql, id).Scan(
		&candidate.JobID,
		&record.Name,
		&record.Email,
		&record.Skills,
		&record.Education,
		&record.Experience,
		&record.Summary,
		&extra,
		&candidate.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("candidate %s: %w", id, apperrors.ErrNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("ERROR: Failed to retrieve candidate with error: %w", err)
	}

	if len(extra) > 0 {
		if err := json.Unmarshal(extra, &record.Extra); err != nil {
			return nil, fmt.Errorf("ERROR: invalid extra fields for candidate %s: %w", id, err)
		}
	}

	return &candidate, nil
}
