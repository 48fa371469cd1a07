package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"resume-extractor/internal/docext"
	apperrors "resume-extractor/internal/errors"
	"resume-extractor/internal/models"
	"resume-extractor/internal/notify"
	"resume-extractor/internal/storage"

	"github.com/google/uuid"
)

const (
	maxRetries   = 3
	consumeDelay = 5 * time.Second
)

type Extractor interface {
	Extract(ctx context.Context, pages []string) (*models.CandidateRecord, error)
}

type JobProcessor struct {
	jobs       storage.JobStore
	candidates storage.CandidateStore
	queue      storage.JobFetcher
	store      storage.FileStorer
	s3Bucket   string
	extractor  Extractor
	notifier   notify.Notifier
	logger     *slog.Logger

	retryWait time.Duration
}

type Config struct {
	Jobs       storage.JobStore
	Candidates storage.CandidateStore
	Queue      storage.JobFetcher
	Store      storage.FileStorer
	S3Bucket   string
	Extractor  Extractor
	Notifier   notify.Notifier
	Logger     *slog.Logger
}

func NewJobProcessor(cfg Config) *JobProcessor {
	if cfg.Notifier == nil {
		cfg.Notifier = notify.Nop{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &JobProcessor{
		jobs:       cfg.Jobs,
		candidates: cfg.Candidates,
		queue:      cfg.Queue,
		store:      cfg.Store,
		s3Bucket:   cfg.S3Bucket,
		extractor:  cfg.Extractor,
		notifier:   cfg.Notifier,
		logger:     cfg.Logger,
		retryWait:  time.Second,
	}
}

// RunPool runs n workers sharing one extractor until ctx is cancelled.
func (p *JobProcessor) RunPool(ctx context.Context, n int) {
	var wg sync.WaitGroup
	for i := 0; i < max(n, 1); i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			p.Run(ctx, worker)
		}(i)
	}
	wg.Wait()
}

// Run pulls jobs off the queue until ctx is cancelled.
func (p *JobProcessor) Run(ctx context.Context, worker int) {

	logger := p.logger.With("worker", worker)
	logger.Info("job processor has started, waiting for jobs")

	for ctx.Err() == nil {

		jobIDStr, err := p.queue.ConsumeJob(ctx)

		if errors.Is(err, apperrors.ErrQueueEmpty) {
			continue
		}

		if err != nil {
			if ctx.Err() != nil {
				break
			}
			logger.Error("error consuming job from queue", "error", err)
			sleep(ctx, consumeDelay) // wait and then try again
			continue
		}

		jobID, err := uuid.Parse(jobIDStr)

		if err != nil {
			logger.Warn("invalid job id given, dropping it", "job_id", jobIDStr)
			p.ack(ctx, jobIDStr)
			continue
		}

		if err := p.ProcessJob(ctx, jobID); err != nil {
			logger.Error("job failed", "job_id", jobID, "error", err)
		}

		// a cancelled job stays in the processing list for Requeue
		if ctx.Err() == nil {
			p.ack(ctx, jobIDStr)
		}
	}

	logger.Info("job processor stopped")
}

func (p *JobProcessor) ack(ctx context.Context, jobID string) {
	if err := p.queue.AckJob(ctx, jobID); err != nil {
		p.logger.Error("failed to ack job", "job_id", jobID, "error", err)
	}
}

// ProcessJob downloads the job's file, extracts a candidate record,
// stores it and marks the job completed. Any failure marks the job
// failed with the reason and is returned.
func (p *JobProcessor) ProcessJob(ctx context.Context, jobID uuid.UUID) error {

	logger := p.logger.With("job_id", jobID)
	logger.Info("processing job")

	job, err := retry(ctx, maxRetries, p.retryWait, func() (*models.Job, error) {
		return p.jobs.JobByID(ctx, jobID)
	})

	if err != nil {
		// nothing to mark failed when the job row itself is unreadable
		return fmt.Errorf("failed to fetch job %s: %w", jobID, err)
	}

	candidateID, err := p.processJobFile(ctx, job)

	if err != nil {
		p.fail(ctx, jobID, err)
		return err
	}

	if err := p.jobs.CompleteJob(ctx, jobID, candidateID); err != nil {
		return fmt.Errorf("failed to complete job %s: %w", jobID, err)
	}

	logger.Info("job completed", "candidate_id", candidateID)
	p.publish(ctx, notify.Event{JobID: jobID, Status: models.StatusCompleted.String(), CandidateID: &candidateID})

	return nil
}

// processJobFile marks the job processing, downloads the résumé,
// extracts its pages and record, and saves the record.
func (p *JobProcessor) processJobFile(ctx context.Context, job *models.Job) (uuid.UUID, error) {

	if err := p.jobs.UpdateJobStatus(ctx, job.ID, models.StatusProcessing); err != nil {
		return uuid.Nil, fmt.Errorf("failed to update job status for job %s: %w", job.ID, err)
	}

	resume, err := retry(ctx, maxRetries, p.retryWait, func() ([]byte, error) {
		return p.store.Download(ctx, p.s3Bucket, job.FileName)
	})

	if err != nil {
		return uuid.Nil, fmt.Errorf("failed downloading file for job %s: %w", job.ID, err)
	}

	pages, err := docext.ExtractPages(job.ContentType, resume)

	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to extract resume text for job %s: %w", job.ID, err)
	}

	record, err := p.extractor.Extract(ctx, pages)

	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to extract candidate for job %s: %w", job.ID, err)
	}

	candidateID, err := retry(ctx, maxRetries, p.retryWait, func() (uuid.UUID, error) {
		return p.candidates.SaveCandidate(ctx, uuid.NullUUID{UUID: job.ID, Valid: true}, record)
	})

	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save candidate for job %s: %w", job.ID, err)
	}

	return candidateID, nil
}

func (p *JobProcessor) fail(ctx context.Context, jobID uuid.UUID, reason error) {
	if err := p.jobs.FailJob(ctx, jobID, reason); err != nil {
		p.logger.Error("failed to mark job failed", "job_id", jobID, "error", err)
	}
	p.publish(ctx, notify.Event{JobID: jobID, Status: models.StatusFailed.String(), Error: reason.Error()})
}

func (p *JobProcessor) publish(ctx context.Context, event notify.Event) {
	event.At = time.Now().UTC()
	if err := p.notifier.Publish(ctx, event); err != nil {
		p.logger.Warn("failed to publish job event", "job_id", event.JobID, "error", err)
	}
}

func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
