package valkeydb

import (
	"context"
	"fmt"

	apperrors "resume-extractor/internal/errors"

	"github.com/valkey-io/valkey-go"
)

const (
	pendingQueue    = "queue:pending"
	processingQueue = "queue:processing"

	// seconds a consumer blocks before reporting an empty queue
	blockSeconds = 5
)

type ValkeyClient struct {
	Client valkey.Client
}

func New(ctx context.Context, address string, password string) (*ValkeyClient, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{address},
		Password:    password,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create Valkey client: %w", err)
	}

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("unable to ping Valkey: %w", err)
	}

	return &ValkeyClient{Client: client}, nil
}

func (v *ValkeyClient) Close() {
	v.Client.Close()
}

// InsertJob pushes a job id onto the pending queue.
func (v *ValkeyClient) InsertJob(ctx context.Context, jobID string) error {

	cmd := v.Client.B().Lpush().
		Key(pendingQueue).
		Element(jobID).
		Build()

	if _, err := v.Client.Do(ctx, cmd).AsInt64(); err != nil {

		return fmt.Errorf("unable to add job (%s) to the queue: %w", jobID, err)
	}

	return nil
}

// ConsumeJob moves the oldest pending job into the processing list, so a
// crashed worker leaves it recoverable, and returns its id. It returns
// ErrQueueEmpty when nothing arrives within the block timeout.
func (v *ValkeyClient) ConsumeJob(ctx context.Context) (string, error) {

	cmd := v.Client.B().Blmove().
		Source(pendingQueue).
		Destination(processingQueue).
		Right().
		Left().
		Timeout(blockSeconds).
		Build()

	jobID, err := v.Client.Do(ctx, cmd).ToString()

	if valkey.IsValkeyNil(err) {
		return "", apperrors.ErrQueueEmpty
	}

	if err != nil {
		return "", fmt.Errorf("failed to move job into processing queue: %w", err)
	}

	return jobID, nil
}

// AckJob removes a finished job from the processing list.
func (v *ValkeyClient) AckJob(ctx context.Context, jobID string) error {

	cmd := v.Client.B().Lrem().
		Key(processingQueue).
		Count(1).
		Element(jobID).
		Build()

	if err := v.Client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("unable to ack job (%s): %w", jobID, err)
	}

	return nil
}

// Requeue moves jobs left in the processing list by a crashed worker back
// onto the pending queue. It returns how many were moved.
func (v *ValkeyClient) Requeue(ctx context.Context) (int, error) {

	moved := 0
	for {
		cmd := v.Client.B().Lmove().
			Source(processingQueue).
			Destination(pendingQueue).
			Left().
			Right().
			Build()

		err := v.Client.Do(ctx, cmd).Error()

		if valkey.IsValkeyNil(err) {
			return moved, nil
		}

		if err != nil {
			return moved, fmt.Errorf("unable to requeue jobs: %w", err)
		}
		moved++
	}
}
