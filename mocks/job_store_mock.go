package mocks

import (
	"context"

	"resume-extractor/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockJobStore struct {
	mock.Mock
}

func (m *MockJobStore) CreateJob(ctx context.Context, job *models.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobStore) JobByID(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	args := m.Called(ctx, jobID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobStore) UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status models.Status) error {
	args := m.Called(ctx, jobID, status)
	return args.Error(0)
}

func (m *MockJobStore) CompleteJob(ctx context.Context, jobID, candidateID uuid.UUID) error {
	args := m.Called(ctx, jobID, candidateID)
	return args.Error(0)
}

func (m *MockJobStore) FailJob(ctx context.Context, jobID uuid.UUID, reason error) error {
	args := m.Called(ctx, jobID, reason)
	return args.Error(0)
}
