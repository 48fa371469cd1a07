package mocks

import (
	"context"

	"resume-extractor/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCandidateStore struct {
	mock.Mock
}

func (m *MockCandidateStore) SaveCandidate(ctx context.Context, jobID uuid.NullUUID, record *models.CandidateRecord) (uuid.UUID, error) {
	args := m.Called(ctx, jobID, record)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockCandidateStore) CandidateByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Candidate), args.Error(1)
}
