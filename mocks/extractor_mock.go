package mocks

import (
	"context"

	"resume-extractor/internal/models"
	"resume-extractor/internal/notify"

	"github.com/stretchr/testify/mock"
)

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, pages []string) (*models.CandidateRecord, error) {
	args := m.Called(ctx, pages)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CandidateRecord), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Publish(ctx context.Context, event notify.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
