package errors_test

import (
	"context"
	"fmt"
	"testing"

	apperrors "resume-extractor/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestIsPermanent(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "permanent", err: fmt.Errorf("gemini auth: %w", apperrors.ErrPermanentFailure), want: true},
		{name: "unsupported type", err: fmt.Errorf("docext: %w", apperrors.ErrUnsupportedType), want: true},
		{name: "timeout", err: fmt.Errorf("%w: %w", apperrors.ErrExtractionFailed, context.DeadlineExceeded), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, apperrors.IsPermanent(tc.err))
		})
	}
}
