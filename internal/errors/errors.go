package errors

import (
	"errors"
)

// indicates an unrecoverable error
var ErrPermanentFailure = errors.New("permanent failure, do not retry")

// ranking could not be produced; no partial record is returned
var ErrExtractionFailed = errors.New("extraction failed")

var (
	ErrNotFound        = errors.New("resource not found")
	ErrUnsupportedType = errors.New("unsupported document type")
	ErrQueueEmpty      = errors.New("no job available")
)

// IsPermanent reports whether err should not be retried.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrPermanentFailure) || errors.Is(err, ErrUnsupportedType)
}
