package export

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDirectoryNotFound is returned when the output directory is missing
	// or is not a directory. Nothing is written in that case.
	ErrDirectoryNotFound = errors.New("could not find the provided directory")

	// ErrDirectoryBusy is returned when another export holds the output
	// directory lock.
	ErrDirectoryBusy = errors.New("output directory is locked by another export")

	// ErrInvalidFormat is returned for unknown formats or out-of-range
	// JPEG quality.
	ErrInvalidFormat = errors.New("invalid output format")
)

// PageError describes why one page failed to export.
//
// Op is "slice" when the page rows could not be taken from the strip,
// "create" when the output file could not be created, "encode" when the
// encoder failed, and "close" when flushing the file failed.
type PageError struct {
	Index int
	Path  string
	Op    string
	Err   error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d (%s): %s: %v", e.Index+1, e.Path, e.Op, e.Err)
}

func (e *PageError) Unwrap() error { return e.Err }

// BatchError lists every page that failed, ordered by page index. Export
// never stops at the first failure, so a batch error always carries the
// complete set.
type BatchError []*PageError

func (b BatchError) Error() string {
	msgs := make([]string, len(b))
	for i, e := range b {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d page(s) failed to export: %s", len(b), strings.Join(msgs, "; "))
}

// Unwrap exposes the per-page errors to errors.Is and errors.As.
func (b BatchError) Unwrap() []error {
	errs := make([]error, len(b))
	for i, e := range b {
		errs[i] = e
	}
	return errs
}
