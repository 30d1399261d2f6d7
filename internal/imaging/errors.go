package imaging

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrExpectedDirectory is returned when discovery is pointed at a path
	// that exists but is not a directory.
	ErrExpectedDirectory = errors.New("expected a directory")

	// ErrNoImagesInDirectory is returned when a directory holds no files
	// with a supported image extension.
	ErrNoImagesInDirectory = errors.New("no images were found in the selected directory")

	// ErrNotFound classifies I/O failures caused by a missing path.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied classifies I/O failures caused by insufficient
	// permissions.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNoImagesLoaded is returned by Load when no source survived decoding,
	// either because the input list was empty or because every source was
	// dropped as unloadable.
	ErrNoImagesLoaded = errors.New("no images could be loaded")
)

// SourceError reports a failure tied to a single source image.
//
// Op is "open" for file-system failures, "probe" when the image header could
// not be read, and "decode" when the pixel data could not be decoded.
type SourceError struct {
	Path string
	Op   string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// classifyIOError wraps err with ErrNotFound or ErrPermissionDenied when the
// underlying cause is one of those conditions, so callers can branch with
// errors.Is without inspecting OS error codes. Other errors pass through.
func classifyIOError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}
