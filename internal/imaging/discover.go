package imaging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SortMode selects how discovered file names are ordered.
type SortMode int

const (
	// SortNatural compares runs of digits by numeric value, so "9.jpg" sorts
	// before "10.jpg". Chapter raws are almost always numbered, which makes
	// this the default.
	SortNatural SortMode = iota

	// SortLogical compares file names codepoint by codepoint.
	SortLogical
)

// String returns the canonical name of the mode.
func (m SortMode) String() string {
	switch m {
	case SortLogical:
		return "logical"
	case SortNatural:
		return "natural"
	default:
		return fmt.Sprintf("SortMode(%d)", int(m))
	}
}

// ParseSortMode parses "natural"/"n" or "logical"/"l" (case-insensitive).
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "natural", "n", "":
		return SortNatural, nil
	case "logical", "l":
		return SortLogical, nil
	default:
		return 0, fmt.Errorf("unknown sort mode %q (want natural or logical)", s)
	}
}

// supportedExtensions is matched exactly against the text after the final dot,
// so "page.JPG" is not picked up.
var supportedExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"webp": {},
}

// IsSupportedImage reports whether name carries one of the extensions that
// discovery picks up.
func IsSupportedImage(name string) bool {
	ext := filepath.Ext(name)
	if ext == "" {
		return false
	}
	_, ok := supportedExtensions[ext[1:]]
	return ok
}

// Discover lists the images directly inside dir, ordered by file name under
// the given mode, and returns their paths joined onto dir.
//
// Subdirectories and files with other extensions are skipped without error.
//
// # Errors
//
//   - ErrExpectedDirectory if dir is not a directory
//   - ErrNoImagesInDirectory if nothing eligible was found
//   - ErrNotFound / ErrPermissionDenied (wrapping the OS error) when dir
//     cannot be read, or the raw I/O error for any other failure
func Discover(dir string, mode SortMode) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dir, classifyIOError(err))
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, ErrExpectedDirectory)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, classifyIOError(err))
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsSupportedImage(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoImagesInDirectory)
	}

	SortNames(names, mode)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

// SortNames orders file names in place.
func SortNames(names []string, mode SortMode) {
	if mode == SortLogical {
		sort.Strings(names)
		return
	}
	sort.SliceStable(names, func(i, j int) bool {
		return NaturalLess(names[i], names[j])
	})
}

// NaturalLess reports whether a sorts before b when runs of ASCII digits are
// compared by numeric value.
//
// Digit runs are compared ignoring leading zeros, then by the length of the
// run (so "01" sorts after "1"); everything else compares by codepoint. The
// full strings break any remaining tie so the order is total.
func NaturalLess(a, b string) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			si, sj := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			if c := compareDigitRuns(a[si:i], b[sj:j]); c != 0 {
				return c < 0
			}
			continue
		}
		if ca != cb {
			return ca < cb
		}
		i++
		j++
	}
	if rest := (len(a) - i) - (len(b) - j); rest != 0 {
		return rest < 0
	}
	return a < b
}

func compareDigitRuns(x, y string) int {
	tx := strings.TrimLeft(x, "0")
	ty := strings.TrimLeft(y, "0")
	if len(tx) != len(ty) {
		if len(tx) < len(ty) {
			return -1
		}
		return 1
	}
	if c := strings.Compare(tx, ty); c != 0 {
		return c
	}
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	return 0
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
