package detection

import (
	"errors"
	"fmt"

	"github.com/ironsheep/quickstitch/internal/imaging"
)

var (
	// ErrInvalidOptions is returned when scan options are out of range.
	ErrInvalidOptions = errors.New("invalid splitpoint options")

	// ErrEmptyStrip is returned when asked to split a strip with no rows.
	ErrEmptyStrip = errors.New("strip has no rows")
)

// Kind tells whether a splitpoint ends a page or was only considered.
type Kind uint8

const (
	// KindCut marks a row where the strip is sliced.
	KindCut Kind = iota

	// KindSkipped marks a row that was evaluated and rejected. It is kept
	// for debug rendering and may later be promoted to a cut.
	KindSkipped
)

func (k Kind) String() string {
	switch k {
	case KindCut:
		return "cut"
	case KindSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// MarshalText renders the kind as "cut" or "skipped".
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Splitpoint is a strip row tagged with how the scan treated it.
type Splitpoint struct {
	Row  int  `json:"row"`
	Kind Kind `json:"kind"`
}

// Cut returns a splitpoint that slices the strip at row.
func Cut(row int) Splitpoint { return Splitpoint{Row: row, Kind: KindCut} }

// Skipped returns a splitpoint for a row that was considered and rejected.
func Skipped(row int) Splitpoint { return Splitpoint{Row: row, Kind: KindSkipped} }

// IsCut reports whether the strip is sliced at this row.
func (s Splitpoint) IsCut() bool { return s.Kind == KindCut }

func (s Splitpoint) String() string {
	return fmt.Sprintf("%s(%d)", s.Kind, s.Row)
}

// Options tunes the splitpoint scan.
type Options struct {
	// MaxHeight is the ideal and largest page height in rows.
	MaxHeight int

	// MinHeight is the smallest page height a content-aware cut may produce.
	// Only the final page, which ends at the strip bottom, can be shorter.
	MinHeight int

	// ScanInterval evaluates only every Nth row.
	ScanInterval int

	// Sensitivity sets how clean a row must be to qualify as a cut: 0
	// accepts almost any row, 255 only rows whose neighbouring pixels share
	// the same luminance.
	Sensitivity uint8
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxHeight:    5000,
		MinHeight:    1000,
		ScanInterval: 5,
		Sensitivity:  220,
	}
}

// Validate checks that the options describe a scan that can make progress.
func (o Options) Validate() error {
	switch {
	case o.MaxHeight < 1:
		return fmt.Errorf("%w: max height %d must be at least 1", ErrInvalidOptions, o.MaxHeight)
	case o.MinHeight < 0:
		return fmt.Errorf("%w: min height %d must not be negative", ErrInvalidOptions, o.MinHeight)
	case o.MinHeight > o.MaxHeight:
		return fmt.Errorf("%w: min height %d exceeds max height %d", ErrInvalidOptions, o.MinHeight, o.MaxHeight)
	case o.ScanInterval < 1:
		return fmt.Errorf("%w: scan interval %d must be at least 1", ErrInvalidOptions, o.ScanInterval)
	}
	return nil
}

// FindSplitpoints scores every row of the strip and scans it for cuts.
func FindSplitpoints(strip *imaging.Strip, opts Options) ([]Splitpoint, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if strip.Height() == 0 {
		return nil, ErrEmptyStrip
	}
	return Scan(RowRoughness(strip.Image()), opts)
}

// Scan runs the splitpoint search over precomputed row roughness scores, one
// per strip row.
func Scan(roughness []uint8, opts Options) ([]Splitpoint, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	height := len(roughness)
	if height == 0 {
		return nil, ErrEmptyStrip
	}

	target := opts.MaxHeight + 1
	limit := 255 - opts.Sensitivity
	band := target - opts.MinHeight

	splitpoints := []Splitpoint{Cut(0)}
	samples := make([]int, 0, band/opts.ScanInterval+1)
	lastCut := 0

	for cursor := target; cursor <= height; {
		// Nearest rows first, so ties favour taller pages. A page is
		// always at least one row tall, even with MinHeight zero.
		lowest := max(cursor-band, lastCut+1)
		samples = samples[:0]
		for row := cursor - 1; row >= lowest; row -= opts.ScanInterval {
			samples = append(samples, row)
		}

		// Fallback: the first sample with the worst possible score.
		bestRow, bestScore := samples[0], uint8(255)
		accepted := -1
		for i := 0; i < groupCount(len(samples)); i++ {
			group := samples[i:min(i+3, len(samples))]
			score := worstScore(roughness, group)
			if score <= limit {
				accepted = group[0]
				break
			}
			splitpoints = append(splitpoints, Skipped(group[0]))
			if score < bestScore {
				bestRow, bestScore = group[0], score
			}
		}

		if accepted >= 0 {
			splitpoints = append(splitpoints, Cut(accepted))
			lastCut = accepted
		} else {
			promote(splitpoints, bestRow)
			lastCut = bestRow
		}
		cursor = lastCut + target
	}

	return append(splitpoints, Cut(height)), nil
}

// groupCount returns how many overlapping triples n samples form. Fewer than
// three samples still form one group so that every step yields a candidate.
func groupCount(n int) int {
	if n >= 3 {
		return n - 2
	}
	return min(n, 1)
}

func worstScore(roughness []uint8, rows []int) uint8 {
	var worst uint8
	for _, row := range rows {
		worst = max(worst, roughness[row])
	}
	return worst
}

// promote turns the most recent Skipped marker for row into a Cut. The row
// was recorded in the current window, so the search runs from the end.
func promote(splitpoints []Splitpoint, row int) {
	for i := len(splitpoints) - 1; i >= 0; i-- {
		if splitpoints[i].Row == row && splitpoints[i].Kind == KindSkipped {
			splitpoints[i].Kind = KindCut
			return
		}
	}
}

// Cuts returns the rows of every Cut splitpoint in order.
func Cuts(splitpoints []Splitpoint) []int {
	rows := make([]int, 0, len(splitpoints))
	for _, sp := range splitpoints {
		if sp.IsCut() {
			rows = append(rows, sp.Row)
		}
	}
	return rows
}

// Page is the half-open strip row range [Start, End) between two
// consecutive cuts. Index is 0-based.
type Page struct {
	Index int `json:"index"`
	Start int `json:"start"`
	End   int `json:"end"`
}

// Height returns the number of rows in the page.
func (p Page) Height() int { return p.End - p.Start }

// Pages pairs consecutive cuts into pages, top to bottom.
func Pages(splitpoints []Splitpoint) []Page {
	cuts := Cuts(splitpoints)
	if len(cuts) < 2 {
		return nil
	}
	pages := make([]Page, 0, len(cuts)-1)
	for i := 1; i < len(cuts); i++ {
		pages = append(pages, Page{Index: i - 1, Start: cuts[i-1], End: cuts[i]})
	}
	return pages
}
