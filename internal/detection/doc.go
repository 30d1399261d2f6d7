// Package detection finds the rows at which a stitched strip should be cut
// into pages.
//
// Chapter raws stack panels separated by gutters: bands of flat background
// where neighbouring pixels barely differ. This package scores every strip
// row by how busy it is and walks the strip top to bottom looking for clean
// rows close to a target page height.
//
// # Roughness
//
// A row's roughness is the largest absolute luminance difference between any
// two horizontally adjacent pixels in it. Luminance uses the Rec. 709 weights
// (0.2126*R + 0.7152*G + 0.0722*B) in integer arithmetic. A flat gutter scores
// 0; a row crossing line art scores close to 255. Scores for the whole strip
// are computed once, in parallel across rows.
//
// # Scan
//
// The scan keeps a cursor one row past the tallest page allowed. For each
// step it samples every ScanInterval-th row below the cursor, nearest first,
// but never closer than MinHeight to the previous cut. Samples are grouped in
// overlapping triples; the first triple whose three scores all fall within
// the sensitivity limit yields a cut at its first row. Every row looked at
// before that is kept as a Skipped marker for debug rendering.
//
// When no triple qualifies, the row whose triple has the smallest worst score
// is promoted from Skipped to Cut, so every page stays within MaxHeight even
// when the artwork leaves no clean seam.
//
// Each step depends on where the previous cut landed, so the scan itself is
// strictly sequential.
//
// # Invariants
//
// The returned sequence always starts with Cut(0) and ends with Cut(height).
// Cut rows are strictly increasing, no page is taller than MaxHeight, and
// every cut before the last is at least MinHeight rows below the previous
// one. The same input always produces the same sequence.
package detection
