// Package export slices a stitched strip into pages and writes them to disk.
//
// Pages are the row ranges between consecutive cuts. Each page is encoded
// independently on a bounded worker pool and written as 1.png, 2.png, ...
// zero-padded to the digit width of the page count so that lexical and
// numeric order agree.
//
// # Formats
//
// PNG and TIFF are lossless; re-stacking their pages reproduces the strip
// exactly. JPEG takes a quality from 1 to 100.
//
// # Debug overlay
//
// With Options.Debug set, every page is copied before encoding and a
// one-pixel horizontal line is drawn at each splitpoint inside it. Skipped
// rows are drawn first, then cuts.
//
// # Locking
//
// The output directory is locked with a .quickstitch.lock file for the
// duration of an export so two exports cannot interleave pages.
package export
