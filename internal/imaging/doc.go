// Package imaging loads chapter page images and stacks them into one strip.
//
// Loading happens in two steps. Discover lists the images in a directory and
// orders them; Load decodes an explicit, already ordered list of paths,
// normalizes every image to a common width and concatenates them top to
// bottom. Callers that already know their page order can skip Discover and
// pass paths straight to Load.
//
// # Coordinate System
//
// Strip rows are 0-based with row 0 at the top of the first source. Row
// ranges are half-open: [start, end).
//
// # Width Normalization
//
// The strip width is either supplied by the caller or taken as the smallest
// native width among the sources, never the largest, so pages are not
// upscaled past their own resolution by default. Sources whose width differs
// are resized with a Lanczos filter, keeping their aspect ratio.
//
// # Concurrency
//
// Header probing, decoding and resizing run on a bounded worker pool. Each
// decoded source is later copied into its own row range of the strip; those
// ranges never overlap, so no locking is involved. The stacking order always
// follows the input order, never completion order.
//
// # Error Handling
//
// File-system failures are classified at this boundary so callers can branch
// with errors.Is:
//   - ErrNotFound: the path does not exist
//   - ErrPermissionDenied: the path could not be read
//   - ErrExpectedDirectory: discovery was given something other than a directory
//   - ErrNoImagesInDirectory: the directory holds no supported images
//
// Per-source failures are reported as *SourceError. With
// LoadOptions.IgnoreUnloadable set, such sources are dropped and logged
// instead.
package imaging
