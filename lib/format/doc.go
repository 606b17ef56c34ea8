// Package format implements the format registry: the process-wide,
// read-only mapping from a document Type name to the descriptor of its
// on-disk root shape.
//
// A Type (e.g. "News", "MarketProduct") maps to exactly one JSON file
// shape, declared by a Descriptor: either the file root is a bare array
// of items, or it is an object wrapping a named array field. Descriptors
// live as small JSON files (F_<Type>.json) under a formats directory and
// are loaded once at startup; the registry never changes afterwards,
// which makes it safe to share between any number of concurrent
// operations without locking.
//
// Descriptor files are parsed with hujson so that hand-edited files may
// carry comments and trailing commas. A descriptor that cannot be parsed,
// or that violates the shape invariant (object root without an array
// key), fails startup rather than producing undefined behavior later.
//
// The package also provisions the built-in default descriptors on first
// start (see DefaultDescriptors); existing files are never overwritten.
package format
