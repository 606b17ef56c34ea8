// Package docstore defines the format-driven document engine: the
// document tree backing one flat JSON file, the shallow merge used to
// build and update items, integer id lookup and allocation, and the
// IDocStore interface with its unified error taxonomy.
//
// The package focuses on:
//   - A unified interface (IDocStore) for the four document operations
//     (create, read, update, delete) against a named file of a Type
//   - Root-shape handling per format descriptor: resolving the target
//     array inside a bare-array or object-wrapped document, including
//     the repair policy for mutating operations
//   - Structured error reporting through typed return codes that map
//     onto the request/response status classification
//
// Key Components:
//
//   - Document: the parsed JSON tree of one file, valid for a single
//     operation. Documents are re-read from disk per operation and never
//     cached, so the filesystem stays the single source of truth.
//
//   - Merge: shallow last-write-wins combination of two flat JSON
//     objects. Creates merge surface and main content; updates layer
//     surface and main over the existing item and then force the id
//     back to the target, so an update payload can never change item
//     identity.
//
//   - Error System: every failure carries a RetCode (client error, not
//     found, corrupt document, IO failure) so callers can classify
//     without string matching.
//
// Implementations:
//
//	The file-backed implementation lives in the fstore subpackage; the
//	rpc/client package provides a remote implementation of the same
//	interface over the RPC transports.
package docstore
