// Package fstore implements the file-backed document store: one JSON
// file per (Type, file reference) pair under a storage root, in the
// root shape declared by the Type's format descriptor.
//
// Implementation Details:
//
//   - Per-operation lifecycle: every operation re-reads its file from
//     disk, mutates the parsed tree and writes the whole document back.
//     Nothing is cached across requests, so the file on disk is always
//     the source of truth.
//
//   - Shape policy: create and update repair a wrong root shape by
//     re-initializing to the format's empty shape; read and delete
//     report the mismatch as a corrupt-document error instead, so
//     non-mutating paths never write.
//
//   - Durability: persist is a plain truncate-and-write without an
//     atomic rename or backup. A crash mid-write leaves the file in an
//     undefined state; this is a documented limitation, not a handled
//     case. Concurrent writers to the same file from independent
//     processes race at the filesystem level.
package fstore
