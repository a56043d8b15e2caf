// Package filestore provides the authoritative flat-file storage for the
// full record set.
//
// The store is a single JSON snapshot on disk. Every operation reads fresh
// from disk (no in-memory cache), so external modification between calls is
// visible. Writes are atomic: the snapshot is written to a temp file and
// renamed over the original, so a failed write leaves the prior state
// untouched.
//
// The snapshot carries a next_id header alongside the records; it is the
// persisted position of the ID sequence. Legacy files holding a bare JSON
// array of records (no header) still load.
package filestore
