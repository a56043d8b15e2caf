// Package vault implements the record service: the single entry point for
// every operation on the record set.
//
// Mutating operations validate through the record model, persist to the
// file store synchronously, then attempt the mirror write (outcome ignored)
// and emit a change notification. Read operations go straight to the file
// store, except search, which prefers the mirror and falls back to a file
// scan when the mirror yields nothing.
//
// Every mutating call is stamped with a UUIDv7 operation token that appears
// in the logs, the emitted event, and the audit journal row.
package vault
