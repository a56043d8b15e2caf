package filestore

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/govault/govault/internal/record"
)

// Snapshot is the on-disk representation of the full record set.
type Snapshot struct {
	// NextID is the next ID the record sequence will issue.
	NextID int64 `json:"next_id"`

	// Records is the complete record set, in insertion order.
	Records []record.Record `json:"records"`
}

// Store reads and writes the record snapshot file.
//
// Store holds no state beyond the path: every Read hits the filesystem and
// every Write replaces the whole file.
type Store struct {
	path string
}

// New creates a store for the snapshot file at path.
// The file is not created until the first Write.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// Read returns the current snapshot.
// A missing file is an empty snapshot, not an error.
func (s *Store) Read() (Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Snapshot{Records: []record.Record{}}, nil
	}
	if err != nil {
		return Snapshot{}, &StorageError{Code: ErrCodeReadFailed, Path: s.path, Err: err}
	}

	snap, err := decodeSnapshot(data)
	if err != nil {
		return Snapshot{}, &StorageError{Code: ErrCodeDecodeFailed, Path: s.path, Err: err}
	}
	return snap, nil
}

// ReadAll returns all records in insertion order.
// Returns an empty slice (not nil) if no data exists yet.
func (s *Store) ReadAll() ([]record.Record, error) {
	snap, err := s.Read()
	if err != nil {
		return nil, err
	}
	return snap.Records, nil
}

// Write atomically replaces the stored snapshot.
//
// The snapshot is serialized to a temp file in the same directory and
// renamed over the store file, so a failure at any point leaves the prior
// state in place.
func (s *Store) Write(snap Snapshot) error {
	if snap.Records == nil {
		snap.Records = []record.Record{}
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return &StorageError{Code: ErrCodeWriteFailed, Path: s.path, Err: err}
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		f.Close()
		os.Remove(tmp)
		return &StorageError{Code: ErrCodeWriteFailed, Path: s.path, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return &StorageError{Code: ErrCodeWriteFailed, Path: s.path, Err: err}
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return &StorageError{Code: ErrCodeWriteFailed, Path: s.path, Err: err}
	}
	return nil
}

// WriteAll atomically replaces the record set, preserving the persisted
// sequence position (raised to cover the written IDs if behind).
func (s *Store) WriteAll(records []record.Record) error {
	snap, err := s.Read()
	if err != nil {
		return err
	}
	snap.Records = records
	if max := record.MaxID(records); max >= snap.NextID {
		snap.NextID = max + 1
	}
	return s.Write(snap)
}

// decodeSnapshot parses a snapshot file. Files written before the next_id
// header existed hold a bare JSON array of records; those still load, with
// the sequence position inferred from the largest ID.
func decodeSnapshot(data []byte) (Snapshot, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []record.Record
		if err := json.Unmarshal(data, &records); err != nil {
			return Snapshot{}, err
		}
		return Snapshot{NextID: record.MaxID(records) + 1, Records: records}, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, err
	}
	if snap.Records == nil {
		snap.Records = []record.Record{}
	}
	return snap, nil
}
