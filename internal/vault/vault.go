package vault

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/govault/govault/internal/events"
	"github.com/govault/govault/internal/filestore"
	"github.com/govault/govault/internal/mirror"
	"github.com/govault/govault/internal/record"
)

// Vault orchestrates the file store, the mirror, and the notifier.
type Vault struct {
	store    *filestore.Store
	mirror   *mirror.Mirror
	notifier *events.Notifier
	seq      *record.Sequence
	logger   *slog.Logger

	// now and newToken are swappable for deterministic tests.
	now      func() time.Time
	newToken func() string
}

// New creates a vault over the given collaborators.
func New(store *filestore.Store, m *mirror.Mirror, n *events.Notifier, logger *slog.Logger) *Vault {
	if logger == nil {
		logger = slog.Default()
	}
	return &Vault{
		store:    store,
		mirror:   m,
		notifier: n,
		seq:      record.NewSequenceAt(0),
		logger:   logger,
		now:      time.Now,
		newToken: newOpToken,
	}
}

// newOpToken generates a UUIDv7 operation token.
// Time-ordered, so tokens sort by operation time in logs and the journal.
func newOpToken() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Add validates and creates a record, persists the grown set, mirrors the
// new record best-effort, and emits recordAdded.
// Fails with *record.ValidationError if name or value is empty; nothing is
// written in that case.
func (v *Vault) Add(name, value string) (record.Record, error) {
	if err := record.Validate(name, value); err != nil {
		return record.Record{}, err
	}

	snap, err := v.store.Read()
	if err != nil {
		return record.Record{}, err
	}

	// Reconcile the sequence with the persisted counter and any IDs
	// already in the store (legacy files carry timestamp-derived IDs).
	v.seq.Observe(snap.NextID - 1)
	v.seq.Observe(record.MaxID(snap.Records))

	now := v.now().UTC()
	rec := record.Record{
		ID:        v.seq.Next(),
		Name:      name,
		Value:     value,
		CreatedAt: now,
	}
	snap.Records = append(snap.Records, rec)
	snap.NextID = v.seq.Current() + 1

	if err := v.store.Write(snap); err != nil {
		return record.Record{}, err
	}

	token := v.newToken()
	v.logger.Debug("record added", "op_token", token, "id", rec.ID, "name", rec.Name)
	v.mirror.Upsert(rec)
	v.notifier.Emit(events.ChangeEvent{Op: events.RecordAdded, OpToken: token, Record: rec, At: now})
	return rec, nil
}

// List returns all records in insertion order.
func (v *Vault) List() ([]record.Record, error) {
	return v.store.ReadAll()
}

// Update rewrites name and value on an existing record. ID and CreatedAt
// are immutable. Returns found=false (no error) when the ID is absent.
//
// Unlike the system this replaces, updates re-run the same non-empty
// validation as Add, so a persisted record can never end up with an empty
// field.
func (v *Vault) Update(id int64, name, value string) (record.Record, bool, error) {
	if err := record.Validate(name, value); err != nil {
		return record.Record{}, false, err
	}

	snap, err := v.store.Read()
	if err != nil {
		return record.Record{}, false, err
	}

	idx := indexOf(snap.Records, id)
	if idx < 0 {
		return record.Record{}, false, nil
	}

	snap.Records[idx].Name = name
	snap.Records[idx].Value = value
	rec := snap.Records[idx]

	if err := v.store.Write(snap); err != nil {
		return record.Record{}, false, err
	}

	token := v.newToken()
	v.logger.Debug("record updated", "op_token", token, "id", rec.ID)
	v.mirror.Update(rec.ID, rec.Name, rec.Value)
	v.notifier.Emit(events.ChangeEvent{Op: events.RecordUpdated, OpToken: token, Record: rec, At: v.now()})
	return rec, true, nil
}

// Delete removes a record. Returns the removed record (pre-deletion value)
// and found=false (no error) when the ID is absent.
func (v *Vault) Delete(id int64) (record.Record, bool, error) {
	snap, err := v.store.Read()
	if err != nil {
		return record.Record{}, false, err
	}

	idx := indexOf(snap.Records, id)
	if idx < 0 {
		return record.Record{}, false, nil
	}

	rec := snap.Records[idx]
	snap.Records = append(snap.Records[:idx], snap.Records[idx+1:]...)

	if err := v.store.Write(snap); err != nil {
		return record.Record{}, false, err
	}

	token := v.newToken()
	v.logger.Debug("record deleted", "op_token", token, "id", rec.ID)
	v.mirror.Remove(rec.ID)
	v.notifier.Emit(events.ChangeEvent{Op: events.RecordDeleted, OpToken: token, Record: rec, At: v.now()})
	return rec, true, nil
}

// indexOf returns the position of the record with the given ID, or -1.
func indexOf(records []record.Record, id int64) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
