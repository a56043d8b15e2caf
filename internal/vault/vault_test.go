package vault

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govault/govault/internal/events"
	"github.com/govault/govault/internal/filestore"
	"github.com/govault/govault/internal/mirror"
	"github.com/govault/govault/internal/record"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testVault builds a vault on a temp store with a disabled mirror.
func testVault(t *testing.T) (*Vault, *filestore.Store, *events.Notifier) {
	t.Helper()
	store := filestore.New(filepath.Join(t.TempDir(), "vault.json"))
	n := events.New(testLogger())
	v := New(store, mirror.New(mirror.Config{}, testLogger()), n, testLogger())
	return v, store, n
}

func TestAdd_CreatesRecord(t *testing.T) {
	v, store, _ := testVault(t)

	rec, err := v.Add("alpha", "first")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.ID)
	assert.Equal(t, "alpha", rec.Name)
	assert.Equal(t, "first", rec.Value)
	assert.False(t, rec.CreatedAt.IsZero())

	got, err := store.ReadAll()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec.ID, got[0].ID)
	assert.Equal(t, rec.Name, got[0].Name)
	assert.Equal(t, rec.Value, got[0].Value)
	assert.True(t, rec.CreatedAt.Equal(got[0].CreatedAt))
}

func TestAdd_IDsUniqueAndIncreasing(t *testing.T) {
	v, _, _ := testVault(t)

	seen := map[int64]bool{}
	prev := int64(0)
	for i := 0; i < 20; i++ {
		rec, err := v.Add("name", "value")
		require.NoError(t, err)
		assert.False(t, seen[rec.ID], "duplicate id %d", rec.ID)
		assert.Greater(t, rec.ID, prev)
		seen[rec.ID] = true
		prev = rec.ID
	}

	records, err := v.List()
	require.NoError(t, err)
	assert.Len(t, records, 20)
}

func TestAdd_SequenceSurvivesRestart(t *testing.T) {
	v, store, _ := testVault(t)

	rec, err := v.Add("alpha", "first")
	require.NoError(t, err)
	_, _, err = v.Delete(rec.ID)
	require.NoError(t, err)

	// A fresh vault over the same (now empty) store must not reissue the ID.
	v2 := New(store, mirror.New(mirror.Config{}, testLogger()), events.New(testLogger()), testLogger())
	rec2, err := v2.Add("beta", "second")
	require.NoError(t, err)
	assert.Greater(t, rec2.ID, rec.ID)
}

func TestAdd_ContinuesPastLegacyIDs(t *testing.T) {
	v, store, _ := testVault(t)

	legacy := record.Record{ID: 1700000000000, Name: "old", Value: "data"}
	require.NoError(t, store.WriteAll([]record.Record{legacy}))

	rec, err := v.Add("new", "data")
	require.NoError(t, err)
	assert.Greater(t, rec.ID, legacy.ID)
}

func TestAdd_EmptyFieldsRejected(t *testing.T) {
	v, store, _ := testVault(t)

	_, err := v.Add("", "x")
	assert.True(t, record.IsValidationError(err))

	_, err = v.Add("x", "")
	assert.True(t, record.IsValidationError(err))

	got, err := store.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, got, "failed adds must not touch the store")
}

func TestAdd_AppendsToExistingSet(t *testing.T) {
	v, _, _ := testVault(t)

	first, err := v.Add("alpha", "first")
	require.NoError(t, err)
	second, err := v.Add("beta", "second")
	require.NoError(t, err)

	records, err := v.List()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, first.ID, records[0].ID)
	assert.Equal(t, second.ID, records[1].ID)
}

func TestUpdate_RewritesFields(t *testing.T) {
	v, _, _ := testVault(t)

	rec, err := v.Add("alpha", "first")
	require.NoError(t, err)

	updated, found, err := v.Update(rec.ID, "renamed", "changed")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, rec.ID, updated.ID)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, "changed", updated.Value)
	assert.True(t, rec.CreatedAt.Equal(updated.CreatedAt), "createdAt is immutable")

	records, err := v.List()
	require.NoError(t, err)
	assert.Equal(t, []record.Record{updated}, records)
}

func TestUpdate_MissingIDLeavesStoreUnchanged(t *testing.T) {
	v, _, _ := testVault(t)

	rec, err := v.Add("alpha", "first")
	require.NoError(t, err)

	_, found, err := v.Update(rec.ID+100, "a", "b")
	require.NoError(t, err)
	assert.False(t, found)

	records, err := v.List()
	require.NoError(t, err)
	assert.Equal(t, []record.Record{rec}, records)
}

func TestUpdate_EmptyFieldsRejected(t *testing.T) {
	v, _, _ := testVault(t)

	rec, err := v.Add("alpha", "first")
	require.NoError(t, err)

	_, _, err = v.Update(rec.ID, "", "x")
	assert.True(t, record.IsValidationError(err))

	records, err := v.List()
	require.NoError(t, err)
	assert.Equal(t, []record.Record{rec}, records)
}

func TestDelete_RemovesExactlyOnce(t *testing.T) {
	v, _, _ := testVault(t)

	a, err := v.Add("alpha", "first")
	require.NoError(t, err)
	b, err := v.Add("beta", "second")
	require.NoError(t, err)

	removed, found, err := v.Delete(a.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, a, removed, "delete returns the pre-deletion value")

	records, err := v.List()
	require.NoError(t, err)
	assert.Equal(t, []record.Record{b}, records)

	_, found, err = v.Delete(a.ID)
	require.NoError(t, err)
	assert.False(t, found, "second delete finds nothing")
}

func TestList_EmptyStore(t *testing.T) {
	v, _, _ := testVault(t)

	records, err := v.List()
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestMutations_EmitEvents(t *testing.T) {
	v, _, n := testVault(t)

	var got []events.ChangeEvent
	for _, name := range []string{events.RecordAdded, events.RecordUpdated, events.RecordDeleted} {
		n.Subscribe(name, func(ev events.ChangeEvent) { got = append(got, ev) })
	}

	rec, err := v.Add("alpha", "first")
	require.NoError(t, err)
	_, _, err = v.Update(rec.ID, "beta", "second")
	require.NoError(t, err)
	_, _, err = v.Delete(rec.ID)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, events.RecordAdded, got[0].Op)
	assert.Equal(t, events.RecordUpdated, got[1].Op)
	assert.Equal(t, events.RecordDeleted, got[2].Op)
	for _, ev := range got {
		assert.Equal(t, rec.ID, ev.Record.ID)
		assert.NotEmpty(t, ev.OpToken)
		assert.False(t, ev.At.IsZero())
	}
	assert.NotEqual(t, got[0].OpToken, got[1].OpToken, "each operation gets its own token")
}

func TestFailedMutations_EmitNothing(t *testing.T) {
	v, _, n := testVault(t)

	fired := 0
	for _, name := range []string{events.RecordAdded, events.RecordUpdated, events.RecordDeleted} {
		n.Subscribe(name, func(ev events.ChangeEvent) { fired++ })
	}

	_, err := v.Add("", "x")
	require.Error(t, err)
	_, found, err := v.Update(99, "a", "b")
	require.NoError(t, err)
	require.False(t, found)
	_, found, err = v.Delete(99)
	require.NoError(t, err)
	require.False(t, found)

	assert.Equal(t, 0, fired)
}

func TestMutations_MirrorFailureNeverSurfaces(t *testing.T) {
	// A mirror whose dialer always fails: every operation must behave
	// exactly as with no mirror at all.
	store := filestore.New(filepath.Join(t.TempDir(), "vault.json"))
	m := mirror.NewWithDialer(
		mirror.Config{URL: "ws://unreachable.test/rpc", Timeout: 50 * time.Millisecond},
		func(cfg mirror.Config) (mirror.Conn, error) {
			return nil, assert.AnError
		}, testLogger())
	v := New(store, m, events.New(testLogger()), testLogger())

	rec, err := v.Add("alpha", "first")
	require.NoError(t, err)
	_, found, err := v.Update(rec.ID, "beta", "second")
	require.NoError(t, err)
	assert.True(t, found)
	_, found, err = v.Delete(rec.ID)
	require.NoError(t, err)
	assert.True(t, found)
}
