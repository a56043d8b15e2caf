package mirror

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govault/govault/internal/record"
)

type changeCall struct {
	thing string
	data  map[string]any
}

// fakeConn records calls and returns canned responses.
type fakeConn struct {
	mu        sync.Mutex
	changes   []changeCall
	deletes   []string
	queries   []string
	queryResp any
	err       error
	delay     time.Duration
	closed    bool
}

func (f *fakeConn) Create(thing string, data map[string]any) (any, error) {
	return f.Change(thing, data)
}

func (f *fakeConn) Change(thing string, data map[string]any) (any, error) {
	time.Sleep(f.delay)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.changes = append(f.changes, changeCall{thing: thing, data: data})
	return nil, f.err
}

func (f *fakeConn) Delete(what string) (any, error) {
	time.Sleep(f.delay)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, what)
	return nil, f.err
}

func (f *fakeConn) Query(sql string, vars map[string]any) (any, error) {
	time.Sleep(f.delay)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, sql)
	return f.queryResp, f.err
}

func (f *fakeConn) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMirror(conn *fakeConn) (*Mirror, *int) {
	dials := 0
	m := NewWithDialer(Config{URL: "ws://mirror.test/rpc", Timeout: time.Second},
		func(cfg Config) (Conn, error) {
			dials++
			return conn, nil
		}, testLogger())
	return m, &dials
}

func TestDisabledMirror_NeverDials(t *testing.T) {
	dials := 0
	m := NewWithDialer(Config{}, func(cfg Config) (Conn, error) {
		dials++
		return &fakeConn{}, nil
	}, testLogger())

	assert.False(t, m.Enabled())
	assert.False(t, m.Upsert(record.Record{ID: 1, Name: "a", Value: "b"}))
	assert.False(t, m.Update(1, "a", "b"))
	assert.False(t, m.Remove(1))
	assert.Nil(t, m.Search("a"))
	assert.Equal(t, 0, dials)
}

func TestUpsert_WritesDocument(t *testing.T) {
	conn := &fakeConn{}
	m, _ := testMirror(conn)

	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	ok := m.Upsert(record.Record{ID: 7, Name: "alpha", Value: "first", CreatedAt: created})

	require.True(t, ok)
	require.Len(t, conn.changes, 1)
	assert.Equal(t, "records:7", conn.changes[0].thing)
	assert.Equal(t, int64(7), conn.changes[0].data["record_id"])
	assert.Equal(t, "alpha", conn.changes[0].data["name"])
	assert.Equal(t, "first", conn.changes[0].data["value"])
	assert.Equal(t, "2024-03-01T10:00:00Z", conn.changes[0].data["createdAt"])
}

func TestUpdate_RewritesNameAndValue(t *testing.T) {
	conn := &fakeConn{}
	m, _ := testMirror(conn)

	require.True(t, m.Update(7, "renamed", "newval"))
	require.Len(t, conn.changes, 1)
	assert.Equal(t, "records:7", conn.changes[0].thing)
	assert.Equal(t, map[string]any{"name": "renamed", "value": "newval"}, conn.changes[0].data)
}

func TestRemove_DeletesDocument(t *testing.T) {
	conn := &fakeConn{}
	m, _ := testMirror(conn)

	require.True(t, m.Remove(7))
	assert.Equal(t, []string{"records:7"}, conn.deletes)
}

func TestConnect_LazyAndIdempotent(t *testing.T) {
	conn := &fakeConn{}
	m, dials := testMirror(conn)

	assert.Equal(t, 0, *dials)
	m.Upsert(record.Record{ID: 1, Name: "a", Value: "b"})
	m.Remove(1)
	assert.Equal(t, 1, *dials)
}

func TestDialFailure_Swallowed(t *testing.T) {
	m := NewWithDialer(Config{URL: "ws://mirror.test/rpc"},
		func(cfg Config) (Conn, error) {
			return nil, errors.New("connection refused")
		}, testLogger())

	assert.False(t, m.Upsert(record.Record{ID: 1, Name: "a", Value: "b"}))
	assert.Nil(t, m.Search("a"))
}

func TestOperationFailure_DropsConnection(t *testing.T) {
	conn := &fakeConn{err: errors.New("socket closed")}
	m, dials := testMirror(conn)

	assert.False(t, m.Upsert(record.Record{ID: 1, Name: "a", Value: "b"}))
	assert.True(t, conn.closed)

	// Next operation re-dials instead of reusing the dead connection.
	m.Remove(1)
	assert.Equal(t, 2, *dials)
}

func TestTimeout_CountsAsFailure(t *testing.T) {
	conn := &fakeConn{delay: 200 * time.Millisecond}
	m := NewWithDialer(Config{URL: "ws://mirror.test/rpc", Timeout: 20 * time.Millisecond},
		func(cfg Config) (Conn, error) { return conn, nil },
		testLogger())

	start := time.Now()
	ok := m.Upsert(record.Record{ID: 1, Name: "a", Value: "b"})
	assert.False(t, ok)
	assert.Less(t, time.Since(start), 150*time.Millisecond)
}

func TestSearch_DecodesMatches(t *testing.T) {
	conn := &fakeConn{
		queryResp: []any{
			map[string]any{
				"status": "OK",
				"time":   "31.5µs",
				"result": []any{
					map[string]any{
						"record_id": 7,
						"name":      "alpha",
						"value":     "first",
						"createdAt": "2024-03-01T10:00:00Z",
					},
				},
			},
		},
	}
	m, _ := testMirror(conn)

	got := m.Search("alp")
	require.Len(t, got, 1)
	assert.Equal(t, record.Record{
		ID:        7,
		Name:      "alpha",
		Value:     "first",
		CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}, got[0])
}

func TestSearch_LowercasesKeyword(t *testing.T) {
	conn := &fakeConn{queryResp: []any{}}
	m, _ := testMirror(conn)

	m.Search("AlPhA")
	require.Len(t, conn.queries, 1)
}

func TestSearch_NoMatchesIsNil(t *testing.T) {
	conn := &fakeConn{
		queryResp: []any{
			map[string]any{"status": "OK", "time": "1µs", "result": []any{}},
		},
	}
	m, _ := testMirror(conn)

	assert.Nil(t, m.Search("nothing"))
}

func TestSearch_MalformedResponseIsNil(t *testing.T) {
	conn := &fakeConn{queryResp: "garbage"}
	m, _ := testMirror(conn)

	assert.Nil(t, m.Search("a"))
}
