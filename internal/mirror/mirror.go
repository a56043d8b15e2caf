// Package mirror maintains a best-effort replica of the record set in an
// external document store (SurrealDB).
//
// The mirror is never authoritative. Connection establishment is lazy and
// idempotent, every operation is bounded by a timeout, and every failure is
// swallowed: operations report a neutral negative result (false, nil, empty)
// and the caller proceeds on the primary store alone. Failures are visible
// only in the logs.
package mirror

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/marshal"

	"github.com/govault/govault/internal/record"
)

// table is the document-store table holding mirrored records.
const table = "records"

// DefaultTimeout bounds each mirror operation, dial included.
const DefaultTimeout = 2 * time.Second

// Config holds the mirror connection settings.
type Config struct {
	// URL is the SurrealDB endpoint (e.g. ws://localhost:8000/rpc).
	// Empty disables the mirror entirely.
	URL string

	// Namespace and Database select the target, defaulting to
	// govault/vault.
	Namespace string
	Database  string

	// Timeout bounds each operation; expiry counts as failure.
	Timeout time.Duration
}

// Mirror replicates record changes into the document store and serves
// keyword search from it.
type Mirror struct {
	cfg    Config
	dial   Dialer
	logger *slog.Logger

	mu   sync.Mutex
	conn Conn
}

// New creates a mirror for the given config. An empty URL yields a disabled
// mirror whose operations all return neutral failure immediately.
func New(cfg Config, logger *slog.Logger) *Mirror {
	return NewWithDialer(cfg, surrealDial, logger)
}

// NewWithDialer creates a mirror with a custom dialer. Used by tests to
// substitute a fake connection.
func NewWithDialer(cfg Config, dial Dialer, logger *slog.Logger) *Mirror {
	if cfg.Namespace == "" {
		cfg.Namespace = "govault"
	}
	if cfg.Database == "" {
		cfg.Database = "vault"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Mirror{cfg: cfg, dial: dial, logger: logger}
}

// Enabled reports whether the mirror has an endpoint configured.
func (m *Mirror) Enabled() bool {
	return m.cfg.URL != ""
}

// Upsert writes a record into the mirror, replacing any prior version.
// Returns false on any failure.
func (m *Mirror) Upsert(rec record.Record) bool {
	_, ok := m.call("upsert", func(c Conn) (any, error) {
		return c.Change(thing(rec.ID), map[string]any{
			"record_id": rec.ID,
			"name":      rec.Name,
			"value":     rec.Value,
			"createdAt": rec.CreatedAt.UTC().Format(time.RFC3339),
		})
	})
	return ok
}

// Update rewrites name and value on a mirrored record.
// Returns false on any failure.
func (m *Mirror) Update(id int64, name, value string) bool {
	_, ok := m.call("update", func(c Conn) (any, error) {
		return c.Change(thing(id), map[string]any{
			"name":  name,
			"value": value,
		})
	})
	return ok
}

// Remove deletes a record from the mirror.
// Returns false on any failure.
func (m *Mirror) Remove(id int64) bool {
	_, ok := m.call("remove", func(c Conn) (any, error) {
		return c.Delete(thing(id))
	})
	return ok
}

// searchQuery matches the keyword case-insensitively against name and
// value, and as a substring of the decimal form of the record ID.
const searchQuery = `SELECT record_id, name, value, createdAt FROM records ` +
	`WHERE string::lowercase(name) CONTAINS $kw ` +
	`OR string::lowercase(value) CONTAINS $kw ` +
	`OR <string> record_id CONTAINS $kw`

// storedRecord is the mirrored document shape.
type storedRecord struct {
	RecordID  int64  `json:"record_id"`
	Name      string `json:"name"`
	Value     string `json:"value"`
	CreatedAt string `json:"createdAt"`
}

// Search queries the mirror for records matching keyword.
// Returns nil on failure or when nothing matches; the caller cannot
// distinguish the two and falls back to the primary store either way.
func (m *Mirror) Search(keyword string) []record.Record {
	raw, ok := m.call("search", func(c Conn) (any, error) {
		return c.Query(searchQuery, map[string]any{
			"kw": strings.ToLower(keyword),
		})
	})
	if !ok {
		return nil
	}

	var resp []marshal.RawQuery[[]storedRecord]
	if err := marshal.UnmarshalRaw(raw, &resp); err != nil {
		m.logger.Debug("mirror search decode failed", "error", err)
		return nil
	}
	if len(resp) == 0 || resp[0].Status != marshal.StatusOK {
		return nil
	}

	records := make([]record.Record, 0, len(resp[0].Result))
	for _, sr := range resp[0].Result {
		createdAt, err := time.Parse(time.RFC3339, sr.CreatedAt)
		if err != nil {
			createdAt = time.Time{}
		}
		records = append(records, record.Record{
			ID:        sr.RecordID,
			Name:      sr.Name,
			Value:     sr.Value,
			CreatedAt: createdAt,
		})
	}
	if len(records) == 0 {
		return nil
	}
	return records
}

// Close tears down the connection if one was established.
func (m *Mirror) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
}

// thing addresses a mirrored record by ID.
func thing(id int64) string {
	return fmt.Sprintf("%s:%d", table, id)
}

// connect establishes the connection on first use. Subsequent calls reuse
// it. Dial failures are swallowed like every other mirror failure.
func (m *Mirror) connect() (Conn, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conn != nil {
		return m.conn, true
	}

	conn, err := m.bounded("connect", func() (any, error) {
		c, err := m.dial(m.cfg)
		return c, err
	})
	if err != nil {
		m.logger.Warn("mirror unavailable, continuing on file store", "url", m.cfg.URL, "error", err)
		return nil, false
	}
	m.conn = conn.(Conn)
	m.logger.Debug("mirror connected", "url", m.cfg.URL)
	return m.conn, true
}

// call runs one mirror operation against the lazily established connection,
// converting every failure (dial error, query error, panic, timeout) into a
// neutral negative result.
func (m *Mirror) call(op string, fn func(Conn) (any, error)) (any, bool) {
	if !m.Enabled() {
		return nil, false
	}
	conn, ok := m.connect()
	if !ok {
		return nil, false
	}

	v, err := m.bounded(op, func() (any, error) {
		return fn(conn)
	})
	if err != nil {
		m.logger.Debug("mirror operation failed", "op", op, "error", err)
		m.drop(conn)
		return nil, false
	}
	return v, true
}

// bounded runs fn with the configured timeout, recovering panics from the
// underlying client. Expiry counts as failure; the abandoned goroutine is
// left to finish against the dropped connection.
func (m *Mirror) bounded(op string, fn func() (any, error)) (any, error) {
	type result struct {
		v   any
		err error
	}
	ch := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- result{err: fmt.Errorf("%s panicked: %v", op, r)}
			}
		}()
		v, err := fn()
		ch <- result{v: v, err: err}
	}()

	select {
	case res := <-ch:
		return res.v, res.err
	case <-time.After(m.cfg.Timeout):
		return nil, fmt.Errorf("%s timed out after %s", op, m.cfg.Timeout)
	}
}

// drop discards a connection after a failed operation so the next call
// re-dials instead of reusing a likely-dead socket.
func (m *Mirror) drop(conn Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conn == conn {
		m.conn.Close()
		m.conn = nil
	}
}
