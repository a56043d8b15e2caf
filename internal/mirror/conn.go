package mirror

import (
	surrealdb "github.com/surrealdb/surrealdb.go"
)

// Conn is the document-store surface the mirror drives.
// It matches the surrealdb client; tests substitute a fake.
type Conn interface {
	Create(thing string, data map[string]any) (any, error)
	Change(thing string, data map[string]any) (any, error)
	Delete(what string) (any, error)
	Query(sql string, vars map[string]any) (any, error)
	Close()
}

// Dialer establishes a connection to the document store.
type Dialer func(cfg Config) (Conn, error)

// surrealDial connects to a SurrealDB endpoint and selects the configured
// namespace and database.
func surrealDial(cfg Config) (Conn, error) {
	db, err := surrealdb.New(cfg.URL)
	if err != nil {
		return nil, err
	}
	if _, err := db.Use(cfg.Namespace, cfg.Database); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
