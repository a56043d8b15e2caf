package vault

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/govault/govault/internal/record"
)

// DefaultBackupDir is where Backup writes when no directory is given.
const DefaultBackupDir = "./backups"

// BackupFile is the self-describing JSON snapshot a backup contains.
type BackupFile struct {
	Source    string          `json:"source"`
	Timestamp string          `json:"timestamp"`
	Count     int             `json:"count"`
	Records   []record.Record `json:"records"`
}

// Backup writes a timestamped snapshot of the record set into dir, creating
// the directory if absent. A backup never overwrites a prior one: filenames
// carry a second-granularity timestamp, and a numeric suffix is appended
// when that name is already taken (rapid repeated calls).
//
// Returns the path of the written backup.
func (v *Vault) Backup(dir string) (string, error) {
	if dir == "" {
		dir = DefaultBackupDir
	}

	records, err := v.store.ReadAll()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	now := v.now().UTC()
	payload := BackupFile{
		Source:    "file",
		Timestamp: now.Format(time.RFC3339),
		Count:     len(records),
		Records:   records,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode backup: %w", err)
	}

	stamp := now.Format("2006-01-02T15-04-05")
	path, f, err := createFresh(dir, stamp)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("write backup: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	v.logger.Info("backup written", "path", path, "records", len(records))
	return path, nil
}

// createFresh opens a new backup file with O_EXCL, appending _1, _2, ... to
// the timestamped name until creation succeeds on a name not yet taken.
func createFresh(dir, stamp string) (string, *os.File, error) {
	for n := 0; ; n++ {
		name := fmt.Sprintf("backup_%s.json", stamp)
		if n > 0 {
			name = fmt.Sprintf("backup_%s_%d.json", stamp, n)
		}
		path := filepath.Join(dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return path, f, nil
		}
		if !os.IsExist(err) {
			return "", nil, fmt.Errorf("create backup file: %w", err)
		}
	}
}
