package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingDefaultIsEmptyConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, DefaultStorePath, cfg.StorePath)
	assert.Empty(t, cfg.Mirror.URL)
	assert.Empty(t, cfg.AuditPath)
}

func TestLoadConfig_MissingExplicitIsError(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), true)
	assert.Error(t, err)
}

func TestLoadConfig_FullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "govault.yaml")
	content := `store_path: /data/vault.json
audit_path: /data/audit.db
mirror:
  url: ws://localhost:8000/rpc
  namespace: prod
  database: records
  timeout: 500ms
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, "/data/vault.json", cfg.StorePath)
	assert.Equal(t, "/data/audit.db", cfg.AuditPath)

	mc := cfg.MirrorConfig()
	assert.Equal(t, "ws://localhost:8000/rpc", mc.URL)
	assert.Equal(t, "prod", mc.Namespace)
	assert.Equal(t, "records", mc.Database)
	assert.Equal(t, 500*time.Millisecond, mc.Timeout)
}

func TestLoadConfig_BadTimeoutFallsBackToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "govault.yaml")
	content := "mirror:\n  url: ws://localhost:8000/rpc\n  timeout: soon\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)
	assert.Zero(t, cfg.MirrorConfig().Timeout, "unparseable timeout left zero for the mirror default")
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "govault.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store_path: [oops"), 0o644))

	_, err := LoadConfig(path, true)
	assert.Error(t, err)
}
