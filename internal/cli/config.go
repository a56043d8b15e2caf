package cli

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/govault/govault/internal/mirror"
)

// DefaultStorePath is used when neither config file nor flag names one.
const DefaultStorePath = "vault.json"

// Config is the on-disk configuration.
//
// All fields are optional. Without a config file the vault runs on the
// default store path with the mirror and audit journal disabled.
type Config struct {
	StorePath string     `yaml:"store_path"`
	AuditPath string     `yaml:"audit_path"`
	Mirror    mirrorYAML `yaml:"mirror"`
}

// mirrorYAML is the mirror section; timeout is a Go duration string.
type mirrorYAML struct {
	URL       string `yaml:"url"`
	Namespace string `yaml:"namespace"`
	Database  string `yaml:"database"`
	Timeout   string `yaml:"timeout"`
}

// MirrorConfig converts the mirror section to a mirror.Config.
// An unparseable timeout falls back to the mirror default.
func (c Config) MirrorConfig() mirror.Config {
	cfg := mirror.Config{
		URL:       c.Mirror.URL,
		Namespace: c.Mirror.Namespace,
		Database:  c.Mirror.Database,
	}
	if c.Mirror.Timeout != "" {
		if d, err := time.ParseDuration(c.Mirror.Timeout); err == nil {
			cfg.Timeout = d
		}
	}
	return cfg
}

// LoadConfig reads the config file at path.
//
// When required is false (the path was a default, not user-supplied), a
// missing file yields the zero config with default store path.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := Config{StorePath: DefaultStorePath}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !required {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.StorePath == "" {
		cfg.StorePath = DefaultStorePath
	}
	return cfg, nil
}
