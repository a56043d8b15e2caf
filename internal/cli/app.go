package cli

import (
	"log/slog"

	"github.com/govault/govault/internal/audit"
	"github.com/govault/govault/internal/events"
	"github.com/govault/govault/internal/filestore"
	"github.com/govault/govault/internal/mirror"
	"github.com/govault/govault/internal/vault"
)

// openVault wires the full stack for one command invocation: config, file
// store, mirror, notifier with its observers, and the service. The returned
// cleanup closes the mirror connection and the audit journal.
//
// An unreachable mirror or an unopenable audit journal never blocks the
// command; both degrade to the file store with a warning.
func openVault(opts *RootOptions) (*vault.Vault, func(), error) {
	logger := slog.Default()

	cfg, err := LoadConfig(opts.ConfigPath, opts.ConfigExplicit)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.StorePath != "" {
		cfg.StorePath = opts.StorePath
	}
	if opts.MirrorURL != "" {
		cfg.Mirror.URL = opts.MirrorURL
	}

	store := filestore.New(cfg.StorePath)
	m := mirror.New(cfg.MirrorConfig(), logger)

	notifier := events.New(logger)
	subscribeAll(notifier, events.LogObserver(logger))

	cleanup := m.Close
	if cfg.AuditPath != "" {
		journal, err := audit.Open(cfg.AuditPath, logger)
		if err != nil {
			logger.Warn("audit journal unavailable, continuing without it",
				"path", cfg.AuditPath, "error", err)
		} else {
			subscribeAll(notifier, journal.Observer())
			cleanup = func() {
				m.Close()
				if err := journal.Close(); err != nil {
					logger.Error("error closing audit journal", "error", err)
				}
			}
		}
	}

	return vault.New(store, m, notifier, logger), cleanup, nil
}

// subscribeAll registers a handler for every change event name.
func subscribeAll(n *events.Notifier, h events.Handler) {
	for _, name := range []string{events.RecordAdded, events.RecordUpdated, events.RecordDeleted} {
		n.Subscribe(name, h)
	}
}
