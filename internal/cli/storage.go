package cli

import (
	"fmt"

	"github.com/idilsaglam/focustasks/internal/config"
	"github.com/idilsaglam/focustasks/internal/kv"
	"github.com/idilsaglam/focustasks/internal/kv/filekv"
	"github.com/idilsaglam/focustasks/internal/kv/mysqlkv"
)

// openSlot builds the configured backend. The returned func releases it.
func openSlot(cfg config.Config) (kv.Slot, func(), error) {
	noop := func() {}
	switch cfg.Storage.Backend {
	case config.BackendFile:
		s, err := filekv.New(cfg.Storage.Dir)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	case config.BackendMySQL:
		s, err := mysqlkv.Open(mysqlkv.Options{DSN: cfg.Storage.DSN, Table: cfg.Storage.Table})
		if err != nil {
			return nil, noop, fmt.Errorf("mysql: %w", err)
		}
		return s, func() { _ = s.Close() }, nil
	case config.BackendMemory:
		return kv.NewMemory(), noop, nil
	}
	return nil, noop, fmt.Errorf("unknown backend %q", cfg.Storage.Backend)
}
