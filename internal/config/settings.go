package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Settings are runtime options for the CLI and TUI
type Settings struct {
	Store  StoreSettings  `mapstructure:"store"`
	Ledger LedgerSettings `mapstructure:"ledger"`
	Debug  bool           `mapstructure:"debug"`
}

// StoreSettings select the wizard state backend
type StoreSettings struct {
	Backend   string `mapstructure:"backend"` // memory, file or redis
	Path      string `mapstructure:"path"`
	RedisAddr string `mapstructure:"redis_addr"`
}

// LedgerSettings locate the SQLite audit/submission ledger. An empty path
// disables the ledger.
type LedgerSettings struct {
	Path string `mapstructure:"path"`
}

// LoadSettings reads settings from path (optional) with VIAGER_* environment
// overrides, e.g. VIAGER_STORE_BACKEND=redis.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("store.backend", "file")
	v.SetDefault("store.path", ".viager/state.yaml")
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("ledger.path", ".viager/ledger.db")
	v.SetDefault("debug", false)

	v.SetEnvPrefix("VIAGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading settings file failed (%s): %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("parsing settings failed: %w", err)
	}
	if err := validateSettings(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func validateSettings(s *Settings) error {
	s.Store.Backend = strings.ToLower(strings.TrimSpace(s.Store.Backend))
	switch s.Store.Backend {
	case "memory":
	case "file":
		if s.Store.Path == "" {
			return fmt.Errorf("store.path is required for the file backend")
		}
	case "redis":
		if s.Store.RedisAddr == "" {
			return fmt.Errorf("store.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("store.backend must be 'memory', 'file' or 'redis'")
	}
	return nil
}
