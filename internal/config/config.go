// Package config holds the debug CLI's externally-supplied inputs: the
// two values the core itself needs (GameVersion, ProtocolNumber) plus
// the debug-tool options the core has no opinion about (fixture path,
// cache DSN). Loaded from flags with optional .env overrides layered
// under them.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the debug CLI's resolved configuration.
type Config struct {
	GameVersion    string
	ProtocolNumber int
	FixturePath    string
	CacheDSN       string
}

// Default values used when neither a flag nor an environment variable
// supplies one.
const (
	DefaultCacheDSN = "protoir-snapshots.db"
)

// Load reads PROTOIR_* environment variables, optionally after loading
// a local .env file (ignored if absent), as defaults for any field the
// caller leaves zero-valued — flags set by the CLI layer always win,
// since Load is called before flag values are applied over it.
func Load() (Config, error) {
	_ = godotenv.Load() // .env is optional; a missing file is not an error

	cfg := Config{
		GameVersion: os.Getenv("PROTOIR_GAME_VERSION"),
		CacheDSN:    os.Getenv("PROTOIR_CACHE_DSN"),
		FixturePath: os.Getenv("PROTOIR_FIXTURE_PATH"),
	}
	if cfg.CacheDSN == "" {
		cfg.CacheDSN = DefaultCacheDSN
	}

	if raw := os.Getenv("PROTOIR_PROTOCOL_NUMBER"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: PROTOIR_PROTOCOL_NUMBER=%q: %w", raw, err)
		}
		cfg.ProtocolNumber = n
	}

	return cfg, nil
}
