// Package config loads runtime settings from the environment, with an
// optional .env file for local runs.
package config

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"golang.org/x/xerrors"

	"givegate/ledger"
)

// Config carries everything needed to open a ledger outside of tests.
type Config struct {
	// Owner is the governing account; owner-only operations check
	// against it.
	Owner string
	// FeeBps seeds the protocol fee on a fresh store.
	FeeBps int64
	// Tiers optionally overrides the default tier table on a fresh
	// store, as a JSON array of four tier rows.
	Tiers *ledger.TierTable
	// StateDir is where the badger store lives.
	StateDir string
	// Debug switches logging to human-readable console output.
	Debug bool
}

// Load reads the environment. A missing .env file is fine.
func Load() (Config, error) {
	_ = godotenv.Load(".env", ".env.local")

	c := Config{
		Owner:    getenv("GIVEGATE_OWNER", ""),
		StateDir: getenv("GIVEGATE_STATE_DIR", "./givegate-state"),
		Debug:    getenv("GIVEGATE_DEBUG", "") == "true",
	}
	feeStr := getenv("GIVEGATE_FEE_BPS", "250")
	fee, err := strconv.ParseInt(feeStr, 10, 64)
	if err != nil {
		return Config{}, xerrors.Errorf("parsing GIVEGATE_FEE_BPS %q: %w", feeStr, err)
	}
	c.FeeBps = fee
	if tiersStr := os.Getenv("GIVEGATE_TIERS"); tiersStr != "" {
		var tiers ledger.TierTable
		if err := json.Unmarshal([]byte(tiersStr), &tiers); err != nil {
			return Config{}, xerrors.Errorf("parsing GIVEGATE_TIERS: %w", err)
		}
		c.Tiers = &tiers
	}
	if c.Owner == "" {
		return Config{}, xerrors.New("GIVEGATE_OWNER is required")
	}
	return c, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
