package filler

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the filler's runtime configuration, loaded from the
// environment (optionally via a .env file). A standalone, stateless
// filler process has no chain home directory to read config from, so
// environment variables are the whole story.
type Config struct {
	Markets      []uint16
	ScanInterval time.Duration
	MetricsAddr  string
	LogLevel     string
	BatchSize    int
}

// DefaultConfig returns the filler's default configuration.
func DefaultConfig() *Config {
	return &Config{
		Markets:      []uint16{0},
		ScanInterval: 400 * time.Millisecond,
		MetricsAddr:  ":9090",
		LogLevel:     "info",
		BatchSize:    100,
	}
}

// LoadConfig loads a .env file if present (missing is not an error, since
// the environment may already be populated by the process supervisor) and
// overlays environment variables onto DefaultConfig.
func LoadConfig(envPath string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading env file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if v := os.Getenv("DLOBFILLER_MARKETS"); v != "" {
		markets, err := parseMarkets(v)
		if err != nil {
			return nil, err
		}
		cfg.Markets = markets
	}

	if v := os.Getenv("DLOBFILLER_SCAN_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parsing DLOBFILLER_SCAN_INTERVAL: %w", err)
		}
		cfg.ScanInterval = d
	}

	if v := os.Getenv("DLOBFILLER_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}

	if v := os.Getenv("DLOBFILLER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("DLOBFILLER_BATCH_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parsing DLOBFILLER_BATCH_SIZE: %w", err)
		}
		cfg.BatchSize = n
	}

	return cfg, nil
}

func parseMarkets(v string) ([]uint16, error) {
	parts := strings.Split(v, ",")
	out := make([]uint16, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("parsing market index %q: %w", p, err)
		}
		out = append(out, uint16(n))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("DLOBFILLER_MARKETS must list at least one market index")
	}
	return out, nil
}
