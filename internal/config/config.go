package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"alphaview/internal/model"
)

// DefaultRelays are public CORS forwarders. All of them are untrusted and
// any of them may be down at any time; order is preference order.
var DefaultRelays = []string{
	"https://corsproxy.io/?",
	"https://api.allorigins.win/raw?url=",
	"https://api.codetabs.com/v1/proxy?quest=",
}

// Config holds all application configuration.
type Config struct {
	Relay struct {
		Endpoints      []string `yaml:"endpoints"`
		TimeoutSeconds int      `yaml:"timeout_seconds"`
		Sweeps         int      `yaml:"sweeps"`
	} `yaml:"relay"`
	Upstream struct {
		ChartBaseURL  string `yaml:"chart_base_url"`
		SearchBaseURL string `yaml:"search_base_url"`
	} `yaml:"upstream"`
	Cache struct {
		TTLMinutes    int    `yaml:"ttl_minutes"`
		RedisAddr     string `yaml:"redis_addr"`
		RedisPassword string `yaml:"redis_password"`
		RedisDB       int    `yaml:"redis_db"`
	} `yaml:"cache"`
	Dashboard struct {
		Range          string  `yaml:"range"`
		Interval       string  `yaml:"interval"`
		RefreshCron    string  `yaml:"refresh_cron"`
		WatchlistFile  string  `yaml:"watchlist_file"`
		EURUSDFallback float64 `yaml:"eurusd_fallback"`
	} `yaml:"dashboard"`
	Fallbacks []model.RangeSpec `yaml:"fallbacks"`
	Database  struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("RELAY_ENDPOINTS"); v != "" {
		cfg.Relay.Endpoints = splitList(v)
	}
	if v := os.Getenv("RELAY_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Relay.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("CACHE_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.TTLMinutes = n
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Dashboard.RefreshCron = v
	}
	if v := os.Getenv("WATCHLIST_FILE"); v != "" {
		cfg.Dashboard.WatchlistFile = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if len(cfg.Relay.Endpoints) == 0 {
		cfg.Relay.Endpoints = DefaultRelays
	}
	if cfg.Relay.TimeoutSeconds == 0 {
		cfg.Relay.TimeoutSeconds = 10
	}
	if cfg.Relay.Sweeps == 0 {
		cfg.Relay.Sweeps = 1
	}
	if cfg.Cache.TTLMinutes == 0 {
		cfg.Cache.TTLMinutes = 5
	}
	if cfg.Dashboard.Range == "" {
		cfg.Dashboard.Range = "1y"
	}
	if cfg.Dashboard.Interval == "" {
		cfg.Dashboard.Interval = "1d"
	}
	if cfg.Dashboard.RefreshCron == "" {
		cfg.Dashboard.RefreshCron = "0 */15 * * * *"
	}
	if cfg.Dashboard.WatchlistFile == "" {
		cfg.Dashboard.WatchlistFile = "data/watchlist.json"
	}
	if cfg.Dashboard.EURUSDFallback == 0 {
		cfg.Dashboard.EURUSDFallback = 1.08
	}
	if len(cfg.Fallbacks) == 0 {
		cfg.Fallbacks = []model.RangeSpec{
			{Range: "5d", Interval: "1d"},
			{Range: "1mo", Interval: "1d"},
		}
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/alphaview.db"
	}

	return cfg, nil
}

// RangeSpec returns the configured dashboard range/interval pair.
func (c *Config) RangeSpec() model.RangeSpec {
	return model.RangeSpec{Range: c.Dashboard.Range, Interval: c.Dashboard.Interval}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Relay.Endpoints) == 0 {
		return fmt.Errorf("relay.endpoints must not be empty")
	}
	if c.Relay.TimeoutSeconds < 1 || c.Relay.TimeoutSeconds > 120 {
		return fmt.Errorf("relay.timeout_seconds must be between 1 and 120")
	}
	if c.Relay.Sweeps < 1 {
		return fmt.Errorf("relay.sweeps must be at least 1")
	}
	if spec := c.RangeSpec(); !spec.Valid() {
		return fmt.Errorf("dashboard range/interval %s is not a known combination", spec)
	}
	for _, f := range c.Fallbacks {
		if !f.Valid() {
			return fmt.Errorf("fallback %s is not a known combination", f)
		}
		if f.Intraday() {
			return fmt.Errorf("fallback %s must use a daily or coarser interval", f)
		}
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
