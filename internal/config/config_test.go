package config

import (
	"os"
	"path/filepath"
	"testing"

	"alphaview/internal/model"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Relay.Endpoints) != 3 {
		t.Errorf("relays = %v", cfg.Relay.Endpoints)
	}
	if cfg.Relay.TimeoutSeconds != 10 || cfg.Relay.Sweeps != 1 {
		t.Errorf("relay defaults = %+v", cfg.Relay)
	}
	if cfg.Cache.TTLMinutes != 5 {
		t.Errorf("ttl = %d", cfg.Cache.TTLMinutes)
	}
	if got := cfg.RangeSpec(); got != (model.RangeSpec{Range: "1y", Interval: "1d"}) {
		t.Errorf("range spec = %s", got)
	}
	if len(cfg.Fallbacks) != 2 {
		t.Errorf("fallbacks = %v", cfg.Fallbacks)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
relay:
  endpoints:
    - "https://relay.example/?"
  timeout_seconds: 20
dashboard:
  range: "6mo"
  interval: "1d"
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RELAY_TIMEOUT_SECONDS", "30")
	t.Setenv("CACHE_TTL_MINUTES", "2")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Relay.Endpoints) != 1 || cfg.Relay.Endpoints[0] != "https://relay.example/?" {
		t.Errorf("relays = %v", cfg.Relay.Endpoints)
	}
	if cfg.Relay.TimeoutSeconds != 30 {
		t.Errorf("env should override file, timeout = %d", cfg.Relay.TimeoutSeconds)
	}
	if cfg.Cache.TTLMinutes != 2 {
		t.Errorf("ttl = %d", cfg.Cache.TTLMinutes)
	}
	if got := cfg.RangeSpec(); got.Range != "6mo" {
		t.Errorf("range = %s", got)
	}
}

func TestLoad_RelayEndpointsEnvList(t *testing.T) {
	t.Setenv("RELAY_ENDPOINTS", " https://a.example/? , https://b.example/?url= ,")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"https://a.example/?", "https://b.example/?url="}
	if len(cfg.Relay.Endpoints) != 2 || cfg.Relay.Endpoints[0] != want[0] || cfg.Relay.Endpoints[1] != want[1] {
		t.Errorf("relays = %v, want %v", cfg.Relay.Endpoints, want)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		return cfg
	}

	cfg := base()
	cfg.Relay.Endpoints = nil
	if err := cfg.Validate(); err == nil {
		t.Error("empty relay list should fail validation")
	}

	cfg = base()
	cfg.Relay.TimeoutSeconds = 300
	if err := cfg.Validate(); err == nil {
		t.Error("out-of-range timeout should fail validation")
	}

	cfg = base()
	cfg.Dashboard.Interval = "7m"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown interval should fail validation")
	}

	cfg = base()
	cfg.Fallbacks = []model.RangeSpec{{Range: "5d", Interval: "5m"}}
	if err := cfg.Validate(); err == nil {
		t.Error("intraday fallback should fail validation")
	}
}
