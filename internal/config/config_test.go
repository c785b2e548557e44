package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8082" {
		t.Errorf("default port = %q, want 8082", cfg.Port)
	}
	if cfg.StoreBackend != "csv" {
		t.Errorf("default backend = %q, want csv", cfg.StoreBackend)
	}
	if cfg.CSVPath != "./data/purchases.csv" {
		t.Errorf("default CSV path = %q", cfg.CSVPath)
	}
	if cfg.BonusRatePercent != 0 {
		t.Errorf("default bonus rate = %v, want 0", cfg.BonusRatePercent)
	}
	if cfg.AMQPURL != "" {
		t.Errorf("AMQP should be disabled by default, got %q", cfg.AMQPURL)
	}
	if cfg.ResyncInterval != 5*time.Minute {
		t.Errorf("default resync interval = %v", cfg.ResyncInterval)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("BONUS_RATE_PERCENT", "7.5")
	t.Setenv("RESYNC_INTERVAL", "30s")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("port = %q, want 9000", cfg.Port)
	}
	if cfg.StoreBackend != "memory" {
		t.Errorf("backend = %q, want memory", cfg.StoreBackend)
	}
	if cfg.BonusRatePercent != 7.5 {
		t.Errorf("bonus rate = %v, want 7.5", cfg.BonusRatePercent)
	}
	if cfg.ResyncInterval != 30*time.Second {
		t.Errorf("resync interval = %v, want 30s", cfg.ResyncInterval)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:           "8082",
			StoreBackend:   "memory",
			ResyncInterval: time.Minute,
		}
	}
	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad port", func(c *Config) { c.Port = "nope" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"bad backend", func(c *Config) { c.StoreBackend = "oracle" }, "invalid store backend"},
		{"empty csv path", func(c *Config) { c.StoreBackend = "csv"; c.CSVPath = " " }, "CSV path"},
		{"negative rate", func(c *Config) { c.BonusRatePercent = -1 }, "invalid bonus rate"},
		{"rate above 100", func(c *Config) { c.BonusRatePercent = 101 }, "invalid bonus rate"},
		{"bad amqp scheme", func(c *Config) { c.AMQPURL = "http://localhost" }, "invalid AMQP URL scheme"},
		{"amqp without queue", func(c *Config) { c.AMQPURL = "amqp://localhost"; c.AMQPExchange = "x" }, "queue name"},
		{"bad resync interval", func(c *Config) { c.ResyncInterval = 0 }, "resync interval"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := &Config{
		Port:             "nope",
		StoreBackend:     "oracle",
		BonusRatePercent: -5,
		ResyncInterval:   time.Minute,
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"invalid port", "invalid store backend", "invalid bonus rate"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}
