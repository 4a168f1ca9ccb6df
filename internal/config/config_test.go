package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JP_HOME": "/tmp/jp",
	}))
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}
	if cfg.APIURL != "http://localhost:8000/api" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.RotateInterval != 2500*time.Millisecond {
		t.Errorf("RotateInterval = %s, want 2.5s", cfg.RotateInterval)
	}
	if cfg.StartPath != "/" {
		t.Errorf("StartPath = %q, want /", cfg.StartPath)
	}
	if want := filepath.Join("/tmp/jp", "jobportal.log"); cfg.LogFile != want {
		t.Errorf("LogFile = %q, want %q", cfg.LogFile, want)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("Redis.Addr = %q, want empty", cfg.Redis.Addr)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JP_HOME":            "/tmp/jp",
		"JP_API_URL":         "https://api.example.test",
		"JP_ROTATE_INTERVAL": "5s",
		"JP_REDIS_ADDR":      "localhost:6379",
		"JP_REDIS_DB":        "2",
		"JP_LOG_PRETTY":      "true",
	}))
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}
	if cfg.APIURL != "https://api.example.test" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.RotateInterval != 5*time.Second {
		t.Errorf("RotateInterval = %s", cfg.RotateInterval)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 2 {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if !cfg.LogPretty {
		t.Error("LogPretty = false, want true")
	}
}

func TestLoadRejectsNonPositiveRotation(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JP_HOME":            "/tmp/jp",
		"JP_ROTATE_INTERVAL": "0s",
	}))
	if err == nil {
		t.Fatal("expected error for zero rotation interval")
	}
}
