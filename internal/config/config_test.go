package config

import (
	"os"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Port == "" || cfg.Server.Host == "" {
		t.Fatalf("unexpected empty server config: %+v", cfg.Server)
	}
	if cfg.Generator.Backend != "stub" {
		t.Fatalf("Generator.Backend = %q, want stub default", cfg.Generator.Backend)
	}
	if cfg.Generator.Retries != 2 {
		t.Fatalf("Generator.Retries = %d, want 2", cfg.Generator.Retries)
	}
	if cfg.Upload.MaxContentBytes != 1<<20 {
		t.Fatalf("Upload.MaxContentBytes = %d, want 1MiB", cfg.Upload.MaxContentBytes)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	os.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	os.Setenv("REDIS_HOST", "localhost")
	os.Setenv("REDIS_PORT", "6379")
	os.Setenv("GENERATOR_BACKEND", "remote")
	os.Setenv("GENERATOR_ENDPOINT", "http://localhost:9999/generate")
	defer func() {
		os.Unsetenv("MONGODB_URI")
		os.Unsetenv("REDIS_HOST")
		os.Unsetenv("REDIS_PORT")
		os.Unsetenv("GENERATOR_BACKEND")
		os.Unsetenv("GENERATOR_ENDPOINT")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.MongoDB.URI == "" || cfg.Redis.Host == "" {
		t.Fatalf("unexpected empty config values: %+v", cfg)
	}
	if cfg.Generator.Backend != "remote" || cfg.Generator.Endpoint == "" {
		t.Fatalf("generator config not picked up from env: %+v", cfg.Generator)
	}
}
