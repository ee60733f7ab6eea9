package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIPort != "8080" {
		t.Fatalf("unexpected api port %q", cfg.APIPort)
	}
	if cfg.NATSSubject != "papers.ingest" {
		t.Fatalf("unexpected nats subject %q", cfg.NATSSubject)
	}
	if cfg.RankTopN != 8 {
		t.Fatalf("unexpected rank top n %d", cfg.RankTopN)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9999")
	t.Setenv("RANK_TOP_N", "3")
	t.Setenv("API_RATE_LIMIT_RPS", "2.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIPort != "9999" {
		t.Fatalf("expected env override for api port, got %q", cfg.APIPort)
	}
	if cfg.RankTopN != 3 {
		t.Fatalf("expected env override for rank top n, got %d", cfg.RankTopN)
	}
	if cfg.APIRateLimitRPS != 2.5 {
		t.Fatalf("expected env override for rate limit rps, got %f", cfg.APIRateLimitRPS)
	}
}

func TestLoadReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "api_port: \"7070\"\nneo4j_database: papers\nrank_top_n: 5\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIPort != "7070" {
		t.Fatalf("expected yaml api port, got %q", cfg.APIPort)
	}
	if cfg.Neo4jDatabase != "papers" {
		t.Fatalf("expected yaml neo4j database, got %q", cfg.Neo4jDatabase)
	}
	if cfg.RankTopN != 5 {
		t.Fatalf("expected yaml rank top n, got %d", cfg.RankTopN)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level to survive, got %q", cfg.LogLevel)
	}
}

func TestEnvBeatsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_port: \"7070\"\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("API_PORT", "6060")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIPort != "6060" {
		t.Fatalf("expected env to beat yaml, got %q", cfg.APIPort)
	}
}

func TestLoadFailsOnBrokenConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("\tbroken: ["), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for broken config file")
	}
}
