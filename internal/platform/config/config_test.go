package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Chain.DefaultURL != DefaultProviderURL {
		t.Fatalf("expected default provider %s, got %s", DefaultProviderURL, cfg.Chain.DefaultURL)
	}
	if cfg.Content.APIURL != DefaultIPFSAPI {
		t.Fatalf("expected default ipfs api %s, got %s", DefaultIPFSAPI, cfg.Content.APIURL)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.Addr())
	}
}

func TestLoad_FileThenEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
port = "9000"

[chain]
backend = "memory"
receipt_poll = "250ms"
accounts = ["0x1111111111111111111111111111111111111111"]

[sync]
concurrency = 3
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("PORT", "9100")
	t.Setenv("IPFS_BACKEND", "memory")
	t.Setenv("SYNC_REFRESH_SCHEDULE", "@every 1m")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9100" {
		t.Fatalf("env should override file port, got %s", cfg.Port)
	}
	if cfg.Chain.Backend != BackendMemory {
		t.Fatalf("expected memory chain backend from file, got %s", cfg.Chain.Backend)
	}
	if cfg.Chain.ReceiptPoll != 250*time.Millisecond {
		t.Fatalf("expected 250ms receipt poll, got %s", cfg.Chain.ReceiptPoll)
	}
	if len(cfg.Chain.Accounts) != 1 {
		t.Fatalf("expected 1 account, got %#v", cfg.Chain.Accounts)
	}
	if cfg.Content.Backend != BackendMemory {
		t.Fatalf("expected memory ipfs backend from env, got %s", cfg.Content.Backend)
	}
	if cfg.Sync.Concurrency != 3 || cfg.Sync.RefreshSchedule != "@every 1m" {
		t.Fatalf("unexpected sync config: %#v", cfg.Sync)
	}
	// Defaults no tocados por file/env se conservan.
	if cfg.Chain.ContractName != DefaultContractName {
		t.Fatalf("expected default contract name, got %s", cfg.Chain.ContractName)
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("CHAIN_BACKEND", "solana")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
