package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/spendwise/internal/insight"
	"github.com/theirongolddev/spendwise/internal/model"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, k := range []string{EnvUser, EnvDB, EnvBudget, EnvDaemonAddr} {
		t.Setenv(k, "")
	}
	return dir
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.UserID != "local" || cfg.Daemon.Addr != "127.0.0.1:8797" {
		t.Fatalf("defaults = %+v", cfg)
	}
	if Exists() {
		t.Fatal("Exists() = true without a file")
	}
}

func TestSaveLoad(t *testing.T) {
	dir := isolate(t)

	budget := 1200.0
	cfg := DefaultConfig()
	cfg.General.Name = "Sam"
	cfg.Budget.Monthly = &budget
	cfg.Appearance.Theme = "tokyo-night"
	cfg.Badges.Overrides = insight.Catalog{
		model.BadgeBudgetKeeper: {Name: "Penny Pincher"},
	}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(ConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("config mode = %v, want 0600", info.Mode().Perm())
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.Name != "Sam" || got.Budget.Monthly == nil || *got.Budget.Monthly != 1200 {
		t.Fatalf("loaded = %+v", got)
	}
	if name := got.Catalog().Lookup(model.BadgeBudgetKeeper).Name; name != "Penny Pincher" {
		t.Fatalf("catalog override name = %q", name)
	}
	if desc := got.Catalog().Lookup(model.BadgeBudgetKeeper).Description; desc != "Stayed within monthly budget" {
		t.Fatalf("catalog kept description = %q", desc)
	}
	if want := filepath.Join(dir, "data", "spendwise", "spendwise.db"); got.DBPath() != want {
		t.Fatalf("DBPath = %q, want %q", got.DBPath(), want)
	}
}

func TestLoad_Malformed(t *testing.T) {
	isolate(t)
	if err := os.MkdirAll(ConfigDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(), []byte("[general\nuser_id = "), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted malformed TOML")
	}
}

func TestApplyEnv(t *testing.T) {
	isolate(t)
	t.Setenv(EnvUser, "alex")
	t.Setenv(EnvDB, "/tmp/x.db")
	t.Setenv(EnvBudget, "750.5")
	t.Setenv(EnvDaemonAddr, "127.0.0.1:9999")

	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.General.UserID != "alex" || cfg.DBPath() != "/tmp/x.db" || cfg.Daemon.Addr != "127.0.0.1:9999" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Budget.Monthly == nil || *cfg.Budget.Monthly != 750.5 {
		t.Fatalf("budget = %v", cfg.Budget.Monthly)
	}

	t.Setenv(EnvBudget, "lots")
	if err := ApplyEnv(&cfg); err == nil {
		t.Fatal("ApplyEnv accepted a non-numeric budget")
	}
}

func TestLoadDotEnv_DoesNotOverride(t *testing.T) {
	isolate(t)
	if err := os.MkdirAll(ConfigDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	env := EnvUser + "=from-file\n" + EnvDaemonAddr + "=127.0.0.1:1234\n"
	if err := os.WriteFile(filepath.Join(ConfigDir(), ".env"), []byte(env), 0o600); err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv(EnvUser, "already-set")
	t.Setenv(EnvDaemonAddr, "")
	_ = os.Unsetenv(EnvDaemonAddr)

	cfg, err := LoadEffective()
	if err != nil {
		t.Fatalf("LoadEffective: %v", err)
	}
	if cfg.General.UserID != "already-set" {
		t.Fatalf("UserID = %q, want already-set", cfg.General.UserID)
	}
	if cfg.Daemon.Addr != "127.0.0.1:1234" {
		t.Fatalf("Addr = %q, want value from .env", cfg.Daemon.Addr)
	}
}
