package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/worldforge/internal/difficulty"
)

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	cfg := Default()
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded YAML and Default() differ:\n%+v\n%+v", cfg, Default())
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := `
worlds_dir: /srv/worlds
journey_player: true
profiles:
  expert:
    enemy_damage: 2.5
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.WorldsDir != "/srv/worlds" || !cfg.JourneyPlayer {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.DBPath != Default().DBPath {
		t.Errorf("DBPath = %q, expected default", cfg.DBPath)
	}
	if cfg.Profiles.Expert.EnemyDamage != 2.5 {
		t.Errorf("EnemyDamage = %v, expected 2.5", cfg.Profiles.Expert.EnemyDamage)
	}
	if cfg.Profiles.Expert.EnemyMaxLife != difficulty.ExpertProfile.EnemyMaxLife {
		t.Error("unspecified profile fields should keep their defaults")
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("worlds_dir: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WORLDFORGE_DB_PATH", "/tmp/wf.db")
	t.Setenv("WORLDFORGE_CLOUD_BY_DEFAULT", "true")
	t.Setenv("WORLDFORGE_LOG_LEVEL", "debug")
	t.Setenv("WORLDFORGE_SSH_ADDRESS", ":2222")

	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("db_path: /from/file.db\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.DBPath != "/tmp/wf.db" {
		t.Errorf("DBPath = %q, expected env override", cfg.DBPath)
	}
	if !cfg.CloudByDefault {
		t.Error("CloudByDefault not overridden")
	}
	if cfg.LogLevel() != log.DebugLevel {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}
	if cfg.SSH.Address != ":2222" {
		t.Errorf("SSH.Address = %q", cfg.SSH.Address)
	}
}

func TestEnvParseError(t *testing.T) {
	t.Setenv("WORLDFORGE_SSH_IDLE_TIMEOUT_MINUTES", "soon")
	cfg := Default()
	err := ParseEnv(&cfg)
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Errorf("expected parse env error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"no worlds dir", func(c *Config) { c.WorldsDir = "" }, false},
		{"no db", func(c *Config) { c.DBPath = "" }, false},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"negative timeout", func(c *Config) { c.SSH.IdleTimeoutMinutes = -1 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(&cfg)
			if err := cfg.Validate(); (err == nil) != tc.ok {
				t.Errorf("Validate() = %v, expected ok=%v", err, tc.ok)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cfg, err := Default().Expand()
	if err != nil {
		t.Fatalf("Expand() failed: %v", err)
	}
	if want := filepath.Join(home, ".worldforge", "worlds"); cfg.WorldsDir != want {
		t.Errorf("WorldsDir = %q, expected %q", cfg.WorldsDir, want)
	}
	if cfg.SSH.HostKey != "" {
		t.Errorf("empty HostKey expanded to %q", cfg.SSH.HostKey)
	}
}

func TestProfilesTable(t *testing.T) {
	p := Default().Profiles.DifficultyProfiles()
	if p.For(difficulty.KindMaster) != difficulty.MasterProfile {
		t.Error("master profile mismatch")
	}
}
