// Package config provides YAML-based configuration loading with environment
// overrides for worldforge.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/worldforge/internal/difficulty"
)

// Config is the complete worldforge configuration.
type Config struct {
	WorldsDir      string         `yaml:"worlds_dir" env:"WORLDFORGE_WORLDS_DIR"`
	DBPath         string         `yaml:"db_path" env:"WORLDFORGE_DB_PATH"`
	PacksDir       string         `yaml:"packs_dir" env:"WORLDFORGE_PACKS_DIR"`
	CloudByDefault bool           `yaml:"cloud_by_default" env:"WORLDFORGE_CLOUD_BY_DEFAULT"`
	JourneyPlayer  bool           `yaml:"journey_player" env:"WORLDFORGE_JOURNEY_PLAYER"`
	Log            LogConfig      `yaml:"log" envPrefix:"WORLDFORGE_LOG_"`
	Profiles       ProfilesConfig `yaml:"profiles"`
	SSH            SSHConfig      `yaml:"ssh" envPrefix:"WORLDFORGE_SSH_"`
}

// LogConfig configures diagnostics.
type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"` // debug, info, warn or error
}

// ProfilesConfig overrides the scaling of the built-in modes.
type ProfilesConfig struct {
	Classic difficulty.Profile `yaml:"classic"`
	Expert  difficulty.Profile `yaml:"expert"`
	Master  difficulty.Profile `yaml:"master"`
	Journey difficulty.Profile `yaml:"journey"`
}

// SSHConfig configures the SSH server.
type SSHConfig struct {
	Address            string `yaml:"address" env:"ADDRESS"`
	HostKey            string `yaml:"host_key" env:"HOST_KEY"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes" env:"IDLE_TIMEOUT_MINUTES"`
}

// IdleTimeout returns the idle timeout as a duration.
func (s SSHConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// DifficultyProfiles returns the profile table for difficulty.System.
func (p ProfilesConfig) DifficultyProfiles() difficulty.Profiles {
	return difficulty.Profiles{
		difficulty.KindClassic: p.Classic,
		difficulty.KindExpert:  p.Expert,
		difficulty.KindMaster:  p.Master,
		difficulty.KindJourney: p.Journey,
	}
}

// LogLevel parses Log.Level, defaulting to info.
func (c Config) LogLevel() log.Level {
	if c.Log.Level == "" {
		return log.InfoLevel
	}
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	if c.WorldsDir == "" {
		return fmt.Errorf("config: worlds_dir is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("config: db_path is required")
	}
	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("config: log.level: %w", err)
		}
	}
	if c.SSH.IdleTimeoutMinutes < 0 {
		return fmt.Errorf("config: ssh.idle_timeout_minutes must not be negative")
	}
	return nil
}

// Expand resolves "~" in every path of the config.
func (c Config) Expand() (Config, error) {
	var err error
	for _, p := range []*string{&c.WorldsDir, &c.DBPath, &c.PacksDir, &c.SSH.HostKey} {
		if *p, err = ExpandHome(*p); err != nil {
			return c, err
		}
	}
	return c, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
