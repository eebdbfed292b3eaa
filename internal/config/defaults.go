package config

import (
	_ "embed"

	"github.com/vovakirdan/worldforge/internal/difficulty"
)

//go:embed defaults/worldforge.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		WorldsDir: "~/.worldforge/worlds",
		DBPath:    "~/.worldforge/worldforge.db",
		PacksDir:  "~/.worldforge/packs",
		Log: LogConfig{
			Level: "info",
		},
		Profiles: ProfilesConfig{
			Classic: difficulty.ClassicProfile,
			Expert:  difficulty.ExpertProfile,
			Master:  difficulty.MasterProfile,
			Journey: difficulty.JourneyProfile,
		},
		SSH: SSHConfig{
			Address:            ":23234",
			IdleTimeoutMinutes: 30,
		},
	}
}
