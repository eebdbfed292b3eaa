// Package worldgen persists newly created worlds: the metadata header, the
// tag container with the difficulty record, and the world index entry.
// Terrain generation itself is outside its scope.
package worldgen

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/worldforge/internal/worldfile"
)

// Header is the metadata file of a world.
type Header struct {
	Name      string    `yaml:"name"`
	GameMode  int       `yaml:"game_mode"`
	Width     int       `yaml:"width"`
	Height    int       `yaml:"height"`
	Seed      string    `yaml:"seed"`
	Evil      int       `yaml:"evil"`
	Flags     []string  `yaml:"flags,omitempty"`
	Cloud     bool      `yaml:"cloud"`
	CreatedAt time.Time `yaml:"created_at"`
}

// MarshalHeader encodes h as YAML.
func MarshalHeader(h Header) ([]byte, error) {
	data, err := yaml.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("worldgen: encode header: %w", err)
	}
	return data, nil
}

// ParseHeader decodes a header file.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if err := yaml.Unmarshal(data, &h); err != nil {
		return h, fmt.Errorf("worldgen: decode header: %w", err)
	}
	return h, nil
}

// ReadHeader reads the header of the world at p from src.
func ReadHeader(src worldfile.Source, p string, loc worldfile.Location) (Header, error) {
	data, err := src.ReadAll(worldfile.WithExt(p, worldfile.HeaderExt), loc)
	if err != nil {
		return Header{}, fmt.Errorf("worldgen: read header: %w", err)
	}
	return ParseHeader(data)
}

// FileStem turns a world name into a file name without extension.
// Characters unsafe in file names become underscores.
func FileStem(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	stem := strings.Trim(b.String(), ".")
	if stem == "" {
		return "World"
	}
	return stem
}
