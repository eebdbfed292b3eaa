// Package pack loads difficulty packs: YAML files declaring custom
// difficulties under one origin. Loading a pack registers its difficulties;
// unloading removes them again.
package pack

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/worldforge/internal/core"
	"github.com/vovakirdan/worldforge/internal/difficulty"
)

// Spec is one difficulty as written in a pack file. Omitted fields take
// the descriptor defaults.
type Spec struct {
	Name         string             `yaml:"name"`
	DisplayName  string             `yaml:"display_name"`
	Description  string             `yaml:"description"`
	Color        core.Color         `yaml:"color"`
	Icon         string             `yaml:"icon"`
	PreviewSky   string             `yaml:"preview_sky"`
	PreviewBunny string             `yaml:"preview_bunny"`
	PreviewTint  core.Color         `yaml:"preview_tint"`
	Profile      difficulty.Profile `yaml:"profile"`
}

func defaultSpec() Spec {
	var b difficulty.Base
	return Spec{
		DisplayName:  b.DisplayName(),
		Description:  b.Description(),
		Color:        b.TextColor(),
		Icon:         b.ButtonIcon(),
		PreviewSky:   b.PreviewSky(),
		PreviewBunny: b.PreviewBunny(),
		PreviewTint:  b.PreviewTint(),
		Profile:      b.Profile(),
	}
}

// UnmarshalYAML decodes a spec over the defaults.
func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	type plain Spec
	p := plain(defaultSpec())
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = Spec(p)
	return nil
}

// Difficulty is a descriptor declared by a pack.
type Difficulty struct {
	origin string
	spec   Spec
}

func (d *Difficulty) Origin() string              { return d.origin }
func (d *Difficulty) Name() string                { return d.spec.Name }
func (d *Difficulty) DisplayName() string         { return d.spec.DisplayName }
func (d *Difficulty) Description() string         { return d.spec.Description }
func (d *Difficulty) TextColor() core.Color       { return d.spec.Color }
func (d *Difficulty) ButtonIcon() string          { return d.spec.Icon }
func (d *Difficulty) PreviewSky() string          { return d.spec.PreviewSky }
func (d *Difficulty) PreviewBunny() string        { return d.spec.PreviewBunny }
func (d *Difficulty) PreviewTint() core.Color     { return d.spec.PreviewTint }
func (d *Difficulty) Profile() difficulty.Profile { return d.spec.Profile }

// File is the on-disk layout of a pack.
type File struct {
	Origin       string `yaml:"origin"`
	Difficulties []Spec `yaml:"difficulties"`
}

// Pack is a parsed difficulty pack.
type Pack struct {
	Origin       string
	Source       string
	Difficulties []*Difficulty
}

// Parse decodes a pack. source names the pack in errors and logs.
func Parse(data []byte, source string) (*Pack, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("pack: failed to parse %s: %w", source, err)
	}
	if strings.TrimSpace(f.Origin) == "" {
		return nil, fmt.Errorf("pack: %s: origin is required", source)
	}

	p := &Pack{Origin: f.Origin, Source: source}
	for i, spec := range f.Difficulties {
		if strings.TrimSpace(spec.Name) == "" {
			return nil, fmt.Errorf("pack: %s: difficulty %d has no name", source, i)
		}
		p.Difficulties = append(p.Difficulties, &Difficulty{origin: f.Origin, spec: spec})
	}
	return p, nil
}

// ReadFile reads and parses one pack file.
func ReadFile(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pack: failed to read %s: %w", path, err)
	}
	return Parse(data, path)
}

// ReadDir parses every *.yaml and *.yml file of dir in name order. A
// missing directory holds no packs.
func ReadDir(dir string) ([]*Pack, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pack: failed to list %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if !e.IsDir() && (ext == ".yaml" || ext == ".yml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	packs := make([]*Pack, 0, len(names))
	for _, name := range names {
		p, err := ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		packs = append(packs, p)
	}
	return packs, nil
}
