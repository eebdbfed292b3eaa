// Package difficulty provides the registry of pluggable world difficulties,
// the selector recording which one a world uses, and the per-process system
// that saves and restores that choice with each world.
package difficulty

import (
	"reflect"

	"github.com/vovakirdan/worldforge/internal/core"
)

// Identity is the stable (origin, name) pair of a descriptor. Unlike the
// registry index it survives restarts and is what gets persisted.
type Identity struct {
	Origin string
	Name   string
}

// String returns "origin/name".
func (id Identity) String() string {
	return id.Origin + "/" + id.Name
}

// Descriptor is a plugin-supplied, read-only description of one selectable
// difficulty. Embed Base to inherit the defaults.
type Descriptor interface {
	// Origin names the plugin that owns the descriptor.
	Origin() string

	// Name is the local name within the origin. Empty means the Go type
	// name of the descriptor.
	Name() string

	// DisplayName is shown on the world select and world creation screens.
	DisplayName() string

	// Description fills the description box of the creation screen.
	Description() string

	// TextColor colors DisplayName.
	TextColor() core.Color

	// ButtonIcon is the asset handle of the option button icon.
	ButtonIcon() string

	// PreviewSky and PreviewBunny are the asset handles of the preview plate.
	PreviewSky() string
	PreviewBunny() string

	// PreviewTint tints the preview plate.
	PreviewTint() core.Color

	// Profile is the scaling applied to worlds using this difficulty.
	Profile() Profile
}

// Default asset handles, shared with the Classic mode.
const (
	IconNormal         = "Images/UI/WorldCreation/IconDifficultyNormal"
	PreviewSkyNormal   = "Images/UI/WorldCreation/PreviewDifficultyNormal1"
	PreviewBunnyNormal = "Images/UI/WorldCreation/PreviewDifficultyNormal2"
)

// Base supplies default values for every Descriptor method except Origin.
type Base struct {
	LocalName string
}

func (b Base) Name() string          { return b.LocalName }
func (Base) DisplayName() string     { return "Mod Difficulty" }
func (Base) TextColor() core.Color   { return core.ColorWhite }
func (Base) ButtonIcon() string      { return IconNormal }
func (Base) PreviewSky() string      { return PreviewSkyNormal }
func (Base) PreviewBunny() string    { return PreviewBunnyNormal }
func (Base) PreviewTint() core.Color { return core.ColorWhite }
func (Base) Profile() Profile        { return ClassicProfile }

func (Base) Description() string {
	return "A custom difficulty without a description."
}

// IdentityOf returns the identity of d, deriving the local name from the
// descriptor's type when Name is empty.
func IdentityOf(d Descriptor) Identity {
	name := d.Name()
	if name == "" {
		name = typeName(d)
	}
	return Identity{Origin: d.Origin(), Name: name}
}

// FullName returns "origin/name" for d.
func FullName(d Descriptor) string {
	return IdentityOf(d).String()
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
