package core

import "fmt"

// WorldSize is the size preset of a new world.
type WorldSize int

const (
	SizeSmall WorldSize = iota
	SizeMedium
	SizeLarge
)

// Bounds returns the tile-grid dimensions of the size preset.
func (s WorldSize) Bounds() (w, h int) {
	switch s {
	case SizeMedium:
		return 6400, 1800
	case SizeLarge:
		return 8400, 2400
	default:
		return 4200, 1200
	}
}

func (s WorldSize) String() string {
	switch s {
	case SizeSmall:
		return "Small"
	case SizeMedium:
		return "Medium"
	case SizeLarge:
		return "Large"
	default:
		return fmt.Sprintf("WorldSize(%d)", int(s))
	}
}

// ParseWorldSize resolves "small", "medium" or "large".
func ParseWorldSize(s string) (WorldSize, bool) {
	switch s {
	case "small", "Small":
		return SizeSmall, true
	case "medium", "Medium":
		return SizeMedium, true
	case "large", "Large":
		return SizeLarge, true
	}
	return SizeSmall, false
}

// SizeFromBounds maps tile-grid dimensions back to a preset.
func SizeFromBounds(w int) WorldSize {
	switch {
	case w >= 8400:
		return SizeLarge
	case w >= 6400:
		return SizeMedium
	default:
		return SizeSmall
	}
}

// Evil is the world evil biome choice.
type Evil int

const (
	EvilRandom Evil = iota
	EvilCorruption
	EvilCrimson
)

// Param returns the value the world generator expects: -1 random,
// 0 corruption, 1 crimson.
func (e Evil) Param() int {
	switch e {
	case EvilCorruption:
		return 0
	case EvilCrimson:
		return 1
	default:
		return -1
	}
}

func (e Evil) String() string {
	switch e {
	case EvilRandom:
		return "Random"
	case EvilCorruption:
		return "Corruption"
	case EvilCrimson:
		return "Crimson"
	default:
		return fmt.Sprintf("Evil(%d)", int(e))
	}
}

// ParseEvil resolves "random", "corruption" or "crimson".
func ParseEvil(s string) (Evil, bool) {
	switch s {
	case "random", "Random":
		return EvilRandom, true
	case "corruption", "Corruption":
		return EvilCorruption, true
	case "crimson", "Crimson":
		return EvilCrimson, true
	}
	return EvilRandom, false
}
