package wizard

import (
	"math/rand"
	"strings"
)

var (
	nameTemplates = []string{
		"The {Adjective} {Location}",
		"{Location} of {Noun}",
		"The {Noun} {Location}",
		"{Adjective} {Noun}",
		"The {Location} of {Adjective} {Noun}",
	}
	nameAdjectives = []string{
		"Ancient", "Bitter", "Crimson", "Dusty", "Endless", "Forgotten", "Gilded",
		"Hollow", "Icy", "Jagged", "Lonely", "Molten", "Quiet", "Shattered", "Verdant",
	}
	nameLocations = []string{
		"Abyss", "Badlands", "Canyon", "Caverns", "Coast", "Desert", "Fields",
		"Glade", "Hills", "Island", "Marsh", "Peaks", "Plains", "Tundra", "Woods",
	}
	nameNouns = []string{
		"Ash", "Bees", "Bones", "Dreams", "Echoes", "Embers", "Gold",
		"Mushrooms", "Rain", "Slime", "Stars", "Thorns", "Whispers", "Wyverns",
	}
)

// specialName replaces a random name once in this many draws.
const specialNameOdds = 10000

// RandomName returns a composed world name no longer than MaxNameLength.
func RandomName(rng *rand.Rand) string {
	for {
		name := composeName(rng)
		if rng.Intn(specialNameOdds) == 0 {
			name = "The Constant"
		}
		if len([]rune(name)) <= MaxNameLength {
			return name
		}
	}
}

func composeName(rng *rand.Rand) string {
	pick := func(list []string) string { return list[rng.Intn(len(list))] }
	r := strings.NewReplacer(
		"{Adjective}", pick(nameAdjectives),
		"{Location}", pick(nameLocations),
		"{Noun}", pick(nameNouns),
	)
	return r.Replace(pick(nameTemplates))
}
