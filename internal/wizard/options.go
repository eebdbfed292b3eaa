package wizard

import (
	"github.com/vovakirdan/worldforge/internal/core"
	"github.com/vovakirdan/worldforge/internal/difficulty"
)

// Asset handles of the built-in difficulty options and preview plate.
const (
	iconCreative = "Images/UI/WorldCreation/IconDifficultyCreative"
	iconExpert   = "Images/UI/WorldCreation/IconDifficultyExpert"
	iconMaster   = "Images/UI/WorldCreation/IconDifficultyMaster"

	skyExpert     = "Images/UI/WorldCreation/PreviewDifficultyExpert1"
	skyMaster     = "Images/UI/WorldCreation/PreviewDifficultyMaster1"
	bunnyExpert   = "Images/UI/WorldCreation/PreviewDifficultyExpert2"
	bunnyMaster   = "Images/UI/WorldCreation/PreviewDifficultyMaster2"
	bunnyCreative = "Images/UI/WorldCreation/PreviewDifficultyCreative2"
)

// Option is one selectable difficulty button.
type Option struct {
	Selector    difficulty.Selector
	Label       string
	Description string
	Color       core.Color
	Icon        string
}

var builtinOptions = []Option{
	{
		Selector:    difficulty.Journey,
		Label:       "Journey",
		Description: "Fully customizable gameplay. Journey characters only.",
		Color:       core.ColorBrightMagenta,
		Icon:        iconCreative,
	},
	{
		Selector:    difficulty.Classic,
		Label:       "Classic",
		Description: "Your adventure begins. The standard experience.",
		Color:       core.ColorWhite,
		Icon:        difficulty.IconNormal,
	},
	{
		Selector:    difficulty.Expert,
		Label:       "Expert",
		Description: "Greater difficulty and loot, for experienced players.",
		Color:       core.ColorOrange,
		Icon:        iconExpert,
	},
	{
		Selector:    difficulty.Master,
		Label:       "Master",
		Description: "Ultimate challenge and reward, for the most daring.",
		Color:       core.ColorBrightRed,
		Icon:        iconMaster,
	},
}

// BuiltinOption returns the option of a numbered mode.
func BuiltinOption(k difficulty.Kind) (Option, bool) {
	for _, o := range builtinOptions {
		if o.Selector.Kind == k {
			return o, true
		}
	}
	return Option{}, false
}

// DifficultyOptions lists the built-in modes followed by every registered
// descriptor in registry order.
func DifficultyOptions(reg *difficulty.Registry) []Option {
	opts := make([]Option, len(builtinOptions), len(builtinOptions)+reg.Len())
	copy(opts, builtinOptions)

	reg.Each(func(_ int, d difficulty.Descriptor) bool {
		opts = append(opts, Option{
			Selector:    difficulty.CustomOf(d),
			Label:       d.DisplayName(),
			Description: d.Description(),
			Color:       d.TextColor(),
			Icon:        d.ButtonIcon(),
		})
		return true
	})
	return opts
}

// Preview is the state of the preview plate.
type Preview struct {
	Sky   string
	Bunny string
	Tint  core.Color
	Size  core.WorldSize
	Evil  core.Evil

	// Unloaded is set when a custom selector has no registered descriptor.
	Unloaded bool
}

// PreviewFor derives the preview plate of a selection.
func PreviewFor(reg *difficulty.Registry, sel difficulty.Selector, size core.WorldSize, evil core.Evil) Preview {
	p := Preview{
		Sky:   difficulty.PreviewSkyNormal,
		Bunny: difficulty.PreviewBunnyNormal,
		Tint:  core.ColorWhite,
		Size:  size,
		Evil:  evil,
	}

	switch sel.Kind {
	case difficulty.KindJourney:
		p.Bunny = bunnyCreative
	case difficulty.KindExpert:
		p.Sky, p.Bunny, p.Tint = skyExpert, bunnyExpert, core.ColorDarkGray
	case difficulty.KindMaster:
		p.Sky, p.Bunny, p.Tint = skyMaster, bunnyMaster, core.ColorDarkGray
	case difficulty.KindCustom:
		d, ok := reg.FindByIdentity(sel.Origin, sel.Name)
		if !ok {
			p.Bunny = bunnyCreative
			p.Unloaded = true
			break
		}
		p.Sky, p.Bunny, p.Tint = d.PreviewSky(), d.PreviewBunny(), d.PreviewTint()
	}
	return p
}
