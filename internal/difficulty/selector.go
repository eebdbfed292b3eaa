package difficulty

import "fmt"

// Kind is the numbered game mode stored in a world's header. The numbered
// modes are built in; KindCustom defers to a registered descriptor.
type Kind int

const (
	KindClassic Kind = 0
	KindExpert  Kind = 1
	KindMaster  Kind = 2
	KindJourney Kind = 3
	KindCustom  Kind = 4
)

// VanillaOrigin is the origin string of the built-in modes.
const VanillaOrigin = "Terraria"

// String returns the mode name.
func (k Kind) String() string {
	switch k {
	case KindClassic:
		return "Classic"
	case KindExpert:
		return "Expert"
	case KindMaster:
		return "Master"
	case KindJourney:
		return "Journey"
	case KindCustom:
		return "Custom"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsBuiltin reports whether k is one of the four numbered modes.
func (k Kind) IsBuiltin() bool {
	return k >= KindClassic && k <= KindJourney
}

// Selector records which difficulty is active for a world. For custom
// difficulties the identity may refer to a descriptor that is not currently
// registered; consumers must degrade instead of failing.
type Selector struct {
	Kind   Kind
	Origin string
	Name   string
}

// Sentinel selectors of the numbered modes.
var (
	Classic = Selector{Kind: KindClassic, Origin: VanillaOrigin, Name: "Classic"}
	Expert  = Selector{Kind: KindExpert, Origin: VanillaOrigin, Name: "Expert"}
	Master  = Selector{Kind: KindMaster, Origin: VanillaOrigin, Name: "Master"}
	Journey = Selector{Kind: KindJourney, Origin: VanillaOrigin, Name: "Journey"}
)

// Custom returns the selector of a custom difficulty.
func Custom(origin, name string) Selector {
	return Selector{Kind: KindCustom, Origin: origin, Name: name}
}

// CustomOf returns the selector that activates d.
func CustomOf(d Descriptor) Selector {
	id := IdentityOf(d)
	return Custom(id.Origin, id.Name)
}

// BuiltinSelector returns the sentinel selector for a numbered mode.
func BuiltinSelector(k Kind) (Selector, bool) {
	switch k {
	case KindClassic:
		return Classic, true
	case KindExpert:
		return Expert, true
	case KindMaster:
		return Master, true
	case KindJourney:
		return Journey, true
	default:
		return Selector{}, false
	}
}

// IsCustom reports whether the selector refers to a pluggable difficulty.
func (s Selector) IsCustom() bool {
	return s.Kind == KindCustom
}

// Identity returns the (origin, name) pair of the selector.
func (s Selector) Identity() Identity {
	return Identity{Origin: s.Origin, Name: s.Name}
}

// Matches reports whether the selector activates the given identity.
func (s Selector) Matches(id Identity) bool {
	return s.Kind == KindCustom && s.Origin == id.Origin && s.Name == id.Name
}

func (s Selector) String() string {
	if s.Kind == KindCustom {
		return s.Origin + "/" + s.Name
	}
	return s.Kind.String()
}
