package difficulty

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/worldforge/internal/tagio"
)

// Tag keys of the custom difficulty record.
const (
	KeySource = "ModDifficultySource"
	KeyName   = "ModDifficultyName"
)

// SystemIdentity owns the custom difficulty record inside a world's tag
// container.
var SystemIdentity = Identity{Origin: "WorldForge", Name: "DifficultySystem"}

// System tracks the difficulty of the world currently in play and saves
// and restores it with the world.
type System struct {
	mu       sync.RWMutex
	reg      *Registry
	profiles Profiles
	logger   *log.Logger

	current Selector
	profile Profile
}

// Option configures a System.
type Option func(*System)

// WithProfiles overrides the scaling profiles of the numbered modes.
func WithProfiles(p Profiles) Option {
	return func(s *System) {
		for k, prof := range p {
			s.profiles[k] = prof
		}
	}
}

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *System) { s.logger = l }
}

// NewSystem creates a System backed by reg with Classic active. A nil reg
// means the process-wide registry.
func NewSystem(reg *Registry, opts ...Option) *System {
	if reg == nil {
		reg = Default()
	}
	s := &System{
		reg:      reg,
		profiles: DefaultProfiles(),
		logger:   log.Default(),
		current:  Classic,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.profile = s.profiles.For(KindClassic)
	return s
}

// Registry returns the registry the system resolves against.
func (s *System) Registry() *Registry {
	return s.reg
}

// Current returns the active selector.
func (s *System) Current() Selector {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Profile returns the active scaling profile.
func (s *System) Profile() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// ProfileFor returns the scaling profile a selector resolves to. Unresolved
// custom identities yield DefaultProfile.
func (s *System) ProfileFor(sel Selector) Profile {
	if !sel.IsCustom() {
		return s.profiles.For(sel.Kind)
	}
	if d, ok := s.reg.FindByIdentity(sel.Origin, sel.Name); ok {
		return d.Profile()
	}
	return DefaultProfile
}

// Resolve returns the descriptor of the active custom difficulty.
func (s *System) Resolve() (Descriptor, bool) {
	sel := s.Current()
	if !sel.IsCustom() {
		return nil, false
	}
	return s.reg.FindByIdentity(sel.Origin, sel.Name)
}

// BeginWorld activates sel for a world that is about to be generated.
func (s *System) BeginWorld(sel Selector) {
	prof := s.ProfileFor(sel)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = sel
	s.profile = prof
}

// SaveWorldData writes the custom difficulty identity into tag when the
// active selector is custom. Built-in modes write nothing.
func (s *System) SaveWorldData(tag *tagio.Compound) {
	sel := s.Current()
	if !sel.IsCustom() {
		return
	}
	tag.Set(KeySource, sel.Origin)
	tag.Set(KeyName, sel.Name)
}

// LoadWorldData restores the selector of a loaded world. A built-in ordinal
// wins over any custom fields in tag. A custom identity that cannot be
// resolved is kept so that re-saving preserves it, while the scaling falls
// back to DefaultProfile.
func (s *System) LoadWorldData(tag *tagio.Compound, ordinal Kind) {
	if sel, ok := BuiltinSelector(ordinal); ok {
		s.mu.Lock()
		s.current = sel
		s.profile = s.profiles.For(ordinal)
		s.mu.Unlock()
		return
	}

	origin, ok := tag.TryGetString(KeySource)
	if !ok {
		return
	}
	name, ok := tag.TryGetString(KeyName)
	if !ok {
		return
	}

	sel := Custom(origin, name)
	prof := DefaultProfile
	if d, found := s.reg.FindByIdentity(origin, name); found {
		prof = d.Profile()
	} else {
		s.logger.Warn("custom difficulty not loaded, using default profile", "difficulty", sel)
	}

	s.mu.Lock()
	s.current = sel
	s.profile = prof
	s.mu.Unlock()
}

// IsActive reports whether d is the difficulty of the current world.
func (s *System) IsActive(d Descriptor) bool {
	return s.Current().Matches(IdentityOf(d))
}

// IsActiveIdentity reports whether (origin, name) is the difficulty of the
// current world.
func (s *System) IsActiveIdentity(origin, name string) bool {
	return s.Current().Matches(Identity{Origin: origin, Name: name})
}

// IsModeActive reports whether the first registered descriptor of type T is
// the difficulty of the current world.
func IsModeActive[T Descriptor](s *System) bool {
	_, d, ok := Find[T](s.reg)
	if !ok {
		return false
	}
	return s.IsActive(d)
}
