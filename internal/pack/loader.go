package pack

import (
	_ "embed"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/worldforge/internal/difficulty"
)

//go:embed builtin/worldforge.yaml
var builtinYAML []byte

// Builtin parses the pack shipped with worldforge.
func Builtin() (*Pack, error) {
	return Parse(builtinYAML, "builtin")
}

// Loader registers packs into a registry and tracks what each pack added.
type Loader struct {
	reg    *difficulty.Registry
	logger *log.Logger
	loaded map[*Pack][]*Difficulty
	order  []*Pack
}

// NewLoader creates a loader for reg. A nil logger means log.Default().
func NewLoader(reg *difficulty.Registry, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{
		reg:    reg,
		logger: logger,
		loaded: make(map[*Pack][]*Difficulty),
	}
}

// Load registers the difficulties of p and returns how many were added.
// A difficulty whose identity is taken is skipped with a warning; the rest
// of the pack still loads.
func (l *Loader) Load(p *Pack) int {
	if _, ok := l.loaded[p]; ok {
		return 0
	}

	var added []*Difficulty
	for _, d := range p.Difficulties {
		if err := l.reg.Register(d); err != nil {
			if errors.Is(err, difficulty.ErrDuplicateIdentity) {
				l.logger.Warn("skipping difficulty", "pack", p.Source, "origin", p.Origin, "name", d.Name(), "err", err)
				continue
			}
			l.logger.Error("cannot register difficulty", "pack", p.Source, "name", d.Name(), "err", err)
			continue
		}
		added = append(added, d)
	}

	l.loaded[p] = added
	l.order = append(l.order, p)
	l.logger.Debug("pack loaded", "pack", p.Source, "origin", p.Origin, "difficulties", len(added))
	return len(added)
}

// Unload removes the difficulties added by p. When no pack remains loaded
// the registry is cleared.
func (l *Loader) Unload(p *Pack) {
	added, ok := l.loaded[p]
	if !ok {
		return
	}
	for _, d := range added {
		l.reg.Unregister(d)
	}
	delete(l.loaded, p)
	for i, q := range l.order {
		if q == p {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	if len(l.order) == 0 {
		l.reg.Reset()
	}
}

// UnloadAll unloads every pack in reverse load order.
func (l *Loader) UnloadAll() {
	for len(l.order) > 0 {
		l.Unload(l.order[len(l.order)-1])
	}
}

// Packs returns the loaded packs in load order.
func (l *Loader) Packs() []*Pack {
	out := make([]*Pack, len(l.order))
	copy(out, l.order)
	return out
}

// LoadDefaults loads the builtin pack followed by every pack in dir.
func (l *Loader) LoadDefaults(dir string) error {
	builtin, err := Builtin()
	if err != nil {
		return err
	}
	l.Load(builtin)

	if dir == "" {
		return nil
	}
	packs, err := ReadDir(dir)
	if err != nil {
		return err
	}
	for _, p := range packs {
		l.Load(p)
	}
	return nil
}
