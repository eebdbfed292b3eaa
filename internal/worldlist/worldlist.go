// Package worldlist builds the entries of the world select screen.
package worldlist

import (
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/worldforge/internal/core"
	"github.com/vovakirdan/worldforge/internal/difficulty"
	"github.com/vovakirdan/worldforge/internal/storage"
	"github.com/vovakirdan/worldforge/internal/wizard"
	"github.com/vovakirdan/worldforge/internal/worldfile"
)

// UnloadedLabel is shown for custom difficulties that cannot be resolved.
const UnloadedLabel = "Unloaded"

// Index lists the known worlds.
type Index interface {
	Worlds() ([]storage.WorldRecord, error)
}

// Entry is one row of the world select screen.
type Entry struct {
	Name      string
	Path      string
	Location  worldfile.Location
	Size      core.WorldSize
	CreatedAt time.Time
	Seed      string

	Label    string
	Color    core.Color
	Unloaded bool

	// Err is set when the world's difficulty record is corrupt.
	Err error
}

type label struct {
	text     string
	color    core.Color
	unloaded bool
	err      error
}

// Lister builds entries and memoizes difficulty labels per world for the
// browsing session.
type Lister struct {
	index  Index
	reader *worldfile.Reader
	reg    *difficulty.Registry
	logger *log.Logger

	mu     sync.Mutex
	labels map[worldfile.Key]label
}

// NewLister creates a lister. A nil logger means log.Default().
func NewLister(index Index, reader *worldfile.Reader, reg *difficulty.Registry, logger *log.Logger) *Lister {
	if logger == nil {
		logger = log.Default()
	}
	return &Lister{
		index:  index,
		reader: reader,
		reg:    reg,
		logger: logger,
		labels: make(map[worldfile.Key]label),
	}
}

// Entries lists every indexed world with its difficulty label.
func (l *Lister) Entries() ([]Entry, error) {
	records, err := l.index.Worlds()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, l.Entry(rec))
	}
	return entries, nil
}

// Entry builds the entry of one world.
func (l *Lister) Entry(rec storage.WorldRecord) Entry {
	loc := worldfile.Local
	if rec.Cloud {
		loc = worldfile.Cloud
	}
	lbl := l.label(rec.Path, loc, difficulty.Kind(rec.GameMode))
	return Entry{
		Name:      rec.Name,
		Path:      rec.Path,
		Location:  loc,
		Size:      core.SizeFromBounds(rec.Width),
		CreatedAt: rec.CreatedAt,
		Seed:      rec.Seed,
		Label:     lbl.text,
		Color:     lbl.color,
		Unloaded:  lbl.unloaded,
		Err:       lbl.err,
	}
}

// Reset forgets memoized labels and cached file reads.
func (l *Lister) Reset() {
	l.mu.Lock()
	l.labels = make(map[worldfile.Key]label)
	l.mu.Unlock()
	l.reader.Cache().Reset()
}

func (l *Lister) label(path string, loc worldfile.Location, mode difficulty.Kind) label {
	if opt, ok := wizard.BuiltinOption(mode); ok {
		return label{text: opt.Label, color: opt.Color}
	}

	key := worldfile.Key{Path: path, Location: loc}
	l.mu.Lock()
	defer l.mu.Unlock()
	if lbl, ok := l.labels[key]; ok {
		return lbl
	}
	lbl := l.resolve(path, loc)
	l.labels[key] = lbl
	return lbl
}

func (l *Lister) resolve(path string, loc worldfile.Location) label {
	unloaded := label{text: UnloadedLabel, color: core.ColorGray, unloaded: true}

	tag, err := l.reader.ReadTag(path, loc, difficulty.SystemIdentity)
	if err != nil {
		var cerr *worldfile.CorruptCustomDataError
		if !errors.As(err, &cerr) {
			l.logger.Warn("cannot read world tag", "path", path, "location", loc, "err", err)
		}
		unloaded.err = err
		return unloaded
	}
	if tag == nil {
		return unloaded
	}

	origin, ok := tag.TryGetString(difficulty.KeySource)
	if !ok {
		return unloaded
	}
	name, ok := tag.TryGetString(difficulty.KeyName)
	if !ok {
		return unloaded
	}
	d, ok := l.reg.FindByIdentity(origin, name)
	if !ok {
		return unloaded
	}
	return label{text: d.DisplayName(), color: d.TextColor()}
}
