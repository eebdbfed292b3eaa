package worldgen

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/worldforge/internal/difficulty"
	"github.com/vovakirdan/worldforge/internal/seed"
	"github.com/vovakirdan/worldforge/internal/storage"
	"github.com/vovakirdan/worldforge/internal/tagio"
	"github.com/vovakirdan/worldforge/internal/wizard"
	"github.com/vovakirdan/worldforge/internal/worldfile"
)

// CloudDir is the path prefix of cloud worlds.
const CloudDir = "worlds"

// Writer persists created worlds. It implements wizard.Generator.
type Writer struct {
	dir    string
	store  *storage.Store
	sys    *difficulty.System
	cache  *worldfile.Cache
	rng    *rand.Rand
	logger *log.Logger
	now    func() time.Time
}

// Option configures a Writer.
type Option func(*Writer)

// WithCache invalidates the tag container of written worlds in c.
func WithCache(c *worldfile.Cache) Option {
	return func(w *Writer) { w.cache = c }
}

// WithRand sets the source of random seeds.
func WithRand(rng *rand.Rand) Option {
	return func(w *Writer) { w.rng = rng }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(w *Writer) { w.logger = l }
}

// WithClock sets the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) { w.now = now }
}

// NewWriter writes local worlds to dir and indexes them in store. Cloud
// worlds need a store.
func NewWriter(dir string, store *storage.Store, sys *difficulty.System, opts ...Option) *Writer {
	w := &Writer{
		dir:    dir,
		store:  store,
		sys:    sys,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: log.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Generate writes the header and tag container of req and records the
// world in the index.
func (w *Writer) Generate(ctx context.Context, req wizard.Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.Cloud && w.store == nil {
		return fmt.Errorf("worldgen: cloud world %q needs a database", req.Name)
	}

	seedText := req.Seed
	if req.RandomSeed {
		seedText = seed.Random(w.rng)
	}

	header := Header{
		Name:      req.Name,
		GameMode:  int(req.Selector.Kind),
		Width:     req.Width,
		Height:    req.Height,
		Seed:      seedText,
		Evil:      req.Evil,
		Flags:     req.Flags.Names(),
		Cloud:     req.Cloud,
		CreatedAt: w.now().UTC(),
	}
	headerData, err := MarshalHeader(header)
	if err != nil {
		return err
	}
	tagData, err := w.container()
	if err != nil {
		return err
	}

	loc := worldfile.Local
	if req.Cloud {
		loc = worldfile.Cloud
	}
	headerPath, err := w.headerPath(req.Name, loc)
	if err != nil {
		return err
	}
	tagPath := worldfile.WithExt(headerPath, worldfile.TagExt)

	if err := w.put(headerPath, loc, headerData); err != nil {
		return err
	}
	if err := w.put(tagPath, loc, tagData); err != nil {
		if rmErr := w.remove(headerPath, loc); rmErr != nil {
			w.logger.Warn("cannot remove orphan header", "path", headerPath, "err", rmErr)
		}
		return err
	}
	if w.cache != nil {
		w.cache.Invalidate(worldfile.Key{Path: tagPath, Location: loc})
	}

	if w.store != nil {
		rec := storage.WorldRecord{
			Name:     req.Name,
			Path:     headerPath,
			Cloud:    req.Cloud,
			GameMode: header.GameMode,
			Width:    req.Width,
			Height:   req.Height,
			Seed:     seedText,
			Evil:     req.Evil,
		}
		if req.Selector.IsCustom() {
			rec.DifficultyOrigin = req.Selector.Origin
			rec.DifficultyName = req.Selector.Name
		}
		if _, err := w.store.SaveWorld(rec); err != nil {
			return err
		}
	}

	w.logger.Info("world created", "name", req.Name, "path", headerPath, "location", loc, "difficulty", req.Selector)
	return nil
}

// container encodes the tag container holding the difficulty system record.
func (w *Writer) container() ([]byte, error) {
	data := tagio.NewCompound()
	w.sys.SaveWorldData(data)

	entry, err := tagio.NewModEntry(difficulty.SystemIdentity.Origin, difficulty.SystemIdentity.Name, data)
	if err != nil {
		return nil, err
	}
	return tagio.Marshal(nil, []tagio.ModEntry{entry})
}

// headerPath picks a free header path for name, numbering duplicates.
func (w *Writer) headerPath(name string, loc worldfile.Location) (string, error) {
	stem := FileStem(name)
	for i := 0; ; i++ {
		file := stem
		if i > 0 {
			file += strconv.Itoa(i)
		}
		file += worldfile.HeaderExt

		var p string
		var exists bool
		if loc == worldfile.Cloud {
			p = path.Join(CloudDir, file)
			ok, err := w.store.CloudFileExists(p)
			if err != nil {
				return "", err
			}
			exists = ok
		} else {
			p = filepath.Join(w.dir, file)
			_, err := os.Stat(p)
			exists = err == nil
		}
		if !exists {
			return p, nil
		}
	}
}

func (w *Writer) put(p string, loc worldfile.Location, data []byte) error {
	if loc == worldfile.Cloud {
		return w.store.PutCloudFile(p, data)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("worldgen: cannot create directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("worldgen: cannot write %s: %w", p, err)
	}
	return nil
}

func (w *Writer) remove(p string, loc worldfile.Location) error {
	if loc == worldfile.Cloud {
		return w.store.DeleteCloudFile(p)
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("worldgen: cannot remove %s: %w", p, err)
	}
	return nil
}
