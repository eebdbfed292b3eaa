package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/worldforge/internal/difficulty"
	"github.com/vovakirdan/worldforge/internal/storage"
	"github.com/vovakirdan/worldforge/internal/wizard"
	"github.com/vovakirdan/worldforge/internal/worldfile"
	"github.com/vovakirdan/worldforge/internal/worldgen"
	"github.com/vovakirdan/worldforge/internal/worldlist"
)

// Services are the process-wide collaborators shared by every session.
// Wizard.Rand must be nil when sessions run concurrently.
type Services struct {
	Registry  *difficulty.Registry
	Profiles  difficulty.Profiles
	Store     *storage.Store
	Cache     *worldfile.Cache
	WorldsDir string
	Wizard    wizard.Config
	Logger    *log.Logger
}

// Session holds the per-session state: its own difficulty system, the
// writer bound to it and the world lister.
type Session struct {
	System    *difficulty.System
	Wizard    *wizard.Wizard
	Generator wizard.Generator
	Lister    *worldlist.Lister
	Logger    *log.Logger

	JourneyPlayer bool
}

// NewSession creates the state of one session. Sessions share the
// registry, the store and the file cache.
func (s Services) NewSession() Session {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}

	cache := s.Cache
	if cache == nil {
		cache = NewFileCache(s.Store)
	}

	sys := difficulty.NewSystem(s.Registry,
		difficulty.WithProfiles(s.Profiles),
		difficulty.WithLogger(logger),
	)
	writer := worldgen.NewWriter(s.WorldsDir, s.Store, sys,
		worldgen.WithCache(cache),
		worldgen.WithLogger(logger),
	)

	sess := Session{
		System:    sys,
		Wizard:    wizard.New(sys, s.Wizard),
		Generator: writer,
		Logger:    logger,

		JourneyPlayer: s.Wizard.JourneyPlayer,
	}
	if s.Store != nil {
		reader := worldfile.NewReader(cache, logger)
		sess.Lister = worldlist.NewLister(s.Store, reader, sys.Registry(), logger)
	}
	return sess
}

// NewFileCache creates the file cache over local disk and, with a store,
// its cloud files.
func NewFileCache(store *storage.Store) *worldfile.Cache {
	router := worldfile.Router{Local: worldfile.Disk{}}
	if store != nil {
		router = worldfile.NewRouter(storage.CloudFiles{Store: store})
	}
	return worldfile.NewCache(router)
}
