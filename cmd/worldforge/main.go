// worldforge creates and browses worlds with pluggable difficulties.
//
// Usage:
//
//	worldforge create          - Create a world (interactive or from flags)
//	worldforge worlds          - List saved worlds with their difficulty
//	worldforge difficulties    - List registered difficulties
//	worldforge inspect <world> - Show the difficulty record of a world file
//	worldforge seed <text>     - Decode a seed string
//	worldforge serve           - Start SSH server for remote sessions
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.worldforge/config.yaml)
//	--db <path>         - World index database
//	--worlds <dir>      - Directory of local worlds
//	--packs <dir>       - Directory of difficulty packs
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/worldforge/internal/config"
	"github.com/vovakirdan/worldforge/internal/difficulty"
	"github.com/vovakirdan/worldforge/internal/pack"
	"github.com/vovakirdan/worldforge/internal/platform/tui"
	"github.com/vovakirdan/worldforge/internal/storage"
	"github.com/vovakirdan/worldforge/internal/wizard"
)

var (
	// Global flags
	flagConfig    string
	flagDBPath    string
	flagWorldsDir string
	flagPacksDir  string
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "worldforge",
	Short: "WorldForge - create worlds with pluggable difficulties",
	Long: `WorldForge creates worlds through an interactive creation page and keeps
an index of them. Difficulties come from the four built-in modes and from
YAML difficulty packs.

Available commands:
  create        - Create a world
  worlds        - List saved worlds
  difficulties  - List registered difficulties
  inspect       - Show the difficulty record of a world file
  seed          - Decode a seed string
  serve         - Start SSH server for remote sessions

Examples:
  worldforge create
  worldforge create --name Terra --size large --difficulty master
  worldforge worlds
  worldforge seed 2.3.1.12345
  worldforge serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to world index database")
	rootCmd.PersistentFlags().StringVar(&flagWorldsDir, "worlds", "", "Directory of local worlds")
	rootCmd.PersistentFlags().StringVar(&flagPacksDir, "packs", "", "Directory of difficulty packs")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(worldsCmd)
	rootCmd.AddCommand(difficultiesCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(serveCmd)
}

// app holds the process-wide state shared by the commands.
type app struct {
	cfg    config.Config
	logger *log.Logger
	reg    *difficulty.Registry
	packs  *pack.Loader
	store  *storage.Store
}

// loadConfig reads the config and applies the global flags over it.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	if flagWorldsDir != "" {
		cfg.WorldsDir = flagWorldsDir
	}
	if flagPacksDir != "" {
		cfg.PacksDir = flagPacksDir
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg.Expand()
}

// newApp loads the config, the difficulty packs and, when withStore is
// set, the world index.
func newApp(withStore bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "worldforge",
		Level:           cfg.LogLevel(),
	})
	log.SetDefault(logger)

	reg := difficulty.NewRegistry()
	loader := pack.NewLoader(reg, logger)
	if err := loader.LoadDefaults(cfg.PacksDir); err != nil {
		return nil, fmt.Errorf("load difficulty packs: %w", err)
	}

	a := &app{cfg: cfg, logger: logger, reg: reg, packs: loader}
	if withStore {
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open world index: %w", err)
		}
		a.store = store
	}
	return a, nil
}

func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
}

// services returns the collaborators shared by sessions.
func (a *app) services() tui.Services {
	return tui.Services{
		Registry:  a.reg,
		Profiles:  a.cfg.Profiles.DifficultyProfiles(),
		Store:     a.store,
		Cache:     tui.NewFileCache(a.store),
		WorldsDir: a.cfg.WorldsDir,
		Wizard: wizard.Config{
			JourneyPlayer: a.cfg.JourneyPlayer,
			Cloud:         a.cfg.CloudByDefault,
		},
		Logger: a.logger,
	}
}
