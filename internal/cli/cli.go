// Package cli implements the anchor command-line interface.
//
// # Commands
//
//   - grid: plan a grid, or explore one interactively
//   - check: build a scene file and report every statement's outcome
//   - overlay: render the constraint overlay of a scene
//   - snapshot: capture a scene to a file or the snapshot store
//   - serve: run the HTTP API
//   - cache: manage the artifact cache
//
// All commands support --verbose (-v) for debug-level logging and --config
// for an explicit anchor.toml.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/anchor/pkg/buildinfo"
	"github.com/matzehuels/anchor/pkg/cache"
	"github.com/matzehuels/anchor/pkg/dock"
	"github.com/matzehuels/anchor/pkg/scene"
	"github.com/matzehuels/anchor/pkg/snapshot"
)

// appName is the application name used for directories and display.
const appName = "anchor"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// keyPrefix scopes cache keys so a shared Redis can be cleared selectively.
const keyPrefix = "anchor:v1:"

var envKeyReplacer = strings.NewReplacer(".", "_")

func keyer() cache.Keyer { return cache.NewScopedKeyer(nil, keyPrefix) }

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	stderr     io.Writer
	viper      *viper.Viper
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		stderr: w,
		viper:  viper.New(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Anchor builds and inspects constraint layouts",
		Long:         `Anchor is a constraint-algebra layout engine. It plans grids, checks scene files against the constraint rules, renders constraint overlays and records layout snapshots.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.viper, c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default anchor.toml)")

	root.AddCommand(c.gridCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.overlayCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// openCache returns the configured cache. Backends that cannot be opened
// degrade to no caching.
func (c *CLI) openCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	switch c.Config.Cache.Backend {
	case "none":
		return cache.NewNullCache()
	case "redis":
		rc, err := spin(ctx, c.stderr, "Connecting to Redis...", func() (*cache.RedisCache, error) {
			return cache.NewRedisCache(ctx, cache.RedisOptions{Addr: c.Config.Cache.RedisAddr})
		})
		if err != nil {
			c.Logger.Warn("caching disabled", "error", err)
			return cache.NewNullCache()
		}
		return rc
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("caching disabled", "error", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("caching disabled", "error", err)
		return cache.NewNullCache()
	}
	return fc
}

func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// openStore returns the configured snapshot store.
func (c *CLI) openStore(ctx context.Context) (snapshot.Store, error) {
	if c.Config.Store.Backend == "mongo" {
		ms, err := spin(ctx, c.stderr, "Connecting to MongoDB...", func() (*snapshot.MongoStore, error) {
			return snapshot.NewMongoStore(ctx, snapshot.MongoConfig{
				URI:      c.Config.Store.MongoURI,
				Database: c.Config.Store.MongoDatabase,
			})
		})
		if err != nil {
			return nil, fmt.Errorf("open snapshot store: %w", err)
		}
		return ms, nil
	}
	return snapshot.NewMemoryStore(), nil
}

// buildOptions turns the configuration into scene build options.
func (c *CLI) buildOptions() ([]scene.BuildOption, error) {
	opts := []scene.BuildOption{
		scene.WithLogger(c.Logger),
		scene.WithViewMargins(c.Config.ViewMargins),
	}
	if c.Config.StandardSpacing > 0 {
		opts = append(opts, scene.WithStandardSpacing(c.Config.StandardSpacing))
	}
	fit, err := dock.ParseFit(c.Config.DefaultFit)
	if err != nil {
		return nil, fmt.Errorf("default_fit: %w", err)
	}
	return append(opts, scene.WithDefaultFit(fit)), nil
}

// sceneHash identifies a scene together with the configuration that
// affects how it builds.
func (c *CLI) sceneHash(raw []byte) string {
	settings := fmt.Sprintf("\x00%g|%s|%t", c.Config.StandardSpacing, c.Config.DefaultFit, c.Config.ViewMargins)
	return cache.Hash(append(raw, settings...))
}

// buildScene loads and builds the scene file at path.
func (c *CLI) buildScene(path string) (*scene.Result, error) {
	sc, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	opts, err := c.buildOptions()
	if err != nil {
		return nil, err
	}
	return scene.Build(sc, opts...)
}
