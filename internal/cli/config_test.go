package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

// isolate runs the test in an empty directory with no user config.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)

	cfg, err := loadConfig(viper.New(), "")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.StandardSpacing != 8 {
		t.Errorf("StandardSpacing = %v, want 8", cfg.StandardSpacing)
	}
	if cfg.DefaultFit != "margin" {
		t.Errorf("DefaultFit = %q, want margin", cfg.DefaultFit)
	}
	if cfg.Cache.Backend != "file" || cfg.Cache.TTL != 24*time.Hour {
		t.Errorf("Cache = %+v, want file backend with 24h ttl", cfg.Cache)
	}
	if cfg.Store.Backend != "memory" || cfg.Store.MongoDatabase != "anchor" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("Serve.Addr = %q, want :8080", cfg.Serve.Addr)
	}
}

func TestLoadConfigSources(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string) string
		check func(t *testing.T, cfg Config)
	}{
		{
			name: "working directory file",
			setup: func(t *testing.T, dir string) string {
				writeFile(t, filepath.Join(dir, "anchor.toml"), "standard_spacing = 12\n\n[cache]\nbackend = \"none\"\nttl = \"5m\"\n")
				return ""
			},
			check: func(t *testing.T, cfg Config) {
				if cfg.StandardSpacing != 12 {
					t.Errorf("StandardSpacing = %v, want 12", cfg.StandardSpacing)
				}
				if cfg.Cache.Backend != "none" || cfg.Cache.TTL != 5*time.Minute {
					t.Errorf("Cache = %+v", cfg.Cache)
				}
			},
		},
		{
			name: "config directory file",
			setup: func(t *testing.T, dir string) string {
				writeFile(t, filepath.Join(dir, "config", appName, "anchor.toml"), "[serve]\naddr = \":9999\"\n")
				return ""
			},
			check: func(t *testing.T, cfg Config) {
				if cfg.Serve.Addr != ":9999" {
					t.Errorf("Serve.Addr = %q, want :9999", cfg.Serve.Addr)
				}
			},
		},
		{
			name: "explicit path",
			setup: func(t *testing.T, dir string) string {
				path := filepath.Join(dir, "custom.toml")
				writeFile(t, path, "default_fit = \"tight\"\nview_margins = true\n")
				return path
			},
			check: func(t *testing.T, cfg Config) {
				if cfg.DefaultFit != "tight" || !cfg.ViewMargins {
					t.Errorf("cfg = %+v, want tight fit with view margins", cfg)
				}
			},
		},
		{
			name: "environment",
			setup: func(t *testing.T, dir string) string {
				t.Setenv("ANCHOR_STANDARD_SPACING", "4")
				t.Setenv("ANCHOR_STORE_BACKEND", "mongo")
				t.Setenv("ANCHOR_STORE_MONGO_URI", "mongodb://db:27017")
				return ""
			},
			check: func(t *testing.T, cfg Config) {
				if cfg.StandardSpacing != 4 {
					t.Errorf("StandardSpacing = %v, want 4", cfg.StandardSpacing)
				}
				if cfg.Store.Backend != "mongo" || cfg.Store.MongoURI != "mongodb://db:27017" {
					t.Errorf("Store = %+v", cfg.Store)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := tt.setup(t, dir)
			cfg, err := loadConfig(viper.New(), path)
			if err != nil {
				t.Fatalf("loadConfig() error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		path    string
	}{
		{name: "unknown cache backend", content: "[cache]\nbackend = \"disk\"\n"},
		{name: "unknown store backend", content: "[store]\nbackend = \"sqlite\"\n"},
		{name: "malformed file", content: "standard_spacing = [\n"},
		{name: "missing explicit file", path: "missing.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := tt.path
			if tt.content != "" {
				path = filepath.Join(dir, "anchor.toml")
				writeFile(t, path, tt.content)
			}
			if _, err := loadConfig(viper.New(), path); err == nil {
				t.Error("loadConfig() succeeded, want error")
			}
		})
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestXDGDirs(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")

	tests := []struct {
		name string
		fn   func() (string, error)
		want string
	}{
		{"cache", cacheDir, filepath.Join("/tmp/custom-cache", appName)},
		{"config", configDir, filepath.Join("/tmp/custom-config", appName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn()
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
