package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/boxflow/pkg/cache"
	"github.com/matzehuels/boxflow/pkg/pipeline"
	"github.com/matzehuels/boxflow/pkg/scroll"
	"github.com/matzehuels/boxflow/pkg/storage"
)

// Cache backends accepted in [CacheConfig].
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Storage backends accepted in [ServerConfig].
const (
	storeMemory = "memory"
	storeFile   = "file"
	storeMongo  = "mongo"
)

// Config is the contents of config.toml. Flags override every field.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Scroll ScrollConfig `toml:"scroll"`
}

type LayoutConfig struct {
	Width        float64 `toml:"width"`
	Height       float64 `toml:"height"`
	RootFontSize float64 `toml:"root_font_size"`
	Measurer     string  `toml:"measurer"`
}

type RenderConfig struct {
	Formats    []string `toml:"formats"`
	Style      string   `toml:"style"`
	Scale      float64  `toml:"scale"`
	EmbedFonts bool     `toml:"embed_fonts"`
	Scrollbars *bool    `toml:"scrollbars"`
}

type CacheConfig struct {
	Backend       string   `toml:"backend"`
	TTL           duration `toml:"ttl"`
	Dir           string   `toml:"dir"`
	RedisURL      string   `toml:"redis_url"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisDB       int      `toml:"redis_db"`
	RedisPassword string   `toml:"redis_password"`
	RedisPrefix   string   `toml:"redis_prefix"`
}

type ServerConfig struct {
	Addr            string   `toml:"addr"`
	Store           string   `toml:"store"`
	StoreDir        string   `toml:"store_dir"`
	StoreTTL        duration `toml:"store_ttl"`
	MongoURI        string   `toml:"mongo_uri"`
	MongoDatabase   string   `toml:"mongo_database"`
	MongoCollection string   `toml:"mongo_collection"`
	MaxBodyBytes    int64    `toml:"max_body_bytes"`
}

type ScrollConfig struct {
	Sensitivity float64 `toml:"sensitivity"`
	Increment   float64 `toml:"increment"`
}

// duration decodes TOML strings such as "12h" or "30m".
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", b, err)
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			Measurer: pipeline.DefaultMeasurer,
		},
		Render: RenderConfig{
			Formats: []string{pipeline.FormatSVG},
			Style:   pipeline.DefaultStyle,
			Scale:   pipeline.DefaultScale,
		},
		Cache: CacheConfig{
			Backend:     backendFile,
			RedisPrefix: cache.DefaultRedisPrefix,
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			Store:        storeFile,
			StoreTTL:     duration{storage.DefaultTTL},
			MaxBodyBytes: 8 << 20,
		},
		Scroll: ScrollConfig{
			Sensitivity: scroll.DefaultSensitivity,
			Increment:   scroll.DefaultIncrement,
		},
	}
}

// LoadConfig reads the config file at path over the defaults. An empty path
// means the default location, which may be missing; an explicit path must
// exist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the enumerated fields.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case backendFile, backendRedis, backendNone:
	default:
		return fmt.Errorf("cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	switch c.Server.Store {
	case storeMemory, storeFile, storeMongo:
	default:
		return fmt.Errorf("server.store must be memory, file or mongo, got %q", c.Server.Store)
	}
	if c.Server.Store == storeMongo && c.Server.MongoURI == "" {
		return fmt.Errorf("server.mongo_uri is required for the mongo store")
	}
	if c.Layout.Measurer != "" {
		if err := pipeline.ValidateMeasurer(c.Layout.Measurer); err != nil {
			return err
		}
	}
	if c.Render.Style != "" {
		if err := pipeline.ValidateStyle(c.Render.Style); err != nil {
			return err
		}
	}
	return pipeline.ValidateFormats(c.Render.Formats)
}

// Options returns pipeline options seeded from the config.
func (c *Config) Options() pipeline.Options {
	opts := pipeline.Options{
		Width:        c.Layout.Width,
		Height:       c.Layout.Height,
		RootFontSize: c.Layout.RootFontSize,
		Measurer:     c.Layout.Measurer,
		Formats:      append([]string(nil), c.Render.Formats...),
		Style:        c.Render.Style,
		Scale:        c.Render.Scale,
		EmbedFonts:   c.Render.EmbedFonts,
		Scrollbars:   c.Render.Scrollbars,
	}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	return opts
}

// configPath returns the config file location using XDG
// (~/.config/boxflow/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
