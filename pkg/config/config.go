// Package config loads karyoview settings from a TOML file.
//
// Every field has a default (see [Default]), so a config file only needs the
// keys it changes:
//
//	[geometry]
//	height = 400
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
// Command-line flags override file values; the CLI applies them after
// [Load].
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/karyoview/karyoview/pkg/errors"
	"github.com/karyoview/karyoview/pkg/karyotype"
)

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Config is the full settings tree.
type Config struct {
	Geometry Geometry `toml:"geometry"`
	Legend   Legend   `toml:"legend"`
	Server   Server   `toml:"server"`
	Cache    Cache    `toml:"cache"`
	Source   Source   `toml:"source"`
}

// Geometry mirrors [karyotype.Geometry] with TOML keys.
type Geometry struct {
	GlyphWidth      int `toml:"glyph_width"`
	GlyphSeparation int `toml:"glyph_separation"`
	CapSize         int `toml:"cap_size"`
	CapCurve        int `toml:"cap_curve"`
	Height          int `toml:"height"`
	LegendWidth     int `toml:"legend_width"`
	LegendHeight    int `toml:"legend_height"`
	SwatchSize      int `toml:"swatch_size"`
	SwatchGap       int `toml:"swatch_gap"`
}

type Legend struct {
	Colors []string `toml:"colors"`
	Title  string   `toml:"title"`
}

type Server struct {
	Addr string `toml:"addr"`
	// DataDir holds <name>.json datasets when no MongoDB is configured.
	DataDir string `toml:"data_dir"`
}

type Cache struct {
	Backend  string   `toml:"backend"`
	TTL      Duration `toml:"ttl"`
	Dir      string   `toml:"dir"` // file backend; empty means the XDG cache dir
	RedisURL string   `toml:"redis_url"`
}

type Source struct {
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Duration is a time.Duration written as a string such as "24h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	g := karyotype.DefaultGeometry()
	return Config{
		Geometry: Geometry{
			GlyphWidth:      g.GlyphWidth,
			GlyphSeparation: g.GlyphSeparation,
			CapSize:         g.CapSize,
			CapCurve:        g.CapCurve,
			Height:          g.Height,
			LegendWidth:     g.LegendWidth,
			LegendHeight:    g.LegendHeight,
			SwatchSize:      g.SwatchSize,
			SwatchGap:       g.SwatchGap,
		},
		Legend: Legend{
			Colors: append([]string(nil), karyotype.DefaultLegendColors...),
			Title:  karyotype.DefaultLegendTitle,
		},
		Server: Server{Addr: ":8080", DataDir: "."},
		Cache:  Cache{Backend: CacheFile, TTL: Duration{24 * time.Hour}},
		Source: Source{MongoDatabase: "karyoview", MongoCollection: "datasets"},
	}
}

// Load reads path over the defaults and validates the result. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInternal, err, "read config %s", path)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.GetCode(err), err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes TOML data into cfg, keeping the values of absent keys, then
// validates cfg.
func Parse(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown key %s", undecoded[0])
	}
	return cfg.Validate()
}

// Validate checks geometry, legend and cache settings.
func (c Config) Validate() error {
	if err := c.KaryotypeGeometry().Validate(); err != nil {
		return err
	}
	if len(c.Legend.Colors) < 2 {
		return errors.New(errors.ErrCodeInvalidConfig, "legend needs at least 2 colors, got %d", len(c.Legend.Colors))
	}
	switch c.Cache.Backend {
	case CacheNone, CacheFile:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "redis cache backend needs redis_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be none, file or redis)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl cannot be negative")
	}
	return nil
}

// KaryotypeGeometry converts the geometry section.
func (c Config) KaryotypeGeometry() karyotype.Geometry {
	g := c.Geometry
	return karyotype.Geometry{
		GlyphWidth:      g.GlyphWidth,
		GlyphSeparation: g.GlyphSeparation,
		CapSize:         g.CapSize,
		CapCurve:        g.CapCurve,
		Height:          g.Height,
		LegendWidth:     g.LegendWidth,
		LegendHeight:    g.LegendHeight,
		SwatchSize:      g.SwatchSize,
		SwatchGap:       g.SwatchGap,
	}
}

// ViewOptions returns the view options the config implies.
func (c Config) ViewOptions() []karyotype.Option {
	return []karyotype.Option{
		karyotype.WithGeometry(c.KaryotypeGeometry()),
		karyotype.WithLegendColors(c.Legend.Colors),
		karyotype.WithLegendTitle(c.Legend.Title),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/<app>/config.toml, falling back to
// ~/.config.
func DefaultPath(app string) (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, app, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", app, "config.toml"), nil
}
