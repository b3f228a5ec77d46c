package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/karyoview/karyoview/pkg/errors"
	"github.com/karyoview/karyoview/pkg/karyotype"
)

func TestDefaultMatchesKaryotype(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if got := cfg.KaryotypeGeometry(); got != karyotype.DefaultGeometry() {
		t.Errorf("geometry = %+v, want %+v", got, karyotype.DefaultGeometry())
	}
	if !slices.Equal(cfg.Legend.Colors, karyotype.DefaultLegendColors) {
		t.Errorf("colors = %v", cfg.Legend.Colors)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[geometry]
height = 400

[legend]
colors = ["#000", "#f00", "#0f0"]

[cache]
backend = "redis"
ttl = "90m"
redis_url = "redis://localhost:6379/1"

[source]
mongo_uri = "mongodb://localhost:27017"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Geometry.Height != 400 {
		t.Errorf("height = %d, want 400", cfg.Geometry.Height)
	}
	if cfg.Geometry.GlyphWidth != 18 {
		t.Errorf("glyph width = %d, want default 18", cfg.Geometry.GlyphWidth)
	}
	if !slices.Equal(cfg.Legend.Colors, []string{"#000", "#f00", "#0f0"}) {
		t.Errorf("colors = %v", cfg.Legend.Colors)
	}
	if cfg.Legend.Title != karyotype.DefaultLegendTitle {
		t.Errorf("title = %q, want default", cfg.Legend.Title)
	}
	if cfg.Cache.Backend != CacheRedis || cfg.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Source.MongoURI != "mongodb://localhost:27017" || cfg.Source.MongoDatabase != "karyoview" {
		t.Errorf("source = %+v", cfg.Source)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `[geometry`},
		{"unknown key", "[geometry]\nwidth = 3"},
		{"bad ttl", "[cache]\nttl = \"soon\""},
		{"small glyph", "[geometry]\nglyph_width = 2"},
		{"flat glyph", "[geometry]\nheight = 20"},
		{"one color", "[legend]\ncolors = [\"#fff\"]"},
		{"bad backend", "[cache]\nbackend = \"memcached\""},
		{"redis without url", "[cache]\nbackend = \"redis\""},
		{"negative ttl", "[cache]\nttl = \"-1h\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := Parse([]byte(tt.data), &cfg)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse() err = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	got, err := DefaultPath("karyoview")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", "karyoview", "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestViewOptions(t *testing.T) {
	cfg := Default()
	cfg.Legend.Title = "Hits"
	if n := len(cfg.ViewOptions()); n != 3 {
		t.Errorf("options = %d, want 3", n)
	}
}
