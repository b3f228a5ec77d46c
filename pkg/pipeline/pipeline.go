// Package pipeline loads karyotype datasets and renders them to artifacts.
//
// The CLI and the HTTP server share this code, so caching and validation
// behave the same from both entry points.
//
// # Stages
//
//  1. Load: read a dataset from a file, a [io.Source], or take it preloaded
//  2. Render: draw one view per requested mode and serialize each format
//
// Renders of different modes run in parallel; each draws its own view on a
// private surface.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "hg38.json",
//	    Modes:   []karyotype.Mode{karyotype.ModeAll, karyotype.ModeNrph},
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	svg := result.Artifacts[pipeline.ArtifactName(karyotype.ModeAll, pipeline.FormatSVG)]
//
// [io.Source]: github.com/karyoview/karyoview/pkg/io.Source
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/karyoview/karyoview/pkg/cache"
	"github.com/karyoview/karyoview/pkg/errors"
	"github.com/karyoview/karyoview/pkg/karyotype"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatHTML: true,
	FormatJSON: true,
}

// DefaultTTL is how long rendered artifacts stay cached.
const DefaultTTL = 24 * time.Hour

// Options configures a pipeline run.
type Options struct {
	// Exactly one of Dataset, Path and Name selects the input.
	Dataset *karyotype.Dataset `json:"-"`
	Path    string             `json:"path,omitempty"` // JSON file
	Name    string             `json:"name,omitempty"` // looked up in the runner's source

	Modes   []karyotype.Mode `json:"modes,omitempty"`
	Formats []string         `json:"formats,omitempty"`

	Geometry karyotype.Geometry `json:"geometry"`
	Colors   []string           `json:"colors,omitempty"`
	Title    string             `json:"title,omitempty"`

	// PageTitle heads HTML output. Defaults to the dataset name or path.
	PageTitle string `json:"page_title,omitempty"`

	Refresh bool          `json:"refresh,omitempty"` // ignore cached artifacts
	TTL     time.Duration `json:"-"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Dataset     *karyotype.Dataset
	DatasetHash string
	Summary     karyotype.Summary

	// Artifacts are keyed by [ArtifactName].
	Artifacts map[string][]byte

	// Effective maps each requested mode to the mode actually drawn.
	Effective map[karyotype.Mode]karyotype.Mode

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ContigCount int
	LoadTime    time.Duration
	RenderTime  time.Duration
}

// CacheInfo counts artifact cache lookups.
type CacheInfo struct {
	Hits   int
	Misses int
}

// AllHit reports whether every artifact came from the cache.
func (c CacheInfo) AllHit() bool { return c.Misses == 0 && c.Hits > 0 }

// ArtifactName names the artifact of one mode and format, e.g. "nrph.svg".
// HTML and JSON cover every mode and are named "karyotype.html" and
// "summary.json".
func ArtifactName(m karyotype.Mode, format string) string {
	switch format {
	case FormatHTML:
		return "karyotype.html"
	case FormatJSON:
		return "summary.json"
	}
	return string(m) + "." + format
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, html, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that exactly one input is selected.
func (o *Options) ValidateForLoad() error {
	n := 0
	for _, set := range []bool{o.Dataset != nil, o.Path != "", o.Name != ""} {
		if set {
			n++
		}
	}
	if n != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "exactly one of dataset, path or name is required")
	}
	if o.Name != "" {
		if err := errors.ValidateDatasetName(o.Name); err != nil {
			return err
		}
	}
	o.setLogger()
	return nil
}

// ValidateForRender validates modes, formats and geometry, applying
// defaults first.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	for _, m := range o.Modes {
		if !m.Valid() {
			return errors.New(errors.ErrCodeInvalidMode, "unknown visualization %q", m)
		}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := o.Geometry.Validate(); err != nil {
		return err
	}
	if len(o.Colors) < 2 {
		return errors.New(errors.ErrCodeInvalidConfig, "legend needs at least 2 colors, got %d", len(o.Colors))
	}
	return nil
}

// SetRenderDefaults fills unset render options.
func (o *Options) SetRenderDefaults() {
	if len(o.Modes) == 0 {
		o.Modes = []karyotype.Mode{karyotype.ModeAll}
	}
	o.Modes = uniqueModes(o.Modes)
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Geometry == (karyotype.Geometry{}) {
		o.Geometry = karyotype.DefaultGeometry()
	}
	if len(o.Colors) == 0 {
		o.Colors = karyotype.DefaultLegendColors
	}
	if o.Title == "" {
		o.Title = karyotype.DefaultLegendTitle
	}
	if o.PageTitle == "" {
		o.PageTitle = o.inputName()
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	o.setLogger()
}

func uniqueModes(modes []karyotype.Mode) []karyotype.Mode {
	seen := make(map[karyotype.Mode]bool, len(modes))
	out := modes[:0:0]
	for _, m := range modes {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

func (o *Options) inputName() string {
	switch {
	case o.Name != "":
		return o.Name
	case o.Path != "":
		return o.Path
	}
	return "Karyotype"
}

// ArtifactKeyOpts returns cache key options for one artifact.
func (o *Options) ArtifactKeyOpts(m karyotype.Mode, format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Mode:     string(m),
		Format:   format,
		Geometry: o.Geometry,
		Colors:   o.Colors,
		Title:    o.Title,
	}
	if format != FormatSVG {
		opts.Mode = fmt.Sprint(o.Modes)
	}
	if format == FormatHTML {
		opts.Title += "|" + o.PageTitle
	}
	return opts
}

// ViewOptions returns the view options for a render of mode m of a dataset
// with the given hash. View ids derive from both so output is reproducible.
func (o *Options) ViewOptions(datasetHash string, m karyotype.Mode) []karyotype.Option {
	id := string(m)
	if len(datasetHash) >= 8 {
		id = datasetHash[:8] + "-" + id
	}
	return []karyotype.Option{
		karyotype.WithGeometry(o.Geometry),
		karyotype.WithLegendColors(o.Colors),
		karyotype.WithLegendTitle(o.Title),
		karyotype.WithLogger(o.Logger),
		karyotype.WithID(id),
		karyotype.WithStaticTooltips(),
	}
}
