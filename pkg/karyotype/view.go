package karyotype

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/karyoview/karyoview/pkg/errors"
	"github.com/karyoview/karyoview/pkg/observability"
	"github.com/karyoview/karyoview/pkg/surface"
)

// ViewState is the mode-dependent state of a view. It is replaced as a whole
// on every switch.
type ViewState struct {
	Mode         Mode // effective mode
	Requested    Mode // mode asked for; differs from Mode after a fallback
	MaxMagnitude int
	Legend       Legend
}

// FellBack reports whether the requested mode could not be honored.
func (s ViewState) FellBack() bool { return s.Requested != s.Mode }

// Option configures a View.
type Option func(*View)

// WithGeometry overrides [DefaultGeometry].
func WithGeometry(g Geometry) Option { return func(v *View) { v.geom = g } }

// WithLegendColors overrides [DefaultLegendColors]. The first color is the
// zero bucket.
func WithLegendColors(colors []string) Option {
	return func(v *View) { v.colors = append([]string(nil), colors...) }
}

// WithLegendTitle overrides [DefaultLegendTitle].
func WithLegendTitle(title string) Option { return func(v *View) { v.title = title } }

// WithLogger sets the logger for switch diagnostics and default selections.
func WithLogger(l *log.Logger) Option { return func(v *View) { v.logger = l } }

// WithSelectHandler receives the descriptor of every hit rectangle the
// pointer goes down on. By default selections are logged.
func WithSelectHandler(fn func(descriptor string)) Option {
	return func(v *View) { v.onSelect = fn }
}

// WithID fixes the view id used to scope element ids. Defaults to a random
// UUID.
func WithID(id string) Option { return func(v *View) { v.id = id } }

// WithStaticTooltips annotates every hit rectangle with the bubble path that
// fits its descriptor, for hosts that script the tooltip themselves.
func WithStaticTooltips() Option { return func(v *View) { v.staticTips = true } }

// View is a live karyotype bound to a surface container.
type View struct {
	doc       surface.Document
	container surface.Element
	ds        *Dataset

	id         string
	geom       Geometry
	colors     []string
	title      string
	staticTips bool
	logger     *log.Logger
	onSelect   func(string)

	summary Summary
	scale   Scale
	state   ViewState

	root surface.Element // the one live <svg>, nil before the first render
	tip  *tooltip
}

// Create summarizes ds, appends a rendering at [ModeAll] to container and
// returns the view. The dataset is validated first; contigs that are not
// ordered largest first are drawn from a sorted copy.
func Create(container surface.Element, doc surface.Document, ds *Dataset, opts ...Option) (*View, error) {
	v := &View{
		doc:       doc,
		container: container,
		geom:      DefaultGeometry(),
		colors:    DefaultLegendColors,
		title:     DefaultLegendTitle,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		v.logger = log.Default()
	}
	if v.id == "" {
		v.id = uuid.NewString()
	}
	if v.onSelect == nil {
		v.onSelect = func(d string) { v.logger.Infof("%s selected", d) }
	}

	if doc == nil || container == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "view needs a document and a container")
	}
	if err := v.geom.Validate(); err != nil {
		return nil, err
	}
	if len(v.colors) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "legend needs at least 2 colors, got %d", len(v.colors))
	}
	if err := Validate(ds); err != nil {
		return nil, err
	}

	sorted, resorted := withSortedContigs(ds)
	if resorted {
		v.logger.Warn("Contigs not ordered by size; drawing a sorted copy", "largest", sorted.Contigs[0].Name)
	}
	v.ds = sorted
	v.summary = Summarize(sorted)
	v.scale = NewScale(v.summary, v.geom)
	v.logger.Debug("Summarized dataset",
		"contigs", v.summary.ContigCount,
		"max_hits", v.summary.MaxHitMagnitude,
		"max_nrph", v.summary.MaxNrphHitMagnitude,
		"staining", v.summary.HasStainingData)

	if _, err := v.SwitchVisualization(ModeAll); err != nil {
		return nil, err
	}
	return v, nil
}

// SwitchVisualization redraws the view in mode m and returns the effective
// mode. Requesting the current mode, or repeating a request that fell back,
// does not redraw. [ModeGiesma] on a dataset
// without staining bands falls back to [ModeAll]. Unknown modes return an
// INVALID_MODE error and leave the view untouched.
func (v *View) SwitchVisualization(m Mode) (Mode, error) {
	if !m.Valid() {
		return v.state.Mode, errors.New(errors.ErrCodeInvalidMode, "unknown visualization %q", m)
	}
	if m == v.state.Mode || m == v.state.Requested {
		v.state.Requested = m
		return v.state.Mode, nil
	}
	start := time.Now()

	next := ViewState{Mode: m, Requested: m}
	if m == ModeGiesma && !v.summary.HasStainingData {
		next.Mode = ModeAll
		v.logger.Warn("No staining bands in dataset; showing all hits", "requested", m)
	}
	next.MaxMagnitude = v.summary.MaxMagnitude(next.Mode)
	next.Legend = ComputeLegend(next.MaxMagnitude, v.colors)

	v.discard()
	v.state = next
	v.render()

	elements := surface.Count(v.root)
	v.logger.Debug("Switched visualization", "requested", m, "mode", next.Mode, "max", next.MaxMagnitude, "elements", elements)
	observability.View().OnModeSwitch(string(m), string(next.Mode), elements, time.Since(start))
	return next.Mode, nil
}

// discard detaches the previous rendering. Its listeners stay with the
// detached subtree and ignore any late events.
func (v *View) discard() {
	if v.root == nil {
		return
	}
	if p := v.root.Parent(); p != nil {
		p.RemoveChild(v.root)
	}
	v.root = nil
	v.tip = nil
}

// CurrentMode returns the effective mode.
func (v *View) CurrentMode() Mode { return v.state.Mode }

// State returns the current mode-dependent state.
func (v *View) State() ViewState { return v.state }

// Summary returns the construction-time dataset statistics.
func (v *View) Summary() Summary { return v.summary }

// Scale returns the fixed pixel scale.
func (v *View) Scale() Scale { return v.scale }

// Geometry returns the glyph geometry in use.
func (v *View) Geometry() Geometry { return v.geom }

// Dataset returns the dataset being drawn, sorted largest first.
func (v *View) Dataset() *Dataset { return v.ds }

// ID returns the view id.
func (v *View) ID() string { return v.id }

// Root returns the live <svg> element.
func (v *View) Root() surface.Element { return v.root }

// Document returns the surface document the view draws with.
func (v *View) Document() surface.Document { return v.doc }
