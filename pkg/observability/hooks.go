// Package observability lets callers watch the karyoview pipeline, its
// caches and live views without the libraries depending on any metrics or
// tracing backend.
//
// Three hook sets exist: [PipelineHooks] (dataset loads and renders),
// [CacheHooks] (artifact lookups and writes) and [ViewHooks] (mode switches
// and selections). Each defaults to a no-op. Install replacements once,
// before work starts:
//
//	observability.SetPipelineHooks(myMetrics)
//	observability.SetViewHooks(myMetrics)
//
// [LogHooks] implements all three on a charm logger at debug level; the CLI
// installs it under --verbose.
package observability

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// PipelineHooks observes pipeline.Runner. source is a file path or a
// dataset name.
type PipelineHooks interface {
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, contigCount int, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, modes, formats []string)
	OnRenderComplete(ctx context.Context, modes, formats []string, duration time.Duration, err error)
}

// CacheHooks observes artifact cache traffic. key is the full cache key.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, key string)
	OnCacheMiss(ctx context.Context, key string)
	OnCacheSet(ctx context.Context, key string, size int)
}

// ViewHooks observes karyotype views. Views run on synchronous UI dispatch,
// so there is no context.
type ViewHooks interface {
	// OnModeSwitch fires after a re-render. requested differs from effective
	// when a staining view fell back to all hits.
	OnModeSwitch(requested, effective string, elements int, duration time.Duration)

	// OnSelect fires on pointer-down over a hit rectangle.
	OnSelect(descriptor string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                              {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string, []string)                {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, []string, time.Duration, error) {
}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopViewHooks struct{}

func (NoopViewHooks) OnModeSwitch(string, string, int, time.Duration) {}
func (NoopViewHooks) OnSelect(string)                                 {}

// =============================================================================
// Logging Implementation
// =============================================================================

// LogHooks writes every event to Logger at debug level.
type LogHooks struct {
	Logger *log.Logger
}

func NewLogHooks(l *log.Logger) *LogHooks { return &LogHooks{Logger: l} }

func (h *LogHooks) OnLoadStart(_ context.Context, source string) {
	h.Logger.Debug("load start", "source", source)
}

func (h *LogHooks) OnLoadComplete(_ context.Context, source string, contigs int, d time.Duration, err error) {
	h.Logger.Debug("load done", "source", source, "contigs", contigs, "duration", d, "err", err)
}

func (h *LogHooks) OnRenderStart(_ context.Context, modes, formats []string) {
	h.Logger.Debug("render start", "modes", modes, "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, modes, formats []string, d time.Duration, err error) {
	h.Logger.Debug("render done", "modes", modes, "formats", formats, "duration", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, key string)  { h.Logger.Debug("cache hit", "key", key) }
func (h *LogHooks) OnCacheMiss(_ context.Context, key string) { h.Logger.Debug("cache miss", "key", key) }

func (h *LogHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.Logger.Debug("cache set", "key", key, "bytes", size)
}

func (h *LogHooks) OnModeSwitch(requested, effective string, elements int, d time.Duration) {
	h.Logger.Debug("mode switch", "requested", requested, "effective", effective, "elements", elements, "duration", d)
}

func (h *LogHooks) OnSelect(descriptor string) { h.Logger.Debug("select", "descriptor", descriptor) }

// =============================================================================
// Registry
// =============================================================================

// hookSet is replaced as a whole on every change, so readers never lock.
type hookSet struct {
	pipeline PipelineHooks
	cache    CacheHooks
	view     ViewHooks
}

var current atomic.Pointer[hookSet]

func init() { Reset() }

// update applies fn to a copy of the current set and installs the copy.
func update(fn func(*hookSet)) {
	for {
		old := current.Load()
		next := *old
		fn(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetPipelineHooks installs h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(s *hookSet) { s.pipeline = h })
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(s *hookSet) { s.cache = h })
	}
}

// SetViewHooks installs h. A nil h is ignored.
func SetViewHooks(h ViewHooks) {
	if h != nil {
		update(func(s *hookSet) { s.view = h })
	}
}

func Pipeline() PipelineHooks { return current.Load().pipeline }
func Cache() CacheHooks       { return current.Load().cache }
func View() ViewHooks         { return current.Load().view }

// Reset reinstalls the no-op hooks.
func Reset() {
	current.Store(&hookSet{
		pipeline: NoopPipelineHooks{},
		cache:    NoopCacheHooks{},
		view:     NoopViewHooks{},
	})
}
