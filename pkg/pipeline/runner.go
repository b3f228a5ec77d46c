package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/karyoview/karyoview/pkg/cache"
	"github.com/karyoview/karyoview/pkg/errors"
	kio "github.com/karyoview/karyoview/pkg/io"
	"github.com/karyoview/karyoview/pkg/karyotype"
	"github.com/karyoview/karyoview/pkg/observability"
	"github.com/karyoview/karyoview/pkg/sink"
)

// maxParallelRenders bounds concurrent view renders per run.
const maxParallelRenders = 4

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache, source and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Source kio.Source // used for Options.Name; may be nil
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// WithSource sets the dataset source used for named loads.
func (r *Runner) WithSource(src kio.Source) *Runner {
	r.Source = src
	return r
}

// Execute loads the dataset and renders every mode and format.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	loadStart := time.Now()
	ds, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result := &Result{Dataset: ds, Summary: karyotype.Summarize(ds)}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.ContigCount = len(ds.Contigs)

	r.Logger.Info("loaded dataset",
		"contigs", len(ds.Contigs),
		"max_hits", result.Summary.MaxHitMagnitude,
		"duration", result.Stats.LoadTime)

	renderStart := time.Now()
	out, err := r.Render(ctx, ds, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.DatasetHash = out.DatasetHash
	result.Artifacts = out.Artifacts
	result.Effective = out.Effective
	result.CacheInfo = out.CacheInfo
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"modes", opts.Modes,
		"formats", opts.Formats,
		"cached", result.CacheInfo.Hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load returns the dataset the options select. Named loads retry transient
// source failures.
func (r *Runner) Load(ctx context.Context, opts Options) (*karyotype.Dataset, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	if opts.Dataset != nil {
		if err := karyotype.Validate(opts.Dataset); err != nil {
			return nil, err
		}
		return opts.Dataset, nil
	}

	src := opts.inputName()
	observability.Pipeline().OnLoadStart(ctx, src)
	start := time.Now()

	var ds *karyotype.Dataset
	var err error
	switch {
	case opts.Path != "":
		ds, err = kio.ImportJSON(opts.Path)
	case r.Source == nil:
		err = errors.New(errors.ErrCodeUnsupported, "no dataset source configured for %q", opts.Name)
	default:
		err = cache.RetryWithBackoff(ctx, func() error {
			var loadErr error
			ds, loadErr = r.Source.Load(ctx, opts.Name)
			if errors.Is(loadErr, errors.ErrCodeNetwork) {
				return cache.Retryable(loadErr)
			}
			return loadErr
		})
	}

	n := 0
	if ds != nil {
		n = len(ds.Contigs)
	}
	observability.Pipeline().OnLoadComplete(ctx, src, n, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// RenderOutput is the result of [Runner.Render].
type RenderOutput struct {
	DatasetHash string
	Artifacts   map[string][]byte
	Effective   map[karyotype.Mode]karyotype.Mode
	CacheInfo   CacheInfo
}

// Render draws ds in every requested mode and serializes each format,
// serving artifacts from the cache where possible.
func (r *Runner) Render(ctx context.Context, ds *karyotype.Dataset, opts Options) (*RenderOutput, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	hash, err := cache.DatasetHash(ds)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash dataset")
	}

	modes := make([]string, len(opts.Modes))
	for i, m := range opts.Modes {
		modes[i] = string(m)
	}
	observability.Pipeline().OnRenderStart(ctx, modes, opts.Formats)
	start := time.Now()

	out := &RenderOutput{
		DatasetHash: hash,
		Artifacts:   make(map[string][]byte),
		Effective:   make(map[karyotype.Mode]karyotype.Mode),
	}
	err = r.render(ctx, ds, hash, opts, out)
	observability.Pipeline().OnRenderComplete(ctx, modes, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Runner) render(ctx context.Context, ds *karyotype.Dataset, hash string, opts Options, out *RenderOutput) error {
	var (
		mu        sync.Mutex
		views     = make(map[karyotype.Mode]*karyotype.View)
		wantSVG   bool
		runFormat []string // formats covering every mode
	)
	for _, f := range opts.Formats {
		if f == FormatSVG {
			wantSVG = true
		} else {
			runFormat = append(runFormat, f)
		}
	}
	runMissing := r.lookup(ctx, hash, opts, "", runFormat, out, &mu)
	needViews := slices.Contains(runMissing, FormatHTML)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelRenders)
	for _, m := range opts.Modes {
		m := m // per-iteration copy (go directive < 1.22)
		g.Go(func() error {
			var missing []string
			if wantSVG {
				missing = r.lookup(gctx, hash, opts, m, []string{FormatSVG}, out, &mu)
			}
			if len(missing) == 0 && !needViews {
				mu.Lock()
				out.Effective[m] = effectiveMode(ds, m)
				mu.Unlock()
				return nil
			}
			if err := gctx.Err(); err != nil {
				return err
			}

			v, effective, err := sink.NewView(ds, m, opts.ViewOptions(hash, m)...)
			if err != nil {
				return err
			}
			mu.Lock()
			out.Effective[m] = effective
			views[m] = v
			mu.Unlock()

			if len(missing) > 0 {
				r.store(gctx, opts, hash, m, FormatSVG, sink.RenderSVG(v, sink.WithScript()), out, &mu)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, f := range runMissing {
		var data []byte
		switch f {
		case FormatHTML:
			panels := make([]sink.Panel, len(opts.Modes))
			for i, m := range opts.Modes {
				panels[i] = sink.Panel{Requested: m, View: views[m]}
			}
			data = sink.RenderHTML(panels, sink.WithTitle(opts.PageTitle))
		case FormatJSON:
			var err error
			if data, err = json.MarshalIndent(NewReport(ds, opts), "", "  "); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "encode summary")
			}
		}
		r.store(ctx, opts, hash, "", f, data, out, &mu)
	}
	return nil
}

// lookup fills out with cached artifacts and returns the formats it could
// not find.
func (r *Runner) lookup(ctx context.Context, hash string, opts Options, m karyotype.Mode, formats []string, out *RenderOutput, mu *sync.Mutex) []string {
	var missing []string
	for _, f := range formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(m, f))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, key)
				mu.Lock()
				out.Artifacts[ArtifactName(m, f)] = data
				out.CacheInfo.Hits++
				mu.Unlock()
				continue
			} else if err != nil {
				opts.Logger.Warn("cache read failed", "key", key, "error", err)
			}
		}
		observability.Cache().OnCacheMiss(ctx, key)
		missing = append(missing, f)
	}
	return missing
}

func (r *Runner) store(ctx context.Context, opts Options, hash string, m karyotype.Mode, f string, data []byte, out *RenderOutput, mu *sync.Mutex) {
	key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(m, f))
	if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
		opts.Logger.Warn("cache write failed", "key", key, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, key, len(data))
	}
	mu.Lock()
	out.Artifacts[ArtifactName(m, f)] = bytes.Clone(data)
	out.CacheInfo.Misses++
	mu.Unlock()
}

// effectiveMode predicts the fallback without drawing.
func effectiveMode(ds *karyotype.Dataset, m karyotype.Mode) karyotype.Mode {
	if m == karyotype.ModeGiesma && !karyotype.Summarize(ds).HasStainingData {
		return karyotype.ModeAll
	}
	return m
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
