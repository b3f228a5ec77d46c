package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/karyoview/karyoview/pkg/errors"
	"github.com/karyoview/karyoview/pkg/karyotype"
	"github.com/karyoview/karyoview/pkg/pipeline"
)

// inputFlags selects the dataset of a command: a positional JSON file or a
// named dataset from the configured source.
type inputFlags struct {
	dataset string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.dataset, "dataset", "d", "", "named dataset from the configured source (instead of a file)")
}

// apply sets the input of opts from args and the flags.
func (f *inputFlags) apply(args []string, opts *pipeline.Options) error {
	switch {
	case len(args) == 1 && f.dataset != "":
		return errors.New(errors.ErrCodeInvalidInput, "give either a file or --dataset, not both")
	case len(args) == 1:
		opts.Path = args[0]
	case f.dataset != "":
		opts.Name = f.dataset
	default:
		return errors.New(errors.ErrCodeInvalidInput, "a dataset file or --dataset is required")
	}
	return nil
}

// renderCommand creates the render command for writing artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		in         inputFlags
		modesStr   string
		formatsStr string
		output     string
		noCache    bool
		opts       pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "render [dataset.json]",
		Short: "Render a karyotype to SVG, HTML or JSON",
		Long: `Render a karyotype to SVG, HTML or JSON.

Each requested mode is written as <mode>.svg. The html format writes a single
karyotype.html with buttons switching between the modes, and json writes
summary.json with the dataset summary and the legend of every mode.

A Giesma request on a dataset without staining data falls back to all hits.

Results are cached, so repeated renders of an unchanged dataset are instant.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modes, err := karyotype.ParseModes(modesStr)
			if err != nil {
				return err
			}
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			if err := in.apply(args, &opts); err != nil {
				return err
			}
			opts.Modes, opts.Formats = modes, formats
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", ".", "output directory")
	cmd.Flags().StringVarP(&modesStr, "mode", "m", "", "visualization mode(s): all (default), nrph, giesma (comma-separated)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), html, json (comma-separated)")
	cmd.Flags().StringVar(&opts.PageTitle, "title", "", "HTML page title (default: dataset name)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender executes the pipeline and writes every artifact into output.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, closeRunner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer closeRunner()

	base := optionsFromConfig(cfg)
	opts.Geometry, opts.Colors, opts.Title, opts.TTL = base.Geometry, base.Colors, base.Title, base.TTL
	logger := loggerFromContext(ctx)
	opts.Logger = logger

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Rendering karyotype...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		msg := "Render failed"
		if spinner.Cancelled() {
			msg = "Render interrupted"
		}
		spinner.StopWithError(msg)
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d artifacts", len(result.Artifacts)),
		"contigs", result.Stats.ContigCount, "cache_hits", result.CacheInfo.Hits)

	paths, err := writeArtifacts(output, result.Artifacts)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", StyleHighlight.Render(datasetLabel(opts)))
	printStats(result.Stats.ContigCount, len(result.Artifacts), result.CacheInfo.AllHit())
	for _, m := range opts.Modes {
		if eff := result.Effective[m]; eff != m {
			printWarning("%s has no staining data; %s shows %s", datasetLabel(opts), m, eff.Label())
		}
	}
	for _, p := range paths {
		printFile(p)
	}
	if opts.Path != "" {
		printNextStep("Browse interactively", appName+" browse "+opts.Path)
	} else {
		printNextStep("Browse interactively", appName+" browse --dataset "+opts.Name)
	}
	return nil
}

// writeArtifacts writes each artifact to dir under its name and returns the
// written paths in name order.
func writeArtifacts(dir string, artifacts map[string][]byte) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create output directory %s", dir)
	}
	names := make([]string, 0, len(artifacts))
	for name := range artifacts {
		names = append(names, name)
	}
	slices.Sort(names)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, artifacts[name], 0o644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "write %s", p)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// datasetLabel names the input of opts for display.
func datasetLabel(opts pipeline.Options) string {
	if opts.Name != "" {
		return opts.Name
	}
	return filepath.Base(opts.Path)
}
