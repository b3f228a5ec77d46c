package cli

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/karyoview/karyoview/pkg/karyotype"
	"github.com/karyoview/karyoview/pkg/observability"
	"github.com/karyoview/karyoview/pkg/pipeline"
	"github.com/karyoview/karyoview/pkg/surface"
)

// browseCommand creates the browse command, an interactive terminal view of
// one rendering.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		in      inputFlags
		modeStr string
	)

	cmd := &cobra.Command{
		Use:   "browse [dataset.json]",
		Short: "Step through hit clusters in the terminal",
		Long: `Step through hit clusters in the terminal.

Each contig is a row of cells, one per hit cluster, colored like the SVG
rendering. Moving the cursor hovers a cluster and shows its tooltip text;
enter selects it. Press a, n or g to switch between All Hits, NRPH Hits and
Giesma.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := karyotype.ParseMode(modeStr)
			if err != nil {
				return err
			}
			var opts pipeline.Options
			if err := in.apply(args, &opts); err != nil {
				return err
			}
			return c.runBrowse(cmd.Context(), opts, mode)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&modeStr, "mode", "m", string(karyotype.ModeAll), "initial mode: all, nrph, giesma")

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, opts pipeline.Options, mode karyotype.Mode) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, closeRunner, err := c.newRunner(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer closeRunner()

	ds, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}

	// Log lines would draw over the alternate screen.
	observability.SetViewHooks(observability.NoopViewHooks{})

	var model BrowseModel
	doc := surface.NewTree()
	viewOpts := append(cfg.ViewOptions(),
		karyotype.WithLogger(log.New(io.Discard)),
		karyotype.WithSelectHandler(func(desc string) { model.Select(desc) }),
	)
	v, err := karyotype.Create(doc.CreateElement("", "div"), doc, ds, viewOpts...)
	if err != nil {
		return err
	}
	if _, err := v.SwitchVisualization(mode); err != nil {
		return err
	}

	model = NewBrowseModel(datasetLabel(opts), doc, v)
	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	if fm, ok := final.(BrowseModel); ok && fm.Selected() != "" {
		printSuccess("Selected %s", StyleHighlight.Render(fm.Selected()))
	} else {
		printDetail("No selection made")
	}
	return nil
}
