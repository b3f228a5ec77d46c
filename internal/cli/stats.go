package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/karyoview/karyoview/pkg/karyotype"
	"github.com/karyoview/karyoview/pkg/pipeline"
)

// statsCommand creates the stats command that prints the dataset summary.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		in       inputFlags
		modesStr string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "stats [dataset.json]",
		Short: "Print the dataset summary and per-contig counts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modes, err := karyotype.ParseModes(modesStr)
			if err != nil {
				return err
			}
			var opts pipeline.Options
			if err := in.apply(args, &opts); err != nil {
				return err
			}
			opts.Modes = modes
			return c.runStats(cmd.Context(), opts, asJSON)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&modesStr, "mode", "m", strings.Join(modeNames(karyotype.Modes), ","), "modes whose legends to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	return cmd
}

func (c *CLI) runStats(ctx context.Context, opts pipeline.Options, asJSON bool) error {
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

	base := optionsFromConfig(cfg)
	base.Modes = opts.Modes
	base.SetRenderDefaults()
	rep := pipeline.NewReport(ds, base)

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	fmt.Fprintln(stdout, formatReport(datasetLabel(opts), rep))
	return nil
}

// formatReport renders rep as a summary block, one legend per mode and a
// contig table.
func formatReport(name string, rep pipeline.Report) string {
	var b strings.Builder
	s := rep.Summary

	b.WriteString(StyleTitle.Render(name))
	b.WriteString("\n")
	b.WriteString(keyValue("Contigs", strconv.Itoa(s.ContigCount)))
	b.WriteString(keyValue("Reference", strconv.Itoa(s.ReferenceSize)+" bp"))
	b.WriteString(keyValue("Max hits", strconv.Itoa(s.MaxHitMagnitude)))
	b.WriteString(keyValue("Max NRPH", strconv.Itoa(s.MaxNrphHitMagnitude)))
	b.WriteString(keyValue("Staining", yesNo(s.HasStainingData)))
	b.WriteString(keyValue("Remaining", yesNo(s.HasRemaining)))

	for _, mr := range rep.Modes {
		b.WriteString("\n")
		title := mr.Requested.Label()
		if mr.Effective != mr.Requested {
			title += StyleWarning.Render(" (shows " + mr.Effective.Label() + ")")
		}
		b.WriteString(StyleHighlight.Render(title))
		b.WriteString("\n")
		if len(mr.Legend) == 0 {
			b.WriteString("  " + StyleDim.Render("staining bands, no legend") + "\n")
			continue
		}
		for _, row := range mr.Legend {
			b.WriteString("  " + swatch(row.Color) + " " + StyleValue.Render(row.Label) + "\n")
		}
	}

	rows := make([][]string, 0, len(rep.Contigs))
	for _, cr := range rep.Contigs {
		rows = append(rows, []string{
			cr.Name,
			strconv.Itoa(cr.Size),
			strconv.Itoa(cr.HitClusters),
			strconv.Itoa(cr.NrphClusters),
			strconv.Itoa(cr.Bands),
			strconv.Itoa(cr.MaxCount),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	numStyle := lipgloss.NewStyle().Foreground(colorCyan).Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Contig", "Size", "Hits", "NRPH", "Bands", "Max").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
			return numStyle
		})

	b.WriteString("\n")
	b.WriteString(t.Render())
	return b.String()
}

func keyValue(key, value string) string {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	return keyStyle.Render(key) + " " + StyleValue.Render(value) + "\n"
}

// swatch is a two-cell block in a legend color.
func swatch(color string) string {
	return lipgloss.NewStyle().Background(termColor(color)).Render("  ")
}

// termColor maps an SVG fill to a terminal color.
func termColor(fill string) lipgloss.Color {
	if fill == karyotype.Unmapped {
		return lipgloss.Color("#ffffff")
	}
	return lipgloss.Color(fill)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func modeNames(modes []karyotype.Mode) []string {
	out := make([]string, len(modes))
	for i, m := range modes {
		out[i] = string(m)
	}
	return out
}
