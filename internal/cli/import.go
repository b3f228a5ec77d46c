package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/karyoview/karyoview/pkg/errors"
	kio "github.com/karyoview/karyoview/pkg/io"
)

// importCommand creates the import command storing a dataset file in the
// configured source.
func (c *CLI) importCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "import <dataset.json>",
		Short: "Store a dataset file under a name for serve and --dataset",
		Long: `Store a dataset file under a name.

The dataset is validated, then written to MongoDB when [source] mongo_uri is
set, or to <data-dir>/<name>.json otherwise. The name defaults to the file
name without its extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			return c.runImport(cmd.Context(), args[0], name)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "dataset name (default: file name)")

	return cmd
}

func (c *CLI) runImport(ctx context.Context, path, name string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	ds, err := kio.ImportJSON(path)
	if err != nil {
		return err
	}

	src, closeSrc, err := newSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	saver, ok := src.(kio.Saver)
	if !ok {
		return errors.New(errors.ErrCodeUnsupported, "dataset source cannot store datasets")
	}
	if err := saver.Save(ctx, name, ds); err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("imported dataset", "name", name, "contigs", len(ds.Contigs))

	printSuccess("Imported %s", StyleHighlight.Render(name))
	printDetail("%d contigs", len(ds.Contigs))
	printNextStep("Render it", appName+" render --dataset "+name)
	return nil
}
