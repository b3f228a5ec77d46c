package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karyoview/karyoview/internal/server"
)

// serveCommand creates the serve command running the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr           string
		dataDir        string
		defaultDataset string
		noCache        bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve karyotype renderings over HTTP",
		Long: `Serve karyotype renderings over HTTP.

Datasets are loaded by name from MongoDB when [source] mongo_uri is set, and
from <data-dir>/<name>.json otherwise.

Routes:
  GET /                   HTML page with mode buttons
  GET /karyotype.svg      one rendering (?dataset=NAME&mode=all|nrph|giesma)
  GET /summary            JSON summary and legends
  GET /datasets           available dataset names
  GET /healthz            liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, addr, dataDir, defaultDataset, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory of <name>.json datasets (default from config)")
	cmd.Flags().StringVarP(&defaultDataset, "dataset", "d", "", "dataset served when a request names none")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, addr, dataDir, defaultDataset string, noCache bool) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr = addr
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.Server.DataDir = dataDir
	}

	runner, closeRunner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer closeRunner()

	srv := server.New(server.Config{
		Runner:         runner,
		Base:           optionsFromConfig(cfg),
		DefaultDataset: defaultDataset,
		MaxAge:         cfg.Cache.TTL.Duration,
		Logger:         loggerFromContext(ctx),
	})

	printInfo("Serving on %s", StyleLink.Render("http://"+displayAddr(cfg.Server.Addr)))
	if err := srv.ListenAndServe(ctx, cfg.Server.Addr); err != nil && ctx.Err() == nil {
		return err
	}
	printSuccess("Server stopped")
	return nil
}

// displayAddr turns a bare port such as ":8080" into a browsable host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
