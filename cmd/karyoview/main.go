package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/karyoview/karyoview/internal/cli"
	kerrors "github.com/karyoview/karyoview/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := execute(ctx)
	stop()
	os.Exit(exitCode(err))
}

func execute(ctx context.Context) error {
	app := cli.New(os.Stderr, cli.LogInfo)
	root := app.RootCommand()

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// The level is only known once flags are parsed.
	attachLogger := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			app.SetLogLevel(cli.LogDebug)
		}
		return attachLogger(cmd, args)
	}

	return root.ExecuteContext(ctx)
}

// exitCode reports err on stderr and picks the process status: 130 after an
// interrupt, 2 for rejected input, 1 for anything else.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) {
		return 130
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	if strings.HasPrefix(string(kerrors.GetCode(err)), "INVALID_") {
		return 2
	}
	return 1
}
