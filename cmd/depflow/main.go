package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depflow/internal/cli"
	errs "github.com/matzehuels/depflow/pkg/errors"
)

func main() {
	// DEPFLOW_* settings may live in a local .env; a missing file is fine.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		code := exitCode(err)
		if code != exitInterrupted {
			fmt.Fprintln(os.Stderr, "depflow:", err)
		}
		os.Exit(code)
	}
}

// Exit codes.
const (
	exitFailure     = 1
	exitBadInput    = 2   // Invalid config file, rules, paths or graph input
	exitInterrupted = 130 // Standard shell convention for SIGINT
)

// exitCode maps an error returned by the CLI to the process exit status.
func exitCode(err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case errs.IsValidation(err), errs.Is(err, errs.ErrCodeFileNotFound):
		return exitBadInput
	default:
		return exitFailure
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := cli.LogInfo
		if verbose {
			level = cli.LogDebug
		}
		c.SetLogLevel(level)

		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
