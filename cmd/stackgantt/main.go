package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackgantt/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, envLevel())
	root := c.RootCommand()

	// -v is --view on the chart commands, so verbose has no shorthand.
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	attachLogger := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if attachLogger != nil {
			return attachLogger(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

// envLevel reads STACKGANTT_LOG_LEVEL, falling back to info.
func envLevel() log.Level {
	if v := os.Getenv("STACKGANTT_LOG_LEVEL"); v != "" {
		if lvl, err := log.ParseLevel(v); err == nil {
			return lvl
		}
	}
	return cli.LogInfo
}
