package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/conceptmap/internal/cli"
	cmerrors "github.com/matzehuels/conceptmap/pkg/errors"
)

// Exit codes. Invalid input of any kind exits with exitUsage so scripts can
// tell a bad hierarchy or flag apart from a storage or rendering failure.
const (
	exitOK        = 0
	exitFailure   = 1
	exitUsage     = 2
	exitInterrupt = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := exitCode(os.Stderr, newRoot().ExecuteContext(ctx))
	stop()
	os.Exit(code)
}

// newRoot adds the logging flags to the CLI root. The level is applied
// before any command's own pre-run hook.
func newRoot() *cobra.Command {
	var verbose, quiet bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	next := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		switch {
		case verbose:
			c.SetLogLevel(cli.LogDebug)
		case quiet:
			c.SetLogLevel(cli.LogWarn)
		}
		if next != nil {
			return next(cmd, args)
		}
		return nil
	}
	return root
}

// exitCode reports err on w and maps it to a process exit status.
func exitCode(w io.Writer, err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, context.Canceled) {
		return exitInterrupt
	}

	code := cmerrors.GetCode(err)
	if code == "" {
		fmt.Fprintln(w, err)
		return exitFailure
	}
	fmt.Fprintf(w, "error [%s]: %s\n", code, cmerrors.UserMessage(err))
	if cmerrors.ClassOf(err) == cmerrors.ClassInvalid {
		return exitUsage
	}
	return exitFailure
}
