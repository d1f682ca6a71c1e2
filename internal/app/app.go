// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"clonexport/internal/appcore"
	"clonexport/internal/cli"
	"clonexport/internal/writers"
)

// RunContext executes the clonexport command line and returns the exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	return RunIO(parent, argv, os.Stdin, stdout, stderr)
}

// RunIO is RunContext with an explicit stdin.
func RunIO(parent context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := cli.NewRootCommand(appcore.Streams{Stdin: stdin, Stdout: stdout, Stderr: stderr})
	root.SetArgs(argv)

	err := root.ExecuteContext(parent)
	if err == nil {
		return appcore.ExitOK
	}
	var ee *cli.ExitError
	switch {
	case errors.As(err, &ee):
		if ee.Err != nil {
			_, _ = fmt.Fprintln(stderr, "error:", ee.Err)
		}
		return ee.Code
	case writers.IsBrokenPipe(err):
		return appcore.ExitOK
	case errors.Is(err, context.Canceled):
		return appcore.ExitCancelled
	}
	_, _ = fmt.Fprintln(stderr, "error:", err)
	if errors.Is(err, cli.ErrUsage) {
		_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", root.Name())
		return appcore.ExitUsage
	}
	// cobra reports unknown subcommands as plain errors
	return appcore.ExitUsage
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
