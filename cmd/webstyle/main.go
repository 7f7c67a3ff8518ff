// Package main provides the webstyle CLI, which builds one utility-first CSS
// framework file per project found in a source folder.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

// usageError reports a malformed command line. It is printed as the
// one-line usage and exits with status 2.
type usageError struct {
	err error
}

func (e usageError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return usageLine
}

// errBuildFailed is returned when at least one project failed, or when
// warnings were found in strict mode. The summary has already been printed.
var errBuildFailed = errors.New("build failed")

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return exitCode(err, stderr)
}

// exitCode maps a command error to the process exit status.
func exitCode(err error, stderr io.Writer) int {
	var usage usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &usage):
		if usage.err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", usage.err)
		}
		fmt.Fprintln(stderr, usageLine)
		return exitUsage
	case errors.Is(err, errBuildFailed):
		return exitFailed
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailed
	}
}
