/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command cfstress populates a wide-column store with an index row and
// data rows, then replays a concurrent scan-then-fetch load against it.
//
// Usage:
//
//	cfstress populate -n 100000 -x 100 --hosts cass1,cass2
//	cfstress load -n 100000 -x 100 -t 10 -g 10 --hosts cass1,cass2
//	cfstress --command load -n 1000 -x 10 --backend memory
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	cferrors "github.com/suparena/cfstress/errors"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// runtimeError marks a failure that happened after the arguments were
// accepted, as opposed to a usage problem.
type runtimeError struct {
	err error
}

func (e *runtimeError) Error() string { return e.err.Error() }
func (e *runtimeError) Unwrap() error { return e.err }

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(stdout, stderr)
	root := a.rootCommand()
	root.SetArgs(rewriteCommandFlag(args))
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	if a.helpShown {
		return exitUsage
	}
	if err == nil {
		return exitOK
	}

	fmt.Fprintf(stderr, "error: %v\n", err)
	fmt.Fprint(stderr, cmd.UsageString())

	var rerr *runtimeError
	if errors.As(err, &rerr) && !cferrors.IsConfigurationError(err) {
		return exitFailure
	}
	return exitUsage
}

// rewriteCommandFlag turns "--command load ..." into "load ...".
func rewriteCommandFlag(args []string) []string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		var name string
		switch {
		case arg == "--":
			return args
		case arg == "--command" || arg == "-c":
			if i+1 >= len(args) {
				return args
			}
			name = args[i+1]
			rest := append(append([]string{}, args[:i]...), args[i+2:]...)
			return append([]string{name}, rest...)
		case strings.HasPrefix(arg, "--command="):
			name = strings.TrimPrefix(arg, "--command=")
		case strings.HasPrefix(arg, "-c") && len(arg) > 2 && !strings.HasPrefix(arg, "--"):
			name = strings.TrimPrefix(strings.TrimPrefix(arg, "-c"), "=")
		default:
			continue
		}
		rest := append(append([]string{}, args[:i]...), args[i+1:]...)
		return append([]string{name}, rest...)
	}
	return args
}
