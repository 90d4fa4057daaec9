package main

import (
	"errors"
	"fmt"
	"io"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/zephyrtronium/calc"
)

const (
	// exitFailure is for expressions and arguments that fail to evaluate.
	exitFailure = 1
	// exitGeneric is for failures of the command itself, e.g. bad flags or
	// an unreadable config file.
	exitGeneric = 125
)

// outputError prints each error on its own line.
func outputError(w io.Writer, err error) {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, e := range merr.Errors {
			fmt.Fprintln(w, "Error:", e)
		}
		return
	}
	logrus.Debugf("Command failed: %+v", err)
	fmt.Fprintln(w, "Error:", err)
}

// exitCode maps a failure to a process exit code.
func exitCode(err error) int {
	var merr *multierror.Error
	if errors.As(err, &merr) || calc.KindOf(err) != calc.KindNone {
		return exitFailure
	}
	return exitGeneric
}
