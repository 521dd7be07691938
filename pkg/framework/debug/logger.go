// Package debug provides logging utilities for plugin development.
//
// The SDK logs through a single shared logger so that a host embedding many
// plugin instances gets one coherent stream. Output is quiet by default
// (warnings and worse); hosts and plugin authors opt in to more.
package debug

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var base = newBase()

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l
}

// New returns a logger entry scoped to one SDK component, for example "abi"
// or "host".
func New(component string) *logrus.Entry {
	return base.WithField("component", component)
}

// SetLevel adjusts the verbosity of all SDK logging.
func SetLevel(level logrus.Level) {
	base.SetLevel(level)
}

// SetOutput redirects all SDK logging. Use io.Discard to silence it
// entirely.
func SetOutput(w io.Writer) {
	base.SetOutput(w)
}

// SetFormatter replaces the log formatter, for hosts that want structured
// output.
func SetFormatter(f logrus.Formatter) {
	base.SetFormatter(f)
}
