// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger returns the run logger: plain text on stderr without timestamps.
// quiet keeps only warnings and errors; verbose adds debug lines. verbose wins
// if both are set.
func NewLogger(stderr io.Writer, quiet, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	switch {
	case verbose:
		l.SetLevel(logrus.DebugLevel)
	case quiet:
		l.SetLevel(logrus.WarnLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}
	return l
}

// Warnf writes a WARN line to dst unless quiet is set. It is for the few
// places that run before a logger exists (flag parsing).
func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "WARN: "+format+"\n", a...)
}
