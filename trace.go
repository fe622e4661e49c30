// This file defines the helpers to trace the load protocol.
// Enable the trace with env var "pageobject=trace" to see each step in the log.

package pageobject

import (
	"io"

	"github.com/go-rod/pageobject/lib/defaults"
	"github.com/sirupsen/logrus"
)

// TraceType for logger
type TraceType string

const (
	// TraceTypeHook type
	TraceTypeHook TraceType = "hook"

	// TraceTypeNavigate type
	TraceTypeNavigate TraceType = "navigate"

	// TraceTypeTitle type
	TraceTypeTitle TraceType = "title"

	// TraceTypeLocator type
	TraceTypeLocator TraceType = "locator"
)

// WithLogger sets the logger for the trace messages
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *PageObject) {
		p.logger = l
	}
}

func defaultLogger() logrus.FieldLogger {
	l := logrus.New()
	if defaults.Trace {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetOutput(io.Discard)
	}
	return l
}

func trace(log logrus.FieldLogger, t TraceType, msg string) {
	log.WithField("trace", string(t)).Debug(msg)
}
