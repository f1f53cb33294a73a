package utils

import (
	"go.uber.org/zap"
)

// Verbosity selects which notifications a ConsoleReporter prints.
type Verbosity int

const (
	// VerbosityNormal prints regular notifications and suppresses verbose ones.
	VerbosityNormal Verbosity = iota
	// VerbositySilent suppresses everything except errors.
	VerbositySilent
	// VerbosityVerbose prints every notification.
	VerbosityVerbose
)

// Reporter receives lifecycle and matched-file notifications from the pipeline.
// A verbose notification is detail that is only interesting when tracing a run.
type Reporter interface {
	Report(message string, verbose bool)
}

// NoopReporter discards every notification.
type NoopReporter struct{}

// Report implements Reporter.
func (NoopReporter) Report(string, bool) {}

// ConsoleReporter gates notifications by verbosity and prints them through zap.
type ConsoleReporter struct {
	logger    *zap.Logger
	verbosity Verbosity
}

// NewConsoleReporter returns a reporter printing through logger.
// A nil logger yields a reporter that prints nothing.
func NewConsoleReporter(logger *zap.Logger, verbosity Verbosity) *ConsoleReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleReporter{logger: logger, verbosity: verbosity}
}

// Report prints message when the verbosity allows it.
func (reporter *ConsoleReporter) Report(message string, verbose bool) {
	if !reporter.allows(verbose) {
		return
	}
	reporter.logger.Info(message)
}

// Warn prints a warning unless the reporter is silent.
func (reporter *ConsoleReporter) Warn(message string) {
	if reporter.verbosity == VerbositySilent {
		return
	}
	reporter.logger.Warn(message)
}

// Error prints an error regardless of verbosity.
func (reporter *ConsoleReporter) Error(message string) {
	reporter.logger.Error(message)
}

func (reporter *ConsoleReporter) allows(verbose bool) bool {
	if verbose {
		return reporter.verbosity == VerbosityVerbose
	}
	return reporter.verbosity != VerbositySilent
}

var (
	_ Reporter = NoopReporter{}
	_ Reporter = (*ConsoleReporter)(nil)
)
