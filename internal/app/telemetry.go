package app

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.trai.ch/lineage/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/zerr"
)

// Log formats accepted by SetLogFormat.
const (
	LogFormatAuto   = "auto"
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

// jsonSwitcher is implemented by loggers that can emit JSON.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

// SetLogFormat selects pretty or JSON logging. "auto" picks JSON when
// stderr is not a terminal.
func (a *App) SetLogFormat(format string, stderrIsTerminal bool) error {
	var useJSON bool
	switch format {
	case "", LogFormatAuto:
		useJSON = !stderrIsTerminal
	case LogFormatPretty:
		useJSON = false
	case LogFormatJSON:
		useJSON = true
	default:
		return zerr.With(zerr.New("unknown log format, expected auto, pretty or json"), "format", format)
	}

	if s, ok := a.logger.(jsonSwitcher); ok {
		s.SetJSON(useJSON)
	}
	return nil
}

// EnableTracing installs a global tracer provider that reports finished
// spans through the logger. The returned function flushes and shuts it down.
func (a *App) EnableTracing() func(context.Context) error {
	tp := telemetry.NewProvider(telemetry.NewLogBridge(a.logger))
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}
