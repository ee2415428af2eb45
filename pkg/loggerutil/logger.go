// Package loggerutil builds the CLI's structured logger. It follows the
// reference codebase's handler-wrapping convention (pkg/observability),
// stripped of the OpenTelemetry trace-context injection concern: gumtree is
// a single-process CLI, not a traced server, so there is no span to attach.
package loggerutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Format selects the log record encoding.
type Format string

// Supported formats, per SPEC_FULL.md §6's --log-format flag.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned by New for an unrecognized Format.
var ErrUnknownFormat = errors.New("loggerutil: unknown log format")

// PhaseHandler is an slog.Handler that delegates every call to an inner
// handler, mirroring the reference codebase's TracingHandler shape (wrap,
// delegate) without the span-context concern. It adds no attributes itself;
// the "phase" attribute comes from WithPhase.
type PhaseHandler struct {
	inner slog.Handler
}

// New builds a leveled, formatted logger writing to w.
func New(w io.Writer, level slog.Level, format Format) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: level}

	var inner slog.Handler

	switch format {
	case FormatJSON:
		inner = slog.NewJSONHandler(w, opts)
	case FormatText, "":
		inner = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	return slog.New(&PhaseHandler{inner: inner}), nil
}

// WithPhase returns a logger scoped to a named pipeline phase ("parse",
// "top-down", "bottom-up", "annotate", "encode"), so every record it emits
// carries a "phase" attribute.
func WithPhase(logger *slog.Logger, phase string) *slog.Logger {
	return logger.With(slog.String("phase", phase))
}

// Enabled delegates to the inner handler.
func (h *PhaseHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle delegates to the inner handler.
func (h *PhaseHandler) Handle(ctx context.Context, record slog.Record) error {
	if err := h.inner.Handle(ctx, record); err != nil {
		return fmt.Errorf("loggerutil: handle record: %w", err)
	}

	return nil
}

// WithAttrs returns a new PhaseHandler with additional attributes on the
// inner handler.
func (h *PhaseHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &PhaseHandler{inner: h.inner.WithAttrs(attrs)}
}

// WithGroup returns a new PhaseHandler with a group prefix on the inner
// handler.
func (h *PhaseHandler) WithGroup(name string) slog.Handler {
	return &PhaseHandler{inner: h.inner.WithGroup(name)}
}

// ParseLevel maps a --log-level string to an slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("loggerutil: parse log level %q: %w", s, err)
	}

	return level, nil
}
