package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	combinedLogName = "pr-review-combined.log"
	errorLogName    = "pr-review-error.log"
)

// fanoutHandler dispatches each record to every wrapped handler that accepts
// its level.
type fanoutHandler struct {
	handlers []slog.Handler
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithAttrs(attrs)
	}
	return &fanoutHandler{handlers: next}
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithGroup(name)
	}
	return &fanoutHandler{handlers: next}
}

// NewPRLogger builds a logger that writes colorized output to w at the given
// level, every record to <dir>/pr-review-combined.log, and warn-and-above to
// <dir>/pr-review-error.log. The returned close function flushes and closes
// both files.
func NewPRLogger(w io.Writer, level Level, dir string) (*slog.Logger, func() error, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory %s: %w", dir, err)
	}

	combined, err := openLogFile(filepath.Join(dir, combinedLogName))
	if err != nil {
		return nil, nil, err
	}
	errFile, err := openLogFile(filepath.Join(dir, errorLogName))
	if err != nil {
		_ = combined.Close()
		return nil, nil, err
	}

	handler := &fanoutHandler{handlers: []slog.Handler{
		tintHandler(w, level),
		slog.NewTextHandler(combined, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(errFile, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}}

	closeFiles := func() error {
		err1 := combined.Close()
		err2 := errFile.Close()
		if err1 != nil {
			return err1
		}
		return err2
	}

	return slog.New(handler), closeFiles, nil
}

func openLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return f, nil
}
