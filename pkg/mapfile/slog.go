package mapfile

import (
	"context"
	"log/slog"

	"github.com/joshuapare/mapkit/pkg/types"
)

// NewSlogSink returns a sink that logs each diagnostic to logger. Info maps
// to slog.LevelInfo, Warning to slog.LevelWarn and Error to slog.LevelError.
func NewSlogSink(logger *slog.Logger) types.Sink {
	if logger == nil {
		return types.Discard
	}
	return types.SinkFunc(func(d types.Diagnostic) {
		level := slogLevel(d.Severity)
		if !logger.Enabled(context.Background(), level) {
			return
		}
		attrs := []slog.Attr{slog.String("category", d.Category.String())}
		if d.Segment != "" {
			attrs = append(attrs, slog.String("segment", d.Segment))
		}
		if d.Record != "" {
			attrs = append(attrs, slog.String("record", d.Record))
		}
		if d.Line != "" {
			attrs = append(attrs, slog.String("line", d.Line))
		}
		logger.LogAttrs(context.Background(), level, d.Message, attrs...)
	})
}

func slogLevel(s types.Severity) slog.Level {
	switch s {
	case types.SevError:
		return slog.LevelError
	case types.SevWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
