package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/joshuapare/mapkit/pkg/types"
)

var (
	_ pflag.Value = (*granularityFlag)(nil)
	_ pflag.Value = (*logLevelFlag)(nil)
)

// granularityFlag selects types.Granularity by name.
type granularityFlag struct {
	value types.Granularity
}

func (f *granularityFlag) String() string { return f.value.String() }

func (f *granularityFlag) Set(s string) error {
	switch strings.ToLower(s) {
	case "segment", "segments":
		f.value = types.GranularitySegment
	case "section", "sections":
		f.value = types.GranularitySection
	default:
		return fmt.Errorf("unknown granularity %q (want segment or section)", s)
	}
	return nil
}

func (f *granularityFlag) Type() string { return "granularity" }

// levelOff disables diagnostic logging.
const levelOff = slog.Level(100)

// logLevelFlag accepts level names and the numeric aliases 0 (off) to
// 5 (trace, same as debug).
type logLevelFlag struct {
	level slog.Level
}

func (f *logLevelFlag) String() string {
	if f.level >= levelOff {
		return "off"
	}
	return strings.ToLower(f.level.String())
}

func (f *logLevelFlag) Set(s string) error {
	switch strings.ToLower(s) {
	case "off", "0":
		f.level = levelOff
	case "error", "1":
		f.level = slog.LevelError
	case "warn", "warning", "2":
		f.level = slog.LevelWarn
	case "info", "3":
		f.level = slog.LevelInfo
	case "debug", "trace", "4", "5":
		f.level = slog.LevelDebug
	default:
		return fmt.Errorf("unknown log level %q (want off, error, warn, info or debug)", s)
	}
	return nil
}

func (f *logLevelFlag) Type() string { return "level" }
