// Package envconfig reads stepnet settings from the environment.
//
// Every setting is exposed as a function so the environment is read at the
// point of use; tests can change variables with t.Setenv.
package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// LogLevel returns the log level for the application.
// Configurable via STEPNET_DEBUG: a boolean enables debug, an integer n
// selects slog.Level(-4*n).
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("STEPNET_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

var (
	// NoParallel disables parallel kernels. Configurable via STEPNET_NOPARALLEL.
	NoParallel = Bool("STEPNET_NOPARALLEL")
	// NumWorkers sets the worker count for parallel kernels; 0 means runtime.NumCPU.
	// Configurable via STEPNET_NUM_WORKERS.
	NumWorkers = Uint("STEPNET_NUM_WORKERS", 0)
	// MinChunk sets the minimum number of rows handed to one worker.
	// Configurable via STEPNET_MIN_CHUNK.
	MinChunk = Uint("STEPNET_MIN_CHUNK", 1)
	// LeafSize sets the block edge below which the divide-and-conquer
	// multiply stops recursing. Configurable via STEPNET_DNC_LEAF.
	LeafSize = Uint("STEPNET_DNC_LEAF", 64)
	// Stats enables per-step tensor statistics in the CLI. Configurable via STEPNET_STATS.
	Stats = Bool("STEPNET_STATS")
)

// Var returns an environment variable stripped of surrounding quotes and spaces.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// BoolWithDefault returns a reader for a boolean variable. Unparsable
// non-empty values count as true.
func BoolWithDefault(k string) func(defaultValue bool) bool {
	return func(defaultValue bool) bool {
		if s := Var(k); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return true
			}
			return b
		}
		return defaultValue
	}
}

// Bool returns a reader for a boolean variable that defaults to false.
func Bool(k string) func() bool {
	withDefault := BoolWithDefault(k)
	return func() bool {
		return withDefault(false)
	}
}

// Uint returns a reader for an unsigned integer variable. Invalid values
// are logged and replaced by defaultValue.
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

// EnvVar describes one recognised variable.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every recognised variable with its current value.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"STEPNET_DEBUG":       {"STEPNET_DEBUG", LogLevel(), "Show additional debug information (e.g. STEPNET_DEBUG=1)"},
		"STEPNET_NOPARALLEL":  {"STEPNET_NOPARALLEL", NoParallel(), "Run parallel kernels sequentially"},
		"STEPNET_NUM_WORKERS": {"STEPNET_NUM_WORKERS", effectiveWorkers(), "Worker goroutines for parallel kernels (default: number of CPUs)"},
		"STEPNET_MIN_CHUNK":   {"STEPNET_MIN_CHUNK", MinChunk(), "Minimum rows per worker (default: 1)"},
		"STEPNET_DNC_LEAF":    {"STEPNET_DNC_LEAF", LeafSize(), "Block edge where divide-and-conquer multiply stops recursing (default: 64)"},
		"STEPNET_STATS":       {"STEPNET_STATS", Stats(), "Print tensor statistics after every step"},
	}
}

// Values returns the current values as strings, keyed by variable name.
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

func effectiveWorkers() uint {
	if n := NumWorkers(); n > 0 {
		return n
	}
	return uint(runtime.NumCPU())
}
