// Package logging provides leveled logging and decision tracing for bionet.
//
// Operational messages go to a leveled slog.Logger on stderr. Graph-building
// decisions (neuron placement, overwritten pairs, weight draws) go to a
// DecisionLogger as JSONL, one event per line, each stamped with the run ID
// of the conversion that produced it.
package logging

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nvandessel/bionet/internal/constants"
)

// LevelTrace sits below Debug. At this level every synapse weight draw is
// logged in addition to the per-neuron decisions.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps "info", "debug" or "trace" (case-insensitive) to a
// slog.Level. Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled text logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok && l == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// DecisionLogger appends decision events to a JSONL file. It is safe for
// concurrent use, and every method is a no-op on a nil receiver.
type DecisionLogger struct {
	mu    sync.Mutex
	file  *os.File
	path  string
	runID string
	trace bool
}

// NewDecisionLogger opens dir/decisions.jsonl for append. It returns nil at
// info level, when dir is empty, or when the file cannot be opened.
func NewDecisionLogger(dir string, level string) *DecisionLogger {
	lvl := ParseLevel(level)
	if lvl == slog.LevelInfo || dir == "" {
		return nil
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil
	}

	path := filepath.Join(dir, constants.DecisionLogFile)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil
	}

	return &DecisionLogger{
		file:  f,
		path:  path,
		runID: uuid.New().String(),
		trace: lvl <= LevelTrace,
	}
}

// RunID identifies the conversion whose events this logger records.
func (dl *DecisionLogger) RunID() string {
	if dl == nil {
		return ""
	}
	return dl.runID
}

// Path returns the JSONL file being written.
func (dl *DecisionLogger) Path() string {
	if dl == nil {
		return ""
	}
	return dl.path
}

// Log writes event as one JSONL line with "time" and "run_id" added. The
// caller's map is not mutated. Per-synapse events ("synapse_weighted") are
// only kept at trace level.
func (dl *DecisionLogger) Log(event map[string]any) {
	if dl == nil {
		return
	}
	if !dl.trace && event["event"] == "synapse_weighted" {
		return
	}

	entry := make(map[string]any, len(event)+2)
	for k, v := range event {
		entry[k] = v
	}
	entry["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	entry["run_id"] = dl.runID

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	data = append(data, '\n')

	dl.mu.Lock()
	defer dl.mu.Unlock()
	if dl.file == nil {
		return
	}
	_, _ = dl.file.Write(data)
}

// Close closes the underlying file.
func (dl *DecisionLogger) Close() {
	if dl == nil {
		return
	}

	dl.mu.Lock()
	defer dl.mu.Unlock()
	if dl.file == nil {
		return
	}
	dl.file.Close()
	dl.file = nil
}
