package jsonlit

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// CLIHandler is a slog.Handler that writes plain text lines to stderr-like writers.
// Format: "2006-01-02 15:04:05.000 [LEVEL] [cmd_id] category: message"
type CLIHandler struct {
	w     io.Writer
	level slog.Level
	attrs []slog.Attr
	cmdID string
	mu    *sync.Mutex
}

// NewCLIHandler creates a new CLIHandler that writes to w.
// Only messages at or above level are written.
func NewCLIHandler(w io.Writer, level slog.Level) *CLIHandler {
	return &CLIHandler{w: w, level: level, mu: &sync.Mutex{}}
}

// Enabled reports whether the handler handles records at the given level.
func (h *CLIHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle writes a log record to the handler's writer.
func (h *CLIHandler) Handle(_ context.Context, r slog.Record) error {
	// Record attrs take precedence over handler attrs.
	category := ""
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == LogAttrKeyCategory.String() {
			category = a.Value.String()
			return false
		}
		return true
	})
	if category == "" {
		if i := slices.IndexFunc(h.attrs, func(a slog.Attr) bool {
			return a.Key == LogAttrKeyCategory.String()
		}); i >= 0 {
			category = h.attrs[i].Value.String()
		}
	}

	var sb strings.Builder
	sb.WriteString(r.Time.Format("2006-01-02 15:04:05.000"))
	sb.WriteString(" [")
	sb.WriteString(strings.ToUpper(r.Level.String()))
	sb.WriteString("] ")
	if h.cmdID != "" {
		sb.WriteString("[")
		sb.WriteString(h.cmdID)
		sb.WriteString("] ")
	}
	if category != "" {
		sb.WriteString(category)
		sb.WriteString(": ")
	}
	sb.WriteString(r.Message)
	sb.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

// WithAttrs returns a new handler with the given attributes.
// The cmd_id attribute is kept apart so it can be printed in its own slot.
func (h *CLIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := &CLIHandler{
		w:     h.w,
		level: h.level,
		attrs: slices.Clone(h.attrs),
		cmdID: h.cmdID,
		mu:    h.mu,
	}
	for _, a := range attrs {
		if a.Key == LogAttrKeyCmdID.String() {
			nh.cmdID = a.Value.String()
			continue
		}
		nh.attrs = append(nh.attrs, a)
	}
	return nh
}

// WithGroup returns the handler unchanged; groups are not rendered.
func (h *CLIHandler) WithGroup(_ string) slog.Handler {
	return h
}

// NewNopLogger creates a logger that discards all output.
func NewNopLogger() *slog.Logger {
	// LevelError+1 is above every level in use.
	return slog.New(NewCLIHandler(io.Discard, slog.LevelError+1))
}

// VerbosityToLevel converts a -v count to a slog.Level.
//
//	0 (no flag): LevelWarn
//	1 (-v):      LevelInfo
//	2+ (-vv):    LevelDebug
func VerbosityToLevel(verbosity int) slog.Level {
	switch {
	case verbosity >= 2:
		return slog.LevelDebug
	case verbosity == 1:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// LogAttrKey is a type-safe key for slog attributes.
type LogAttrKey string

// String returns the string value of the key.
func (k LogAttrKey) String() string {
	return string(k)
}

// Attr creates a slog.Attr with this key and the given value.
func (k LogAttrKey) Attr(value string) slog.Attr {
	return slog.String(string(k), value)
}

// Log attribute keys for slog records.
const (
	LogAttrKeyCategory LogAttrKey = "category"
	LogAttrKeyCmdID    LogAttrKey = "cmd_id"
)

// Log category values for consistent output prefixes.
const (
	LogCategoryDebug  = "debug"
	LogCategoryConfig = "config"
	LogCategoryStore  = "store"
	LogCategoryGlob   = "glob"
	LogCategoryRender = "render"
	LogCategoryCheck  = "check"
)

// commandIDBytes yields an 8-character hex command id.
const commandIDBytes = 4

// GenerateCommandID returns a random hex id used to group log lines of one run.
// It returns "" if the system random source fails, which drops the id from output.
func GenerateCommandID() string {
	b := make([]byte, commandIDBytes)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}
