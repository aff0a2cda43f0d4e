package widgets

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
)

// Diagnostic codes reported by the dispatcher and decoder.
const (
	CodeUnknownType      = "widget.unknown_type"
	CodeRenderError      = "widget.render_error"
	CodeRenderPanic      = "widget.render_panic"
	CodeInvalidGrid      = "widget.invalid_grid"
	CodeInvalidInput     = "widget.invalid_input"
	CodeThemeUnavailable = "widget.theme_unavailable"
)

// Diagnostic is a developer-facing report about a widget that could not be
// rendered. It never reaches the end user.
type Diagnostic struct {
	Code       string
	WidgetType WidgetType
	// Index is the position of the entry within a batch or grid, -1 otherwise.
	Index      int
	Message    string
	Suggestion WidgetType
	Err        error
}

// Diagnostics receives dispatcher reports.
type Diagnostics interface {
	Report(ctx context.Context, d Diagnostic)
}

// DiagnosticsFunc adapts a function to Diagnostics.
type DiagnosticsFunc func(ctx context.Context, d Diagnostic)

// Report implements Diagnostics.
func (f DiagnosticsFunc) Report(ctx context.Context, d Diagnostic) {
	if f != nil {
		f(ctx, d)
	}
}

type noopDiagnostics struct{}

func (noopDiagnostics) Report(context.Context, Diagnostic) {}

// NoopDiagnostics discards every report.
func NoopDiagnostics() Diagnostics { return noopDiagnostics{} }

// LogDiagnostics writes reports as structured warnings.
type LogDiagnostics struct {
	Logger *slog.Logger
}

// Report implements Diagnostics.
func (l LogDiagnostics) Report(ctx context.Context, d Diagnostic) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []slog.Attr{
		slog.String("code", d.Code),
		slog.String("widget_type", string(d.WidgetType)),
	}
	if d.Index >= 0 {
		attrs = append(attrs, slog.Int("index", d.Index))
	}
	if d.Suggestion != "" {
		attrs = append(attrs, slog.String("did_you_mean", string(d.Suggestion)))
	}
	if d.Err != nil {
		attrs = append(attrs, slog.Any("error", d.Err))
	}
	logger.LogAttrs(ctx, slog.LevelWarn, d.Message, attrs...)
}

// DiagnosticsRecorder keeps reports in memory. Useful in tests and the CLI.
type DiagnosticsRecorder struct {
	mu      sync.Mutex
	entries []Diagnostic
}

// Report implements Diagnostics.
func (r *DiagnosticsRecorder) Report(_ context.Context, d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, d)
}

// Entries returns a copy of the recorded diagnostics.
func (r *DiagnosticsRecorder) Entries() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Diagnostic(nil), r.entries...)
}

// Reset clears recorded diagnostics.
func (r *DiagnosticsRecorder) Reset() {
	r.mu.Lock()
	r.entries = nil
	r.mu.Unlock()
}

func normalizeDiagnostics(d Diagnostics) Diagnostics {
	if d == nil {
		return noopDiagnostics{}
	}
	return d
}

// maxSuggestionDistance bounds how far a typo may be from a known type.
const maxSuggestionDistance = 3

// suggestType returns the closest registered type name for an unknown one.
func suggestType(unknown WidgetType, known []WidgetType) WidgetType {
	needle := strings.ToLower(strings.TrimSpace(string(unknown)))
	if needle == "" || len(known) == 0 {
		return ""
	}
	type candidate struct {
		t    WidgetType
		dist int
	}
	candidates := make([]candidate, 0, len(known))
	for _, t := range known {
		candidates = append(candidates, candidate{t: t, dist: levenshtein.ComputeDistance(needle, strings.ToLower(string(t)))})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].dist == candidates[j].dist {
			return candidates[i].t < candidates[j].t
		}
		return candidates[i].dist < candidates[j].dist
	})
	best := candidates[0]
	if best.t == unknown || best.dist > maxSuggestionDistance {
		return ""
	}
	return best.t
}
