package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

// tagKey is the slog attribute key carrying a message's filter tag.
const tagKey = "tag"

// filteringHandler wraps a base slog.Handler with tag and package
// filtering driven by the processed Config.
type filteringHandler struct {
	baseHandler slog.Handler
	cfg         *Config
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{baseHandler: base, cfg: cfg}
}

// Enabled defers the level check to the base handler.
func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.baseHandler.Enabled(ctx, level)
}

// Handle drops records filtered out by package or tag, then hands the
// rest to the base handler.
func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.baseHandler.Handle(ctx, r)
	}

	if pkg := sourcePackage(r); pkg != "" {
		pkgLower := strings.ToLower(pkg)
		if _, found := h.cfg.disabledPackagesSet[pkgLower]; found {
			return nil
		}
		if h.cfg.enabledPackagesSet != nil {
			if _, found := h.cfg.enabledPackagesSet[pkgLower]; !found {
				return nil
			}
		}
	}

	tag, tagged := recordTag(r)
	if tagged {
		if _, found := h.cfg.disabledTagsSet[tag]; found {
			return nil
		}
		if h.cfg.enabledTagsSet != nil {
			if _, found := h.cfg.enabledTagsSet[tag]; !found {
				return nil
			}
		}
	} else if h.cfg.enabledTagsSet != nil {
		// Specific tags requested; untagged messages don't qualify.
		return nil
	}

	return h.baseHandler.Handle(ctx, r)
}

// sourcePackage resolves the record's originating package (immediate
// directory name) from its program counter.
func sourcePackage(r slog.Record) string {
	if r.PC == 0 {
		return ""
	}
	frames := runtime.CallersFrames([]uintptr{r.PC})
	frame, _ := frames.Next()
	if frame.File == "" {
		return ""
	}
	return filepath.Base(filepath.Dir(frame.File))
}

// recordTag extracts the tag attribute, if any.
func recordTag(r slog.Record) (string, bool) {
	var tag string
	var found bool
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = strings.ToLower(a.Value.String())
			found = true
			return false
		}
		return true
	})
	return tag, found
}

// WithAttrs returns a new handler with attributes added.
func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithAttrs(attrs), h.cfg)
}

// WithGroup returns a new handler with a group added.
func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithGroup(name), h.cfg)
}
