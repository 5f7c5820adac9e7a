package logger

import (
	"context"
	"log/slog"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureHandler records everything the filter lets through.
type captureHandler struct {
	records []slog.Record
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r)
	return nil
}
func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

// callerPC returns a program counter inside this file, so package
// filtering resolves to "logger".
func callerPC() uintptr {
	var pcs [1]uintptr
	runtime.Callers(1, pcs[:])
	return pcs[0]
}

func taggedRecord(tag string, pc uintptr) slog.Record {
	r := slog.NewRecord(time.Now(), slog.LevelInfo, "message", pc)
	if tag != "" {
		r.AddAttrs(slog.String(tagKey, tag))
	}
	return r
}

func TestFilteringHandler(t *testing.T) {
	pc := callerPC()

	tests := []struct {
		name    string
		cfg     Config
		tag     string
		handled bool
	}{
		{"no filters pass everything", Config{}, "", true},
		{"disabled tag dropped", Config{DisabledTags: []string{"draw"}}, "draw", false},
		{"disabled tag is case-insensitive", Config{DisabledTags: []string{"DRAW"}}, "Draw", false},
		{"other tag passes a disable list", Config{DisabledTags: []string{"draw"}}, "input", true},
		{"enabled tag passes", Config{EnabledTags: []string{"draw"}}, "draw", true},
		{"enabled list drops other tags", Config{EnabledTags: []string{"draw"}}, "input", false},
		{"enabled list drops untagged messages", Config{EnabledTags: []string{"draw"}}, "", false},
		{"disabled wins over enabled", Config{EnabledTags: []string{"draw"}, DisabledTags: []string{"draw"}}, "draw", false},
		{"disabled package dropped", Config{DisabledPackages: []string{"logger"}}, "", false},
		{"enabled package passes", Config{EnabledPackages: []string{"logger"}}, "", true},
		{"enabled package list drops others", Config{EnabledPackages: []string{"tui"}}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.process()

			base := &captureHandler{}
			h := newFilteringHandler(base, &cfg)

			require.NoError(t, h.Handle(context.Background(), taggedRecord(tt.tag, pc)))
			assert.Equal(t, tt.handled, len(base.records) == 1)
		})
	}
}

func TestFilteringHandler_NoSourceSkipsPackageFilter(t *testing.T) {
	cfg := Config{DisabledPackages: []string{"logger"}}
	cfg.process()

	base := &captureHandler{}
	h := newFilteringHandler(base, &cfg)

	// A record without a program counter has no package to filter on.
	require.NoError(t, h.Handle(context.Background(), taggedRecord("", 0)))
	assert.Len(t, base.records, 1)
}
