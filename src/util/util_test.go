package util

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codetools/src/config"
)

func TestTokenMatcher_Count(t *testing.T) {
	t.Parallel()

	tests := []struct {
		token string
		text  string
		want  int
	}{
		{"if", "if (a) {} else if (b) {}", 2},
		{"if", "notify(); iffy(); elif", 0},
		{"for", "for (;;) {} forEach()", 1},
		{"case", "switch (x) { case 1: case 2: }", 2},
		{"&&", "a && b && c", 2},
		{"||", "a || b", 1},
		{"&&", "a & b", 0},
		{"||", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.token+"/"+tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NewTokenMatcher(tt.token).Count(tt.text))
		})
	}
}

func TestCountMatches(t *testing.T) {
	t.Parallel()
	re := regexp.MustCompile(`=>`)
	assert.Equal(t, 2, CountMatches(re, "a => b; c => d"))
	assert.Equal(t, 0, CountMatches(re, "a >= b"))
}

func TestFirstLine(t *testing.T) {
	t.Parallel()

	lines := SplitLines("a\nb eval(x)\nc eval(y)")
	assert.Equal(t, 2, FirstLine(lines, func(l string) bool { return strings.Contains(l, "eval(") }))
	assert.Equal(t, 0, FirstLine(lines, func(l string) bool { return strings.Contains(l, "zzz") }))
	assert.Len(t, SplitLines(""), 1)
}

func TestLogger_TextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewLoggerTo(&buf, config.LoggingConfig{Level: "warn", Format: "text"})

	log.Info("hidden %d", 1)
	log.Warn("shown %d", 2)

	assert.Equal(t, "[WARN] shown 2\n", buf.String())
	assert.Equal(t, "warn", log.GetLevel())
}

func TestLogger_JSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewLoggerTo(&buf, config.LoggingConfig{Level: "debug", Format: "json", IncludeTimestamp: true})
	log.Debug("analysed %d lines", 3)

	var entry map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "analysed 3 lines", entry["msg"])
	assert.NotEmpty(t, entry["time"])
}
