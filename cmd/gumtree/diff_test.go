package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/gumtree/pkg/config"
	"github.com/Sumatoshi-tech/gumtree/pkg/gumtree"
)

func TestParseDiffArgs(t *testing.T) {
	t.Parallel()

	action, fileA, fileB := parseDiffArgs([]string{"a.json", "b.json"})
	assert.Equal(t, "diff", action)
	assert.Equal(t, "a.json", fileA)
	assert.Equal(t, "b.json", fileB)

	action, fileA, fileB = parseDiffArgs([]string{"jsondiff", "a.json", "b.json"})
	assert.Equal(t, "jsondiff", action)
	assert.Equal(t, "a.json", fileA)
	assert.Equal(t, "b.json", fileB)
}

// resetFlagGlobals restores the package-level flag variables bindFlagOverrides
// reads, so tests don't leak state into one another (cobra flag vars are
// process-global, per the flag declarations in main.go).
func resetFlagGlobals(t *testing.T) {
	t.Helper()

	flagMinH, flagMinSim, flagMaxSize = -1, -1, -1
	logLevel, logFormat, metricsAddr = "", "", ""

	t.Cleanup(func() {
		flagMinH, flagMinSim, flagMaxSize = -1, -1, -1
		logLevel, logFormat, metricsAddr = "", "", ""
	})
}

func TestBindFlagOverrides_LeavesDefaultsWhenUnset(t *testing.T) {
	resetFlagGlobals(t)

	cfg := &config.Config{
		Matcher: config.MatcherConfig{MinHeight: 2, MinSimilarity: 0.5, MaxSize: 100},
		Logging: config.LoggingConfig{Level: "info", Format: "text"},
	}

	bindFlagOverrides(cfg)

	assert.Equal(t, 2, cfg.Matcher.MinHeight)
	assert.InDelta(t, 0.5, cfg.Matcher.MinSimilarity, 1e-9)
	assert.Equal(t, 100, cfg.Matcher.MaxSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestBindFlagOverrides_AppliesSetFlags(t *testing.T) {
	resetFlagGlobals(t)

	flagMinH = 5
	flagMinSim = 0.9
	logLevel = "debug"

	cfg := &config.Config{
		Matcher: config.MatcherConfig{MinHeight: 2, MinSimilarity: 0.5, MaxSize: 100},
		Logging: config.LoggingConfig{Level: "info", Format: "text"},
	}

	bindFlagOverrides(cfg)

	assert.Equal(t, 5, cfg.Matcher.MinHeight)
	assert.InDelta(t, 0.9, cfg.Matcher.MinSimilarity, 1e-9)
	assert.Equal(t, 100, cfg.Matcher.MaxSize, "max-size flag wasn't set, so it keeps the config's value")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, exitMalformedInput, exitCodeFor(gumtree.ErrMissingRoot))
	assert.Equal(t, exitMalformedInput, exitCodeFor(gumtree.ErrSchemaValidation))
	assert.Equal(t, exitInternalError, exitCodeFor(gumtree.ErrInconsistentMapping))
	assert.Equal(t, exitInternalError, exitCodeFor(ErrUnsupportedAction))
}
