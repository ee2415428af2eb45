package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gumtree/pkg/version"
)

func TestVersionCmd_PrintsVersionFields(t *testing.T) {
	version.Version, version.Commit, version.Date = "1.2.3", "abc123", "2026-01-01"

	cmd := versionCmd()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.Run(cmd, nil)

	out := buf.String()
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "abc123")
	assert.Contains(t, out, "2026-01-01")
}

func TestDiffCmd_RejectsTooFewArgs(t *testing.T) {
	t.Parallel()

	cmd := diffCmd()
	cmd.SetArgs([]string{"only-one.json"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	require.Error(t, cmd.Execute())
}

func TestDiffCmd_RejectsTooManyArgs(t *testing.T) {
	t.Parallel()

	cmd := diffCmd()
	cmd.SetArgs([]string{"diff", "a.json", "b.json", "extra.json"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	require.Error(t, cmd.Execute())
}
