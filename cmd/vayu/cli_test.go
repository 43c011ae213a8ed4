package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintRoutes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printRoutes(&buf, "/app"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 10, "header, eight items and settings")
	require.Contains(t, lines[3], "/app/livemap")
	require.Contains(t, lines[5], "true")
	require.Contains(t, lines[6], "false")
	require.Contains(t, lines[9], "/app/settings")
}

func TestRoutesCommand(t *testing.T) {
	t.Setenv("VAYU_SERVER__BASE_PATH", "/")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"routes"})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "/policyhub")
}
