// SPDX-License-Identifier: MIT

package cli

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// executeCommand runs a fresh command tree with args and returns captured output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()

	return buf.String(), err
}

func TestProblemsCommand(t *testing.T) {
	out, err := executeCommand(t, "problems")
	require.NoError(t, err)
	assert.Contains(t, out, "circle-line")
	assert.Contains(t, out, "powell")
}

func TestSolve_JSON(t *testing.T) {
	out, err := executeCommand(t, "solve", "circle-line", "--format", "json", "--workers", "2")
	require.NoError(t, err)

	var r report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "circle-line", r.Problem)
	require.Len(t, r.Solutions, 2)
	assert.InDelta(t, 1/math.Sqrt2, r.Solutions[1].Mid[0], 1e-9)
	assert.Positive(t, r.Stats.Processed)
}

func TestSolve_YAMLWithRest(t *testing.T) {
	out, err := executeCommand(t, "solve", "sqrt-shift", "-o", "yaml", "--rest")
	require.NoError(t, err)

	var r report
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	require.Len(t, r.Solutions, 1)
	assert.NotEmpty(t, r.Rest)
}

func TestSolve_TextAndMetrics(t *testing.T) {
	out, err := executeCommand(t, "solve", "four-roots", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "four-roots: 4 solution(s)")
	assert.Contains(t, out, "rootbox_boxes_total")
	assert.Contains(t, out, `rootbox_solutions 4`)
}

func TestSolve_BoxOverride(t *testing.T) {
	out, err := executeCommand(t, "solve", "four-roots", "--box", "0:5, 0:5")
	require.NoError(t, err)
	assert.Contains(t, out, "four-roots: 2 solution(s)")

	_, err = executeCommand(t, "solve", "four-roots", "--box", "0:5")
	assert.Error(t, err)

	_, err = executeCommand(t, "solve", "four-roots", "--box", "5:0,0:5")
	assert.Error(t, err)
}

func TestSolve_Errors(t *testing.T) {
	_, err := executeCommand(t, "solve", "unknown")
	assert.Error(t, err)

	_, err = executeCommand(t, "solve", "circle-line", "--format", "xml")
	assert.Error(t, err)

	_, err = executeCommand(t, "solve", "circle-line", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSolve_ConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "rootbox.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("solve:\n  format: json\n"), 0o600))

	out, err := executeCommand(t, "solve", "no-root", "--config", cfg)
	require.NoError(t, err)
	var r report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Empty(t, r.Solutions)

	t.Setenv("ROOTBOX_SOLVE_FORMAT", "yaml")
	out, err = executeCommand(t, "solve", "no-root", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "problem: no-root")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "ERROR", parseLevel("Error").String())
	assert.Equal(t, "WARN", parseLevel("bogus").String())
}
