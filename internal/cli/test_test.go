package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var harnessScenarios = filepath.Join("..", "harness", "testdata", "scenarios")

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := runCLI(t, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentDir(t *testing.T) {
	_, err := runCLI(t, "test", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyDir(t *testing.T) {
	out, err := runCLI(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestTestCommandEmptyDirJSON(t *testing.T) {
	out, err := runCLI(t, "--format", "json", "test", t.TempDir())
	require.NoError(t, err)

	var result TestResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 0, result.Total)
}

func TestTestCommandHarnessScenarios(t *testing.T) {
	out, err := runCLI(t, "test", harnessScenarios)
	require.NoError(t, err, "output:\n%s", out)
	assert.Contains(t, out, "✓ reference_chart")
	assert.Contains(t, out, "Test Summary: 3 passed, 0 failed, 3 total")
}

func TestTestCommandFilter(t *testing.T) {
	out, err := runCLI(t, "--format", "json", "test", harnessScenarios, "--filter", "day_*")
	require.NoError(t, err)

	var result TestResult
	decodeResponse(t, out, &result)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "day_boundary", result.Scenarios[0].Name)
}

const failingScenario = `
name: failing
description: expects the wrong day pillar
table: {first_year: 1989, last_year: 1992}
cases:
  - name: wrong
    query: {date: "1990-05-15"}
    expect:
      chart:
        pillars:
          day: {pillar: 甲子}
`

func TestTestCommandFailure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "failing.yaml"), []byte(failingScenario), 0644))

	out, err := runCLI(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ failing")
	assert.Contains(t, out, `wrong: pillars.day.pillar: expected "甲子", got "庚辰"`)
}

func TestTestCommandLoadError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("name: x\n"), 0644))

	out, err := runCLI(t, "--format", "json", "test", dir)
	require.Error(t, err)

	var result TestResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)
	require.Len(t, result.Scenarios, 1)
	assert.Equal(t, "bad.yaml", result.Scenarios[0].Name)
	assert.Contains(t, result.Scenarios[0].Errors[0], "failed to load scenario")
}

const goldenScenario = `
name: snap
description: golden chart
table: {first_year: 1989, last_year: 1992}
query_id: q-golden
cases:
  - name: reference
    query: {date: "1990-05-15", time: "14:00", gender: female}
    golden: true
`

func TestTestCommandGoldenUpdate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "snap.yaml"), []byte(goldenScenario), 0644))
	golden := filepath.Join(dir, "golden", "snap_reference.golden")

	// No golden file yet.
	out, err := runCLI(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "golden file snap_reference.golden missing")

	_, err = runCLI(t, "test", dir, "--update")
	require.NoError(t, err)
	data, err := os.ReadFile(golden)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"query_id":"q-golden"`)

	_, err = runCLI(t, "test", dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(golden, []byte("{}"), 0644))
	out, err = runCLI(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "chart does not match golden file")
}
