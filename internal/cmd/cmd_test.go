package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrison/smtprogress/internal/config"
	"github.com/harrison/smtprogress/internal/display"
	"github.com/harrison/smtprogress/internal/filelock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCommand()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// missingConfig points --config at a file that does not exist so tests
// never pick up a config from the working directory.
func missingConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "config.yaml")
}

func TestRootCommandHelp(t *testing.T) {
	stdout, _, err := execute(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "smtprogress")
	assert.Contains(t, stdout, "SMT_QUIET")
	for _, sub := range []string{"run", "render", "config"} {
		assert.Contains(t, stdout, sub)
	}
}

func TestRunDrawsBarToCompletion(t *testing.T) {
	t.Setenv(config.QuietEnvVar, "")

	_, stderr, err := execute(t, "run",
		"--config", missingConfig(t),
		"--total", "20",
		"--workers", "2",
		"--lanes", "2",
		"--work", "0s",
		"--interval", "1ms",
		"--name", "Loading",
	)
	require.NoError(t, err)

	assert.Contains(t, stderr, display.RenderBar(20, 20, "Loading")+"\r\n")
	assert.Contains(t, stderr, "=== Run Summary ===")
	assert.Contains(t, stderr, "Completed: 20/20 units")
	assert.Contains(t, stderr, "Workers: 2 on 2 lanes")
	assert.NotContains(t, stderr, "Workers exceed available lanes")
}

func TestRunQuiet(t *testing.T) {
	tests := []struct {
		name string
		env  string
		args []string
	}{
		{name: "flag", env: "", args: []string{"--quiet"}},
		{name: "environment", env: "1"},
		{name: "environment true", env: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(config.QuietEnvVar, tt.env)

			args := append([]string{"run",
				"--config", missingConfig(t),
				"--total", "50",
				"--workers", "4",
				"--lanes", "4",
				"--work", "0s",
			}, tt.args...)
			_, stderr, err := execute(t, args...)
			require.NoError(t, err)

			assert.NotContains(t, stderr, "] 100%")
			assert.NotContains(t, stderr, "\r")
			assert.Contains(t, stderr, "Completed: 50/50 units")
		})
	}
}

func TestRunWidensLanes(t *testing.T) {
	_, stderr, err := execute(t, "run",
		"--config", missingConfig(t),
		"--total", "9",
		"--workers", "3",
		"--lanes", "1",
		"--work", "0s",
		"--quiet",
	)
	require.NoError(t, err)

	assert.Contains(t, stderr, "Workers exceed available lanes")
	assert.Contains(t, stderr, "Workers: 3 on 3 lanes")
}

func TestRunUsesConfigFile(t *testing.T) {
	t.Setenv(config.QuietEnvVar, "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: FromFile\ninterval: 1ms\nlanes: 1\n"), 0644))

	_, stderr, err := execute(t, "run", "--config", path, "--total", "3", "--workers", "1", "--work", "0s")
	require.NoError(t, err)

	assert.Contains(t, stderr, display.RenderBar(3, 3, "FromFile")+"\r\n")
}

func TestRunRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no workers", args: []string{"--workers", "0"}, want: "--workers"},
		{name: "negative work", args: []string{"--work", "-1s"}, want: "--work"},
		{name: "bad log level", args: []string{"--log-level", "loud"}, want: "log_level"},
		{name: "zero interval", args: []string{"--interval", "0s"}, want: "interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"run", "--config", missingConfig(t), "--total", "1", "--quiet"}, tt.args...)
			_, _, err := execute(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunWorkloadSplitsEvenly(t *testing.T) {
	for _, tc := range []struct {
		total   uint64
		workers int
	}{
		{0, 3},
		{7, 3},
		{100, 8},
		{2, 5},
	} {
		ind := newQuietIndicator(tc.total, tc.workers)
		runWorkload(t.Context(), ind, tc.total, tc.workers, 0)
		assert.Equal(t, tc.total, ind.Sum())
	}
}

func TestRenderCommand(t *testing.T) {
	stdout, _, err := execute(t, "render", "--sum", "1", "--total", "4")
	require.NoError(t, err)

	assert.Equal(t, display.RenderBar(1, 4, "Progress")+"\n", stdout)
	assert.True(t, strings.HasPrefix(stdout, "Progress ........... ["+strings.Repeat("=", 12)+">"))
	assert.Contains(t, stdout, "]  25%")
}

func TestConfigInitAndShow(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := execute(t, "config", "init", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, config.ConfigPath(dir))

	_, err = os.Stat(config.ConfigPath(dir))
	require.NoError(t, err)

	_, _, err = execute(t, "config", "init", "--dir", dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, filelock.ErrExists)

	_, _, err = execute(t, "config", "init", "--dir", dir, "--force")
	require.NoError(t, err)

	t.Setenv(config.QuietEnvVar, "1")
	stdout, _, err = execute(t, "config", "show", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "name: Progress")
	assert.Contains(t, stdout, "interval: 100ms")
	assert.Contains(t, stdout, "# SMT_QUIET: quiet=true")
}
