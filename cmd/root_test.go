package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whirl/internal/history"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command with an absent config file and a temporary
// history directory, returning the history directory alongside the output.
func execute(t *testing.T, ctx context.Context, args ...string) (result, string) {
	t.Helper()

	dir := t.TempDir()
	histDir := filepath.Join(dir, "runs")
	t.Setenv("WHIRL_HISTORY_DIR", histDir)

	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetArgs(append([]string{"--config", filepath.Join(dir, "absent.yaml")}, args...))
	root.SetIn(strings.NewReader(""))
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.ExecuteContext(ctx)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}, histDir
}

func listRecords(t *testing.T, dir string) []*history.Record {
	t.Helper()
	m, err := history.NewManager(dir)
	require.NoError(t, err)
	records, err := m.List()
	require.NoError(t, err)
	return records
}

func TestRunSuccessForcedSpinner(t *testing.T) {
	res, histDir := execute(t, context.Background(),
		"--force", "--sound", "--", "sh", "-c", "sleep 0.3; echo out")

	require.NoError(t, res.err)
	assert.Equal(t, "out\n", res.stdout)
	assert.True(t, strings.HasPrefix(res.stderr, "-"), "spinner should draw on stderr: %q", res.stderr)
	assert.Contains(t, res.stderr, "\a✓ done in ")

	records := listRecords(t, histDir)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"sh", "-c", "sleep 0.3; echo out"}, records[0].Command)
	assert.True(t, records[0].Succeeded())
}

func TestRunRedirectedStaysSilent(t *testing.T) {
	res, _ := execute(t, context.Background(), "sh", "-c", "sleep 0.3")

	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stderr, "✓ done in "), "unexpected spinner output: %q", res.stderr)
}

func TestRunDisabledSkipsBell(t *testing.T) {
	res, _ := execute(t, context.Background(), "--disable", "--force", "--sound", "true")

	require.NoError(t, res.err)
	assert.NotContains(t, res.stderr, "\a")
	assert.True(t, strings.HasPrefix(res.stderr, "✓"))
}

func TestRunForcedFromEnvironment(t *testing.T) {
	t.Setenv("WHIRL_FORCE", "true")
	t.Setenv("WHIRL_STREAM", "stdout")

	res, _ := execute(t, context.Background(), "sh", "-c", "sleep 0.3")

	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "-"), "spinner should draw on stdout: %q", res.stdout)
}

func TestRunPassesExitCode(t *testing.T) {
	res, histDir := execute(t, context.Background(), "--", "sh", "-c", "exit 3")

	var exitErr *ExitError
	require.ErrorAs(t, res.err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	assert.Contains(t, res.stderr, "✗ exit 3 after ")

	records := listRecords(t, histDir)
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].ExitCode)
	assert.Empty(t, records[0].Error)
}

func TestRunMissingCommand(t *testing.T) {
	res, histDir := execute(t, context.Background(), "--", "/nonexistent/whirl-test-binary")

	var exitErr *ExitError
	require.ErrorAs(t, res.err, &exitErr)
	assert.Equal(t, exitNotRunnable, exitErr.Code)
	assert.Contains(t, res.stderr, "Error:")

	records := listRecords(t, histDir)
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0].Error)
	assert.False(t, records[0].Succeeded())
}

func TestRunInterrupted(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	res, histDir := execute(t, ctx, "--force", "sleep", "5")

	assert.Less(t, time.Since(start), 4*time.Second)
	var exitErr *ExitError
	require.ErrorAs(t, res.err, &exitErr)
	assert.Equal(t, exitInterrupted, exitErr.Code)
	assert.Contains(t, res.stderr, "! interrupted after ")

	records := listRecords(t, histDir)
	require.Len(t, records, 1)
	assert.Contains(t, records[0].Error, "interrupted")
}

func TestRunNoHistory(t *testing.T) {
	res, histDir := execute(t, context.Background(), "--no-history", "true")

	require.NoError(t, res.err)
	_, err := os.Stat(histDir)
	assert.True(t, os.IsNotExist(err), "history directory should not be created")
}

func TestRunInvalidStream(t *testing.T) {
	res, _ := execute(t, context.Background(), "--stream", "printer", "true")

	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "--stream")
}

func TestRunRequiresCommand(t *testing.T) {
	res, _ := execute(t, context.Background())

	assert.Error(t, res.err)
}

func TestVerboseDumpsConfig(t *testing.T) {
	res, _ := execute(t, context.Background(), "--verbose", "--sound", "true")

	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "# resolved configuration")
	assert.Contains(t, res.stderr, "sound: true")
}

func TestHistoryListAndClear(t *testing.T) {
	dir := t.TempDir()
	histDir := filepath.Join(dir, "runs")
	t.Setenv("WHIRL_HISTORY_DIR", histDir)
	cfgPath := filepath.Join(dir, "absent.yaml")

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		root := NewRootCommand()
		root.SetArgs(append([]string{"--config", cfgPath}, args...))
		root.SetIn(strings.NewReader(""))
		root.SetOut(&out)
		root.SetErr(&bytes.Buffer{})
		err := root.Execute()
		return out.String(), err
	}

	out, err := run("history")
	require.NoError(t, err)
	assert.Equal(t, "No runs recorded.\n", out)

	_, err = run("--", "echo", "hello world")
	require.NoError(t, err)
	_, err = run("--", "sh", "-c", "exit 2")
	require.Error(t, err)

	out, err = run("history")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "COMMAND")
	assert.Contains(t, lines[2], `sh -c "exit 2"`, "newest run first")
	assert.Contains(t, lines[3], `echo "hello world"`)

	out, err = run("history", "--limit", "1")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimRight(out, "\n"), "\n"), 3)

	out, err = run("history", "clear")
	require.NoError(t, err)
	assert.Equal(t, "Deleted 2 runs.\n", out)

	out, err = run("history")
	require.NoError(t, err)
	assert.Equal(t, "No runs recorded.\n", out)
}

func TestHistoryShow(t *testing.T) {
	dir := t.TempDir()
	histDir := filepath.Join(dir, "runs")
	t.Setenv("WHIRL_HISTORY_DIR", histDir)
	cfgPath := filepath.Join(dir, "absent.yaml")

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		root := NewRootCommand()
		root.SetArgs(append([]string{"--config", cfgPath}, args...))
		root.SetIn(strings.NewReader(""))
		root.SetOut(&out)
		root.SetErr(&bytes.Buffer{})
		err := root.Execute()
		return out.String(), err
	}

	_, err := run("--", "sh", "-c", "exit 3")
	require.Error(t, err)

	records := listRecords(t, histDir)
	require.Len(t, records, 1)
	id := records[0].ID

	tests := []struct {
		name string
		arg  string
	}{
		{"full ID", id},
		{"listing prefix", id[:8]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run("history", "show", tt.arg)
			require.NoError(t, err)
			assert.Contains(t, out, "ID:       "+id+"\n")
			assert.Contains(t, out, `Command:  sh -c "exit 3"`)
			assert.Contains(t, out, "Exit:     3\n")
		})
	}

	_, err = run("history", "show", "ffffffff")
	assert.EqualError(t, err, `no run matches "ffffffff"`)

	_, err = run("history", "show", "00000000-0000-0000-0000-000000000000")
	assert.Error(t, err, "a well-formed ID with no record must fail")
}

func TestVersion(t *testing.T) {
	res, _ := execute(t, context.Background(), "version")

	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "whirl dev "))
}

func TestExitError(t *testing.T) {
	assert.EqualError(t, &ExitError{Code: 4}, "exit status 4")
}
