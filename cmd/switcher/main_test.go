package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akmonengine/switcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scene = `
camera:
  speed: 100
  path:
    - [0, 0, 0]
    - [400, 0, 0]
volumes:
  - name: Global
    infinite: true
  - name: Room
    priority: 2
    blend_radius: 10
`

func writeScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scene), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, levelFromFlags(true, true, true))
	assert.Equal(t, slog.LevelInfo, levelFromFlags(false, true, true))
	assert.Equal(t, slog.LevelError, levelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, levelFromFlags(false, false, false))
}

func TestInspect(t *testing.T) {
	out, err := run(t, "inspect", writeScene(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Room")
	assert.Contains(t, out, "Global")
	assert.Contains(t, out, "max priority 2")
	assert.Contains(t, out, "effective Room")

	out, err = run(t, "inspect", "--at", "500,0,0", writeScene(t))
	require.NoError(t, err)
	assert.Contains(t, out, "effective Global")

	_, err = run(t, "inspect", "--at", "1,2", writeScene(t))
	assert.Error(t, err)
}

func TestWireframe(t *testing.T) {
	output := filepath.Join(t.TempDir(), "volumes.obj")
	_, err := run(t, "wireframe", "-o", output, "--color", "priority", writeScene(t))
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, 120, strings.Count(string(data), "\nl "))
}

func TestWireframe_WithoutCamera(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
volumes:
  - name: Room
    priority: 2
  - name: Hall
    priority: 1
    position: [1000, 0, 0]
`), 0o644))

	out, err := run(t, "wireframe", "--color", "priority", path)
	require.NoError(t, err)
	assert.Equal(t, 240, strings.Count(out, "\nl "))
}

func TestWriteOBJFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "room.obj")
	require.NoError(t, writeOBJFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "v 0 0 0\n")
		return err
	}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v 0 0 0\n", string(data))

	failed := errors.New("disk full")
	err = writeOBJFile(filepath.Join(dir, "failed.obj"), func(io.Writer) error { return failed })
	assert.ErrorIs(t, err, failed)

	err = writeOBJFile(filepath.Join(dir, "missing", "room.obj"), func(io.Writer) error { return nil })
	assert.ErrorContains(t, err, "create output")
}

func TestSimulate(t *testing.T) {
	out, err := run(t, "simulate", "--duration", "3", "--dt", "0.1", "--action", "0.5:cycle-gi", writeScene(t))
	require.NoError(t, err)

	assert.Contains(t, out, "enter Room")
	assert.Contains(t, out, "action cycle-gi")
	assert.Contains(t, out, "exit Room")
	assert.Contains(t, out, "effective Global")
	assert.Contains(t, out, "report")
}

func TestSimulate_InvalidFlags(t *testing.T) {
	path := writeScene(t)

	_, err := run(t, "simulate", "--dt", "0", path)
	assert.Error(t, err)
	_, err = run(t, "simulate", "--action", "1:jump", path)
	assert.Error(t, err)
}

func TestParseScheduledAction(t *testing.T) {
	action, err := parseScheduledAction("1.5:cycle-refl")
	require.NoError(t, err)
	assert.Equal(t, 1.5, action.at)
	assert.Equal(t, switcher.ActionCycleReflection, action.action)

	action, err = parseScheduledAction("toggle")
	require.NoError(t, err)
	assert.Equal(t, 0.0, action.at)

	_, err = parseScheduledAction("soon:toggle")
	assert.Error(t, err)
}

func TestMissingScene(t *testing.T) {
	_, err := run(t, "inspect", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
