package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, yaml string, args ...string) (string, error) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", path))
	err := rootCmd.Execute()
	return out.String(), err
}

const smallSearch = `
search:
  simulations: 10
  max_steps: 3
  seed: 1
log_level: warn
`

func TestSearchCommand(t *testing.T) {
	out, err := execute(t, smallSearch+"game:\n  name: walk\n  target: 6\n", "search")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3, "One line per walk action")
	require.True(t, strings.HasPrefix(lines[0], "0\t"))
}

func TestSelfPlayCommand(t *testing.T) {
	out, err := execute(t, smallSearch+"game:\n  name: tictactoe\n", "selfplay")

	require.NoError(t, err)
	require.Contains(t, out, "winner: ")
	require.Contains(t, out, "moves: ")
}

func TestExperimentCommand(t *testing.T) {
	_, err := execute(t, smallSearch, "experiment", "unknown")
	require.Error(t, err)
}

func TestInvalidConfig(t *testing.T) {
	_, err := execute(t, "search:\n  simulations: 0\n", "search")
	require.Error(t, err)
}
