package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlay(t *testing.T) {
	// Given: the play command reading a full game from stdin
	root := Root()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader("1\n4\n2\n5\n3\nq\n"))
	root.SetArgs([]string{"play", "--config", filepath.Join(t.TempDir(), "missing.yml")})

	// When: the command runs
	err := root.Execute()

	// Then: X wins on the shared board
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Winner: X")
}

func TestServe_BadConfig(t *testing.T) {
	// Given: an unknown storage backend in the environment
	t.Setenv("STORAGE", "etcd")

	root := Root()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"serve", "--config", filepath.Join(t.TempDir(), "missing.yml"), "--port", "0"})

	// When: the server is started
	err := root.Execute()

	// Then: it fails before listening
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage")
}
