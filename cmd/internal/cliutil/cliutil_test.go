package cliutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOutput(t *testing.T) {
	var buf bytes.Buffer
	w, done, err := GetOutput("", &buf)
	require.NoError(t, err)
	done()
	assert.Same(t, &buf, w)

	w, done, err = GetOutput("-", &buf)
	require.NoError(t, err)
	done()
	assert.Same(t, &buf, w)

	path := filepath.Join(t.TempDir(), "out.txt")
	w, done, err = GetOutput(path, &buf)
	require.NoError(t, err)
	_, err = w.Write([]byte("hello"))
	require.NoError(t, err)
	done()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, _, err = GetOutput(filepath.Join(t.TempDir(), "missing", "out.txt"), &buf)
	assert.Error(t, err)
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, "bad %s", "thing")
	assert.Equal(t, "error: bad thing\n", buf.String())
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf))
	assert.False(t, ColorEnabled(&buf, false))

	f, err := os.Create(filepath.Join(t.TempDir(), "plain"))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, IsTerminal(f), "regular file")
	assert.False(t, ColorEnabled(f, true))
}
