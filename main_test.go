package main

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDebugLog_Disabled(t *testing.T) {
	dir := t.TempDir()
	logger, closeLog, err := openDebugLog(dir, false)
	require.NoError(t, err)
	logger.Printf("dropped")
	assert.NoError(t, closeLog())
	assert.NoFileExists(t, filepath.Join(dir, "feed.log"))
}

func TestOpenDebugLog_ClosesFile(t *testing.T) {
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
	})
	dir := t.TempDir()

	logger, closeLog, err := openDebugLog(dir, true)
	require.NoError(t, err)
	logger.Printf("list 1: page 2 loaded")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(filepath.Join(dir, "feed.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "list 1: page 2 loaded")

	assert.Error(t, closeLog(), "file already closed")
}

func TestOpenDebugLog_BadDir(t *testing.T) {
	_, _, err := openDebugLog(filepath.Join(t.TempDir(), "missing", "dir"), true)
	assert.Error(t, err)
}
