package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/socialnet-server/internal/config"
	"github.com/dtroode/socialnet-server/internal/repository/file"
	"github.com/dtroode/socialnet-server/internal/repository/memory"
)

func TestNewBackend_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	cfg := &config.Config{Store: config.Store{Backend: "file", FilePath: path}}

	backend, closeFn, err := newBackend(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()

	fb, ok := backend.(*file.Backend)
	require.True(t, ok)
	assert.Equal(t, path, fb.Path())

	_, err = backend.Load(context.Background())
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestNewBackend_Memory(t *testing.T) {
	cfg := &config.Config{Store: config.Store{Backend: "memory"}}

	backend, closeFn, err := newBackend(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()

	_, ok := backend.(*memory.Backend)
	assert.True(t, ok)
}

func TestNewBackend_Unknown(t *testing.T) {
	cfg := &config.Config{Store: config.Store{Backend: "redis"}}

	_, _, err := newBackend(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown store backend "redis"`)
}
