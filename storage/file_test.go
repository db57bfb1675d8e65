package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinneragent/storage"
)

func TestFileTemplateSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte("Plan three dinners."), 0o644))

	src := storage.NewFileTemplateSource(path)
	text, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Plan three dinners.", text)
}

func TestFileTemplateSource_MissingFile(t *testing.T) {
	src := storage.NewFileTemplateSource(filepath.Join(t.TempDir(), "nope.txt"))
	_, err := src.Load(context.Background())
	assert.Error(t, err)
}

func TestStaticTemplateSource(t *testing.T) {
	src := storage.NewStaticTemplateSource("inline template")
	text, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "inline template", text)
}
