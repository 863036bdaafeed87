package frontend

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistFS_ContainsIndexHTML(t *testing.T) {
	fsys := DistFS()

	content, err := fs.ReadFile(fsys, "dist/index.html")
	require.NoError(t, err, "dist/index.html should exist in embedded FS")
	assert.Contains(t, string(content), "<!DOCTYPE html>")
	assert.Contains(t, string(content), `<main id="app">`)
	assert.Contains(t, string(content), `<select id="status" name="status">`)
}

func TestDistFS_ContainsAssetsDirectory(t *testing.T) {
	entries, err := fs.ReadDir(DistFS(), "dist/assets")
	require.NoError(t, err, "dist/assets directory should exist")

	var hasJS, hasCSS bool
	for _, entry := range entries {
		hasJS = hasJS || strings.HasSuffix(entry.Name(), ".js")
		hasCSS = hasCSS || strings.HasSuffix(entry.Name(), ".css")
	}
	assert.True(t, hasJS, "dist/assets should contain a .js file")
	assert.True(t, hasCSS, "dist/assets should contain a .css file")
}

func TestDistFS_CanSub(t *testing.T) {
	subFS, err := fs.Sub(DistFS(), "dist")
	require.NoError(t, err)

	content, err := fs.ReadFile(subFS, "index.html")
	require.NoError(t, err, "index.html should be accessible after fs.Sub")
	assert.Contains(t, string(content), "<!DOCTYPE html>")
}
