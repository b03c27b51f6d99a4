package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeProjectFile writes a project file with the given name into dir.
func writeProjectFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ParsesJSONC(t *testing.T) {
	dir := t.TempDir()
	path := writeProjectFile(t, dir, "mfkit.jsonc", `{
  // Demo aquifer model.
  "name": "demo",
  "nameFile": "demo.nam",
  "version": "mfnwt",
  "exeName": "mfnwt.exe",
  "workspace": "model",
  "loadOnly": ["WEL", "RCH"],
  "registry": "registry.yaml",
  "verbose": true, // trailing comma below is fine too
}`)

	p, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "demo", p.Name)
	assert.Equal(t, "demo.nam", p.NameFile)
	assert.Equal(t, "mfnwt", p.Version)
	assert.Equal(t, "mfnwt.exe", p.ExeName)
	assert.Equal(t, "model", p.Workspace)
	assert.Equal(t, []string{"WEL", "RCH"}, p.LoadOnly)
	assert.Equal(t, "registry.yaml", p.Registry)
	assert.True(t, p.Verbose)
	assert.Equal(t, dir, p.Dir)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "mfkit.jsonc"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeProjectFile(t, dir, "mfkit.jsonc", `{"name": `)

	_, err := Load(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFind_PrefersVisibleFile(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, "mfkit.jsonc", `{"name": "visible"}`)
	writeProjectFile(t, dir, ".mfkit.jsonc", `{"name": "hidden"}`)

	p, err := Find(dir)
	require.NoError(t, err)
	assert.Equal(t, "visible", p.Name)
}

func TestFind_FallsBackToHiddenFile(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, ".mfkit.jsonc", `{"name": "hidden"}`)

	p, err := Find(dir)
	require.NoError(t, err)
	assert.Equal(t, "hidden", p.Name)
}

func TestFind_NotFound(t *testing.T) {
	_, err := Find(t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolvePath(t *testing.T) {
	p := &Project{Dir: "/proj"}

	assert.Equal(t, filepath.Join("/proj", "demo.nam"), p.ResolvePath("demo.nam"))
	assert.Equal(t, "/abs/demo.nam", p.ResolvePath("/abs/demo.nam"))
	assert.Equal(t, "", p.ResolvePath(""))

	bare := &Project{}
	assert.Equal(t, "demo.nam", bare.ResolvePath("demo.nam"))
}
