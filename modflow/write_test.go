package modflow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizusim/mfkit/nam"
)

// TestWriteNameFile_Layout verifies the fixed writer layout: heading,
// LIST line, package lines with a 12-character name field and 3-digit
// unit field, then DATA lines with REPLACE on binary entries.
func TestWriteNameFile_Layout(t *testing.T) {
	dir := t.TempDir()
	m, err := New("demo", Options{Workspace: dir, Logger: testLogger()})
	require.NoError(t, err)

	m.AddPackage(NewGenericPackage("WEL", 20, "demo.wel", []byte("wells\n")))
	m.AddExternal("demo.arr", 51, false)
	m.AddExternal("demo.bud", 52, true)

	require.NoError(t, m.WriteNameFile())

	data, err := os.ReadFile(filepath.Join(dir, "demo.nam"))
	require.NoError(t, err)

	want := "# Name file for mf2005, generated by mfkit.\n" +
		"LIST           2 demo.list\n" +
		"WEL           20 demo.wel\n" +
		"DATA           51  demo.arr\n" +
		"DATA(BINARY)   52  demo.bud REPLACE\n"
	assert.Equal(t, want, string(data))
}

// TestWriteNameFile_MF2KGlobalLine verifies that mf2k models emit the
// GLOBAL line ahead of the LIST line.
func TestWriteNameFile_MF2KGlobalLine(t *testing.T) {
	dir := t.TempDir()
	m, err := New("demo", Options{Version: VersionMF2K, Workspace: dir, Logger: testLogger()})
	require.NoError(t, err)

	require.NoError(t, m.WriteNameFile())

	data, err := os.ReadFile(filepath.Join(dir, "demo.nam"))
	require.NoError(t, err)

	want := "# Name file for mf2k, generated by mfkit.\n" +
		"GLOBAL         1 demo.glo\n" +
		"LIST           2 demo.list\n"
	assert.Equal(t, want, string(data))
}

// TestWriteNameFile_SkipsUnitZero verifies that entries with unit 0 are
// not emitted; unit 0 is not a real file handle.
func TestWriteNameFile_SkipsUnitZero(t *testing.T) {
	dir := t.TempDir()
	m, err := New("demo", Options{Workspace: dir, Logger: testLogger()})
	require.NoError(t, err)

	m.AddExternal("phantom.arr", 0, false)
	require.NoError(t, m.WriteNameFile())

	data, err := os.ReadFile(filepath.Join(dir, "demo.nam"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "phantom.arr")
}

// TestWriteNameFile_RoundTrip verifies the round-trip property: writing
// a loaded model's manifest and re-parsing it yields the same set of
// (unit, filetype, filename) triples.
func TestWriteNameFile_RoundTrip(t *testing.T) {
	dir := writeBasicModel(t)

	m, _, err := Load("demo.nam", LoadOptions{Workspace: dir, Logger: testLogger()})
	require.NoError(t, err)

	out := t.TempDir()
	m.Workspace = out
	require.NoError(t, m.WriteNameFile())

	table, err := nam.Parse(filepath.Join(out, "demo.nam"))
	require.NoError(t, err)

	type triple struct {
		unit     int
		filetype string
		filename string
	}
	got := make(map[triple]bool)
	for _, e := range table.Entries() {
		got[triple{e.Unit, e.Filetype, e.Filename}] = true
	}

	want := map[triple]bool{
		{2, "LIST", "demo.list"}:         true,
		{11, "DIS", "demo.dis"}:          true,
		{13, "BAS6", "demo.bas"}:         true,
		{20, "WEL", "demo.wel"}:          true,
		{18, "RCH", "demo.rch"}:          true,
		{51, "DATA", "demo.arr"}:         true,
		{52, "DATA(BINARY)", "demo.bud"}: true,
	}
	assert.Equal(t, want, got)
}

// TestWriteInput verifies that WriteInput emits the name file plus every
// owned package's own file, with generic payloads preserved
// byte-for-byte.
func TestWriteInput(t *testing.T) {
	dir := writeBasicModel(t)

	m, _, err := Load("demo.nam", LoadOptions{Workspace: dir, Logger: testLogger()})
	require.NoError(t, err)

	out := t.TempDir()
	m.Workspace = out
	require.NoError(t, m.WriteInput())

	assert.FileExists(t, filepath.Join(out, "demo.nam"))

	wel, err := os.ReadFile(filepath.Join(out, "demo.wel"))
	require.NoError(t, err)
	assert.Equal(t, "# Well package\n 2 0\n", string(wel))

	dis, err := os.ReadFile(filepath.Join(out, "demo.dis"))
	require.NoError(t, err)
	assert.Equal(t, disFixture, string(dis))

	// Fixed packages are simulator output; nothing should be written
	// for LIST.
	assert.NoFileExists(t, filepath.Join(out, "demo.list"))
}

// TestWriteNameFile_RelativizesExternalPaths verifies that external file
// entries declared with absolute paths are written relative to the
// workspace.
func TestWriteNameFile_RelativizesExternalPaths(t *testing.T) {
	dir := t.TempDir()
	m, err := New("demo", Options{Workspace: dir, Logger: testLogger()})
	require.NoError(t, err)

	m.AddExternal(filepath.Join(dir, "sub", "demo.arr"), 51, false)
	require.NoError(t, m.WriteNameFile())

	data, err := os.ReadFile(filepath.Join(dir, "demo.nam"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "DATA           51  "+filepath.Join("sub", "demo.arr")+"\n")
}
