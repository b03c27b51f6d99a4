package modflow

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

// disFixture is a minimal discretization file: 3 layers, 10 rows,
// 15 columns, 2 stress periods.
const disFixture = `# Discretization file
 3 10 15 2 4 2
CONSTANT 100.0
`

// testLogger returns a logger that swallows all output, keeping test
// runs quiet.
func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// writeWorkspaceFile writes one model file into the workspace directory.
func writeWorkspaceFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// writeBasicModel writes a small but complete model fixture into a temp
// workspace: a name file referencing DIS, BAS6, WEL, RCH packages and
// two external data files. It returns the workspace directory.
func writeBasicModel(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeWorkspaceFile(t, dir, "demo.nam", `# Name file for mf2005, generated by mfkit.
LIST           2 demo.list
DIS           11 demo.dis
BAS6          13 demo.bas
WEL           20 demo.wel
RCH           18 demo.rch
DATA          51 demo.arr
DATA(BINARY)  52 demo.bud REPLACE
`)
	writeWorkspaceFile(t, dir, "demo.dis", disFixture)
	writeWorkspaceFile(t, dir, "demo.bas", "# Basic package\nFREE\n")
	writeWorkspaceFile(t, dir, "demo.wel", "# Well package\n 2 0\n")
	writeWorkspaceFile(t, dir, "demo.rch", "# Recharge package\n 1 0\n")
	writeWorkspaceFile(t, dir, "demo.arr", " 1.0 2.0 3.0\n")

	return dir
}

// loadedFiletypes returns the filetype tags of a model's owned packages
// in insertion order.
func loadedFiletypes(m *Model) []string {
	var tags []string
	for _, p := range m.Packages() {
		tags = append(tags, p.Filetype())
	}
	return tags
}
