package modflow

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// WriteNameFile re-emits the model's manifest into the workspace.
//
// The layout is fixed: the heading comment line, the GLOBAL line for
// mf2k models, the LIST line, one line per owned package file entry
// (12-character left-justified name, 3-digit right-justified unit,
// filename), then one DATA/DATA(BINARY) line per external file entry
// with its path written relative to the workspace. Entries with unit 0
// are skipped; unit 0 is not a real file handle.
func (m *Model) WriteNameFile() error {
	path := filepath.Join(m.Workspace, m.NameFile())
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create name file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%s\n", m.Heading)

	if m.glo != nil {
		writeFileRef(w, m.glo.Files()[0])
	}
	writeFileRef(w, m.lst.Files()[0])

	for _, p := range m.packages {
		for _, ref := range p.Files() {
			writeFileRef(w, ref)
		}
	}

	for _, ext := range m.externals {
		if ext.Unit == 0 {
			continue
		}
		name := ext.Filename
		if rel, err := filepath.Rel(m.Workspace, m.resolvePath(ext.Filename)); err == nil {
			name = rel
		}
		if ext.Binary {
			fmt.Fprintf(w, "DATA(BINARY)  %3d  %s REPLACE\n", ext.Unit, name)
		} else {
			fmt.Fprintf(w, "DATA          %3d  %s\n", ext.Unit, name)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write name file: %w", err)
	}
	return nil
}

// WriteInput writes the name file and then every owned package's own
// file(s) into the workspace. Fixed LIST/GLOBAL packages are simulator
// output and write nothing.
func (m *Model) WriteInput() error {
	if err := m.WriteNameFile(); err != nil {
		return err
	}
	for _, p := range m.packages {
		if err := p.WriteFile(m.Workspace); err != nil {
			return fmt.Errorf("failed to write %s package: %w", p.Filetype(), err)
		}
	}
	return nil
}

// writeFileRef emits one manifest record line for a package file entry.
func writeFileRef(w *bufio.Writer, ref FileRef) {
	if ref.Unit == 0 {
		return
	}
	fmt.Fprintf(w, "%-12s %3d %s\n", ref.Name, ref.Unit, ref.Filename)
}
