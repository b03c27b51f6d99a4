package modflow

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mizusim/mfkit/nam"
)

// FileRef is one (name, unit, filename) triple owned by a package.
// The name-file writer emits one manifest line per FileRef.
type FileRef struct {
	// Name is the filetype tag written in the manifest's first column.
	Name string

	// Unit is the numeric file handle bound to the file.
	Unit int

	// Filename is the file path relative to the model workspace.
	Filename string
}

// Package is the capability set the orchestrator and writer require from
// every model component. A package may occupy more than one unit number
// (a package plus companion output files), hence Files returns a slice.
//
// Packages never hold a reference to their Model; everything they need at
// load time arrives through the Loader call.
type Package interface {
	// Filetype returns the package's upper-cased filetype tag.
	Filetype() string

	// Files returns the package's manifest entries in emission order.
	Files() []FileRef

	// WriteFile writes the package's own file(s) into the workspace.
	WriteFile(workspace string) error
}

// Loader constructs a package from a name-file entry. The model and the
// current working table are passed for packages that need grid shape,
// parameter context, or other units (the table is the load context; it
// must not be mutated by loaders).
type Loader func(e nam.Entry, m *Model, table *nam.UnitTable) (Package, error)

// GenericPackage represents a package whose payload the core does not
// interpret. The raw file content is retained so the package round-trips
// byte-for-byte through WriteFile. All registry-resolved package kinds
// without a dedicated loader use this representation.
type GenericPackage struct {
	filetype string
	unit     int
	filename string
	raw      []byte
}

// NewGenericPackage constructs a generic package from in-memory content.
// Intended for building models programmatically rather than from a name
// file.
func NewGenericPackage(filetype string, unit int, filename string, raw []byte) *GenericPackage {
	return &GenericPackage{
		filetype: normalizeTag(filetype),
		unit:     unit,
		filename: filename,
		raw:      raw,
	}
}

// LoadGeneric is the Loader for GenericPackage. It reads the package file
// relative to the model workspace; an unreadable file is the package's
// load failure.
func LoadGeneric(e nam.Entry, m *Model, _ *nam.UnitTable) (Package, error) {
	raw, err := os.ReadFile(m.resolvePath(e.Filename))
	if err != nil {
		return nil, fmt.Errorf("failed to read package file: %w", err)
	}
	return &GenericPackage{
		filetype: e.Filetype,
		unit:     e.Unit,
		filename: e.Filename,
		raw:      raw,
	}, nil
}

// Filetype returns the package's filetype tag.
func (p *GenericPackage) Filetype() string {
	return p.filetype
}

// Unit returns the package's unit number.
func (p *GenericPackage) Unit() int {
	return p.unit
}

// Filename returns the package file path relative to the workspace.
func (p *GenericPackage) Filename() string {
	return p.filename
}

// Raw returns the retained file content.
func (p *GenericPackage) Raw() []byte {
	return p.raw
}

// Files returns the package's single manifest entry.
func (p *GenericPackage) Files() []FileRef {
	return []FileRef{{Name: p.filetype, Unit: p.unit, Filename: p.filename}}
}

// WriteFile re-emits the retained content into the workspace.
func (p *GenericPackage) WriteFile(workspace string) error {
	path := p.filename
	if !filepath.IsAbs(path) {
		path = filepath.Join(workspace, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create package file directory: %w", err)
	}
	if err := os.WriteFile(path, p.raw, 0o644); err != nil {
		return fmt.Errorf("failed to write %s package file: %w", p.filetype, err)
	}
	return nil
}
