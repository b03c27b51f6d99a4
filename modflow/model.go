package modflow

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Known simulator version tags. The version is carried verbatim on the
// model; only mf2k changes behavior (it adds the GLOBAL package), and
// unstructured grids are only valid for mfusg.
const (
	VersionMF2K   = "mf2k"
	VersionMF2005 = "mf2005"
	VersionMFNWT  = "mfnwt"
	VersionMFUSG  = "mfusg"
)

// DefaultListUnit is the conventional unit number of the listing file.
const DefaultListUnit = 2

// ExternalFile is a data file referenced by unit number but not owned by
// any recognized package (e.g. a raw array input read through OPEN/CLOSE).
type ExternalFile struct {
	// Unit is the file handle bound to the file. Units allocated by the
	// model itself are above 1000; units parsed from a name file keep
	// whatever number the manifest declared.
	Unit int

	// Filename is the file path, relative to the workspace unless the
	// manifest declared it absolute.
	Filename string

	// Binary reports whether the file was declared as DATA(BINARY).
	Binary bool
}

// Options configures a new Model. The zero value is usable: it yields an
// mf2005 model in the current directory with the conventional list unit.
type Options struct {
	// Version is the simulator version tag (default mf2005). Stored
	// lower-cased; mf2k models additionally carry the GLOBAL package.
	Version string

	// ExeName is the simulator executable associated with the model
	// (default "mf2005"). Carried for tooling parity; the core never
	// runs it.
	ExeName string

	// Workspace is the directory the model's files live in (default ".").
	Workspace string

	// ExternalPath, when set, is the directory external arrays are
	// written to. It requires Workspace to be "." and is created if
	// missing.
	ExternalPath string

	// ListUnit overrides the listing file's unit number (default 2).
	ListUnit int

	// Unstructured marks the grid as unstructured. Only valid for mfusg.
	Unstructured bool

	// Verbose enables debug-level progress logging.
	Verbose bool

	// Logger overrides the model's logger. When nil, a logger writing
	// to stderr is created; Verbose selects its level.
	Logger *log.Logger
}

// Model is one simulation model: its identity, its owned packages, the
// unit table parsed from its name file, its external data files, and the
// allocator for new external units.
//
// The Model exclusively owns all of this state. Mutation happens inside
// the load orchestrator's single pass or through explicit calls; nothing
// here is safe for concurrent use.
type Model struct {
	// Workspace is the directory the model's files live in.
	Workspace string

	// Version is the lower-cased simulator version tag.
	Version string

	// ExeName is the simulator executable name.
	ExeName string

	// Heading is the comment line emitted at the top of the name file.
	Heading string

	// Structured is false only for unstructured (mfusg) grids.
	Structured bool

	// FreeFormat reports whether array input uses free format.
	FreeFormat bool

	// External reports whether external array storage is enabled.
	External bool

	// ExternalPath is the directory for external arrays when External
	// storage is enabled.
	ExternalPath string

	// Verbose mirrors the option; loaders may consult it.
	Verbose bool

	name      string
	nameExt   string
	packages  []Package
	lst       *fixedPackage
	glo       *fixedPackage
	externals []ExternalFile
	popKeys   []int
	alloc     *UnitAllocator
	registry  *Registry
	params    *ParamContext
	log       *log.Logger
}

// New constructs an empty model with a fresh registry snapshot, the
// fixed LIST package (and GLOBAL for mf2k), and an external-unit
// allocator starting above 1000.
func New(name string, opts Options) (*Model, error) {
	version := strings.ToLower(opts.Version)
	if version == "" {
		version = VersionMF2005
	}
	exeName := opts.ExeName
	if exeName == "" {
		exeName = "mf2005"
	}
	workspace := opts.Workspace
	if workspace == "" {
		workspace = "."
	}
	listUnit := opts.ListUnit
	if listUnit == 0 {
		listUnit = DefaultListUnit
	}
	if opts.Unstructured && version != VersionMFUSG {
		return nil, fmt.Errorf("unstructured grids are only valid for %s models, got version %s", VersionMFUSG, version)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "mfkit"})
		if opts.Verbose {
			logger.SetLevel(log.DebugLevel)
		}
	}

	m := &Model{
		Workspace:  workspace,
		Version:    version,
		ExeName:    exeName,
		Heading:    fmt.Sprintf("# Name file for %s, generated by mfkit.", version),
		Structured: !opts.Unstructured,
		FreeFormat: true,
		Verbose:    opts.Verbose,
		name:       name,
		nameExt:    "nam",
		alloc:      newUnitAllocator(),
		registry:   DefaultRegistry(),
		params:     newParamContext(),
		log:        logger,
	}
	m.lst = newListPackage(name, listUnit)
	if version == VersionMF2K {
		m.glo = newGlobalPackage(name)
	}

	if opts.ExternalPath != "" {
		// External array storage writes relative paths into package
		// files, which only line up when the model runs from the
		// workspace itself.
		if workspace != "." {
			return nil, fmt.Errorf("external path cannot be combined with a workspace other than \".\"")
		}
		switch _, err := os.Stat(opts.ExternalPath); {
		case err == nil:
			m.log.Debug("external path already exists", "path", opts.ExternalPath)
		case os.IsNotExist(err):
			if err := os.Mkdir(opts.ExternalPath, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create external path: %w", err)
			}
		default:
			return nil, fmt.Errorf("failed to inspect external path: %w", err)
		}
		m.External = true
		m.ExternalPath = opts.ExternalPath
	}

	return m, nil
}

// Name returns the model name.
func (m *Model) Name() string {
	return m.name
}

// SetName renames the model and retargets the fixed LIST and GLOBAL
// package files to follow the new name.
func (m *Model) SetName(name string) {
	m.name = name
	m.lst.retarget(name)
	if m.glo != nil {
		m.glo.retarget(name)
	}
}

// NameFile returns the model's name-file name (<name>.nam).
func (m *Model) NameFile() string {
	return m.name + "." + m.nameExt
}

// Registry returns the model's own registry snapshot. Registering
// loaders on it affects only this model.
func (m *Model) Registry() *Registry {
	return m.registry
}

// Params returns the model's parameter-substitution context.
func (m *Model) Params() *ParamContext {
	return m.params
}

// Logger returns the model's logger.
func (m *Model) Logger() *log.Logger {
	return m.log
}

// AddPackage appends a package to the model's owned set. Packages are
// kept in insertion order, which the name-file writer preserves.
func (m *Model) AddPackage(p Package) {
	m.packages = append(m.packages, p)
}

// Packages returns the model's owned packages in insertion order. The
// fixed LIST/GLOBAL packages are not included; they are written by the
// name-file writer ahead of all owned packages.
func (m *Model) Packages() []Package {
	out := make([]Package, len(m.packages))
	copy(out, m.packages)
	return out
}

// GetPackage returns the first owned package with the given filetype
// tag, matched case-insensitively, or nil.
func (m *Model) GetPackage(tag string) Package {
	tag = normalizeTag(tag)
	for _, p := range m.packages {
		if p.Filetype() == tag {
			return p
		}
	}
	return nil
}

// dis returns the discretization package, or nil before one is loaded.
func (m *Model) dis() *DisPackage {
	if p, ok := m.GetPackage("DIS").(*DisPackage); ok {
		return p
	}
	return nil
}

// Nlay returns the number of layers, or 0 when no discretization
// package is present.
func (m *Model) Nlay() int {
	if d := m.dis(); d != nil {
		return d.Nlay()
	}
	return 0
}

// Nrow returns the number of rows, or 0 when no discretization package
// is present.
func (m *Model) Nrow() int {
	if d := m.dis(); d != nil {
		return d.Nrow()
	}
	return 0
}

// Ncol returns the number of columns, or 0 when no discretization
// package is present.
func (m *Model) Ncol() int {
	if d := m.dis(); d != nil {
		return d.Ncol()
	}
	return 0
}

// Nper returns the number of stress periods, or 0 when no
// discretization package is present.
func (m *Model) Nper() int {
	if d := m.dis(); d != nil {
		return d.Nper()
	}
	return 0
}

// Shape returns (nlay, nrow, ncol, nper), all zero when no
// discretization package is present.
func (m *Model) Shape() (nlay, nrow, ncol, nper int) {
	return m.Nlay(), m.Nrow(), m.Ncol(), m.Nper()
}

// Allocate returns the next external unit number for this model.
func (m *Model) Allocate() int {
	return m.alloc.Allocate()
}

// AddExternal registers an external data file under the given unit.
func (m *Model) AddExternal(filename string, unit int, binary bool) {
	m.externals = append(m.externals, ExternalFile{Unit: unit, Filename: filename, Binary: binary})
}

// RemoveExternal removes the external file entry with the given unit
// number and reports whether one was removed.
func (m *Model) RemoveExternal(unit int) bool {
	for i, ext := range m.externals {
		if ext.Unit == unit {
			m.externals = append(m.externals[:i], m.externals[i+1:]...)
			return true
		}
	}
	return false
}

// Externals returns the model's external file entries in registration
// order.
func (m *Model) Externals() []ExternalFile {
	out := make([]ExternalFile, len(m.externals))
	copy(out, m.externals)
	return out
}

// AddPopKey marks a unit number as purely internal: a handle some loaded
// package claimed for itself (typically a binary output unit). Pop-listed
// units are excluded from external-data registration and reconciled out
// of the tables after the main load pass.
func (m *Model) AddPopKey(unit int) {
	if !m.hasPopKey(unit) {
		m.popKeys = append(m.popKeys, unit)
	}
}

// PopKeys returns the pop-listed unit numbers in registration order.
func (m *Model) PopKeys() []int {
	out := make([]int, len(m.popKeys))
	copy(out, m.popKeys)
	return out
}

func (m *Model) hasPopKey(unit int) bool {
	for _, k := range m.popKeys {
		if k == unit {
			return true
		}
	}
	return false
}

// resolvePath resolves a manifest filename against the model workspace.
func (m *Model) resolvePath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(m.Workspace, filename)
}
