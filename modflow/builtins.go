package modflow

// builtins.go defines the fixed packages every model carries regardless
// of its name file: the listing package (LIST) and, for mf2k models, the
// global package (GLOBAL). They are never resolved through the registry
// and never loaded from disk; the simulator itself writes their files,
// so WriteFile is a no-op. The writer emits their manifest lines ahead
// of all registry-resolved packages.

// fixedPackage is a package with exactly one manifest entry and no
// payload of its own.
type fixedPackage struct {
	name      string
	unit      int
	extension string
	filename  string
}

// newListPackage returns the LIST package for the given model name with
// the conventional unit number (2 unless overridden).
func newListPackage(modelName string, unit int) *fixedPackage {
	p := &fixedPackage{name: "LIST", unit: unit, extension: "list"}
	p.retarget(modelName)
	return p
}

// newGlobalPackage returns the GLOBAL package (mf2k only, unit 1).
func newGlobalPackage(modelName string) *fixedPackage {
	p := &fixedPackage{name: "GLOBAL", unit: 1, extension: "glo"}
	p.retarget(modelName)
	return p
}

// retarget renames the package file to follow a new model name.
func (p *fixedPackage) retarget(modelName string) {
	p.filename = modelName + "." + p.extension
}

// Filetype returns the package's fixed tag.
func (p *fixedPackage) Filetype() string {
	return p.name
}

// Files returns the package's single manifest entry.
func (p *fixedPackage) Files() []FileRef {
	return []FileRef{{Name: p.name, Unit: p.unit, Filename: p.filename}}
}

// WriteFile is a no-op: listing and global files are simulator output.
func (p *fixedPackage) WriteFile(string) error {
	return nil
}
