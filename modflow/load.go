package modflow

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mizusim/mfkit/nam"
)

// LoadOptions configures a model load.
type LoadOptions struct {
	// Version is the simulator version tag (default mf2005).
	Version string

	// ExeName is the simulator executable name (default "mf2005").
	ExeName string

	// Workspace is the directory containing the model files (default ".").
	// A relative name-file path is resolved against it.
	Workspace string

	// Verbose enables debug-level per-package progress logging.
	Verbose bool

	// LoadOnly restricts which recognized filetypes are actually loaded.
	// Tags are matched case-insensitively; the discretization package is
	// always loaded and need not be listed. Every listed tag must appear
	// in the name file, otherwise the load fails with
	// InvalidLoadOnlyError. Nil means "load everything".
	LoadOnly []string

	// Packages registers extra loaders on the model's registry before
	// orchestration starts, keyed by filetype tag. They extend or
	// override the built-in set for this model only.
	Packages map[string]Loader

	// RegistryFile is an optional YAML registry extension file merged
	// into the model's registry before orchestration starts.
	RegistryFile string

	// Logger overrides the model's logger.
	Logger *log.Logger
}

// LoadReport lists, in manifest-encounter order, the files whose
// packages loaded successfully and the files that were skipped or
// failed. Parameter packages (PVAL, ZONE, MULT) are pre-resolved ahead
// of the main pass, so they appear in Loaded right after the
// discretization entry even when the manifest declares them later. The
// report exists for observability; the authoritative outcome is the
// model's final state.
type LoadReport struct {
	// Loaded holds the filenames of successfully loaded packages.
	Loaded []string

	// NotLoaded holds the filenames of packages that were excluded by
	// LoadOnly, unrecognized (and not data-tagged), or whose loaders
	// failed.
	NotLoaded []string
}

// Load reads a name file and constructs the model it describes.
//
// The orchestration order is fixed: parse the manifest (parse failures
// are fatal), load the discretization package first (its absence or
// failure is fatal; when several DIS entries exist the first one in
// manifest order wins), validate LoadOnly, pre-resolve the parameter
// packages (PVAL, ZONE, MULT), then load every remaining entry in
// manifest-encounter order. A single package's load failure is caught
// and recorded in the report, never propagated; unrecognized data-tagged
// entries become external file entries on the model. Finally, units the
// loaded packages claimed for themselves (the pop list) are reconciled
// out of the external and working tables.
//
// The returned model is usable even when the report lists failures; Load
// never returns a model without a discretization package.
func Load(namefile string, opts LoadOptions) (*Model, *LoadReport, error) {
	workspace := opts.Workspace
	if workspace == "" {
		workspace = "."
	}
	path := namefile
	if !filepath.IsAbs(path) {
		path = filepath.Join(workspace, namefile)
	}

	m, err := New(modelNameFromPath(path), Options{
		Version:   opts.Version,
		ExeName:   opts.ExeName,
		Workspace: workspace,
		Verbose:   opts.Verbose,
		Logger:    opts.Logger,
	})
	if err != nil {
		return nil, nil, err
	}
	if opts.RegistryFile != "" {
		if err := m.Registry().MergeFile(opts.RegistryFile); err != nil {
			return nil, nil, err
		}
	}
	for tag, loader := range opts.Packages {
		m.Registry().Register(tag, loader)
	}

	m.log.Debug("loading model", "name", m.Name(), "namefile", path)

	// Step 1: parse the manifest into the working table. Unparseable
	// manifests are fatal.
	table, err := nam.Parse(path)
	if err != nil {
		return nil, nil, err
	}

	report := &LoadReport{}

	// Step 2: mandatory first load of the discretization package. The
	// first DIS entry in manifest order wins when there are several.
	disEntry, ok := table.FindFiletype("DIS")
	if !ok {
		return nil, nil, &MissingDisError{Namefile: path}
	}
	pck, err := m.registry.Resolve("DIS")(disEntry, m, table)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read discretization package %s: %w",
			filepath.Base(disEntry.Filename), err)
	}
	m.AddPackage(pck)
	table.Remove(disEntry.Unit)
	report.Loaded = append(report.Loaded, disEntry.Filename)
	m.log.Debug("package load", "filetype", "DIS", "status", "success")

	// Step 3: validate LoadOnly against the remaining working table, or
	// default it to every tag present.
	loadOnly, err := effectiveLoadOnly(opts.LoadOnly, table)
	if err != nil {
		return nil, nil, err
	}

	// Step 4: pre-resolve parameter packages so later packages can
	// reference named parameters, zones, and multipliers.
	resolveParams(m, table, report)

	// Step 5: best-effort load of everything left, in manifest order.
	for _, e := range table.Entries() {
		loader := m.registry.Resolve(e.Filetype)
		switch {
		case loader != nil && loadOnly[e.Filetype]:
			pck, err := loader(e, m, table)
			if err != nil {
				lerr := &PackageLoadError{Filetype: e.Filetype, Filename: e.Filename, Err: err}
				m.log.Debug("package load", "filetype", e.Filetype, "status", "failed", "err", lerr)
				report.NotLoaded = append(report.NotLoaded, e.Filename)
				continue
			}
			m.AddPackage(pck)
			report.Loaded = append(report.Loaded, e.Filename)
			m.log.Debug("package load", "filetype", e.Filetype, "status", "success")

		case loader != nil:
			// Recognized but excluded by LoadOnly.
			m.log.Debug("package load", "filetype", e.Filetype, "status", "skipped")
			report.NotLoaded = append(report.NotLoaded, e.Filename)

		case m.registry.IsData(e.Filetype):
			// Unrecognized but declared as data: track it externally
			// unless some package already claimed the unit.
			m.log.Debug("data file", "filetype", e.Filetype, "unit", e.Unit, "file", filepath.Base(e.Filename))
			if !m.hasPopKey(e.Unit) {
				m.AddExternal(e.Filename, e.Unit, e.Binary)
			}

		default:
			m.log.Debug("package load", "filetype", e.Filetype, "status", "skipped")
			report.NotLoaded = append(report.NotLoaded, e.Filename)
		}
	}

	// Step 6: reconcile pop-listed units. Packages register output units
	// they claim for themselves (e.g. OC's SAVE UNIT records); any
	// external entry or name-file entry for such a unit is dropped. A
	// miss is a warning, not an error.
	for _, unit := range m.PopKeys() {
		removedExt := m.RemoveExternal(unit)
		removedTab := table.Remove(unit)
		if !removedExt && !removedTab {
			m.log.Warn("pop-listed unit not present in external or unit tables", "unit", unit)
		}
	}

	m.log.Debug("load complete",
		"loaded", len(report.Loaded), "not_loaded", len(report.NotLoaded))

	return m, report, nil
}

// modelNameFromPath derives the model name from the name-file path: the
// base name without its extension.
func modelNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// effectiveLoadOnly normalizes and validates the caller's allow-list
// against the working table (post-DIS), or defaults it to every tag
// present. DIS is implicitly always loaded and is dropped from the list.
func effectiveLoadOnly(requested []string, table *nam.UnitTable) (map[string]bool, error) {
	set := make(map[string]bool)
	if requested == nil {
		for _, tag := range table.Filetypes() {
			set[tag] = true
		}
		return set, nil
	}

	var missing []string
	for _, tag := range requested {
		tag = strings.ToUpper(tag)
		if tag == "DIS" {
			continue
		}
		if _, ok := table.FindFiletype(tag); !ok {
			missing = append(missing, tag)
			continue
		}
		set[tag] = true
	}
	if len(missing) > 0 {
		return nil, &InvalidLoadOnlyError{Missing: missing}
	}
	return set, nil
}
