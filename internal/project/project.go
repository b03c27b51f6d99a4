// Package project handles parsing and discovery of mfkit.jsonc project files.
//
// A project file is an optional convenience: it pins the load options a
// team uses for a model (simulator version, executable name, workspace,
// load_only selection) so CLI invocations stay short. The file format is
// JSONC (JSON with Comments), so this package uses github.com/tidwall/jsonc
// to strip comments before parsing with the standard encoding/json library.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// ErrNotFound is returned by Find when no project file exists in the
// searched directory.
var ErrNotFound = errors.New("project file not found")

// Project represents the parsed contents of an mfkit.jsonc file. Only the
// fields relevant to loading are included; other fields are silently
// ignored during parsing. Every field is optional — command-line flags
// override anything set here.
type Project struct {
	// Name is a display name for the model. Purely informational.
	Name string `json:"name,omitempty"`

	// NameFile is the manifest path, relative to the project file's
	// directory unless absolute.
	NameFile string `json:"nameFile,omitempty"`

	// Version is the simulator version tag (mf2k, mf2005, mfnwt, mfusg).
	Version string `json:"version,omitempty"`

	// ExeName is the simulator executable name.
	ExeName string `json:"exeName,omitempty"`

	// Workspace is the model workspace directory, relative to the project
	// file's directory unless absolute.
	Workspace string `json:"workspace,omitempty"`

	// LoadOnly restricts loading to the listed filetype tags. An absent or
	// empty list means load everything.
	LoadOnly []string `json:"loadOnly,omitempty"`

	// Registry is the path to a YAML registry-extension file declaring
	// site-specific filetype tags.
	Registry string `json:"registry,omitempty"`

	// Verbose enables debug logging during loads.
	Verbose bool `json:"verbose,omitempty"`

	// Dir is the directory the project file was loaded from. It is set by
	// Load, not read from the file, and anchors the relative paths above.
	Dir string `json:"-"`
}

// Load reads a project file, strips JSONC comments, and parses it into a
// Project struct.
//
// The project file format officially allows comments and trailing commas,
// so the raw bytes go through jsonc.ToJSON before encoding/json sees them.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	// Strip JSONC comments (// and /* */) and trailing commas before
	// parsing. encoding/json silently ignores fields not defined in the
	// struct, which is the desired behavior since we only care about a
	// subset of possible project settings.
	cleanJSON := jsonc.ToJSON(data)

	var p Project
	if err := json.Unmarshal(cleanJSON, &p); err != nil {
		return nil, fmt.Errorf("failed to parse project file %s: %w", path, err)
	}

	p.Dir = filepath.Dir(path)
	return &p, nil
}

// Find searches for a project file in the standard locations within a
// directory and loads the first one found.
//
// The search order is:
//  1. <dir>/mfkit.jsonc (preferred)
//  2. <dir>/.mfkit.jsonc (hidden alternative)
//
// Returns ErrNotFound (wrapped) if neither location contains a file.
func Find(dir string) (*Project, error) {
	candidates := []string{
		filepath.Join(dir, "mfkit.jsonc"),
		filepath.Join(dir, ".mfkit.jsonc"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	return nil, fmt.Errorf("%w in %s (searched mfkit.jsonc and .mfkit.jsonc)", ErrNotFound, dir)
}

// ResolvePath anchors a project-relative path at the project file's
// directory. Absolute paths and paths from a Project with no recorded
// directory pass through unchanged.
func (p *Project) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) || p.Dir == "" {
		return path
	}
	return filepath.Join(p.Dir, path)
}
