package modflow

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// registryfile.go implements YAML registry-extension files. Site-specific
// simulator builds often define filetype tags the built-in registry has
// never heard of; rather than patching the core, a model can merge a
// small declaration file that tells the orchestrator how to treat them:
//
//	filetypes:
//	  - filetype: FHB
//	    handling: package   # load with the generic package loader
//	  - filetype: SPILL
//	    handling: data      # track as an external data file
//
// Merged declarations affect only the registry they are merged into;
// other models keep their own snapshots.

// TagDecl is one filetype declaration in a registry extension file.
type TagDecl struct {
	// Filetype is the tag as it appears in name files.
	Filetype string `yaml:"filetype"`

	// Handling is either "package" or "data".
	Handling string `yaml:"handling"`
}

// registryFile is the top-level structure of a registry extension file.
type registryFile struct {
	Filetypes []TagDecl `yaml:"filetypes"`
}

// MergeFile reads a YAML registry extension file and merges its
// declarations into the registry. "package" tags get the generic loader;
// "data" tags are treated as externally tracked data files.
func (r *Registry) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read registry file: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse registry file %s: %w", path, err)
	}

	for i, decl := range file.Filetypes {
		if decl.Filetype == "" {
			return fmt.Errorf("registry file %s: entry %d has no filetype", path, i)
		}
		switch decl.Handling {
		case "package":
			r.Register(decl.Filetype, LoadGeneric)
		case "data":
			r.dataTags[normalizeTag(decl.Filetype)] = true
		default:
			return fmt.Errorf("registry file %s: filetype %s has invalid handling %q (valid: package, data)",
				path, decl.Filetype, decl.Handling)
		}
	}
	return nil
}
