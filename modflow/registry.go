package modflow

import (
	"sort"
	"strings"
)

// Registry maps filetype tags to package loaders. Every Model owns its
// own registry snapshot — there is no global mutable dispatch — so one
// model can register extra package kinds without affecting any other.
//
// An unrecognized tag is not an error: it signals "treat as external
// data" (when the tag is data-flavored) or "skip" to the orchestrator.
type Registry struct {
	loaders map[string]Loader

	// dataTags holds tags force-declared as external data by a registry
	// extension file, beyond the built-in "contains data" rule.
	dataTags map[string]bool
}

// normalizeTag upper-cases a filetype tag for case-insensitive matching.
func normalizeTag(tag string) string {
	return strings.ToUpper(tag)
}

// builtinTags is the closed set of package kinds the core knows about.
// Most use the generic loader; DIS, OC, and the parameter packages have
// dedicated loaders because the orchestration itself needs a sliver of
// their payload (grid shape, output unit claims, parameter names).
var builtinTags = map[string]Loader{
	"ZONE": loadZone,
	"MULT": loadMult,
	"PVAL": loadPval,
	"BAS6": LoadGeneric,
	"DIS":  loadDis,
	"BCF6": LoadGeneric,
	"LPF":  LoadGeneric,
	"HFB6": LoadGeneric,
	"CHD":  LoadGeneric,
	"WEL":  LoadGeneric,
	"DRN":  LoadGeneric,
	"RCH":  LoadGeneric,
	"EVT":  LoadGeneric,
	"GHB":  LoadGeneric,
	"GMG":  LoadGeneric,
	"RIV":  LoadGeneric,
	"STR":  LoadGeneric,
	"SWI2": LoadGeneric,
	"PCG":  LoadGeneric,
	"PCGN": LoadGeneric,
	"NWT":  LoadGeneric,
	"PKS":  LoadGeneric,
	"SFR":  LoadGeneric,
	"SIP":  LoadGeneric,
	"SOR":  LoadGeneric,
	"DE4":  LoadGeneric,
	"OC":   loadOc,
	"UZF":  LoadGeneric,
	"UPW":  LoadGeneric,
}

// DefaultRegistry returns a fresh registry populated with the built-in
// package kinds. Each call returns an independent copy.
func DefaultRegistry() *Registry {
	r := &Registry{
		loaders:  make(map[string]Loader, len(builtinTags)),
		dataTags: make(map[string]bool),
	}
	for tag, loader := range builtinTags {
		r.loaders[tag] = loader
	}
	return r
}

// Register binds a loader to a filetype tag, replacing any existing
// binding. The tag is matched case-insensitively.
func (r *Registry) Register(tag string, loader Loader) {
	r.loaders[strings.ToUpper(tag)] = loader
}

// Resolve returns the loader for a filetype tag, or nil when the tag is
// not recognized.
func (r *Registry) Resolve(tag string) Loader {
	return r.loaders[strings.ToUpper(tag)]
}

// IsData reports whether an unrecognized tag should be treated as an
// externally tracked data file: either the tag contains "data"
// (covering DATA and DATA(BINARY)) or a registry extension file declared
// it as data.
func (r *Registry) IsData(tag string) bool {
	upper := strings.ToUpper(tag)
	return strings.Contains(upper, "DATA") || r.dataTags[upper]
}

// Tags returns the registered filetype tags in sorted order. Intended
// for diagnostics output.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.loaders))
	for tag := range r.loaders {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
