package nam

import (
	"fmt"
	"strings"
)

// Entry is a single name-file record: one unit number bound to one file.
type Entry struct {
	// Unit is the numeric file handle. Always positive.
	Unit int

	// Filename is the file path exactly as written in the manifest,
	// normally relative to the model workspace.
	Filename string

	// Filetype is the upper-cased filetype tag (e.g. "DIS", "WEL",
	// "DATA(BINARY)"). Tags are matched case-insensitively everywhere,
	// so the parser normalizes them once on the way in.
	Filetype string

	// Binary reports whether the entry was declared with a binary
	// filetype tag, i.e. DATA(BINARY).
	Binary bool
}

// IsData reports whether the entry declares an externally tracked data
// file rather than a package. Any filetype containing "data" counts,
// which covers both DATA and DATA(BINARY).
func (e Entry) IsData() bool {
	return strings.Contains(strings.ToLower(e.Filetype), "data")
}

// UnitTable is an index of name-file entries keyed by unit number.
//
// Unit numbers are unique within a table at any time. The table preserves
// manifest-encounter order: Entries and FindFiletype observe entries in the
// order their lines appeared in the manifest, which is the documented
// ordering policy for the load orchestrator ("first wins" for duplicate
// filetype tags, deterministic processing order for everything else).
//
// A UnitTable is a working set: the orchestrator removes entries as they
// are claimed by packages so that no entry is processed twice.
type UnitTable struct {
	entries []Entry
}

// NewUnitTable returns an empty unit table.
func NewUnitTable() *UnitTable {
	return &UnitTable{}
}

// Add appends an entry to the table. It fails if the unit number is not
// positive or is already present.
func (t *UnitTable) Add(e Entry) error {
	if e.Unit <= 0 {
		return fmt.Errorf("unit number must be positive, got %d", e.Unit)
	}
	if _, ok := t.ByUnit(e.Unit); ok {
		return fmt.Errorf("duplicate unit number %d", e.Unit)
	}
	e.Filetype = strings.ToUpper(e.Filetype)
	t.entries = append(t.entries, e)
	return nil
}

// Remove deletes the entry with the given unit number, preserving the
// order of the remaining entries. It reports whether an entry was removed.
func (t *UnitTable) Remove(unit int) bool {
	for i, e := range t.entries {
		if e.Unit == unit {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return true
		}
	}
	return false
}

// ByUnit returns the entry with the given unit number.
func (t *UnitTable) ByUnit(unit int) (Entry, bool) {
	for _, e := range t.entries {
		if e.Unit == unit {
			return e, true
		}
	}
	return Entry{}, false
}

// FindFiletype returns the first entry (in manifest-encounter order) whose
// filetype tag matches the given tag, case-insensitively. When a manifest
// carries more than one entry with the same tag, the first one wins; the
// load orchestrator relies on this for its discretization tie-break rule.
func (t *UnitTable) FindFiletype(tag string) (Entry, bool) {
	tag = strings.ToUpper(tag)
	for _, e := range t.entries {
		if e.Filetype == tag {
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns a snapshot of the table in manifest-encounter order.
// Mutating the table after taking a snapshot does not affect it.
func (t *UnitTable) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Filetypes returns the distinct filetype tags present in the table,
// in manifest-encounter order.
func (t *UnitTable) Filetypes() []string {
	seen := make(map[string]bool, len(t.entries))
	var tags []string
	for _, e := range t.entries {
		if !seen[e.Filetype] {
			seen[e.Filetype] = true
			tags = append(tags, e.Filetype)
		}
	}
	return tags
}

// Len returns the number of entries currently in the table.
func (t *UnitTable) Len() int {
	return len(t.entries)
}
