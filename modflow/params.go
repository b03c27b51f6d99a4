package modflow

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/mizusim/mfkit/nam"
)

// params.go implements parameter pre-resolution. PVAL, ZONE, and MULT are
// auxiliary packages that later packages reference by name rather than by
// literal value, so the orchestrator resolves them into the model's
// ParamContext before any other package loads. Payload arrays stay out of
// scope: only the declared names (and PVAL values) are extracted, and the
// raw content is retained for round-tripping.

// ParamContext is the model's parameter-substitution context: named
// parameter values, zone array names, and multiplier array names. All
// lookups are case-insensitive.
type ParamContext struct {
	pvals map[string]float64
	zones map[string]bool
	mults map[string]bool
}

func newParamContext() *ParamContext {
	return &ParamContext{
		pvals: make(map[string]float64),
		zones: make(map[string]bool),
		mults: make(map[string]bool),
	}
}

// Pval returns the value of a named parameter.
func (c *ParamContext) Pval(name string) (float64, bool) {
	v, ok := c.pvals[strings.ToUpper(name)]
	return v, ok
}

// HasZone reports whether a zone array with the given name was declared.
func (c *ParamContext) HasZone(name string) bool {
	return c.zones[strings.ToUpper(name)]
}

// HasMult reports whether a multiplier array with the given name was declared.
func (c *ParamContext) HasMult(name string) bool {
	return c.mults[strings.ToUpper(name)]
}

// pvalPackage holds named parameter values (PVAL filetype).
type pvalPackage struct {
	GenericPackage
	values map[string]float64
}

// zonePackage holds zone array declarations (ZONE filetype).
type zonePackage struct {
	GenericPackage
	names []string
}

// multPackage holds multiplier array declarations (MULT filetype).
type multPackage struct {
	GenericPackage
	names []string
}

// loadPval is the Loader for the PVAL filetype. Format: a count line NP
// followed by NP "PARNAM VALUE" lines.
func loadPval(e nam.Entry, m *Model, table *nam.UnitTable) (Package, error) {
	pck, err := LoadGeneric(e, m, table)
	if err != nil {
		return nil, err
	}
	generic := pck.(*GenericPackage)

	lines := dataLines(generic.Raw())
	if len(lines) == 0 {
		return nil, fmt.Errorf("parameter value file has no data lines")
	}
	np, err := leadingInt(lines[0])
	if err != nil {
		return nil, fmt.Errorf("invalid parameter count: %w", err)
	}
	if np > len(lines)-1 {
		return nil, fmt.Errorf("parameter value file declares %d parameters but has %d data lines", np, len(lines)-1)
	}

	values := make(map[string]float64, np)
	for _, line := range lines[1 : 1+np] {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("expected PARNAM VALUE, got %q", line)
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid parameter value %q: %w", fields[1], err)
		}
		values[strings.ToUpper(fields[0])] = v
	}

	p := &pvalPackage{GenericPackage: *generic, values: values}
	for name, v := range values {
		m.Params().pvals[name] = v
	}
	return p, nil
}

// loadZone is the Loader for the ZONE filetype. Format: a count line NZN,
// then per zone a name line followed by one 2-D integer array (skipped;
// the row count comes from the discretization package, which is loaded
// before parameter resolution runs).
func loadZone(e nam.Entry, m *Model, table *nam.UnitTable) (Package, error) {
	pck, err := LoadGeneric(e, m, table)
	if err != nil {
		return nil, err
	}
	generic := pck.(*GenericPackage)

	names, err := parseArrayNames(generic.Raw(), m.Nrow())
	if err != nil {
		return nil, fmt.Errorf("invalid zone file: %w", err)
	}

	p := &zonePackage{GenericPackage: *generic, names: names}
	for _, name := range names {
		m.Params().zones[name] = true
	}
	return p, nil
}

// loadMult is the Loader for the MULT filetype. Same layout as ZONE,
// except a multiplier may be defined by a FUNCTION record instead of an
// array.
func loadMult(e nam.Entry, m *Model, table *nam.UnitTable) (Package, error) {
	pck, err := LoadGeneric(e, m, table)
	if err != nil {
		return nil, err
	}
	generic := pck.(*GenericPackage)

	names, err := parseArrayNames(generic.Raw(), m.Nrow())
	if err != nil {
		return nil, fmt.Errorf("invalid multiplier file: %w", err)
	}

	p := &multPackage{GenericPackage: *generic, names: names}
	for _, name := range names {
		m.Params().mults[name] = true
	}
	return p, nil
}

// resolveParams claims the PVAL, ZONE, and MULT entries (if present) from
// the working table before the main load pass. Successful loads remove
// the entry and count as loaded; failures are logged and the entry stays
// in the table, where the main pass will record it as not loaded.
func resolveParams(m *Model, table *nam.UnitTable, report *LoadReport) {
	kinds := []struct {
		tag  string
		load Loader
	}{
		{"PVAL", loadPval},
		{"ZONE", loadZone},
		{"MULT", loadMult},
	}
	for _, kind := range kinds {
		entry, ok := table.FindFiletype(kind.tag)
		if !ok {
			continue
		}
		pck, err := kind.load(entry, m, table)
		if err != nil {
			m.log.Debug("parameter package load failed, deferring to main pass",
				"filetype", kind.tag, "file", entry.Filename, "err", err)
			continue
		}
		m.AddPackage(pck)
		table.Remove(entry.Unit)
		report.Loaded = append(report.Loaded, entry.Filename)
		m.log.Debug("package load", "filetype", kind.tag, "status", "success")
	}
}

// dataLines returns the trimmed non-blank, non-comment lines of a file.
func dataLines(raw []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// leadingInt parses the first whitespace-delimited field of a line as an
// integer.
func leadingInt(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty line")
	}
	return strconv.Atoi(fields[0])
}

// parseArrayNames walks a ZONE/MULT-style file: a count line, then per
// item a name line followed by one array definition. Array payloads are
// skipped, not parsed: a CONSTANT, EXTERNAL, OPEN/CLOSE, or FUNCTION
// record occupies its control line only, while an INTERNAL record is
// followed by nrow data lines.
func parseArrayNames(raw []byte, nrow int) ([]string, error) {
	lines := dataLines(raw)
	if len(lines) == 0 {
		return nil, fmt.Errorf("no data lines")
	}
	count, err := leadingInt(lines[0])
	if err != nil {
		return nil, fmt.Errorf("invalid array count: %w", err)
	}

	var names []string
	i := 1
	for n := 0; n < count; n++ {
		if i >= len(lines) {
			return nil, fmt.Errorf("declared %d arrays but found %d", count, n)
		}
		name := strings.ToUpper(strings.Fields(lines[i])[0])
		names = append(names, name)
		i++

		if i >= len(lines) {
			return nil, fmt.Errorf("array %s has no definition record", name)
		}
		control := strings.ToUpper(strings.Fields(lines[i])[0])
		i++
		if control == "INTERNAL" {
			// nrow data lines follow the control record.
			if i+nrow > len(lines) {
				return nil, fmt.Errorf("array %s: INTERNAL record truncated", name)
			}
			i += nrow
		}
	}
	return names, nil
}
