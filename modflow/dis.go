package modflow

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/mizusim/mfkit/nam"
)

// DisPackage is the discretization package. It is privileged: it must be
// loaded before every other package, and once loaded it is the sole
// source of truth for grid shape. The payload beyond the header line is
// retained raw, like any other package.
type DisPackage struct {
	GenericPackage

	nlay int
	nrow int
	ncol int
	nper int
}

// loadDis is the Loader for the DIS filetype. It reads the file and
// parses the grid shape from the first data line, whose leading fields
// are NLAY NROW NCOL NPER.
func loadDis(e nam.Entry, m *Model, table *nam.UnitTable) (Package, error) {
	pck, err := LoadGeneric(e, m, table)
	if err != nil {
		return nil, err
	}
	generic := pck.(*GenericPackage)

	dis := &DisPackage{GenericPackage: *generic}
	if err := dis.parseShape(generic.Raw()); err != nil {
		return nil, err
	}
	return dis, nil
}

// parseShape extracts NLAY NROW NCOL NPER from the first non-comment line.
func (p *DisPackage) parseShape(raw []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 4 {
			return fmt.Errorf("discretization header needs NLAY NROW NCOL NPER, got %d field(s)", len(fields))
		}
		dims := make([]int, 4)
		for i := 0; i < 4; i++ {
			v, err := strconv.Atoi(fields[i])
			if err != nil {
				return fmt.Errorf("invalid discretization dimension %q: %w", fields[i], err)
			}
			if v <= 0 {
				return fmt.Errorf("discretization dimensions must be positive, got %d", v)
			}
			dims[i] = v
		}
		p.nlay, p.nrow, p.ncol, p.nper = dims[0], dims[1], dims[2], dims[3]
		return nil
	}
	return fmt.Errorf("discretization file has no data lines")
}

// Nlay returns the number of model layers.
func (p *DisPackage) Nlay() int { return p.nlay }

// Nrow returns the number of model rows.
func (p *DisPackage) Nrow() int { return p.nrow }

// Ncol returns the number of model columns.
func (p *DisPackage) Ncol() int { return p.ncol }

// Nper returns the number of stress periods.
func (p *DisPackage) Nper() int { return p.nper }

// ocPackage is the output-control package. Its payload is retained raw,
// but the loader scans it for "SAVE UNIT n" records: those units are
// simulator output handles claimed by the package itself, so they are
// registered on the model's pop list and reconciled out of the external
// file table after the main load pass.
type ocPackage struct {
	GenericPackage
}

// loadOc is the Loader for the OC filetype.
func loadOc(e nam.Entry, m *Model, table *nam.UnitTable) (Package, error) {
	pck, err := LoadGeneric(e, m, table)
	if err != nil {
		return nil, err
	}
	generic := pck.(*GenericPackage)

	oc := &ocPackage{GenericPackage: *generic}
	for _, unit := range scanSaveUnits(generic.Raw()) {
		m.AddPopKey(unit)
	}
	return oc, nil
}

// scanSaveUnits finds every unit number declared by a "... SAVE UNIT n"
// record in words-format output control input.
func scanSaveUnits(raw []byte) []int {
	var units []int
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		for i := 0; i+2 < len(fields); i++ {
			if strings.EqualFold(fields[i], "SAVE") && strings.EqualFold(fields[i+1], "UNIT") {
				if unit, err := strconv.Atoi(fields[i+2]); err == nil && unit > 0 {
					units = append(units, unit)
				}
			}
		}
	}
	return units
}
