package nam

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// FormatError reports a malformed name-file line. It is fatal for the
// whole parse: a manifest that cannot be read in full cannot safely
// drive a model load.
type FormatError struct {
	// Path is the name file being parsed.
	Path string

	// Line is the 1-based line number of the offending line.
	Line int

	// Msg describes what is wrong with the line.
	Msg string
}

// Error satisfies the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

// Parse reads a name file and returns its entries as a UnitTable.
//
// The grammar is whitespace-delimited: FILETYPE UNIT FILENAME [OPTION].
// Blank lines and lines starting with '#' are skipped. Tokens past the
// filename (such as REPLACE on binary data declarations) are accepted
// and ignored; the binary flag is derived from the DATA(BINARY) tag
// itself. A *FormatError is returned for short lines, non-integer or
// non-positive unit numbers, and duplicate unit numbers.
func Parse(path string) (*UnitTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open name file: %w", err)
	}
	defer func() { _ = f.Close() }()

	table := NewUnitTable()
	scanner := bufio.NewScanner(f)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())

		// Heading and comment lines start with '#'. Blank lines are
		// tolerated; real-world name files often end with one.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, &FormatError{
				Path: path,
				Line: lineno,
				Msg:  fmt.Sprintf("expected FILETYPE UNIT FILENAME, got %d field(s)", len(fields)),
			}
		}

		unit, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, &FormatError{
				Path: path,
				Line: lineno,
				Msg:  fmt.Sprintf("invalid unit number %q", fields[1]),
			}
		}
		if unit <= 0 {
			return nil, &FormatError{
				Path: path,
				Line: lineno,
				Msg:  fmt.Sprintf("unit number must be positive, got %d", unit),
			}
		}

		filetype := strings.ToUpper(fields[0])
		entry := Entry{
			Unit:     unit,
			Filename: fields[2],
			Filetype: filetype,
			Binary:   strings.Contains(filetype, "(BINARY)"),
		}
		if err := table.Add(entry); err != nil {
			return nil, &FormatError{
				Path: path,
				Line: lineno,
				Msg:  err.Error(),
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read name file %s: %w", path, err)
	}

	return table, nil
}
