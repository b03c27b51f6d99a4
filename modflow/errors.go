package modflow

import (
	"fmt"
	"strings"
)

// MissingDisError indicates that a name file carries no discretization
// (DIS) entry. Without grid shape no other package can be interpreted,
// so this error is fatal for the whole load.
type MissingDisError struct {
	// Namefile is the manifest that was being loaded.
	Namefile string
}

// Error satisfies the error interface.
func (e *MissingDisError) Error() string {
	return fmt.Sprintf("name file %s contains no discretization (DIS) entry", e.Namefile)
}

// InvalidLoadOnlyError indicates that the caller requested filetype tags
// via load_only that are not present in the name file. Fatal: a silent
// partial honor of the allow-list would be indistinguishable from a typo.
type InvalidLoadOnlyError struct {
	// Missing lists the requested tags absent from the working table,
	// upper-cased, in request order.
	Missing []string
}

// Error satisfies the error interface.
func (e *InvalidLoadOnlyError) Error() string {
	return fmt.Sprintf("load_only filetypes not found in the name file: %s",
		strings.Join(e.Missing, ", "))
}

// PackageLoadError records the failure of a single package's loader.
// It is never returned from Load: the orchestrator catches it, appends
// the filename to the not-loaded list, and continues with the next entry.
type PackageLoadError struct {
	// Filetype is the upper-cased tag of the failed package.
	Filetype string

	// Filename is the package file that could not be loaded.
	Filename string

	// Err is the loader's underlying error.
	Err error
}

// Error satisfies the error interface.
func (e *PackageLoadError) Error() string {
	return fmt.Sprintf("%s package load failed for %s: %v", e.Filetype, e.Filename, e.Err)
}

// Unwrap returns the underlying loader error for errors.Is/errors.As.
func (e *PackageLoadError) Unwrap() error {
	return e.Err
}
