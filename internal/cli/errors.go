package cli

import (
	"errors"
	"fmt"

	"github.com/mizusim/mfkit/modflow"
	"github.com/mizusim/mfkit/nam"
)

// ExitCode defines standard CLI exit codes. These codes allow scripts and
// CI systems to programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitFormatError indicates the name file could not be parsed.
	ExitFormatError ExitCode = 2

	// ExitMissingDis indicates the name file declares no discretization
	// package.
	ExitMissingDis ExitCode = 3

	// ExitInvalidLoadOnly indicates the load_only selection names filetype
	// tags the name file does not contain.
	ExitInvalidLoadOnly ExitCode = 4

	// ExitWriteError indicates model output files could not be written.
	ExitWriteError ExitCode = 5
)

// CLIError is a custom error type that carries an exit code. This allows
// the CLI layer to translate domain errors into appropriate process exit
// codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// classify translates library errors into CLIErrors with the matching
// exit code. Errors that already carry a code pass through; anything
// unrecognized maps to ExitGeneralError.
func classify(err error) *CLIError {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	var formatErr *nam.FormatError
	if errors.As(err, &formatErr) {
		return WrapCLIError(ExitFormatError, "invalid name file", err)
	}

	var disErr *modflow.MissingDisError
	if errors.As(err, &disErr) {
		return WrapCLIError(ExitMissingDis, "cannot load model", err)
	}

	var loadOnlyErr *modflow.InvalidLoadOnlyError
	if errors.As(err, &loadOnlyErr) {
		return WrapCLIError(ExitInvalidLoadOnly, "invalid package selection", err)
	}

	return WrapCLIError(ExitGeneralError, err.Error(), nil)
}
