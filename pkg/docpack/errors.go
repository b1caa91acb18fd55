// Package docpack provides custom error types for better error handling and reporting.
package docpack

import "fmt"

// PackageError represents an error during a package-level operation such as
// open or save. The underlying cause is preserved for errors.Is/As.
type PackageError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *PackageError) Error() string {
	if e.Path != "" && e.Cause != nil {
		return fmt.Sprintf("package error during %s of '%s': %v", e.Operation, e.Path, e.Cause)
	} else if e.Path != "" {
		return fmt.Sprintf("package error during %s of '%s'", e.Operation, e.Path)
	} else if e.Cause != nil {
		return fmt.Sprintf("package error during %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("package error during %s", e.Operation)
}

func (e *PackageError) Unwrap() error {
	return e.Cause
}

// NewPackageError creates a new package error
func NewPackageError(operation, path string, cause error) error {
	return &PackageError{
		Operation: operation,
		Path:      path,
		Cause:     cause,
	}
}

// IsPackageError checks if an error is a package error
func IsPackageError(err error) bool {
	_, ok := err.(*PackageError)
	return ok
}
