package qualname

import (
	"fmt"
)

// Error types for better error handling and context
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = fmt.Errorf("not found")

	// ErrInvalidInput indicates invalid input parameters
	ErrInvalidInput = fmt.Errorf("invalid input")

	// ErrUnsupportedLanguage indicates a fixture language the scanner cannot handle
	ErrUnsupportedLanguage = fmt.Errorf("unsupported language")
)

// ScanError represents an error that occurred while scanning a fixture
type ScanError struct {
	Op       string   // Operation that failed (e.g., "parse fixture", "read fixture")
	Path     string   // Fixture path where the error occurred
	Language Language // Fixture language, if known
	Wrapped  error    // The underlying error
}

func (e *ScanError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("scan error: %s: %v", e.Op, e.Wrapped)
	}
	if e.Language != "" {
		return fmt.Sprintf("scan error: %s: %s (%s): %v", e.Op, e.Path, e.Language, e.Wrapped)
	}
	return fmt.Sprintf("scan error: %s: %s: %v", e.Op, e.Path, e.Wrapped)
}

func (e *ScanError) Unwrap() error {
	return e.Wrapped
}

// ManifestError represents an error in the corpus manifest
type ManifestError struct {
	Path    string // Manifest file path
	Field   string // Offending field, if identifiable
	Message string // Error message
	Wrapped error  // The underlying error
}

func (e *ManifestError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("manifest error: %s: %s: %s", e.Path, e.Field, e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("manifest error: %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("manifest error: %s: %v", e.Path, e.Wrapped)
}

func (e *ManifestError) Unwrap() error {
	return e.Wrapped
}

// SymbolLookupError represents an error that occurred during symbol lookup
type SymbolLookupError struct {
	Symbol  string // Qualified name of the symbol being looked up
	Package string // Package or fixture where the lookup was performed
	Kind    string // Expected kind (e.g., "method", "function")
	Wrapped error  // The underlying error
}

func (e *SymbolLookupError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("symbol lookup error: %s %s not found in %s", e.Kind, e.Symbol, e.Package)
	}
	return fmt.Sprintf("symbol lookup error: %s not found in %s", e.Symbol, e.Package)
}

func (e *SymbolLookupError) Unwrap() error {
	return e.Wrapped
}

// PackageError represents an error that occurred while loading a fixture package
type PackageError struct {
	Package string   // Package import path
	Op      string   // Operation that failed
	Errors  []string // List of errors reported by the loader
	Wrapped error    // The underlying error
}

func (e *PackageError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("package error: %s: %s: %v (and %d more errors)",
			e.Package, e.Op, e.Errors[0], len(e.Errors)-1)
	}
	return fmt.Sprintf("package error: %s: %s: %v", e.Package, e.Op, e.Wrapped)
}

func (e *PackageError) Unwrap() error {
	return e.Wrapped
}
