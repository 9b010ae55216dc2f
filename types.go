package qualname

import (
	"strings"
	"time"
)

// Language identifies the source language of a fixture file
type Language string

const (
	// LangCpp marks C++ fixture files
	LangCpp Language = "cpp"
	// LangGo marks Go fixture files
	LangGo Language = "go"
)

// Separator returns the scope separator used in qualified names for the language
func (l Language) Separator() string {
	if l == LangCpp {
		return "::"
	}
	return "."
}

// Known reports whether the language is supported by the scanner
func (l Language) Known() bool {
	return l == LangCpp || l == LangGo
}

// SymbolKind classifies a declared symbol
type SymbolKind string

const (
	// KindType is a struct, class or named type declaration
	KindType SymbolKind = "type"
	// KindFunction is a free function (possibly namespace- or package-scoped)
	KindFunction SymbolKind = "function"
	// KindMethod is a function attached to a type (receiver or class scope)
	KindMethod SymbolKind = "method"
)

// Known reports whether the kind is one the scanner can produce
func (k SymbolKind) Known() bool {
	switch k {
	case KindType, KindFunction, KindMethod:
		return true
	}
	return false
}

// SymbolInfo describes one symbol declared in a fixture
type SymbolInfo struct {
	Name     string     `json:"name"`
	Scope    string     `json:"scope,omitempty"` // enclosing class, namespace or receiver type
	Kind     SymbolKind `json:"kind"`
	Line     int        `json:"line,omitempty"`
	Exported bool       `json:"is_exported"`
}

// Qualified renders the symbol's qualified name using the language separator
func (s SymbolInfo) Qualified(lang Language) string {
	if s.Scope == "" {
		return s.Name
	}
	return s.Scope + lang.Separator() + s.Name
}

// TreeOptions represents options for fixture tree operations
type TreeOptions struct {
	Languages       []Language `json:"languages,omitempty"`
	ExcludePatterns []string   `json:"exclude_patterns,omitempty"`
	IncludePatterns []string   `json:"include_patterns,omitempty"`
}

// FileTreeNode represents a node in the fixture file tree
type FileTreeNode struct {
	Name     string          `json:"name"`
	Path     string          `json:"path"`
	Type     string          `json:"type"` // "file" or "directory"
	Size     int64           `json:"size,omitempty"`
	ModTime  time.Time       `json:"mod_time,omitempty"`
	Children []*FileTreeNode `json:"children,omitempty"`
}

// ScanResult represents the symbols extracted from one fixture
type ScanResult struct {
	Path      string       `json:"path,omitempty"`
	Language  Language     `json:"language"`
	Package   string       `json:"package,omitempty"` // Go package name, empty for C++
	ScannedAt time.Time    `json:"scanned_at"`
	Symbols   []SymbolInfo `json:"symbols,omitempty"`
}

// Lookup returns the first symbol matching scope and name, or nil
func (r *ScanResult) Lookup(scope, name string) *SymbolInfo {
	for i := range r.Symbols {
		if r.Symbols[i].Scope == scope && r.Symbols[i].Name == name {
			return &r.Symbols[i]
		}
	}
	return nil
}

// QualifiedNames lists the qualified names of all scanned symbols
func (r *ScanResult) QualifiedNames() []string {
	names := make([]string, 0, len(r.Symbols))
	for _, s := range r.Symbols {
		names = append(names, s.Qualified(r.Language))
	}
	return names
}

// VerifyWarning represents a non-fatal finding during corpus verification
type VerifyWarning struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Fixture string `json:"fixture,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// VerifyResult represents the outcome of verifying one fixture or the whole corpus
type VerifyResult struct {
	Name       string          `json:"name"`
	Path       string          `json:"path"`
	StartTime  string          `json:"start_time"`
	VerifiedAt time.Time       `json:"verified_at"`
	Errors     []string        `json:"errors,omitempty"`
	Warnings   []VerifyWarning `json:"warnings,omitempty"`
}

// Valid reports whether verification found no errors
func (r *VerifyResult) Valid() bool {
	return len(r.Errors) == 0
}

// merge folds a per-fixture result into an aggregate result
func (r *VerifyResult) merge(other *VerifyResult) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// joinScope joins scope components with the language separator
func joinScope(parts []string, lang Language) string {
	return strings.Join(parts, lang.Separator())
}
