package qualname

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// manifestVersion is the manifest schema version this package understands
const manifestVersion = 1

// ExpectedSymbol is one symbol a fixture is expected to declare
type ExpectedSymbol struct {
	Name  string     `yaml:"name"`
	Scope string     `yaml:"scope,omitempty"`
	Kind  SymbolKind `yaml:"kind"`
}

// Qualified renders the expected symbol's qualified name
func (s ExpectedSymbol) Qualified(lang Language) string {
	if s.Scope == "" {
		return s.Name
	}
	return s.Scope + lang.Separator() + s.Name
}

// FileFixture is a manifest entry describing one fixture file
type FileFixture struct {
	// Path is relative to the corpus root
	Path     string   `yaml:"path"`
	Language Language `yaml:"language"`

	// SHA256 pins the exact bytes of the fixture; consumers depend on the
	// textual shape of the qualified definitions, so drift is an error
	SHA256 string `yaml:"sha256,omitempty"`

	Symbols []ExpectedSymbol `yaml:"symbols"`
}

// PackageFixture is a manifest entry describing one Go fixture package
type PackageFixture struct {
	ImportPath string           `yaml:"import_path"`
	Symbols    []ExpectedSymbol `yaml:"symbols"`
}

// Manifest describes the whole fixture corpus
type Manifest struct {
	Version  int              `yaml:"version"`
	Files    []FileFixture    `yaml:"files,omitempty"`
	Packages []PackageFixture `yaml:"packages,omitempty"`

	// path the manifest was loaded from, for error reporting
	path string
}

// LoadManifest reads and validates a corpus manifest
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, &ManifestError{Path: path, Message: "empty manifest path"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ManifestError{Path: path, Message: "read manifest", Wrapped: err}
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &ManifestError{Path: path, Message: "parse manifest", Wrapped: err}
	}
	m.path = path

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Validate checks the manifest for structural problems
func (m *Manifest) Validate() error {
	if m.Version != manifestVersion {
		return &ManifestError{
			Path:    m.path,
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (want %d)", m.Version, manifestVersion),
		}
	}

	if len(m.Files) == 0 && len(m.Packages) == 0 {
		return &ManifestError{Path: m.path, Message: "manifest lists no fixtures"}
	}

	seenPaths := make(map[string]bool)
	for i, f := range m.Files {
		field := fmt.Sprintf("files[%d]", i)
		if f.Path == "" {
			return &ManifestError{Path: m.path, Field: field, Message: "empty fixture path"}
		}
		if seenPaths[f.Path] {
			return &ManifestError{Path: m.path, Field: field, Message: fmt.Sprintf("duplicate fixture path %q", f.Path)}
		}
		seenPaths[f.Path] = true

		if !f.Language.Known() {
			return &ManifestError{Path: m.path, Field: field, Message: fmt.Sprintf("unknown language %q", f.Language)}
		}
		if f.SHA256 != "" && len(f.SHA256) != 64 {
			return &ManifestError{Path: m.path, Field: field, Message: "sha256 must be 64 hex characters"}
		}
		if err := validateSymbols(m.path, field, f.Symbols); err != nil {
			return err
		}
	}

	seenPkgs := make(map[string]bool)
	for i, p := range m.Packages {
		field := fmt.Sprintf("packages[%d]", i)
		if p.ImportPath == "" {
			return &ManifestError{Path: m.path, Field: field, Message: "empty import path"}
		}
		if seenPkgs[p.ImportPath] {
			return &ManifestError{Path: m.path, Field: field, Message: fmt.Sprintf("duplicate import path %q", p.ImportPath)}
		}
		seenPkgs[p.ImportPath] = true

		if err := validateSymbols(m.path, field, p.Symbols); err != nil {
			return err
		}
	}

	return nil
}

func validateSymbols(path, field string, symbols []ExpectedSymbol) error {
	if len(symbols) == 0 {
		return &ManifestError{Path: path, Field: field, Message: "fixture lists no expected symbols"}
	}
	for j, s := range symbols {
		if s.Name == "" {
			return &ManifestError{
				Path:    path,
				Field:   fmt.Sprintf("%s.symbols[%d]", field, j),
				Message: "empty symbol name",
			}
		}
		if !s.Kind.Known() {
			return &ManifestError{
				Path:    path,
				Field:   fmt.Sprintf("%s.symbols[%d]", field, j),
				Message: fmt.Sprintf("unknown kind %q", s.Kind),
			}
		}
	}
	return nil
}
