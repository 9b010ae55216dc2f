package qualname

import "context"

// FixtureSource reads fixture files from a corpus directory
type FixtureSource interface {
	// GetFileTree returns the fixture file tree rooted at root
	GetFileTree(ctx context.Context, root string, opts TreeOptions) (*FileTreeNode, error)

	// ReadFixture reads a fixture file's exact bytes
	ReadFixture(ctx context.Context, path string) ([]byte, error)
}

// SymbolScanner extracts declared symbols from fixture source text
type SymbolScanner interface {
	// Scan extracts symbols from in-memory fixture content
	Scan(ctx context.Context, content []byte, lang Language) (*ScanResult, error)

	// ScanFile extracts symbols from a fixture file
	ScanFile(ctx context.Context, path string) (*ScanResult, error)

	// Close releases parser resources
	Close()
}

// FixtureAnalyzer inspects compiled Go fixture packages
type FixtureAnalyzer interface {
	// AnalyzePackage lists the symbols a fixture package exports
	AnalyzePackage(ctx context.Context, importPath string) (*ScanResult, error)

	// FindSymbol looks up one symbol (scope may be empty for free functions and types)
	FindSymbol(ctx context.Context, importPath, scope, name string) (*SymbolInfo, error)
}

// Verifier checks fixtures against the corpus manifest
type Verifier interface {
	// VerifyFile verifies a single file fixture entry
	VerifyFile(ctx context.Context, fixture FileFixture) (*VerifyResult, error)

	// VerifyPackage verifies a single package fixture entry
	VerifyPackage(ctx context.Context, fixture PackageFixture) (*VerifyResult, error)

	// VerifyCorpus verifies every fixture the manifest lists
	VerifyCorpus(ctx context.Context) (*VerifyResult, error)
}
