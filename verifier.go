package qualname

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// CorpusVerifier checks the fixture corpus against its manifest
type CorpusVerifier struct {
	manifest *Manifest
	reader   *CorpusReader
	scanner  *TreeScanner
	analyzer *PackageAnalyzer
	opts     *Options
}

// NewVerifier creates a corpus verifier for the given manifest
func NewVerifier(manifest *Manifest, opts ...Option) *CorpusVerifier {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	return &CorpusVerifier{
		manifest: manifest,
		reader:   NewReader(opts...),
		scanner:  NewScanner(opts...),
		analyzer: NewAnalyzer(opts...),
		opts:     options,
	}
}

// Close releases the verifier's scanner resources
func (v *CorpusVerifier) Close() {
	v.scanner.Close()
}

// VerifyFile verifies one file fixture: its bytes still match the pinned
// checksum and it declares exactly the symbols the manifest expects
func (v *CorpusVerifier) VerifyFile(ctx context.Context, fixture FileFixture) (*VerifyResult, error) {
	result := newVerifyResult(filepath.Base(fixture.Path), fixture.Path)

	content, err := v.reader.ReadFixture(ctx, fixture.Path)
	if err != nil {
		return nil, err
	}

	if fixture.SHA256 == "" {
		result.Warnings = append(result.Warnings, VerifyWarning{
			Type:    "missing_checksum",
			Message: "fixture has no pinned checksum; byte-level drift will go unnoticed",
			Fixture: fixture.Path,
		})
	} else {
		sum := sha256.Sum256(content)
		got := hex.EncodeToString(sum[:])
		if !strings.EqualFold(got, fixture.SHA256) {
			result.Errors = append(result.Errors,
				fmt.Sprintf("checksum mismatch for %s: manifest pins %s, file has %s",
					fixture.Path, fixture.SHA256, got))
		}
	}

	scan, err := v.scanner.Scan(ctx, content, fixture.Language)
	if err != nil {
		return nil, err
	}
	scan.Path = fixture.Path

	v.matchSymbols(result, fixture.Path, fixture.Language, fixture.Symbols, scan)

	return result, nil
}

// VerifyPackage verifies one Go package fixture against its expected symbols
func (v *CorpusVerifier) VerifyPackage(ctx context.Context, fixture PackageFixture) (*VerifyResult, error) {
	result := newVerifyResult(filepath.Base(fixture.ImportPath), fixture.ImportPath)

	scan, err := v.analyzer.AnalyzePackage(ctx, fixture.ImportPath)
	if err != nil {
		return nil, err
	}

	v.matchSymbols(result, fixture.ImportPath, LangGo, fixture.Symbols, scan)

	return result, nil
}

// VerifyCorpus verifies every fixture the manifest lists
func (v *CorpusVerifier) VerifyCorpus(ctx context.Context) (*VerifyResult, error) {
	result := newVerifyResult("corpus", v.opts.RootDir)

	for _, f := range v.manifest.Files {
		if !v.opts.wantsLanguage(f.Language) {
			continue
		}
		fileResult, err := v.VerifyFile(ctx, f)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("error verifying %s: %v", f.Path, err))
			continue
		}
		result.merge(fileResult)
	}

	for _, p := range v.manifest.Packages {
		if !v.opts.wantsLanguage(LangGo) {
			continue
		}
		pkgResult, err := v.VerifyPackage(ctx, p)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("error verifying %s: %v", p.ImportPath, err))
			continue
		}
		result.merge(pkgResult)
	}

	return result, nil
}

// matchSymbols checks that every expected symbol was found with the right
// scope and kind, and reports extra unlisted symbols
func (v *CorpusVerifier) matchSymbols(result *VerifyResult, fixture string, lang Language, expected []ExpectedSymbol, scan *ScanResult) {
	listed := make(map[string]bool)

	for _, want := range expected {
		listed[want.Scope+"\x00"+want.Name] = true

		found := scan.Lookup(want.Scope, want.Name)
		if found == nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: expected %s %q not found", fixture, want.Kind, want.Qualified(lang)))
			continue
		}
		if found.Kind != want.Kind {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: %q is a %s, manifest expects %s",
					fixture, want.Qualified(lang), found.Kind, want.Kind))
		}
	}

	for _, got := range scan.Symbols {
		if listed[got.Scope+"\x00"+got.Name] {
			continue
		}
		msg := fmt.Sprintf("%s declares %s %q not listed in the manifest",
			fixture, got.Kind, got.Qualified(lang))
		if v.opts.Strict {
			result.Errors = append(result.Errors, msg)
		} else {
			result.Warnings = append(result.Warnings, VerifyWarning{
				Type:    "unlisted_symbol",
				Message: msg,
				Fixture: fixture,
				Line:    got.Line,
			})
		}
	}
}

func newVerifyResult(name, path string) *VerifyResult {
	now := time.Now()
	return &VerifyResult{
		Name:       name,
		Path:       path,
		StartTime:  now.Format(time.RFC3339),
		VerifiedAt: now,
	}
}
