package qualname

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestScanCpp(t *testing.T) {
	scanner := NewScanner()
	defer scanner.Close()

	result, err := scanner.Scan(context.Background(), []byte(cppAccountFixture), LangCpp)
	assertNoError(t, err)

	want := []SymbolInfo{
		{Name: "Account", Kind: KindType, Line: 3, Exported: true},
		{Name: "sum", Scope: "Account", Kind: KindMethod, Line: 8, Exported: true},
		{Name: "to_value", Scope: "Util", Kind: KindFunction, Line: 13, Exported: true},
	}
	if diff := cmp.Diff(want, result.Symbols); diff != "" {
		t.Errorf("Scan() symbols mismatch (-want +got):\n%s", diff)
	}

	wantNames := []string{"Account", "Account::sum", "Util::to_value"}
	if diff := cmp.Diff(wantNames, result.QualifiedNames()); diff != "" {
		t.Errorf("QualifiedNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestScanGo(t *testing.T) {
	scanner := NewScanner()
	defer scanner.Close()

	result, err := scanner.Scan(context.Background(), []byte(goShapesFixture), LangGo)
	assertNoError(t, err)

	if result.Package != "shapes" {
		t.Errorf("Scan() package = %q, want %q", result.Package, "shapes")
	}

	want := []SymbolInfo{
		{Name: "Sample", Kind: KindType, Line: 3, Exported: true},
		{Name: "Label", Scope: "Sample", Kind: KindMethod, Line: 7, Exported: true},
		{Name: "Describe", Kind: KindFunction, Line: 11, Exported: true},
	}
	if diff := cmp.Diff(want, result.Symbols); diff != "" {
		t.Errorf("Scan() symbols mismatch (-want +got):\n%s", diff)
	}
}

func TestScanCppShapes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []SymbolInfo
	}{
		{
			name: "Nested namespaces",
			content: `namespace outer {
namespace inner {
int helper() { return 0; }
}
}`,
			want: []SymbolInfo{
				{Name: "helper", Scope: "outer::inner", Kind: KindFunction, Line: 3, Exported: true},
			},
		},
		{
			name: "Qualified definition inside namespace",
			content: `namespace app {
struct Counter {
    int bump();
};
int Counter::bump() { return 1; }
}`,
			want: []SymbolInfo{
				{Name: "Counter", Scope: "app", Kind: KindType, Line: 2, Exported: true},
				{Name: "bump", Scope: "app::Counter", Kind: KindMethod, Line: 5, Exported: true},
			},
		},
		{
			name: "Class keyword",
			content: `class Ledger {
public:
    int total() const;
};
int Ledger::total() const { return 0; }`,
			want: []SymbolInfo{
				{Name: "Ledger", Kind: KindType, Line: 1, Exported: true},
				{Name: "total", Scope: "Ledger", Kind: KindMethod, Line: 5, Exported: true},
			},
		},
		{
			name:    "Free function without scope",
			content: `int standalone(int n) { return n; }`,
			want: []SymbolInfo{
				{Name: "standalone", Kind: KindFunction, Line: 1, Exported: true},
			},
		},
		{
			name: "Qualified name with unknown scope stays a function",
			content: `int Elsewhere::helper(int n) {
    return n;
}`,
			want: []SymbolInfo{
				{Name: "helper", Scope: "Elsewhere", Kind: KindFunction, Line: 1, Exported: true},
			},
		},
		{
			name:    "Forward declaration produces no type",
			content: `struct Pending;`,
			want:    nil,
		},
	}

	scanner := NewScanner()
	defer scanner.Close()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := scanner.Scan(context.Background(), []byte(tt.content), LangCpp)
			assertNoError(t, err)
			if diff := cmp.Diff(tt.want, result.Symbols); diff != "" {
				t.Errorf("Scan() symbols mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanGoShapes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []SymbolInfo
	}{
		{
			name: "Pointer receiver is stripped",
			content: `package p

type Box struct{}

func (b *Box) Open() {}`,
			want: []SymbolInfo{
				{Name: "Box", Kind: KindType, Line: 3, Exported: true},
				{Name: "Open", Scope: "Box", Kind: KindMethod, Line: 5, Exported: true},
			},
		},
		{
			name: "Unexported symbols are flagged",
			content: `package p

type box struct{}

func helper() {}`,
			want: []SymbolInfo{
				{Name: "box", Kind: KindType, Line: 3, Exported: false},
				{Name: "helper", Kind: KindFunction, Line: 5, Exported: false},
			},
		},
		{
			name: "Grouped type declarations",
			content: `package p

type (
	First struct{}
	Second struct{}
)`,
			want: []SymbolInfo{
				{Name: "First", Kind: KindType, Line: 4, Exported: true},
				{Name: "Second", Kind: KindType, Line: 5, Exported: true},
			},
		},
	}

	scanner := NewScanner()
	defer scanner.Close()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := scanner.Scan(context.Background(), []byte(tt.content), LangGo)
			assertNoError(t, err)
			if diff := cmp.Diff(tt.want, result.Symbols); diff != "" {
				t.Errorf("Scan() symbols mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanErrors(t *testing.T) {
	scanner := NewScanner()
	defer scanner.Close()

	tests := []struct {
		name    string
		content []byte
		lang    Language
		wantErr error
	}{
		{
			name:    "Unsupported language",
			content: []byte("fn main() {}"),
			lang:    Language("rust"),
			wantErr: ErrUnsupportedLanguage,
		},
		{
			name:    "Invalid UTF-8",
			content: []byte{0xff, 0xfe, 0xfd},
			lang:    LangCpp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scanner.Scan(context.Background(), tt.content, tt.lang)
			if err == nil {
				t.Fatal("Scan() expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Scan() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestScanFile(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantCount int
		wantErr   bool
	}{
		{
			name:      "Committed C++ fixture",
			path:      "cpp/qualified/acc.cpp",
			wantCount: 3,
		},
		{
			name:      "Committed Go fixture",
			path:      "go/qualified/shapes.go",
			wantCount: 3,
		},
		{
			name:    "Non-existent fixture",
			path:    "cpp/missing.cpp",
			wantErr: true,
		},
		{
			name:    "Unsupported extension",
			path:    "manifest.yaml",
			wantErr: true,
		},
		{
			name:    "Empty path",
			path:    "",
			wantErr: true,
		},
	}

	scanner := NewScanner(WithRootDir("testdata"))
	defer scanner.Close()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := scanner.ScanFile(context.Background(), tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ScanFile() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if len(result.Symbols) != tt.wantCount {
					t.Errorf("ScanFile() got %d symbols, want %d: %v",
						len(result.Symbols), tt.wantCount, result.QualifiedNames())
				}
				if result.Path != tt.path {
					t.Errorf("ScanFile() path = %q, want %q", result.Path, tt.path)
				}
			}
		})
	}
}

func TestScanFileCaching(t *testing.T) {
	scanner := NewScanner(WithRootDir("testdata"), WithCacheTTL(time.Minute))
	defer scanner.Close()

	for i := 0; i < 3; i++ {
		_, err := scanner.ScanFile(context.Background(), "cpp/qualified/acc.cpp")
		assertNoError(t, err)
	}

	stats := scanner.CacheStats()
	if stats["enabled"] != true {
		t.Fatal("Expected cache to be enabled")
	}
	if hits := stats["hits"].(int64); hits != 2 {
		t.Errorf("Expected 2 cache hits, got %d", hits)
	}
}
