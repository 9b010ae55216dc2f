package qualname

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/golang"
)

// TreeScanner extracts declared symbols from fixture files using tree-sitter
type TreeScanner struct {
	opts *Options

	// tree-sitter parsers are not safe for concurrent use
	mu      sync.Mutex
	parsers map[Language]*sitter.Parser

	cache *Cache
}

// NewScanner creates a new symbol scanner with the given options
func NewScanner(opts ...Option) *TreeScanner {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	cppParser := sitter.NewParser()
	cppParser.SetLanguage(cpp.GetLanguage())
	goParser := sitter.NewParser()
	goParser.SetLanguage(golang.GetLanguage())

	scanner := &TreeScanner{
		opts: options,
		parsers: map[Language]*sitter.Parser{
			LangCpp: cppParser,
			LangGo:  goParser,
		},
	}

	if options.CacheTTL > 0 {
		scanner.cache = NewCache(options.CacheTTL)
	}

	return scanner
}

// Close releases parser resources
func (s *TreeScanner) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, parser := range s.parsers {
		parser.Close()
	}
}

// Scan extracts symbols from in-memory fixture content
func (s *TreeScanner) Scan(ctx context.Context, content []byte, lang Language) (*ScanResult, error) {
	if ctx == nil {
		return nil, fmt.Errorf("nil context")
	}
	if !lang.Known() {
		return nil, &ScanError{Op: "scan", Language: lang, Wrapped: ErrUnsupportedLanguage}
	}
	if !utf8.Valid(content) {
		return nil, &ScanError{Op: "scan", Language: lang, Wrapped: fmt.Errorf("content is not valid UTF-8")}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tree, err := s.parsers[lang].ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, &ScanError{Op: "parse fixture", Language: lang, Wrapped: err}
	}
	defer tree.Close()

	result := &ScanResult{
		Language:  lang,
		ScannedAt: time.Now(),
	}

	root := tree.RootNode()
	switch lang {
	case LangCpp:
		result.Symbols = extractCppSymbols(root, content)
	case LangGo:
		result.Package, result.Symbols = extractGoSymbols(root, content)
	}

	return result, nil
}

// ScanFile extracts symbols from a fixture file under the corpus root
func (s *TreeScanner) ScanFile(ctx context.Context, path string) (result *ScanResult, err error) {
	if path == "" {
		return nil, &ScanError{Op: "scan file", Wrapped: ErrInvalidInput}
	}

	lang, ok := LanguageForFile(path)
	if !ok {
		return nil, &ScanError{Op: "scan file", Path: path, Wrapped: ErrUnsupportedLanguage}
	}

	absPath := filepath.Join(s.opts.RootDir, path)
	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ScanError{Op: "scan file", Path: path, Wrapped: ErrNotFound}
		}
		return nil, &ScanError{Op: "stat fixture", Path: path, Wrapped: err}
	}
	if info.Size() > s.opts.MaxFixtureSize {
		return nil, &ScanError{Op: "scan file", Path: path, Wrapped: fmt.Errorf("fixture too large (%d bytes)", info.Size())}
	}

	if s.cache != nil {
		key := ScanCacheKey{Path: path, ModTime: info.ModTime()}
		if cached, ok := s.cache.GetScan(key); ok {
			return cached, nil
		}
		defer func() {
			if err == nil && result != nil {
				s.cache.SetScan(key, result)
			}
		}()
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, &ScanError{Op: "read fixture", Path: path, Wrapped: err}
	}

	result, err = s.Scan(ctx, content, lang)
	if err != nil {
		return nil, err
	}
	result.Path = path

	return result, nil
}

// CacheStats returns scan cache statistics
func (s *TreeScanner) CacheStats() map[string]interface{} {
	if s.cache == nil {
		return map[string]interface{}{"enabled": false}
	}
	stats := s.cache.Stats()
	stats["enabled"] = true
	return stats
}

// extractCppSymbols walks a C++ syntax tree and collects type definitions,
// out-of-line qualified method definitions and namespace free functions.
// In-class member prototypes are declarations, not definitions, and are skipped.
func extractCppSymbols(root *sitter.Node, content []byte) []SymbolInfo {
	var symbols []SymbolInfo
	records := make(map[string]bool)

	var walk func(n *sitter.Node, ns []string)
	walk = func(n *sitter.Node, ns []string) {
		switch n.Type() {
		case "namespace_definition":
			next := ns
			if nameNode := n.ChildByFieldName("name"); nameNode != nil {
				next = append(append([]string(nil), ns...), nameNode.Content(content))
			}
			if body := n.ChildByFieldName("body"); body != nil {
				for i := 0; i < int(body.NamedChildCount()); i++ {
					walk(body.NamedChild(i), next)
				}
			}
			return

		case "struct_specifier", "class_specifier":
			nameNode := n.ChildByFieldName("name")
			body := n.ChildByFieldName("body")
			if nameNode != nil && body != nil {
				name := nameNode.Content(content)
				records[name] = true
				symbols = append(symbols, SymbolInfo{
					Name:     name,
					Scope:    joinScope(ns, LangCpp),
					Kind:     KindType,
					Line:     int(n.StartPoint().Row) + 1,
					Exported: true,
				})
			}
			return

		case "function_definition":
			declarator := cppFunctionDeclarator(n.ChildByFieldName("declarator"))
			if declarator == nil {
				return
			}
			scopeParts, name := cppDeclaratorName(declarator.ChildByFieldName("declarator"), content)
			if name == "" {
				return
			}
			scope := joinScope(append(append([]string(nil), ns...), scopeParts...), LangCpp)
			symbols = append(symbols, SymbolInfo{
				Name:     name,
				Scope:    scope,
				Line:     int(n.StartPoint().Row) + 1,
				Exported: true,
				// Kind is resolved below once all record types are known
			})
			return
		}

		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i), ns)
		}
	}
	walk(root, nil)

	for i := range symbols {
		if symbols[i].Kind != "" {
			continue
		}
		if records[lastScopeComponent(symbols[i].Scope, LangCpp)] {
			symbols[i].Kind = KindMethod
		} else {
			symbols[i].Kind = KindFunction
		}
	}

	return symbols
}

// cppFunctionDeclarator unwraps pointer and reference declarators until it
// reaches the function_declarator, or nil if the definition has none
func cppFunctionDeclarator(n *sitter.Node) *sitter.Node {
	for n != nil {
		switch n.Type() {
		case "function_declarator":
			return n
		case "pointer_declarator", "reference_declarator", "parenthesized_declarator":
			next := n.ChildByFieldName("declarator")
			if next == nil && n.NamedChildCount() > 0 {
				next = n.NamedChild(int(n.NamedChildCount()) - 1)
			}
			n = next
		default:
			return nil
		}
	}
	return nil
}

// cppDeclaratorName splits a (possibly qualified) declarator into its scope
// components and the trailing symbol name
func cppDeclaratorName(n *sitter.Node, content []byte) (scope []string, name string) {
	for n != nil && n.Type() == "qualified_identifier" {
		if sc := n.ChildByFieldName("scope"); sc != nil {
			scope = append(scope, sc.Content(content))
		}
		n = n.ChildByFieldName("name")
	}
	if n == nil {
		return scope, ""
	}
	switch n.Type() {
	case "identifier", "field_identifier", "destructor_name", "operator_name":
		return scope, n.Content(content)
	}
	return scope, ""
}

// extractGoSymbols walks a Go syntax tree and collects type declarations,
// methods (receiver type as scope) and free functions
func extractGoSymbols(root *sitter.Node, content []byte) (string, []SymbolInfo) {
	var symbols []SymbolInfo
	pkg := ""

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "package_clause":
			if n.NamedChildCount() > 0 {
				pkg = n.NamedChild(0).Content(content)
			}
			return

		case "function_declaration":
			if nameNode := n.ChildByFieldName("name"); nameNode != nil {
				name := nameNode.Content(content)
				symbols = append(symbols, SymbolInfo{
					Name:     name,
					Kind:     KindFunction,
					Line:     int(n.StartPoint().Row) + 1,
					Exported: isExportedName(name),
				})
			}
			return

		case "method_declaration":
			nameNode := n.ChildByFieldName("name")
			if nameNode == nil {
				return
			}
			name := nameNode.Content(content)
			symbols = append(symbols, SymbolInfo{
				Name:     name,
				Scope:    goReceiverType(n.ChildByFieldName("receiver"), content),
				Kind:     KindMethod,
				Line:     int(n.StartPoint().Row) + 1,
				Exported: isExportedName(name),
			})
			return

		case "type_declaration":
			for i := 0; i < int(n.NamedChildCount()); i++ {
				spec := n.NamedChild(i)
				if spec.Type() != "type_spec" && spec.Type() != "type_alias" {
					continue
				}
				if nameNode := spec.ChildByFieldName("name"); nameNode != nil {
					name := nameNode.Content(content)
					symbols = append(symbols, SymbolInfo{
						Name:     name,
						Kind:     KindType,
						Line:     int(spec.StartPoint().Row) + 1,
						Exported: isExportedName(name),
					})
				}
			}
			return
		}

		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(root)

	return pkg, symbols
}

// goReceiverType extracts the receiver type name from a method's parameter list,
// stripping any pointer or type-parameter decoration
func goReceiverType(recv *sitter.Node, content []byte) string {
	if recv == nil {
		return ""
	}
	for i := 0; i < int(recv.NamedChildCount()); i++ {
		param := recv.NamedChild(i)
		if param.Type() != "parameter_declaration" {
			continue
		}
		t := param.ChildByFieldName("type")
		for t != nil {
			switch t.Type() {
			case "pointer_type", "generic_type":
				if t.NamedChildCount() == 0 {
					return ""
				}
				t = t.NamedChild(0)
			default:
				return t.Content(content)
			}
		}
	}
	return ""
}

func isExportedName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

func lastScopeComponent(scope string, lang Language) string {
	if scope == "" {
		return ""
	}
	parts := strings.Split(scope, lang.Separator())
	return parts[len(parts)-1]
}
