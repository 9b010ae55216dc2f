package qualname

import (
	"context"
	"fmt"
	"go/types"
	"sort"
	"time"

	"golang.org/x/tools/go/packages"
)

// PackageAnalyzer lists the declared symbols of compiled Go fixture packages
type PackageAnalyzer struct {
	opts  *Options
	cache *Cache
}

// NewAnalyzer creates a new fixture package analyzer with the given options
func NewAnalyzer(opts ...Option) *PackageAnalyzer {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	analyzer := &PackageAnalyzer{opts: options}
	if options.CacheTTL > 0 {
		analyzer.cache = NewCache(options.CacheTTL)
	}

	return analyzer
}

// loadPackage loads a fixture package with type information
func (a *PackageAnalyzer) loadPackage(importPath string) (*packages.Package, error) {
	if importPath == "" {
		return nil, &PackageError{
			Op:      "load package",
			Wrapped: ErrInvalidInput,
		}
	}

	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo,
		Dir: a.opts.RootDir,
	}

	pkgs, err := packages.Load(cfg, importPath)
	if err != nil {
		return nil, &PackageError{
			Package: importPath,
			Op:      "load",
			Wrapped: err,
		}
	}

	if len(pkgs) == 0 {
		return nil, &PackageError{
			Package: importPath,
			Op:      "load",
			Wrapped: ErrNotFound,
		}
	}

	if len(pkgs[0].Errors) > 0 {
		errors := make([]string, len(pkgs[0].Errors))
		for i, err := range pkgs[0].Errors {
			errors[i] = err.Error()
		}
		return nil, &PackageError{
			Package: importPath,
			Op:      "load",
			Errors:  errors,
		}
	}

	return pkgs[0], nil
}

// AnalyzePackage lists the symbols declared at a fixture package's top level.
// Methods are reported with their receiver type as scope.
func (a *PackageAnalyzer) AnalyzePackage(ctx context.Context, importPath string) (result *ScanResult, err error) {
	if a.cache != nil {
		key := PackageCacheKey{ImportPath: importPath}
		if cached, ok := a.cache.GetPackage(key); ok {
			return cached, nil
		}
		defer func() {
			if err == nil && result != nil {
				a.cache.SetPackage(key, result)
			}
		}()
	}

	pkg, err := a.loadPackage(importPath)
	if err != nil {
		return nil, err
	}

	result = &ScanResult{
		Path:      importPath,
		Language:  LangGo,
		Package:   pkg.Name,
		ScannedAt: time.Now(),
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)
		switch obj := obj.(type) {
		case *types.TypeName:
			result.Symbols = append(result.Symbols, SymbolInfo{
				Name:     obj.Name(),
				Kind:     KindType,
				Exported: obj.Exported(),
			})
			if named, ok := obj.Type().(*types.Named); ok {
				for i := 0; i < named.NumMethods(); i++ {
					m := named.Method(i)
					result.Symbols = append(result.Symbols, SymbolInfo{
						Name:     m.Name(),
						Scope:    obj.Name(),
						Kind:     KindMethod,
						Exported: m.Exported(),
					})
				}
			}
		case *types.Func:
			result.Symbols = append(result.Symbols, SymbolInfo{
				Name:     obj.Name(),
				Kind:     KindFunction,
				Exported: obj.Exported(),
			})
		}
	}

	sort.Slice(result.Symbols, func(i, j int) bool {
		if result.Symbols[i].Scope != result.Symbols[j].Scope {
			return result.Symbols[i].Scope < result.Symbols[j].Scope
		}
		return result.Symbols[i].Name < result.Symbols[j].Name
	})

	return result, nil
}

// FindSymbol looks up one symbol in a fixture package. An empty scope matches
// package-level functions and types; a non-empty scope matches methods of that type.
func (a *PackageAnalyzer) FindSymbol(ctx context.Context, importPath, scope, name string) (*SymbolInfo, error) {
	if name == "" {
		return nil, &SymbolLookupError{
			Package: importPath,
			Wrapped: ErrInvalidInput,
		}
	}

	pkg, err := a.loadPackage(importPath)
	if err != nil {
		return nil, &SymbolLookupError{
			Symbol:  qualifiedName(scope, name),
			Package: importPath,
			Wrapped: err,
		}
	}

	if scope == "" {
		obj := pkg.Types.Scope().Lookup(name)
		switch obj := obj.(type) {
		case *types.Func:
			return &SymbolInfo{Name: obj.Name(), Kind: KindFunction, Exported: obj.Exported()}, nil
		case *types.TypeName:
			return &SymbolInfo{Name: obj.Name(), Kind: KindType, Exported: obj.Exported()}, nil
		case nil:
			return nil, &SymbolLookupError{Symbol: name, Package: importPath, Wrapped: ErrNotFound}
		default:
			return nil, &SymbolLookupError{
				Symbol:  name,
				Package: importPath,
				Wrapped: fmt.Errorf("symbol is not a function or type"),
			}
		}
	}

	obj := pkg.Types.Scope().Lookup(scope)
	if obj == nil {
		return nil, &SymbolLookupError{
			Symbol:  qualifiedName(scope, name),
			Package: importPath,
			Kind:    string(KindMethod),
			Wrapped: ErrNotFound,
		}
	}
	typeObj, ok := obj.(*types.TypeName)
	if !ok {
		return nil, &SymbolLookupError{
			Symbol:  qualifiedName(scope, name),
			Package: importPath,
			Wrapped: fmt.Errorf("scope %s is not a type", scope),
		}
	}
	named, ok := typeObj.Type().(*types.Named)
	if !ok {
		return nil, &SymbolLookupError{
			Symbol:  qualifiedName(scope, name),
			Package: importPath,
			Wrapped: fmt.Errorf("scope %s has no method set", scope),
		}
	}

	for i := 0; i < named.NumMethods(); i++ {
		m := named.Method(i)
		if m.Name() == name {
			return &SymbolInfo{
				Name:     m.Name(),
				Scope:    scope,
				Kind:     KindMethod,
				Exported: m.Exported(),
			}, nil
		}
	}

	return nil, &SymbolLookupError{
		Symbol:  qualifiedName(scope, name),
		Package: importPath,
		Kind:    string(KindMethod),
		Wrapped: ErrNotFound,
	}
}

// CacheStats returns analyzer cache statistics
func (a *PackageAnalyzer) CacheStats() map[string]interface{} {
	if a.cache == nil {
		return map[string]interface{}{"enabled": false}
	}
	stats := a.cache.Stats()
	stats["enabled"] = true
	return stats
}

func qualifiedName(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + "." + name
}
