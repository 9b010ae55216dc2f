package qualname

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// CorpusReader implements the fixture source over a corpus directory
type CorpusReader struct {
	opts *Options
}

// NewReader creates a new corpus reader
func NewReader(opts ...Option) *CorpusReader {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return &CorpusReader{opts: options}
}

// GetFileTree gets the fixture file tree starting from the given root
func (r *CorpusReader) GetFileTree(ctx context.Context, root string, opts TreeOptions) (*FileTreeNode, error) {
	if ctx == nil {
		return nil, fmt.Errorf("nil context")
	}

	absRoot := filepath.Join(r.opts.RootDir, root)
	rootNode := &FileTreeNode{
		Name:     filepath.Base(absRoot),
		Path:     root,
		Type:     "directory",
		Children: make([]*FileTreeNode, 0),
	}

	dirNodes := make(map[string]*FileTreeNode)
	dirNodes[root] = rootNode

	err := filepath.Walk(absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if strings.HasPrefix(filepath.Base(path), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasSuffix(path, "~") || strings.HasSuffix(path, ".swp") {
			return nil
		}

		relPath, err := filepath.Rel(r.opts.RootDir, path)
		if err != nil {
			return err
		}

		if !info.IsDir() {
			keep, err := r.wantsFile(path, opts)
			if err != nil {
				return err
			}
			if !keep {
				return nil
			}
		}

		node := &FileTreeNode{
			Name:    filepath.Base(path),
			Path:    relPath,
			Type:    "file",
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}
		if info.IsDir() {
			node.Type = "directory"
			node.Size = 0
			node.Children = make([]*FileTreeNode, 0)
		}

		if relPath == root {
			return nil
		}

		parentPath := filepath.Dir(relPath)
		if info.IsDir() {
			dirNodes[relPath] = node
		}

		parent, ok := dirNodes[parentPath]
		if !ok {
			parent = &FileTreeNode{
				Name:     filepath.Base(parentPath),
				Path:     parentPath,
				Type:     "directory",
				Children: make([]*FileTreeNode, 0),
			}
			dirNodes[parentPath] = parent

			grandParentPath := filepath.Dir(parentPath)
			if grandParent, ok := dirNodes[grandParentPath]; ok {
				grandParent.Children = append(grandParent.Children, parent)
			}
		}

		parent.Children = append(parent.Children, node)

		return nil
	})

	if err != nil {
		return nil, err
	}

	sortTree(rootNode)

	return rootNode, nil
}

// wantsFile applies language and pattern filters to a fixture file path
func (r *CorpusReader) wantsFile(path string, opts TreeOptions) (bool, error) {
	lang, known := LanguageForFile(path)
	if !known {
		return false, nil
	}
	if !r.opts.wantsLanguage(lang) {
		return false, nil
	}

	if len(opts.Languages) > 0 {
		found := false
		for _, l := range opts.Languages {
			if l == lang {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}

	base := filepath.Base(path)
	for _, pattern := range opts.ExcludePatterns {
		matched, err := filepath.Match(pattern, base)
		if err != nil {
			return false, err
		}
		if matched {
			return false, nil
		}
	}

	if len(opts.IncludePatterns) > 0 {
		for _, pattern := range opts.IncludePatterns {
			matched, err := filepath.Match(pattern, base)
			if err != nil {
				return false, err
			}
			if matched {
				return true, nil
			}
		}
		return false, nil
	}

	return true, nil
}

// ReadFixture reads a fixture file's exact bytes
func (r *CorpusReader) ReadFixture(ctx context.Context, filePath string) ([]byte, error) {
	if ctx == nil {
		return nil, fmt.Errorf("nil context")
	}
	if filePath == "" {
		return nil, &ScanError{Op: "read fixture", Wrapped: ErrInvalidInput}
	}

	absPath := filepath.Join(r.opts.RootDir, filePath)
	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ScanError{Op: "read fixture", Path: filePath, Wrapped: ErrNotFound}
		}
		return nil, err
	}

	if info.Size() > r.opts.MaxFixtureSize {
		return nil, fmt.Errorf("fixture too large: %s", filePath)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(content) {
		return nil, fmt.Errorf("fixture contains invalid UTF-8: %s", filePath)
	}

	return content, nil
}

func sortTree(node *FileTreeNode) {
	if node.Children == nil {
		return
	}

	sort.Slice(node.Children, func(i, j int) bool {
		if node.Children[i].Type != node.Children[j].Type {
			return node.Children[i].Type == "directory"
		}
		return node.Children[i].Name < node.Children[j].Name
	})

	for _, child := range node.Children {
		if child.Type == "directory" {
			sortTree(child)
		}
	}
}
