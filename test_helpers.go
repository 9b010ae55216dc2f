package qualname

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
)

// writeCorpus writes fixture files into the given directory
func writeCorpus(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for path, content := range files {
		fullPath := filepath.Join(dir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0750); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0600); err != nil {
			t.Fatalf("Failed to write file %s: %v", path, err)
		}
	}
}

// sha256Hex returns the hex SHA-256 of the given content
func sha256Hex(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// cppAccountFixture is an in-memory copy of the canonical C++ fixture shape:
// one struct with an out-of-line member definition and one namespace free function
const cppAccountFixture = `#include <string>

struct Account {
    int id;
    int sum(int a, int b) const;
};

int Account::sum(int a, int b) const {
    return a + b;
}

namespace Util {
    int to_value(bool include) { return include ? 1 : 0; }
}
`

// goShapesFixture mirrors the committed Go fixture file
const goShapesFixture = `package shapes

type Sample struct {
	Title string
}

func (s *Sample) Label() string {
	return s.Title
}

func Describe(s Sample) string {
	return s.Title
}
`

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}
