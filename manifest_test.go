package qualname

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadManifest(t *testing.T) {
	m, err := LoadManifest(filepath.Join("testdata", "manifest.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 1, m.Version)
	require.Len(t, m.Files, 2)
	require.Len(t, m.Packages, 2)

	cpp := m.Files[0]
	assert.Equal(t, "cpp/qualified/acc.cpp", cpp.Path)
	assert.Equal(t, LangCpp, cpp.Language)
	assert.Len(t, cpp.SHA256, 64)
	require.Len(t, cpp.Symbols, 3)
	assert.Equal(t, "Account::sum", cpp.Symbols[1].Qualified(cpp.Language))
	assert.Equal(t, "Util::to_value", cpp.Symbols[2].Qualified(cpp.Language))

	goFile := m.Files[1]
	assert.Equal(t, LangGo, goFile.Language)
	assert.Equal(t, "Sample.Label", goFile.Symbols[1].Qualified(goFile.Language))

	assert.Equal(t, "github.com/fixturelab/qualname/fixtures/account", m.Packages[0].ImportPath)
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "Unsupported version",
			content: "version: 2\nfiles:\n  - path: a.cpp\n    language: cpp\n    symbols:\n      - {name: x, kind: type}\n",
			wantMsg: "unsupported version",
		},
		{
			name:    "No fixtures",
			content: "version: 1\n",
			wantMsg: "no fixtures",
		},
		{
			name:    "Empty fixture path",
			content: "version: 1\nfiles:\n  - path: \"\"\n    language: cpp\n    symbols:\n      - {name: x, kind: type}\n",
			wantMsg: "empty fixture path",
		},
		{
			name: "Duplicate fixture path",
			content: "version: 1\nfiles:\n" +
				"  - path: a.cpp\n    language: cpp\n    symbols:\n      - {name: x, kind: type}\n" +
				"  - path: a.cpp\n    language: cpp\n    symbols:\n      - {name: y, kind: type}\n",
			wantMsg: "duplicate fixture path",
		},
		{
			name:    "Unknown language",
			content: "version: 1\nfiles:\n  - path: a.rs\n    language: rust\n    symbols:\n      - {name: x, kind: type}\n",
			wantMsg: "unknown language",
		},
		{
			name:    "Bad checksum length",
			content: "version: 1\nfiles:\n  - path: a.cpp\n    language: cpp\n    sha256: abc123\n    symbols:\n      - {name: x, kind: type}\n",
			wantMsg: "sha256 must be 64 hex characters",
		},
		{
			name:    "Fixture without symbols",
			content: "version: 1\nfiles:\n  - path: a.cpp\n    language: cpp\n",
			wantMsg: "no expected symbols",
		},
		{
			name:    "Empty symbol name",
			content: "version: 1\nfiles:\n  - path: a.cpp\n    language: cpp\n    symbols:\n      - {name: \"\", kind: type}\n",
			wantMsg: "empty symbol name",
		},
		{
			name:    "Unknown symbol kind",
			content: "version: 1\nfiles:\n  - path: a.cpp\n    language: cpp\n    symbols:\n      - {name: x, kind: macro}\n",
			wantMsg: "unknown kind",
		},
		{
			name:    "Empty import path",
			content: "version: 1\npackages:\n  - import_path: \"\"\n    symbols:\n      - {name: x, kind: type}\n",
			wantMsg: "empty import path",
		},
		{
			name:    "Malformed YAML",
			content: "version: [",
			wantMsg: "parse manifest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "manifest.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			_, err := LoadManifest(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var merr *ManifestError
			assert.ErrorAs(t, err, &merr)
		})
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read manifest")
}
