package qualname

import "path/filepath"

// Common constants for fixture operations
const (
	maxFixtureSize = 10 * 1024 * 1024 // 10MB
)

// languageExts maps file extensions to fixture languages
var languageExts = map[string]Language{
	".cpp": LangCpp,
	".cc":  LangCpp,
	".cxx": LangCpp,
	".hpp": LangCpp,
	".h":   LangCpp,
	".go":  LangGo,
}

// LanguageForFile returns the fixture language for a file path
func LanguageForFile(path string) (Language, bool) {
	lang, ok := languageExts[filepath.Ext(path)]
	return lang, ok
}
