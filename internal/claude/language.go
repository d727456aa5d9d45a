package claude

import (
	"path/filepath"
	"strings"
)

// languageByExt maps file extensions to syntax-highlighting language tags.
var languageByExt = map[string]string{
	".js":   "javascript",
	".jsx":  "jsx",
	".ts":   "typescript",
	".tsx":  "tsx",
	".py":   "python",
	".rb":   "ruby",
	".go":   "go",
	".rs":   "rust",
	".java": "java",
	".c":    "c",
	".cpp":  "cpp",
	".h":    "c",
	".css":  "css",
	".scss": "scss",
	".html": "html",
	".json": "json",
	".yaml": "yaml",
	".yml":  "yaml",
	".md":   "markdown",
	".sh":   "bash",
	".sql":  "sql",
	".xml":  "xml",
}

// LanguageForPath infers a language tag from a file path's extension.
// Unknown extensions and empty paths map to "text".
func LanguageForPath(path string) string {
	if path == "" {
		return "text"
	}
	if lang, ok := languageByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return "text"
}
