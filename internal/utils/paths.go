package utils

import (
	"path/filepath"
	"strings"
)

// ResolvePath resolves path relative to baseDir. Absolute paths are
// returned unchanged and empty stays empty.
func ResolvePath(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

var modelNameReplacer = strings.NewReplacer("/", "_", ":", "_")

// SanitizeModelName makes a model name safe to embed in a file name.
func SanitizeModelName(model string) string {
	return modelNameReplacer.Replace(model)
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
