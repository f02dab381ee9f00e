package utils

import (
	"os"
	"path/filepath"
)

// EnsureParentDir creates the directory that will hold path, e.g. the SQLite file.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, os.ModePerm)
}
