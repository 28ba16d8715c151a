package core

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// Getwd finds the project root: the closest directory holding go.mod.
// go-test changes the working directory to the package being tested,
// so the current directory alone cannot be trusted.
// Falls back to the current directory when no go.mod is found (installed binaries).
func Getwd() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "getting working directory")
	}
	currDir := wd
	for {
		if fi, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil && !fi.IsDir() {
			return currDir, nil
		}
		newDir := filepath.Dir(currDir)
		if newDir == currDir {
			return wd, nil
		}
		currDir = newDir
	}
}
