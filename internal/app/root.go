package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/genshinsim/gcsim/apps/eidolon_value/internal/config"
)

// FindRoot walks up from the working directory to the first directory holding
// eidolon_config.yaml or the example input tree.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findRootFrom(cwd)
}

func findRootFrom(start string) (string, error) {
	dir := start
	for i := 0; i < 10; i++ {
		for _, marker := range []string{config.FileName, examplesConfigPath("")} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("cannot find app root from %q (expected to find %s in this dir or any parent)", start, config.FileName)
}

func examplesConfigPath(root string) string {
	return filepath.Join(root, "input", "eidolon_value", "examples", "eidolon_config.example.yaml")
}
