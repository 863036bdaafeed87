// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// FixturesDirName is the conventional fixtures directory inside a project.
const FixturesDirName = "fixtures"

// ResolveFixturesDir resolves the fixtures directory from user input.
//
// Input normalization:
//   - "" -> "" (embedded data)
//   - a directory holding applications.json -> that directory
//   - a project directory with a fixtures/ child -> "<dir>/fixtures"
//
// A file named "redirect" inside the resolved directory points elsewhere,
// relative to the directory, which lets several checkouts share one set of
// fixtures.
func ResolveFixturesDir(path string) string {
	if path == "" {
		return ""
	}
	dir := filepath.Clean(path)

	if !exists(filepath.Join(dir, "applications.json")) {
		if child := filepath.Join(dir, FixturesDirName); isDir(child) {
			dir = child
		}
	}

	return followRedirect(dir)
}

// followRedirect returns the directory named by dir/redirect, if present.
func followRedirect(dir string) string {
	content, err := os.ReadFile(filepath.Join(dir, "redirect")) //nolint:gosec // redirect lives in the fixtures dir
	if err != nil {
		return dir
	}

	target := strings.TrimSpace(string(content))
	if target == "" {
		return dir
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Clean(filepath.Join(dir, target))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
