// Package adapter contains result readers and storage adapters for the treeport CLI.
package adapter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "github.com/mouse-blink/treeport/internal/model"
)

// InputFSAdapter abstracts the filesystem access needed to find and open
// result files, so the workflow can be tested without touching the disk.
type InputFSAdapter interface {
	// Expand resolves roots into result files. A root ending in "/..." is
	// walked recursively, a directory contributes its direct result files,
	// and a file is returned as is regardless of its extension.
	Expand(roots []m.Path) ([]m.Path, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation limits itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// Open opens a result file for reading.
	Open(path m.Path) (io.ReadCloser, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type into the domain.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalInputFSAdapter implements InputFSAdapter on the local filesystem.
type LocalInputFSAdapter struct{}

// NewLocalInputFSAdapter constructs a LocalInputFSAdapter.
func NewLocalInputFSAdapter() *LocalInputFSAdapter {
	return &LocalInputFSAdapter{}
}

// Expand resolves roots into a deduplicated list of result files. Files
// found under one root are sorted; roots keep their given order.
func (a *LocalInputFSAdapter) Expand(roots []m.Path) ([]m.Path, error) {
	seen := make(map[string]struct{})

	var files []m.Path

	add := func(path string) {
		if _, exists := seen[path]; exists {
			return
		}

		seen[path] = struct{}{}
		files = append(files, m.Path(path))
	}

	for _, root := range roots {
		rootPath, recursive, err := normalizeRootPath(string(root))
		if err != nil {
			return nil, err
		}

		info, err := a.FileInfo(m.Path(rootPath))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			add(rootPath)

			continue
		}

		var found []string

		err = a.Walk(m.Path(rootPath), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() || !IsResultFile(path) {
				return nil
			}

			found = append(found, path)

			return nil
		})
		if err != nil {
			return nil, err
		}

		sort.Strings(found)

		for _, path := range found {
			add(path)
		}
	}

	return files, nil
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalInputFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// Open opens the file at path.
func (a *LocalInputFSAdapter) Open(path m.Path) (io.ReadCloser, error) {
	return os.Open(string(path))
}

// FileInfo returns os.Stat information for path.
func (a *LocalInputFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// IsResultFile reports whether path has an extension treeport can read.
func IsResultFile(path string) bool {
	_, ok := formatByExt[strings.ToLower(filepath.Ext(path))]

	return ok
}

func normalizeRootPath(root string) (string, bool, error) {
	rootStr, recursive := parseRootPath(root)

	if strings.HasPrefix(rootStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}

		suffix := strings.TrimPrefix(rootStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		rootStr = filepath.Join(home, suffix)
	}

	if rootStr == "" {
		rootStr = "."
	}

	abs, err := filepath.Abs(rootStr)
	if err != nil {
		return "", false, err
	}

	return abs, recursive, nil
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	if rootStr == "..." {
		return ".", true
	}

	if len(rootStr) >= 4 && rootStr[len(rootStr)-4:] == "/..." {
		return rootStr[:len(rootStr)-4], true
	}

	return rootStr, false
}
