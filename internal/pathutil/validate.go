// Package pathutil confines caller-supplied file paths to a set of root
// directories.
package pathutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Redact shortens a path to ".../<parent>/<base>" for error messages.
func Redact(path string) string {
	if path == "" {
		return ""
	}
	cleaned := filepath.Clean(path)
	parent := filepath.Base(filepath.Dir(cleaned))
	if parent == "." || parent == string(filepath.Separator) {
		return filepath.Base(cleaned)
	}
	return ".../" + parent + "/" + filepath.Base(cleaned)
}

// Confine resolves path and checks that it lies inside one of roots. The
// path itself need not exist; symlinks in its existing ancestors are
// resolved before the check. It returns the resolved absolute path.
func Confine(path string, roots []string) (string, error) {
	if path == "" {
		return "", errors.New("path is empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return "", errors.New("path contains a null byte")
	}
	if len(roots) == 0 {
		return "", errors.New("no allowed directories configured")
	}

	resolved, err := resolve(path)
	if err != nil {
		return "", err
	}

	for _, root := range roots {
		rootResolved, err := resolve(root)
		if err != nil {
			continue
		}
		if within(resolved, rootResolved) {
			return resolved, nil
		}
	}
	return "", fmt.Errorf("%q is outside the allowed directories", Redact(resolved))
}

// resolve makes path absolute and evaluates symlinks on its deepest
// existing ancestor, keeping the missing tail as written.
func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve %s: %w", Redact(path), err)
	}

	var tail []string
	cur := abs
	for {
		if real, err := filepath.EvalSymlinks(cur); err == nil {
			for i := len(tail) - 1; i >= 0; i-- {
				real = filepath.Join(real, tail[i])
			}
			return real, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", fmt.Errorf("cannot resolve %s", Redact(path))
		}
		tail = append(tail, filepath.Base(cur))
		cur = parent
	}
}

// within reports whether path equals root or lies below it.
func within(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
