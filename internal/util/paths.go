package util

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned when a requested path would resolve to a
// location outside the configured notes root.
var ErrOutsideRoot = errors.New("path resolves outside the notes root")

// ResolveUnderRoot resolves rel against root and returns the absolute path,
// verifying that the result is a descendant of root. Containment is decided
// on canonicalized paths via filepath.Rel, never by string-prefix comparison.
func ResolveUnderRoot(root, rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", ErrOutsideRoot
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(absRoot); err == nil {
		absRoot = resolved
	}

	target := filepath.Join(absRoot, filepath.FromSlash(rel))
	if !isDescendant(absRoot, target) {
		return "", ErrOutsideRoot
	}

	// If the target already exists it may itself be a symlink pointing out
	// of the root; re-check against its canonical location.
	if resolved, err := filepath.EvalSymlinks(target); err == nil {
		if !isDescendant(absRoot, resolved) {
			return "", ErrOutsideRoot
		}
		return resolved, nil
	} else if !os.IsNotExist(err) {
		return "", err
	}

	return target, nil
}

func isDescendant(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	if rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
