package notes

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// The corpus layout is a configuration constant: a durable top-level
// MEMORY.md plus everything recursively under memory/.
const (
	rootNoteName = "MEMORY.md"
	notesDirName = "memory"
)

// Discover enumerates the markdown files that make up the corpus under
// root, returning absolute paths in no guaranteed order. Symbolic links are
// never followed. A missing or unreadable root fails the whole build.
func Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus root %s is not a directory", root)
	}

	var files []string

	rootNote := filepath.Join(root, rootNoteName)
	if fi, err := os.Lstat(rootNote); err == nil && fi.Mode().IsRegular() {
		files = append(files, rootNote)
	}

	notesDir := filepath.Join(root, notesDirName)
	err = filepath.WalkDir(notesDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		// WalkDir does not follow symlinked directories; symlinked
		// files are skipped here to keep the no-follow guarantee.
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".md") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to walk %s: %w", notesDir, err)
	}

	return files, nil
}

// RelPath converts an absolute corpus file path into the slash-separated
// root-relative form used for node identity.
func RelPath(root, abs string) (string, error) {
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
