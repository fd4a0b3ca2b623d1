package routes

import (
	"fmt"
	"os"
	"path/filepath"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const backupDirName = ".backups"

// backupFile copies target into the root's backup directory under a unique
// name before a write or delete touches it. Missing targets are fine: the
// first write of a new file has nothing to back up.
func backupFile(root, target string) (string, error) {
	content, err := os.ReadFile(target)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s for backup: %w", target, err)
	}

	backupDir := filepath.Join(root, backupDirName)
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup dir: %w", err)
	}

	suffix, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate backup suffix: %w", err)
	}

	backupPath := filepath.Join(backupDir, fmt.Sprintf("%s.%s.bak", filepath.Base(target), suffix))
	if err := os.WriteFile(backupPath, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	return backupPath, nil
}
