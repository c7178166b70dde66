// Package notesfile handles the on-disk life of a daily notes document:
// naming, loading, saving and timestamped backups. Document content is plain
// UTF-8 markdown; all structural edits happen in internal/notes.
package notesfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultName returns the canonical file name for a day's notes,
// e.g. "08-30-2026-notes.md".
func DefaultName(date string) string {
	return date + "-notes.md"
}

// Load reads a notes file. A missing file is reported as-is so callers can
// distinguish "new day" from a real read failure with os.IsNotExist.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Save writes the document text, creating parent directories as needed.
func Save(path, text string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create notes directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write notes file: %w", err)
	}
	return nil
}

// Backup copies the file next to itself under a timestamped name:
// "foo-notes.md" becomes "foo-notes.bak-20260830-104500.md". A missing
// source is a no-op so first-write flows need no existence check.
func Backup(path string, now time.Time) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read notes file for backup: %w", err)
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	backupPath := fmt.Sprintf("%s.bak-%s%s", stem, now.Format("20060102-150405"), ext)

	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return backupPath, nil
}
