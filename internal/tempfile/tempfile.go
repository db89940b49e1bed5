// Package tempfile holds audio payloads on disk just long enough to hand
// them to the transcription service. Callers must Remove every file they
// Save, on success and failure paths alike.
package tempfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const dirName = "anota"

// Save writes data under the OS temp dir with a unique name and returns the
// full path.
func Save(data []byte, ext string) (string, error) {
	dir := filepath.Join(os.TempDir(), dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}

	path := filepath.Join(dir, uuid.NewString()+"."+ext)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	return path, nil
}

// Remove deletes a temp file. Missing files are not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing temp file: %w", err)
	}
	return nil
}
