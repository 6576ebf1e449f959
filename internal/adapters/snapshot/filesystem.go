package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
)

const artifactName = "summary.png"

// FileStore keeps the summary artifact at a single path under dir. Writes go
// to a temp file first and are renamed into place, so readers only ever see
// the previous artifact or the complete new one.
type FileStore struct {
	dir  string
	path string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, path: filepath.Join(dir, artifactName)}
}

func (s *FileStore) Write(blob []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, artifactName+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp artifact: %w", err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(blob); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to close artifact: %w", err)
	}

	if err = os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to replace artifact: %w", err)
	}
	return s.path, nil
}

func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

func (s *FileStore) Path() string { return s.path }
