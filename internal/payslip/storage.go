package payslip

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type DocumentStore interface {
	Save(ctx context.Context, relPath string, data []byte) (string, error)
	Load(ctx context.Context, path string) ([]byte, error)
}

// filesystemStore keeps documents under a root directory. Paths stored on the
// payslip row are relative to that root, so the root can move between
// environments.
type filesystemStore struct {
	root string
}

func NewFilesystemStore(root string) DocumentStore {
	return &filesystemStore{root: root}
}

func (s *filesystemStore) Save(_ context.Context, relPath string, data []byte) (string, error) {
	relPath = filepath.Clean(strings.TrimPrefix(relPath, "/"))
	full := filepath.Join(s.root, relPath)

	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o600); err != nil {
		return "", err
	}

	return relPath, nil
}

func (s *filesystemStore) Load(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.root, filepath.Clean(strings.TrimPrefix(path, "/"))))
}
