package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/sharesarthi/share_recovery_crm/internal/core/ports/collaborators"
)

// LocalDocumentStore writes uploaded files under a base directory, one
// subdirectory per case. The stored URI is a file:// path.
type LocalDocumentStore struct {
	baseDir string
}

func NewLocalDocumentStore(baseDir string) (*LocalDocumentStore, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("document storage directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create document storage directory: %w", err)
	}
	return &LocalDocumentStore{baseDir: baseDir}, nil
}

var _ collaborators.DocumentStore = (*LocalDocumentStore)(nil)

// sanitizeFileName strips path separators so a client-supplied name cannot
// escape the case directory.
func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	return strings.ReplaceAll(name, "..", "_")
}

func (s *LocalDocumentStore) Store(ctx context.Context, caseID string, shareholder string, category string, fileName string, data io.Reader) (string, int64, error) {
	caseDir := filepath.Join(s.baseDir, caseID)
	if err := os.MkdirAll(caseDir, 0o750); err != nil {
		return "", 0, fmt.Errorf("failed to create case directory: %w", err)
	}

	// Prefix with a UUID so repeated uploads of the same file name never collide.
	storedName := uuid.New().String() + "_" + sanitizeFileName(fileName)
	fullPath := filepath.Join(caseDir, storedName)

	f, err := os.Create(fullPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create document file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, data)
	if err != nil {
		_ = os.Remove(fullPath)
		return "", 0, fmt.Errorf("failed to write document file: %w", err)
	}

	return "file://" + fullPath, size, nil
}
