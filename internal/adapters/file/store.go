package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/statuml/statuml/internal/store"
	"github.com/statuml/statuml/pkg/domain"
)

// Store implements ports.ProjectStore using the local filesystem.
// It stores projects as JSON snapshot files in a configured directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".statuml/projects".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".statuml", "projects")
	}
	return &Store{BasePath: basePath}
}

// Save persists the project snapshot to a JSON file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it
// to the destination.
func (s *Store) Save(ctx context.Context, projectID string, p *domain.Project) error {
	if projectID == "" {
		return fmt.Errorf("projectID cannot be empty")
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure project directory: %w", err)
	}

	destPath := filepath.Join(s.BasePath, projectID+".json")

	data, err := store.Encode(p)
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}

	// Temp file in the same directory so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+projectID+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // Remove if still exists (not renamed)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// Close before rename (rename of an open file fails on Windows).
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if dest exists, so remove it first. The
	// delete+rename window is acceptable for builder usage compared to a
	// partial write.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing snapshot for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to snapshot: %w", err)
	}

	return nil
}

// Load retrieves the project snapshot from a JSON file.
func (s *Store) Load(ctx context.Context, projectID string) (*domain.Project, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID cannot be empty")
	}

	filePath := filepath.Join(s.BasePath, projectID+".json")

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	return store.Decode(data)
}

// Delete removes the snapshot file.
func (s *Store) Delete(ctx context.Context, projectID string) error {
	if projectID == "" {
		return fmt.Errorf("projectID cannot be empty")
	}

	filePath := filepath.Join(s.BasePath, projectID+".json")

	err := os.Remove(filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete snapshot file: %w", err)
	}

	return nil
}

// List returns all stored project IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			name := entry.Name()
			ids = append(ids, name[:len(name)-len(".json")])
		}
	}

	return ids, nil
}
