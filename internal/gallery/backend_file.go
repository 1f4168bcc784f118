package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// recordFileName is the fixed name of the local JSON record file inside
// the configured data directory.
const recordFileName = "images.json"

// FileBackend persists the record set as a single JSON array in a local
// file, rewritten wholesale on every mutation. It is the fallback backend
// when the remote key-value service is unconfigured or failing.
type FileBackend struct {
	path string
}

// NewFileBackend creates a FileBackend rooted at dataDir.
func NewFileBackend(dataDir string) *FileBackend {
	return &FileBackend{path: filepath.Join(dataDir, recordFileName)}
}

func (backend *FileBackend) Name() string { return "file" }

// Load reads the record file, initializing it to an empty array on first use.
func (backend *FileBackend) Load(ctx context.Context) ([]ImageRecord, error) {
	if err := backend.ensure(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(backend.path)
	if err != nil {
		return nil, fmt.Errorf("gallery: failed to read record file: %w", err)
	}
	if len(data) == 0 {
		return []ImageRecord{}, nil
	}

	var records []ImageRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("gallery: corrupt record file %s: %w", backend.path, err)
	}
	if records == nil {
		records = []ImageRecord{}
	}
	return records, nil
}

// Save rewrites the record file with the given set.
func (backend *FileBackend) Save(ctx context.Context, records []ImageRecord) error {
	if err := backend.ensure(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("gallery: failed to encode records: %w", err)
	}

	if err := os.WriteFile(backend.path, data, 0o644); err != nil {
		return fmt.Errorf("gallery: failed to write record file: %w", err)
	}
	return nil
}

// ensure creates the data directory and an empty record file if absent.
func (backend *FileBackend) ensure() error {
	if err := os.MkdirAll(filepath.Dir(backend.path), 0o755); err != nil {
		return fmt.Errorf("gallery: failed to create data dir: %w", err)
	}

	if _, err := os.Stat(backend.path); os.IsNotExist(err) {
		if err := os.WriteFile(backend.path, []byte("[]"), 0o644); err != nil {
			return fmt.Errorf("gallery: failed to initialize record file: %w", err)
		}
	}
	return nil
}
