// Copyright (c) 2026 Aperture. All rights reserved.

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const credentialFileName = "admin.json"

// credentialDocument is the on-disk shape of the admin credential file.
type credentialDocument struct {
	PasswordHash string `json:"password_hash"`
}

// FileCredentialRepository implements CredentialRepository as a JSON file
// in the data directory, sibling to the image record file.
type FileCredentialRepository struct {
	path string
}

// NewFileCredentialRepository creates a file-backed CredentialRepository
// rooted at dataDir.
func NewFileCredentialRepository(dataDir string) *FileCredentialRepository {
	return &FileCredentialRepository{path: filepath.Join(dataDir, credentialFileName)}
}

// Get reads the stored hash, returning ErrNoCredential when the file is
// absent or holds no hash.
func (repository *FileCredentialRepository) Get(context context.Context) (string, error) {
	data, err := os.ReadFile(repository.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoCredential
		}
		return "", fmt.Errorf("auth: failed to read credential file: %w", err)
	}

	var document credentialDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return "", fmt.Errorf("auth: corrupt credential file %s: %w", repository.path, err)
	}
	if document.PasswordHash == "" {
		return "", ErrNoCredential
	}
	return document.PasswordHash, nil
}

// Set writes the credential file, creating the data directory if needed.
// Mode 0600: the hash is secret material.
func (repository *FileCredentialRepository) Set(context context.Context, hash string) error {
	if err := os.MkdirAll(filepath.Dir(repository.path), 0o755); err != nil {
		return fmt.Errorf("auth: failed to create data dir: %w", err)
	}

	data, err := json.MarshalIndent(credentialDocument{PasswordHash: hash}, "", "  ")
	if err != nil {
		return fmt.Errorf("auth: failed to encode credential: %w", err)
	}

	if err := os.WriteFile(repository.path, data, 0o600); err != nil {
		return fmt.Errorf("auth: failed to write credential file: %w", err)
	}
	return nil
}
