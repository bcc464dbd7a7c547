// Package file persists tracked configurations as one JSON document per user.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/renameio/v2"

	"github.com/rios0rios0/releasewatch/internal/domain/entities"
	"github.com/rios0rios0/releasewatch/internal/domain/repositories"
)

const (
	backendName = "file"
	configsFile = "configs.json"
	dirMode     = 0o750
	fileMode    = 0o600
)

// ErrInvalidUserID is returned for user IDs that do not name a single
// directory below the storage root.
var ErrInvalidUserID = errors.New("invalid user id")

// StateRepository stores each user's list at <root>/<userID>/configs.json.
// Writes replace the file atomically.
type StateRepository struct {
	root string
	mu   sync.Mutex
}

// NewStateRepository creates the root directory if needed.
func NewStateRepository(root string) (repositories.StateRepository, error) {
	if err := os.MkdirAll(root, dirMode); err != nil {
		return nil, fmt.Errorf("failed to create state directory %q: %w", root, err)
	}
	return &StateRepository{root: root}, nil
}

func (r *StateRepository) Name() string { return backendName }

func (r *StateRepository) Load(_ context.Context, userID string) ([]entities.TrackedConfiguration, error) {
	path, err := r.userFile(userID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []entities.TrackedConfiguration{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load state of user %q: %w", userID, err)
	}

	configs := []entities.TrackedConfiguration{}
	if unmarshalErr := json.Unmarshal(data, &configs); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to decode state of user %q: %w", userID, unmarshalErr)
	}
	return configs, nil
}

func (r *StateRepository) Save(
	_ context.Context,
	userID string,
	configs []entities.TrackedConfiguration,
) error {
	path, err := r.userFile(userID)
	if err != nil {
		return err
	}
	if configs == nil {
		configs = []entities.TrackedConfiguration{}
	}
	data, err := json.MarshalIndent(configs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state of user %q: %w", userID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if mkdirErr := os.MkdirAll(filepath.Dir(path), dirMode); mkdirErr != nil {
		return fmt.Errorf("failed to create directory of user %q: %w", userID, mkdirErr)
	}
	if writeErr := renameio.WriteFile(path, data, fileMode); writeErr != nil {
		return fmt.Errorf("failed to save state of user %q: %w", userID, writeErr)
	}
	return nil
}

// Users returns the users that have a stored list, sorted ascending.
func (r *StateRepository) Users(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var users []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path, pathErr := r.userFile(entry.Name())
		if pathErr != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		users = append(users, entry.Name())
	}
	sort.Strings(users)
	return users, nil
}

func (r *StateRepository) Close() error { return nil }

func (r *StateRepository) userFile(userID string) (string, error) {
	if userID == "" || userID == "." || userID == ".." || strings.ContainsAny(userID, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidUserID, userID)
	}
	return filepath.Join(r.root, userID, configsFile), nil
}
