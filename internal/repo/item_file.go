package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

// FileItemStore keeps the collection as a pretty-printed JSON array on disk.
// The document stays operator-editable; a missing or unreadable document is
// treated as an empty inventory.
type FileItemStore struct {
	path string
	log  zerolog.Logger
}

func NewFileItemStore(path string, logger zerolog.Logger) *FileItemStore {
	return &FileItemStore{
		path: path,
		log:  logger.With().Str("store", "file").Str("path", path).Logger(),
	}
}

func (s *FileItemStore) Path() string {
	return s.path
}

func (s *FileItemStore) Load(_ context.Context) ([]models.InventoryItem, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Debug().Msg("inventory file not found, starting empty")
			return []models.InventoryItem{}, nil
		}
		s.log.Error().Err(err).Msg("failed to read inventory file")
		return []models.InventoryItem{}, nil
	}

	var items []models.InventoryItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.Error().Err(err).Msg("inventory file is not a valid JSON array")
		return []models.InventoryItem{}, nil
	}
	if items == nil {
		items = []models.InventoryItem{}
	}
	return items, nil
}

func (s *FileItemStore) Save(_ context.Context, items []models.InventoryItem) error {
	if items == nil {
		items = []models.InventoryItem{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".inventory-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace inventory file: %w", err)
	}
	return nil
}
