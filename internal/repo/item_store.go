package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

// ItemStore persists the whole inventory collection at once.
//
// Load returns the items in stored order. Save replaces the stored collection
// with items; a failed Save must leave the previous collection readable.
type ItemStore interface {
	Load(ctx context.Context) ([]models.InventoryItem, error)
	Save(ctx context.Context, items []models.InventoryItem) error
}

var ErrUnknownDriver = errors.New("unknown storage driver")

func cloneItems(items []models.InventoryItem) []models.InventoryItem {
	out := make([]models.InventoryItem, len(items))
	copy(out, items)
	return out
}
