package inventory

import (
	"context"

	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

// Stats aggregates the collection for the dashboard.
type Stats struct {
	TotalItems    int `json:"totalItems"`
	InStock       int `json:"inStock"`
	LowStock      int `json:"lowStock"`
	Ordered       int `json:"ordered"`
	Discontinued  int `json:"discontinued"`
	Categories    int `json:"categories"`
	TotalQuantity int `json:"totalQuantity"`
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	items, err := s.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(items), nil
}

// ComputeStats expects items that already carry their effective status.
func ComputeStats(items []models.InventoryItem) Stats {
	st := Stats{TotalItems: len(items)}
	for _, it := range items {
		st.TotalQuantity += it.Quantity
		if it.Status == models.StatusInStock && it.Quantity > LowStockThreshold {
			st.InStock++
		}
		if NeedsAttention(it) {
			st.LowStock++
		}
		switch it.Status {
		case models.StatusOrdered:
			st.Ordered++
		case models.StatusDiscontinued:
			st.Discontinued++
		}
	}
	st.Categories = len(distinctCategories(items))
	return st
}
