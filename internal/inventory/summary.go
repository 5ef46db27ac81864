package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

const (
	WellStockedSummary = "All items are well-stocked!"
	maxPriorityItems   = 3
)

func (s *Service) LowStockSummary(ctx context.Context) (string, error) {
	items, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	return GenerateLowStockSummary(items), nil
}

// GenerateLowStockSummary describes the items needing attention, naming the
// first three in collection order.
func GenerateLowStockSummary(items []models.InventoryItem) string {
	var affected []models.InventoryItem
	for _, it := range items {
		if NeedsAttention(resolve(it)) {
			affected = append(affected, it)
		}
	}
	if len(affected) == 0 {
		return WellStockedSummary
	}

	categories := distinctCategories(affected)

	names := make([]string, 0, maxPriorityItems)
	for _, it := range affected[:min(len(affected), maxPriorityItems)] {
		names = append(names, fmt.Sprintf("%s (%d left)", it.Name, it.Quantity))
	}

	return fmt.Sprintf("Alert: %d %s attention across %d %s (%s). Priority items: %s.",
		len(affected), plural(len(affected), "item needs", "items need"),
		len(categories), plural(len(categories), "category", "categories"),
		strings.Join(categories, ", "),
		strings.Join(names, ", "),
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
