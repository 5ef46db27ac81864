package inventory

import "github.com/rogerio-castellano/smart-inventory/internal/models"

// LowStockThreshold is the inclusive quantity at or below which an item is
// considered low on stock.
const LowStockThreshold = 5

// ResolveStatus returns the effective status for an item holding quantity
// units with the given stored status. Ordered and Discontinued are kept as is.
func ResolveStatus(quantity int, stored models.ItemStatus) models.ItemStatus {
	if quantity <= LowStockThreshold && !stored.Sticky() {
		return models.StatusLowStock
	}
	return stored
}

// NeedsAttention reports whether item counts as low stock in summaries and
// stats. Sticky items with few units on hand are included.
func NeedsAttention(item models.InventoryItem) bool {
	return item.Status == models.StatusLowStock || item.Quantity <= LowStockThreshold
}

func resolve(item models.InventoryItem) models.InventoryItem {
	item.Status = ResolveStatus(item.Quantity, item.Status)
	return item
}
