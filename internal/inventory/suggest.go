package inventory

import (
	"context"
	"fmt"

	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

const (
	// ReorderFloor is the smallest quantity ever suggested.
	ReorderFloor = 5
	reorderBase  = 10
	jitterSpan   = 10
)

// Suggestion is an advisory reorder quantity. It is not deterministic.
type Suggestion struct {
	ItemID    string `json:"itemId"`
	Quantity  int    `json:"suggestion"`
	Reasoning string `json:"reasoning"`
}

// SuggestReorderQuantity returns max(5, max(10, 2*quantity) + jitter) where
// jitter is drawn from [-5, 4].
func SuggestReorderQuantity(item models.InventoryItem, rnd Rand) int {
	base := max(reorderBase, item.Quantity*2)
	jitter := rnd.IntN(jitterSpan) - jitterSpan/2
	return max(ReorderFloor, base+jitter)
}

func (s *Service) SuggestReorder(ctx context.Context, id string) (Suggestion, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return Suggestion{}, err
	}

	qty := SuggestReorderQuantity(item, s.rand)
	return Suggestion{
		ItemID:    item.ID,
		Quantity:  qty,
		Reasoning: reorderReasoning(item, qty),
	}, nil
}

func reorderReasoning(item models.InventoryItem, qty int) string {
	switch item.Status {
	case models.StatusDiscontinued:
		return fmt.Sprintf("%s is discontinued; only reorder %d units if the line is being revived.", item.Name, qty)
	case models.StatusOrdered:
		return fmt.Sprintf("%s already has an order in flight; %d units would cover demand after it arrives.", item.Name, qty)
	case models.StatusLowStock:
		return fmt.Sprintf("%s is low on stock with %d units left; ordering %d units restores a safe buffer.", item.Name, item.Quantity, qty)
	}
	return fmt.Sprintf("%s has %d units on hand; %d units keeps roughly twice the current level available.", item.Name, item.Quantity, qty)
}
