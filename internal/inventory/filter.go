package inventory

import (
	"context"
	"strings"

	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

// Filter narrows a listing. Zero values match everything; Status "All" is
// treated like an empty status.
type Filter struct {
	Search   string
	Status   models.ItemStatus
	Category string
	Offset   int
	Limit    int
}

type ListResult struct {
	Items []models.InventoryItem
	Total int
}

// Search lists items matching f. Total counts every match before paging.
func (s *Service) Search(ctx context.Context, f Filter) (ListResult, error) {
	items, err := s.List(ctx)
	if err != nil {
		return ListResult{}, err
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	matched := make([]models.InventoryItem, 0, len(items))
	for _, it := range items {
		if search != "" && !containsFold(it, search) {
			continue
		}
		if f.Status != "" && f.Status != "All" && it.Status != f.Status {
			continue
		}
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		matched = append(matched, it)
	}

	result := ListResult{Total: len(matched)}
	start := min(max(f.Offset, 0), len(matched))
	end := len(matched)
	if f.Limit > 0 {
		end = min(start+f.Limit, len(matched))
	}
	result.Items = matched[start:end]
	return result, nil
}

func containsFold(it models.InventoryItem, needle string) bool {
	return strings.Contains(strings.ToLower(it.Name), needle) ||
		strings.Contains(strings.ToLower(it.Description), needle) ||
		strings.Contains(strings.ToLower(it.Category), needle)
}
