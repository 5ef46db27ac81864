package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

func TestSuggestReorderQuantity_Bounds(t *testing.T) {
	tests := []struct {
		quantity int
		minWant  int
		maxWant  int
	}{
		{quantity: 0, minWant: 5, maxWant: 14},
		{quantity: 3, minWant: 5, maxWant: 14},
		{quantity: 5, minWant: 5, maxWant: 14},
		{quantity: 20, minWant: 35, maxWant: 44},
		{quantity: 100, minWant: 195, maxWant: 204},
	}

	for _, tt := range tests {
		item := models.InventoryItem{Quantity: tt.quantity}
		low := SuggestReorderQuantity(item, fixedRand{n: 0})
		high := SuggestReorderQuantity(item, fixedRand{n: 9})

		assert.Equal(t, tt.minWant, low, "quantity %d with lowest jitter", tt.quantity)
		assert.Equal(t, tt.maxWant, high, "quantity %d with highest jitter", tt.quantity)
	}
}

func TestSuggestReorderQuantity_NeverBelowFloorAndGrows(t *testing.T) {
	prev := 0
	for q := 0; q <= 60; q++ {
		for j := 0; j < 10; j++ {
			got := SuggestReorderQuantity(models.InventoryItem{Quantity: q}, fixedRand{n: j})
			assert.GreaterOrEqual(t, got, ReorderFloor)
		}
		atMid := SuggestReorderQuantity(models.InventoryItem{Quantity: q}, fixedRand{n: 5})
		assert.GreaterOrEqual(t, atMid, prev, "suggestion must not shrink as quantity grows")
		prev = atMid
	}
}

func TestService_SuggestReorder(t *testing.T) {
	svc, _ := newTestService(t, WithRand(fixedRand{n: 7}))
	ctx := context.Background()

	item, err := svc.Create(ctx, CreateInput{Name: "Widget", Quantity: 3, Category: "Parts"})
	require.NoError(t, err)

	s, err := svc.SuggestReorder(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, s.ItemID)
	assert.Equal(t, 12, s.Quantity)
	assert.Contains(t, s.Reasoning, "Widget")
	assert.Contains(t, s.Reasoning, "12 units")

	_, err = svc.SuggestReorder(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGenerateLowStockSummary(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "All items are well-stocked!", GenerateLowStockSummary(nil))
	})

	t.Run("all well stocked", func(t *testing.T) {
		items := []models.InventoryItem{
			{Name: "A", Quantity: 50, Category: "X", Status: models.StatusInStock},
			{Name: "B", Quantity: 50, Category: "Y", Status: models.StatusInStock},
		}
		assert.Equal(t, "All items are well-stocked!", GenerateLowStockSummary(items))
	})

	t.Run("names first three", func(t *testing.T) {
		items := []models.InventoryItem{
			{Name: "Laptop", Quantity: 15, Category: "Electronics", Status: models.StatusInStock},
			{Name: "Office Chair", Quantity: 3, Category: "Furniture", Status: models.StatusInStock},
			{Name: "Printer Paper", Quantity: 0, Category: "Office Supplies", Status: models.StatusOrdered},
			{Name: "Standing Desk", Quantity: 2, Category: "Furniture", Status: models.StatusLowStock},
			{Name: "Old Monitor", Quantity: 5, Category: "Electronics", Status: models.StatusDiscontinued},
		}

		want := "Alert: 4 items need attention across 3 categories (Furniture, Office Supplies, Electronics). " +
			"Priority items: Office Chair (3 left), Printer Paper (0 left), Standing Desk (2 left)."
		assert.Equal(t, want, GenerateLowStockSummary(items))
	})

	t.Run("single item", func(t *testing.T) {
		items := []models.InventoryItem{{Name: "Widget", Quantity: 3, Category: "Parts", Status: models.StatusInStock}}
		assert.Equal(t, "Alert: 1 item needs attention across 1 category (Parts). Priority items: Widget (3 left).",
			GenerateLowStockSummary(items))
	})
}

func TestService_LowStockSummary(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	summary, err := svc.LowStockSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, WellStockedSummary, summary)

	_, err = svc.Create(ctx, CreateInput{Name: "Widget", Quantity: 3, Category: "Parts"})
	require.NoError(t, err)

	summary, err = svc.LowStockSummary(ctx)
	require.NoError(t, err)
	assert.Contains(t, summary, "Widget (3 left)")
}

func seedSearch(t *testing.T) *Service {
	t.Helper()
	svc, _ := newTestService(t)
	for _, in := range []CreateInput{
		{Name: "Laptop Computer", Quantity: 15, Category: "Electronics", Description: "High-performance laptop"},
		{Name: "Office Chair", Quantity: 3, Category: "Furniture", Description: "Ergonomic"},
		{Name: "Wireless Mouse", Quantity: 25, Category: "Electronics"},
		{Name: "Printer Paper", Quantity: 0, Category: "Office Supplies", Status: models.StatusOrdered},
	} {
		_, err := svc.Create(context.Background(), in)
		require.NoError(t, err)
	}
	return svc
}

func TestSearch(t *testing.T) {
	svc := seedSearch(t)
	ctx := context.Background()

	names := func(r ListResult) []string {
		out := make([]string, len(r.Items))
		for i, it := range r.Items {
			out[i] = it.Name
		}
		return out
	}

	tests := []struct {
		name      string
		filter    Filter
		wantNames []string
		wantTotal int
	}{
		{name: "no filter", filter: Filter{}, wantNames: []string{"Laptop Computer", "Office Chair", "Wireless Mouse", "Printer Paper"}, wantTotal: 4},
		{name: "search name case insensitive", filter: Filter{Search: "MOUSE"}, wantNames: []string{"Wireless Mouse"}, wantTotal: 1},
		{name: "search description", filter: Filter{Search: "ergonomic"}, wantNames: []string{"Office Chair"}, wantTotal: 1},
		{name: "search category", filter: Filter{Search: "office"}, wantNames: []string{"Office Chair", "Printer Paper"}, wantTotal: 2},
		{name: "status uses effective status", filter: Filter{Status: models.StatusLowStock}, wantNames: []string{"Office Chair"}, wantTotal: 1},
		{name: "status all", filter: Filter{Status: "All"}, wantNames: []string{"Laptop Computer", "Office Chair", "Wireless Mouse", "Printer Paper"}, wantTotal: 4},
		{name: "category", filter: Filter{Category: "Electronics"}, wantNames: []string{"Laptop Computer", "Wireless Mouse"}, wantTotal: 2},
		{name: "paging", filter: Filter{Offset: 1, Limit: 2}, wantNames: []string{"Office Chair", "Wireless Mouse"}, wantTotal: 4},
		{name: "offset past end", filter: Filter{Offset: 10}, wantNames: []string{}, wantTotal: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Search(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNames, names(res))
			assert.Equal(t, tt.wantTotal, res.Total)
		})
	}
}

func TestStats(t *testing.T) {
	svc := seedSearch(t)

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{
		TotalItems:    4,
		InStock:       2,
		LowStock:      2,
		Ordered:       1,
		Discontinued:  0,
		Categories:    3,
		TotalQuantity: 43,
	}, st)
}
