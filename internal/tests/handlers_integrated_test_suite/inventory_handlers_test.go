package handlers_integrated_test_suite

import (
	"encoding/json"
	"net/http"
	"os"
	"sync"
	"testing"

	handler "github.com/rogerio-castellano/smart-inventory/internal/http/handlers"
	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

func TestItemLifecycle(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			e := newEnv(t, b.cfg(t))

			w := e.do(http.MethodPost, "/api/inventory", handler.CreateItemRequest{
				Name: "Widget", Quantity: intPtr(3), Category: "Parts", Description: "steel",
			})
			if w.Code != http.StatusCreated {
				t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
			}
			created := decode[handler.ItemResponse](t, w)
			if created.Status != models.StatusLowStock {
				t.Errorf("expected %q, got %q", models.StatusLowStock, created.Status)
			}

			w = e.do(http.MethodPut, "/api/inventory/"+created.ID, handler.UpdateItemRequest{Quantity: intPtr(25)})
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", w.Code)
			}
			updated := decode[handler.ItemResponse](t, w)
			if updated.Quantity != 25 || updated.Description != "steel" {
				t.Errorf("unexpected update result %+v", updated)
			}

			w = e.do(http.MethodGet, "/api/inventory/"+created.ID, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", w.Code)
			}
			got := decode[handler.ItemResponse](t, w)
			if !got.CreatedAt.Equal(created.CreatedAt) {
				t.Errorf("createdAt changed across storage: %v vs %v", got.CreatedAt, created.CreatedAt)
			}

			w = e.do(http.MethodDelete, "/api/inventory/"+created.ID, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", w.Code)
			}
			w = e.do(http.MethodDelete, "/api/inventory/"+created.ID, nil)
			if w.Code != http.StatusNotFound {
				t.Errorf("expected 404 on second delete, got %d", w.Code)
			}
		})
	}
}

func TestItemsSurviveRestart(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			cfg := b.cfg(t)
			first := newEnv(t, cfg)

			for _, name := range []string{"Alpha", "Beta", "Gamma"} {
				w := first.do(http.MethodPost, "/api/inventory", handler.CreateItemRequest{
					Name: name, Quantity: intPtr(10), Category: "Misc",
				})
				if w.Code != http.StatusCreated {
					t.Fatalf("expected 201 Created, got %d", w.Code)
				}
			}

			second := newEnv(t, cfg)
			w := second.do(http.MethodGet, "/api/inventory", nil)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", w.Code)
			}
			items := decode[[]handler.ItemResponse](t, w)
			if len(items) != 3 {
				t.Fatalf("expected 3 items after restart, got %d", len(items))
			}
			for i, name := range []string{"Alpha", "Beta", "Gamma"} {
				if items[i].Name != name {
					t.Errorf("expected items[%d] to be %q, got %q", i, name, items[i].Name)
				}
			}
		})
	}
}

func TestConcurrentUpdateAndDelete_FileStaysValid(t *testing.T) {
	cfg := backends()[0].cfg(t)
	e := newEnv(t, cfg)

	w := e.do(http.MethodPost, "/api/inventory", handler.CreateItemRequest{Name: "Contested", Quantity: intPtr(10), Category: "Misc"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}
	created := decode[handler.ItemResponse](t, w)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			e.do(http.MethodPut, "/api/inventory/"+created.ID, handler.UpdateItemRequest{Quantity: intPtr(4)})
		}()
		go func() {
			defer wg.Done()
			e.do(http.MethodDelete, "/api/inventory/"+created.ID, nil)
		}()
	}
	wg.Wait()

	raw, err := os.ReadFile(cfg.File.Path)
	if err != nil {
		t.Fatalf("could not read data file: %v", err)
	}
	var onDisk []models.InventoryItem
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Fatalf("data file is not valid JSON: %v", err)
	}
	if len(onDisk) != 0 {
		t.Errorf("expected the item to be gone, file holds %d items", len(onDisk))
	}

	w = e.do(http.MethodGet, "/api/inventory/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
