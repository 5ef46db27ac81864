package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/smart-inventory/internal/inventory"
)

// ListItemsHandler godoc
// @Summary List inventory items
// @Description Returns items with their effective status. X-Total-Count carries the number of matches before paging.
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param search query string false "Case-insensitive match on name, description or category"
// @Param status query string false "Status filter; All or empty for any"
// @Param category query string false "Exact category"
// @Param offset query int false "Offset"
// @Param limit query int false "Limit"
// @Success 200 {array} ItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/inventory [get]
func (s *Server) ListItemsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	offset, err1 := queryInt(q.Get("offset"))
	limit, err2 := queryInt(q.Get("limit"))
	if err1 != nil || err2 != nil || offset < 0 || limit < 0 {
		WriteError(w, http.StatusBadRequest, "Invalid paging parameters")
		return
	}

	result, err := s.items.Search(r.Context(), inventory.Filter{
		Search:   q.Get("search"),
		Status:   parseStatus(q.Get("status")),
		Category: q.Get("category"),
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	headers := http.Header{}
	headers.Set("X-Total-Count", strconv.Itoa(result.Total))
	s.respond(w, http.StatusOK, result.Items, headers)
}

// GetItemHandler godoc
// @Summary Get an item by ID
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} ItemResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/inventory/{id} [get]
func (s *Server) GetItemHandler(w http.ResponseWriter, r *http.Request) {
	item, err := s.items.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.respond(w, http.StatusOK, item)
}

// CreateItemHandler godoc
// @Summary Create an inventory item
// @Description Low quantities are flagged Low Stock unless the status is Ordered or Discontinued
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body CreateItemRequest true "Item to add"
// @Success 201 {object} ItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/inventory [post]
func (s *Server) CreateItemHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := readJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if !hasRequiredFields(req) {
		WriteError(w, http.StatusBadRequest, missingFieldsMessage)
		return
	}

	created, err := s.items.Create(r.Context(), req.toInput())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, created)
}

// UpdateItemHandler godoc
// @Summary Update an inventory item
// @Description Omitted fields keep their values; status is re-resolved against the new quantity
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param item body UpdateItemRequest true "Fields to change"
// @Success 200 {object} ItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/inventory/{id} [put]
func (s *Server) UpdateItemHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemRequest
	if err := readJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	updated, err := s.items.Update(r.Context(), chi.URLParam(r, "id"), req.toPatch())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.respond(w, http.StatusOK, updated)
}

// DeleteItemHandler godoc
// @Summary Delete an inventory item
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/inventory/{id} [delete]
func (s *Server) DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.items.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if !deleted {
		WriteError(w, http.StatusNotFound, "Item not found")
		return
	}
	s.respond(w, http.StatusOK, MessageResponse{Message: "Item deleted successfully"})
}

// SuggestReorderHandler godoc
// @Summary Suggest a reorder quantity
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} SuggestionResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/inventory/{id}/suggest-reorder [get]
func (s *Server) SuggestReorderHandler(w http.ResponseWriter, r *http.Request) {
	suggestion, err := s.items.SuggestReorder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.respond(w, http.StatusOK, suggestion)
}

func queryInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
