package handlers

import (
	"github.com/rogerio-castellano/smart-inventory/internal/inventory"
	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

// CreateItemRequest is the body of POST /api/inventory. Quantity is a pointer
// so a missing value can be told apart from zero.
type CreateItemRequest struct {
	Name        string `json:"name"`
	Quantity    *int   `json:"quantity"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// UpdateItemRequest is the body of PUT /api/inventory/{id}. Omitted fields keep
// their stored values.
type UpdateItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type ItemResponse = models.InventoryItem

type ItemValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

type ErrorResponse struct {
	Error  string                `json:"error"`
	Fields []ItemValidationError `json:"fields,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SuggestionResponse = inventory.Suggestion

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type StatsResponse = inventory.Stats

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

type LoginResult struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
