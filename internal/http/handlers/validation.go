package handlers

import (
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/rogerio-castellano/smart-inventory/internal/inventory"
	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

const missingFieldsMessage = "Missing required fields: name, quantity, category"

// hasRequiredFields reports whether a create request names every mandatory
// field. Content rules are enforced by the engine.
func hasRequiredFields(req CreateItemRequest) bool {
	return strings.TrimSpace(req.Name) != "" &&
		req.Quantity != nil &&
		strings.TrimSpace(req.Category) != ""
}

func toValidationErrors(fieldErrs criterio.FieldErrors) []ItemValidationError {
	out := make([]ItemValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		desc := ""
		if fe.Err != nil {
			desc = fe.Err.Error()
		}
		out = append(out, ItemValidationError{Field: fe.Field, Description: desc})
	}
	return out
}

func (req CreateItemRequest) toInput() inventory.CreateInput {
	return inventory.CreateInput{
		Name:        strings.TrimSpace(req.Name),
		Quantity:    *req.Quantity,
		Category:    strings.TrimSpace(req.Category),
		Description: req.Description,
		Status:      parseStatus(req.Status),
	}
}

func (req UpdateItemRequest) toPatch() inventory.Patch {
	patch := inventory.Patch{
		Name:        trimmed(req.Name),
		Quantity:    req.Quantity,
		Category:    trimmed(req.Category),
		Description: req.Description,
	}
	if req.Status != nil {
		st := parseStatus(*req.Status)
		patch.Status = &st
	}
	return patch
}

// parseStatus canonicalises known spellings; anything else is passed through
// so the engine reports it as a validation error.
func parseStatus(raw string) models.ItemStatus {
	if raw == "" {
		return ""
	}
	st, _ := models.ParseStatus(raw)
	return st
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
