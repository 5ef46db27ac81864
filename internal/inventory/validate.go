package inventory

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hay-kot/criterio"

	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

// CreateInput carries the fields accepted when adding an item. An empty
// Status means the caller did not choose one.
type CreateInput struct {
	Name        string
	Quantity    int
	Category    string
	Description string
	Status      models.ItemStatus
}

// Patch lists the fields to change on update. Nil fields are left untouched.
type Patch struct {
	Name        *string
	Quantity    *int
	Category    *string
	Description *string
	Status      *models.ItemStatus
}

func (in CreateInput) validate() error {
	var errs criterio.FieldErrorsBuilder
	if strings.TrimSpace(in.Name) == "" {
		errs = errs.Append("name", fmt.Errorf("name is required"))
	} else if hasControl(in.Name) {
		errs = errs.Append("name", errControlChars)
	}
	if strings.TrimSpace(in.Category) == "" {
		errs = errs.Append("category", fmt.Errorf("category is required"))
	} else if hasControl(in.Category) {
		errs = errs.Append("category", errControlChars)
	}
	if in.Quantity < 0 {
		errs = errs.Append("quantity", fmt.Errorf("quantity cannot be negative"))
	}
	if in.Status != "" && !in.Status.Valid() {
		errs = errs.Append("status", unknownStatus(in.Status))
	}
	return wrapValidation(errs.ToError())
}

func (p Patch) validate() error {
	var errs criterio.FieldErrorsBuilder
	if p.Name != nil {
		switch {
		case strings.TrimSpace(*p.Name) == "":
			errs = errs.Append("name", fmt.Errorf("name cannot be empty"))
		case hasControl(*p.Name):
			errs = errs.Append("name", errControlChars)
		}
	}
	if p.Category != nil {
		switch {
		case strings.TrimSpace(*p.Category) == "":
			errs = errs.Append("category", fmt.Errorf("category cannot be empty"))
		case hasControl(*p.Category):
			errs = errs.Append("category", errControlChars)
		}
	}
	if p.Quantity != nil && *p.Quantity < 0 {
		errs = errs.Append("quantity", fmt.Errorf("quantity cannot be negative"))
	}
	if p.Status != nil && !p.Status.Valid() {
		errs = errs.Append("status", unknownStatus(*p.Status))
	}
	return wrapValidation(errs.ToError())
}

var errControlChars = fmt.Errorf("must not contain control characters")

func hasControl(s string) bool {
	return strings.ContainsFunc(s, unicode.IsControl)
}

func unknownStatus(s models.ItemStatus) error {
	names := make([]string, len(models.Statuses))
	for i, st := range models.Statuses {
		names[i] = string(st)
	}
	return fmt.Errorf("status %q must be one of: %s", s, strings.Join(names, ", "))
}

func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
