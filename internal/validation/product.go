// Package validation normalizes and checks raw product input before it may
// touch storage. It is pure: no I/O, no state.
package validation

import (
	"html"
	"strings"
	"unicode/utf8"

	"fonda-catalogo/internal/delivery/dto"
	"fonda-catalogo/internal/domain/entity"

	"github.com/shopspring/decimal"
)

const maxNameLength = 255

// ValidationError aggregates every field violation of one request instead of
// stopping at the first.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid data: " + strings.Join(e.Messages, ", ")
}

// ValidateProduct checks the payload and returns the change set that is safe
// to persist. With requireAll (creation) name and price must both be present;
// without it (update) absent fields are simply left out of the result.
// Violations accumulate in input order: name errors before price errors.
func ValidateProduct(payload dto.ProductPayload, requireAll bool) (entity.ProductChanges, error) {
	var messages []string
	var changes entity.ProductChanges

	if payload.Name != nil {
		name := strings.TrimSpace(*payload.Name)
		switch {
		case name == "":
			messages = append(messages, "name is required")
		case utf8.RuneCountInString(name) > maxNameLength:
			messages = append(messages, "name is too long (maximum 255 characters)")
		default:
			escaped := html.EscapeString(name)
			changes.Name = &escaped
		}
	} else if requireAll {
		messages = append(messages, "name is required")
	}

	if payload.Price != nil {
		price, err := decimal.NewFromString(strings.TrimSpace(*payload.Price))
		switch {
		case err != nil:
			messages = append(messages, "price must be numeric")
		case price.IsNegative():
			messages = append(messages, "price must not be negative")
		default:
			rounded := price.Round(2)
			changes.Price = &rounded
		}
	} else if requireAll {
		messages = append(messages, "price is required")
	}

	if payload.ImageProvided {
		changes.ImageSet = true
		if payload.ImageReference != nil {
			ref := strings.TrimSpace(*payload.ImageReference)
			if ref != "" {
				changes.ImageReference = &ref
			}
		}
	}

	if len(messages) > 0 {
		return entity.ProductChanges{}, &ValidationError{Messages: messages}
	}
	return changes, nil
}
