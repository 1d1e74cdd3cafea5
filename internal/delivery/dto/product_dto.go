package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

// ActionRequest is the write-endpoint envelope: one POST route dispatching on
// the action field.
type ActionRequest struct {
	Action string         `json:"action" validate:"required"`
	ID     int64          `json:"id"`
	Data   ProductPayload `json:"data"`
}

// ProductPayload is the raw, unvalidated product input. Unmarshalling tracks
// which keys were present: a JSON null for name or price counts as absent,
// while the image_reference key counts as provided even when null, since the
// key itself signals intent to change the image.
type ProductPayload struct {
	Name           *string
	Price          *string
	ImageReference *string
	ImageProvided  bool
}

var nullLiteral = []byte("null")

func (p *ProductPayload) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["name"]; ok && !bytes.Equal(v, nullLiteral) {
		var name string
		if err := json.Unmarshal(v, &name); err != nil {
			return err
		}
		p.Name = &name
	}

	if v, ok := raw["price"]; ok && !bytes.Equal(v, nullLiteral) {
		// Accept both a JSON number and a numeric string; the validator
		// decides whether the token actually parses.
		var price string
		if err := json.Unmarshal(v, &price); err != nil {
			price = string(v)
		}
		p.Price = &price
	}

	if v, ok := raw["image_reference"]; ok {
		p.ImageProvided = true
		if err := json.Unmarshal(v, &p.ImageReference); err != nil {
			return err
		}
	}

	return nil
}

// Response DTOs

type ProductResponse struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	ImageReference *string         `json:"image_reference"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type ProductStatsResponse struct {
	TotalProducts int64           `json:"total_products"`
	AveragePrice  decimal.Decimal `json:"average_price"`
	MinPrice      decimal.Decimal `json:"min_price"`
	MaxPrice      decimal.Decimal `json:"max_price"`
}

type CreateResult struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

type ActionResult struct {
	Success bool `json:"success"`
}

type UploadResult struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
}
