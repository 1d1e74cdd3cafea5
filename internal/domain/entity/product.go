package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the single catalog entity. Rows are never physically removed:
// Active=false marks a product as logically deleted and hides it from reads.
type Product struct {
	ID             int64           `gorm:"primaryKey;autoIncrement"`
	Name           string          `gorm:"type:varchar(255);not null"`
	Price          decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	ImageReference *string         `gorm:"type:varchar(255)"`
	Active         bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}

// ProductChanges is a validated partial update. A nil field means "leave as is".
// ImageSet distinguishes "clear the image" (true, nil reference) from
// "don't touch the image" (false).
type ProductChanges struct {
	Name           *string
	Price          *decimal.Decimal
	ImageReference *string
	ImageSet       bool
}

// Fields returns the column/value pairs to persist.
func (c ProductChanges) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if c.Name != nil {
		fields["name"] = *c.Name
	}
	if c.Price != nil {
		fields["price"] = *c.Price
	}
	if c.ImageSet {
		fields["image_reference"] = c.ImageReference
	}
	return fields
}

func (c ProductChanges) Empty() bool {
	return c.Name == nil && c.Price == nil && !c.ImageSet
}

// ProductStats aggregates prices over active products.
type ProductStats struct {
	Total        int64
	AveragePrice decimal.Decimal
	MinPrice     decimal.Decimal
	MaxPrice     decimal.Decimal
}
