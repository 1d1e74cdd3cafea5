package repository

import (
	"context"
	"errors"

	"fonda-catalogo/internal/domain/entity"
)

// ErrNoFieldsToUpdate is returned by UpdateFields when the change set is empty.
var ErrNoFieldsToUpdate = errors.New("no fields to update")

type ProductRepository interface {
	// ListActive returns active products ordered by creation time, newest first.
	ListActive(ctx context.Context) ([]entity.Product, error)
	// FindByID returns the active product with the given id, or nil if there is
	// none. Soft-deleted rows are invisible here, for reads and existence
	// checks alike.
	FindByID(ctx context.Context, id int64) (*entity.Product, error)
	Insert(ctx context.Context, product *entity.Product) error
	// UpdateFields applies a partial update and refreshes updated_at. It
	// returns the number of affected rows, or ErrNoFieldsToUpdate when the
	// change set is empty.
	UpdateFields(ctx context.Context, id int64, changes entity.ProductChanges) (int64, error)
	// SoftDelete marks an active product inactive and refreshes updated_at.
	SoftDelete(ctx context.Context, id int64) (int64, error)
	Stats(ctx context.Context) (*entity.ProductStats, error)
}
