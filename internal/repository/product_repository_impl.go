package repository

import (
	"context"
	"errors"

	"fonda-catalogo/internal/domain/entity"
	domainRepo "fonda-catalogo/internal/domain/repository"

	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) ListActive(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Insert(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) UpdateFields(ctx context.Context, id int64, changes entity.ProductChanges) (int64, error) {
	fields := changes.Fields()
	if len(fields) == 0 {
		return 0, domainRepo.ErrNoFieldsToUpdate
	}

	// GORM refreshes updated_at on map updates because the model carries an
	// autoUpdateTime field.
	tx := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Where("id = ?", id).
		Updates(fields)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (r *productRepository) SoftDelete(ctx context.Context, id int64) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Where("id = ? AND active = ?", id, true).
		Updates(map[string]interface{}{"active": false})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (r *productRepository) Stats(ctx context.Context) (*entity.ProductStats, error) {
	var stats entity.ProductStats
	err := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Select("COUNT(*) AS total, " +
			"COALESCE(ROUND(AVG(price), 2), 0) AS average_price, " +
			"COALESCE(MIN(price), 0) AS min_price, " +
			"COALESCE(MAX(price), 0) AS max_price").
		Where("active = ?", true).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
