package usecase

import (
	"context"
	"errors"

	"fonda-catalogo/internal/converter"
	"fonda-catalogo/internal/delivery/dto"
	"fonda-catalogo/internal/domain/entity"
	"fonda-catalogo/internal/domain/repository"
	"fonda-catalogo/internal/service"
	"fonda-catalogo/internal/validation"

	"github.com/sirupsen/logrus"
)

var ErrProductNotFound = errors.New("product not found")

type ProductUsecase interface {
	List(ctx context.Context) ([]dto.ProductResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error)
	Create(ctx context.Context, payload dto.ProductPayload) (int64, error)
	Update(ctx context.Context, id int64, payload dto.ProductPayload) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Stats(ctx context.Context) (*dto.ProductStatsResponse, error)
}

type productUsecase struct {
	log         *logrus.Logger
	productRepo repository.ProductRepository
	cache       *service.CatalogCache
}

func NewProductUsecase(log *logrus.Logger, productRepo repository.ProductRepository, cache *service.CatalogCache) ProductUsecase {
	return &productUsecase{
		log:         log,
		productRepo: productRepo,
		cache:       cache,
	}
}

func (u *productUsecase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	if products, ok := u.cache.GetProducts(ctx); ok {
		return products, nil
	}

	products, err := u.productRepo.ListActive(ctx)
	if err != nil {
		u.log.Warnf("Failed to list products: %+v", err)
		return nil, err
	}

	responses := converter.ProductsToResponses(products)
	u.cache.SetProducts(ctx, responses)
	return responses, nil
}

func (u *productUsecase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := u.productRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find product %d: %+v", id, err)
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	return converter.ProductToResponse(product), nil
}

func (u *productUsecase) Create(ctx context.Context, payload dto.ProductPayload) (int64, error) {
	changes, err := validation.ValidateProduct(payload, true)
	if err != nil {
		return 0, err
	}

	product := &entity.Product{
		Name:           *changes.Name,
		Price:          *changes.Price,
		ImageReference: changes.ImageReference,
		Active:         true,
	}
	if err := u.productRepo.Insert(ctx, product); err != nil {
		u.log.Warnf("Failed to create product: %+v", err)
		return 0, err
	}

	u.cache.Invalidate(ctx)
	return product.ID, nil
}

func (u *productUsecase) Update(ctx context.Context, id int64, payload dto.ProductPayload) (bool, error) {
	product, err := u.productRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find product %d: %+v", id, err)
		return false, err
	}
	if product == nil {
		return false, ErrProductNotFound
	}

	changes, err := validation.ValidateProduct(payload, false)
	if err != nil {
		return false, err
	}
	if changes.Empty() {
		return false, repository.ErrNoFieldsToUpdate
	}

	// The existence check and the update are not atomic; a concurrent soft
	// delete in between simply makes the update report zero affected rows.
	rows, err := u.productRepo.UpdateFields(ctx, id, changes)
	if err != nil {
		u.log.Warnf("Failed to update product %d: %+v", id, err)
		return false, err
	}

	u.cache.Invalidate(ctx)
	return rows > 0, nil
}

func (u *productUsecase) Delete(ctx context.Context, id int64) (bool, error) {
	product, err := u.productRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find product %d: %+v", id, err)
		return false, err
	}
	if product == nil {
		return false, ErrProductNotFound
	}

	rows, err := u.productRepo.SoftDelete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete product %d: %+v", id, err)
		return false, err
	}

	u.cache.Invalidate(ctx)
	return rows > 0, nil
}

// Stats never fails: on a store error it degrades to zeroed values so the
// dashboard keeps rendering.
func (u *productUsecase) Stats(ctx context.Context) (*dto.ProductStatsResponse, error) {
	stats, err := u.productRepo.Stats(ctx)
	if err != nil {
		u.log.Warnf("Failed to compute product stats, returning zeroes: %+v", err)
		return converter.StatsToResponse(&entity.ProductStats{}), nil
	}

	return converter.StatsToResponse(stats), nil
}
