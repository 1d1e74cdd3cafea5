package converter

import (
	"fonda-catalogo/internal/delivery/dto"
	"fonda-catalogo/internal/domain/entity"
)

func ProductToResponse(product *entity.Product) *dto.ProductResponse {
	if product == nil {
		return nil
	}

	return &dto.ProductResponse{
		ID:             product.ID,
		Name:           product.Name,
		Price:          product.Price,
		ImageReference: product.ImageReference,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
}

func ProductsToResponses(products []entity.Product) []dto.ProductResponse {
	responses := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, *ProductToResponse(&products[i]))
	}
	return responses
}

func StatsToResponse(stats *entity.ProductStats) *dto.ProductStatsResponse {
	if stats == nil {
		return nil
	}

	return &dto.ProductStatsResponse{
		TotalProducts: stats.Total,
		AveragePrice:  stats.AveragePrice,
		MinPrice:      stats.MinPrice,
		MaxPrice:      stats.MaxPrice,
	}
}
