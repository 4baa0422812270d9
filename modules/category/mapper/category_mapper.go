package mapper

import (
	"strings"

	"github.com/OmatthewY/explore-with-me/modules/category/dto"
	"github.com/OmatthewY/explore-with-me/modules/category/entity"
)

func ToCategoryEntity(req *dto.CategoryRequest) *entity.Category {
	return &entity.Category{Name: strings.TrimSpace(req.Name)}
}

func ToCategoryResponse(category *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:   category.ID,
		Name: category.Name,
	}
}

func ToCategoryResponses(categories []entity.Category) []dto.CategoryResponse {
	result := make([]dto.CategoryResponse, len(categories))
	for i := range categories {
		result[i] = *ToCategoryResponse(&categories[i])
	}
	return result
}
