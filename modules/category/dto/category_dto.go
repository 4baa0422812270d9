package dto

type CategoryRequest struct {
	Name string `json:"name" validate:"required,notblank,min=1,max=50"`
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
