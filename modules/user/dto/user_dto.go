package dto

type NewUserRequest struct {
	Name  string `json:"name" validate:"required,notblank,min=2,max=250"`
	Email string `json:"email" validate:"required,notblank,min=6,max=254,email"`
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserShortResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
