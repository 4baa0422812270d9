package mapper

import (
	"strings"

	"github.com/OmatthewY/explore-with-me/modules/user/dto"
	"github.com/OmatthewY/explore-with-me/modules/user/entity"
)

func ToUserEntity(req *dto.NewUserRequest) *entity.User {
	return &entity.User{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
	}
}

func ToUserResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

func ToUserResponses(users []entity.User) []dto.UserResponse {
	result := make([]dto.UserResponse, len(users))
	for i := range users {
		result[i] = *ToUserResponse(&users[i])
	}
	return result
}
