package mapper

import (
	"github.com/OmatthewY/explore-with-me/core/utils"
	"github.com/OmatthewY/explore-with-me/modules/rating/dto"
	"github.com/OmatthewY/explore-with-me/modules/rating/entity"
)

func ToRatingResponse(rating *entity.Rating) *dto.RatingResponse {
	return &dto.RatingResponse{
		ID:      rating.ID,
		UserID:  rating.UserID,
		EventID: rating.EventID,
		IsLike:  rating.Value == entity.Like,
		Created: utils.NewDateTime(rating.Created),
	}
}

func ToRatingResponses(ratings []entity.Rating) []dto.RatingResponse {
	result := make([]dto.RatingResponse, len(ratings))
	for i := range ratings {
		result[i] = *ToRatingResponse(&ratings[i])
	}
	return result
}
