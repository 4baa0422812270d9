package mapper

import (
	"github.com/OmatthewY/explore-with-me/core/utils"
	"github.com/OmatthewY/explore-with-me/modules/request/dto"
	"github.com/OmatthewY/explore-with-me/modules/request/entity"
)

func ToRequestResponse(req *entity.Request) *dto.ParticipationRequestResponse {
	return &dto.ParticipationRequestResponse{
		Created:   utils.NewDateTime(req.Created),
		Event:     req.EventID,
		ID:        req.ID,
		Requester: req.RequesterID,
		Status:    string(req.Status),
	}
}

func ToRequestResponses(requests []entity.Request) []dto.ParticipationRequestResponse {
	result := make([]dto.ParticipationRequestResponse, len(requests))
	for i := range requests {
		result[i] = *ToRequestResponse(&requests[i])
	}
	return result
}
