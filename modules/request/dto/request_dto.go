package dto

import "github.com/OmatthewY/explore-with-me/core/utils"

type ParticipationRequestResponse struct {
	Created   utils.DateTime `json:"created"`
	Event     int64          `json:"event"`
	ID        int64          `json:"id"`
	Requester int64          `json:"requester"`
	Status    string         `json:"status"`
}

type StatusUpdateRequest struct {
	RequestIDs []int64 `json:"requestIds" validate:"required,min=1,dive,gt=0"`
	Status     string  `json:"status" validate:"required,oneof=CONFIRMED REJECTED"`
}

type StatusUpdateResult struct {
	ConfirmedRequests []ParticipationRequestResponse `json:"confirmedRequests"`
	RejectedRequests  []ParticipationRequestResponse `json:"rejectedRequests"`
}
