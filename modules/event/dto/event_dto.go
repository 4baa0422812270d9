package dto

import (
	"time"

	"github.com/OmatthewY/explore-with-me/core/utils"
	categorydto "github.com/OmatthewY/explore-with-me/modules/category/dto"
	userdto "github.com/OmatthewY/explore-with-me/modules/user/dto"
)

const (
	StateActionSendToReview = "SEND_TO_REVIEW"
	StateActionCancelReview = "CANCEL_REVIEW"
	StateActionPublish      = "PUBLISH_EVENT"
	StateActionReject       = "REJECT_EVENT"
)

type SortKey string

const (
	SortNone      SortKey = ""
	SortEventDate SortKey = "EVENT_DATE"
	SortViews     SortKey = "VIEWS"
	SortRating    SortKey = "TOP_RATING"
)

func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortNone, SortEventDate, SortViews, SortRating:
		return SortKey(s), true
	}
	return "", false
}

type LocationRequest struct {
	Lat *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lon *float64 `json:"lon" validate:"required,gte=-180,lte=180"`
}

type LocationResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type NewEventRequest struct {
	Annotation        string           `json:"annotation" validate:"required,notblank,min=20,max=2000"`
	Category          int64            `json:"category" validate:"required,gt=0"`
	Description       string           `json:"description" validate:"required,notblank,min=20,max=7000"`
	EventDate         *utils.DateTime  `json:"eventDate" validate:"required"`
	Location          *LocationRequest `json:"location" validate:"required"`
	Paid              *bool            `json:"paid"`
	ParticipantLimit  *int             `json:"participantLimit" validate:"omitempty,gte=0"`
	RequestModeration *bool            `json:"requestModeration"`
	Title             string           `json:"title" validate:"required,notblank,min=3,max=120"`
}

// UpdateEventRequest holds the fields owner and admin updates share. Only
// non-null fields, and non-blank strings, are applied.
type UpdateEventRequest struct {
	Annotation        *string          `json:"annotation" validate:"omitempty,min=20,max=2000"`
	Category          *int64           `json:"category" validate:"omitempty,gt=0"`
	Description       *string          `json:"description" validate:"omitempty,min=20,max=7000"`
	EventDate         *utils.DateTime  `json:"eventDate"`
	Location          *LocationRequest `json:"location"`
	Paid              *bool            `json:"paid"`
	ParticipantLimit  *int             `json:"participantLimit" validate:"omitempty,gte=0"`
	RequestModeration *bool            `json:"requestModeration"`
	Title             *string          `json:"title" validate:"omitempty,min=3,max=120"`
}

type UpdateEventUserRequest struct {
	UpdateEventRequest
	StateAction *string `json:"stateAction" validate:"omitempty,oneof=SEND_TO_REVIEW CANCEL_REVIEW"`
}

type UpdateEventAdminRequest struct {
	UpdateEventRequest
	StateAction *string `json:"stateAction" validate:"omitempty,oneof=PUBLISH_EVENT REJECT_EVENT"`
}

type EventShortResponse struct {
	Annotation        string                       `json:"annotation"`
	Category          categorydto.CategoryResponse `json:"category"`
	ConfirmedRequests int64                        `json:"confirmedRequests"`
	EventDate         utils.DateTime               `json:"eventDate"`
	ID                int64                        `json:"id"`
	Initiator         userdto.UserShortResponse    `json:"initiator"`
	Paid              bool                         `json:"paid"`
	Title             string                       `json:"title"`
	Views             int64                        `json:"views"`
	Rating            int64                        `json:"rating"`
}

type EventFullResponse struct {
	EventShortResponse
	CreatedOn         utils.DateTime   `json:"createdOn"`
	Description       string           `json:"description"`
	Location          LocationResponse `json:"location"`
	ParticipantLimit  int              `json:"participantLimit"`
	PublishedOn       *utils.DateTime  `json:"publishedOn"`
	RequestModeration bool             `json:"requestModeration"`
	State             string           `json:"state"`
}

type PublicEventParams struct {
	Text          string
	Categories    []int64
	Paid          *bool
	RangeStart    *time.Time
	RangeEnd      *time.Time
	OnlyAvailable bool
	Sort          SortKey
}

type AdminEventParams struct {
	Users      []int64
	States     []string
	Categories []int64
	RangeStart *time.Time
	RangeEnd   *time.Time
}
