package mapper

import (
	"strings"
	"time"

	"github.com/OmatthewY/explore-with-me/core/utils"
	categorydto "github.com/OmatthewY/explore-with-me/modules/category/dto"
	"github.com/OmatthewY/explore-with-me/modules/event/dto"
	"github.com/OmatthewY/explore-with-me/modules/event/entity"
	userdto "github.com/OmatthewY/explore-with-me/modules/user/dto"
)

// Stats carries the derived counters of one event.
type Stats struct {
	ConfirmedRequests int64
	Views             int64
	Rating            int64
}

func ToEventEntity(req *dto.NewEventRequest, initiatorID int64, createdOn time.Time) *entity.Event {
	event := &entity.Event{
		Title:             strings.TrimSpace(req.Title),
		Annotation:        strings.TrimSpace(req.Annotation),
		Description:       strings.TrimSpace(req.Description),
		CategoryID:        req.Category,
		Lat:               *req.Location.Lat,
		Lon:               *req.Location.Lon,
		InitiatorID:       initiatorID,
		State:             entity.StatePending,
		EventDate:         req.EventDate.Time,
		CreatedOn:         createdOn,
		RequestModeration: true,
	}
	if req.Paid != nil {
		event.Paid = *req.Paid
	}
	if req.ParticipantLimit != nil {
		event.ParticipantLimit = *req.ParticipantLimit
	}
	if req.RequestModeration != nil {
		event.RequestModeration = *req.RequestModeration
	}
	return event
}

// ApplyUpdate copies the non-null fields of req onto event and reports
// whether the location changed.
func ApplyUpdate(event *entity.Event, req *dto.UpdateEventRequest) (locationChanged bool) {
	if !utils.IsBlank(req.Annotation) {
		event.Annotation = strings.TrimSpace(*req.Annotation)
	}
	if req.Category != nil {
		event.CategoryID = *req.Category
	}
	if !utils.IsBlank(req.Description) {
		event.Description = strings.TrimSpace(*req.Description)
	}
	if req.EventDate != nil && !req.EventDate.IsZero() {
		event.EventDate = req.EventDate.Time
	}
	if req.Location != nil && req.Location.Lat != nil && req.Location.Lon != nil {
		event.Lat = *req.Location.Lat
		event.Lon = *req.Location.Lon
		locationChanged = true
	}
	if req.Paid != nil {
		event.Paid = *req.Paid
	}
	if req.ParticipantLimit != nil {
		event.ParticipantLimit = *req.ParticipantLimit
	}
	if req.RequestModeration != nil {
		event.RequestModeration = *req.RequestModeration
	}
	if !utils.IsBlank(req.Title) {
		event.Title = strings.TrimSpace(*req.Title)
	}
	return locationChanged
}

func ToEventShortResponse(event *entity.Event, stats Stats) *dto.EventShortResponse {
	return &dto.EventShortResponse{
		Annotation: event.Annotation,
		Category: categorydto.CategoryResponse{
			ID:   event.CategoryID,
			Name: event.CategoryName,
		},
		ConfirmedRequests: stats.ConfirmedRequests,
		EventDate:         utils.NewDateTime(event.EventDate),
		ID:                event.ID,
		Initiator: userdto.UserShortResponse{
			ID:   event.InitiatorID,
			Name: event.InitiatorName,
		},
		Paid:   event.Paid,
		Title:  event.Title,
		Views:  stats.Views,
		Rating: stats.Rating,
	}
}

func ToEventFullResponse(event *entity.Event, stats Stats) *dto.EventFullResponse {
	return &dto.EventFullResponse{
		EventShortResponse: *ToEventShortResponse(event, stats),
		CreatedOn:          utils.NewDateTime(event.CreatedOn),
		Description:        event.Description,
		Location: dto.LocationResponse{
			Lat: event.Lat,
			Lon: event.Lon,
		},
		ParticipantLimit:  event.ParticipantLimit,
		PublishedOn:       utils.DateTimePtr(event.PublishedOn),
		RequestModeration: event.RequestModeration,
		State:             string(event.State),
	}
}
